// Package client is the reference binding: a newline-terminated command
// dispatcher over a TELNET connection, structurally descended from this
// project's original ConnectionHandler. It exercises the engine the way a
// real language binding would, but it is illustrative only — the
// engine's own concurrency and query contracts never depend on this
// package existing.
package client

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/coderconnoisseur/SpatioX/concurrent"
	"github.com/reiver/go-oi"
	"github.com/reiver/go-telnet"
)

// ConnectionHandler parses one command per line and dispatches it against a
// shared, lock-guarded engine. One handler is shared across every
// connection the server accepts, matching the original single-process
// state object this is adapted from.
type ConnectionHandler struct {
	Engine *concurrent.Engine
}

// NewConnectionHandler returns a handler backed by a fresh engine.
func NewConnectionHandler() *ConnectionHandler {
	return &ConnectionHandler{Engine: concurrent.New()}
}

// ServeTELNET implements telnet.Handler: it buffers input until a newline,
// dispatches the line as a command, and writes the result back followed by
// a newline. The connection closes when the client disconnects.
func (h *ConnectionHandler) ServeTELNET(ctx telnet.Context, w telnet.Writer, r telnet.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reply := h.dispatch(line)
		oi.LongWriteString(w, reply+"\n")
	}
}

func (h *ConnectionHandler) dispatch(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "ERR empty command"
	}

	switch strings.ToUpper(fields[0]) {
	case "INSERT":
		return h.handleInsert(fields[1:])
	case "GET":
		return h.handleGet(fields[1:])
	case "QUERY_RADIUS":
		return h.handleQueryRadius(fields[1:])
	case "QUERY_BOX":
		return h.handleQueryBox(fields[1:])
	case "QUERY_KNN":
		return h.handleQueryKNN(fields[1:])
	case "QUERY_RADIUS_TIME":
		return h.handleQueryRadiusTime(fields[1:])
	case "QUERY_BOX_TIME":
		return h.handleQueryBoxTime(fields[1:])
	case "QUERY_KNN_TIME":
		return h.handleQueryKNNTime(fields[1:])
	case "STATS":
		return h.handleStats()
	case "CLEAR":
		h.Engine.Clear()
		return "OK"
	default:
		return fmt.Sprintf("ERR unrecognized command: %s", fields[0])
	}
}

func (h *ConnectionHandler) handleInsert(args []string) string {
	lat, lon, t, err := parseLatLonTime(args)
	if err != nil {
		return "ERR " + err.Error()
	}
	id := h.Engine.Insert(lat, lon, t)
	return fmt.Sprintf("OK id=%d", id)
}

func (h *ConnectionHandler) handleGet(args []string) string {
	if len(args) != 1 {
		return "ERR usage: GET <id>"
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return "ERR " + err.Error()
	}
	rec, ok := h.Engine.GetRecord(id)
	if !ok {
		return "NOTFOUND"
	}
	return fmt.Sprintf("OK lat=%g lon=%g t=%g", rec.Lat, rec.Lon, rec.Timestamp)
}

func (h *ConnectionHandler) handleQueryRadius(args []string) string {
	if len(args) != 3 {
		return "ERR usage: QUERY_RADIUS <lat> <lon> <radius_km>"
	}
	lat, lon, err := parseLatLon(args[0], args[1])
	if err != nil {
		return "ERR " + err.Error()
	}
	radiusKm, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return "ERR " + err.Error()
	}
	return formatIDs(h.Engine.QueryRadius(lat, lon, radiusKm))
}

func (h *ConnectionHandler) handleQueryBox(args []string) string {
	if len(args) != 4 {
		return "ERR usage: QUERY_BOX <lat_min> <lon_min> <lat_max> <lon_max>"
	}
	box, err := parseBox(args)
	if err != nil {
		return "ERR " + err.Error()
	}
	return formatIDs(h.Engine.QueryBox(box[0], box[1], box[2], box[3]))
}

func (h *ConnectionHandler) handleQueryKNN(args []string) string {
	if len(args) != 3 {
		return "ERR usage: QUERY_KNN <lat> <lon> <k>"
	}
	lat, lon, err := parseLatLon(args[0], args[1])
	if err != nil {
		return "ERR " + err.Error()
	}
	k, err := strconv.Atoi(args[2])
	if err != nil {
		return "ERR " + err.Error()
	}
	return formatIDs(h.Engine.QueryKNN(lat, lon, k))
}

func (h *ConnectionHandler) handleQueryRadiusTime(args []string) string {
	if len(args) != 5 {
		return "ERR usage: QUERY_RADIUS_TIME <lat> <lon> <radius_km> <t_start> <t_end>"
	}
	lat, lon, err := parseLatLon(args[0], args[1])
	if err != nil {
		return "ERR " + err.Error()
	}
	radiusKm, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return "ERR " + err.Error()
	}
	tStart, tEnd, err := parseTimeRange(args[3], args[4])
	if err != nil {
		return "ERR " + err.Error()
	}
	return formatIDs(h.Engine.QueryRadiusTime(lat, lon, radiusKm, tStart, tEnd))
}

func (h *ConnectionHandler) handleQueryBoxTime(args []string) string {
	if len(args) != 6 {
		return "ERR usage: QUERY_BOX_TIME <lat_min> <lon_min> <lat_max> <lon_max> <t_start> <t_end>"
	}
	box, err := parseBox(args[:4])
	if err != nil {
		return "ERR " + err.Error()
	}
	tStart, tEnd, err := parseTimeRange(args[4], args[5])
	if err != nil {
		return "ERR " + err.Error()
	}
	return formatIDs(h.Engine.QueryBoxTime(box[0], box[1], box[2], box[3], tStart, tEnd))
}

func (h *ConnectionHandler) handleQueryKNNTime(args []string) string {
	if len(args) != 5 {
		return "ERR usage: QUERY_KNN_TIME <lat> <lon> <k> <t_start> <t_end>"
	}
	lat, lon, err := parseLatLon(args[0], args[1])
	if err != nil {
		return "ERR " + err.Error()
	}
	k, err := strconv.Atoi(args[2])
	if err != nil {
		return "ERR " + err.Error()
	}
	tStart, tEnd, err := parseTimeRange(args[3], args[4])
	if err != nil {
		return "ERR " + err.Error()
	}
	return formatIDs(h.Engine.QueryKNNTime(lat, lon, k, tStart, tEnd))
}

func (h *ConnectionHandler) handleStats() string {
	s := h.Engine.GetIndexStats()
	return fmt.Sprintf("OK total=%d spatial=%d temporal=%d min_t=%g max_t=%g built=%t",
		s.TotalRecords, s.SpatialNodes, s.TemporalEntries, s.MinTime, s.MaxTime, s.IsBuilt)
}

func formatIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return "OK " + strings.Join(parts, ",")
}

func parseLatLon(latStr, lonStr string) (float32, float32, error) {
	lat, err := strconv.ParseFloat(latStr, 32)
	if err != nil {
		return 0, 0, err
	}
	lon, err := strconv.ParseFloat(lonStr, 32)
	if err != nil {
		return 0, 0, err
	}
	return float32(lat), float32(lon), nil
}

func parseLatLonTime(args []string) (lat, lon float32, t float64, err error) {
	if len(args) != 3 {
		return 0, 0, 0, fmt.Errorf("usage: INSERT <lat> <lon> <timestamp>")
	}
	lat, lon, err = parseLatLon(args[0], args[1])
	if err != nil {
		return 0, 0, 0, err
	}
	t, err = strconv.ParseFloat(args[2], 64)
	return lat, lon, t, err
}

func parseBox(args []string) ([4]float32, error) {
	var box [4]float32
	for i, s := range args {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return box, err
		}
		box[i] = float32(v)
	}
	return box, nil
}

func parseTimeRange(startStr, endStr string) (float64, float64, error) {
	tStart, err := strconv.ParseFloat(startStr, 64)
	if err != nil {
		return 0, 0, err
	}
	tEnd, err := strconv.ParseFloat(endStr, 64)
	return tStart, tEnd, err
}
