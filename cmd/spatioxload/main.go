// Command spatioxload bulk-loads a CSV of lat,lon,timestamp rows into an
// engine. Parsing and validation of CSV rows runs on a bounded number of
// worker goroutines; the resulting records are then handed to the engine
// in one BulkInsert call from the main goroutine, since the engine does no
// internal locking of its own.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"sync"

	"github.com/coderconnoisseur/SpatioX"
	"github.com/coderconnoisseur/SpatioX/internal/logging"
	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/semaphore"
)

func main() {
	_ = godotenv.Load()

	path := flag.String("csv", envOrDefault("SPATIOXLOAD_CSV", ""), "path to a CSV file of lat,lon,timestamp rows")
	workers := flag.Int("workers", envIntOrDefault("SPATIOXLOAD_WORKERS", runtime.NumCPU()), "number of concurrent CSV-parsing workers")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: spatioxload -csv <path> [-workers N]")
		os.Exit(2)
	}

	rows, err := readRows(*path)
	if err != nil {
		logging.L().Fatal().Err(err).Str("path", *path).Msg("failed to read csv")
	}

	records, err := parseRows(rows, *workers)
	if err != nil {
		logging.L().Fatal().Err(err).Msg("failed to parse csv rows")
	}

	engine := spatiox.New()
	ids := engine.BulkInsert(records)
	logging.L().Info().Int("count", len(ids)).Str("path", *path).Msg("bulk load complete")
}

// readRows reads every row of the CSV at path into memory. Loading the
// whole file up front lets the worker pool below index into a fixed slice
// instead of coordinating over a channel of rows.
func readRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = 3
	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseRows converts raw CSV rows into RecordInput values, at most
// workers rows in flight at once.
func parseRows(rows [][]string, workers int) ([]spatiox.RecordInput, error) {
	if workers < 1 {
		workers = 1
	}

	records := make([]spatiox.RecordInput, len(rows))
	parseErrs := make([]error, len(rows))

	sem := semaphore.NewWeighted(int64(workers))
	ctx := context.Background()
	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionOnCompletion(func() { fmt.Print("\n") }),
	)

	var wg sync.WaitGroup
	var barMu sync.Mutex
	for i, row := range rows {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(i int, row []string) {
			defer wg.Done()
			defer sem.Release(1)

			rec, err := parseRow(row)
			records[i] = rec
			parseErrs[i] = err

			barMu.Lock()
			_ = bar.Add(1)
			barMu.Unlock()
		}(i, row)
	}
	wg.Wait()

	for i, err := range parseErrs {
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return records, nil
}

func parseRow(row []string) (spatiox.RecordInput, error) {
	lat, err := strconv.ParseFloat(row[0], 32)
	if err != nil {
		return spatiox.RecordInput{}, fmt.Errorf("lat: %w", err)
	}
	lon, err := strconv.ParseFloat(row[1], 32)
	if err != nil {
		return spatiox.RecordInput{}, fmt.Errorf("lon: %w", err)
	}
	t, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return spatiox.RecordInput{}, fmt.Errorf("timestamp: %w", err)
	}
	return spatiox.RecordInput{Lat: float32(lat), Lon: float32(lon), Timestamp: t}, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
