// Command spatioxd runs a demonstration TELNET server around a single
// shared engine, structurally descended from this project's original
// single-binary main. It layers two things the original lacked: .env
// configuration and a rate limiter on accepted connections.
package main

import (
	"context"
	"os"
	"strconv"

	"github.com/coderconnoisseur/SpatioX/client"
	"github.com/coderconnoisseur/SpatioX/internal/logging"
	"github.com/joho/godotenv"
	"github.com/reiver/go-telnet"
	"golang.org/x/time/rate"
)

func main() {
	_ = godotenv.Load()

	addr := envOrDefault("SPATIOXD_ADDR", ":3456")
	ratePerSec := envFloatOrDefault("SPATIOXD_RATE_LIMIT_PER_SEC", 50)
	burst := envIntOrDefault("SPATIOXD_RATE_LIMIT_BURST", 100)

	inner := client.NewConnectionHandler()
	handler := &rateLimitedHandler{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), burst),
	}

	logging.L().Info().Str("addr", addr).Msg("spatioxd listening")
	if err := telnet.ListenAndServe(addr, handler); err != nil {
		logging.L().Fatal().Err(err).Msg("spatioxd exited")
	}
}

// rateLimitedHandler wraps a telnet.Handler with a single shared token
// bucket. Every connection draws from the same bucket rather than one per
// remote address, since the demo server has no notion of per-client
// identity beyond the transport. One token is taken when a connection is
// accepted, before it is served; the commands sent over an open connection
// are not rate-limited.
type rateLimitedHandler struct {
	inner   telnet.Handler
	limiter *rate.Limiter
}

func (h *rateLimitedHandler) ServeTELNET(ctx telnet.Context, w telnet.Writer, r telnet.Reader) {
	if err := h.limiter.WaitN(context.Background(), 1); err != nil {
		logging.L().Warn().Err(err).Msg("rate limiter wait failed")
		return
	}
	h.inner.ServeTELNET(ctx, w, r)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOrDefault(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
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
