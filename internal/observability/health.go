package observability

import (
	"log/slog"
	"time"

	"github.com/valyala/fasthttp"
)

// StartHealthServer exposes GET /healthz on its own listener so liveness
// probes never compete with the webhook endpoint. Returns nil when the
// endpoint is disabled.
func StartHealthServer(enabled bool, addr string, logger *slog.Logger) *fasthttp.Server {
	if logger == nil {
		logger = slog.Default()
	}
	if !enabled {
		logger.Info("health endpoint disabled", "reason", "HEALTH_ENABLED=false")
		return nil
	}

	srv := &fasthttp.Server{
		Handler:               healthHandler,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
		NoDefaultServerHeader: true,
	}

	go func() {
		logger.Info("health server starting", "addr", addr)
		if err := srv.ListenAndServe(addr); err != nil {
			logger.Error("health server failed", "error", err)
		}
	}()

	return srv
}

func StopHealthServer(srv *fasthttp.Server, logger *slog.Logger) error {
	if srv == nil {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := srv.Shutdown(); err != nil {
		return err
	}
	logger.Info("health server stopped")
	return nil
}

func healthHandler(ctx *fasthttp.RequestCtx) {
	if string(ctx.Path()) != "/healthz" || !ctx.IsGet() {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(`{"status":"ok"}`)
}
