package fx

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/kimjiho/fxbrief/internal/config"
	"github.com/kimjiho/fxbrief/internal/core"
	"github.com/kimjiho/fxbrief/internal/digest"
	"github.com/kimjiho/fxbrief/internal/server"

	"go.uber.org/fx"
)

// ServerModule starts the HTTP server and the background digest worker
var ServerModule = fx.Module("server",
	fx.Invoke(StartServer),
	fx.Invoke(StartDigestWorker),
)

// ServerParams groups dependencies for the HTTP server
type ServerParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Core      *core.BriefingCore
	Digest    *digest.Worker `optional:"true"`
}

// StartServer configures and starts the HTTP server with FX lifecycle hooks
func StartServer(p ServerParams) {
	services := server.Services{
		Core:   p.Core,
		Digest: p.Digest,
	}

	handler := server.CreateRecoveryHandler(
		server.CreateCORSHandler(
			server.CreateRESTHandler(services, p.Config),
		),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", p.Config.Port),
		Handler: mux,
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Printf("[FX] HTTP server starting on port %d", p.Config.Port)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("[FX] HTTP server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("[FX] HTTP server shutting down")
			return srv.Shutdown(ctx)
		},
	})
}

// DigestParams groups dependencies for the digest worker
type DigestParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Worker    *digest.Worker `optional:"true"`
}

// StartDigestWorker starts the scheduled digest worker when configured
func StartDigestWorker(p DigestParams) {
	if p.Worker == nil {
		return
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Worker.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			p.Worker.Stop()
			return nil
		},
	})
}
