package app

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/oauthgw/prgateway/pkg/auth/token"
	"github.com/oauthgw/prgateway/pkg/challenge"
	"github.com/oauthgw/prgateway/pkg/config"
	"github.com/oauthgw/prgateway/pkg/dispatch"
	"github.com/oauthgw/prgateway/pkg/gate"
	"github.com/oauthgw/prgateway/pkg/logger"
	"github.com/oauthgw/prgateway/pkg/metadata"
	"github.com/oauthgw/prgateway/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the gateway HTTP server",
	Long: `serve loads configuration from the environment (§6), builds the
Metadata Publisher, Token Validator + Cache, Challenge Emitter, and Auth
Gate, mounts them behind the Route Composer, and blocks until the process
receives SIGINT or SIGTERM.`,
	RunE: runServeCmd,
}

func newServeCmd() *cobra.Command {
	return serveCmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	logger.Infof("loaded configuration: %s", cfg.String())

	validator, err := token.NewValidator(token.Config{
		IntrospectURL:     cfg.UpstreamIntrospectURL,
		IntrospectTimeout: cfg.IntrospectTimeout,
		CacheCapacity:     cfg.CacheCapacity,
		CacheTTL:          cfg.CacheTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to build token validator: %w", err)
	}

	metricsAuth, metricsHandler := server.Metrics()

	emitter := challenge.NewEmitter(cfg.PublicBaseURL, cfg.PublicBaseURL+metadata.WellKnownPath)
	authGate := gate.New(validator, emitter, metricsAuth)

	toolRouter := buildToolRouter(cfg)

	router := server.NewRouter(server.Mux{
		MetadataDoc:   metadata.New(cfg.UpstreamResource, cfg.UpstreamAuthzURL),
		MetricsHandle: metricsHandler,
		Gate:          authGate,
		ToolRouter:    toolRouter,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return server.Serve(ctx, cfg, router)
}

// buildToolRouter mounts the Tool Dispatcher (§4.G contract) behind the
// gated route set. Individual tool business logic is out of scope for
// this gateway; every path not reserved by the Route Composer's public
// set is forwarded verbatim.
func buildToolRouter(cfg *config.Config) http.Handler {
	d := dispatch.New(cfg.UpstreamResource, toolDispatchTimeout)
	r := chi.NewRouter()
	r.Handle("/*", d)
	return r
}

const toolDispatchTimeout = 30 * time.Second
