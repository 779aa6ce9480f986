package cli

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/teasort/pkg/bench"
	"github.com/matzehuels/teasort/pkg/observability"
	"github.com/matzehuels/teasort/pkg/observability/prom"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sort and benchmark API over HTTP",
		Long: `Start an HTTP server exposing:

  POST /v1/sort          {"values": [...], "seed": N} -> sorted values and cost
  GET  /v1/bench         ?min=&max=&rounds=&iter=&seed=&save=true
  GET  /v1/reports       saved benchmark reports, newest first
  GET  /v1/reports/{id}  one saved report
  GET  /healthz          liveness and build info
  GET  /metrics          Prometheus metrics

Benchmark responses for a fixed seed are cached with the configured cache
backend.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("addr") {
				c.Config.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	logger := loggerFromContext(ctx)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom.New(reg, appName).Install()
	defer observability.Reset()

	ch, err := c.newCache(ctx, false)
	if err != nil {
		return err
	}
	defer ch.Close()

	st, err := c.newStore(ctx)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close()
	}

	srv := &server{
		runner:       bench.NewRunner(ch, nil, logger),
		store:        st,
		gatherer:     reg,
		logger:       logger,
		maxBenchSize: c.Config.Server.MaxBenchSize,
	}
	httpServer := &http.Server{
		Addr:              c.Config.Server.Addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
