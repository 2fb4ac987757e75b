package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/seqplan/seqplan"
	httpadapter "github.com/seqplan/seqplan/pkg/adapters/http"
	"github.com/seqplan/seqplan/pkg/adapters/ptp"
	"github.com/seqplan/seqplan/pkg/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sequence planning HTTP server",
	Long:  `Starts the planning engine in server mode, exposing a JSON API over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		log := newLogger(cfg)

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		metrics := observability.NewMetrics(reg)

		engineOpts := []seqplan.Option{seqplan.WithMetrics(metrics)}
		store := newStore(cfg, log)
		if store != nil {
			engineOpts = append(engineOpts, seqplan.WithStore(store))
		}
		engine, err := newEngine(cfg, log, engineOpts...)
		if err != nil {
			return err
		}

		var plannerOpts []ptp.Option
		if step := sampleStep(cfg); step > 0 {
			plannerOpts = append(plannerOpts, ptp.WithSampleStep(step))
		}
		planner := ptp.New(engine.Model(), engine.Limits(), plannerOpts...)

		handlerOpts := []httpadapter.Option{
			httpadapter.WithLogger(log),
			httpadapter.WithMetrics(reg),
		}
		if store != nil {
			handlerOpts = append(handlerOpts, httpadapter.WithStore(store))
		}
		handler := httpadapter.NewHandler(engine, planner, handlerOpts...)

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			log.Info("starting seqplan server", "addr", srv.Addr, "groups", len(cfg.Groups))
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Info("starting shutdown", "signal", sig.String())

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				log.Warn("graceful shutdown did not complete", "timeout", cfg.Server.ShutdownTimeout.Std(), "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("killing server: %w", err)
				}
			}
			log.Info("server stopped gracefully")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Listen address, overrides the configured server.addr")
}
