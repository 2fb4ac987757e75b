package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/seqplan/seqplan"
	"github.com/seqplan/seqplan/internal/config"
	"github.com/seqplan/seqplan/internal/limits"
	"github.com/seqplan/seqplan/internal/logging"
	"github.com/seqplan/seqplan/pkg/adapters/memory"
	redisstore "github.com/seqplan/seqplan/pkg/adapters/redis"
	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

var rootCmd = &cobra.Command{
	Use:   "seqplan",
	Short: "Seqplan composes multi-segment robot motion sequences",
	Long: `Seqplan plans ordered motion sequences segment by segment, chains start
states across segments of the same group, and merges the results into
blended trajectories.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the service configuration file")
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return logging.New(level)
}

// newEngine assembles the engine from configuration: model, aggregated
// limits, and the optional redis-backed result store.
func newEngine(cfg config.Config, log *slog.Logger, opts ...seqplan.Option) (*seqplan.Engine, error) {
	model, err := memory.New(cfg.Groups)
	if err != nil {
		return nil, fmt.Errorf("building kinematic model: %w", err)
	}

	agg := domain.Limits{Joints: model.BaseLimits()}
	if cfg.LimitsFile != "" {
		limitsCfg, err := limits.Load(cfg.LimitsFile)
		if err != nil {
			return nil, err
		}
		agg, err = limits.Aggregate(model.BaseLimits(), limitsCfg)
		if err != nil {
			return nil, err
		}
	}

	opts = append([]seqplan.Option{
		seqplan.WithLogger(log),
		seqplan.WithLimits(agg),
	}, opts...)

	return seqplan.New(model, opts...)
}

// newStore builds the configured result store, or nil when persistence is
// disabled.
func newStore(cfg config.Config, log *slog.Logger) ports.ResultStore {
	if cfg.Redis.Addr == "" {
		return nil
	}
	storeOpts := []redisstore.Option{}
	if cfg.Redis.TTL.Std() > 0 {
		storeOpts = append(storeOpts, redisstore.WithTTL(cfg.Redis.TTL.Std()))
	}
	if cfg.Redis.Prefix != "" {
		storeOpts = append(storeOpts, redisstore.WithPrefix(cfg.Redis.Prefix))
	}
	log.Info("result store enabled", "addr", cfg.Redis.Addr)
	return redisstore.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, storeOpts...)
}

func sampleStep(cfg config.Config) time.Duration {
	return cfg.Planner.SampleStep.Std()
}
