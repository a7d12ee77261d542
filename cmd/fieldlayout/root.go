package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/flexile/fieldlayout"
	"github.com/flexile/fieldlayout/internal/config"
	"github.com/flexile/fieldlayout/internal/logging"
	"github.com/flexile/fieldlayout/pkg/adapters/redis"
	"github.com/flexile/fieldlayout/pkg/grouping"
	"github.com/flexile/fieldlayout/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fieldlayout",
	Short: "fieldlayout groups form fields into rendering rows",
	Long: `fieldlayout lays out dynamic form definitions: fields named together by a
pair rule share one row, every other field gets its own row, and the original
field order is kept otherwise.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", "", "Directory containing form definitions (default: built-in forms)")
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for the layout cache (empty disables caching)")
}

// loadConfig reads the configuration file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("dir") {
		cfg.Dir, _ = cmd.Flags().GetString("dir")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.Redis.Addr, _ = cmd.Flags().GetString("redis-addr")
	}
	return cfg, nil
}

// newEngine builds an Engine from the configuration. The returned cleanup
// closes the Redis client when one was opened. A nil registerer disables
// metrics.
func newEngine(cfg config.Config, reg prometheus.Registerer) (*fieldlayout.Engine, *slog.Logger, func(), error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := logging.New(level)

	opts := []fieldlayout.Option{
		fieldlayout.WithLogger(logger),
	}
	if cfg.Dir != "" {
		opts = append(opts, fieldlayout.WithDirectory(cfg.Dir))
	}
	if len(cfg.Pairs) > 0 {
		pairs, err := grouping.ParsePairs(cfg.Pairs)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("invalid pairs in config: %w", err)
		}
		opts = append(opts, fieldlayout.WithDefaultPairs(pairs))
	}
	if reg != nil {
		opts = append(opts, fieldlayout.WithMetrics(observability.NewMetrics(reg)))
	}

	cleanup := func() {}
	if cfg.Redis.Addr != "" {
		var cacheOpts []redis.Option
		if cfg.Redis.Prefix != "" {
			cacheOpts = append(cacheOpts, redis.WithPrefix(cfg.Redis.Prefix))
		}
		if cfg.Redis.TTL > 0 {
			cacheOpts = append(cacheOpts, redis.WithTTL(cfg.Redis.TTL))
		}
		cache := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cacheOpts...)
		opts = append(opts, fieldlayout.WithCache(cache))
		cleanup = func() {
			if err := cache.Close(); err != nil {
				logger.Warn("failed to close redis client", "error", err)
			}
		}
		logger.Debug("layout cache enabled", "addr", cfg.Redis.Addr)
	}

	engine, err := fieldlayout.New(opts...)
	if err != nil {
		cleanup()
		return nil, nil, nil, fmt.Errorf("error initializing fieldlayout: %w", err)
	}
	return engine, logger, cleanup, nil
}

// setupEngine is the common prologue of commands that only need an Engine.
func setupEngine(cmd *cobra.Command) (*fieldlayout.Engine, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	engine, _, cleanup, err := newEngine(cfg, nil)
	return engine, cleanup, err
}
