package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gridnav/internal/bench"
	"gridnav/internal/config"
	"gridnav/internal/ctxlog"
)

// main is the entrypoint for the gridbench benchmark tool.
func main() {
	// Minimal logger until flags are parsed.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run holds the actual program logic so tests can drive it with their own
// writer and argument list.
func run(outW io.Writer, args []string) error {
	fs := flag.NewFlagSet("gridbench", flag.ContinueOnError)
	configPath := fs.String("config", "", "HCL benchmark config file")
	runs := fs.Int("runs", 0, "override runs per map")
	seed := fs.Int64("seed", 0, "override RNG seed")
	bufferSize := fs.Int("buffer", 0, "override output buffer size")
	metricsAddr := fs.String("metrics", "", "expose prometheus metrics on this address")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags and positional map paths override the file.
	if *runs > 0 {
		cfg.Runs = *runs
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *bufferSize > 0 {
		cfg.BufferSize = *bufferSize
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if fs.NArg() > 0 {
		cfg.Maps = fs.Args()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	metrics := bench.NewMetrics(registry)
	if cfg.MetricsAddr != "" {
		go serveMetrics(logger, cfg.MetricsAddr, registry)
	}

	return bench.Run(ctx, cfg, metrics, outW)
}

func serveMetrics(logger *slog.Logger, addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	logger.Info("serving metrics", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener failed", "error", err)
	}
}
