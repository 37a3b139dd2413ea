// Command leshan-client runs a simulated device exposing IPSO sensors.
//
// The client hosts a temperature sensor, a humidity sensor and a water flow
// readings stub by default. Sensors sample in the background and report
// changes to local observers; the interactive shell reads, executes and
// observes resources.
//
// Usage:
//
//	leshan-client [flags]
//
// Flags:
//
//	-config string       Configuration file path
//	-n string            Endpoint name (default: hostname)
//	-log-level string    Log level: debug, info, warn, error (default "info")
//	-events string       Write captured events to this CBOR file
//	-metrics-addr string Prometheus listen address (default ":9100")
//	-no-metrics          Disable the metrics endpoint
//	-interactive         Start the interactive shell
//
// Examples:
//
//	# Run the default objects with an interactive shell
//	leshan-client -interactive
//
//	# Run from a configuration file and capture events
//	leshan-client -config client.yaml -events /tmp/client.elog
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/LarsBremen/leshan/pkg/config"
)

type flags struct {
	ConfigFile  string
	Endpoint    string
	LogLevel    string
	EventLog    string
	MetricsAddr string
	NoMetrics   bool
	Interactive bool
}

var opts flags

func init() {
	flag.StringVar(&opts.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&opts.Endpoint, "n", "", "Endpoint name (default: hostname)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flag.StringVar(&opts.EventLog, "events", "", "Write captured events to this CBOR file")
	flag.StringVar(&opts.MetricsAddr, "metrics-addr", "", "Prometheus listen address")
	flag.BoolVar(&opts.NoMetrics, "no-metrics", false, "Disable the metrics endpoint")
	flag.BoolVar(&opts.Interactive, "interactive", false, "Start the interactive shell")
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "leshan-client: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The shell owns the terminal; logs go through its writer once it exists.
	var logOut io.Writer = os.Stderr
	var sh *shell
	if opts.Interactive {
		sh, err = newShell(nil)
		if err != nil {
			return err
		}
		logOut = sh.Stdout()
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	a, err := newApp(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.close(); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("client started",
		"endpoint", cfg.Endpoint,
		"objects", a.client.ObjectIDs(),
		"sensors", len(a.sensors),
	)

	if !cfg.Metrics.Disabled {
		a.startMetrics()
	}

	if sh != nil {
		sh.app = a
		go sh.run(ctx, cancel)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return nil
}

// loadConfig reads the configuration file, if any, and applies flag
// overrides.
func loadConfig(f flags) (*config.Config, error) {
	var cfg *config.Config
	if f.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(f.ConfigFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else {
		cfg = config.Default()
	}

	if f.Endpoint != "" {
		cfg.Endpoint = f.Endpoint
	}
	if f.LogLevel != "" {
		cfg.LogLevel = f.LogLevel
	}
	if f.EventLog != "" {
		cfg.EventLog = f.EventLog
	}
	if f.MetricsAddr != "" {
		cfg.Metrics.Addr = f.MetricsAddr
	}
	if f.NoMetrics {
		cfg.Metrics.Disabled = true
	}
	return cfg, nil
}
