package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LarsBremen/leshan/pkg/client"
	"github.com/LarsBremen/leshan/pkg/config"
	"github.com/LarsBremen/leshan/pkg/log"
	"github.com/LarsBremen/leshan/pkg/model"
	"github.com/LarsBremen/leshan/pkg/observe"
	"github.com/LarsBremen/leshan/pkg/schedule"
	"github.com/LarsBremen/leshan/pkg/sensor"
)

// app wires the configured instances together.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	client   *client.Client
	registry *observe.Registry
	sensors  []*sensor.Sensor

	eventFile  *log.FileLogger
	promReg    *prometheus.Registry
	metricsSrv *http.Server
}

// newApp builds the client described by cfg. A nil scheduler uses a ticker
// scheduler per process.
func newApp(cfg *config.Config, logger *slog.Logger, sched schedule.Scheduler) (_ *app, err error) {
	if sched == nil {
		sched = schedule.NewTicker(logger)
	}

	// Setup failures close whatever was started.
	a := &app{
		cfg:     cfg,
		logger:  logger,
		promReg: prometheus.NewRegistry(),
	}
	defer func() {
		if err != nil {
			_ = a.close()
		}
	}()

	catalog, err := loadCatalog(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	events := []log.Logger{log.NewSlogAdapter(logger.With("component", "events"))}
	if cfg.EventLog != "" {
		a.eventFile, err = log.NewFileLogger(cfg.EventLog)
		if err != nil {
			return nil, fmt.Errorf("open event log: %w", err)
		}
		events = append(events, a.eventFile)
	}
	capture := log.NewMultiLogger(events...)

	a.registry = observe.NewRegistry(observe.Config{Logger: logger})
	a.client = client.New(client.Config{
		Endpoint: cfg.Endpoint,
		Catalog:  catalog,
		Logger:   logger,
		Events:   capture,
	})

	a.promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := sensor.NewMetrics(a.promReg)

	for _, sc := range cfg.Sensors {
		scfg := sc.Config()
		scfg.Notifier = a.registry
		scfg.Scheduler = sched
		scfg.Endpoint = cfg.Endpoint
		scfg.Logger = logger
		scfg.Events = capture
		scfg.Metrics = metrics

		var s *sensor.Sensor
		switch sc.Kind {
		case config.KindHumidity:
			scfg.Object, _ = catalog.Object(model.ObjectHumidity)
			s, err = sensor.NewHumidity(scfg)
		case config.KindTemperature:
			scfg.Object, _ = catalog.Object(model.ObjectTemperature)
			s, err = sensor.NewTemperature(scfg)
		default:
			err = fmt.Errorf("unknown sensor kind %q", sc.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("create %s sensor %d: %w", sc.Kind, sc.Instance, err)
		}
		a.sensors = append(a.sensors, s)
		if err = a.client.AddInstance(s); err != nil {
			return nil, err
		}
	}

	if len(cfg.WaterFlow.Instances) > 0 {
		obj, err := catalog.Object(model.ObjectWaterFlowReadings)
		if err != nil {
			return nil, err
		}
		for _, id := range cfg.WaterFlow.Instances {
			stub, err := client.NewStubInstance(obj,
				client.WithStubInstanceID(id),
				client.WithStubNotifier(a.registry),
			)
			if err != nil {
				return nil, err
			}
			if err := a.client.AddInstance(stub); err != nil {
				return nil, err
			}
		}
	}

	return a, nil
}

func loadCatalog(path string) (*model.Catalog, error) {
	catalog, err := model.NewCatalog(model.DefaultCatalog().Objects()...)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return catalog, nil
	}
	extra, err := model.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	catalog.Merge(extra)
	return catalog, nil
}

// startMetrics serves /metrics and /healthz until close.
func (a *app) startMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.promReg, promhttp.HandlerOpts{Registry: a.promReg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	a.metricsSrv = &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := a.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("metrics server exited", "error", err)
		}
	}()
	a.logger.Info("metrics listening", "addr", a.cfg.Metrics.Addr)
}

// close stops every instance and releases files and listeners.
func (a *app) close() error {
	var errs []error

	if a.metricsSrv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := a.metricsSrv.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
		cancel()
	}

	if a.client != nil {
		if err := a.client.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	// Sensors that failed registration are not owned by the client.
	for _, s := range a.sensors {
		_ = s.Close()
	}

	if a.registry != nil {
		a.registry.CancelAll()
	}

	if a.eventFile != nil {
		if written, dropped := a.eventFile.Counts(); dropped > 0 {
			a.logger.Warn("event log dropped events", "path", a.cfg.EventLog, "written", written, "dropped", dropped)
		}
		if err := a.eventFile.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
