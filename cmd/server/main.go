package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"icnview/internal/adapter"
	"icnview/internal/config"
	"icnview/internal/handler"
	"icnview/internal/hub"
	"icnview/internal/logger"
	"icnview/internal/metrics"
	"icnview/internal/service"
	"icnview/internal/topology"
	"icnview/internal/watcher"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "", "config file (default: search standard locations)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	writeConfig := flag.String("write-config", "", "write the default config, with environment overrides, to this path and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("could not load .env file", "err", err)
	}

	if *writeConfig != "" {
		if err := writeDefaultConfig(*writeConfig); err != nil {
			log.Fatal("failed to write config", "path", *writeConfig, "err", err)
		}
		log.Info("wrote config", "path", *writeConfig)
		return
	}

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("failed to load config", "path", path, "err", err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	logg, closer, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		MaxSize: cfg.Log.MaxSize,
		MaxAge:  cfg.Log.MaxAge,
	})
	if err != nil {
		log.Fatal("failed to create logger", "err", err)
	}
	defer closer.Close()

	if path != "" {
		logg.Info("loaded config", "path", path)
	}
	logg.Info("starting icnview", "summary", cfg.Summary())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	registry := metrics.NewRegistry()

	// Initialize event bus
	eventBus := service.NewEventBus()

	// Initialize SSE hub
	sseHub := hub.New(logg)
	sseHub.OnClientCount = func(n int) { registry.SSEClients.Set(float64(n)) }
	go sseHub.Run(ctx.Done())

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-eventChan:
				sseHub.Broadcast(event)
			}
		}
	}()

	source, controller, fixtureDir, err := newSource(cfg)
	if err != nil {
		logg.Fatal("failed to create source", "err", err)
	}

	topologySvc := service.NewTopologyService(source, service.Options{
		TopologyID:     cfg.Controller.TopologyID,
		ManagementNode: cfg.Topology.ManagementNode,
		FetchTimeout:   cfg.Controller.FetchTimeout.Duration(),
		Inventory: topology.InventoryOptions{
			PruneDownLinks:  cfg.Topology.PruneDownLinks,
			AnnotateTraffic: cfg.Topology.TrafficAnnotations(),
		},
	}, logg, registry, eventBus)
	controlSvc := service.NewControlService(controller, cfg.Controller.Bootstrapped, logg, eventBus)

	refresher := service.NewRefresher(topologySvc, cfg.Refresh.Interval.Duration(), controlSvc.Session, logg)
	go refresher.Run(ctx)

	if fixtureDir != "" {
		w := watcher.New(fixtureDir, adapter.IsFixture, refresher.Trigger, logg)
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logg.Error("fixture watcher stopped", "err", err)
			}
		}()
	}

	// Setup routes
	topologyHandler := handler.NewTopologyHandler(topologySvc, controlSvc, logg)
	topologyHandler.SetRefreshTrigger(refresher)

	mux := http.NewServeMux()
	topologyHandler.Register(mux)
	mux.Handle("GET /events", sseHub)
	mux.Handle("GET /metrics", registry.Handler())

	// Apply middleware
	finalHandler := handler.Chain(mux,
		handler.Recover(logg),
		handler.CORS(cfg.Server.CORSOrigins),
		handler.Logger(logg),
		handler.Metrics(registry),
	)

	// No WriteTimeout: SSE connections stay open
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           finalHandler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logg.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("server shutdown error", "err", err)
	}

	logg.Info("server stopped")
}

func loadConfig(path string) (*config.Config, string, error) {
	if path == "" {
		return config.Load()
	}
	cfg, path, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, path, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// writeDefaultConfig saves the default config with environment overrides
// applied, creating the parent directory when needed
func writeDefaultConfig(path string) error {
	cfg := config.DefaultConfig()
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.Save(path)
}

// newSource returns the document source and controller for cfg. fixtureDir
// is set when documents come from files that should be watched.
func newSource(cfg *config.Config) (service.Source, service.Controller, string, error) {
	if cfg.Source.Type == config.SourceFile {
		src, err := adapter.NewFileSource(cfg.Source.Dir)
		if err != nil {
			return nil, nil, "", err
		}
		return src, adapter.NewOfflineController(src), src.Dir(), nil
	}

	restconfCfg := adapter.DefaultRestconfConfig()
	restconfCfg.BaseURL = cfg.Controller.BaseURL
	src, err := adapter.NewRestconfSource(restconfCfg)
	if err != nil {
		return nil, nil, "", err
	}
	return src, adapter.NewControllerClient(src, cfg.Controller.MonitorPeriod.Duration()), "", nil
}
