// Package server wires the host adapter: the file engine behind an
// engine.Manager, the domain store, the REST surface, the gRPC health
// service and Prometheus metrics. Run blocks until SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/tripkeeper/internal/engine"
	"github.com/dmitrijs2005/tripkeeper/internal/engine/file"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"github.com/dmitrijs2005/tripkeeper/internal/metrics"
	"github.com/dmitrijs2005/tripkeeper/internal/server/config"
	"github.com/dmitrijs2005/tripkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/tripkeeper/internal/store"

	gs "github.com/dmitrijs2005/tripkeeper/internal/server/grpc"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager *engine.Manager
	store   *store.Store
	metrics *metrics.Metrics
}

func NewApp(c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stdout, "json", level)

	m := metrics.New()
	manager := engine.NewManager(file.New(c.DatabasePath, logger), logger)
	if err := m.Register(metrics.NewEngineCollector(manager)); err != nil {
		return nil, fmt.Errorf("metrics init error: %w", err)
	}

	st := store.New(manager, store.Options{
		AutoSave: c.AutoSave,
		Logger:   logger,
		Metrics:  m,
	})

	return &App{config: c, logger: logger, manager: manager, store: st, metrics: m}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) httpServer() *httpapi.Server {
	return httpapi.NewServer(app.config.HTTPAddr, app.store, app.logger, httpapi.Options{
		SecretKey:       app.config.SecretKey,
		MetricsPath:     app.config.MetricsPath,
		Metrics:         app.metrics.Handler(),
		Backend:         app.manager.Backend(),
		Ready:           app.manager.Ready,
		ShutdownTimeout: app.config.ShutdownTimeout,
	})
}

func (app *App) start(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, name+" server failed", "error", err.Error())
		cancelFunc()
	}
}

// Run initializes the engine, serves until ctx is canceled or a signal
// arrives, then releases the engine.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "database", app.config.DatabasePath)

	app.initSignalHandler(cancelFunc)

	if _, err := app.manager.Initialize(ctx); err != nil {
		return fmt.Errorf("db init error: %w", err)
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.start(ctx, cancelFunc, "HTTP", app.httpServer().Run)
	}()

	if app.config.GRPCAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.start(ctx, cancelFunc, "gRPC", gs.NewHealthServer(app.config.GRPCAddr, app.logger, app.manager.Ready).Run)
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "Stopping app...")
	return errors.Join(app.store.Save(context.Background()), app.manager.Shutdown())
}
