package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/poolmvp/usersvc/config"
	"github.com/poolmvp/usersvc/internal/container"
	"github.com/poolmvp/usersvc/internal/infrastructure/postgres"
	"github.com/poolmvp/usersvc/internal/interface/middleware"
	"github.com/poolmvp/usersvc/internal/router"
	"github.com/poolmvp/usersvc/pkg/validation"
)

const shutdownTimeout = 10 * time.Second

// App orchestrates startup order (settings -> pool init -> schema bootstrap
// -> serve) and shutdown order (drain HTTP -> close pool). It owns the pool
// manager; everything else holds references through the container.
type App struct {
	cfg    *config.Config
	logger *logrus.Logger
	life   *Lifecycle
	pool   *postgres.Manager
}

func New(cfg *config.Config, logger *logrus.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		life:   NewLifecycle(),
		pool:   postgres.NewManager(),
	}
}

// State reports the lifecycle state, mainly for tests and diagnostics.
func (a *App) State() State {
	return a.life.State()
}

// Run starts the application and blocks until ctx is canceled (signal) or
// the HTTP server fails. Any startup error is returned before the app
// reaches running; the caller must treat it as fatal.
func (a *App) Run(ctx context.Context) error {
	if err := a.life.To(StateStarting); err != nil {
		return err
	}

	if err := a.pool.Init(ctx, postgres.Config{
		DSN:              a.cfg.PostgresDSN(),
		MinConns:         a.cfg.PoolMinSize,
		MaxConns:         a.cfg.PoolMaxSize,
		CommandTimeout:   a.cfg.CommandTimeout,
		IdleConnLifetime: a.cfg.IdleConnLife,
	}); err != nil {
		a.abortStartup()
		return err
	}

	if err := postgres.EnsureSchema(ctx, a.pool); err != nil {
		a.abortStartup()
		return err
	}
	a.logger.Info("schema bootstrap complete")

	container.SetConfig(a.cfg)
	container.SetLogger(a.logger)
	container.SetPool(a.pool)

	srv := &http.Server{Addr: ":" + a.cfg.Port, Handler: a.buildEngine()}
	serveErr := make(chan error, 1)
	go func() {
		a.logger.Infof("server starting on :%s", a.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	if err := a.life.To(StateRunning); err != nil {
		return err
	}

	return a.serveUntilDone(ctx, srv, serveErr)
}

// serveUntilDone blocks until shutdown is requested or the listener fails,
// then drains in-flight requests and closes the pool. A listener failure
// (e.g. the port is already bound) is returned so the process exits nonzero
// instead of reporting a clean exit it never earned.
func (a *App) serveUntilDone(ctx context.Context, srv *http.Server, serveErr <-chan error) error {
	var serveFailed error
	select {
	case <-ctx.Done():
		a.logger.Info("shutting down server")
	case err := <-serveErr:
		serveFailed = err
		a.logger.WithField("error", err.Error()).Error("http server failed")
	}

	if err := a.life.To(StateStopping); err != nil {
		return err
	}

	// Stop accepting new requests and let in-flight ones drain before the
	// pool goes away underneath them. Shutdown on a listener that never
	// bound is a harmless no-op.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.WithField("error", err.Error()).Error("server forced to shutdown")
	}
	a.pool.Close()

	if err := a.life.To(StateStopped); err != nil {
		return err
	}
	if serveFailed != nil {
		return serveFailed
	}
	a.logger.Info("server exited properly")
	return nil
}

func (a *App) abortStartup() {
	_ = a.life.To(StateStopping)
	a.pool.Close()
	_ = a.life.To(StateStopped)
}

func (a *App) buildEngine() *gin.Engine {
	gin.SetMode(a.cfg.GinMode)
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	if origins := a.cfg.CORSOrigins(); len(origins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  origins,
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}
	if a.cfg.HTTPLogEnabled {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()
	return r
}
