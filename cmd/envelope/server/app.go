package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/envelope/config"
	"github.com/ncobase/envelope/logging/logger"
	"github.com/ncobase/envelope/net/resp"
)

// App is the demo widget server.
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Handler *Handler
}

// NewApp creates the app.
func NewApp(cfg *config.Config, l *logger.Logger, h *Handler) *App {
	return &App{
		Config:  cfg,
		Logger:  l,
		Handler: h,
	}
}

// Engine builds the gin engine with middleware and routes.
func (a *App) Engine() *gin.Engine {
	switch a.Config.RunMode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(a.Config.RunMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(recovery(a.Handler), traceMiddleware(), accessLog(a.Logger), terminal(a.Handler))
	r.NoRoute(noRoute(a.Handler))
	r.NoMethod(noMethod(a.Handler))

	a.Handler.Register(r)
	return r
}

// Reload applies a reloaded configuration to subsequent requests.
func (a *App) Reload(cfg *config.Config) {
	a.Handler.SetDispatcher(resp.New(resp.WithConfig(cfg.Response), resp.WithLogger(a.Logger)))
	a.Logger.WithField("response", cfg.Response).Info("configuration reloaded")
}

// Run serves until ctx is done, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           a.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	a.Logger.Infof(ctx, "%s listening on %s", a.Config.AppName, srv.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Logger.Info(ctx, "shutting down")
	return srv.Shutdown(shutdownCtx)
}
