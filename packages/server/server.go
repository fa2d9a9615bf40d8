package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"club-leaderboard-api/packages/auth"
	"club-leaderboard-api/packages/core"
	"club-leaderboard-api/packages/web"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type RouterConfig struct {
	Core      *core.Module
	Auth      *auth.Module
	StaticDir string
	Gatherer  prometheus.Gatherer
	Logger    *zap.Logger
}

// NewRouter assembles the HTTP surface: JSON API, health, metrics, swagger
// docs and the static front-end for everything else.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(web.Recovery(cfg.Logger))
	r.Use(web.RequestLogger(cfg.Logger.Named("http")))
	r.Use(web.CORS())

	cfg.Core.SetupRoutes(r, cfg.Auth.RequireAdmin())

	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	static := web.NewStatic(cfg.StaticDir, cfg.Auth.Authorize, cfg.Logger.Sugar().Named("static"))
	r.NoRoute(static.Handle)

	return r
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests.
func Run(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
