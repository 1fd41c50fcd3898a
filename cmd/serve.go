package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	commonmw "storefront/common/middleware"
	"storefront/config"
	"storefront/controllers"
	"storefront/repository"
	"storefront/routes"
	"storefront/services"
	"storefront/session"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 10 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.logger

	if gs, ok := a.store.(*repository.GormStore); ok {
		if err := gs.AutoMigrate(ctx); err != nil {
			return err
		}
	}
	if cfg.Seed {
		if err := a.seed(ctx); err != nil {
			return err
		}
	}

	metrics := a.metrics()
	backend := a.sessionBackend()
	sessions := session.NewManager(cfg.Session.Secret, cfg.Session.TTL, backend)
	cost := cfg.Auth.BcryptCost

	auth := services.NewAuthService(a.store, cost, metrics, log)
	users := services.NewUserService(a.store, cost, log)
	products := services.NewProductService(a.store, a.productCache(), metrics, log)
	reviews := services.NewReviewService(a.store, log)
	cart := services.NewCartService(a.store, metrics, log)
	orders := services.NewOrderService(a.store, a.publisher(), metrics, log)
	uploads := services.NewUploadService(a.presigner(), log)

	done := make(chan struct{})
	defer close(done)

	var limiter *commonmw.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = commonmw.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst, sweepInterval)
		go limiter.Run(done)
	}
	if mem, ok := backend.(*session.MemoryBackend); ok {
		go sweepSessions(mem, done, log)
	}

	router := routes.NewRouter(routes.Options{
		Logger:         log,
		Metrics:        metrics,
		AuthLimiter:    limiter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Sessions:       sessions,
		Users:          users,
		Auth:           controllers.NewAuthController(auth, users, sessions, cfg.Session.SecureCookie || cfg.Env == config.EnvProduction, log),
		Profile:        controllers.NewUserController(users),
		Products:       controllers.NewProductController(products, reviews),
		Cart:           controllers.NewCartController(cart),
		Orders:         controllers.NewOrderController(orders),
		Uploads:        controllers.NewUploadController(uploads),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	log.Info("storefront started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down storefront")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server exited cleanly")
	return nil
}

func sweepSessions(backend *session.MemoryBackend, done <-chan struct{}, log *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := backend.Sweep(); n > 0 {
				log.Debug("expired sessions removed", zap.Int("count", n))
			}
		case <-done:
			return
		}
	}
}
