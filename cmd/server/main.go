package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-be/internal/cart"
	"storefront-be/internal/config"
	"storefront-be/internal/db"
	"storefront-be/internal/logger"
	"storefront-be/internal/mail"
	"storefront-be/internal/metrics"
	"storefront-be/internal/middleware"
	"storefront-be/internal/money"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/rest"
	"storefront-be/internal/storage"
	"storefront-be/internal/telemetry"
	"storefront-be/internal/user"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	sessionPrefix   = "storefront"
	shutdownTimeout = 10 * time.Second
)

var (
	initDBFunc      = db.InitDB
	initObjectsFunc = func(ctx context.Context, cfg *config.Config) (storage.ObjectAPI, error) {
		return storage.NewS3Client(ctx, cfg)
	}
	startServerFunc = func(srv *http.Server) error {
		return srv.ListenAndServe()
	}
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	if cfg.JWTSecret == "" {
		logger.L().Warn("JWT_SECRET is empty; every login will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Init(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = shutdownTracing(tctx)
	}()

	database := initDBFunc(cfg)
	defer database.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	objects, err := initObjectsFunc(ctx, cfg)
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	limiter := middleware.NewLimiter(cfg.InternalKey)
	go limiter.Cleanup(ctx)

	handler, err := newServer(cfg, database, rdb, objects, reg, limiter)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.L().Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

// newServer builds every service and returns the fully wrapped handler.
func newServer(
	cfg *config.Config,
	database *sql.DB,
	rdb *redis.Client,
	objects storage.ObjectAPI,
	reg *metrics.Registry,
	limiter *middleware.Limiter,
) (http.Handler, error) {
	formatter, err := money.NewFormatter(cfg.StoreCurrency, cfg.StoreLocale)
	if err != nil {
		return nil, err
	}

	store := storage.NewStore(objects, storage.PublicBase(cfg), reg)

	productSvc := product.NewService(product.NewRepository(database), store, cfg.S3Bucket)
	orderSvc := order.NewService(order.NewRepository(database))
	userSvc := user.NewService(user.NewRepository(database))
	cartSvc := cart.NewService(cart.NewRepository(rdb, sessionPrefix, cfg.SessionTTL), productSvc)

	h := &rest.Handler{
		Products: productSvc,
		Orders:   orderSvc,
		Cart:     cartSvc,
		Users:    userSvc,
		Storage:  store,
		Mail:     mail.NewSender(cfg, cfg.StoreName, reg),
		Metrics:  reg,
		Money:    formatter,
		Settings: rest.Settings{
			StoreName:    cfg.StoreName,
			Currency:     formatter.Currency(),
			Locale:       cfg.StoreLocale,
			Bucket:       cfg.S3Bucket,
			Environment:  cfg.AppEnv,
			MailEnabled:  cfg.SMTPHost != "",
			TokenTTL:     user.TokenTTL.String(),
			CookieSecure: cfg.AppEnv == "production",
		},
	}

	return setupRouter(rest.NewRouter(h, cfg.CORSOrigins), reg, limiter), nil
}

// setupRouter wraps the API in the net/http middleware chain, outermost first:
// tracing, request id, auth, request log, metrics, rate limit.
func setupRouter(api http.Handler, reg *metrics.Registry, limiter *middleware.Limiter) http.Handler {
	var h http.Handler = api
	h = limiter.Middleware(h)
	h = middleware.MetricsMiddleware(reg)(h)
	h = logger.LoggingMiddleware(h)
	h = middleware.AuthMiddleware(h)
	h = logger.RequestIDMiddleware(h)
	return telemetry.Handler(h)
}
