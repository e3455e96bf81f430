// Package itlearn собирает REST API платформы: хранилище, кеш, брокер, внешние клиенты и маршруты.
package itlearn

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/itlearnpro/internal/cache"
	"github.com/magabrotheeeer/itlearnpro/internal/certificate"
	"github.com/magabrotheeeer/itlearnpro/internal/config"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/jwt"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/itlearnpro/internal/lib/sl"
	"github.com/magabrotheeeer/itlearnpro/internal/llm"
	"github.com/magabrotheeeer/itlearnpro/internal/metrics"
	"github.com/magabrotheeeer/itlearnpro/internal/migrations"
	"github.com/magabrotheeeer/itlearnpro/internal/paymentprovider"
	adminservice "github.com/magabrotheeeer/itlearnpro/internal/services/admin"
	authservice "github.com/magabrotheeeer/itlearnpro/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/itlearnpro/internal/services/catalog"
	contactservice "github.com/magabrotheeeer/itlearnpro/internal/services/contact"
	paymentservice "github.com/magabrotheeeer/itlearnpro/internal/services/payment"
	profileservice "github.com/magabrotheeeer/itlearnpro/internal/services/profile"
	progressservice "github.com/magabrotheeeer/itlearnpro/internal/services/progress"
	summaryservice "github.com/magabrotheeeer/itlearnpro/internal/services/summary"
	"github.com/magabrotheeeer/itlearnpro/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New поднимает зависимости и собирает HTTP-сервер.
// Redis и RabbitMQ необязательны: без них каталог читается из базы, а уведомления не публикуются.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		logger: logger,
		db:     db,
	}

	var catalogCache catalogservice.Cache
	cacheRedis, err := cache.InitServer(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable, catalog cache disabled", sl.Err(err))
	} else {
		app.cache = cacheRedis
		catalogCache = cacheRedis
	}

	var publisher contactservice.Publisher
	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		logger.Warn("rabbitmq unavailable, contact notifications disabled", sl.Err(err))
	} else {
		ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
		if err != nil {
			_ = conn.Close()
			logger.Warn("rabbitmq channel setup failed, contact notifications disabled", sl.Err(err))
		} else {
			app.conn = conn
			app.ch = ch
			publisher = rabbitmq.NewPublisher(ch)
		}
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	stripeClient := paymentprovider.NewClient(cfg.Stripe, nil)

	services := Services{
		Auth:     authservice.New(db, jwtMaker, m),
		Catalog:  catalogservice.New(db, catalogCache, cfg.CacheTTL, logger),
		Progress: progressservice.New(db, m, logger),
		Profile:  profileservice.New(db, certificate.NewRenderer(), m, logger),
		Summary:  summaryservice.New(db, llm.New(cfg.OpenAI), cfg.OpenAI, m, logger),
		Payment:  paymentservice.New(db, stripeClient, m, logger),
		Contact:  contactservice.New(db, publisher, m, logger),
		DB:       db,
		Metrics:  m,
	}
	services.Admin = adminservice.New(db, services.Auth, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, services)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		_ = a.conn.Close()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
