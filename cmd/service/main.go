package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/internal/cache"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/hashing"
	"storefront/internal/logger"
	"storefront/internal/payments"
	"storefront/internal/producer"
	"storefront/internal/repository"
	"storefront/internal/router"
	"storefront/internal/service"
	"storefront/internal/token"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}
	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)
	db := database.ConnectDB(&cfg.DB, log)
	defer database.CloseDB(db, log)

	repos := repository.New(db)

	var cacheClient service.CacheClient
	if cfg.Redis.Enabled {
		rc, err := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rc.Close()
		cacheClient = rc
	}

	var emailProducer service.EmailProducer
	var kafkaProducer *producer.EmailProducer
	if len(cfg.Kafka.Brokers) > 0 && cfg.Kafka.EmailTopic != "" {
		kafkaProducer = producer.NewEmailProducer(cfg.Kafka.Brokers, cfg.Kafka.EmailTopic)
		defer kafkaProducer.Close()
		emailProducer = kafkaProducer
	}

	tokens := token.NewHSProvider(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	hasher := hashing.NewBcrypt(0)
	gateway := payments.NewStripeGateway(cfg.Stripe.SecretKey, log)

	accessTTL := time.Duration(cfg.JWT.AccessTTL) * time.Minute

	authSvc := service.NewAuthService(
		repos.Users, repos.Verifications, repos.PasswordResets,
		hasher, tokens, emailProducer, cacheClient, accessTTL, log,
	)
	catalogSvc := service.NewCatalogService(repos.Categories, repos.Products, log)
	cartSvc := service.NewCartService(repos.Cart, repos.Products, log)
	checkoutSvc := service.NewCheckoutService(repos, gateway, emailProducer, log)
	orderSvc := service.NewOrderService(repos.Orders, log)
	reconciler := service.NewReconcilerService(repos.Orders, log)

	h := router.Handlers{
		Auth:     handlers.NewAuthHandler(authSvc, log),
		Catalog:  handlers.NewCatalogHandler(catalogSvc, log),
		Cart:     handlers.NewCartHandler(cartSvc, log),
		Checkout: handlers.NewCheckoutHandler(checkoutSvc, log),
		Orders:   handlers.NewOrderHandler(orderSvc, log),
		Webhooks: handlers.NewWebhookHandler(reconciler, cfg.Stripe.WebhookSecret, cacheClient, log),
	}

	r := router.Router(h, tokens, log)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("Starting storefront HTTP server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down storefront HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("Storefront HTTP server stopped gracefully")
}
