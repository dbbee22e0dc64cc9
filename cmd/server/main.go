package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/handlers"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/outbox"
	mysqlrepo "github.com/jhaanurag/multivendor-ecom-sub000/internal/repository/mysql"
	redisrepo "github.com/jhaanurag/multivendor-ecom-sub000/internal/repository/redis"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/search"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/services"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/validation"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/config"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/database"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/jwt"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/logger"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/tracer"

	"go.uber.org/zap"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"
	mongorepo "github.com/jhaanurag/multivendor-ecom-sub000/internal/repository/mongo"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Tracing.Endpoint != "" {
		tp, err := tracer.InitTracer(cfg.Server.Name, cfg.Tracing.Endpoint)
		if err != nil {
			zlog.Warn("tracing disabled", zap.Error(err))
		} else {
			defer tp.Shutdown(context.Background())
		}
	}

	db, err := database.InitMySQL(cfg.Mysql)
	if err != nil {
		zlog.Fatal("connect mysql", zap.Error(err))
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Shop{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.SubOrder{},
		&models.SubOrderItem{},
		&models.OutboxEvent{},
	); err != nil {
		zlog.Fatal("auto migrate", zap.Error(err))
	}

	rdb, err := database.InitRedis(cfg.Redis)
	if err != nil {
		zlog.Fatal("connect redis", zap.Error(err))
	}

	// The audit trail is optional; the API keeps serving without it.
	var audit repository.AuditLogger
	if mongoDB, err := database.InitMongo(cfg.MongoDB); err != nil {
		zlog.Warn("audit log disabled", zap.Error(err))
	} else {
		audit = mongorepo.NewAuditLogger(mongoDB, cfg.MongoDB.Collection, cfg.Server.Name)
	}

	// Full-text search is optional; listing falls back to SQL filtering.
	var index search.ProductIndex
	if cfg.Elasticsearch.URL != "" {
		index, err = search.NewElasticIndex(cfg.Elasticsearch.URL, cfg.Elasticsearch.Index)
		if err != nil {
			zlog.Warn("product search disabled", zap.Error(err))
			index = nil
		}
	}

	publisher, err := outbox.NewRabbitPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
	if err != nil {
		zlog.Fatal("connect rabbitmq", zap.Error(err))
	}
	defer publisher.Close()

	users := mysqlrepo.NewUserRepository(db)
	shops := mysqlrepo.NewShopRepository(db)
	products := mysqlrepo.NewProductRepository(db)
	orders := mysqlrepo.NewOrderRepository(db)
	outboxRepo := mysqlrepo.NewOutboxRepository(db)
	analytics := mysqlrepo.NewAnalyticsRepository(db)
	carts := redisrepo.NewCartRepository(rdb)
	cache := redisrepo.NewProductCache(rdb)

	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, zlog)
	go dispatcher.Run(ctx)

	tokens := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.TTLHours)*time.Hour)
	validate := validation.New()

	authSvc := services.NewAuthService(users, tokens)
	catalogSvc := services.NewCatalogService(products, shops, users, index, cache, zlog)
	cartSvc := services.NewCartService(carts, products)
	orderSvc := services.NewOrderService(orders, products, shops, users, carts, audit, zlog)
	analyticsSvc := services.NewAnalyticsService(analytics, shops)

	checkoutQPS := cfg.Server.CheckoutQPS
	if checkoutQPS <= 0 {
		checkoutQPS = 20
	}
	if err := handlers.InitSentinel(checkoutQPS); err != nil {
		zlog.Fatal("init flow control", zap.Error(err))
	}

	router := handlers.NewRouter(handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, validate),
		Products:  handlers.NewProductHandler(catalogSvc, validate),
		Cart:      handlers.NewCartHandler(cartSvc, validate),
		Orders:    handlers.NewOrderHandler(orderSvc, validate),
		Shops:     handlers.NewShopHandler(catalogSvc, validate),
		Wishlist:  handlers.NewWishlistHandler(catalogSvc, validate),
		Analytics: handlers.NewAnalyticsHandler(analyticsSvc),
	}, tokens, zlog, cfg.Server.Name)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}
