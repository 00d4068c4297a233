package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/poohbae/CakeHistory/internal/config"
	httpapi "github.com/poohbae/CakeHistory/internal/controllers/http"
	"github.com/poohbae/CakeHistory/internal/infra/cache"
	"github.com/poohbae/CakeHistory/internal/infra/database"
	"github.com/poohbae/CakeHistory/internal/infra/ownerlock"
	"github.com/poohbae/CakeHistory/internal/infra/rabbitmq"
	"github.com/poohbae/CakeHistory/internal/metrics"
	"github.com/poohbae/CakeHistory/internal/platform/logger"
	"github.com/poohbae/CakeHistory/internal/repository/gormrepo"
	"github.com/poohbae/CakeHistory/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer lg.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		lg.Fatal("db: connect", "driver", cfg.DBDriver, "error", err)
	}
	if cfg.SeedCatalog {
		if err := database.Seed(db); err != nil {
			lg.Fatal("db: seed catalog", "error", err)
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	orders := gormrepo.NewOrderRepository(db, lg)
	carts := gormrepo.NewCartRepository(db, lg)
	payments := gormrepo.NewPaymentMethodRepository(db)
	tx := gormrepo.NewTransactor(db)
	resolver := services.NewCatalogResolver(gormrepo.NewCatalogRepository(db), lg)

	var locker ownerlock.Locker = ownerlock.NewLocal()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			DB:           0,
			PoolSize:     50,
			MinIdleConns: 5,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			lg.Warn("redis unreachable, using local cart locks without catalog cache", "addr", cfg.RedisAddr, "error", err)
		} else {
			resolver.SetCache(cache.NewRedisCatalogCache(rdb, cfg.CatalogCacheTTL, lg))
			locker = ownerlock.NewRedis(rdb, cfg.OwnerLockTTL, lg)
		}
		cancel()
	}

	var publisher rabbitmq.PublisherInterface = rabbitmq.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange, lg)
		if err != nil {
			lg.Fatal("failed to init publisher", "error", err)
		}
		defer p.Close()
		publisher = p
	}

	guard := services.NewConsistencyGuard(tx, orders, carts, cfg.StorageTimeout, lg)
	checkout := services.NewCheckoutService(services.CheckoutDeps{
		Validator: services.NewCheckoutValidator(time.Now),
		Assembler: services.NewOrderAssembler(resolver, time.Now),
		Guard:     guard,
		Carts:     carts,
		Payments:  payments,
		Locker:    locker,
		Publisher: publisher,
		Metrics:   metrics.NewCheckoutMetrics(reg),
		Timeout:   cfg.StorageTimeout,
		Log:       lg,
	})
	cart := services.NewCartService(carts, payments, resolver, tx, locker, cfg.StorageTimeout, lg)
	orderSvc := services.NewOrderService(orders, guard, publisher, lg)

	handler := httpapi.NewHandler(resolver, cart, checkout, orderSvc, lg)

	gin.SetMode(gin.ReleaseMode)
	r := httpapi.NewRouter(handler, httpapi.RouterOptions{
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     metrics.NewServerMetrics(reg),
		Log:         lg,
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(reg)))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		lg.Info("starting storefront service", "port", cfg.Port, "driver", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server run", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("graceful shutdown failed", "error", err)
	}
	lg.Info("server stopped")
}
