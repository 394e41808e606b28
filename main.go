package main

import (
	"context"
	"net/http"
	"os"

	"micarta/config"
	"micarta/internal/analytics"
	httpapi "micarta/internal/api/http"
	"micarta/internal/service"
	"micarta/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var rdb *redis.Client
	var store service.CartStore
	if os.Getenv("REDIS_HOST") != "" {
		rdb = config.MustInitRedis()
		store = storage.NewRedisCartStore(rdb, "")
	} else {
		store = storage.NewFileCartStore(config.CartFilePath())
		logger.Info("redis not configured, using file cart store", zap.String("path", config.CartFilePath()))
	}

	var menuRepo service.MenuRepository
	if os.Getenv("DB_HOST") != "" {
		db := config.MustInitPostgres()
		defer db.Close()
		repo := storage.NewPostgresMenuRepository(db)
		if err := repo.EnsureSchema(); err != nil {
			logger.Fatal("menu schema setup failed", zap.Error(err))
		}
		menuRepo = repo
	}

	var publisher service.OrderPublisher
	if os.Getenv("KAFKA_BROKER") != "" {
		writer := config.NewKafkaWriter(config.OrdersTopic())
		defer writer.Close()
		publisher = storage.NewKafkaOrderPublisher(writer)
	}

	cart := service.NewCartService(ctx, store, publisher, logger)
	menuSvc := service.NewMenuService(menuRepo)

	var stats analytics.StatsStore
	if rdb != nil && os.Getenv("KAFKA_BROKER") != "" {
		statsStore := storage.NewRedisStatsStore(rdb)
		stats = statsStore
		consumer := analytics.NewConsumer(config.NewKafkaReader(config.OrdersTopic(), "order-stats"), statsStore, logger)
		go consumer.Start(ctx)
	}

	handler := httpapi.NewHandler(cart, menuSvc, stats, service.DefaultQRGenerator{}, logger)
	router := httpapi.NewRouter(handler)

	addr := config.ListenAddr()
	logger.Info("cart service starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
