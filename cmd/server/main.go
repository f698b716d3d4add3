package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"spicemart-backend/internal/cache"
	"spicemart-backend/internal/config"
	apphttp "spicemart-backend/internal/http"
	"spicemart-backend/internal/media"
	"spicemart-backend/internal/service"
	"spicemart-backend/internal/store"
	"spicemart-backend/pkg/auth"
	"spicemart-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded:", err)
	}
	cfg := config.Load()
	lg := logger.New(logger.Options{Service: "spicemart-backend", Level: cfg.LogLevel})

	ctx := context.Background()
	db, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatal(err)
	}
	lg.Info("connected to mongodb", "db", cfg.MongoDB)

	var productCache cache.ProductCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to redis: ", err)
		}
		productCache = cache.NewRedisCache(client)
		lg.Info("product cache enabled", "addr", cfg.RedisAddr)
	}

	mediaStore, err := media.NewDiskStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.Fatal(err)
	}

	tokens := auth.New(cfg.JWTSecret)
	users := store.NewUserStore(db)
	carts := store.NewCartStore(db)
	products := store.NewProductStore(db)
	orders := store.NewOrderStore(db)

	r := apphttp.NewRouter(cfg, tokens, apphttp.Handlers{
		Users:    apphttp.NewUserHandler(service.NewIdentity(users, tokens, cfg.AdminEmail, cfg.AdminPassword)),
		Cart:     apphttp.NewCartHandler(service.NewCart(carts)),
		Products: apphttp.NewProductHandler(service.NewCatalog(products, productCache), mediaStore),
		Orders:   apphttp.NewOrderHandler(service.NewOrders(orders, products)),
	})

	lg.Info("listening", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
