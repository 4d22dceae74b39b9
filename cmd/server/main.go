package main

import (
	"net/http"

	"agrocampo-be/internal/cache"
	"agrocampo-be/internal/cart"
	"agrocampo-be/internal/config"
	"agrocampo-be/internal/db"
	"agrocampo-be/internal/farm"
	"agrocampo-be/internal/geocode"
	"agrocampo-be/internal/httpapi"
	"agrocampo-be/internal/logger"
	"agrocampo-be/internal/product"
	"agrocampo-be/internal/purchase"
	"agrocampo-be/internal/shipment"
	"agrocampo-be/internal/shipping"
	"agrocampo-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	var distanceCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		distanceCache = cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, 0)
	}

	calc := shipping.NewCalculator(cfg.ShippingRates)
	resolver := geocode.NewResolver(cfg.MapsAPIKey, distanceCache)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	farmRepo := farm.NewRepository(database)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	purchaseRepo := purchase.NewRepository(database, calc)
	purchaseSvc := purchase.NewService(purchaseRepo, userRepo)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productSvc, purchaseSvc)

	shipmentRepo := shipment.NewRepository(database)
	shipmentSvc := shipment.NewService(shipmentRepo, resolver, calc)

	handler := httpapi.NewHandler(userSvc, productSvc, farmRepo, cartSvc, purchaseSvc, shipmentSvc)

	addr := ":" + cfg.AppPort
	logger.L().Info("server listening", zap.String("addr", addr))

	if err := http.ListenAndServe(addr, handler.Routes()); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
