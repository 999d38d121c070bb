package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/linlinbupt123-crypto/relay_service/api"
	"github.com/linlinbupt123-crypto/relay_service/chain"
	"github.com/linlinbupt123-crypto/relay_service/config"
	"github.com/linlinbupt123-crypto/relay_service/middleware"
	"github.com/linlinbupt123-crypto/relay_service/service"
	"github.com/linlinbupt123-crypto/relay_service/telemetry"
)

func main() {
	// 1. 加载配置 (.env -> ENV -> yaml)
	_ = godotenv.Load()
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}

	telemetry.InitLogger("sti-relay")

	// 2. 初始化依赖
	tokenClient, err := chain.NewERC20Client(context.Background(), cfg)
	if err != nil {
		log.Fatalf("dial chain failed: %v", err)
	}

	relayService := service.NewRelayService(tokenClient, cfg.PublicKey, cfg.Rate)

	// 3. Gin
	r := gin.Default()
	r.Use(middleware.Metrics())

	relayHandler := api.NewRelayHandler(relayService)

	r.GET("/", relayHandler.Root)
	r.POST("/transfer", relayHandler.Transfer)
	r.GET("/balance", relayHandler.Balance)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	slog.Info("relay node listening", "port", cfg.Port, "signer", tokenClient.From().Hex())
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}
