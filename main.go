package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/road-mate/api-go/config"
	"github.com/road-mate/api-go/jobs"
	"github.com/road-mate/api-go/logger"
	"github.com/road-mate/api-go/realtime"
	"github.com/road-mate/api-go/routes"
	"github.com/road-mate/api-go/settings"
)

func main() {
	// A missing .env is fine in production, where config comes from the
	// environment.
	_ = godotenv.Load()

	cfg := config.New()

	logger.Init(&logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: cfg.Log.Component,
	})

	db := config.InitDB(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	hub := realtime.NewHub(redisClient)

	ctx := context.Background()
	if err := hub.Ping(ctx); err != nil {
		logger.Warn("redis unreachable, realtime fanout degraded", "error", err)
	}

	settingsService := settings.NewService(db, hub)
	if err := settingsService.Load(ctx); err != nil {
		logger.Warn("could not load platform settings, using defaults", "error", err)
	}
	settingsService.Watch(ctx)
	defer settingsService.Close()

	sweeper := jobs.NewPenaltySweeper(db, time.Hour)
	go sweeper.Run(ctx)

	r := gin.Default()
	routes.SetupRoutes(r, db, hub, settingsService)

	logger.Info("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("server exited", "error", err)
	}
}
