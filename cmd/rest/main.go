package main

import (
	"context"
	"log"

	"quickchat-be/internal/bootstrap"
	"quickchat-be/internal/config"
	"quickchat-be/internal/model"
	"quickchat-be/internal/server"
	"quickchat-be/internal/tracer"
	"quickchat-be/pkg/database"
)

func main() {
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.ChatSession{}); err != nil {
		log.Panicf("Failed to run migrations: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	srv := server.New(cfg, container)

	log.Fatal(srv.Run())
}
