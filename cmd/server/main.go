package main

import (
	"net/http"

	"go.uber.org/zap"

	"CloudVault/internal/config"
	"CloudVault/internal/handlers"
	"CloudVault/internal/middleware"
	"CloudVault/internal/repo"
	"CloudVault/internal/service"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	objectRepo := repo.NewObjectRepository(gormDB)
	objectService := service.NewObjectService(objectRepo)

	h := handlers.NewHandler(objectService, sugar, cfg)

	sugar.Infow(
		"Starting server",
		"addr", cfg.RunAddress,
		"DatabaseDSN", cfg.DatabaseDSN,
	)

	if err := http.ListenAndServe(cfg.RunAddress, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
