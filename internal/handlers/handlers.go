package handlers

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"CloudVault/internal/config"
	"CloudVault/internal/middleware"
	"CloudVault/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	objectService *service.ObjectService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.APIKey))

	objectHandler := NewObjectHandler(objectService, logger)

	r.Post("/api/upload", objectHandler.Upload)
	r.Get("/api/download/{id}", objectHandler.Download)
	r.Get("/api/list", objectHandler.List)
	r.Delete("/api/delete/{id}", objectHandler.Delete)

	return &Handler{Router: r}
}
