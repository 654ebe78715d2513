// internal/wire/wire.go
package wire

import (
	"context"
	"net/http"
	"time"

	"cinema-catalog/internal/adaptor"
	"cinema-catalog/internal/data/repository"
	"cinema-catalog/internal/usecase"
	"cinema-catalog/pkg/database"
	"cinema-catalog/pkg/middleware"
	"cinema-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and the router.
func Wiring(
	db database.PgxIface,
	repo *repository.Repository,
	config *utils.Config,
	infra usecase.Infra,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, infra, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(db, handler, config, infra, logger),
		Service: service,
	}
}

func setupRouter(
	db database.PgxIface,
	handler *adaptor.Handler,
	config *utils.Config,
	infra usecase.Infra,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS)
	r.Use(infra.Metrics.Middleware)

	wireMovie(r, handler, config, logger)

	r.Get("/health", healthHandler(db, logger))
	r.Method(http.MethodGet, "/metrics", infra.Metrics.Handler())

	return r
}

func healthHandler(db database.PgxIface, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logger.Error("Health check failed", zap.Error(err))
			utils.ResponseJSON(w, http.StatusServiceUnavailable, false, "Database unavailable", nil, nil)
			return
		}
		utils.ResponseSuccess(w, "OK", nil)
	}
}
