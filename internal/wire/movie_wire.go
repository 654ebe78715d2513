package wire

import (
	"cinema-catalog/internal/adaptor"
	"cinema-catalog/pkg/middleware"
	"cinema-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	handler *adaptor.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies", handler.Movie.GetMovies)
	r.Get("/api/movies/popular", handler.Movie.GetPopular)
	r.Get("/api/movies/{id}", handler.Movie.GetMovieByID)
	r.Get("/api/genres", handler.Genre.GetGenres)
	r.Get("/api/genres/{id}", handler.Genre.GetGenreByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.AdminAuth(config.Auth, log))

		r.Get("/", handler.AdminMovie.ListMovies)
		r.Post("/", handler.AdminMovie.CreateMovie)
		r.Post("/reconcile", handler.AdminMovie.Reconcile)
		r.Put("/{id}", handler.AdminMovie.UpdateMovie)
		r.Delete("/{id}", handler.AdminMovie.DeleteMovie)
	})
}
