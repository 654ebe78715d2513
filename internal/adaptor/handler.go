package adaptor

import (
	"cinema-catalog/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Movie      *MovieHandler
	AdminMovie *AdminMovieHandler
	Genre      *GenreHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:      NewMovieHandler(service.Catalog, log),
		AdminMovie: NewAdminMovieHandler(service.Catalog, service.Movie, service.Lifecycle, log),
		Genre:      NewGenreHandler(service.Genre, log),
	}
}
