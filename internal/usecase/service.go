package usecase

import (
	"cinema-catalog/internal/data/repository"
	"cinema-catalog/pkg/events"
	"cinema-catalog/pkg/lock"
	"cinema-catalog/pkg/metrics"
	"cinema-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Infra bundles the optional collaborators. Zero values fall back to
// in-process no-op implementations.
type Infra struct {
	Locker    lock.Locker
	Publisher events.Publisher
	Metrics   *metrics.Metrics
}

type Service struct {
	Lifecycle LifecycleService
	Catalog   CatalogService
	Movie     MovieService
	Genre     GenreService
}

func NewService(repo *repository.Repository, config *utils.Config, infra Infra, log *zap.Logger) *Service {
	lifecycle := NewLifecycleService(repo.Lifecycle, infra.Locker, config.Reconcile.LockTTL, infra.Publisher, infra.Metrics, log)
	genre := NewGenreService(repo.Genre, config.Cache.GenreTTL, log)

	return &Service{
		Lifecycle: lifecycle,
		Catalog:   NewCatalogService(repo.Movie, lifecycle, log),
		Movie:     NewMovieService(repo.Movie, genre, infra.Publisher, log),
		Genre:     genre,
	}
}
