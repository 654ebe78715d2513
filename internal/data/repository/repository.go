package repository

import (
	"cinema-catalog/pkg/database"

	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks cinema-catalog/internal/data/repository MovieRepository,GenreRepository,LifecycleRepository

type Repository struct {
	Movie     MovieRepository
	Genre     GenreRepository
	Lifecycle LifecycleRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:     NewMovieRepository(db, log),
		Genre:     NewGenreRepository(db, log),
		Lifecycle: NewLifecycleRepository(db, log),
	}
}
