package usecase

import (
	"cinema-catalog/internal/data/repository"
	"cinema-catalog/internal/dto/response"
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const genreCacheKey = "genres"

type GenreService interface {
	List(ctx context.Context) ([]response.GenreResponse, error)
	Get(ctx context.Context, id int64) (*response.GenreResponse, error)
	// Invalidate drops the cached list after a write that may add genres.
	Invalidate()
}

type genreService struct {
	repo  repository.GenreRepository
	cache *cache.Cache
	log   *zap.Logger
}

func NewGenreService(repo repository.GenreRepository, ttl time.Duration, log *zap.Logger) GenreService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &genreService{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
		log:   log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) List(ctx context.Context) ([]response.GenreResponse, error) {
	if cached, ok := s.cache.Get(genreCacheKey); ok {
		return cached.([]response.GenreResponse), nil
	}

	genres, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}

	out := make([]response.GenreResponse, len(genres))
	for i, genre := range genres {
		out[i] = response.GenreToResponse(genre)
	}

	s.cache.SetDefault(genreCacheKey, out)
	return out, nil
}

func (s *genreService) Get(ctx context.Context, id int64) (*response.GenreResponse, error) {
	genre, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get genre %d: %w", id, err)
	}
	if genre == nil {
		return nil, fmt.Errorf("get genre %d: %w", id, ErrGenreNotFound)
	}

	out := response.GenreToResponse(genre)
	return &out, nil
}

func (s *genreService) Invalidate() {
	s.cache.Delete(genreCacheKey)
}
