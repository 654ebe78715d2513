package usecase

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/internal/data/repository"
	"cinema-catalog/internal/dto/request"
	"cinema-catalog/internal/dto/response"
	"cinema-catalog/pkg/utils"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const popularLimit = 10

// CatalogService answers read queries. Every call first runs the expiry
// cleanup so callers never see a movie past its end date.
type CatalogService interface {
	List(ctx context.Context, req *request.MovieListRequest) (*response.MovieListResponse, error)
	Export(ctx context.Context, req *request.MovieExportRequest) ([]*entity.Movie, error)
	GetByID(ctx context.Context, id int64) (*response.MovieResponse, error)
	Popular(ctx context.Context) ([]response.MovieResponse, error)
	NowShowing(ctx context.Context) ([]response.MovieResponse, error)
	ComingSoon(ctx context.Context) ([]response.MovieResponse, error)
	Active(ctx context.Context) ([]response.MovieResponse, error)
}

type catalogService struct {
	movies  repository.MovieRepository
	cleaner LifecycleService
	now     func() time.Time
	log     *zap.Logger
}

func NewCatalogService(movies repository.MovieRepository, cleaner LifecycleService, log *zap.Logger) CatalogService {
	return &catalogService{
		movies:  movies,
		cleaner: cleaner,
		now:     time.Now,
		log:     log.With(zap.String("service", "catalog")),
	}
}

// sweep runs the cleanup and returns today's date. A failed cleanup is only
// logged: the read queries filter by end date anyway.
func (s *catalogService) sweep(ctx context.Context) time.Time {
	now := s.now()
	if _, err := s.cleaner.Reconcile(ctx, now); err != nil {
		s.log.Warn("Expiry cleanup failed before read", zap.Error(err))
	}
	return startOfDay(now)
}

func statusFilter(status string) entity.MovieStatus {
	if status == request.StatusAll {
		return ""
	}
	return entity.MovieStatus(status)
}

func (s *catalogService) List(ctx context.Context, req *request.MovieListRequest) (*response.MovieListResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("List movies validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	s.sweep(ctx)

	filter := repository.MovieFilter{
		Status: statusFilter(req.Status),
		Search: req.Search,
		Order:  repository.OrderReleaseDesc,
	}

	movies, err := s.movies.FindAll(ctx, filter, req.Offset(), req.Limit())
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	total, err := s.movies.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	s.log.Debug("Movies listed",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewMovieListResponse(response.MoviesToResponse(movies), req.Page, req.Limit(), total), nil
}

func (s *catalogService) Export(ctx context.Context, req *request.MovieExportRequest) ([]*entity.Movie, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Export movies validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	today := s.sweep(ctx)

	movies, err := s.movies.FindAll(ctx, repository.MovieFilter{
		Status:   statusFilter(req.Status),
		Search:   req.Search,
		ActiveOn: &today,
		Order:    repository.OrderStatusThenRelease,
	}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("export movies: %w", err)
	}

	if !req.IncludeGenres {
		for _, movie := range movies {
			movie.Genres = nil
		}
	}

	s.log.Info("Movies exported",
		zap.Int("count", len(movies)),
		zap.String("format", req.Format),
	)
	return movies, nil
}

func (s *catalogService) GetByID(ctx context.Context, id int64) (*response.MovieResponse, error) {
	today := s.sweep(ctx)

	movie, err := s.movies.FindActiveByID(ctx, id, today)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, ErrNotFound
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *catalogService) Popular(ctx context.Context) ([]response.MovieResponse, error) {
	today := s.sweep(ctx)

	movies, err := s.movies.FindPopular(ctx, today, popularLimit)
	if err != nil {
		return nil, fmt.Errorf("popular movies: %w", err)
	}
	return response.MoviesToResponse(movies), nil
}

func (s *catalogService) NowShowing(ctx context.Context) ([]response.MovieResponse, error) {
	return s.listActive(ctx, repository.MovieFilter{
		Status: entity.MovieStatusNowShowing,
		Order:  repository.OrderReleaseDesc,
	})
}

func (s *catalogService) ComingSoon(ctx context.Context) ([]response.MovieResponse, error) {
	return s.listActive(ctx, repository.MovieFilter{
		Status: entity.MovieStatusComingSoon,
		Order:  repository.OrderReleaseAsc,
	})
}

func (s *catalogService) Active(ctx context.Context) ([]response.MovieResponse, error) {
	return s.listActive(ctx, repository.MovieFilter{
		ExcludeExpired: true,
		Order:          repository.OrderReleaseDesc,
	})
}

func (s *catalogService) listActive(ctx context.Context, filter repository.MovieFilter) ([]response.MovieResponse, error) {
	today := s.sweep(ctx)
	filter.ActiveOn = &today

	movies, err := s.movies.FindAll(ctx, filter, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	return response.MoviesToResponse(movies), nil
}
