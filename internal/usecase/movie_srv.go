package usecase

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/internal/data/repository"
	"cinema-catalog/internal/dto/request"
	"cinema-catalog/internal/dto/response"
	"cinema-catalog/pkg/events"
	"cinema-catalog/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// MovieService handles catalog writes.
type MovieService interface {
	Create(ctx context.Context, req *request.MovieRequest) (int64, error)
	Update(ctx context.Context, id int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	Delete(ctx context.Context, id int64) error
}

type movieService struct {
	movies    repository.MovieRepository
	genres    GenreService
	publisher events.Publisher
	now       func() time.Time
	log       *zap.Logger
}

func NewMovieService(
	movies repository.MovieRepository,
	genres GenreService,
	publisher events.Publisher,
	log *zap.Logger,
) MovieService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &movieService{
		movies:    movies,
		genres:    genres,
		publisher: publisher,
		now:       time.Now,
		log:       log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) Create(ctx context.Context, req *request.MovieRequest) (int64, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return 0, newValidationError(errs)
	}

	fields := map[string]string{}

	releaseDate, _ := time.Parse(dateLayout, req.ReleaseDate)
	endDate, ok := parseOptionalDate(req.EndDate)
	if !ok {
		fields["EndDate"] = "Must be a date in " + dateLayout + " format"
	}
	refs, genreErr := normalizeGenres(req.Genres)
	if genreErr != "" {
		fields["Genres"] = genreErr
	}
	if endDate != nil && endDate.Before(releaseDate) {
		fields["EndDate"] = "Must not be before the release date"
	}
	if len(fields) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", fields))
		return 0, newValidationError(fields)
	}

	duration := entity.DefaultDuration
	if req.Duration != nil {
		duration = *req.Duration
	}

	movie := &entity.Movie{
		Title:          strings.TrimSpace(req.Title),
		OriginalTitle:  nullable(req.OriginalTitle),
		Director:       nullable(req.Director),
		Actors:         nullable(req.Actors),
		Description:    nullable(req.Description),
		Duration:       duration,
		ReleaseDate:    releaseDate,
		EndDate:        endDate,
		Language:       nullable(req.Language),
		Subtitle:       nullable(req.Subtitle),
		Country:        nullable(req.Country),
		PosterImage:    nullable(req.PosterImage),
		BannerImage:    nullable(req.BannerImage),
		TrailerURL:     nullable(req.TrailerURL),
		AgeRestriction: nullable(req.AgeRestriction),
		Status:         entity.MovieStatus(req.Status),
	}

	if err := s.movies.Create(ctx, movie, refs); err != nil {
		return 0, s.translate(err)
	}
	if hasNamedGenre(refs) {
		s.genres.Invalidate()
	}

	s.log.Info("Movie created",
		zap.Int64("movie_id", movie.ID),
		zap.String("title", movie.Title),
		zap.Int("genre_count", len(refs)),
	)
	return movie.ID, nil
}

func (s *movieService) Update(ctx context.Context, id int64, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, newValidationError(errs)
	}

	today := startOfDay(s.now())
	movie, err := s.movies.FindActiveByID(ctx, id, today)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, ErrNotFound
	}

	fields := map[string]string{}
	applyUpdate(movie, req)

	if req.ReleaseDate != nil {
		movie.ReleaseDate, _ = time.Parse(dateLayout, *req.ReleaseDate)
	}
	if req.EndDate != nil {
		endDate, ok := parseOptionalDate(req.EndDate)
		if !ok {
			fields["EndDate"] = "Must be a date in " + dateLayout + " format"
		}
		movie.EndDate = endDate
	}
	if movie.EndDate != nil && movie.EndDate.Before(movie.ReleaseDate) {
		fields["EndDate"] = "Must not be before the release date"
	}

	var refs []entity.GenreRef
	replaceGenres := req.Genres != nil
	if replaceGenres {
		var genreErr string
		refs, genreErr = normalizeGenres(*req.Genres)
		if genreErr != "" {
			fields["Genres"] = genreErr
		}
	}
	if len(fields) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", fields))
		return nil, newValidationError(fields)
	}

	if err := s.movies.Update(ctx, movie, replaceGenres, refs); err != nil {
		return nil, s.translate(err)
	}
	if hasNamedGenre(refs) {
		s.genres.Invalidate()
	}

	updated, err := s.movies.FindActiveByID(ctx, id, today)
	if err != nil {
		return nil, fmt.Errorf("reload movie: %w", err)
	}
	if updated == nil {
		// the new end date already lies in the past
		updated = movie
	}

	s.log.Info("Movie updated",
		zap.Int64("movie_id", id),
		zap.Bool("genres_replaced", replaceGenres),
	)

	resp := response.MovieToResponse(updated)
	return &resp, nil
}

func (s *movieService) Delete(ctx context.Context, id int64) error {
	if err := s.movies.Delete(ctx, id); err != nil {
		return s.translate(err)
	}

	s.log.Info("Movie deleted", zap.Int64("movie_id", id))

	event := events.NewEvent(events.TypeMovieDeleted, map[string]int64{"id_movie": id})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish event", zap.Error(err), zap.String("type", event.Type))
	}
	return nil
}

// translate maps store errors onto the service's error vocabulary.
func (s *movieService) translate(err error) error {
	var unknown *repository.UnknownGenreError
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrReferentialConflict):
		return ErrReferentialConflict
	case errors.As(err, &unknown):
		return newValidationError(map[string]string{"Genres": unknown.Error()})
	default:
		return err
	}
}

func applyUpdate(movie *entity.Movie, req *request.MovieUpdateRequest) {
	if req.Title != nil {
		movie.Title = strings.TrimSpace(*req.Title)
	}
	if req.Duration != nil {
		movie.Duration = *req.Duration
	}
	if req.Status != nil {
		movie.Status = entity.MovieStatus(*req.Status)
	}

	optional := []struct {
		in  *string
		out **string
	}{
		{req.OriginalTitle, &movie.OriginalTitle},
		{req.Director, &movie.Director},
		{req.Actors, &movie.Actors},
		{req.Description, &movie.Description},
		{req.Language, &movie.Language},
		{req.Subtitle, &movie.Subtitle},
		{req.Country, &movie.Country},
		{req.PosterImage, &movie.PosterImage},
		{req.BannerImage, &movie.BannerImage},
		{req.TrailerURL, &movie.TrailerURL},
		{req.AgeRestriction, &movie.AgeRestriction},
	}
	for _, f := range optional {
		if f.in != nil {
			*f.out = nullable(f.in)
		}
	}
}

// nullable maps a blank string to NULL.
func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// parseOptionalDate treats nil and blank as "no date". ok is false when the
// value is present but malformed.
func parseOptionalDate(s *string) (*time.Time, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, strings.TrimSpace(*s))
	if err != nil {
		return nil, false
	}
	return &t, true
}

// normalizeGenres trims names and drops duplicates, keeping first occurrence.
func normalizeGenres(refs []entity.GenreRef) ([]entity.GenreRef, string) {
	out := make([]entity.GenreRef, 0, len(refs))
	seen := make(map[entity.GenreRef]bool, len(refs))

	for _, ref := range refs {
		switch r := ref.(type) {
		case entity.GenreByID:
			if r <= 0 {
				return nil, fmt.Sprintf("Invalid genre id %d", int64(r))
			}
		case entity.GenreByName:
			name := strings.TrimSpace(string(r))
			if name == "" {
				return nil, "Genre name must not be empty"
			}
			if len(name) > 100 {
				return nil, "Genre name is too long"
			}
			ref = entity.GenreByName(name)
		}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out, ""
}

func hasNamedGenre(refs []entity.GenreRef) bool {
	for _, ref := range refs {
		if _, ok := ref.(entity.GenreByName); ok {
			return true
		}
	}
	return false
}
