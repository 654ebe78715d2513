package response

import (
	"cinema-catalog/internal/data/entity"
	"time"
)

const dateLayout = "2006-01-02"

type MovieResponse struct {
	ID             int64     `json:"id_movie"`
	Title          string    `json:"title"`
	OriginalTitle  *string   `json:"original_title"`
	Director       *string   `json:"director"`
	Actors         *string   `json:"actors"`
	Description    *string   `json:"description"`
	Duration       int       `json:"duration"`
	ReleaseDate    string    `json:"release_date"`
	EndDate        *string   `json:"end_date"`
	Language       *string   `json:"language"`
	Subtitle       *string   `json:"subtitle"`
	Country        *string   `json:"country"`
	PosterImage    *string   `json:"poster_image"`
	BannerImage    *string   `json:"banner_image"`
	TrailerURL     *string   `json:"trailer_url"`
	AgeRestriction *string   `json:"age_restriction"`
	Status         string    `json:"status"`
	Genres         []string  `json:"genres"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type MovieCreatedResponse struct {
	ID int64 `json:"id_movie"`
}

type MovieExportResponse struct {
	Movies []MovieResponse `json:"movies"`
	Total  int             `json:"total"`
}

type ReconcileFailureResponse struct {
	MovieID int64  `json:"id_movie"`
	Error   string `json:"error"`
}

type ReconcileResponse struct {
	RunID        string                     `json:"run_id"`
	DeletedCount int                        `json:"deleted_count"`
	ExpiredCount int                        `json:"expired_count"`
	Failures     []ReconcileFailureResponse `json:"failures"`
	Skipped      bool                       `json:"skipped"`
	DurationMS   int64                      `json:"duration_ms"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	var endDate *string
	if movie.EndDate != nil {
		s := movie.EndDate.Format(dateLayout)
		endDate = &s
	}

	genres := movie.Genres
	if genres == nil {
		genres = []string{}
	}

	return MovieResponse{
		ID:             movie.ID,
		Title:          movie.Title,
		OriginalTitle:  movie.OriginalTitle,
		Director:       movie.Director,
		Actors:         movie.Actors,
		Description:    movie.Description,
		Duration:       movie.Duration,
		ReleaseDate:    movie.ReleaseDate.Format(dateLayout),
		EndDate:        endDate,
		Language:       movie.Language,
		Subtitle:       movie.Subtitle,
		Country:        movie.Country,
		PosterImage:    movie.PosterImage,
		BannerImage:    movie.BannerImage,
		TrailerURL:     movie.TrailerURL,
		AgeRestriction: movie.AgeRestriction,
		Status:         string(movie.Status),
		Genres:         genres,
		CreatedAt:      movie.CreatedAt,
		UpdatedAt:      movie.UpdatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		out[i] = MovieToResponse(movie)
	}
	return out
}

func ReconcileToResponse(result *entity.ReconcileResult) ReconcileResponse {
	failures := make([]ReconcileFailureResponse, len(result.Failures))
	for i, f := range result.Failures {
		failures[i] = ReconcileFailureResponse{MovieID: f.MovieID, Error: f.Reason}
	}

	return ReconcileResponse{
		RunID:        result.RunID.String(),
		DeletedCount: result.DeletedCount,
		ExpiredCount: result.ExpiredCount,
		Failures:     failures,
		Skipped:      result.Skipped,
		DurationMS:   result.Duration.Milliseconds(),
	}
}
