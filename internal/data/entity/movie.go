package entity

import (
	"time"
)

type MovieStatus string

const (
	MovieStatusComingSoon MovieStatus = "coming soon"
	MovieStatusNowShowing MovieStatus = "now showing"
	MovieStatusExpired    MovieStatus = "expired"
)

// Valid reports whether s is one of the three catalog states.
func (s MovieStatus) Valid() bool {
	switch s {
	case MovieStatusComingSoon, MovieStatusNowShowing, MovieStatusExpired:
		return true
	}
	return false
}

// DefaultDuration is used when a movie is created without a runtime.
const DefaultDuration = 120

type Movie struct {
	Base
	Title          string      `db:"title"`
	OriginalTitle  *string     `db:"original_title"`
	Director       *string     `db:"director"`
	Actors         *string     `db:"actors"`
	Description    *string     `db:"description"`
	Duration       int         `db:"duration"`
	ReleaseDate    time.Time   `db:"release_date"`
	EndDate        *time.Time  `db:"end_date"`
	Language       *string     `db:"language"`
	Subtitle       *string     `db:"subtitle"`
	Country        *string     `db:"country"`
	PosterImage    *string     `db:"poster_image"`
	BannerImage    *string     `db:"banner_image"`
	TrailerURL     *string     `db:"trailer_url"`
	AgeRestriction *string     `db:"age_restriction"`
	Status         MovieStatus `db:"status"`

	// Genres holds genre names when the query joined them.
	Genres []string `db:"-"`
}
