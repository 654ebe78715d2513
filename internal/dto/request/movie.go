package request

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/pkg/utils"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// StatusAll disables the status filter on listings.
const StatusAll = "all"

func init() {
	utils.RegisterRule("movie_status", func(fl validator.FieldLevel) bool {
		return entity.MovieStatus(fl.Field().String()).Valid()
	})
	utils.RegisterRule("notblank", validators.NotBlank)
}

// GenreRefs decodes a JSON array mixing genre ids (numbers) and genre names
// (strings).
type GenreRefs []entity.GenreRef

func (g *GenreRefs) UnmarshalJSON(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("genres must be an array")
	}

	refs := make(GenreRefs, 0, len(items))
	for i, item := range items {
		var id int64
		if err := json.Unmarshal(item, &id); err == nil {
			refs = append(refs, entity.GenreByID(id))
			continue
		}
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			refs = append(refs, entity.GenreByName(name))
			continue
		}
		return fmt.Errorf("genres[%d] must be a genre id or a genre name", i)
	}

	*g = refs
	return nil
}

type MovieRequest struct {
	Title          string    `json:"title" validate:"required,notblank,max=255"`
	OriginalTitle  *string   `json:"original_title,omitempty" validate:"omitempty,max=255"`
	Director       *string   `json:"director,omitempty" validate:"omitempty,max=255"`
	Actors         *string   `json:"actors,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Duration       *int      `json:"duration,omitempty" validate:"omitempty,min=1,max=999"`
	ReleaseDate    string    `json:"release_date" validate:"required,datetime=2006-01-02"`
	EndDate        *string   `json:"end_date,omitempty"`
	Language       *string   `json:"language,omitempty" validate:"omitempty,max=100"`
	Subtitle       *string   `json:"subtitle,omitempty" validate:"omitempty,max=100"`
	Country        *string   `json:"country,omitempty" validate:"omitempty,max=100"`
	PosterImage    *string   `json:"poster_image,omitempty"`
	BannerImage    *string   `json:"banner_image,omitempty"`
	TrailerURL     *string   `json:"trailer_url,omitempty"`
	AgeRestriction *string   `json:"age_restriction,omitempty" validate:"omitempty,max=20"`
	Status         string    `json:"status" validate:"required,movie_status"`
	Genres         GenreRefs `json:"genres,omitempty"`
}

// MovieUpdateRequest carries only the fields the caller sent. A nil field
// keeps the stored value; a non-nil empty string clears an optional column.
type MovieUpdateRequest struct {
	Title          *string    `json:"title,omitempty" validate:"omitempty,notblank,max=255"`
	OriginalTitle  *string    `json:"original_title,omitempty" validate:"omitempty,max=255"`
	Director       *string    `json:"director,omitempty" validate:"omitempty,max=255"`
	Actors         *string    `json:"actors,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Duration       *int       `json:"duration,omitempty" validate:"omitempty,min=1,max=999"`
	ReleaseDate    *string    `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate        *string    `json:"end_date,omitempty"`
	Language       *string    `json:"language,omitempty" validate:"omitempty,max=100"`
	Subtitle       *string    `json:"subtitle,omitempty" validate:"omitempty,max=100"`
	Country        *string    `json:"country,omitempty" validate:"omitempty,max=100"`
	PosterImage    *string    `json:"poster_image,omitempty"`
	BannerImage    *string    `json:"banner_image,omitempty"`
	TrailerURL     *string    `json:"trailer_url,omitempty"`
	AgeRestriction *string    `json:"age_restriction,omitempty" validate:"omitempty,max=20"`
	Status         *string    `json:"status,omitempty" validate:"omitempty,movie_status"`
	Genres         *GenreRefs `json:"genres,omitempty"`
}

func (m *MovieRequest) UnmarshalJSON(data []byte) error {
	type plain MovieRequest
	if err := json.Unmarshal(data, (*plain)(m)); err != nil {
		return err
	}
	return legacyKeys(data, &m.Actors, &m.PosterImage, &m.BannerImage)
}

func (m *MovieUpdateRequest) UnmarshalJSON(data []byte) error {
	type plain MovieUpdateRequest
	if err := json.Unmarshal(data, (*plain)(m)); err != nil {
		return err
	}
	return legacyKeys(data, &m.Actors, &m.PosterImage, &m.BannerImage)
}

// legacyKeys accepts cast, poster_url and banner_url in place of actors,
// poster_image and banner_image. The current key wins when both are sent.
func legacyKeys(data []byte, actors, poster, banner **string) error {
	var legacy struct {
		Cast      *string `json:"cast"`
		PosterURL *string `json:"poster_url"`
		BannerURL *string `json:"banner_url"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	if *actors == nil {
		*actors = legacy.Cast
	}
	if *poster == nil {
		*poster = legacy.PosterURL
	}
	if *banner == nil {
		*banner = legacy.BannerURL
	}
	return nil
}

type MovieListRequest struct {
	PaginatedRequest
	Status string `validate:"omitempty,movie_status|eq=all"`
	Search string `validate:"max=100"`
}

type MovieExportRequest struct {
	Status        string `validate:"omitempty,movie_status|eq=all"`
	Search        string `validate:"max=100"`
	IncludeGenres bool
	Format        string `validate:"omitempty,oneof=xlsx docx"`
}
