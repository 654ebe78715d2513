package request

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/pkg/utils"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreRefsUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    GenreRefs
		wantErr bool
	}{
		{
			name: "mixed ids and names",
			body: `[1, "Sci-Fi", 7]`,
			want: GenreRefs{entity.GenreByID(1), entity.GenreByName("Sci-Fi"), entity.GenreByID(7)},
		},
		{
			name: "numeric string stays a name",
			body: `["42"]`,
			want: GenreRefs{entity.GenreByName("42")},
		},
		{
			name: "empty array",
			body: `[]`,
			want: GenreRefs{},
		},
		{name: "fractional id", body: `[2.5]`, wantErr: true},
		{name: "object element", body: `[{"id": 1}]`, wantErr: true},
		{name: "not an array", body: `"Action"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var refs GenreRefs
			err := json.Unmarshal([]byte(tt.body), &refs)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, refs)
		})
	}
}

func TestMovieUpdateRequestGenrePresence(t *testing.T) {
	var absent MovieUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Heat"}`), &absent))
	assert.Nil(t, absent.Genres)

	var cleared MovieUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"genres": []}`), &cleared))
	require.NotNil(t, cleared.Genres)
	assert.Empty(t, *cleared.Genres)
}

func TestMovieRequestValidation(t *testing.T) {
	valid := MovieRequest{Title: "Dune", ReleaseDate: "2026-03-01", Status: "now showing"}
	assert.Empty(t, utils.ValidateStruct(valid))

	invalid := MovieRequest{ReleaseDate: "01/03/2026", Status: "showing"}
	errs := utils.ValidateStruct(invalid)
	assert.Contains(t, errs, "Title")
	assert.Contains(t, errs, "ReleaseDate")
	assert.Equal(t, "Must be one of: coming soon, now showing, expired", errs["Status"])

	empty := ""
	update := MovieUpdateRequest{Title: &empty}
	assert.Contains(t, utils.ValidateStruct(update), "Title")
}

func TestMovieRequestBlankTitle(t *testing.T) {
	create := MovieRequest{Title: "   ", ReleaseDate: "2026-03-01", Status: "now showing"}
	assert.Equal(t, "Must not be blank", utils.ValidateStruct(create)["Title"])

	spaces := " \t "
	update := MovieUpdateRequest{Title: &spaces}
	assert.Equal(t, "Must not be blank", utils.ValidateStruct(update)["Title"])

	padded := "  Heat "
	assert.Empty(t, utils.ValidateStruct(MovieUpdateRequest{Title: &padded}))
}

func TestMovieRequestLegacyKeys(t *testing.T) {
	var req MovieRequest
	body := `{"title": "Dune", "cast": "Timothée Chalamet", "poster_url": "p.jpg", "banner_url": "b.jpg", "genres": [1]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.NotNil(t, req.Actors)
	assert.Equal(t, "Timothée Chalamet", *req.Actors)
	assert.Equal(t, "p.jpg", *req.PosterImage)
	assert.Equal(t, "b.jpg", *req.BannerImage)
	assert.Equal(t, "Dune", req.Title)
	assert.Equal(t, GenreRefs{entity.GenreByID(1)}, req.Genres)

	var both MovieRequest
	require.NoError(t, json.Unmarshal([]byte(`{"actors": "new", "cast": "old"}`), &both))
	assert.Equal(t, "new", *both.Actors)

	var update MovieUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"poster_url": ""}`), &update))
	require.NotNil(t, update.PosterImage)
	assert.Empty(t, *update.PosterImage)
	assert.Nil(t, update.Actors)
	assert.Nil(t, update.BannerImage)
}

func TestMovieListRequestStatus(t *testing.T) {
	for _, status := range []string{"", "all", "coming soon", "expired"} {
		req := MovieListRequest{PaginatedRequest: PaginatedRequest{Page: 1, PerPage: 10}, Status: status}
		assert.Empty(t, utils.ValidateStruct(req), status)
	}

	req := MovieListRequest{PaginatedRequest: PaginatedRequest{Page: 1, PerPage: 10}, Status: "archived"}
	assert.Contains(t, utils.ValidateStruct(req), "Status")
}

func TestPaginatedRequest(t *testing.T) {
	p := PaginatedRequest{Page: 3, PerPage: 10}
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())

	assert.Equal(t, DefaultPerPage, PaginatedRequest{Page: 1}.Limit())
	assert.Equal(t, MaxPerPage, PaginatedRequest{Page: 1, PerPage: 500}.Limit())
	assert.Equal(t, 0, PaginatedRequest{Page: 0, PerPage: 10}.Offset())
}
