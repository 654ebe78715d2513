package repository

import (
	"cinema-catalog/internal/data/entity"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestMovieRepository_DeleteRejectedWhenScheduled(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"id_movie"}).AddRow(int64(11)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM showtimes WHERE id_movie = $1")).
		WithArgs(int64(11)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 11)
	require.ErrorIs(t, err, ErrReferentialConflict)
	// no DELETE was expected, so none may have run
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_Delete(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id_movie"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta("FROM showtimes")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM genre_movies")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM homepage_banners")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM movies")).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_DeleteNotFound(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(404)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_CreateResolvesGenres(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO movies")).
		WithArgs(anyArgs(16)...).
		WillReturnRows(pgxmock.NewRows([]string{"id_movie", "created_at", "updated_at"}).AddRow(int64(21), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_genre FROM genre WHERE id_genre = $1")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id_genre"}).AddRow(int64(3)))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (genre_name)")).
		WithArgs("Sci-Fi").
		WillReturnRows(pgxmock.NewRows([]string{"id_genre"}).AddRow(int64(8)))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO genre_movies")).
		WithArgs(int64(21), int64(3)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO genre_movies")).
		WithArgs(int64(21), int64(8)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	movie := &entity.Movie{
		Title:       "Dune",
		Duration:    155,
		ReleaseDate: now,
		Status:      entity.MovieStatusNowShowing,
	}
	err := repo.Create(context.Background(), movie, []entity.GenreRef{
		entity.GenreByID(3),
		entity.GenreByName("Sci-Fi"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), movie.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_CreateUnknownGenreRollsBack(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO movies")).
		WithArgs(anyArgs(16)...).
		WillReturnRows(pgxmock.NewRows([]string{"id_movie", "created_at", "updated_at"}).AddRow(int64(22), now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_genre FROM genre WHERE id_genre = $1")).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &entity.Movie{Title: "X", ReleaseDate: now}, []entity.GenreRef{entity.GenreByID(99)})
	require.Error(t, err)

	var unknown *UnknownGenreError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, int64(99), unknown.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_UpdateReplacesGenres(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE movies")).
		WithArgs(anyArgs(17)...).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM genre_movies WHERE id_movie = $1")).
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	// an empty replacement clears every link
	err := repo.Update(context.Background(), &entity.Movie{Base: entity.Base{ID: 5}, Title: "Heat"}, true, nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_UpdateNotFound(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE movies")).
		WithArgs(anyArgs(17)...).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &entity.Movie{Base: entity.Base{ID: 6}, Title: "Gone"}, false, nil)
	require.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieRepository_CountAllEscapesSearch(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("(m.title ILIKE $2 OR m.description ILIKE $2)")).
		WithArgs("now showing", `%100\%\_%`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(23)))

	count, err := repo.CountAll(context.Background(), MovieFilter{
		Status: entity.MovieStatusNowShowing,
		Search: "  100%_",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(23), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildMovieWhere(t *testing.T) {
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   MovieFilter
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "no filter",
			filter:   MovieFilter{},
			wantSQL:  " WHERE 1 = 1",
			wantArgs: []any{},
		},
		{
			name:     "active non-expired",
			filter:   MovieFilter{ExcludeExpired: true, ActiveOn: &today},
			wantSQL:  " WHERE 1 = 1 AND m.status <> $1 AND (m.end_date IS NULL OR m.end_date >= $2)",
			wantArgs: []any{"expired", today},
		},
		{
			name:     "search only",
			filter:   MovieFilter{Search: "Avatar"},
			wantSQL:  " WHERE 1 = 1 AND (m.title ILIKE $1 OR m.description ILIKE $1)",
			wantArgs: []any{"%Avatar%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildMovieWhere(tt.filter)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
