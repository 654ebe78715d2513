package repository

import (
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

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func expectShowtimeLockAndRecount(mock pgxmock.PgxPoolIface, movieID, bookings int64) {
	mock.ExpectExec(regexp.QuoteMeta("SELECT id_showtime FROM showtimes WHERE id_movie = $1 FOR UPDATE")).
		WithArgs(movieID).
		WillReturnResult(pgxmock.NewResult("SELECT", 2))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings b")).
		WithArgs(movieID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(bookings))
}

func TestLifecycleRepository_PurgeRunsCascadeInOrder(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewLifecycleRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id_movie FROM movies WHERE id_movie = $1 FOR UPDATE")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id_movie"}).AddRow(int64(7)))
	expectShowtimeLockAndRecount(mock, 7, 0)
	for _, table := range []string{
		"detail_booking", "order_product", "payments", "bookings",
		"showtimes", "genre_movies", "homepage_banners", "movies",
	} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM " + table + " WHERE")).
			WithArgs(int64(7)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
	}
	mock.ExpectCommit()

	deleted, err := repo.Purge(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycleRepository_PurgeRollsBackOnFailure(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewLifecycleRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id_movie"}).AddRow(int64(3)))
	expectShowtimeLockAndRecount(mock, 3, 0)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM detail_booking")).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_product")).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM payments")).
		WithArgs(int64(3)).
		WillReturnError(errors.New("permission denied for table payments"))
	mock.ExpectRollback()

	deleted, err := repo.Purge(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, deleted)
	assert.Contains(t, err.Error(), "delete from payments")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycleRepository_PurgeAbortsWhenBookedAfterCount(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewLifecycleRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(12)).
		WillReturnRows(pgxmock.NewRows([]string{"id_movie"}).AddRow(int64(12)))
	// a booking landed between the caller's count and the purge
	expectShowtimeLockAndRecount(mock, 12, 1)
	mock.ExpectRollback()

	deleted, err := repo.Purge(context.Background(), 12)
	require.ErrorIs(t, err, ErrStillBooked)
	assert.False(t, deleted)
	// no DELETE was expected, so none may have run
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycleRepository_PurgeMissingMovie(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewLifecycleRepository(mock, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectCommit()

	deleted, err := repo.Purge(context.Background(), 9)
	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycleRepository_FindExpiredIDs(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewLifecycleRepository(mock, zap.NewNop())
	today := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE end_date IS NOT NULL AND end_date < $1")).
		WithArgs(today).
		WillReturnRows(pgxmock.NewRows([]string{"id_movie"}).AddRow(int64(1)).AddRow(int64(4)))

	ids, err := repo.FindExpiredIDs(context.Background(), today)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 4}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLifecycleRepository_CountBookingsAndMarkExpired(t *testing.T) {
	t.Parallel()
	mock := newMockPool(t)
	repo := NewLifecycleRepository(mock, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM bookings b")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movies SET status = $1")).
		WithArgs("expired", int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("AND status <> $1")).
		WithArgs("expired", int64(5)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	count, err := repo.CountBookings(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	changed, err := repo.MarkExpired(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, changed)

	// already expired: nothing to write
	changed, err = repo.MarkExpired(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
