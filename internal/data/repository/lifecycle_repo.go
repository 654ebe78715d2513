package repository

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/pkg/database"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// LifecycleRepository holds the statements used by the expiry cleanup.
type LifecycleRepository interface {
	FindExpiredIDs(ctx context.Context, today time.Time) ([]int64, error)
	CountBookings(ctx context.Context, movieID int64) (int64, error)
	// MarkExpired reports whether the status actually changed.
	MarkExpired(ctx context.Context, movieID int64) (bool, error)
	// Purge deletes the movie and everything hanging off it. It reports
	// false when the movie was already gone and returns ErrStillBooked,
	// deleting nothing, when any booking references its showtimes.
	Purge(ctx context.Context, movieID int64) (bool, error)
}

type lifecycleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLifecycleRepository(db database.PgxIface, log *zap.Logger) LifecycleRepository {
	return &lifecycleRepository{
		db:  db,
		log: log.With(zap.String("repository", "lifecycle")),
	}
}

const bookingsOfMovie = `SELECT b.id_booking FROM bookings b
	JOIN showtimes s ON s.id_showtime = b.id_showtime
	WHERE s.id_movie = $1`

// purgeSteps is ordered leaf first so no foreign key is violated midway.
var purgeSteps = []struct {
	table string
	query string
}{
	{"detail_booking", `DELETE FROM detail_booking WHERE id_booking IN (` + bookingsOfMovie + `)`},
	{"order_product", `DELETE FROM order_product WHERE id_booking IN (` + bookingsOfMovie + `)`},
	{"payments", `DELETE FROM payments WHERE id_booking IN (` + bookingsOfMovie + `)`},
	{"bookings", `DELETE FROM bookings WHERE id_showtime IN (SELECT id_showtime FROM showtimes WHERE id_movie = $1)`},
	{"showtimes", `DELETE FROM showtimes WHERE id_movie = $1`},
	{"genre_movies", `DELETE FROM genre_movies WHERE id_movie = $1`},
	{"homepage_banners", `DELETE FROM homepage_banners WHERE id_movie = $1`},
	{"movies", `DELETE FROM movies WHERE id_movie = $1`},
}

func (r *lifecycleRepository) FindExpiredIDs(ctx context.Context, today time.Time) ([]int64, error) {
	query := `
		SELECT id_movie FROM movies
		WHERE end_date IS NOT NULL AND end_date < $1
		ORDER BY id_movie
	`

	rows, err := r.db.Query(ctx, query, today)
	if err != nil {
		r.log.Error("Failed to find expired movies", zap.Error(err))
		return nil, fmt.Errorf("find expired movies: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan expired movie id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expired movies: %w", err)
	}

	return ids, nil
}

const countBookingsQuery = `
	SELECT COUNT(*) FROM bookings b
	JOIN showtimes s ON s.id_showtime = b.id_showtime
	WHERE s.id_movie = $1
`

func (r *lifecycleRepository) CountBookings(ctx context.Context, movieID int64) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, countBookingsQuery, movieID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return 0, fmt.Errorf("count bookings for movie %d: %w", movieID, err)
	}

	return count, nil
}

func (r *lifecycleRepository) MarkExpired(ctx context.Context, movieID int64) (bool, error) {
	query := `UPDATE movies SET status = $1, updated_at = NOW() WHERE id_movie = $2 AND status <> $1`

	tag, err := r.db.Exec(ctx, query, string(entity.MovieStatusExpired), movieID)
	if err != nil {
		r.log.Error("Failed to mark movie expired",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return false, fmt.Errorf("mark movie %d expired: %w", movieID, err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *lifecycleRepository) Purge(ctx context.Context, movieID int64) (bool, error) {
	deleted := false

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id_movie FROM movies WHERE id_movie = $1 FOR UPDATE`, movieID).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("lock movie: %w", err)
		}

		// new bookings take a key share lock on their showtime, so they wait
		// for this transaction from here on
		if _, err := tx.Exec(ctx, `SELECT id_showtime FROM showtimes WHERE id_movie = $1 FOR UPDATE`, movieID); err != nil {
			return fmt.Errorf("lock showtimes: %w", err)
		}

		var bookings int64
		if err := tx.QueryRow(ctx, countBookingsQuery, movieID).Scan(&bookings); err != nil {
			return fmt.Errorf("recount bookings: %w", err)
		}
		if bookings > 0 {
			return ErrStillBooked
		}

		for _, step := range purgeSteps {
			tag, err := tx.Exec(ctx, step.query, movieID)
			if err != nil {
				return fmt.Errorf("delete from %s: %w", step.table, err)
			}
			r.log.Debug("Purged rows",
				zap.Int64("movie_id", movieID),
				zap.String("table", step.table),
				zap.Int64("rows", tag.RowsAffected()),
			)
		}
		deleted = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("purge movie %d: %w", movieID, err)
	}

	return deleted, nil
}
