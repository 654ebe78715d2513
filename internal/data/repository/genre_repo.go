package repository

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/pkg/database"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type GenreRepository interface {
	FindAll(ctx context.Context) ([]*entity.Genre, error)
	FindByID(ctx context.Context, id int64) (*entity.Genre, error)
}

type genreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewGenreRepository(db database.PgxIface, log *zap.Logger) GenreRepository {
	return &genreRepository{
		db:  db,
		log: log.With(zap.String("repository", "genre")),
	}
}

func (r *genreRepository) FindAll(ctx context.Context) ([]*entity.Genre, error) {
	query := `SELECT id_genre, genre_name FROM genre ORDER BY genre_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find genres", zap.Error(err))
		return nil, fmt.Errorf("find genres: %w", err)
	}
	defer rows.Close()

	genres := []*entity.Genre{}
	for rows.Next() {
		var genre entity.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			r.log.Error("Failed to scan genre row", zap.Error(err))
			return nil, fmt.Errorf("scan genre row: %w", err)
		}
		genres = append(genres, &genre)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate genre rows: %w", err)
	}

	return genres, nil
}

func (r *genreRepository) FindByID(ctx context.Context, id int64) (*entity.Genre, error) {
	query := `SELECT id_genre, genre_name FROM genre WHERE id_genre = $1`

	var genre entity.Genre
	err := r.db.QueryRow(ctx, query, id).Scan(&genre.ID, &genre.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find genre by ID",
			zap.Error(err),
			zap.Int64("genre_id", id),
		)
		return nil, fmt.Errorf("find genre by id: %w", err)
	}

	return &genre, nil
}

// resolveGenreIDs turns refs into genre ids inside q. Names are created when
// missing and reused otherwise; ids must already exist.
func resolveGenreIDs(ctx context.Context, q database.Querier, refs []entity.GenreRef) ([]int64, error) {
	ids := make([]int64, 0, len(refs))
	for _, ref := range refs {
		var id int64
		switch ref := ref.(type) {
		case entity.GenreByID:
			err := q.QueryRow(ctx, `SELECT id_genre FROM genre WHERE id_genre = $1`, int64(ref)).Scan(&id)
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, &UnknownGenreError{ID: int64(ref)}
			}
			if err != nil {
				return nil, fmt.Errorf("lookup genre %d: %w", int64(ref), err)
			}
		case entity.GenreByName:
			err := q.QueryRow(ctx, `
				INSERT INTO genre (genre_name) VALUES ($1)
				ON CONFLICT (genre_name) DO UPDATE SET genre_name = EXCLUDED.genre_name
				RETURNING id_genre`, string(ref)).Scan(&id)
			if err != nil {
				return nil, fmt.Errorf("upsert genre %q: %w", string(ref), err)
			}
		default:
			return nil, fmt.Errorf("unsupported genre reference %T", ref)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func linkGenres(ctx context.Context, q database.Querier, movieID int64, genreIDs []int64) error {
	for _, genreID := range genreIDs {
		_, err := q.Exec(ctx,
			`INSERT INTO genre_movies (id_movie, id_genre) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			movieID, genreID,
		)
		if err != nil {
			return fmt.Errorf("link genre %d: %w", genreID, err)
		}
	}
	return nil
}
