package repository

import (
	"cinema-catalog/internal/data/entity"
	"cinema-catalog/pkg/database"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieOrder int

const (
	OrderReleaseDesc MovieOrder = iota
	OrderReleaseAsc
	OrderStatusThenRelease
)

// MovieFilter narrows movie listings. Zero values mean "no restriction".
type MovieFilter struct {
	Status         entity.MovieStatus
	ExcludeExpired bool
	Search         string
	// ActiveOn drops movies whose end date lies before this day.
	ActiveOn *time.Time
	Order    MovieOrder
}

type MovieRepository interface {
	FindAll(ctx context.Context, filter MovieFilter, offset, limit int) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter MovieFilter) (int64, error)
	FindActiveByID(ctx context.Context, id int64, today time.Time) (*entity.Movie, error)
	FindPopular(ctx context.Context, today time.Time, limit int) ([]*entity.Movie, error)

	Create(ctx context.Context, movie *entity.Movie, genres []entity.GenreRef) error
	Update(ctx context.Context, movie *entity.Movie, replaceGenres bool, genres []entity.GenreRef) error
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

const movieColumns = `m.id_movie, m.title, m.original_title, m.director, m.actors, m.description,
	m.duration, m.release_date, m.end_date, m.language, m.subtitle, m.country,
	m.poster_image, m.banner_image, m.trailer_url, m.age_restriction, m.status,
	m.created_at, m.updated_at`

const genreAggregate = `COALESCE(array_agg(DISTINCT g.genre_name ORDER BY g.genre_name)
	FILTER (WHERE g.genre_name IS NOT NULL), '{}') AS genres`

const genreJoins = `
	LEFT JOIN genre_movies gm ON gm.id_movie = m.id_movie
	LEFT JOIN genre g ON g.id_genre = gm.id_genre`

func scanMovie(row pgx.Row, extra ...any) (*entity.Movie, error) {
	var movie entity.Movie
	dest := []any{
		&movie.ID,
		&movie.Title,
		&movie.OriginalTitle,
		&movie.Director,
		&movie.Actors,
		&movie.Description,
		&movie.Duration,
		&movie.ReleaseDate,
		&movie.EndDate,
		&movie.Language,
		&movie.Subtitle,
		&movie.Country,
		&movie.PosterImage,
		&movie.BannerImage,
		&movie.TrailerURL,
		&movie.AgeRestriction,
		&movie.Status,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.Genres,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &movie, nil
}

// escapeLike makes term match literally inside an ILIKE pattern.
func escapeLike(term string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(term)
}

func buildMovieWhere(filter MovieFilter) (string, []any) {
	conds := []string{"1 = 1"}
	args := []any{}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conds = append(conds, fmt.Sprintf("m.status = $%d", len(args)))
	}
	if filter.ExcludeExpired {
		args = append(args, string(entity.MovieStatusExpired))
		conds = append(conds, fmt.Sprintf("m.status <> $%d", len(args)))
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		args = append(args, "%"+escapeLike(term)+"%")
		conds = append(conds, fmt.Sprintf("(m.title ILIKE $%d OR m.description ILIKE $%d)", len(args), len(args)))
	}
	if filter.ActiveOn != nil {
		args = append(args, *filter.ActiveOn)
		conds = append(conds, fmt.Sprintf("(m.end_date IS NULL OR m.end_date >= $%d)", len(args)))
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o MovieOrder) clause() string {
	switch o {
	case OrderReleaseAsc:
		return " ORDER BY m.release_date ASC, m.id_movie ASC"
	case OrderStatusThenRelease:
		return " ORDER BY m.status ASC, m.release_date DESC, m.id_movie DESC"
	default:
		return " ORDER BY m.release_date DESC, m.id_movie DESC"
	}
}

// FindAll returns movies matching filter. A limit of zero returns every row.
func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter, offset, limit int) ([]*entity.Movie, error) {
	where, args := buildMovieWhere(filter)

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + movieColumns + ", " + genreAggregate)
	queryBuilder.WriteString(" FROM movies m" + genreJoins)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(" GROUP BY m.id_movie")
	queryBuilder.WriteString(filter.Order.clause())

	if limit > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
		args = append(args, limit, offset)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.String("status", string(filter.Status)),
			zap.String("search", filter.Search),
			zap.Int("offset", offset),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	where, args := buildMovieWhere(filter)
	query := "SELECT COUNT(*) FROM movies m" + where

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return count, nil
}

func (r *movieRepository) FindActiveByID(ctx context.Context, id int64, today time.Time) (*entity.Movie, error) {
	query := "SELECT " + movieColumns + ", " + genreAggregate + `
		FROM movies m` + genreJoins + `
		WHERE m.id_movie = $1 AND (m.end_date IS NULL OR m.end_date >= $2)
		GROUP BY m.id_movie`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id, today))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie: %w", err)
	}

	return movie, nil
}

// FindPopular ranks showing movies by the number of showtimes still ahead.
func (r *movieRepository) FindPopular(ctx context.Context, today time.Time, limit int) ([]*entity.Movie, error) {
	query := "SELECT " + movieColumns + ", " + genreAggregate + `,
		       COUNT(DISTINCT s.id_showtime) AS upcoming
		FROM movies m` + genreJoins + `
		LEFT JOIN showtimes s ON s.id_movie = m.id_movie AND s.show_date >= $2
		WHERE m.status = $1 AND (m.end_date IS NULL OR m.end_date >= $2)
		GROUP BY m.id_movie
		ORDER BY upcoming DESC, m.release_date DESC
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, string(entity.MovieStatusNowShowing), today, limit)
	if err != nil {
		r.log.Error("Failed to find popular movies", zap.Error(err))
		return nil, fmt.Errorf("find popular movies: %w", err)
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		var upcoming int64
		movie, err := scanMovie(rows, &upcoming)
		if err != nil {
			r.log.Error("Failed to scan popular movie row", zap.Error(err))
			return nil, fmt.Errorf("scan popular movie row: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate popular movie rows: %w", err)
	}

	return movies, nil
}

func movieValues(movie *entity.Movie) []any {
	return []any{
		movie.Title,
		movie.OriginalTitle,
		movie.Director,
		movie.Actors,
		movie.Description,
		movie.Duration,
		movie.ReleaseDate,
		movie.EndDate,
		movie.Language,
		movie.Subtitle,
		movie.Country,
		movie.PosterImage,
		movie.BannerImage,
		movie.TrailerURL,
		movie.AgeRestriction,
		string(movie.Status),
	}
}

// Create inserts the movie and links its genres in one transaction.
// movie.ID and the timestamps are filled on success.
func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie, genres []entity.GenreRef) error {
	query := `
		INSERT INTO movies (title, original_title, director, actors, description,
		                    duration, release_date, end_date, language, subtitle,
		                    country, poster_image, banner_image, trailer_url,
		                    age_restriction, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id_movie, created_at, updated_at
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query, movieValues(movie)...).Scan(&movie.ID, &movie.CreatedAt, &movie.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert movie: %w", err)
		}

		genreIDs, err := resolveGenreIDs(ctx, tx, genres)
		if err != nil {
			return err
		}
		return linkGenres(ctx, tx, movie.ID, genreIDs)
	})
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("create movie: %w", err)
	}

	return nil
}

// Update rewrites every column of the movie. When replaceGenres is set the
// existing genre links are dropped and genres linked instead.
func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie, replaceGenres bool, genres []entity.GenreRef) error {
	query := `
		UPDATE movies
		SET title = $1, original_title = $2, director = $3, actors = $4,
		    description = $5, duration = $6, release_date = $7, end_date = $8,
		    language = $9, subtitle = $10, country = $11, poster_image = $12,
		    banner_image = $13, trailer_url = $14, age_restriction = $15,
		    status = $16, updated_at = NOW()
		WHERE id_movie = $17
		RETURNING updated_at
	`

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		args := append(movieValues(movie), movie.ID)
		err := tx.QueryRow(ctx, query, args...).Scan(&movie.UpdatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update movie: %w", err)
		}

		if !replaceGenres {
			return nil
		}

		if _, err := tx.Exec(ctx, `DELETE FROM genre_movies WHERE id_movie = $1`, movie.ID); err != nil {
			return fmt.Errorf("clear genre links: %w", err)
		}
		genreIDs, err := resolveGenreIDs(ctx, tx, genres)
		if err != nil {
			return err
		}
		return linkGenres(ctx, tx, movie.ID, genreIDs)
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			r.log.Error("Failed to update movie",
				zap.Error(err),
				zap.Int64("movie_id", movie.ID),
			)
		}
		return fmt.Errorf("update movie %d: %w", movie.ID, err)
	}

	return nil
}

// Delete removes a movie that no showtime references, together with its
// genre links and banners. Nothing is changed when it is still scheduled.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		var locked int64
		err := tx.QueryRow(ctx, `SELECT id_movie FROM movies WHERE id_movie = $1 FOR UPDATE`, id).Scan(&locked)
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock movie: %w", err)
		}

		var showtimes int64
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM showtimes WHERE id_movie = $1`, id).Scan(&showtimes); err != nil {
			return fmt.Errorf("count showtimes: %w", err)
		}
		if showtimes > 0 {
			return ErrReferentialConflict
		}

		for _, stmt := range []string{
			`DELETE FROM genre_movies WHERE id_movie = $1`,
			`DELETE FROM homepage_banners WHERE id_movie = $1`,
			`DELETE FROM movies WHERE id_movie = $1`,
		} {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("delete movie rows: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrReferentialConflict) {
			r.log.Error("Failed to delete movie",
				zap.Error(err),
				zap.Int64("movie_id", id),
			)
		}
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	return nil
}
