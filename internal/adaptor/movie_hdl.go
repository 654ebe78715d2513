package adaptor

import (
	"net/http"

	"cinema-catalog/internal/data/entity"
	"cinema-catalog/internal/dto/request"
	"cinema-catalog/internal/dto/response"
	"cinema-catalog/internal/usecase"
	"cinema-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MovieHandler serves the public, read-only catalog.
type MovieHandler struct {
	catalog usecase.CatalogService
	log     *zap.Logger
}

func NewMovieHandler(catalog usecase.CatalogService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		catalog: catalog,
		log:     log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies?status=now showing|coming soon|all
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	var (
		movies []response.MovieResponse
		err    error
	)

	switch status := r.URL.Query().Get("status"); status {
	case string(entity.MovieStatusNowShowing):
		movies, err = h.catalog.NowShowing(r.Context())
	case string(entity.MovieStatusComingSoon):
		movies, err = h.catalog.ComingSoon(r.Context())
	case "", request.StatusAll:
		movies, err = h.catalog.Active(r.Context())
	default:
		h.log.Warn("Invalid status filter", zap.String("status", status))
		utils.ResponseBadRequest(w, "Invalid status filter", map[string]string{
			"status": "must be one of: now showing, coming soon, all",
		})
		return
	}

	if err != nil {
		handleServiceError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", movies)
}

// GetPopular handles GET /api/movies/popular
func (h *MovieHandler) GetPopular(w http.ResponseWriter, r *http.Request) {
	movies, err := h.catalog.Popular(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get popular movies")
		return
	}

	utils.ResponseSuccess(w, "Popular movies retrieved successfully", movies)
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	movie, err := h.catalog.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", movie)
}
