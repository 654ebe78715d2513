package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"cinema-catalog/internal/dto/request"
	"cinema-catalog/internal/dto/response"
	"cinema-catalog/internal/export"
	"cinema-catalog/internal/usecase"
	"cinema-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminMovieHandler serves the management surface under /api/admin/movies.
type AdminMovieHandler struct {
	catalog   usecase.CatalogService
	movies    usecase.MovieService
	lifecycle usecase.LifecycleService
	now       func() time.Time
	log       *zap.Logger
}

func NewAdminMovieHandler(
	catalog usecase.CatalogService,
	movies usecase.MovieService,
	lifecycle usecase.LifecycleService,
	log *zap.Logger,
) *AdminMovieHandler {
	return &AdminMovieHandler{
		catalog:   catalog,
		movies:    movies,
		lifecycle: lifecycle,
		now:       time.Now,
		log:       log.With(zap.String("handler", "admin_movie")),
	}
}

// ListMovies handles GET /api/admin/movies. With export=true the whole
// filtered set is returned, or streamed as a file when format is given.
func (h *AdminMovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if parseBool(query.Get("export")) {
		h.exportMovies(w, r, &request.MovieExportRequest{
			Status:        query.Get("status"),
			Search:        query.Get("search"),
			IncludeGenres: parseBool(query.Get("include_genres")),
			Format:        query.Get("format"),
		})
		return
	}

	req := &request.MovieListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    parseInt(query.Get("page"), 1),
			PerPage: parseInt(query.Get("limit"), 10),
		},
		Status: query.Get("status"),
		Search: query.Get("search"),
	}

	page, err := h.catalog.List(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", page)
}

func (h *AdminMovieHandler) exportMovies(w http.ResponseWriter, r *http.Request, req *request.MovieExportRequest) {
	movies, err := h.catalog.Export(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "export movies")
		return
	}

	if req.Format == "" {
		utils.ResponseSuccess(w, "Movies exported successfully", response.MovieExportResponse{
			Movies: response.MoviesToResponse(movies),
			Total:  len(movies),
		})
		return
	}

	if len(movies) == 0 {
		utils.ResponseBadRequest(w, "No movies to export", nil)
		return
	}

	format := export.Format(req.Format)
	now := h.now()
	body, err := export.Render(format, movies, now)
	if err != nil {
		handleServiceError(w, h.log, err, "render export")
		return
	}

	filename := export.Filename(req.Status, req.Search, format, now)
	h.log.Info("Export file generated",
		zap.String("filename", filename),
		zap.Int("rows", len(movies)),
		zap.Int("bytes", len(body)),
	)
	utils.ResponseFile(w, format.ContentType(), filename, body)
}

// CreateMovie handles POST /api/admin/movies
func (h *AdminMovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req request.MovieRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid create movie body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	id, err := h.movies.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create movie")
		return
	}

	utils.ResponseCreated(w, "Movie created successfully", response.MovieCreatedResponse{ID: id})
}

// UpdateMovie handles PUT /api/admin/movies/{id}
func (h *AdminMovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	var req request.MovieUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Warn("Invalid update movie body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	movie, err := h.movies.Update(r.Context(), id, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", movie)
}

// DeleteMovie handles DELETE /api/admin/movies/{id}
func (h *AdminMovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid movie ID", nil)
		return
	}

	if err := h.movies.Delete(r.Context(), id); err != nil {
		handleServiceError(w, h.log, err, "delete movie")
		return
	}

	utils.ResponseSuccess(w, "Movie deleted successfully", nil)
}

// Reconcile handles POST /api/admin/movies/reconcile
func (h *AdminMovieHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.lifecycle.Reconcile(r.Context(), h.now())
	if err != nil {
		handleServiceError(w, h.log, err, "reconcile movies")
		return
	}

	message := "Expired movies reconciled"
	if result.Skipped {
		message = "Reconcile already running elsewhere, skipped"
	}
	utils.ResponseSuccess(w, message, response.ReconcileToResponse(result))
}
