package response

import "cinema-catalog/pkg/utils"

type MovieListResponse struct {
	Movies     []MovieResponse `json:"movies"`
	Pagination PaginationMeta  `json:"pagination"`
}

type PaginationMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func NewMovieListResponse(movies []MovieResponse, page, limit int, total int64) *MovieListResponse {
	if movies == nil {
		movies = []MovieResponse{}
	}
	return &MovieListResponse{
		Movies: movies,
		Pagination: PaginationMeta{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: utils.CalculateTotalPages(total, limit),
		},
	}
}
