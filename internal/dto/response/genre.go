package response

import "cinema-catalog/internal/data/entity"

type GenreResponse struct {
	ID   int64  `json:"id_genre"`
	Name string `json:"genre_name"`
}

func GenreToResponse(genre *entity.Genre) GenreResponse {
	return GenreResponse{
		ID:   genre.ID,
		Name: genre.Name,
	}
}
