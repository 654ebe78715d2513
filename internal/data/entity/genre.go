package entity

type Genre struct {
	ID   int64  `db:"id_genre"`
	Name string `db:"genre_name"`
}

// GenreRef points at a genre either by identity or by name.
// The concrete types are GenreByID and GenreByName.
type GenreRef interface {
	isGenreRef()
}

// GenreByID references an existing genre row.
type GenreByID int64

// GenreByName references a genre by its unique name, creating it on demand.
type GenreByName string

func (GenreByID) isGenreRef()   {}
func (GenreByName) isGenreRef() {}
