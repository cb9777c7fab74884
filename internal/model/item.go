package model

// Item is a catalog entry. The id is assigned by the database and never
// changes; names are intended to be unique case-insensitively, which the
// store layer enforces on create.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
