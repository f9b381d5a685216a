// model/book.go
package model

type BookStatus int16

const (
	BookWithdrawn BookStatus = 0
	BookActive    BookStatus = 1
)

type Book struct {
	ID              int64      `json:"id"`
	BookNo          string     `json:"book_no"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	Publisher       string     `json:"publisher"`
	ISBN            string     `json:"isbn"`
	Category        string     `json:"category"`
	Price           float64    `json:"price"`
	TotalCopies     int64      `json:"total_copies"`
	AvailableCopies int64      `json:"available_copies"`
	ActiveBorrows   int64      `json:"active_borrows"`
	Status          BookStatus `json:"status"`
}

// WarehousingReq is the payload for adding a new title to the catalog.
type WarehousingReq struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Publisher   string  `json:"publisher"`
	ISBN        string  `json:"isbn" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	TotalCopies int64   `json:"total_copies" validate:"required,gt=0"`
}

// SearchReq filters the catalog. All fields optional.
type SearchReq struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	Status   *int16 `json:"status"`
}
