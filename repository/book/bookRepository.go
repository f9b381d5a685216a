// repository/book/bookRepository.go
package bookrepo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"librarysys/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Search(ctx context.Context, req model.SearchReq) ([]model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const bookCols = `id, book_no, title, author, publisher, isbn, category, price,
	total_copies, available_copies, active_borrows, status`

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	const q = `
		INSERT INTO books (book_no, title, author, publisher, isbn, category, price,
		                   total_copies, available_copies, active_borrows, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8,0,1)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		b.BookNo, b.Title, b.Author, b.Publisher, b.ISBN, b.Category, b.Price, b.TotalCopies,
	).Scan(&b.ID)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	q := `SELECT ` + bookCols + ` FROM books WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// Search builds the filter clause with positional parameters only; user input
// never reaches the SQL text.
func (r *repo) Search(ctx context.Context, req model.SearchReq) ([]model.Book, error) {
	var (
		where  []string
		params []any
	)
	if kw := strings.TrimSpace(req.Keyword); kw != "" {
		params = append(params, "%"+kw+"%")
		n := len(params)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR author ILIKE $%d OR isbn ILIKE $%d)", n, n, n))
	}
	if req.Category != "" {
		params = append(params, req.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(params)))
	}
	if req.Status != nil {
		params = append(params, *req.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(params)))
	}

	q := `SELECT ` + bookCols + ` FROM books`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	return r.Search(ctx, model.SearchReq{})
}

func (r *repo) scanOne(row *sql.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(&b.ID, &b.BookNo, &b.Title, &b.Author, &b.Publisher, &b.ISBN,
		&b.Category, &b.Price, &b.TotalCopies, &b.AvailableCopies, &b.ActiveBorrows, &b.Status)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) scanAll(rows *sql.Rows) ([]model.Book, error) {
	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.BookNo, &b.Title, &b.Author, &b.Publisher, &b.ISBN,
			&b.Category, &b.Price, &b.TotalCopies, &b.AvailableCopies, &b.ActiveBorrows, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
