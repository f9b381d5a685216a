// repository/report/reportRepository.go
package reportrepo

import (
	"context"
	"database/sql"
)

type BookRank struct {
	BookID      int64  `json:"book_id"`
	BookNo      string `json:"book_no"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	BorrowCount int64  `json:"borrow_count"`
}

type ReaderRank struct {
	ReaderID    int64  `json:"reader_id"`
	ReaderNo    string `json:"reader_no"`
	RealName    string `json:"real_name"`
	BorrowCount int64  `json:"borrow_count"`
}

type Repo interface {
	TopBooks(ctx context.Context, limit int) ([]BookRank, error)
	TopReaders(ctx context.Context, limit int) ([]ReaderRank, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

// Ties break by id ascending so the ranking is deterministic.

func (r *repo) TopBooks(ctx context.Context, limit int) ([]BookRank, error) {
	const q = `
		SELECT b.id, b.book_no, b.title, b.author, COUNT(br.id) AS borrow_count
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		GROUP BY b.id, b.book_no, b.title, b.author
		ORDER BY borrow_count DESC, b.id ASC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookRank
	for rows.Next() {
		var br BookRank
		if err := rows.Scan(&br.BookID, &br.BookNo, &br.Title, &br.Author, &br.BorrowCount); err != nil {
			return nil, err
		}
		out = append(out, br)
	}
	return out, rows.Err()
}

func (r *repo) TopReaders(ctx context.Context, limit int) ([]ReaderRank, error) {
	const q = `
		SELECT rd.id, rd.reader_no, rd.real_name, COUNT(br.id) AS borrow_count
		FROM borrow_records br
		JOIN readers rd ON rd.id = br.reader_id
		GROUP BY rd.id, rd.reader_no, rd.real_name
		ORDER BY borrow_count DESC, rd.id ASC
		LIMIT $1`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReaderRank
	for rows.Next() {
		var rr ReaderRank
		if err := rows.Scan(&rr.ReaderID, &rr.ReaderNo, &rr.RealName, &rr.BorrowCount); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
