// repository/reader/readerRepository.go
package readerrepo

import (
	"context"
	"database/sql"

	"librarysys/model"
)

type Repo interface {
	Create(ctx context.Context, rd *model.Reader) error
	ByUsername(ctx context.Context, username string) (*model.Reader, error)
	ByID(ctx context.Context, id int64) (*model.Reader, error)
	UpdateProfile(ctx context.Context, id int64, phone, email, address string, newHash *string) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, rd *model.Reader) error {
	const q = `
		INSERT INTO readers (reader_no, username, password_hash, real_name, id_card, phone)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, borrow_limit, status, created_at`
	return r.db.QueryRowContext(ctx, q,
		rd.ReaderNo, rd.Username, rd.PasswordHash, rd.RealName, rd.IDCard, rd.Phone,
	).Scan(&rd.ID, &rd.BorrowLimit, &rd.Status, &rd.CreatedAt)
}

const readerCols = `id, reader_no, username, password_hash, real_name, id_card,
	phone, email, address, borrow_limit, status, created_at`

func (r *repo) ByUsername(ctx context.Context, username string) (*model.Reader, error) {
	q := `SELECT ` + readerCols + ` FROM readers WHERE username = $1`
	return scanReader(r.db.QueryRowContext(ctx, q, username))
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Reader, error) {
	q := `SELECT ` + readerCols + ` FROM readers WHERE id = $1`
	return scanReader(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) UpdateProfile(ctx context.Context, id int64, phone, email, address string, newHash *string) error {
	if newHash != nil {
		const q = `
			UPDATE readers
			SET phone = $2, email = $3, address = $4, password_hash = $5
			WHERE id = $1`
		_, err := r.db.ExecContext(ctx, q, id, phone, email, address, *newHash)
		return err
	}
	const q = `
		UPDATE readers
		SET phone = $2, email = $3, address = $4
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, phone, email, address)
	return err
}

func scanReader(row *sql.Row) (*model.Reader, error) {
	var rd model.Reader
	var email, address sql.NullString
	err := row.Scan(&rd.ID, &rd.ReaderNo, &rd.Username, &rd.PasswordHash, &rd.RealName,
		&rd.IDCard, &rd.Phone, &email, &address, &rd.BorrowLimit, &rd.Status, &rd.CreatedAt)
	if err != nil {
		return nil, err
	}
	rd.Email = email.String
	rd.Address = address.String
	return &rd, nil
}
