// repository/ledger/postgresLedger.go
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"librarysys/model"
)

type store struct {
	db       *sql.DB
	lockWait time.Duration
}

// NewPostgres builds a Store over *sql.DB. lockWait bounds every row-lock
// acquisition inside a transaction; a transaction that waits longer fails
// with a lock_not_available error (see IsLockTimeout).
func NewPostgres(db *sql.DB, lockWait time.Duration) Store {
	return &store{db: db, lockWait: lockWait}
}

func (s *store) Begin(ctx context.Context) (Tx, error) {
	t, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	// SET LOCAL scopes the bound to this transaction only.
	q := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.lockWait.Milliseconds())
	if _, err := t.ExecContext(ctx, q); err != nil {
		_ = t.Rollback()
		return nil, err
	}
	return &tx{t: t}, nil
}

func (s *store) ReaderHistory(ctx context.Context, readerID int64) ([]HistoryRow, error) {
	const q = `
		SELECT br.id, br.book_id, b.book_no, b.title,
		       br.borrowed_at, br.due_at, br.returned_at, br.renewal_count, br.state
		FROM borrow_records br
		JOIN books b ON b.id = br.book_id
		WHERE br.reader_id = $1
		ORDER BY br.borrowed_at DESC, br.id DESC`
	rows, err := s.db.QueryContext(ctx, q, readerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.BorrowID, &h.BookID, &h.BookNo, &h.Title,
			&h.BorrowedAt, &h.DueAt, &h.ReturnedAt, &h.RenewalCount, &h.State,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *store) UnpaidFines(ctx context.Context, readerID int64) ([]model.FineRecord, error) {
	const q = `
		SELECT id, borrow_id, reader_id, book_id, overdue_days, amount, state, paid_at
		FROM fine_records
		WHERE reader_id = $1 AND state = 'UNPAID'
		ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, readerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.FineRecord
	for rows.Next() {
		var f model.FineRecord
		if err := rows.Scan(&f.ID, &f.BorrowID, &f.ReaderID, &f.BookID,
			&f.OverdueDays, &f.Amount, &f.State, &f.PaidAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

type tx struct {
	t *sql.Tx
}

func (x *tx) LockBook(ctx context.Context, bookID int64) (*BookRow, error) {
	const q = `
		SELECT id, available_copies, active_borrows, total_copies, status
		FROM books
		WHERE id = $1
		FOR UPDATE`
	var b BookRow
	err := x.t.QueryRowContext(ctx, q, bookID).
		Scan(&b.ID, &b.AvailableCopies, &b.ActiveBorrows, &b.TotalCopies, &b.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (x *tx) UpdateBookCounts(ctx context.Context, bookID, availDelta, activeDelta int64) error {
	const q = `
		UPDATE books
		SET available_copies = available_copies + $2,
		    active_borrows   = active_borrows + $3
		WHERE id = $1`
	_, err := x.t.ExecContext(ctx, q, bookID, availDelta, activeDelta)
	return err
}

func (x *tx) LockReader(ctx context.Context, readerID int64) (*ReaderRow, error) {
	const q = `
		SELECT id, borrow_limit, status
		FROM readers
		WHERE id = $1
		FOR UPDATE`
	var r ReaderRow
	err := x.t.QueryRowContext(ctx, q, readerID).Scan(&r.ID, &r.BorrowLimit, &r.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (x *tx) CountActiveBorrows(ctx context.Context, readerID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM borrow_records WHERE reader_id = $1 AND state = 'ACTIVE'`
	var n int64
	err := x.t.QueryRowContext(ctx, q, readerID).Scan(&n)
	return n, err
}

func (x *tx) CountUnpaidFines(ctx context.Context, readerID int64) (int64, error) {
	const q = `SELECT COUNT(*) FROM fine_records WHERE reader_id = $1 AND state = 'UNPAID'`
	var n int64
	err := x.t.QueryRowContext(ctx, q, readerID).Scan(&n)
	return n, err
}

func (x *tx) InsertBorrow(ctx context.Context, rec *model.BorrowRecord) error {
	const q = `
		INSERT INTO borrow_records (book_id, reader_id, borrowed_at, due_at, renewal_count, state)
		VALUES ($1, $2, $3, $4, 0, 'ACTIVE')
		RETURNING id`
	return x.t.QueryRowContext(ctx, q, rec.BookID, rec.ReaderID, rec.BorrowedAt, rec.DueAt).
		Scan(&rec.ID)
}

func (x *tx) LockBorrow(ctx context.Context, borrowID int64) (*model.BorrowRecord, error) {
	const q = `
		SELECT id, book_id, reader_id, borrowed_at, due_at, returned_at, renewal_count, state
		FROM borrow_records
		WHERE id = $1
		FOR UPDATE`
	var rec model.BorrowRecord
	err := x.t.QueryRowContext(ctx, q, borrowID).Scan(
		&rec.ID, &rec.BookID, &rec.ReaderID, &rec.BorrowedAt, &rec.DueAt,
		&rec.ReturnedAt, &rec.RenewalCount, &rec.State,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (x *tx) FinishBorrow(ctx context.Context, borrowID int64, returnedAt time.Time, state model.BorrowState) error {
	const q = `
		UPDATE borrow_records
		SET returned_at = $2, state = $3
		WHERE id = $1 AND state = 'ACTIVE'`
	res, err := x.t.ExecContext(ctx, q, borrowID, returnedAt, state)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (x *tx) RenewBorrow(ctx context.Context, borrowID int64, newDue time.Time) error {
	const q = `
		UPDATE borrow_records
		SET due_at = $2, renewal_count = renewal_count + 1
		WHERE id = $1 AND state = 'ACTIVE'`
	res, err := x.t.ExecContext(ctx, q, borrowID, newDue)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (x *tx) InsertFine(ctx context.Context, rec *model.FineRecord) error {
	const q = `
		INSERT INTO fine_records (borrow_id, reader_id, book_id, overdue_days, amount, state)
		VALUES ($1, $2, $3, $4, $5, 'UNPAID')
		RETURNING id`
	return x.t.QueryRowContext(ctx, q, rec.BorrowID, rec.ReaderID, rec.BookID,
		rec.OverdueDays, rec.Amount).Scan(&rec.ID)
}

func (x *tx) LockFine(ctx context.Context, fineID int64) (*model.FineRecord, error) {
	const q = `
		SELECT id, borrow_id, reader_id, book_id, overdue_days, amount, state, paid_at
		FROM fine_records
		WHERE id = $1
		FOR UPDATE`
	var f model.FineRecord
	err := x.t.QueryRowContext(ctx, q, fineID).Scan(
		&f.ID, &f.BorrowID, &f.ReaderID, &f.BookID,
		&f.OverdueDays, &f.Amount, &f.State, &f.PaidAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (x *tx) SettleFine(ctx context.Context, fineID int64, paidAt time.Time) error {
	const q = `
		UPDATE fine_records
		SET state = 'PAID', paid_at = $2
		WHERE id = $1 AND state = 'UNPAID'`
	res, err := x.t.ExecContext(ctx, q, fineID, paidAt)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (x *tx) Commit() error   { return x.t.Commit() }
func (x *tx) Rollback() error { return x.t.Rollback() }
