// repository/ledger/ledger.go
package ledger

import (
	"context"
	"errors"
	"time"

	"librarysys/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned by lock/lookup methods when the row does not exist.
var ErrNotFound = errors.New("ledger: record not found")

// BookRow is the locked circulation view of a book.
type BookRow struct {
	ID              int64
	AvailableCopies int64
	ActiveBorrows   int64
	TotalCopies     int64
	Status          model.BookStatus
}

// ReaderRow is the locked circulation view of a reader.
type ReaderRow struct {
	ID          int64
	BorrowLimit int64
	Status      model.ReaderStatus
}

// HistoryRow is one entry of a reader's borrow history.
type HistoryRow struct {
	BorrowID     int64             `json:"borrow_id"`
	BookID       int64             `json:"book_id"`
	BookNo       string            `json:"book_no"`
	Title        string            `json:"title"`
	BorrowedAt   time.Time         `json:"borrowed_at"`
	DueAt        time.Time         `json:"due_at"`
	ReturnedAt   *time.Time        `json:"returned_at,omitempty"`
	RenewalCount int16             `json:"renewal_count"`
	State        model.BorrowState `json:"state"`
}

// Store owns all persisted circulation state. Every mutation happens inside a
// Tx; reads outside a Tx see committed state only.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
	ReaderHistory(ctx context.Context, readerID int64) ([]HistoryRow, error)
	UnpaidFines(ctx context.Context, readerID int64) ([]model.FineRecord, error)
}

// Tx is one atomic transaction over the ledger. All Lock* methods take a
// write-intent row lock, so a concurrent transaction touching the same row
// blocks until commit or hits the lock-wait bound.
type Tx interface {
	LockBook(ctx context.Context, bookID int64) (*BookRow, error)
	UpdateBookCounts(ctx context.Context, bookID, availDelta, activeDelta int64) error

	LockReader(ctx context.Context, readerID int64) (*ReaderRow, error)
	CountActiveBorrows(ctx context.Context, readerID int64) (int64, error)
	CountUnpaidFines(ctx context.Context, readerID int64) (int64, error)

	InsertBorrow(ctx context.Context, rec *model.BorrowRecord) error
	LockBorrow(ctx context.Context, borrowID int64) (*model.BorrowRecord, error)
	FinishBorrow(ctx context.Context, borrowID int64, returnedAt time.Time, state model.BorrowState) error
	RenewBorrow(ctx context.Context, borrowID int64, newDue time.Time) error

	InsertFine(ctx context.Context, rec *model.FineRecord) error
	LockFine(ctx context.Context, fineID int64) (*model.FineRecord, error)
	SettleFine(ctx context.Context, fineID int64, paidAt time.Time) error

	Commit() error
	Rollback() error
}

// IsLockTimeout reports whether err is Postgres giving up on a row lock
// (lock_timeout expired). Callers treat this as retryable.
func IsLockTimeout(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.LockNotAvailable
}
