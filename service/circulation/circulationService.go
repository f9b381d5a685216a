// service/circulation/circulationService.go
package circulation

import (
	"context"
	"errors"
	"math"
	"time"

	"librarysys/model"
	"librarysys/repository/ledger"
)

const (
	loanPeriod  = 30 * 24 * time.Hour
	finePerDay  = 0.5
	maxRenewals = 1
)

// Borrowed is the success payload of Borrow.
type Borrowed struct {
	BorrowID int64     `json:"borrow_id"`
	DueAt    time.Time `json:"due_at"`
}

// Returned is the success payload of Return. FineAmount is 0 when on time.
type Returned struct {
	OverdueDays int64   `json:"overdue_days"`
	FineAmount  float64 `json:"fine_amount"`
}

type Service interface {
	// Borrow lends one copy of a book to a reader. The eligibility and stock
	// checks and the record insert are a single atomic transaction.
	Borrow(ctx context.Context, readerID, bookID int64) (*Borrowed, error)

	// Return closes an active loan, restores stock, and creates an UNPAID
	// fine when the loan is overdue.
	Return(ctx context.Context, borrowID int64) (*Returned, error)

	// Renew extends an active, not-yet-due loan by the loan period, once.
	Renew(ctx context.Context, borrowID int64) (time.Time, error)

	// PayFine settles one UNPAID fine.
	PayFine(ctx context.Context, fineID int64) error

	// History lists a reader's borrow records, newest first.
	History(ctx context.Context, readerID int64) ([]ledger.HistoryRow, error)

	// UnpaidFines lists a reader's outstanding fines.
	UnpaidFines(ctx context.Context, readerID int64) ([]model.FineRecord, error)
}

type service struct {
	store ledger.Store
	guard inventoryGuard
	elig  eligibilityChecker
	now   func() time.Time
}

// Option configures the service.
type Option func(*service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func New(store ledger.Store, opts ...Option) Service {
	s := &service{store: store, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *service) Borrow(ctx context.Context, readerID, bookID int64) (_ *Borrowed, err error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			err = mapRetryable(err)
		}
	}()

	// Reader lock before book lock. Every code path takes locks in this
	// order, so transactions cannot deadlock against each other.
	if err = s.elig.CheckEligible(ctx, tx, readerID); err != nil {
		return nil, err
	}
	if err = s.guard.TryDecrement(ctx, tx, bookID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rec := &model.BorrowRecord{
		BookID:     bookID,
		ReaderID:   readerID,
		BorrowedAt: now,
		DueAt:      now.Add(loanPeriod),
		State:      model.BorrowActive,
	}
	if err = tx.InsertBorrow(ctx, rec); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return &Borrowed{BorrowID: rec.ID, DueAt: rec.DueAt}, nil
}

func (s *service) Return(ctx context.Context, borrowID int64) (_ *Returned, err error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			err = mapRetryable(err)
		}
	}()

	rec, err := tx.LockBorrow(ctx, borrowID)
	if errors.Is(err, ledger.ErrNotFound) {
		return nil, makeErr(ErrRecordNotFound)
	}
	if err != nil {
		return nil, err
	}
	if rec.State != model.BorrowActive {
		return nil, makeErr(ErrRecordNotFound)
	}

	now := s.now().UTC()
	days := overdueDays(now, rec.DueAt)

	if err = s.guard.Increment(ctx, tx, rec.BookID); err != nil {
		return nil, err
	}

	state := model.BorrowReturnedOnTime
	if days > 0 {
		state = model.BorrowReturnedLate
	}
	if err = tx.FinishBorrow(ctx, borrowID, now, state); err != nil {
		return nil, err
	}

	out := &Returned{OverdueDays: days}
	if days > 0 {
		out.FineAmount = round2(float64(days) * finePerDay)
		fine := &model.FineRecord{
			BorrowID:    borrowID,
			ReaderID:    rec.ReaderID,
			BookID:      rec.BookID,
			OverdueDays: days,
			Amount:      out.FineAmount,
			State:       model.FineUnpaid,
		}
		if err = tx.InsertFine(ctx, fine); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Renew(ctx context.Context, borrowID int64) (_ time.Time, err error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return time.Time{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			err = mapRetryable(err)
		}
	}()

	rec, err := tx.LockBorrow(ctx, borrowID)
	if errors.Is(err, ledger.ErrNotFound) {
		return time.Time{}, makeErr(ErrRecordNotFound)
	}
	if err != nil {
		return time.Time{}, err
	}
	if rec.RenewalCount >= maxRenewals {
		return time.Time{}, makeErr(ErrAlreadyRenewed)
	}
	// Already returned, or active but past due: either way not renewable.
	if rec.State != model.BorrowActive || s.now().UTC().After(rec.DueAt) {
		return time.Time{}, makeErr(ErrNotRenewable)
	}

	newDue := rec.DueAt.Add(loanPeriod)
	if err = tx.RenewBorrow(ctx, borrowID, newDue); err != nil {
		return time.Time{}, err
	}
	if err = tx.Commit(); err != nil {
		return time.Time{}, err
	}
	return newDue, nil
}

func (s *service) PayFine(ctx context.Context, fineID int64) (err error) {
	tx, err := s.store.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			err = mapRetryable(err)
		}
	}()

	f, err := tx.LockFine(ctx, fineID)
	if errors.Is(err, ledger.ErrNotFound) {
		return makeErr(ErrAlreadyPaidOrMissing)
	}
	if err != nil {
		return err
	}
	if f.State != model.FineUnpaid {
		return makeErr(ErrAlreadyPaidOrMissing)
	}

	if err = tx.SettleFine(ctx, fineID, s.now().UTC()); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) History(ctx context.Context, readerID int64) ([]ledger.HistoryRow, error) {
	return s.store.ReaderHistory(ctx, readerID)
}

func (s *service) UnpaidFines(ctx context.Context, readerID int64) ([]model.FineRecord, error) {
	return s.store.UnpaidFines(ctx, readerID)
}

// overdueDays counts whole elapsed days past due, floored, never negative.
// A return one hour late is 0 overdue days; 25 hours late is 1.
func overdueDays(now, due time.Time) int64 {
	d := now.Sub(due)
	if d <= 0 {
		return 0
	}
	return int64(d / (24 * time.Hour))
}

// round2 rounds to 2 decimal places, half up.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// mapRetryable turns a lock-wait timeout into the retryable Busy code.
// Coded business errors pass through untouched.
func mapRetryable(err error) error {
	if Code(err) != "" {
		return err
	}
	if ledger.IsLockTimeout(err) {
		return makeErr(ErrBusy)
	}
	return err
}
