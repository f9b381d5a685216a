// service/circulation/mem_ledger_test.go
package circulation_test

import (
	"context"
	"sync"
	"time"

	"librarysys/model"
	"librarysys/repository/ledger"
)

// memStore is an in-memory Ledger Store for tests. Begin takes a global lock
// held until Commit/Rollback, so every transaction is trivially serializable —
// the same isolation the Postgres implementation gets from row locks.
type memStore struct {
	mu      sync.Mutex
	books   map[int64]*ledger.BookRow
	readers map[int64]*ledger.ReaderRow
	borrows map[int64]*model.BorrowRecord
	fines   map[int64]*model.FineRecord
	nextID  int64
}

func newMemStore() *memStore {
	return &memStore{
		books:   map[int64]*ledger.BookRow{},
		readers: map[int64]*ledger.ReaderRow{},
		borrows: map[int64]*model.BorrowRecord{},
		fines:   map[int64]*model.FineRecord{},
	}
}

func (s *memStore) addBook(id, total int64, status model.BookStatus) {
	s.books[id] = &ledger.BookRow{
		ID: id, AvailableCopies: total, TotalCopies: total, Status: status,
	}
}

func (s *memStore) addReader(id, limit int64) {
	s.readers[id] = &ledger.ReaderRow{ID: id, BorrowLimit: limit, Status: model.ReaderActive}
}

func (s *memStore) Begin(ctx context.Context) (ledger.Tx, error) {
	s.mu.Lock()
	return &memTx{s: s}, nil
}

func (s *memStore) ReaderHistory(ctx context.Context, readerID int64) ([]ledger.HistoryRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.HistoryRow
	for _, b := range s.borrows {
		if b.ReaderID == readerID {
			out = append(out, ledger.HistoryRow{
				BorrowID: b.ID, BookID: b.BookID,
				BorrowedAt: b.BorrowedAt, DueAt: b.DueAt, ReturnedAt: b.ReturnedAt,
				RenewalCount: b.RenewalCount, State: b.State,
			})
		}
	}
	return out, nil
}

func (s *memStore) UnpaidFines(ctx context.Context, readerID int64) ([]model.FineRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.FineRecord
	for _, f := range s.fines {
		if f.ReaderID == readerID && f.State == model.FineUnpaid {
			out = append(out, *f)
		}
	}
	return out, nil
}

type memTx struct {
	s *memStore
}

func (x *memTx) LockBook(ctx context.Context, bookID int64) (*ledger.BookRow, error) {
	b, ok := x.s.books[bookID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (x *memTx) UpdateBookCounts(ctx context.Context, bookID, availDelta, activeDelta int64) error {
	b := x.s.books[bookID]
	b.AvailableCopies += availDelta
	b.ActiveBorrows += activeDelta
	return nil
}

func (x *memTx) LockReader(ctx context.Context, readerID int64) (*ledger.ReaderRow, error) {
	r, ok := x.s.readers[readerID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (x *memTx) CountActiveBorrows(ctx context.Context, readerID int64) (int64, error) {
	var n int64
	for _, b := range x.s.borrows {
		if b.ReaderID == readerID && b.State == model.BorrowActive {
			n++
		}
	}
	return n, nil
}

func (x *memTx) CountUnpaidFines(ctx context.Context, readerID int64) (int64, error) {
	var n int64
	for _, f := range x.s.fines {
		if f.ReaderID == readerID && f.State == model.FineUnpaid {
			n++
		}
	}
	return n, nil
}

func (x *memTx) InsertBorrow(ctx context.Context, rec *model.BorrowRecord) error {
	x.s.nextID++
	rec.ID = x.s.nextID
	cp := *rec
	x.s.borrows[rec.ID] = &cp
	return nil
}

func (x *memTx) LockBorrow(ctx context.Context, borrowID int64) (*model.BorrowRecord, error) {
	b, ok := x.s.borrows[borrowID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (x *memTx) FinishBorrow(ctx context.Context, borrowID int64, returnedAt time.Time, state model.BorrowState) error {
	b, ok := x.s.borrows[borrowID]
	if !ok || b.State != model.BorrowActive {
		return ledger.ErrNotFound
	}
	at := returnedAt
	b.ReturnedAt = &at
	b.State = state
	return nil
}

func (x *memTx) RenewBorrow(ctx context.Context, borrowID int64, newDue time.Time) error {
	b, ok := x.s.borrows[borrowID]
	if !ok || b.State != model.BorrowActive {
		return ledger.ErrNotFound
	}
	b.DueAt = newDue
	b.RenewalCount++
	return nil
}

func (x *memTx) InsertFine(ctx context.Context, rec *model.FineRecord) error {
	x.s.nextID++
	rec.ID = x.s.nextID
	cp := *rec
	x.s.fines[rec.ID] = &cp
	return nil
}

func (x *memTx) LockFine(ctx context.Context, fineID int64) (*model.FineRecord, error) {
	f, ok := x.s.fines[fineID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (x *memTx) SettleFine(ctx context.Context, fineID int64, paidAt time.Time) error {
	f, ok := x.s.fines[fineID]
	if !ok || f.State != model.FineUnpaid {
		return ledger.ErrNotFound
	}
	at := paidAt
	f.State = model.FinePaid
	f.PaidAt = &at
	return nil
}

func (x *memTx) Commit() error {
	x.s.mu.Unlock()
	return nil
}

func (x *memTx) Rollback() error {
	x.s.mu.Unlock()
	return nil
}

// fakeClock is a settable time source for the circulation service.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}
