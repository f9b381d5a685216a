package circulation

import (
	"context"
	"errors"
	"fmt"

	"librarysys/model"
	"librarysys/repository/ledger"
)

// inventoryGuard is the unit of atomicity for stock mutation. Both methods
// run inside the caller's transaction and re-read the book row under a write
// lock, so no other transaction can slip between the check and the write.
type inventoryGuard struct{}

func (inventoryGuard) TryDecrement(ctx context.Context, tx ledger.Tx, bookID int64) error {
	b, err := tx.LockBook(ctx, bookID)
	if errors.Is(err, ledger.ErrNotFound) {
		return makeErr(ErrNotFound)
	}
	if err != nil {
		return err
	}
	if b.Status != model.BookActive || b.AvailableCopies == 0 {
		return makeErr(ErrOutOfStock)
	}
	return tx.UpdateBookCounts(ctx, bookID, -1, +1)
}

func (inventoryGuard) Increment(ctx context.Context, tx ledger.Tx, bookID int64) error {
	b, err := tx.LockBook(ctx, bookID)
	if errors.Is(err, ledger.ErrNotFound) {
		return makeErr(ErrRecordNotFound)
	}
	if err != nil {
		return err
	}
	// A return that would push available past total means the counters were
	// corrupted; surface it, never "fix" it silently.
	if b.AvailableCopies >= b.TotalCopies || b.ActiveBorrows <= 0 {
		return fmt.Errorf("inventory counters inconsistent for book %d: available=%d active=%d total=%d",
			bookID, b.AvailableCopies, b.ActiveBorrows, b.TotalCopies)
	}
	return tx.UpdateBookCounts(ctx, bookID, +1, -1)
}
