package circulation

import (
	"context"
	"errors"

	"librarysys/model"
	"librarysys/repository/ledger"
)

// eligibilityChecker decides whether a reader may borrow. It locks the reader
// row first, which serializes concurrent borrows by the same reader: the
// second transaction blocks here and then observes the first one's committed
// borrow count.
type eligibilityChecker struct{}

func (eligibilityChecker) CheckEligible(ctx context.Context, tx ledger.Tx, readerID int64) error {
	rd, err := tx.LockReader(ctx, readerID)
	if errors.Is(err, ledger.ErrNotFound) {
		return makeErr(ErrNotFound)
	}
	if err != nil {
		return err
	}
	if rd.Status != model.ReaderActive {
		return makeErr(ErrNotFound)
	}

	active, err := tx.CountActiveBorrows(ctx, readerID)
	if err != nil {
		return err
	}
	if active >= rd.BorrowLimit {
		return makeErr(ErrBorrowLimitExceeded)
	}

	unpaid, err := tx.CountUnpaidFines(ctx, readerID)
	if err != nil {
		return err
	}
	if unpaid > 0 {
		return makeErr(ErrUnpaidFineBlock)
	}
	return nil
}
