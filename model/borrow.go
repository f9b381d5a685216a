// model/borrow.go
package model

import "time"

type BorrowState string

const (
	BorrowActive         BorrowState = "ACTIVE"
	BorrowReturnedOnTime BorrowState = "RETURNED_ON_TIME"
	BorrowReturnedLate   BorrowState = "RETURNED_LATE"
)

type BorrowRecord struct {
	ID           int64       `json:"id"`
	BookID       int64       `json:"book_id"`
	ReaderID     int64       `json:"reader_id"`
	BorrowedAt   time.Time   `json:"borrowed_at"`
	DueAt        time.Time   `json:"due_at"`
	ReturnedAt   *time.Time  `json:"returned_at,omitempty"`
	RenewalCount int16       `json:"renewal_count"`
	State        BorrowState `json:"state"`
}

type FineState string

const (
	FineUnpaid FineState = "UNPAID"
	FinePaid   FineState = "PAID"
)

type FineRecord struct {
	ID          int64      `json:"id"`
	BorrowID    int64      `json:"borrow_id"`
	ReaderID    int64      `json:"reader_id"`
	BookID      int64      `json:"book_id"`
	OverdueDays int64      `json:"overdue_days"`
	Amount      float64    `json:"amount"`
	State       FineState  `json:"state"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}
