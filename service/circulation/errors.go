package circulation

import "errors"

// ErrCode is the closed set of circulation failure kinds. Controllers branch
// on the code, never on error text.
type ErrCode string

const (
	ErrOutOfStock           ErrCode = "OUT_OF_STOCK"
	ErrBorrowLimitExceeded  ErrCode = "BORROW_LIMIT_EXCEEDED"
	ErrUnpaidFineBlock      ErrCode = "UNPAID_FINE_BLOCK"
	ErrNotFound             ErrCode = "NOT_FOUND"
	ErrRecordNotFound       ErrCode = "RECORD_NOT_FOUND"
	ErrAlreadyRenewed       ErrCode = "ALREADY_RENEWED"
	ErrNotRenewable         ErrCode = "NOT_RENEWABLE"
	ErrAlreadyPaidOrMissing ErrCode = "ALREADY_PAID_OR_MISSING"

	// ErrBusy means a row lock could not be acquired within the bound.
	// The whole operation rolled back and is safe to retry.
	ErrBusy ErrCode = "BUSY"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the failure kind, or "" for storage/internal errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}
