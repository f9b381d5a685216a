// app/echoServer/controller/circulation/circulationController.go
package circulation

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"librarysys/app/echoServer/jwtx"
	cs "librarysys/service/circulation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc cs.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/borrows
func (ct *Controller) Borrow(c echo.Context) error {
	uid, err := jwtx.ReaderIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}

	var req BorrowReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	out, err := ct.Svc.Borrow(c.Request().Context(), uid, req.BookID)
	if err != nil {
		return ct.fail(c, "borrow", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"borrow_id": out.BorrowID,
		"due_at":    out.DueAt.Format(time.RFC3339),
	})
}

// POST /v1/borrows/:id/return
func (ct *Controller) Return(c echo.Context) error {
	if _, err := jwtx.ReaderIDFromContext(c); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	out, err := ct.Svc.Return(c.Request().Context(), id)
	if err != nil {
		return ct.fail(c, "return", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"overdue_days": out.OverdueDays,
		"fine_amount":  out.FineAmount,
	})
}

// POST /v1/borrows/:id/renew
func (ct *Controller) Renew(c echo.Context) error {
	if _, err := jwtx.ReaderIDFromContext(c); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newDue, err := ct.Svc.Renew(c.Request().Context(), id)
	if err != nil {
		return ct.fail(c, "renew", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"new_due_at": newDue.Format(time.RFC3339),
	})
}

// POST /v1/fines/:id/pay
func (ct *Controller) PayFine(c echo.Context) error {
	if _, err := jwtx.ReaderIDFromContext(c); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := ct.Svc.PayFine(c.Request().Context(), id); err != nil {
		return ct.fail(c, "pay fine", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "fine paid"})
}

// GET /v1/borrows/my
func (ct *Controller) MyBorrows(c echo.Context) error {
	uid, err := jwtx.ReaderIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	rows, err := ct.Svc.History(c.Request().Context(), uid)
	if err != nil {
		ct.Log.Error("borrow history failed", "err", err, "reader_id", uid)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/fines/my
func (ct *Controller) MyFines(c echo.Context) error {
	uid, err := jwtx.ReaderIDFromContext(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
	}
	fines, err := ct.Svc.UnpaidFines(c.Request().Context(), uid)
	if err != nil {
		ct.Log.Error("fine list failed", "err", err, "reader_id", uid)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": fines})
}

// fail maps circulation error codes to HTTP statuses. Busy gets 503 with
// Retry-After so a well-behaved client backs off and retries.
func (ct *Controller) fail(c echo.Context, op string, err error) error {
	switch cs.Code(err) {
	case cs.ErrOutOfStock:
		return echo.NewHTTPError(http.StatusConflict, "book out of stock or withdrawn")
	case cs.ErrBorrowLimitExceeded:
		return echo.NewHTTPError(http.StatusConflict, "borrow limit reached")
	case cs.ErrUnpaidFineBlock:
		return echo.NewHTTPError(http.StatusConflict, "unpaid fines block borrowing")
	case cs.ErrAlreadyRenewed:
		return echo.NewHTTPError(http.StatusConflict, "already renewed once")
	case cs.ErrNotRenewable:
		return echo.NewHTTPError(http.StatusConflict, "loan not renewable")
	case cs.ErrAlreadyPaidOrMissing:
		return echo.NewHTTPError(http.StatusConflict, "fine already paid or missing")
	case cs.ErrNotFound, cs.ErrRecordNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "record not found")
	case cs.ErrBusy:
		c.Response().Header().Set("Retry-After", "1")
		return echo.NewHTTPError(http.StatusServiceUnavailable, "busy, retry")
	default:
		ct.Log.Error(op+" failed", "err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
