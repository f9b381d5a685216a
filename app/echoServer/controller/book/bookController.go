package book

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"librarysys/model"
	booksvc "librarysys/service/book"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc booksvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /v1/books
func (ct *Controller) Warehousing(c echo.Context) error {
	var req model.WarehousingReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}

	b, err := ct.Svc.Warehousing(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, booksvc.ErrISBNTaken) {
			return echo.NewHTTPError(http.StatusConflict, "isbn already in catalog")
		}
		ct.Log.Error("warehousing failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "warehousing failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "book stored",
		"book_no": b.BookNo,
		"book":    b,
	})
}

// POST /v1/books/search
func (ct *Controller) Search(c echo.Context) error {
	var req model.SearchReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	books, err := ct.Svc.Search(c.Request().Context(), req)
	if err != nil {
		ct.Log.Error("book search failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": books})
}

// GET /v1/books/:id
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	b, err := ct.Svc.Detail(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "book not found")
		}
		ct.Log.Error("book detail failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, b)
}

// GET /v1/books
func (ct *Controller) List(c echo.Context) error {
	books, err := ct.Svc.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("book list failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": books})
}
