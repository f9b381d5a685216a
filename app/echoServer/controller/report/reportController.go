package report

import (
	"log/slog"
	"net/http"

	reportsvc "librarysys/service/report"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc reportsvc.Service
	Log *slog.Logger
}

// GET /v1/rank/books
func (ct *Controller) BookRank(c echo.Context) error {
	data, err := ct.Svc.RankBooks(c.Request().Context())
	if err != nil {
		ct.Log.Error("book rank failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}

// GET /v1/rank/readers
func (ct *Controller) ReaderRank(c echo.Context) error {
	data, err := ct.Svc.RankReaders(c.Request().Context())
	if err != nil {
		ct.Log.Error("reader rank failed", "err", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, echo.Map{"data": data})
}
