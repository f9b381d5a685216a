// Package main library circulation API.
//
// @title           Library Circulation API
// @version         1.0
// @description     Library circulation service (catalog, borrows, fines, rankings).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"librarysys/app/echoServer"
	authctrl "librarysys/app/echoServer/controller/auth"
	bookctrl "librarysys/app/echoServer/controller/book"
	circctrl "librarysys/app/echoServer/controller/circulation"
	reportctrl "librarysys/app/echoServer/controller/report"
	"librarysys/app/echoServer/validation"
	"librarysys/config"
	bookrepo "librarysys/repository/book"
	"librarysys/repository/ledger"
	readerrepo "librarysys/repository/reader"
	reportrepo "librarysys/repository/report"
	authsvc "librarysys/service/auth"
	booksvc "librarysys/service/book"
	"librarysys/service/circulation"
	reportsvc "librarysys/service/report"
	"librarysys/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB over pgx
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	store := ledger.NewPostgres(db, cfg.LockWait)
	br := bookrepo.New(db)
	rr := readerrepo.New(db)
	pr := reportrepo.New(db)

	// services
	as := authsvc.New(rr, cfg.JWTSecret)
	bs := booksvc.New(br)
	cs := circulation.New(store)
	rs := reportsvc.New(pr)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	circC := &circctrl.Controller{Svc: cs, V: v, Log: log}
	reportC := &reportctrl.Controller{Svc: rs, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:        authC,
		Book:        bookC,
		Circulation: circC,
		Report:      reportC,
		JWTSecret:   cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
