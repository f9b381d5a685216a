package echoServer

import (
	"librarysys/app/echoServer/controller/auth"
	"librarysys/app/echoServer/controller/book"
	"librarysys/app/echoServer/controller/circulation"
	"librarysys/app/echoServer/controller/report"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth        *auth.Controller
	Book        *book.Controller
	Circulation *circulation.Controller
	Report      *report.Controller
	JWTSecret   string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/readers/register", c.Auth.Register)
	pub.POST("/readers/login", c.Auth.Login)

	// Rankings are public, same as the login-free rank page.
	pub.GET("/rank/books", c.Report.BookRank)
	pub.GET("/rank/readers", c.Report.ReaderRank)

	// Authenticated
	authed := e.Group("/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))

	authed.PUT("/readers/profile", c.Auth.UpdateProfile)

	// Catalog
	authed.GET("/books", c.Book.List)
	authed.GET("/books/:id", c.Book.Detail)
	authed.POST("/books", c.Book.Warehousing)
	authed.POST("/books/search", c.Book.Search)

	// Circulation
	authed.POST("/borrows", c.Circulation.Borrow)
	authed.POST("/borrows/:id/return", c.Circulation.Return)
	authed.POST("/borrows/:id/renew", c.Circulation.Renew)
	authed.GET("/borrows/my", c.Circulation.MyBorrows)
	authed.POST("/fines/:id/pay", c.Circulation.PayFine)
	authed.GET("/fines/my", c.Circulation.MyFines)
}
