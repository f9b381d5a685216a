package booksvc

import (
	"context"
	"errors"
	"strings"

	"librarysys/model"
	"librarysys/util/code"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrISBNTaken = errors.New("isbn already in catalog")

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	ByID(ctx context.Context, id int64) (*model.Book, error)
	Search(ctx context.Context, req model.SearchReq) ([]model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
}

type Service interface {
	// Warehousing adds a new title; all copies start available.
	Warehousing(ctx context.Context, req model.WarehousingReq) (*model.Book, error)
	Search(ctx context.Context, req model.SearchReq) ([]model.Book, error)
	Detail(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Warehousing(ctx context.Context, req model.WarehousingReq) (*model.Book, error) {
	if req.Title == "" || req.ISBN == "" || req.TotalCopies <= 0 || req.Price < 0 {
		return nil, errors.New("invalid payload")
	}
	b := &model.Book{
		BookNo:          code.Generate("B-"),
		Title:           req.Title,
		Author:          req.Author,
		Publisher:       req.Publisher,
		ISBN:            req.ISBN,
		Category:        req.Category,
		Price:           req.Price,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: req.TotalCopies,
		Status:          model.BookActive,
	}
	if err := s.r.Create(ctx, b); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation &&
			strings.Contains(strings.ToLower(pgErr.ConstraintName), "isbn") {
			return nil, ErrISBNTaken
		}
		return nil, err
	}
	return b, nil
}

func (s *service) Search(ctx context.Context, req model.SearchReq) ([]model.Book, error) {
	return s.r.Search(ctx, req)
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	return s.r.ByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }
