// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"strings"
	"testing"

	"librarysys/model"
	booksvc "librarysys/service/book"
)

type repoMock struct {
	createFn func(ctx context.Context, b *model.Book) error
	byIDFn   func(ctx context.Context, id int64) (*model.Book, error)
	searchFn func(ctx context.Context, req model.SearchReq) ([]model.Book, error)
	listFn   func(ctx context.Context) ([]model.Book, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) Search(ctx context.Context, req model.SearchReq) ([]model.Book, error) {
	return m.searchFn(ctx, req)
}
func (m *repoMock) List(ctx context.Context) ([]model.Book, error) { return m.listFn(ctx) }

func TestWarehousing_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	ctx := context.Background()

	if _, err := s.Warehousing(ctx, model.WarehousingReq{ISBN: "i", TotalCopies: 1}); err == nil {
		t.Fatal("expected error for empty title")
	}
	if _, err := s.Warehousing(ctx, model.WarehousingReq{Title: "t", TotalCopies: 1}); err == nil {
		t.Fatal("expected error for empty isbn")
	}
	if _, err := s.Warehousing(ctx, model.WarehousingReq{Title: "t", ISBN: "i", TotalCopies: 0}); err == nil {
		t.Fatal("expected error for zero copies")
	}
	if _, err := s.Warehousing(ctx, model.WarehousingReq{Title: "t", ISBN: "i", TotalCopies: 1, Price: -1}); err == nil {
		t.Fatal("expected error for negative price")
	}
}

func TestWarehousing_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			b.ID = 42
			return nil
		},
	}
	s := booksvc.New(m)

	b, err := s.Warehousing(context.Background(), model.WarehousingReq{
		Title:       "平凡的世界",
		Author:      "路遥",
		ISBN:        "9787530216781",
		Category:    "文学",
		Price:       68,
		TotalCopies: 4,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ID != 42 {
		t.Fatalf("got id=%d; want 42", b.ID)
	}
	if !strings.HasPrefix(b.BookNo, "B-") || len(b.BookNo) != 10 {
		t.Fatalf("bad book_no %q", b.BookNo)
	}
	if b.AvailableCopies != 4 || b.ActiveBorrows != 0 {
		t.Fatalf("new book must start fully available, got avail=%d active=%d",
			b.AvailableCopies, b.ActiveBorrows)
	}
	if b.Status != model.BookActive {
		t.Fatalf("new book must be active")
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		byIDFn:   func(ctx context.Context, id int64) (*model.Book, error) { return &model.Book{ID: id}, nil },
		searchFn: func(ctx context.Context, req model.SearchReq) ([]model.Book, error) { return nil, nil },
		listFn:   func(ctx context.Context) ([]model.Book, error) { return nil, nil },
	}
	s := booksvc.New(m)

	if b, err := s.Detail(context.Background(), 99); err != nil || b.ID != 99 {
		t.Fatalf("Detail got %v %v; want 99 nil", b, err)
	}
	if _, err := s.Search(context.Background(), model.SearchReq{Keyword: "x"}); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
}
