package reportsvc

import (
	"context"

	reportrepo "librarysys/repository/report"
)

const rankLimit = 10

type BookRank = reportrepo.BookRank
type ReaderRank = reportrepo.ReaderRank

type Service interface {
	RankBooks(ctx context.Context) ([]BookRank, error)
	RankReaders(ctx context.Context) ([]ReaderRank, error)
}

type service struct{ r reportrepo.Repo }

func New(r reportrepo.Repo) Service { return &service{r: r} }

func (s *service) RankBooks(ctx context.Context) ([]BookRank, error) {
	return s.r.TopBooks(ctx, rankLimit)
}

func (s *service) RankReaders(ctx context.Context) ([]ReaderRank, error) {
	return s.r.TopReaders(ctx, rankLimit)
}
