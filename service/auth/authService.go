// service/auth/authService.go
package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"librarysys/model"
	readerrepo "librarysys/repository/reader"
	"librarysys/util/code"
	"librarysys/util/hash"
	jwtutil "librarysys/util/jwt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrBadInput      = errors.New("bad input")
	ErrUsernameTaken = errors.New("username already taken")
	ErrIDCardTaken   = errors.New("id card already registered")
	ErrInvalidCreds  = errors.New("invalid credentials")
)

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.Reader, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.Reader, string, error)
	UpdateProfile(ctx context.Context, readerID int64, req model.UpdateProfileReq) error
}

type service struct {
	rr     readerrepo.Repo
	secret string
}

func New(rr readerrepo.Repo, secret string) Service { return &service{rr: rr, secret: secret} }

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.Reader, string, error) {
	if strings.TrimSpace(req.Username) == "" || len(req.Password) < 6 {
		return nil, "", ErrBadInput
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	rd := &model.Reader{
		ReaderNo:     code.Generate("R-"),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: hashed,
		RealName:     req.RealName,
		IDCard:       req.IDCard,
		Phone:        req.Phone,
	}
	if err := s.rr.Create(ctx, rd); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, "", derr
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, rd.ID, "reader", 24)
	if err != nil {
		return nil, "", err
	}
	return rd, token, nil
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.Reader, string, error) {
	rd, err := s.rr.ByUsername(ctx, req.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrInvalidCreds
	}
	if err != nil {
		return nil, "", err
	}
	if rd.Status != model.ReaderActive {
		return nil, "", ErrInvalidCreds
	}
	if !hash.Check(rd.PasswordHash, req.Password) {
		return nil, "", ErrInvalidCreds
	}

	token, err := jwtutil.Issue(s.secret, rd.ID, "reader", 24)
	if err != nil {
		return nil, "", err
	}
	return rd, token, nil
}

func (s *service) UpdateProfile(ctx context.Context, readerID int64, req model.UpdateProfileReq) error {
	var newHash *string
	if req.NewPassword != "" {
		h, err := hash.HashPassword(req.NewPassword)
		if err != nil {
			return err
		}
		newHash = &h
	}
	return s.rr.UpdateProfile(ctx, readerID, req.Phone, req.Email, req.Address, newHash)
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		if strings.Contains(cn, "username") {
			return ErrUsernameTaken
		}
		if strings.Contains(cn, "id_card") {
			return ErrIDCardTaken
		}
		return ErrBadInput
	}
	return nil
}
