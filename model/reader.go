package model

import "time"

type ReaderStatus int16

const (
	ReaderDisabled ReaderStatus = 0
	ReaderActive   ReaderStatus = 1
)

type Reader struct {
	ID           int64        `json:"id"`
	ReaderNo     string       `json:"reader_no"`
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	RealName     string       `json:"real_name"`
	IDCard       string       `json:"id_card"`
	Phone        string       `json:"phone"`
	Email        string       `json:"email"`
	Address      string       `json:"address"`
	BorrowLimit  int64        `json:"borrow_limit"`
	Status       ReaderStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}

// RegisterReq represents reader registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	RealName string `json:"real_name" validate:"required"`
	IDCard   string `json:"id_card" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileReq carries the editable profile fields. Password change is optional.
type UpdateProfileReq struct {
	Phone       string `json:"phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Address     string `json:"address"`
	NewPassword string `json:"new_password" validate:"omitempty,min=6"`
}
