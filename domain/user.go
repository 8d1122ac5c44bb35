package domain

import (
	"context"
	"time"
)

// User is a parent account. The core only ever needs the integer ID; the
// account row exists so JWT login can mint tokens and so reminders have a
// contact address to reach.
type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Telephone *string   `json:"telephone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name      string  `json:"name" valid:"required~Name is required"`
	Email     string  `json:"email" valid:"required~Email is required,email~Invalid email format"`
	Password  string  `json:"password" valid:"required~Password is required"`
	Telephone *string `json:"telephone"`
}

type RegisterResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}
