package domain

import (
	"context"
	"time"
)

type Child struct {
	ID        int       `json:"id"`
	FullName  string    `json:"full_name"`
	CPF       string    `json:"cpf"`
	BirthDate time.Time `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateChildRequest is the POST /children body. BirthDate stays a string
// here so a bad date can be reported together with the missing-field
// messages instead of dying inside the JSON decoder.
type CreateChildRequest struct {
	FullName  string `json:"full_name" valid:"required~Full name is required"`
	CPF       string `json:"cpf" valid:"required~CPF is required"`
	BirthDate string `json:"birth_date" valid:"required~Birth date is required"`
}

type CreateChildResponse struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
}

type ChildRepo interface {
	// CreateChildWithParent inserts the child row and its parent association
	// in one transaction. On success req's ID is filled in.
	CreateChildWithParent(ctx context.Context, child *Child, parentID int) error
	GetChildrenByParent(ctx context.Context, parentID int) (*[]Child, error)
	DeleteChild(ctx context.Context, childID int) error
	IsChildOwnedBy(ctx context.Context, childID, parentID int) (bool, error)
}

type ChildUseCase interface {
	CreateChild(ctx context.Context, req *CreateChildRequest, parentID int) (*Child, error)
	GetChildrenByParent(ctx context.Context, parentID int) (*[]Child, error)
	DeleteChild(ctx context.Context, childID, parentID int) error
}
