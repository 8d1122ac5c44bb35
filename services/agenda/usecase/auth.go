package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"agendakids/domain"
	"agendakids/middleware"

	"golang.org/x/crypto/bcrypt"
)

type authUseCase struct {
	repo    domain.UserRepo
	TimeOut time.Duration
}

func NewAuthUseCase(repo domain.UserRepo, to time.Duration) domain.AuthUseCase {
	return &authUseCase{
		repo:    repo,
		TimeOut: to,
	}
}

func (au *authUseCase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if messages := validateStruct(req); len(messages) > 0 {
		return nil, validationError(messages)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
		Telephone: req.Telephone,
	}

	if err := au.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return &domain.RegisterResponse{
		ID:   user.ID,
		Name: user.Name,
	}, nil
}

func (au *authUseCase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, au.TimeOut)
	defer cancel()

	if messages := validateStruct(req); len(messages) > 0 {
		return nil, validationError(messages)
	}

	user, err := au.repo.FindUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		Token: token,
		Name:  user.Name,
	}, nil
}
