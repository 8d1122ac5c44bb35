package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"agendakids/domain"

	"github.com/stretchr/testify/require"
)

type fakeChildRepo struct {
	createCalled bool
	deleteCalled bool
	owned        bool
	children     []domain.Child
	createErr    error
	deleteErr    error
}

func (f *fakeChildRepo) CreateChildWithParent(ctx context.Context, child *domain.Child, parentID int) error {
	f.createCalled = true
	if f.createErr != nil {
		return f.createErr
	}
	child.ID = 1
	return nil
}

func (f *fakeChildRepo) GetChildrenByParent(ctx context.Context, parentID int) (*[]domain.Child, error) {
	return &f.children, nil
}

func (f *fakeChildRepo) DeleteChild(ctx context.Context, childID int) error {
	f.deleteCalled = true
	return f.deleteErr
}

func (f *fakeChildRepo) IsChildOwnedBy(ctx context.Context, childID, parentID int) (bool, error) {
	return f.owned, nil
}

func TestCreateChildMissingFieldsBatched(t *testing.T) {
	repo := &fakeChildRepo{}
	uc := NewChildUseCase(repo, false, time.Second)

	_, err := uc.CreateChild(context.Background(), &domain.CreateChildRequest{}, 7)
	require.Error(t, err)

	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	require.Len(t, ve.Messages, 3)
	require.Contains(t, ve.Messages, "Full name is required")
	require.Contains(t, ve.Messages, "CPF is required")
	require.Contains(t, ve.Messages, "Birth date is required")
	require.False(t, repo.createCalled, "repo must not be touched on validation failure")
}

func TestCreateChildBadBirthDate(t *testing.T) {
	repo := &fakeChildRepo{}
	uc := NewChildUseCase(repo, false, time.Second)

	_, err := uc.CreateChild(context.Background(), &domain.CreateChildRequest{
		FullName:  "Ana Silva",
		CPF:       "111.111.111-11",
		BirthDate: "02/03/2015",
	}, 7)
	require.Error(t, err)

	ve, ok := domain.IsValidation(err)
	require.True(t, ok)
	require.Contains(t, ve.Messages, "Birth date must be YYYY-MM-DD")
	require.False(t, repo.createCalled)
}

func TestCreateChildSuccess(t *testing.T) {
	repo := &fakeChildRepo{}
	uc := NewChildUseCase(repo, false, time.Second)

	child, err := uc.CreateChild(context.Background(), &domain.CreateChildRequest{
		FullName:  "Ana Silva",
		CPF:       "111.111.111-11",
		BirthDate: "2015-03-02",
	}, 7)
	require.NoError(t, err)
	require.Equal(t, 1, child.ID)
	require.Equal(t, "Ana Silva", child.FullName)
	require.Equal(t, 2015, child.BirthDate.Year())
	require.True(t, repo.createCalled)
}

func TestCreateChildDuplicateCPFPassesThrough(t *testing.T) {
	repo := &fakeChildRepo{createErr: domain.ErrCPFRegistered}
	uc := NewChildUseCase(repo, false, time.Second)

	_, err := uc.CreateChild(context.Background(), &domain.CreateChildRequest{
		FullName:  "Ana Silva",
		CPF:       "111.111.111-11",
		BirthDate: "2015-03-02",
	}, 7)
	require.ErrorIs(t, err, domain.ErrCPFRegistered)
}

func TestDeleteChildPermissiveSkipsOwnership(t *testing.T) {
	repo := &fakeChildRepo{owned: false}
	uc := NewChildUseCase(repo, false, time.Second)

	err := uc.DeleteChild(context.Background(), 3, 7)
	require.NoError(t, err)
	require.True(t, repo.deleteCalled)
}

func TestDeleteChildOwnershipEnforced(t *testing.T) {
	repo := &fakeChildRepo{owned: false}
	uc := NewChildUseCase(repo, true, time.Second)

	err := uc.DeleteChild(context.Background(), 3, 7)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.False(t, repo.deleteCalled, "delete must not run for a non-owned child")
}

func TestDeleteChildOwnershipAllowsOwner(t *testing.T) {
	repo := &fakeChildRepo{owned: true}
	uc := NewChildUseCase(repo, true, time.Second)

	err := uc.DeleteChild(context.Background(), 3, 7)
	require.NoError(t, err)
	require.True(t, repo.deleteCalled)
}

func TestDeleteChildNotFound(t *testing.T) {
	repo := &fakeChildRepo{deleteErr: domain.ErrNotFound}
	uc := NewChildUseCase(repo, false, time.Second)

	err := uc.DeleteChild(context.Background(), 99, 7)
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
