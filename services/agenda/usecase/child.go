package usecase

import (
	"context"
	"time"

	"agendakids/domain"
)

type childUseCase struct {
	repo            domain.ChildRepo
	ownershipChecks bool
	TimeOut         time.Duration
}

func NewChildUseCase(repo domain.ChildRepo, ownershipChecks bool, to time.Duration) domain.ChildUseCase {
	return &childUseCase{
		repo:            repo,
		ownershipChecks: ownershipChecks,
		TimeOut:         to,
	}
}

func (cu *childUseCase) CreateChild(ctx context.Context, req *domain.CreateChildRequest, parentID int) (*domain.Child, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	messages := validateStruct(req)

	var birthDate time.Time
	if req.BirthDate != "" {
		var err error
		birthDate, err = parseDate(req.BirthDate)
		if err != nil {
			messages = append(messages, "Birth date must be YYYY-MM-DD")
		}
	}

	if len(messages) > 0 {
		return nil, validationError(messages)
	}

	child := &domain.Child{
		FullName:  req.FullName,
		CPF:       req.CPF,
		BirthDate: birthDate,
	}

	if err := cu.repo.CreateChildWithParent(ctx, child, parentID); err != nil {
		return nil, err
	}

	return child, nil
}

func (cu *childUseCase) GetChildrenByParent(ctx context.Context, parentID int) (*[]domain.Child, error) {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	return cu.repo.GetChildrenByParent(ctx, parentID)
}

// DeleteChild deletes by id only unless ownership checks are on; then a
// child owned by someone else is reported as not found, same as a missing
// one, so the response does not leak which ids exist.
func (cu *childUseCase) DeleteChild(ctx context.Context, childID, parentID int) error {
	ctx, cancel := context.WithTimeout(ctx, cu.TimeOut)
	defer cancel()

	if cu.ownershipChecks {
		owned, err := cu.repo.IsChildOwnedBy(ctx, childID, parentID)
		if err != nil {
			return err
		}
		if !owned {
			return domain.ErrNotFound
		}
	}

	return cu.repo.DeleteChild(ctx, childID)
}
