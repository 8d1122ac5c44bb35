package usecase

import (
	"context"
	"time"

	"agendakids/domain"
)

type scheduleUseCase struct {
	repo            domain.ScheduleRepo
	childRepo       domain.ChildRepo
	ownershipChecks bool
	TimeOut         time.Duration
}

func NewScheduleUseCase(repo domain.ScheduleRepo, childRepo domain.ChildRepo, ownershipChecks bool, to time.Duration) domain.ScheduleUseCase {
	return &scheduleUseCase{
		repo:            repo,
		childRepo:       childRepo,
		ownershipChecks: ownershipChecks,
		TimeOut:         to,
	}
}

func (su *scheduleUseCase) CreateSchedule(ctx context.Context, req *domain.CreateScheduleRequest, parentID int) (*domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	messages := validateStruct(req)

	var startsAt, endsAt time.Time
	var err error

	if req.StartsAt != "" {
		startsAt, err = parseTimestamp(req.StartsAt)
		if err != nil {
			messages = append(messages, "Start time must be a valid timestamp")
		}
	}
	if req.EndsAt != "" {
		endsAt, err = parseTimestamp(req.EndsAt)
		if err != nil {
			messages = append(messages, "End time must be a valid timestamp")
		}
	}

	if len(messages) > 0 {
		return nil, validationError(messages)
	}

	if su.ownershipChecks {
		owned, err := su.childRepo.IsChildOwnedBy(ctx, req.ChildID, parentID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, domain.ErrNotFound
		}
	}

	schedule := &domain.Schedule{
		ChildID:      req.ChildID,
		Title:        req.Title,
		Description:  req.Description,
		StartsAt:     startsAt,
		EndsAt:       endsAt,
		ScheduleType: req.ScheduleType,
		CreatedBy:    parentID,
	}

	if err := su.repo.CreateSchedule(ctx, schedule); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (su *scheduleUseCase) GetSchedulesByChild(ctx context.Context, childID, parentID int) (*[]domain.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	if su.ownershipChecks {
		owned, err := su.childRepo.IsChildOwnedBy(ctx, childID, parentID)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, domain.ErrNotFound
		}
	}

	return su.repo.GetSchedulesByChild(ctx, childID)
}

func (su *scheduleUseCase) DeleteSchedule(ctx context.Context, scheduleID, parentID int) error {
	ctx, cancel := context.WithTimeout(ctx, su.TimeOut)
	defer cancel()

	if su.ownershipChecks {
		owned, err := su.repo.IsScheduleOwnedBy(ctx, scheduleID, parentID)
		if err != nil {
			return err
		}
		if !owned {
			return domain.ErrNotFound
		}
	}

	return su.repo.DeleteSchedule(ctx, scheduleID)
}
