package domain

import (
	"context"
	"time"
)

type Schedule struct {
	ID           int       `json:"id"`
	ChildID      int       `json:"child_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	StartsAt     time.Time `json:"starts_at"`
	EndsAt       time.Time `json:"ends_at"`
	ScheduleType string    `json:"schedule_type"`
	CreatedBy    int       `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateScheduleRequest struct {
	ChildID      int     `json:"child_id" valid:"required~Child ID is required"`
	Title        string  `json:"title" valid:"required~Title is required"`
	Description  *string `json:"description"`
	StartsAt     string  `json:"starts_at" valid:"required~Start time is required"`
	EndsAt       string  `json:"ends_at" valid:"required~End time is required"`
	ScheduleType string  `json:"schedule_type" valid:"required~Schedule type is required"`
}

type ScheduleRepo interface {
	CreateSchedule(ctx context.Context, schedule *Schedule) error
	// GetSchedulesByChild returns the child's schedules ordered by start
	// time ascending. Callers rely on that ordering.
	GetSchedulesByChild(ctx context.Context, childID int) (*[]Schedule, error)
	DeleteSchedule(ctx context.Context, scheduleID int) error
	IsScheduleOwnedBy(ctx context.Context, scheduleID, parentID int) (bool, error)
}

type ScheduleUseCase interface {
	CreateSchedule(ctx context.Context, req *CreateScheduleRequest, parentID int) (*Schedule, error)
	GetSchedulesByChild(ctx context.Context, childID, parentID int) (*[]Schedule, error)
	DeleteSchedule(ctx context.Context, scheduleID, parentID int) error
}
