package domain

import (
	"context"
	"time"
)

// PendingReminder is one (schedule, parent) pair whose schedule starts
// within the lead window and that has no reminder_logs row yet.
type PendingReminder struct {
	ScheduleID   int
	ChildID      int
	ParentID     int
	ChildName    string
	Title        string
	StartsAt     time.Time
	ScheduleType string
	ParentName   string
	Email        string
	Telephone    *string
}

type ReminderLog struct {
	ID             int       `json:"id"`
	ScheduleID     int       `json:"schedule_id"`
	ChildID        int       `json:"child_id"`
	ParentID       int       `json:"parent_id"`
	WhatsappStatus bool      `json:"whatsapp_status"`
	EmailStatus    bool      `json:"email_status"`
	CreatedAt      time.Time `json:"created_at"`
}

type DispatchResult struct {
	Dispatched int `json:"dispatched"`
}

type ReminderRepo interface {
	// GetPendingReminders lists unlogged (schedule, parent) pairs starting
	// within lead from now. parentID 0 means every parent.
	GetPendingReminders(ctx context.Context, parentID int, lead time.Duration) (*[]PendingReminder, error)
	LogReminder(ctx context.Context, log *ReminderLog) error
}

// SenderRepo delivers one reminder over the configured channels.
type SenderRepo interface {
	Send(ctx context.Context, reminder *PendingReminder) (whatsappOK, emailOK bool)
}

type ReminderUseCase interface {
	Dispatch(ctx context.Context, parentID int) (*DispatchResult, error)
	DispatchAll(ctx context.Context) (*DispatchResult, error)
}
