package usecase

import (
	"context"
	"testing"
	"time"

	"agendakids/config"
	"agendakids/domain"

	"github.com/stretchr/testify/require"
)

type fakeReminderRepo struct {
	pending []domain.PendingReminder
	logged  []domain.ReminderLog
	logErr  error
}

func (f *fakeReminderRepo) GetPendingReminders(ctx context.Context, parentID int, lead time.Duration) (*[]domain.PendingReminder, error) {
	if parentID == 0 {
		return &f.pending, nil
	}
	var filtered []domain.PendingReminder
	for _, p := range f.pending {
		if p.ParentID == parentID {
			filtered = append(filtered, p)
		}
	}
	return &filtered, nil
}

func (f *fakeReminderRepo) LogReminder(ctx context.Context, log *domain.ReminderLog) error {
	if f.logErr != nil {
		return f.logErr
	}
	f.logged = append(f.logged, *log)
	return nil
}

type fakeSender struct {
	whatsappOK bool
	emailOK    bool
	sent       []domain.PendingReminder
}

func (f *fakeSender) Send(ctx context.Context, reminder *domain.PendingReminder) (bool, bool) {
	f.sent = append(f.sent, *reminder)
	return f.whatsappOK, f.emailOK
}

func TestDispatchLogsEveryReminder(t *testing.T) {
	repo := &fakeReminderRepo{pending: []domain.PendingReminder{
		{ScheduleID: 1, ChildID: 1, ParentID: 7, Email: "a@example.com"},
		{ScheduleID: 2, ChildID: 2, ParentID: 7, Email: "a@example.com"},
	}}
	sender := &fakeSender{emailOK: true}
	uc := NewReminderUseCase(repo, sender, 24*time.Hour, config.GetLogrusInstance(), time.Second)

	result, err := uc.Dispatch(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 2, result.Dispatched)
	require.Len(t, sender.sent, 2)
	require.Len(t, repo.logged, 2)
	require.True(t, repo.logged[0].EmailStatus)
	require.False(t, repo.logged[0].WhatsappStatus)
}

func TestDispatchScopedToParent(t *testing.T) {
	repo := &fakeReminderRepo{pending: []domain.PendingReminder{
		{ScheduleID: 1, ParentID: 7},
		{ScheduleID: 2, ParentID: 8},
	}}
	sender := &fakeSender{}
	uc := NewReminderUseCase(repo, sender, 24*time.Hour, config.GetLogrusInstance(), time.Second)

	result, err := uc.Dispatch(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 1, result.Dispatched)
}

func TestDispatchAllCoversEveryParent(t *testing.T) {
	repo := &fakeReminderRepo{pending: []domain.PendingReminder{
		{ScheduleID: 1, ParentID: 7},
		{ScheduleID: 2, ParentID: 8},
	}}
	sender := &fakeSender{}
	uc := NewReminderUseCase(repo, sender, 24*time.Hour, config.GetLogrusInstance(), time.Second)

	result, err := uc.DispatchAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, result.Dispatched)
}

func TestDispatchNothingPending(t *testing.T) {
	repo := &fakeReminderRepo{}
	sender := &fakeSender{}
	uc := NewReminderUseCase(repo, sender, 24*time.Hour, config.GetLogrusInstance(), time.Second)

	result, err := uc.Dispatch(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 0, result.Dispatched)
	require.Empty(t, sender.sent)
}
