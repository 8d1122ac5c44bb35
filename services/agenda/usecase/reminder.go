package usecase

import (
	"context"
	"time"

	"agendakids/domain"

	"github.com/sirupsen/logrus"
)

type reminderUseCase struct {
	repo    domain.ReminderRepo
	sender  domain.SenderRepo
	lead    time.Duration
	log     *logrus.Logger
	TimeOut time.Duration
}

func NewReminderUseCase(repo domain.ReminderRepo, sender domain.SenderRepo, lead time.Duration, log *logrus.Logger, to time.Duration) domain.ReminderUseCase {
	return &reminderUseCase{
		repo:    repo,
		sender:  sender,
		lead:    lead,
		log:     log,
		TimeOut: to,
	}
}

func (ru *reminderUseCase) Dispatch(ctx context.Context, parentID int) (*domain.DispatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	return ru.dispatch(ctx, parentID)
}

func (ru *reminderUseCase) DispatchAll(ctx context.Context) (*domain.DispatchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, ru.TimeOut)
	defer cancel()

	return ru.dispatch(ctx, 0)
}

// dispatch sends every pending reminder and logs each outcome. A failed
// channel does not abort the batch; the log row keeps the partial result so
// the pair is never retried.
func (ru *reminderUseCase) dispatch(ctx context.Context, parentID int) (*domain.DispatchResult, error) {
	pending, err := ru.repo.GetPendingReminders(ctx, parentID, ru.lead)
	if err != nil {
		return nil, err
	}

	dispatched := 0
	for _, reminder := range *pending {
		whatsappOK, emailOK := ru.sender.Send(ctx, &reminder)

		logRow := &domain.ReminderLog{
			ScheduleID:     reminder.ScheduleID,
			ChildID:        reminder.ChildID,
			ParentID:       reminder.ParentID,
			WhatsappStatus: whatsappOK,
			EmailStatus:    emailOK,
		}
		if err := ru.repo.LogReminder(ctx, logRow); err != nil {
			ru.log.Errorf("failed to log reminder for schedule %d parent %d: %v",
				reminder.ScheduleID, reminder.ParentID, err)
			continue
		}

		dispatched++
	}

	return &domain.DispatchResult{Dispatched: dispatched}, nil
}
