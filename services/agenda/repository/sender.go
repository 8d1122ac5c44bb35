package repository

import (
	"context"
	"fmt"
	"strings"

	"agendakids/domain"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"gopkg.in/gomail.v2"

	"github.com/sirupsen/logrus"
)

type senderRepository struct {
	dialer      *gomail.Dialer
	emailSender string
	meowClient  *whatsmeow.Client
	log         *logrus.Logger
}

// NewSenderRepository wires the reminder channels. Either client may be nil;
// a nil channel is simply reported as not sent.
func NewSenderRepository(dialer *gomail.Dialer, emailSender string, meow *whatsmeow.Client, log *logrus.Logger) domain.SenderRepo {
	return &senderRepository{
		dialer:      dialer,
		emailSender: emailSender,
		meowClient:  meow,
		log:         log,
	}
}

func (m *senderRepository) Send(ctx context.Context, reminder *domain.PendingReminder) (bool, bool) {
	whatsappOK := false
	emailOK := false

	if m.meowClient != nil && reminder.Telephone != nil && *reminder.Telephone != "" {
		if err := m.sendWA(ctx, reminder); err != nil {
			m.log.Errorf("failed to send WhatsApp reminder to %s: %v", *reminder.Telephone, err)
		} else {
			whatsappOK = true
		}
	}

	if m.dialer != nil && reminder.Email != "" {
		if err := m.sendEmail(reminder); err != nil {
			m.log.Errorf("failed to send email reminder to %s: %v", reminder.Email, err)
		} else {
			emailOK = true
		}
	}

	return whatsappOK, emailOK
}

func (m *senderRepository) sendEmail(reminder *domain.PendingReminder) error {
	message := gomail.NewMessage()
	message.SetHeader("From", m.emailSender)
	message.SetHeader("To", reminder.Email)
	message.SetHeader("Subject", reminderSubject(reminder))
	message.SetBody("text/plain", reminderBody(reminder))

	if err := m.dialer.DialAndSend(message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (m *senderRepository) sendWA(ctx context.Context, reminder *domain.PendingReminder) error {
	// Brazilian numbers: strip the leading 0 and prepend the country code.
	phone := strings.TrimPrefix(*reminder.Telephone, "0")
	completeFormat := fmt.Sprintf("%s%s", "55", phone)

	jid := types.NewJID(completeFormat, types.DefaultUserServer)

	msg := reminderBody(reminder)
	conversationMessage := &waE2E.Message{
		Conversation: &msg,
	}

	if _, err := m.meowClient.SendMessage(ctx, jid, conversationMessage); err != nil {
		return err
	}
	return nil
}

func reminderSubject(reminder *domain.PendingReminder) string {
	return fmt.Sprintf("Lembrete: %s de %s em %s",
		reminder.Title, reminder.ChildName, reminder.StartsAt.Format("02/01/2006"))
}

func reminderBody(reminder *domain.PendingReminder) string {
	formattedDate := reminder.StartsAt.Format("02/01/2006")
	hourAndMinute := reminder.StartsAt.Format("15:04")

	return fmt.Sprintf(`Olá %s,

Este é um lembrete do compromisso de %s:

%s (%s)
Data: %s às %s

Caso não possa comparecer, lembre-se de remarcar com antecedência.`,
		reminder.ParentName, reminder.ChildName, reminder.Title,
		reminder.ScheduleType, formattedDate, hourAndMinute)
}
