package repository

import (
	"context"
	"fmt"
	"time"

	"agendakids/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type reminderRepository struct {
	db *pgxpool.Pool
}

func NewReminderRepository(database *pgxpool.Pool) domain.ReminderRepo {
	return &reminderRepository{
		db: database,
	}
}

// GetPendingReminders joins upcoming schedules to every owning parent's
// account; pairs already in reminder_logs are skipped so a reminder is only
// ever dispatched once. parentID 0 widens the query to all parents.
func (rr *reminderRepository) GetPendingReminders(ctx context.Context, parentID int, lead time.Duration) (*[]domain.PendingReminder, error) {
	query := `
		SELECT s.id, s.child_id, cp.parent_id, c.full_name, s.title, s.starts_at, s.schedule_type,
		       u.name, u.email, u.telephone
		FROM schedules s
		JOIN children c ON c.id = s.child_id
		JOIN child_parents cp ON cp.child_id = s.child_id
		JOIN users u ON u.id = cp.parent_id
		WHERE s.starts_at BETWEEN $1 AND $2
		  AND ($3 = 0 OR cp.parent_id = $3)
		  AND NOT EXISTS (
		      SELECT 1 FROM reminder_logs rl
		      WHERE rl.schedule_id = s.id AND rl.parent_id = cp.parent_id
		  )
		ORDER BY s.starts_at ASC;
	`

	now := time.Now()

	rows, err := rr.db.Query(ctx, query, now, now.Add(lead), parentID)
	if err != nil {
		return nil, fmt.Errorf("could not list pending reminders: %w", err)
	}
	defer rows.Close()

	var pending []domain.PendingReminder
	for rows.Next() {
		var p domain.PendingReminder

		err := rows.Scan(
			&p.ScheduleID, &p.ChildID, &p.ParentID, &p.ChildName, &p.Title,
			&p.StartsAt, &p.ScheduleType, &p.ParentName, &p.Email, &p.Telephone,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan pending reminder: %w", err)
		}

		pending = append(pending, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read pending reminders: %w", err)
	}

	return &pending, nil
}

func (rr *reminderRepository) LogReminder(ctx context.Context, log *domain.ReminderLog) error {
	query := `
		INSERT INTO reminder_logs (schedule_id, child_id, parent_id, whatsapp_status, email_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`

	now := time.Now()

	var id int
	err := rr.db.QueryRow(ctx, query,
		log.ScheduleID, log.ChildID, log.ParentID,
		log.WhatsappStatus, log.EmailStatus, now,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("could not insert reminder log: %w", err)
	}

	log.ID = id
	log.CreatedAt = now

	return nil
}
