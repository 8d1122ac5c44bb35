package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agendakids/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type scheduleRepository struct {
	db *pgxpool.Pool
}

func NewScheduleRepository(database *pgxpool.Pool) domain.ScheduleRepo {
	return &scheduleRepository{
		db: database,
	}
}

func (sr *scheduleRepository) CreateSchedule(ctx context.Context, schedule *domain.Schedule) error {
	query := `
		INSERT INTO schedules (child_id, title, description, starts_at, ends_at, schedule_type, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`

	now := time.Now()

	var id int
	err := sr.db.QueryRow(ctx, query,
		schedule.ChildID, schedule.Title, schedule.Description,
		schedule.StartsAt, schedule.EndsAt, schedule.ScheduleType,
		schedule.CreatedBy, now, now,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("could not insert schedule: %w", err)
	}

	schedule.ID = id
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	return nil
}

// GetSchedulesByChild orders by starts_at ascending; callers depend on it.
func (sr *scheduleRepository) GetSchedulesByChild(ctx context.Context, childID int) (*[]domain.Schedule, error) {
	query := `
		SELECT id, child_id, title, description, starts_at, ends_at, schedule_type, created_by, created_at, updated_at
		FROM schedules
		WHERE child_id = $1
		ORDER BY starts_at ASC;
	`

	rows, err := sr.db.Query(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("could not list schedules: %w", err)
	}
	defer rows.Close()

	// Non-nil even when empty so the JSON shape stays a list
	schedules := []domain.Schedule{}
	for rows.Next() {
		var schedule domain.Schedule

		err := rows.Scan(
			&schedule.ID, &schedule.ChildID, &schedule.Title, &schedule.Description,
			&schedule.StartsAt, &schedule.EndsAt, &schedule.ScheduleType,
			&schedule.CreatedBy, &schedule.CreatedAt, &schedule.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("could not scan schedule row: %w", err)
		}

		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read schedule rows: %w", err)
	}

	return &schedules, nil
}

func (sr *scheduleRepository) DeleteSchedule(ctx context.Context, scheduleID int) error {
	query := `
		DELETE FROM schedules
		WHERE id = $1;
	`

	tag, err := sr.db.Exec(ctx, query, scheduleID)
	if err != nil {
		return fmt.Errorf("could not delete schedule: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (sr *scheduleRepository) IsScheduleOwnedBy(ctx context.Context, scheduleID, parentID int) (bool, error) {
	query := `
		SELECT 1
		FROM schedules s
		JOIN child_parents cp ON cp.child_id = s.child_id
		WHERE s.id = $1 AND cp.parent_id = $2;
	`

	var one int
	err := sr.db.QueryRow(ctx, query, scheduleID, parentID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("could not check schedule ownership: %w", err)
	}

	return true, nil
}
