package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agendakids/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres unique_violation
const uniqueViolationCode = "23505"

type childRepository struct {
	db *pgxpool.Pool
}

func NewChildRepository(database *pgxpool.Pool) domain.ChildRepo {
	return &childRepository{
		db: database,
	}
}

// CreateChildWithParent inserts the child and its parent association as one
// transaction. Rollback is deferred unconditionally; after a successful
// commit it is a no-op, on any other path it undoes both inserts and the
// connection goes back to the pool either way.
func (cr *childRepository) CreateChildWithParent(ctx context.Context, child *domain.Child, parentID int) error {
	tx, err := cr.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertChildQuery := `
		INSERT INTO children (full_name, cpf, birth_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`

	now := time.Now()

	var id int
	err = tx.QueryRow(ctx, insertChildQuery, child.FullName, child.CPF, child.BirthDate, now, now).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCPFRegistered
		}
		return fmt.Errorf("could not insert child: %w", err)
	}

	insertAssociationQuery := `
		INSERT INTO child_parents (parent_id, child_id, created_at)
		VALUES ($1, $2, $3);
	`

	if _, err = tx.Exec(ctx, insertAssociationQuery, parentID, id, now); err != nil {
		return fmt.Errorf("could not insert parent association: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	child.ID = id
	child.CreatedAt = now
	child.UpdatedAt = now

	return nil
}

func (cr *childRepository) GetChildrenByParent(ctx context.Context, parentID int) (*[]domain.Child, error) {
	query := `
		SELECT c.id, c.full_name, c.cpf, c.birth_date, c.created_at, c.updated_at
		FROM children c
		JOIN child_parents cp ON cp.child_id = c.id
		WHERE cp.parent_id = $1;
	`

	rows, err := cr.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, fmt.Errorf("could not list children: %w", err)
	}
	defer rows.Close()

	// Non-nil even when empty so the JSON shape stays a list
	children := []domain.Child{}
	for rows.Next() {
		var child domain.Child
		var rawCPF []byte

		err := rows.Scan(&child.ID, &child.FullName, &rawCPF, &child.BirthDate, &child.CreatedAt, &child.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("could not scan child row: %w", err)
		}

		// cpf comes back as raw bytes from the driver
		child.CPF = string(rawCPF)
		children = append(children, child)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read children rows: %w", err)
	}

	return &children, nil
}

func (cr *childRepository) DeleteChild(ctx context.Context, childID int) error {
	query := `
		DELETE FROM children
		WHERE id = $1;
	`

	// Association and schedule rows go with the child via ON DELETE CASCADE.
	tag, err := cr.db.Exec(ctx, query, childID)
	if err != nil {
		return fmt.Errorf("could not delete child: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (cr *childRepository) IsChildOwnedBy(ctx context.Context, childID, parentID int) (bool, error) {
	query := `
		SELECT 1
		FROM child_parents
		WHERE child_id = $1 AND parent_id = $2;
	`

	var one int
	err := cr.db.QueryRow(ctx, query, childID, parentID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("could not check child ownership: %w", err)
	}

	return true, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
