//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"agendakids/config"
	"agendakids/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("agendakids_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, config.Migrate(ctx, pool))

	return pool
}

func countRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()
	var n int
	err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

func mustCreateChild(t *testing.T, repo domain.ChildRepo, name, cpf string, parentID int) *domain.Child {
	t.Helper()
	child := &domain.Child{
		FullName:  name,
		CPF:       cpf,
		BirthDate: time.Date(2015, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.CreateChildWithParent(context.Background(), child, parentID))
	require.Greater(t, child.ID, 0)
	return child
}

func TestCreateChildAndListForParent(t *testing.T) {
	pool := newTestPool(t)
	repo := NewChildRepository(pool)
	ctx := context.Background()

	child := mustCreateChild(t, repo, "Ana Silva", "111.111.111-11", 7)

	children, err := repo.GetChildrenByParent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, *children, 1)
	require.Equal(t, child.ID, (*children)[0].ID)
	require.Equal(t, "111.111.111-11", (*children)[0].CPF)

	// Another parent sees nothing, as an empty list rather than null
	other, err := repo.GetChildrenByParent(ctx, 8)
	require.NoError(t, err)
	require.NotNil(t, *other)
	require.Empty(t, *other)
}

// A duplicate cpf must roll back the whole transaction: no child row and no
// orphan association row.
func TestCreateChildDuplicateCPFRollsBack(t *testing.T) {
	pool := newTestPool(t)
	repo := NewChildRepository(pool)
	ctx := context.Background()

	mustCreateChild(t, repo, "Ana Silva", "111.111.111-11", 7)

	dup := &domain.Child{
		FullName:  "Outro Nome",
		CPF:       "111.111.111-11",
		BirthDate: time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	err := repo.CreateChildWithParent(ctx, dup, 8)
	require.ErrorIs(t, err, domain.ErrCPFRegistered)

	require.Equal(t, 1, countRows(t, pool, "children"))
	require.Equal(t, 1, countRows(t, pool, "child_parents"))
}

// The schema's ON DELETE CASCADE must remove association and schedule rows
// with the child. If the rule is missing this test fails loudly.
func TestDeleteChildCascades(t *testing.T) {
	pool := newTestPool(t)
	childRepo := NewChildRepository(pool)
	scheduleRepo := NewScheduleRepository(pool)
	ctx := context.Background()

	child := mustCreateChild(t, childRepo, "Ana Silva", "111.111.111-11", 7)

	schedule := &domain.Schedule{
		ChildID:      child.ID,
		Title:        "Consulta",
		StartsAt:     time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC),
		EndsAt:       time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		ScheduleType: "medico",
		CreatedBy:    7,
	}
	require.NoError(t, scheduleRepo.CreateSchedule(ctx, schedule))

	require.NoError(t, childRepo.DeleteChild(ctx, child.ID))

	require.Equal(t, 0, countRows(t, pool, "children"))
	require.Equal(t, 0, countRows(t, pool, "child_parents"))
	require.Equal(t, 0, countRows(t, pool, "schedules"))

	schedules, err := scheduleRepo.GetSchedulesByChild(ctx, child.ID)
	require.NoError(t, err)
	require.NotNil(t, *schedules)
	require.Empty(t, *schedules)
}

func TestDeleteChildNotFound(t *testing.T) {
	pool := newTestPool(t)
	repo := NewChildRepository(pool)

	err := repo.DeleteChild(context.Background(), 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSchedulesOrderedByStartAscending(t *testing.T) {
	pool := newTestPool(t)
	childRepo := NewChildRepository(pool)
	scheduleRepo := NewScheduleRepository(pool)
	ctx := context.Background()

	child := mustCreateChild(t, childRepo, "Ana Silva", "111.111.111-11", 7)

	t1 := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(2 * time.Hour)
	t3 := t1.Add(4 * time.Hour)

	// Insert out of order on purpose
	for _, start := range []time.Time{t2, t3, t1} {
		schedule := &domain.Schedule{
			ChildID:      child.ID,
			Title:        "Consulta " + start.Format("15:04"),
			StartsAt:     start,
			EndsAt:       start.Add(time.Hour),
			ScheduleType: "medico",
			CreatedBy:    7,
		}
		require.NoError(t, scheduleRepo.CreateSchedule(ctx, schedule))
	}

	schedules, err := scheduleRepo.GetSchedulesByChild(ctx, child.ID)
	require.NoError(t, err)
	require.Len(t, *schedules, 3)
	require.True(t, (*schedules)[0].StartsAt.Equal(t1))
	require.True(t, (*schedules)[1].StartsAt.Equal(t2))
	require.True(t, (*schedules)[2].StartsAt.Equal(t3))
}

func TestDeleteScheduleNotFound(t *testing.T) {
	pool := newTestPool(t)
	repo := NewScheduleRepository(pool)

	err := repo.DeleteSchedule(context.Background(), 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChildOwnership(t *testing.T) {
	pool := newTestPool(t)
	repo := NewChildRepository(pool)
	ctx := context.Background()

	child := mustCreateChild(t, repo, "Ana Silva", "111.111.111-11", 7)

	owned, err := repo.IsChildOwnedBy(ctx, child.ID, 7)
	require.NoError(t, err)
	require.True(t, owned)

	owned, err = repo.IsChildOwnedBy(ctx, child.ID, 8)
	require.NoError(t, err)
	require.False(t, owned)
}

func TestUserUniqueEmail(t *testing.T) {
	pool := newTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	user := &domain.User{Name: "Maria", Email: "maria@example.com", Password: "hash"}
	require.NoError(t, repo.CreateUser(ctx, user))

	dup := &domain.User{Name: "Outra", Email: "maria@example.com", Password: "hash"}
	err := repo.CreateUser(ctx, dup)
	require.ErrorIs(t, err, domain.ErrEmailRegistered)
}

func TestPendingRemindersDispatchOnce(t *testing.T) {
	pool := newTestPool(t)
	childRepo := NewChildRepository(pool)
	scheduleRepo := NewScheduleRepository(pool)
	userRepo := NewUserRepository(pool)
	reminderRepo := NewReminderRepository(pool)
	ctx := context.Background()

	user := &domain.User{Name: "Maria", Email: "maria@example.com", Password: "hash"}
	require.NoError(t, userRepo.CreateUser(ctx, user))

	child := mustCreateChild(t, childRepo, "Ana Silva", "111.111.111-11", user.ID)

	soon := &domain.Schedule{
		ChildID:      child.ID,
		Title:        "Consulta",
		StartsAt:     time.Now().Add(2 * time.Hour),
		EndsAt:       time.Now().Add(3 * time.Hour),
		ScheduleType: "medico",
		CreatedBy:    user.ID,
	}
	require.NoError(t, scheduleRepo.CreateSchedule(ctx, soon))

	// Outside the lead window, must not show up
	far := &domain.Schedule{
		ChildID:      child.ID,
		Title:        "Vacina",
		StartsAt:     time.Now().Add(72 * time.Hour),
		EndsAt:       time.Now().Add(73 * time.Hour),
		ScheduleType: "vacina",
		CreatedBy:    user.ID,
	}
	require.NoError(t, scheduleRepo.CreateSchedule(ctx, far))

	pending, err := reminderRepo.GetPendingReminders(ctx, user.ID, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, *pending, 1)
	require.Equal(t, soon.ID, (*pending)[0].ScheduleID)
	require.Equal(t, "maria@example.com", (*pending)[0].Email)

	require.NoError(t, reminderRepo.LogReminder(ctx, &domain.ReminderLog{
		ScheduleID: soon.ID, ChildID: child.ID, ParentID: user.ID,
		WhatsappStatus: false, EmailStatus: true,
	}))

	pending, err = reminderRepo.GetPendingReminders(ctx, user.ID, 24*time.Hour)
	require.NoError(t, err)
	require.Empty(t, *pending)
}
