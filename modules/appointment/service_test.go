package appointment_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchly/wrenchly/modules/appointment"
)

type fakeRepo struct {
	appts map[uuid.UUID]*appointment.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appts: make(map[uuid.UUID]*appointment.Appointment)}
}

func (r *fakeRepo) List(_ context.Context, tenantID uuid.UUID) ([]appointment.Appointment, error) {
	var out []appointment.Appointment
	for _, a := range r.appts {
		if a.TenantID == tenantID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeRepo) Get(_ context.Context, tenantID, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.appts[id]
	if !ok || a.TenantID != tenantID {
		return nil, appointment.ErrAppointmentNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeRepo) Create(_ context.Context, a *appointment.Appointment) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	clone := *a
	r.appts[a.ID] = &clone
	return nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, tenantID, id uuid.UUID, status string) error {
	a, ok := r.appts[id]
	if !ok || a.TenantID != tenantID {
		return appointment.ErrAppointmentNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func TestService_Book(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	bookedBy := uuid.New()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	t.Run("valid booking starts scheduled", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := appointment.NewService(repo, appointment.WithClock(clock))

		a, err := svc.Book(context.Background(), tenantID, bookedBy, appointment.BookInput{
			VehicleID:   uuid.New(),
			ScheduledAt: now.Add(48 * time.Hour),
			Notes:       "winter tire change",
		})
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusScheduled, a.Status)
		assert.Equal(t, bookedBy, a.BookedBy)
		assert.Len(t, repo.appts, 1)
	})

	t.Run("missing vehicle id", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := appointment.NewService(repo, appointment.WithClock(clock))

		_, err := svc.Book(context.Background(), tenantID, bookedBy, appointment.BookInput{
			ScheduledAt: now.Add(time.Hour),
		})
		require.ErrorIs(t, err, appointment.ErrInvalidInput)
		assert.Empty(t, repo.appts)
	})

	t.Run("booking in the past", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := appointment.NewService(repo, appointment.WithClock(clock))

		_, err := svc.Book(context.Background(), tenantID, bookedBy, appointment.BookInput{
			VehicleID:   uuid.New(),
			ScheduledAt: now.Add(-time.Minute),
		})
		require.ErrorIs(t, err, appointment.ErrInvalidInput)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	book := func(t *testing.T, svc *appointment.Service) *appointment.Appointment {
		t.Helper()
		a, err := svc.Book(context.Background(), tenantID, uuid.New(), appointment.BookInput{
			VehicleID:   uuid.New(),
			ScheduledAt: now.Add(time.Hour),
		})
		require.NoError(t, err)
		return a
	}

	t.Run("scheduled becomes cancelled", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := appointment.NewService(repo, appointment.WithClock(clock))
		a := book(t, svc)

		cancelled, err := svc.Cancel(context.Background(), tenantID, a.ID)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusCancelled, cancelled.Status)
		assert.Equal(t, appointment.StatusCancelled, repo.appts[a.ID].Status)
	})

	t.Run("completed appointment cannot be cancelled", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := appointment.NewService(repo, appointment.WithClock(clock))
		a := book(t, svc)
		repo.appts[a.ID].Status = appointment.StatusCompleted

		_, err := svc.Cancel(context.Background(), tenantID, a.ID)
		require.ErrorIs(t, err, appointment.ErrNotCancellable)
		assert.Equal(t, appointment.StatusCompleted, repo.appts[a.ID].Status)
	})

	t.Run("cancel is not repeatable", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := appointment.NewService(repo, appointment.WithClock(clock))
		a := book(t, svc)

		_, err := svc.Cancel(context.Background(), tenantID, a.ID)
		require.NoError(t, err)
		_, err = svc.Cancel(context.Background(), tenantID, a.ID)
		require.ErrorIs(t, err, appointment.ErrNotCancellable)
	})

	t.Run("another tenant's appointment is not found", func(t *testing.T) {
		t.Parallel()
		repo := newFakeRepo()
		svc := appointment.NewService(repo, appointment.WithClock(clock))
		a := book(t, svc)

		_, err := svc.Cancel(context.Background(), uuid.New(), a.ID)
		require.ErrorIs(t, err, appointment.ErrAppointmentNotFound)
		assert.Equal(t, appointment.StatusScheduled, repo.appts[a.ID].Status)
	})
}
