package doctor_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/persistence"
	"github.com/klinikdev/klinik-api/internal/service/doctor"
	"github.com/klinikdev/klinik-api/internal/store"
	apperrors "github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/logger"
)

func newDoctorService(t *testing.T) (*doctor.Service, *store.Store) {
	t.Helper()
	st := store.New(context.Background(), persistence.NewMemoryAdapter(), logger.Discard(), nil)
	return doctor.NewService(st), st
}

func TestDoctorCRUD(t *testing.T) {
	svc, _ := newDoctorService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateDoctorRequest{
		Name:      "dr. Test Baru, Sp.THT",
		Specialty: "ENT",
		Phone:     "081234567899",
		Schedule: []model.ScheduleInput{
			{Day: "Senin", StartTime: "08:00", EndTime: "12:00"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, svc.List(""), 5)
	assert.Contains(t, svc.Specialties(), "ENT")

	fetched, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ENT", fetched.Specialty)
	require.Len(t, fetched.Schedule, 1)

	newName := "dr. Test Diperbarui, Sp.THT"
	updated, err := svc.Update(ctx, created.ID, model.UpdateDoctorRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.Name)
	assert.Equal(t, "ENT", updated.Specialty)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(created.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.NotContains(t, svc.Specialties(), "ENT")
}

func TestAvailabilityReflectsScheduleUpdates(t *testing.T) {
	svc, st := newDoctorService(t)
	ctx := context.Background()

	target := st.DoctorsBySpecialty("Dermatology")[0]

	slots, err := svc.Availability(target.ID)
	require.NoError(t, err)
	require.Len(t, slots, 2)

	// Second read hits the cache.
	again, err := svc.Availability(target.ID)
	require.NoError(t, err)
	assert.Equal(t, slots, again)

	// Updating the schedule invalidates the cached view.
	_, err = svc.Update(ctx, target.ID, model.UpdateDoctorRequest{
		Schedule: []model.ScheduleInput{
			{Day: "Senin", StartTime: "09:00", EndTime: "11:00"},
		},
	})
	require.NoError(t, err)

	slots, err = svc.Availability(target.ID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "Senin", slots[0].Day)

	_, err = svc.Availability(uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
