package appointment_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/persistence"
	"github.com/klinikdev/klinik-api/internal/service/appointment"
	"github.com/klinikdev/klinik-api/internal/store"
	apperrors "github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/logger"
)

func newAppointmentService(t *testing.T) (*appointment.Service, *store.Store) {
	t.Helper()
	st := store.New(context.Background(), persistence.NewMemoryAdapter(), logger.Discard(), nil)
	return appointment.NewService(st), st
}

func bookSlot(t *testing.T, st *store.Store, date, timeOfDay string) model.BookingResult {
	t.Helper()
	doctors := st.DoctorsBySpecialty("General Medicine")
	require.NotEmpty(t, doctors)

	result, err := st.CommitBooking(context.Background(), store.BookingCommit{
		DoctorID:  doctors[0].ID,
		Date:      date,
		Time:      timeOfDay,
		Type:      "Konsultasi",
		Patient:   model.PatientInfo{Name: "Pasien Uji", Age: 30, Phone: "081200000091"},
		Method:    model.PaymentMethodCash,
		Insurance: model.InsuranceNone,
		Items:     []model.ServiceItem{{Name: "Konsultasi", Price: 150000, Quantity: 1}},
		Fee:       model.FeeBreakdown{Subtotal: 150000, Tax: 15000, Total: 165000},
	})
	require.NoError(t, err)
	return result
}

func TestCancelThenDelete(t *testing.T) {
	svc, st := newAppointmentService(t)
	ctx := context.Background()

	result := bookSlot(t, st, "2026-09-10", "09:00")

	// Scheduled appointments cannot be deleted outright.
	err := svc.Delete(ctx, result.AppointmentID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	cancelled, err := svc.Cancel(ctx, result.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)

	require.NoError(t, svc.Delete(ctx, result.AppointmentID))
	_, err = svc.Get(result.AppointmentID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestCompleteIsTerminal(t *testing.T) {
	svc, st := newAppointmentService(t)
	ctx := context.Background()

	result := bookSlot(t, st, "2026-09-11", "09:00")

	completed, err := svc.UpdateStatus(ctx, result.AppointmentID, model.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCompleted, completed.Status)

	_, err = svc.Cancel(ctx, result.AppointmentID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}
