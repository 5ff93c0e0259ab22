package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/service/booking"
	"github.com/klinikdev/klinik-api/internal/store"
	apperrors "github.com/klinikdev/klinik-api/pkg/errors"
)

func newWizard(t *testing.T) (*booking.Wizard, *store.Store) {
	t.Helper()
	svc, st, _ := newBookingService(t)
	return booking.NewWizard(st, svc, time.Minute), st
}

func advanceToPatientInfo(t *testing.T, w *booking.Wizard, st *store.Store, sel booking.ScheduleSelection) booking.Session {
	t.Helper()
	doctor := cardiologist(t, st)

	sess := w.Start()
	_, err := w.ChooseSpecialty(sess.ID, "Cardiology")
	require.NoError(t, err)
	_, err = w.ChooseDoctor(sess.ID, doctor.ID)
	require.NoError(t, err)
	sess, err = w.ChooseSchedule(sess.ID, sel)
	require.NoError(t, err)
	return sess
}

func TestWizardHappyPath(t *testing.T) {
	w, st := newWizard(t)
	ctx := context.Background()

	sess := w.Start()
	assert.Equal(t, booking.StepSelectSpecialty, sess.Step)
	assert.Equal(t, model.PaymentMethodCash, sess.PaymentMethod)
	assert.Equal(t, model.InsuranceNone, sess.Insurance)

	sess = advanceToPatientInfo(t, w, st, booking.ScheduleSelection{
		Date: "2026-09-01",
		Time: "09:00",
	})
	assert.Equal(t, booking.StepPatientInfo, sess.Step)
	assert.Equal(t, "Konsultasi", sess.Type)

	sess, err := w.SetPatientInfo(sess.ID, model.PatientInfo{
		Name:   "Citra Ayu",
		Age:    27,
		Gender: "Perempuan",
		Phone:  "081233344455",
	})
	require.NoError(t, err)
	assert.Equal(t, booking.StepPayment, sess.Step)

	sess, err = w.SetPayment(sess.ID, booking.PaymentSelection{Method: model.PaymentMethodQRIS})
	require.NoError(t, err)
	assert.Equal(t, booking.StepConfirmation, sess.Step)
	require.NotNil(t, sess.Fee)
	assert.EqualValues(t, 176000, sess.Fee.Total)

	result, err := w.Confirm(ctx, sess.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, result.InvoiceNumber)

	appointment, ok := st.AppointmentByID(result.AppointmentID)
	require.True(t, ok)
	assert.Equal(t, "2026-09-01", appointment.Date)
	assert.Equal(t, "09:00", appointment.Time)

	payments := st.Payments()
	require.Len(t, payments, 1)
	assert.Equal(t, model.PaymentMethodQRIS, payments[0].Method)

	// Session is gone once the booking is written.
	_, err = w.Get(sess.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestWizardStepGuards(t *testing.T) {
	w, st := newWizard(t)
	doctor := cardiologist(t, st)

	sess := w.Start()

	// Skipping ahead is rejected at every step.
	_, err := w.ChooseDoctor(sess.ID, doctor.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	_, err = w.ChooseSchedule(sess.ID, booking.ScheduleSelection{Date: "2026-09-01", Time: "09:00"})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	_, err = w.SetPatientInfo(sess.ID, model.PatientInfo{})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	_, err = w.SetPayment(sess.ID, booking.PaymentSelection{})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	_, err = w.Confirm(context.Background(), sess.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	_, err = w.ChooseSpecialty(uuid.New(), "Cardiology")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestWizardRejectsUnknownSelections(t *testing.T) {
	w, st := newWizard(t)

	sess := w.Start()
	_, err := w.ChooseSpecialty(sess.ID, "Astrology")
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	_, err = w.ChooseSpecialty(sess.ID, "Cardiology")
	require.NoError(t, err)

	// A pediatrician cannot be picked under Cardiology.
	pediatrician := st.DoctorsBySpecialty("Pediatrics")[0]
	_, err = w.ChooseDoctor(sess.ID, pediatrician.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	_, err = w.ChooseDoctor(sess.ID, uuid.New())
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestWizardBackPreservesValues(t *testing.T) {
	w, st := newWizard(t)

	sess := advanceToPatientInfo(t, w, st, booking.ScheduleSelection{
		Date:  "2026-09-01",
		Time:  "09:00",
		Notes: "nyeri dada",
	})

	sess, err := w.Back(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StepSelectSchedule, sess.Step)
	assert.Equal(t, "2026-09-01", sess.Date)
	assert.Equal(t, "09:00", sess.Time)
	assert.Equal(t, "nyeri dada", sess.Notes)
	assert.Equal(t, "Cardiology", sess.Specialty)
	assert.NotEqual(t, uuid.Nil, sess.DoctorID)

	sess, err = w.Back(sess.ID)
	require.NoError(t, err)
	sess, err = w.Back(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StepSelectSpecialty, sess.Step)

	_, err = w.Back(sess.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestWizardPrefillsExistingPatient(t *testing.T) {
	w, st := newWizard(t)

	sess := advanceToPatientInfo(t, w, st, booking.ScheduleSelection{
		Date:  "2026-09-01",
		Time:  "09:00",
		Email: "andi.wijaya@mail.com",
	})

	assert.True(t, sess.PatientLocked)
	require.NotNil(t, sess.PatientID)
	assert.Equal(t, "Andi Wijaya", sess.Patient.Name)
	assert.Equal(t, 34, sess.Patient.Age)

	// Demographics stay read-only while locked.
	sess, err := w.SetPatientInfo(sess.ID, model.PatientInfo{
		Name:   "Nama Lain",
		Age:    99,
		Gender: "Perempuan",
		Phone:  "081298765401",
	})
	require.NoError(t, err)
	assert.Equal(t, "Andi Wijaya", sess.Patient.Name)
	assert.Equal(t, 34, sess.Patient.Age)
}

func TestWizardLocksWhenContactEnteredAtPatientStep(t *testing.T) {
	w, st := newWizard(t)

	sess := advanceToPatientInfo(t, w, st, booking.ScheduleSelection{
		Date: "2026-09-01",
		Time: "09:00",
	})
	assert.False(t, sess.PatientLocked)

	sess, err := w.SetPatientInfo(sess.ID, model.PatientInfo{
		Name:   "Siapa Saja",
		Age:    40,
		Gender: "Laki-laki",
		Phone:  "081298765402",
	})
	require.NoError(t, err)
	assert.True(t, sess.PatientLocked)
	assert.Equal(t, "Dewi Lestari", sess.Patient.Name)
}

func TestWizardInsuredFee(t *testing.T) {
	w, st := newWizard(t)

	sess := advanceToPatientInfo(t, w, st, booking.ScheduleSelection{
		Date: "2026-09-01",
		Time: "09:00",
	})
	sess, err := w.SetPatientInfo(sess.ID, model.PatientInfo{
		Name:   "Citra Ayu",
		Age:    27,
		Gender: "Perempuan",
		Phone:  "081233344455",
	})
	require.NoError(t, err)

	sess, err = w.SetPayment(sess.ID, booking.PaymentSelection{
		Method:    model.PaymentMethodDebit,
		Insurance: model.InsuranceBPJS,
	})
	require.NoError(t, err)
	require.NotNil(t, sess.Fee)
	assert.EqualValues(t, 48000, sess.Fee.Total)
	assert.EqualValues(t, 0, sess.Fee.Tax)

	_, err = w.SetPayment(sess.ID, booking.PaymentSelection{Method: "Cek"})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestWizardConfirmFailureKeepsSession(t *testing.T) {
	w, st := newWizard(t)
	ctx := context.Background()
	doctor := cardiologist(t, st)

	// Occupy the slot outside the wizard first.
	_, err := st.CommitBooking(ctx, store.BookingCommit{
		DoctorID:  doctor.ID,
		Date:      "2026-09-01",
		Time:      "09:00",
		Type:      "Konsultasi",
		Patient:   model.PatientInfo{Name: "Pasien Lain", Age: 30, Phone: "081200000088"},
		Method:    model.PaymentMethodCash,
		Insurance: model.InsuranceNone,
		Items:     booking.DefaultItems(),
		Fee:       booking.CalculateFee(booking.DefaultItems(), model.InsuranceNone),
	})
	require.NoError(t, err)

	sess := advanceToPatientInfo(t, w, st, booking.ScheduleSelection{
		Date: "2026-09-01",
		Time: "09:00",
	})
	sess, err = w.SetPatientInfo(sess.ID, model.PatientInfo{
		Name:   "Citra Ayu",
		Age:    27,
		Gender: "Perempuan",
		Phone:  "081233344455",
	})
	require.NoError(t, err)
	sess, err = w.SetPayment(sess.ID, booking.PaymentSelection{})
	require.NoError(t, err)

	_, err = w.Confirm(ctx, sess.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	// Session survives so the user can pick another slot via Back.
	kept, err := w.Get(sess.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StepConfirmation, kept.Step)
}
