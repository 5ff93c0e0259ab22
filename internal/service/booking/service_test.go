package booking_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikdev/klinik-api/internal/email"
	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/persistence"
	"github.com/klinikdev/klinik-api/internal/service/booking"
	"github.com/klinikdev/klinik-api/internal/store"
	apperrors "github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/lock"
	"github.com/klinikdev/klinik-api/pkg/logger"
	"github.com/klinikdev/klinik-api/pkg/metrics"
)

// Shared across the package; prometheus collectors register once per process.
var testMetrics = metrics.NewMetrics("klinik_booking_test")

func newBookingService(t *testing.T) (*booking.Service, *store.Store, *persistence.MemoryAdapter) {
	t.Helper()
	adapter := persistence.NewMemoryAdapter()
	st := store.New(context.Background(), adapter, logger.Discard(), nil)
	svc := booking.NewService(st, lock.NewMemoryLocker(), email.NewNoopService(), testMetrics, logger.Discard())
	return svc, st, adapter
}

func cardiologist(t *testing.T, st *store.Store) model.Doctor {
	t.Helper()
	doctors := st.DoctorsBySpecialty("Cardiology")
	require.NotEmpty(t, doctors)
	return doctors[0]
}

func confirmRequest(doctorID uuid.UUID, date, timeOfDay string) model.ConfirmBookingRequest {
	return model.ConfirmBookingRequest{
		DoctorID: doctorID,
		Date:     date,
		Time:     timeOfDay,
		Type:     "Konsultasi",
		Patient: model.PatientInfo{
			Name:   "Citra Ayu",
			Age:    27,
			Gender: "Perempuan",
			Phone:  "081233344455",
			Email:  "citra@mail.com",
		},
		PaymentMethod: model.PaymentMethodCash,
		Insurance:     model.InsuranceNone,
	}
}

func TestConfirmCreatesLinkedRecords(t *testing.T) {
	svc, st, _ := newBookingService(t)
	doctor := cardiologist(t, st)

	result, err := svc.Confirm(context.Background(), confirmRequest(doctor.ID, "2026-09-01", "09:00"))
	require.NoError(t, err)
	assert.EqualValues(t, 176000, result.Total)
	assert.NotEmpty(t, result.InvoiceNumber)

	appointment, ok := st.AppointmentByID(result.AppointmentID)
	require.True(t, ok)
	assert.Equal(t, doctor.Name, appointment.DoctorName)
	assert.Equal(t, model.AppointmentStatusScheduled, appointment.Status)

	payments := st.Payments()
	require.Len(t, payments, 1)
	invoice, ok := st.InvoiceByID(result.InvoiceID)
	require.True(t, ok)
	assert.Equal(t, payments[0].Amount, invoice.Total)
	assert.Len(t, invoice.Items, 2)
}

func TestConfirmReusesExistingPatient(t *testing.T) {
	svc, st, _ := newBookingService(t)
	doctor := cardiologist(t, st)

	existing, ok := st.LookupPatient("andi.wijaya@mail.com", "")
	require.True(t, ok)

	req := confirmRequest(doctor.ID, "2026-09-01", "10:00")
	req.Patient = model.PatientInfo{
		Name:   "Andi Wijaya",
		Age:    34,
		Gender: "Laki-laki",
		Phone:  "081298765401",
	}

	result, err := svc.Confirm(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, result.PatientID)
	assert.Len(t, st.Patients(), 3)
}

func TestConfirmSlotConflict(t *testing.T) {
	svc, st, _ := newBookingService(t)
	doctor := cardiologist(t, st)
	ctx := context.Background()

	_, err := svc.Confirm(ctx, confirmRequest(doctor.ID, "2026-09-02", "09:00"))
	require.NoError(t, err)

	req := confirmRequest(doctor.ID, "2026-09-02", "09:00")
	req.Patient.Phone = "081200000099"
	req.Patient.Email = "lain@mail.com"
	_, err = svc.Confirm(ctx, req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestConfirmAfterCancellationReusesSlot(t *testing.T) {
	svc, st, _ := newBookingService(t)
	doctor := cardiologist(t, st)
	ctx := context.Background()

	result, err := svc.Confirm(ctx, confirmRequest(doctor.ID, "2026-09-03", "09:00"))
	require.NoError(t, err)
	require.NoError(t, st.UpdateAppointmentStatus(ctx, result.AppointmentID, model.AppointmentStatusCancelled))

	req := confirmRequest(doctor.ID, "2026-09-03", "09:00")
	req.Patient.Phone = "081200000098"
	req.Patient.Email = "lain2@mail.com"
	_, err = svc.Confirm(ctx, req)
	assert.NoError(t, err)
}

func TestConfirmAppliesPaymentDefaults(t *testing.T) {
	svc, st, _ := newBookingService(t)
	doctor := cardiologist(t, st)

	req := confirmRequest(doctor.ID, "2026-09-04", "09:00")
	req.PaymentMethod = ""
	req.Insurance = ""

	_, err := svc.Confirm(context.Background(), req)
	require.NoError(t, err)

	payments := st.Payments()
	require.Len(t, payments, 1)
	assert.Equal(t, model.PaymentMethodCash, payments[0].Method)
	assert.Equal(t, model.InsuranceNone, payments[0].Insurance)
}

func TestConfirmInsuredTotal(t *testing.T) {
	svc, st, _ := newBookingService(t)
	doctor := cardiologist(t, st)

	req := confirmRequest(doctor.ID, "2026-09-05", "09:00")
	req.Insurance = model.InsuranceBPJS

	result, err := svc.Confirm(context.Background(), req)
	require.NoError(t, err)
	assert.EqualValues(t, 48000, result.Total)

	invoice, ok := st.InvoiceByID(result.InvoiceID)
	require.True(t, ok)
	assert.EqualValues(t, 0, invoice.Tax)
	assert.EqualValues(t, 160000, invoice.Subtotal)
}

func TestConfirmValidation(t *testing.T) {
	svc, st, _ := newBookingService(t)
	doctor := cardiologist(t, st)

	req := confirmRequest(doctor.ID, "2026-09-06", "09:00")
	req.Patient.Phone = ""
	req.Patient.Name = ""

	_, err := svc.Confirm(context.Background(), req)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	assert.Empty(t, st.Appointments(model.AppointmentFilters{}))

	req = confirmRequest(doctor.ID, "2026-09-06", "09:00")
	req.PaymentMethod = "Cek"
	_, err = svc.Confirm(context.Background(), req)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestConfirmUnknownDoctor(t *testing.T) {
	svc, _, _ := newBookingService(t)

	_, err := svc.Confirm(context.Background(), confirmRequest(uuid.New(), "2026-09-07", "09:00"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestConfirmPersistenceFailure(t *testing.T) {
	svc, st, adapter := newBookingService(t)
	doctor := cardiologist(t, st)

	adapter.FailOn = func(key string) error {
		if key == store.KeyPayments {
			return stderrors.New("disk full")
		}
		return nil
	}

	_, err := svc.Confirm(context.Background(), confirmRequest(doctor.ID, "2026-09-08", "09:00"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrPersistence))
	assert.Empty(t, st.Appointments(model.AppointmentFilters{}))
	assert.Empty(t, st.Payments())
}

func TestResolvePatient(t *testing.T) {
	svc, st, _ := newBookingService(t)
	ctx := context.Background()

	// Existing patient, matched on top-level email.
	patient, err := svc.ResolvePatient(ctx, model.ResolvePatientRequest{
		Email: "andi.wijaya@mail.com",
		Patient: model.PatientInfo{
			Name:  "Andi Wijaya",
			Phone: "081298765401",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Andi Wijaya", patient.Name)
	assert.Len(t, st.Patients(), 3)

	// Unknown identifiers register a new patient.
	created, err := svc.ResolvePatient(ctx, model.ResolvePatientRequest{
		Phone: "081200000077",
		Patient: model.PatientInfo{
			Name:   "Pasien Baru",
			Age:    22,
			Gender: "Perempuan",
		},
	})
	require.NoError(t, err)
	assert.True(t, created.IsNewPatient)
	assert.NotEmpty(t, created.MedicalRecordNumber)
	assert.Len(t, st.Patients(), 4)

	// Name and phone are required.
	_, err = svc.ResolvePatient(ctx, model.ResolvePatientRequest{
		Patient: model.PatientInfo{Name: "Tanpa Telepon"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestQuote(t *testing.T) {
	svc, _, _ := newBookingService(t)

	fee, err := svc.Quote(nil, model.InsuranceNone)
	require.NoError(t, err)
	assert.EqualValues(t, 176000, fee.Total)

	fee, err = svc.Quote(nil, model.InsuranceKIS)
	require.NoError(t, err)
	assert.EqualValues(t, 48000, fee.Total)

	_, err = svc.Quote(nil, "Swasta")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestListSpecialtiesAndDoctors(t *testing.T) {
	svc, _, _ := newBookingService(t)

	specialties := svc.ListSpecialties()
	assert.Contains(t, specialties, "Cardiology")
	assert.Contains(t, specialties, "Pediatrics")

	doctors := svc.ListDoctors("Cardiology")
	require.Len(t, doctors, 1)
	assert.Equal(t, "Cardiology", doctors[0].Specialty)

	assert.Len(t, svc.ListDoctors(""), 4)
}
