package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

// BookingCommit is the fully-populated input to the booking transaction.
type BookingCommit struct {
	DoctorID  uuid.UUID
	Date      string
	Time      string
	Type      string
	Notes     string
	Patient   model.PatientInfo
	Method    model.PaymentMethod
	Insurance model.Insurance
	Items     []model.ServiceItem
	Fee       model.FeeBreakdown
}

// CommitBooking creates the appointment, payment and invoice (and, for an
// unknown patient, the patient record) as one atomic unit under the store
// lock. The slot uniqueness check and doctor existence check happen here,
// at commit time, so a stale wizard selection cannot slip through. If any
// collection write fails, the in-memory state is rolled back and the
// collections written so far are restored; a failed restore surfaces as a
// partial-commit error.
func (s *Store) CommitBooking(ctx context.Context, commit BookingCommit) (model.BookingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctor, ok := s.doctorByIDLocked(commit.DoctorID)
	if !ok {
		return model.BookingResult{}, errors.NotFound("doctor", nil)
	}

	if s.slotTakenLocked(commit.DoctorID, commit.Date, commit.Time) {
		return model.BookingResult{}, errors.Conflict(
			fmt.Sprintf("slot %s %s for %s is already booked", commit.Date, commit.Time, doctor.Name), nil)
	}

	now := time.Now()

	patient, found := s.lookupPatientLocked(commit.Patient.Email, commit.Patient.Phone)
	patientIsNew := !found
	if patientIsNew {
		patient = s.newPatientLocked(commit.Patient)
	}

	appointmentID := uuid.New()
	paymentID := uuid.New()
	invoiceID := uuid.New()

	appointment := model.Appointment{
		ID:          appointmentID,
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		Date:        commit.Date,
		Time:        commit.Time,
		Type:        commit.Type,
		Notes:       commit.Notes,
		Status:      model.AppointmentStatusScheduled,
		PaymentID:   &paymentID,
		InvoiceID:   &invoiceID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	payment := model.Payment{
		ID:            paymentID,
		AppointmentID: appointmentID,
		Amount:        commit.Fee.Total,
		Method:        commit.Method,
		Insurance:     commit.Insurance,
		Status:        model.PaymentStatusPaid,
		CreatedAt:     now,
	}

	invoice := model.Invoice{
		ID:            invoiceID,
		InvoiceNumber: s.nextInvoiceNumberLocked(now.Year()),
		AppointmentID: appointmentID,
		PatientName:   patient.Name,
		DoctorName:    doctor.Name,
		Items:         commit.Items,
		Subtotal:      commit.Fee.Subtotal,
		Tax:           commit.Fee.Tax,
		Total:         commit.Fee.Total,
		IssuedAt:      now,
	}

	prevPatients := s.patients
	prevAppointments := s.appointments
	prevPayments := s.payments
	prevInvoices := s.invoices

	if patientIsNew {
		s.patients = append(clone(s.patients), patient)
	}
	s.appointments = append(clone(s.appointments), appointment)
	s.payments = append(clone(s.payments), payment)
	s.invoices = append(clone(s.invoices), invoice)

	type write struct {
		key  string
		save func() error
	}
	writes := []write{
		{KeyAppointments, func() error { return persist(ctx, s, KeyAppointments, s.appointments) }},
		{KeyPayments, func() error { return persist(ctx, s, KeyPayments, s.payments) }},
		{KeyInvoices, func() error { return persist(ctx, s, KeyInvoices, s.invoices) }},
	}
	if patientIsNew {
		writes = append([]write{
			{KeyPatients, func() error { return persist(ctx, s, KeyPatients, s.patients) }},
		}, writes...)
	}

	var saved []string
	for _, w := range writes {
		if err := w.save(); err != nil {
			s.patients = prevPatients
			s.appointments = prevAppointments
			s.payments = prevPayments
			s.invoices = prevInvoices
			if restoreErr := s.restoreLocked(ctx, saved); restoreErr != nil {
				return model.BookingResult{}, errors.PartialCommit(restoreErr)
			}
			return model.BookingResult{}, err
		}
		saved = append(saved, w.key)
	}

	return model.BookingResult{
		AppointmentID: appointmentID,
		PaymentID:     paymentID,
		InvoiceID:     invoiceID,
		PatientID:     patient.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		Total:         invoice.Total,
	}, nil
}

// restoreLocked re-saves the rolled-back state of collections that were
// already written before a later write failed.
func (s *Store) restoreLocked(ctx context.Context, keys []string) error {
	for _, key := range keys {
		var err error
		switch key {
		case KeyPatients:
			err = persist(ctx, s, KeyPatients, s.patients)
		case KeyAppointments:
			err = persist(ctx, s, KeyAppointments, s.appointments)
		case KeyPayments:
			err = persist(ctx, s, KeyPayments, s.payments)
		case KeyInvoices:
			err = persist(ctx, s, KeyInvoices, s.invoices)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// nextInvoiceNumberLocked generates INV-{year}-{rand4}, retrying on the
// unlikely collision with an existing invoice number.
func (s *Store) nextInvoiceNumberLocked(year int) string {
	for {
		number := fmt.Sprintf("INV-%d-%04d", year, rand.IntN(10000))
		if !s.invoiceNumberExistsLocked(number) {
			return number
		}
	}
}

func (s *Store) invoiceNumberExistsLocked(number string) bool {
	for _, inv := range s.invoices {
		if inv.InvoiceNumber == number {
			return true
		}
	}
	return false
}
