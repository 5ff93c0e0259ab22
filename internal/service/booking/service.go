package booking

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/klinikdev/klinik-api/internal/email"
	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/lock"
	"github.com/klinikdev/klinik-api/pkg/logger"
	"github.com/klinikdev/klinik-api/pkg/metrics"
)

// Service is the booking API surface: specialty/doctor listing, patient
// resolution, fee quoting and the confirmation transaction.
type Service struct {
	store   *store.Store
	locker  lock.Locker
	mailer  email.Service
	metrics *metrics.Metrics
	log     *logger.Logger
}

func NewService(st *store.Store, locker lock.Locker, mailer email.Service, m *metrics.Metrics, log *logger.Logger) *Service {
	return &Service{
		store:   st,
		locker:  locker,
		mailer:  mailer,
		metrics: m,
		log:     log,
	}
}

func (s *Service) ListSpecialties() []string {
	return s.store.Specialties()
}

func (s *Service) ListDoctors(specialty string) []model.Doctor {
	return s.store.DoctorsBySpecialty(specialty)
}

// ResolvePatient returns the existing patient matching email or phone, or
// registers a new one with a fresh medical record number.
func (s *Service) ResolvePatient(ctx context.Context, req model.ResolvePatientRequest) (model.Patient, error) {
	info := req.Patient
	if info.Email == "" {
		info.Email = req.Email
	}
	if info.Phone == "" {
		info.Phone = req.Phone
	}

	var missing []string
	if info.Name == "" {
		missing = append(missing, "name")
	}
	if info.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return model.Patient{}, errors.Validation(missing...)
	}

	return s.store.ResolvePatient(ctx, info)
}

// Quote computes the fee breakdown without side effects. An empty item
// list quotes the default catalog.
func (s *Service) Quote(items []model.ServiceItem, insurance model.Insurance) (model.FeeBreakdown, error) {
	if !insurance.Valid() {
		return model.FeeBreakdown{}, errors.BadRequest(fmt.Sprintf("unknown insurance %q", insurance), nil)
	}
	if len(items) == 0 {
		items = DefaultItems()
	}
	return CalculateFee(items, insurance), nil
}

// Confirm runs the booking transaction: under a per-slot lock it creates
// appointment, payment and invoice (and the patient when new) as one
// atomic store commit, then sends the confirmation mail best-effort.
func (s *Service) Confirm(ctx context.Context, req model.ConfirmBookingRequest) (model.BookingResult, error) {
	if err := validateConfirm(&req); err != nil {
		return model.BookingResult{}, err
	}

	items := DefaultItems()
	commit := store.BookingCommit{
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Type:      req.Type,
		Notes:     req.Notes,
		Patient:   req.Patient,
		Method:    req.PaymentMethod,
		Insurance: req.Insurance,
		Items:     items,
		Fee:       CalculateFee(items, req.Insurance),
	}

	slotKey := fmt.Sprintf("%s:%s:%s", req.DoctorID, req.Date, req.Time)

	var result model.BookingResult
	err := s.locker.WithSlotLock(ctx, slotKey, func(lockCtx context.Context) error {
		var commitErr error
		result, commitErr = s.store.CommitBooking(lockCtx, commit)
		return commitErr
	})
	if err != nil {
		if stderrors.Is(err, lock.ErrNotAcquired) {
			s.metrics.BookingConflicts.Inc()
			return model.BookingResult{}, errors.Conflict("slot is currently being booked, please retry", err)
		}
		switch errors.CodeOf(err) {
		case errors.ErrConflict:
			s.metrics.BookingConflicts.Inc()
		case errors.ErrNotFound:
			s.metrics.BookingFailures.WithLabelValues("not_found").Inc()
		default:
			s.metrics.BookingFailures.WithLabelValues("persistence").Inc()
		}
		return model.BookingResult{}, err
	}

	s.metrics.BookingsConfirmed.Inc()
	s.notifyConfirmed(ctx, req, result)

	return result, nil
}

func (s *Service) notifyConfirmed(ctx context.Context, req model.ConfirmBookingRequest, result model.BookingResult) {
	if req.Patient.Email == "" {
		return
	}
	appointment, ok := s.store.AppointmentByID(result.AppointmentID)
	if !ok {
		return
	}
	invoice, ok := s.store.InvoiceByID(result.InvoiceID)
	if !ok {
		return
	}
	if err := s.mailer.SendBookingConfirmation(ctx, req.Patient.Email, invoice, appointment); err != nil {
		s.log.Error(err, "failed to send booking confirmation",
			"appointment_id", result.AppointmentID.String())
	}
}

func validateConfirm(req *model.ConfirmBookingRequest) error {
	if req.PaymentMethod == "" {
		req.PaymentMethod = model.PaymentMethodCash
	}
	if req.Insurance == "" {
		req.Insurance = model.InsuranceNone
	}
	if !req.PaymentMethod.Valid() {
		return errors.BadRequest(fmt.Sprintf("unknown payment method %q", req.PaymentMethod), nil)
	}
	if !req.Insurance.Valid() {
		return errors.BadRequest(fmt.Sprintf("unknown insurance %q", req.Insurance), nil)
	}

	var missing []string
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Time == "" {
		missing = append(missing, "time")
	}
	if req.Type == "" {
		missing = append(missing, "type")
	}
	if req.Patient.Name == "" {
		missing = append(missing, "patient.name")
	}
	if req.Patient.Age <= 0 {
		missing = append(missing, "patient.age")
	}
	if req.Patient.Gender == "" {
		missing = append(missing, "patient.gender")
	}
	if req.Patient.Phone == "" {
		missing = append(missing, "patient.phone")
	}
	if len(missing) > 0 {
		return errors.Validation(missing...)
	}
	return nil
}
