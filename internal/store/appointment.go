package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

func (s *Store) Appointments(filters model.AppointmentFilters) []model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Appointment
	for _, a := range s.appointments {
		if filters.DoctorID != uuid.Nil && a.DoctorID != filters.DoctorID {
			continue
		}
		if filters.PatientID != uuid.Nil && a.PatientID != filters.PatientID {
			continue
		}
		if filters.Status != "" && a.Status != filters.Status {
			continue
		}
		if filters.Date != "" && a.Date != filters.Date {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (s *Store) AppointmentByID(id uuid.UUID) (model.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, true
		}
	}
	return model.Appointment{}, false
}

// SlotTaken reports whether a non-cancelled appointment already occupies
// the (doctor, date, time) slot.
func (s *Store) SlotTaken(doctorID uuid.UUID, date, timeOfDay string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slotTakenLocked(doctorID, date, timeOfDay)
}

func (s *Store) slotTakenLocked(doctorID uuid.UUID, date, timeOfDay string) bool {
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Date == date && a.Time == timeOfDay &&
			a.Status != model.AppointmentStatusCancelled {
			return true
		}
	}
	return false
}

// UpdateAppointmentStatus applies the only legal transitions:
// Scheduled -> Completed or Scheduled -> Cancelled.
func (s *Store) UpdateAppointmentStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.appointments {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.NotFound("appointment", nil)
	}

	current := s.appointments[idx].Status
	if current.Terminal() {
		return errors.Conflict(fmt.Sprintf("appointment is already %s", current), nil)
	}
	if !status.Valid() || status == model.AppointmentStatusScheduled {
		return errors.BadRequest(fmt.Sprintf("invalid status transition %s -> %s", current, status), nil)
	}

	prev := s.appointments
	next := clone(s.appointments)
	next[idx].Status = status
	next[idx].UpdatedAt = time.Now()

	s.appointments = next
	if err := persist(ctx, s, KeyAppointments, s.appointments); err != nil {
		s.appointments = prev
		return err
	}
	return nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.appointments
	next := make([]model.Appointment, 0, len(prev))
	found := false
	for _, a := range prev {
		if a.ID == id {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		return errors.NotFound("appointment", nil)
	}

	s.appointments = next
	if err := persist(ctx, s, KeyAppointments, s.appointments); err != nil {
		s.appointments = prev
		return err
	}
	return nil
}

func (s *Store) Payments() []model.Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.payments)
}

func (s *Store) Invoices() []model.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.invoices)
}

func (s *Store) InvoiceByID(id uuid.UUID) (model.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return model.Invoice{}, false
}
