package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

// Service covers appointment administration after booking: listing,
// status transitions and deletion of cancelled appointments. Creation
// only ever happens through the booking transaction.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) List(filters model.AppointmentFilters) []model.Appointment {
	return s.store.Appointments(filters)
}

func (s *Service) Get(id uuid.UUID) (model.Appointment, error) {
	apt, ok := s.store.AppointmentByID(id)
	if !ok {
		return model.Appointment{}, errors.NotFound("appointment", nil)
	}
	return apt, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus) (model.Appointment, error) {
	if err := s.store.UpdateAppointmentStatus(ctx, id, status); err != nil {
		return model.Appointment{}, err
	}
	apt, _ := s.store.AppointmentByID(id)
	return apt, nil
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (model.Appointment, error) {
	return s.UpdateStatus(ctx, id, model.AppointmentStatusCancelled)
}

// Delete removes an appointment record; only cancelled ones may go.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	apt, ok := s.store.AppointmentByID(id)
	if !ok {
		return errors.NotFound("appointment", nil)
	}
	if apt.Status != model.AppointmentStatusCancelled {
		return errors.Conflict("only cancelled appointments can be deleted", nil)
	}
	return s.store.DeleteAppointment(ctx, id)
}
