package doctor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

const availabilityTTL = time.Minute

// Service exposes doctor CRUD and the advisory availability view derived
// from the weekly schedule. Availability guides the wizard's schedule
// step; the hard slot check happens in the store at commit time.
type Service struct {
	store        *store.Store
	availability *cache.Cache
}

func NewService(st *store.Store) *Service {
	return &Service{
		store:        st,
		availability: cache.New(availabilityTTL, 5*time.Minute),
	}
}

func (s *Service) List(specialty string) []model.Doctor {
	return s.store.DoctorsBySpecialty(specialty)
}

func (s *Service) Get(id uuid.UUID) (model.Doctor, error) {
	doctor, ok := s.store.DoctorByID(id)
	if !ok {
		return model.Doctor{}, errors.NotFound("doctor", nil)
	}
	return doctor, nil
}

func (s *Service) Specialties() []string {
	return s.store.Specialties()
}

func (s *Service) Create(ctx context.Context, req model.CreateDoctorRequest) (model.Doctor, error) {
	now := time.Now()
	doctor := model.Doctor{
		ID:        uuid.New(),
		Name:      req.Name,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
		Schedule:  toSchedule(req.Schedule),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddDoctor(ctx, doctor); err != nil {
		return model.Doctor{}, err
	}
	return doctor, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req model.UpdateDoctorRequest) (model.Doctor, error) {
	doctor, ok := s.store.DoctorByID(id)
	if !ok {
		return model.Doctor{}, errors.NotFound("doctor", nil)
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		doctor.Phone = *req.Phone
	}
	if req.Email != nil {
		doctor.Email = *req.Email
	}
	if req.Schedule != nil {
		doctor.Schedule = toSchedule(req.Schedule)
	}

	if err := s.store.UpdateDoctor(ctx, doctor); err != nil {
		return model.Doctor{}, err
	}
	s.availability.Delete(id.String())
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.DeleteDoctor(ctx, id); err != nil {
		return err
	}
	s.availability.Delete(id.String())
	return nil
}

// Availability returns the doctor's weekly (day, time-range) slots.
func (s *Service) Availability(id uuid.UUID) ([]model.ScheduleEntry, error) {
	if v, ok := s.availability.Get(id.String()); ok {
		return v.([]model.ScheduleEntry), nil
	}

	doctor, ok := s.store.DoctorByID(id)
	if !ok {
		return nil, errors.NotFound("doctor", nil)
	}

	slots := make([]model.ScheduleEntry, len(doctor.Schedule))
	copy(slots, doctor.Schedule)
	s.availability.Set(id.String(), slots, availabilityTTL)
	return slots, nil
}

func toSchedule(inputs []model.ScheduleInput) []model.ScheduleEntry {
	entries := make([]model.ScheduleEntry, 0, len(inputs))
	for _, in := range inputs {
		entries = append(entries, model.ScheduleEntry{
			Day:       in.Day,
			StartTime: in.StartTime,
			EndTime:   in.EndTime,
		})
	}
	return entries
}
