package patient

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

// Service is the admin-side patient CRUD. Booking never deletes patients;
// deletion lives only here.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) List() []model.Patient {
	return s.store.Patients()
}

func (s *Service) Get(id uuid.UUID) (model.Patient, error) {
	patient, ok := s.store.PatientByID(id)
	if !ok {
		return model.Patient{}, errors.NotFound("patient", nil)
	}
	return patient, nil
}

func (s *Service) Create(ctx context.Context, req model.CreatePatientRequest) (model.Patient, error) {
	now := time.Now()
	patient := model.Patient{
		ID:               uuid.New(),
		Name:             req.Name,
		Age:              req.Age,
		Gender:           req.Gender,
		Phone:            req.Phone,
		Email:            req.Email,
		Address:          req.Address,
		BloodType:        req.BloodType,
		RegistrationDate: now,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.store.AddPatient(ctx, patient); err != nil {
		return model.Patient{}, err
	}
	created, _ := s.store.PatientByID(patient.ID)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req model.UpdatePatientRequest) (model.Patient, error) {
	patient, ok := s.store.PatientByID(id)
	if !ok {
		return model.Patient{}, errors.NotFound("patient", nil)
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.Age != nil {
		patient.Age = *req.Age
	}
	if req.Gender != nil {
		patient.Gender = *req.Gender
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.BloodType != nil {
		patient.BloodType = *req.BloodType
	}

	if err := s.store.UpdatePatient(ctx, patient); err != nil {
		return model.Patient{}, err
	}
	updated, _ := s.store.PatientByID(id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.DeletePatient(ctx, id)
}
