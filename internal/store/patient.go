package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

func (s *Store) Patients() []model.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.patients)
}

func (s *Store) PatientByID(id uuid.UUID) (model.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients {
		if p.ID == id {
			return p, true
		}
	}
	return model.Patient{}, false
}

// LookupPatient finds the first patient, in insertion order, whose email
// or phone equals a non-empty given identifier.
func (s *Store) LookupPatient(email, phone string) (model.Patient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupPatientLocked(email, phone)
}

func (s *Store) lookupPatientLocked(email, phone string) (model.Patient, bool) {
	for _, p := range s.patients {
		if (email != "" && p.Email == email) || (phone != "" && p.Phone == phone) {
			return p, true
		}
	}
	return model.Patient{}, false
}

// ResolvePatient returns the existing patient matching the payload's
// contact identifiers or creates and persists a new one.
func (s *Store) ResolvePatient(ctx context.Context, info model.PatientInfo) (model.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.lookupPatientLocked(info.Email, info.Phone); ok {
		return existing, nil
	}

	patient := s.newPatientLocked(info)
	prev := s.patients
	s.patients = append(clone(s.patients), patient)
	if err := persist(ctx, s, KeyPatients, s.patients); err != nil {
		s.patients = prev
		return model.Patient{}, err
	}
	return patient, nil
}

func (s *Store) newPatientLocked(info model.PatientInfo) model.Patient {
	now := time.Now()
	return model.Patient{
		ID:                  uuid.New(),
		Name:                info.Name,
		Age:                 info.Age,
		Gender:              info.Gender,
		Phone:               info.Phone,
		Email:               info.Email,
		Address:             info.Address,
		BloodType:           info.BloodType,
		MedicalRecordNumber: s.nextMedicalRecordNumberLocked(now.Year()),
		IsNewPatient:        true,
		RegistrationDate:    now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// nextMedicalRecordNumberLocked starts the sequence at count+1 and probes
// upward so a number freed by deletion is never reissued in a way that
// collides with a surviving patient.
func (s *Store) nextMedicalRecordNumberLocked(year int) string {
	seq := len(s.patients) + 1
	for {
		mrn := fmt.Sprintf("MR-%d-%03d", year, seq)
		if !s.medicalRecordNumberExistsLocked(mrn) {
			return mrn
		}
		seq++
	}
}

func (s *Store) medicalRecordNumberExistsLocked(mrn string) bool {
	for _, p := range s.patients {
		if p.MedicalRecordNumber == mrn {
			return true
		}
	}
	return false
}

func (s *Store) AddPatient(ctx context.Context, patient model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patient.MedicalRecordNumber == "" {
		patient.MedicalRecordNumber = s.nextMedicalRecordNumberLocked(time.Now().Year())
	}

	prev := s.patients
	s.patients = append(clone(s.patients), patient)
	if err := persist(ctx, s, KeyPatients, s.patients); err != nil {
		s.patients = prev
		return err
	}
	return nil
}

// UpdatePatient replaces mutable fields. The medical record number and
// registration date are stable once assigned and never overwritten.
func (s *Store) UpdatePatient(ctx context.Context, patient model.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, p := range s.patients {
		if p.ID == patient.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.NotFound("patient", nil)
	}

	prev := s.patients
	next := clone(s.patients)
	patient.MedicalRecordNumber = prev[idx].MedicalRecordNumber
	patient.RegistrationDate = prev[idx].RegistrationDate
	patient.CreatedAt = prev[idx].CreatedAt
	patient.UpdatedAt = time.Now()
	next[idx] = patient

	s.patients = next
	if err := persist(ctx, s, KeyPatients, s.patients); err != nil {
		s.patients = prev
		return err
	}
	return nil
}

func (s *Store) DeletePatient(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.patients
	next := make([]model.Patient, 0, len(prev))
	found := false
	for _, p := range prev {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return errors.NotFound("patient", nil)
	}

	s.patients = next
	if err := persist(ctx, s, KeyPatients, s.patients); err != nil {
		s.patients = prev
		return err
	}
	return nil
}
