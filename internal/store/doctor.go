package store

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

func (s *Store) Doctors() []model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.doctors)
}

func (s *Store) DoctorByID(id uuid.UUID) (model.Doctor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doctorByIDLocked(id)
}

func (s *Store) doctorByIDLocked(id uuid.UUID) (model.Doctor, bool) {
	for _, d := range s.doctors {
		if d.ID == id {
			return d, true
		}
	}
	return model.Doctor{}, false
}

func (s *Store) DoctorsBySpecialty(specialty string) []model.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Doctor
	for _, d := range s.doctors {
		if specialty == "" || d.Specialty == specialty {
			out = append(out, d)
		}
	}
	return out
}

// Specialties returns the distinct specialties among known doctors, sorted.
func (s *Store) Specialties() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, d := range s.doctors {
		if _, ok := seen[d.Specialty]; ok {
			continue
		}
		seen[d.Specialty] = struct{}{}
		out = append(out, d.Specialty)
	}
	sort.Strings(out)
	return out
}

func (s *Store) AddDoctor(ctx context.Context, doctor model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.doctors
	s.doctors = append(clone(s.doctors), doctor)
	if err := persist(ctx, s, KeyDoctors, s.doctors); err != nil {
		s.doctors = prev
		return err
	}
	return nil
}

func (s *Store) UpdateDoctor(ctx context.Context, doctor model.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, d := range s.doctors {
		if d.ID == doctor.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.NotFound("doctor", nil)
	}

	prev := s.doctors
	next := clone(s.doctors)
	doctor.CreatedAt = prev[idx].CreatedAt
	doctor.UpdatedAt = time.Now()
	next[idx] = doctor

	s.doctors = next
	if err := persist(ctx, s, KeyDoctors, s.doctors); err != nil {
		s.doctors = prev
		return err
	}
	return nil
}

func (s *Store) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.doctors
	next := make([]model.Doctor, 0, len(prev))
	found := false
	for _, d := range prev {
		if d.ID == id {
			found = true
			continue
		}
		next = append(next, d)
	}
	if !found {
		return errors.NotFound("doctor", nil)
	}

	s.doctors = next
	if err := persist(ctx, s, KeyDoctors, s.doctors); err != nil {
		s.doctors = prev
		return err
	}
	return nil
}

func (s *Store) Nurses() []model.Nurse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.nurses)
}

func (s *Store) AddNurse(ctx context.Context, nurse model.Nurse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.nurses
	s.nurses = append(clone(s.nurses), nurse)
	if err := persist(ctx, s, KeyNurses, s.nurses); err != nil {
		s.nurses = prev
		return err
	}
	return nil
}

func (s *Store) UpdateNurse(ctx context.Context, nurse model.Nurse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, n := range s.nurses {
		if n.ID == nurse.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.NotFound("nurse", nil)
	}

	prev := s.nurses
	next := clone(s.nurses)
	nurse.CreatedAt = prev[idx].CreatedAt
	nurse.UpdatedAt = time.Now()
	next[idx] = nurse

	s.nurses = next
	if err := persist(ctx, s, KeyNurses, s.nurses); err != nil {
		s.nurses = prev
		return err
	}
	return nil
}

func (s *Store) DeleteNurse(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.nurses
	next := make([]model.Nurse, 0, len(prev))
	found := false
	for _, n := range prev {
		if n.ID == id {
			found = true
			continue
		}
		next = append(next, n)
	}
	if !found {
		return errors.NotFound("nurse", nil)
	}

	s.nurses = next
	if err := persist(ctx, s, KeyNurses, s.nurses); err != nil {
		s.nurses = prev
		return err
	}
	return nil
}
