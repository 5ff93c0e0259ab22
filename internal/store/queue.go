package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

func (s *Store) QueueEntries(date string) []model.QueueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.QueueEntry
	for _, e := range s.queue {
		if date == "" || e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// AddQueueEntry assigns the next queue number for the given date.
func (s *Store) AddQueueEntry(ctx context.Context, date, patientName, doctorName string) (model.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := 1
	for _, e := range s.queue {
		if e.Date == date && e.Number >= number {
			number = e.Number + 1
		}
	}

	entry := model.QueueEntry{
		ID:          uuid.New(),
		Number:      number,
		Date:        date,
		PatientName: patientName,
		DoctorName:  doctorName,
		Status:      model.QueueStatusWaiting,
		CreatedAt:   time.Now(),
	}

	prev := s.queue
	s.queue = append(clone(s.queue), entry)
	if err := persist(ctx, s, KeyQueue, s.queue); err != nil {
		s.queue = prev
		return model.QueueEntry{}, err
	}
	return entry, nil
}

func (s *Store) UpdateQueueStatus(ctx context.Context, id uuid.UUID, status model.QueueStatus) (model.QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.queue {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.QueueEntry{}, errors.NotFound("queue entry", nil)
	}

	prev := s.queue
	next := clone(s.queue)
	next[idx].Status = status

	s.queue = next
	if err := persist(ctx, s, KeyQueue, s.queue); err != nil {
		s.queue = prev
		return model.QueueEntry{}, err
	}
	return s.queue[idx], nil
}

func (s *Store) DeleteQueueEntry(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.queue
	next := make([]model.QueueEntry, 0, len(prev))
	found := false
	for _, e := range prev {
		if e.ID == id {
			found = true
			continue
		}
		next = append(next, e)
	}
	if !found {
		return errors.NotFound("queue entry", nil)
	}

	s.queue = next
	if err := persist(ctx, s, KeyQueue, s.queue); err != nil {
		s.queue = prev
		return err
	}
	return nil
}
