package queue

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
)

const dateLayout = "2006-01-02"

// Service manages the daily walk-in queue.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) List(date string) []model.QueueEntry {
	if date == "" {
		date = time.Now().Format(dateLayout)
	}
	return s.store.QueueEntries(date)
}

func (s *Service) Add(ctx context.Context, req model.AddQueueRequest) (model.QueueEntry, error) {
	date := time.Now().Format(dateLayout)
	return s.store.AddQueueEntry(ctx, date, req.PatientName, req.DoctorName)
}

func (s *Service) Call(ctx context.Context, id uuid.UUID) (model.QueueEntry, error) {
	return s.store.UpdateQueueStatus(ctx, id, model.QueueStatusCalled)
}

func (s *Service) Complete(ctx context.Context, id uuid.UUID) (model.QueueEntry, error) {
	return s.store.UpdateQueueStatus(ctx, id, model.QueueStatusDone)
}

func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteQueueEntry(ctx, id)
}
