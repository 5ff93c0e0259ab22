package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"sync"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/persistence"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/logger"
	"github.com/klinikdev/klinik-api/pkg/metrics"
)

// Collection keys used with the persistence adapter.
const (
	KeyPatients     = "patients"
	KeyDoctors      = "doctors"
	KeyNurses       = "nurses"
	KeyRooms        = "rooms"
	KeyAppointments = "appointments"
	KeyPayments     = "payments"
	KeyInvoices     = "invoices"
	KeyRoomHistory  = "room_history"
	KeyQueue        = "queue"
)

// Store owns the lifetime of every entity collection. All mutation goes
// through its typed methods; the mutex is the single serialization point
// across concurrent requests. Every mutation writes the affected
// collections through the adapter and rolls the in-memory state back if
// the write fails.
type Store struct {
	mu      sync.RWMutex
	adapter persistence.Adapter
	log     *logger.Logger
	metrics *metrics.Metrics

	patients     []model.Patient
	doctors      []model.Doctor
	nurses       []model.Nurse
	rooms        []model.Room
	appointments []model.Appointment
	payments     []model.Payment
	invoices     []model.Invoice
	roomHistory  []model.RoomHistory
	queue        []model.QueueEntry
}

// New loads every collection from the adapter, falling back to the seed
// dataset when a collection is absent or fails to parse. Load problems are
// logged and never propagated.
func New(ctx context.Context, adapter persistence.Adapter, log *logger.Logger, m *metrics.Metrics) *Store {
	s := &Store{
		adapter: adapter,
		log:     log,
		metrics: m,
	}

	s.patients = loadCollection(ctx, s, KeyPatients, seedPatients())
	s.doctors = loadCollection(ctx, s, KeyDoctors, seedDoctors())
	s.nurses = loadCollection(ctx, s, KeyNurses, seedNurses())
	s.rooms = loadCollection(ctx, s, KeyRooms, seedRooms())
	s.appointments = loadCollection(ctx, s, KeyAppointments, []model.Appointment{})
	s.payments = loadCollection(ctx, s, KeyPayments, []model.Payment{})
	s.invoices = loadCollection(ctx, s, KeyInvoices, []model.Invoice{})
	s.roomHistory = loadCollection(ctx, s, KeyRoomHistory, []model.RoomHistory{})
	s.queue = loadCollection(ctx, s, KeyQueue, []model.QueueEntry{})

	return s
}

func loadCollection[T any](ctx context.Context, s *Store, key string, seed []T) []T {
	data, err := s.adapter.Load(ctx, key)
	if err != nil {
		if !stderrors.Is(err, persistence.ErrNotFound) {
			s.log.Error(err, "failed to load collection, using seed", "collection", key)
		}
		return seed
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Error(err, "failed to parse collection, using seed", "collection", key)
		return seed
	}
	return items
}

// persist writes one collection through the adapter. Callers hold the
// write lock and are responsible for rolling back on error.
func persist[T any](ctx context.Context, s *Store, key string, items []T) error {
	data, err := json.Marshal(items)
	if err != nil {
		return errors.Internal(err)
	}
	if err := s.adapter.Save(ctx, key, data); err != nil {
		if s.metrics != nil {
			s.metrics.PersistenceFailures.WithLabelValues(key).Inc()
		}
		return errors.Persistence(key, err)
	}
	if s.metrics != nil {
		s.metrics.PersistenceWrites.WithLabelValues(key).Inc()
	}
	return nil
}

func clone[T any](items []T) []T {
	cp := make([]T, len(items))
	copy(cp, items)
	return cp
}
