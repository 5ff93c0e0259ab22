package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

func (s *Store) Rooms() []model.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.rooms)
}

func (s *Store) RoomByID(id uuid.UUID) (model.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return model.Room{}, false
}

func (s *Store) RoomHistories() []model.RoomHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.roomHistory)
}

func (s *Store) AddRoom(ctx context.Context, room model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.rooms
	s.rooms = append(clone(s.rooms), room)
	if err := persist(ctx, s, KeyRooms, s.rooms); err != nil {
		s.rooms = prev
		return err
	}
	return nil
}

func (s *Store) UpdateRoom(ctx context.Context, room model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.roomIndexLocked(room.ID)
	if idx < 0 {
		return errors.NotFound("room", nil)
	}

	prev := s.rooms
	next := clone(s.rooms)
	room.CreatedAt = prev[idx].CreatedAt
	room.UpdatedAt = time.Now()
	next[idx] = room

	s.rooms = next
	if err := persist(ctx, s, KeyRooms, s.rooms); err != nil {
		s.rooms = prev
		return err
	}
	return nil
}

func (s *Store) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.rooms
	next := make([]model.Room, 0, len(prev))
	found := false
	for _, r := range prev {
		if r.ID == id {
			found = true
			continue
		}
		next = append(next, r)
	}
	if !found {
		return errors.NotFound("room", nil)
	}

	s.rooms = next
	if err := persist(ctx, s, KeyRooms, s.rooms); err != nil {
		s.rooms = prev
		return err
	}
	return nil
}

// CheckInRoom marks an available room occupied by the named patient.
func (s *Store) CheckInRoom(ctx context.Context, id uuid.UUID, patientName string) (model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.roomIndexLocked(id)
	if idx < 0 {
		return model.Room{}, errors.NotFound("room", nil)
	}
	if s.rooms[idx].Status != model.RoomStatusAvailable {
		return model.Room{}, errors.Conflict("room is not available", nil)
	}

	now := time.Now()
	prev := s.rooms
	next := clone(s.rooms)
	next[idx].Status = model.RoomStatusOccupied
	next[idx].CurrentPatient = patientName
	next[idx].OccupiedAt = &now
	next[idx].UpdatedAt = now

	s.rooms = next
	if err := persist(ctx, s, KeyRooms, s.rooms); err != nil {
		s.rooms = prev
		return model.Room{}, err
	}
	return s.rooms[idx], nil
}

// CheckOutRoom vacates an occupied room and appends the stay to the
// room history in the same critical section.
func (s *Store) CheckOutRoom(ctx context.Context, id uuid.UUID) (model.RoomHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.roomIndexLocked(id)
	if idx < 0 {
		return model.RoomHistory{}, errors.NotFound("room", nil)
	}
	if s.rooms[idx].Status != model.RoomStatusOccupied {
		return model.RoomHistory{}, errors.Conflict("room is not occupied", nil)
	}

	now := time.Now()
	entry := historyFor(s.rooms[idx], now)

	prevRooms := s.rooms
	prevHistory := s.roomHistory

	next := clone(s.rooms)
	next[idx].Status = model.RoomStatusAvailable
	next[idx].CurrentPatient = ""
	next[idx].OccupiedAt = nil
	next[idx].UpdatedAt = now
	s.rooms = next
	s.roomHistory = append(clone(s.roomHistory), entry)

	if err := persist(ctx, s, KeyRooms, s.rooms); err != nil {
		s.rooms = prevRooms
		s.roomHistory = prevHistory
		return model.RoomHistory{}, err
	}
	if err := persist(ctx, s, KeyRoomHistory, s.roomHistory); err != nil {
		s.rooms = prevRooms
		s.roomHistory = prevHistory
		if restoreErr := persist(ctx, s, KeyRooms, s.rooms); restoreErr != nil {
			return model.RoomHistory{}, errors.PartialCommit(restoreErr)
		}
		return model.RoomHistory{}, err
	}
	return entry, nil
}

// VacateAllRooms checks out every occupied room at once, appending one
// history entry per vacated room.
func (s *Store) VacateAllRooms(ctx context.Context) ([]model.RoomHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	prevRooms := s.rooms
	prevHistory := s.roomHistory

	next := clone(s.rooms)
	var entries []model.RoomHistory
	for i := range next {
		if next[i].Status != model.RoomStatusOccupied {
			continue
		}
		entries = append(entries, historyFor(next[i], now))
		next[i].Status = model.RoomStatusAvailable
		next[i].CurrentPatient = ""
		next[i].OccupiedAt = nil
		next[i].UpdatedAt = now
	}
	if len(entries) == 0 {
		return nil, nil
	}

	s.rooms = next
	s.roomHistory = append(clone(s.roomHistory), entries...)

	if err := persist(ctx, s, KeyRooms, s.rooms); err != nil {
		s.rooms = prevRooms
		s.roomHistory = prevHistory
		return nil, err
	}
	if err := persist(ctx, s, KeyRoomHistory, s.roomHistory); err != nil {
		s.rooms = prevRooms
		s.roomHistory = prevHistory
		if restoreErr := persist(ctx, s, KeyRooms, s.rooms); restoreErr != nil {
			return nil, errors.PartialCommit(restoreErr)
		}
		return nil, err
	}
	return entries, nil
}

func historyFor(room model.Room, checkOut time.Time) model.RoomHistory {
	checkIn := checkOut
	if room.OccupiedAt != nil {
		checkIn = *room.OccupiedAt
	}
	return model.RoomHistory{
		ID:          uuid.New(),
		RoomID:      room.ID,
		RoomName:    room.Name,
		PatientName: room.CurrentPatient,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
	}
}

func (s *Store) roomIndexLocked(id uuid.UUID) int {
	for i, r := range s.rooms {
		if r.ID == id {
			return i
		}
	}
	return -1
}
