package room

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

// Service manages rooms and their stay history; independent of booking.
type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

func (s *Service) List() []model.Room {
	return s.store.Rooms()
}

func (s *Service) Get(id uuid.UUID) (model.Room, error) {
	room, ok := s.store.RoomByID(id)
	if !ok {
		return model.Room{}, errors.NotFound("room", nil)
	}
	return room, nil
}

func (s *Service) History() []model.RoomHistory {
	return s.store.RoomHistories()
}

func (s *Service) Create(ctx context.Context, req model.CreateRoomRequest) (model.Room, error) {
	now := time.Now()
	room := model.Room{
		ID:        uuid.New(),
		Name:      req.Name,
		Type:      req.Type,
		Capacity:  req.Capacity,
		Floor:     req.Floor,
		Status:    model.RoomStatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddRoom(ctx, room); err != nil {
		return model.Room{}, err
	}
	return room, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req model.UpdateRoomRequest) (model.Room, error) {
	room, ok := s.store.RoomByID(id)
	if !ok {
		return model.Room{}, errors.NotFound("room", nil)
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Type != nil {
		room.Type = *req.Type
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return model.Room{}, errors.BadRequest("invalid room status", nil)
		}
		// An occupied room must name its patient; status changes away
		// from Terisi go through check-out instead.
		if *req.Status == model.RoomStatusOccupied && room.CurrentPatient == "" {
			return model.Room{}, errors.BadRequest("occupied room requires a patient, use check-in", nil)
		}
		room.Status = *req.Status
	}

	if err := s.store.UpdateRoom(ctx, room); err != nil {
		return model.Room{}, err
	}
	updated, _ := s.store.RoomByID(id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	room, ok := s.store.RoomByID(id)
	if !ok {
		return errors.NotFound("room", nil)
	}
	if room.Status == model.RoomStatusOccupied {
		return errors.Conflict("cannot delete an occupied room", nil)
	}
	return s.store.DeleteRoom(ctx, id)
}

func (s *Service) CheckIn(ctx context.Context, id uuid.UUID, patientName string) (model.Room, error) {
	return s.store.CheckInRoom(ctx, id, patientName)
}

func (s *Service) CheckOut(ctx context.Context, id uuid.UUID) (model.RoomHistory, error) {
	return s.store.CheckOutRoom(ctx, id)
}

// VacateAll checks out every occupied room in one operation.
func (s *Service) VacateAll(ctx context.Context) ([]model.RoomHistory, error) {
	return s.store.VacateAllRooms(ctx)
}
