package room_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/persistence"
	"github.com/klinikdev/klinik-api/internal/service/room"
	"github.com/klinikdev/klinik-api/internal/store"
	apperrors "github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/logger"
)

func newRoomService(t *testing.T) *room.Service {
	t.Helper()
	st := store.New(context.Background(), persistence.NewMemoryAdapter(), logger.Discard(), nil)
	return room.NewService(st)
}

func findRoom(t *testing.T, svc *room.Service, name string) model.Room {
	t.Helper()
	for _, r := range svc.List() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("room %s not found", name)
	return model.Room{}
}

func TestUpdateRejectsManualOccupied(t *testing.T) {
	svc := newRoomService(t)
	ctx := context.Background()

	target := findRoom(t, svc, "Ruang Mawar")

	occupied := model.RoomStatusOccupied
	_, err := svc.Update(ctx, target.ID, model.UpdateRoomRequest{Status: &occupied})
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))

	maintenance := model.RoomStatusMaintenance
	updated, err := svc.Update(ctx, target.ID, model.UpdateRoomRequest{Status: &maintenance})
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusMaintenance, updated.Status)
}

func TestDeleteRejectsOccupiedRoom(t *testing.T) {
	svc := newRoomService(t)
	ctx := context.Background()

	target := findRoom(t, svc, "Ruang Melati")
	_, err := svc.CheckIn(ctx, target.ID, "Andi Wijaya")
	require.NoError(t, err)

	err = svc.Delete(ctx, target.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	_, err = svc.CheckOut(ctx, target.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, target.ID))
	assert.Len(t, svc.List(), 2)
}

func TestCreateStartsAvailable(t *testing.T) {
	svc := newRoomService(t)

	created, err := svc.Create(context.Background(), model.CreateRoomRequest{
		Name:     "Ruang Kenanga",
		Type:     "Rawat Inap",
		Capacity: 2,
		Floor:    "3",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusAvailable, created.Status)
	assert.Len(t, svc.List(), 4)
}
