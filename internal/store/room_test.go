package store_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
	apperrors "github.com/klinikdev/klinik-api/pkg/errors"
)

func roomByName(t *testing.T, st *store.Store, name string) model.Room {
	t.Helper()
	for _, r := range st.Rooms() {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("room %s not found", name)
	return model.Room{}
}

func TestRoomCheckInCheckOut(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	room := roomByName(t, st, "Ruang Mawar")

	occupied, err := st.CheckInRoom(ctx, room.ID, "Andi Wijaya")
	require.NoError(t, err)
	assert.Equal(t, model.RoomStatusOccupied, occupied.Status)
	assert.Equal(t, "Andi Wijaya", occupied.CurrentPatient)
	require.NotNil(t, occupied.OccupiedAt)

	// Occupied room cannot take a second patient.
	_, err = st.CheckInRoom(ctx, room.ID, "Dewi Lestari")
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))

	entry, err := st.CheckOutRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.ID, entry.RoomID)
	assert.Equal(t, "Andi Wijaya", entry.PatientName)
	assert.False(t, entry.CheckOut.Before(entry.CheckIn))

	vacated, ok := st.RoomByID(room.ID)
	require.True(t, ok)
	assert.Equal(t, model.RoomStatusAvailable, vacated.Status)
	assert.Empty(t, vacated.CurrentPatient)
	assert.Nil(t, vacated.OccupiedAt)

	require.Len(t, st.RoomHistories(), 1)

	_, err = st.CheckOutRoom(ctx, room.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestCheckInRejectsUnavailableRoom(t *testing.T) {
	st, _ := newTestStore(t)

	maintenance := roomByName(t, st, "Ruang Anggrek")
	_, err := st.CheckInRoom(context.Background(), maintenance.ID, "Andi Wijaya")
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestVacateAllRooms(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	mawar := roomByName(t, st, "Ruang Mawar")
	melati := roomByName(t, st, "Ruang Melati")

	_, err := st.CheckInRoom(ctx, mawar.ID, "Andi Wijaya")
	require.NoError(t, err)
	_, err = st.CheckInRoom(ctx, melati.ID, "Dewi Lestari")
	require.NoError(t, err)

	entries, err := st.VacateAllRooms(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	for _, r := range st.Rooms() {
		assert.NotEqual(t, model.RoomStatusOccupied, r.Status)
	}
	assert.Len(t, st.RoomHistories(), 2)

	// Nothing occupied, nothing to do.
	entries, err = st.VacateAllRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCheckOutRollsBackOnHistoryWriteFailure(t *testing.T) {
	st, adapter := newTestStore(t)
	ctx := context.Background()

	room := roomByName(t, st, "Ruang Mawar")
	_, err := st.CheckInRoom(ctx, room.ID, "Andi Wijaya")
	require.NoError(t, err)

	adapter.FailOn = func(key string) error {
		if key == store.KeyRoomHistory {
			return stderrors.New("disk full")
		}
		return nil
	}

	_, err = st.CheckOutRoom(ctx, room.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrPersistence))

	still, ok := st.RoomByID(room.ID)
	require.True(t, ok)
	assert.Equal(t, model.RoomStatusOccupied, still.Status)
	assert.Empty(t, st.RoomHistories())
}

func TestQueueNumberingPerDate(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	first, err := st.AddQueueEntry(ctx, "2026-09-01", "Andi Wijaya", "dr. Budi Hartono")
	require.NoError(t, err)
	second, err := st.AddQueueEntry(ctx, "2026-09-01", "Dewi Lestari", "")
	require.NoError(t, err)
	other, err := st.AddQueueEntry(ctx, "2026-09-02", "Rudi Hermawan", "")
	require.NoError(t, err)

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 1, other.Number)
	assert.Equal(t, model.QueueStatusWaiting, first.Status)

	// Numbers keep climbing even after earlier entries are removed.
	require.NoError(t, st.DeleteQueueEntry(ctx, first.ID))
	third, err := st.AddQueueEntry(ctx, "2026-09-01", "Citra Ayu", "")
	require.NoError(t, err)
	assert.Equal(t, 3, third.Number)

	assert.Len(t, st.QueueEntries("2026-09-01"), 2)
	assert.Len(t, st.QueueEntries(""), 3)

	called, err := st.UpdateQueueStatus(ctx, second.ID, model.QueueStatusCalled)
	require.NoError(t, err)
	assert.Equal(t, model.QueueStatusCalled, called.Status)
}
