package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

// Room statuses keep the original Indonesian labels used across the clinic.
const (
	RoomStatusAvailable   RoomStatus = "Tersedia"
	RoomStatusOccupied    RoomStatus = "Terisi"
	RoomStatusMaintenance RoomStatus = "Maintenance"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

type Room struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	Capacity       int        `json:"capacity"`
	Floor          string     `json:"floor"`
	Status         RoomStatus `json:"status"`
	CurrentPatient string     `json:"current_patient,omitempty"`
	OccupiedAt     *time.Time `json:"occupied_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RoomHistory is an append-only record of a completed room stay.
type RoomHistory struct {
	ID          uuid.UUID `json:"id"`
	RoomID      uuid.UUID `json:"room_id"`
	RoomName    string    `json:"room_name"`
	PatientName string    `json:"patient_name"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
}

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,gt=0"`
	Floor    string `json:"floor"`
}

type UpdateRoomRequest struct {
	Name     *string     `json:"name"`
	Type     *string     `json:"type"`
	Capacity *int        `json:"capacity"`
	Floor    *string     `json:"floor"`
	Status   *RoomStatus `json:"status"`
}

type CheckInRequest struct {
	PatientName string `json:"patient_name" binding:"required"`
}
