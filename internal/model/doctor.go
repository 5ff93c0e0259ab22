package model

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry is one weekly working window for a doctor.
type ScheduleEntry struct {
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type Doctor struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Specialty string          `json:"specialty"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Schedule  []ScheduleEntry `json:"schedule"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type CreateDoctorRequest struct {
	Name      string          `json:"name" binding:"required"`
	Specialty string          `json:"specialty" binding:"required"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email" binding:"omitempty,email"`
	Schedule  []ScheduleInput `json:"schedule" binding:"dive"`
}

type UpdateDoctorRequest struct {
	Name      *string         `json:"name"`
	Specialty *string         `json:"specialty"`
	Phone     *string         `json:"phone"`
	Email     *string         `json:"email" binding:"omitempty,email"`
	Schedule  []ScheduleInput `json:"schedule" binding:"omitempty,dive"`
}

type ScheduleInput struct {
	Day       string `json:"day" binding:"required"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
}

type Nurse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Shift     string    `json:"shift"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateNurseRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email" binding:"omitempty,email"`
	Shift string `json:"shift" binding:"omitempty,oneof=Pagi Siang Malam"`
}
