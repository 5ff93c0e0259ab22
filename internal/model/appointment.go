package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Valid reports whether the status is one of the known values.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from the status.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

type Appointment struct {
	ID          uuid.UUID         `json:"id"`
	PatientID   uuid.UUID         `json:"patient_id"`
	PatientName string            `json:"patient_name"`
	DoctorID    uuid.UUID         `json:"doctor_id"`
	DoctorName  string            `json:"doctor_name"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Type        string            `json:"type"`
	Notes       string            `json:"notes,omitempty"`
	Status      AppointmentStatus `json:"status"`
	PaymentID   *uuid.UUID        `json:"payment_id,omitempty"`
	InvoiceID   *uuid.UUID        `json:"invoice_id,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type UpdateAppointmentStatusRequest struct {
	Status AppointmentStatus `json:"status" binding:"required"`
}

type AppointmentFilters struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Status    AppointmentStatus
	Date      string
}
