package model

import "github.com/google/uuid"

// ConfirmBookingRequest is the flat confirmation payload; the wizard
// assembles the same shape from its per-step inputs.
type ConfirmBookingRequest struct {
	DoctorID      uuid.UUID     `json:"doctor_id" binding:"required"`
	Date          string        `json:"date" binding:"required,dateymd"`
	Time          string        `json:"time" binding:"required,hhmm"`
	Type          string        `json:"type" binding:"required"`
	Notes         string        `json:"notes"`
	Patient       PatientInfo   `json:"patient" binding:"required"`
	PaymentMethod PaymentMethod `json:"payment_method" binding:"required"`
	Insurance     Insurance     `json:"insurance" binding:"required"`
}

// BookingResult identifies the records written by a confirmed booking.
type BookingResult struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PaymentID     uuid.UUID `json:"payment_id"`
	InvoiceID     uuid.UUID `json:"invoice_id"`
	PatientID     uuid.UUID `json:"patient_id"`
	InvoiceNumber string    `json:"invoice_number"`
	Total         int64     `json:"total"`
}
