package model

import (
	"time"

	"github.com/google/uuid"
)

type QueueStatus string

const (
	QueueStatusWaiting QueueStatus = "Waiting"
	QueueStatusCalled  QueueStatus = "Called"
	QueueStatusDone    QueueStatus = "Done"
)

// QueueEntry is one position in the daily walk-in queue.
type QueueEntry struct {
	ID          uuid.UUID   `json:"id"`
	Number      int         `json:"number"`
	Date        string      `json:"date"`
	PatientName string      `json:"patient_name"`
	DoctorName  string      `json:"doctor_name,omitempty"`
	Status      QueueStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

type AddQueueRequest struct {
	PatientName string `json:"patient_name" binding:"required"`
	DoctorName  string `json:"doctor_name"`
}
