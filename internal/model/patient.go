package model

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Age                 int       `json:"age"`
	Gender              string    `json:"gender"`
	Phone               string    `json:"phone"`
	Email               string    `json:"email"`
	Address             string    `json:"address"`
	BloodType           string    `json:"blood_type"`
	MedicalRecordNumber string    `json:"medical_record_number"`
	IsNewPatient        bool      `json:"is_new_patient"`
	RegistrationDate    time.Time `json:"registration_date"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// PatientInfo is the demographic payload entered during booking. Contact
// identifiers (email, phone) drive patient resolution.
type PatientInfo struct {
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	BloodType string `json:"blood_type"`
}

type CreatePatientRequest struct {
	Name      string `json:"name" binding:"required"`
	Age       int    `json:"age" binding:"required,gt=0"`
	Gender    string `json:"gender" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Address   string `json:"address"`
	BloodType string `json:"blood_type"`
}

type UpdatePatientRequest struct {
	Name      *string `json:"name"`
	Age       *int    `json:"age"`
	Gender    *string `json:"gender"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Address   *string `json:"address"`
	BloodType *string `json:"blood_type"`
}

type ResolvePatientRequest struct {
	Email   string      `json:"email" binding:"omitempty,email"`
	Phone   string      `json:"phone"`
	Patient PatientInfo `json:"patient"`
}
