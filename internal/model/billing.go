package model

import (
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodDebit PaymentMethod = "Debit"
	PaymentMethodQRIS  PaymentMethod = "QRIS"
	PaymentMethodCash  PaymentMethod = "Cash"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodDebit, PaymentMethodQRIS, PaymentMethodCash:
		return true
	}
	return false
}

type Insurance string

const (
	InsuranceKIS  Insurance = "KIS"
	InsuranceBPJS Insurance = "BPJS"
	InsuranceNone Insurance = "None"
)

func (i Insurance) Valid() bool {
	switch i {
	case InsuranceKIS, InsuranceBPJS, InsuranceNone:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "Paid"
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// Payment records settlement for a confirmed appointment. Amounts are
// integer rupiah.
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	AppointmentID uuid.UUID     `json:"appointment_id"`
	Amount        int64         `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Insurance     Insurance     `json:"insurance"`
	Status        PaymentStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

type ServiceItem struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

type Invoice struct {
	ID            uuid.UUID     `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	AppointmentID uuid.UUID     `json:"appointment_id"`
	PatientName   string        `json:"patient_name"`
	DoctorName    string        `json:"doctor_name"`
	Items         []ServiceItem `json:"items"`
	Subtotal      int64         `json:"subtotal"`
	Tax           int64         `json:"tax"`
	Total         int64         `json:"total"`
	IssuedAt      time.Time     `json:"issued_at"`
}

// FeeBreakdown is the result of a fee quote.
type FeeBreakdown struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type QuoteRequest struct {
	Items     []ServiceItem `json:"items"`
	Insurance Insurance     `json:"insurance" binding:"required"`
}
