package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/klinikdev/klinik-api/internal/model"
)

// Service sends patient-facing mail. Delivery failures never fail the
// triggering operation; callers log and move on.
type Service interface {
	SendBookingConfirmation(ctx context.Context, to string, invoice model.Invoice, appointment model.Appointment) error
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

type smtpService struct {
	cfg SMTPConfig
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{cfg: cfg}
}

func (s *smtpService) SendBookingConfirmation(_ context.Context, to string, invoice model.Invoice, appointment model.Appointment) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Konfirmasi Janji Temu %s", appointment.Date))
	m.SetBody("text/plain", fmt.Sprintf(
		"Halo %s,\n\nJanji temu Anda dengan %s pada %s pukul %s telah terkonfirmasi.\n"+
			"Nomor invoice: %s\nTotal: Rp %d\n\nTerima kasih.",
		appointment.PatientName,
		appointment.DoctorName,
		appointment.Date,
		appointment.Time,
		invoice.InvoiceNumber,
		invoice.Total,
	))

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}
	return nil
}

type noopService struct{}

// NewNoopService is used when SMTP is not configured.
func NewNoopService() Service {
	return noopService{}
}

func (noopService) SendBookingConfirmation(context.Context, string, model.Invoice, model.Appointment) error {
	return nil
}
