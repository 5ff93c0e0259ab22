package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/errors"
)

// Step identifies one wizard state. The flow is linear; Back walks it in
// reverse and never clears entered values.
type Step string

const (
	StepSelectSpecialty Step = "select_specialty"
	StepSelectDoctor    Step = "select_doctor"
	StepSelectSchedule  Step = "select_schedule"
	StepPatientInfo     Step = "patient_info"
	StepPayment         Step = "payment"
	StepConfirmation    Step = "confirmation"
)

var stepOrder = []Step{
	StepSelectSpecialty,
	StepSelectDoctor,
	StepSelectSchedule,
	StepPatientInfo,
	StepPayment,
	StepConfirmation,
}

// Session is one booking attempt in flight. Abandonment is modeled by
// cache expiry and has no side effects; records are only written on
// explicit confirmation.
type Session struct {
	ID            uuid.UUID           `json:"id"`
	Step          Step                `json:"step"`
	Specialty     string              `json:"specialty,omitempty"`
	DoctorID      uuid.UUID           `json:"doctor_id,omitempty"`
	DoctorName    string              `json:"doctor_name,omitempty"`
	Date          string              `json:"date,omitempty"`
	Time          string              `json:"time,omitempty"`
	Type          string              `json:"type,omitempty"`
	Notes         string              `json:"notes,omitempty"`
	Patient       model.PatientInfo   `json:"patient"`
	PatientLocked bool                `json:"patient_locked"`
	PatientID     *uuid.UUID          `json:"patient_id,omitempty"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
	Insurance     model.Insurance     `json:"insurance"`
	Fee           *model.FeeBreakdown `json:"fee,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// ScheduleSelection carries the slot choice plus the optional contact
// identifiers used to pre-fill the patient step.
type ScheduleSelection struct {
	Date  string `json:"date" binding:"required,dateymd"`
	Time  string `json:"time" binding:"required,hhmm"`
	Type  string `json:"type"`
	Notes string `json:"notes"`
	Email string `json:"email" binding:"omitempty,email"`
	Phone string `json:"phone"`
}

// PaymentSelection defaults to Cash without insurance when left empty.
type PaymentSelection struct {
	Method    model.PaymentMethod `json:"method"`
	Insurance model.Insurance     `json:"insurance"`
}

// Wizard drives booking sessions through the step-gated flow. Sessions
// live in an expiring cache; every touch refreshes the TTL.
type Wizard struct {
	sessions *cache.Cache
	store    *store.Store
	svc      *Service
	ttl      time.Duration
}

func NewWizard(st *store.Store, svc *Service, sessionTTL time.Duration) *Wizard {
	return &Wizard{
		sessions: cache.New(sessionTTL, sessionTTL/2),
		store:    st,
		svc:      svc,
		ttl:      sessionTTL,
	}
}

// Start opens a new session at the first step with payment defaults
// already applied.
func (w *Wizard) Start() Session {
	sess := Session{
		ID:            uuid.New(),
		Step:          StepSelectSpecialty,
		PaymentMethod: model.PaymentMethodCash,
		Insurance:     model.InsuranceNone,
		CreatedAt:     time.Now(),
	}
	w.put(sess)
	if w.svc.metrics != nil {
		w.svc.metrics.WizardSessions.Inc()
	}
	return sess
}

func (w *Wizard) Get(id uuid.UUID) (Session, error) {
	v, ok := w.sessions.Get(id.String())
	if !ok {
		return Session{}, errors.NotFound("booking session", nil)
	}
	return v.(Session), nil
}

func (w *Wizard) put(sess Session) {
	w.sessions.Set(sess.ID.String(), sess, w.ttl)
}

func (w *Wizard) at(id uuid.UUID, step Step) (Session, error) {
	sess, err := w.Get(id)
	if err != nil {
		return Session{}, err
	}
	if sess.Step != step {
		return Session{}, errors.BadRequest(
			fmt.Sprintf("session is at step %s, expected %s", sess.Step, step), nil)
	}
	return sess, nil
}

// ChooseSpecialty requires a specialty chosen from the distinct
// specialties among known doctors.
func (w *Wizard) ChooseSpecialty(id uuid.UUID, specialty string) (Session, error) {
	sess, err := w.at(id, StepSelectSpecialty)
	if err != nil {
		return Session{}, err
	}
	if specialty == "" {
		return Session{}, errors.Validation("specialty")
	}

	known := false
	for _, s := range w.store.Specialties() {
		if s == specialty {
			known = true
			break
		}
	}
	if !known {
		return Session{}, errors.BadRequest(fmt.Sprintf("unknown specialty %q", specialty), nil)
	}

	sess.Specialty = specialty
	sess.Step = StepSelectDoctor
	w.put(sess)
	return sess, nil
}

// ChooseDoctor requires a doctor belonging to the chosen specialty.
func (w *Wizard) ChooseDoctor(id, doctorID uuid.UUID) (Session, error) {
	sess, err := w.at(id, StepSelectDoctor)
	if err != nil {
		return Session{}, err
	}

	doctor, ok := w.store.DoctorByID(doctorID)
	if !ok {
		return Session{}, errors.NotFound("doctor", nil)
	}
	if doctor.Specialty != sess.Specialty {
		return Session{}, errors.BadRequest(
			fmt.Sprintf("doctor %s is not a %s specialist", doctor.Name, sess.Specialty), nil)
	}

	sess.DoctorID = doctor.ID
	sess.DoctorName = doctor.Name
	sess.Step = StepSelectSchedule
	w.put(sess)
	return sess, nil
}

// ChooseSchedule requires a non-empty date and time. When the contact
// identifiers match an existing patient, the patient step is pre-filled
// from the record and its fields are locked.
func (w *Wizard) ChooseSchedule(id uuid.UUID, sel ScheduleSelection) (Session, error) {
	sess, err := w.at(id, StepSelectSchedule)
	if err != nil {
		return Session{}, err
	}

	var missing []string
	if sel.Date == "" {
		missing = append(missing, "date")
	}
	if sel.Time == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return Session{}, errors.Validation(missing...)
	}

	sess.Date = sel.Date
	sess.Time = sel.Time
	sess.Type = sel.Type
	if sess.Type == "" {
		sess.Type = "Konsultasi"
	}
	sess.Notes = sel.Notes
	if sel.Email != "" {
		sess.Patient.Email = sel.Email
	}
	if sel.Phone != "" {
		sess.Patient.Phone = sel.Phone
	}

	w.adoptExistingPatient(&sess)
	sess.Step = StepPatientInfo
	w.put(sess)
	return sess, nil
}

// SetPatientInfo requires name, age, gender and phone. A match on the
// entered contact identifiers re-locks the session onto the existing
// record; locked fields keep the stored values.
func (w *Wizard) SetPatientInfo(id uuid.UUID, info model.PatientInfo) (Session, error) {
	sess, err := w.at(id, StepPatientInfo)
	if err != nil {
		return Session{}, err
	}

	if !sess.PatientLocked {
		sess.Patient = info
	} else {
		// Read-only demographics; contact identifiers may still be corrected.
		if info.Email != "" {
			sess.Patient.Email = info.Email
		}
		if info.Phone != "" {
			sess.Patient.Phone = info.Phone
		}
	}
	w.adoptExistingPatient(&sess)

	var missing []string
	if sess.Patient.Name == "" {
		missing = append(missing, "name")
	}
	if sess.Patient.Age <= 0 {
		missing = append(missing, "age")
	}
	if sess.Patient.Gender == "" {
		missing = append(missing, "gender")
	}
	if sess.Patient.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return Session{}, errors.Validation(missing...)
	}

	sess.Step = StepPayment
	w.put(sess)
	return sess, nil
}

// SetPayment always advances; method and insurance have defaults.
func (w *Wizard) SetPayment(id uuid.UUID, sel PaymentSelection) (Session, error) {
	sess, err := w.at(id, StepPayment)
	if err != nil {
		return Session{}, err
	}

	if sel.Method != "" {
		if !sel.Method.Valid() {
			return Session{}, errors.BadRequest(fmt.Sprintf("unknown payment method %q", sel.Method), nil)
		}
		sess.PaymentMethod = sel.Method
	}
	if sel.Insurance != "" {
		if !sel.Insurance.Valid() {
			return Session{}, errors.BadRequest(fmt.Sprintf("unknown insurance %q", sel.Insurance), nil)
		}
		sess.Insurance = sel.Insurance
	}

	fee := CalculateFee(DefaultItems(), sess.Insurance)
	sess.Fee = &fee
	sess.Step = StepConfirmation
	w.put(sess)
	return sess, nil
}

// Back returns to the previous step, preserving everything entered so
// far. It is rejected at the first step.
func (w *Wizard) Back(id uuid.UUID) (Session, error) {
	sess, err := w.Get(id)
	if err != nil {
		return Session{}, err
	}
	for i, step := range stepOrder {
		if step != sess.Step {
			continue
		}
		if i == 0 {
			return Session{}, errors.BadRequest("already at the first step", nil)
		}
		sess.Step = stepOrder[i-1]
		w.put(sess)
		return sess, nil
	}
	return Session{}, errors.BadRequest(fmt.Sprintf("unknown step %s", sess.Step), nil)
}

// Confirm runs the booking transaction and discards the session on
// success; on failure the session stays at the confirmation step.
func (w *Wizard) Confirm(ctx context.Context, id uuid.UUID) (model.BookingResult, error) {
	sess, err := w.at(id, StepConfirmation)
	if err != nil {
		return model.BookingResult{}, err
	}

	result, err := w.svc.Confirm(ctx, model.ConfirmBookingRequest{
		DoctorID:      sess.DoctorID,
		Date:          sess.Date,
		Time:          sess.Time,
		Type:          sess.Type,
		Notes:         sess.Notes,
		Patient:       sess.Patient,
		PaymentMethod: sess.PaymentMethod,
		Insurance:     sess.Insurance,
	})
	if err != nil {
		return model.BookingResult{}, err
	}

	w.sessions.Delete(id.String())
	return result, nil
}

func (w *Wizard) adoptExistingPatient(sess *Session) {
	existing, ok := w.store.LookupPatient(sess.Patient.Email, sess.Patient.Phone)
	if !ok {
		sess.PatientLocked = false
		sess.PatientID = nil
		return
	}
	sess.Patient = model.PatientInfo{
		Name:      existing.Name,
		Age:       existing.Age,
		Gender:    existing.Gender,
		Phone:     existing.Phone,
		Email:     existing.Email,
		Address:   existing.Address,
		BloodType: existing.BloodType,
	}
	sess.PatientLocked = true
	patientID := existing.ID
	sess.PatientID = &patientID
}
