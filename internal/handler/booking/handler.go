package booking

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/service/booking"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/httputil"
)

type Handler struct {
	service *booking.Service
	wizard  *booking.Wizard
}

func NewHandler(service *booking.Service, wizard *booking.Wizard) *Handler {
	return &Handler{service: service, wizard: wizard}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/specialties", h.ListSpecialties)

	bookings := r.Group("/booking")
	{
		bookings.POST("/resolve-patient", h.ResolvePatient)
		bookings.POST("/quote", h.Quote)
		bookings.POST("/confirm", h.Confirm)

		sessions := bookings.Group("/sessions")
		{
			sessions.POST("", h.StartSession)
			sessions.GET("/:id", h.GetSession)
			sessions.POST("/:id/specialty", h.ChooseSpecialty)
			sessions.POST("/:id/doctor", h.ChooseDoctor)
			sessions.POST("/:id/schedule", h.ChooseSchedule)
			sessions.POST("/:id/patient", h.SetPatientInfo)
			sessions.POST("/:id/payment", h.SetPayment)
			sessions.POST("/:id/back", h.Back)
			sessions.POST("/:id/confirm", h.ConfirmSession)
		}
	}
}

func (h *Handler) ListSpecialties(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.ListSpecialties())
}

func (h *Handler) ResolvePatient(c *gin.Context) {
	var req model.ResolvePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	patient, err := h.service.ResolvePatient(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patient)
}

func (h *Handler) Quote(c *gin.Context) {
	var req model.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	fee, err := h.service.Quote(req.Items, req.Insurance)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, fee)
}

// Confirm is the flat, non-wizard booking path.
func (h *Handler) Confirm(c *gin.Context) {
	var req model.ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	result, err := h.service.Confirm(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, result)
}

func (h *Handler) StartSession(c *gin.Context) {
	httputil.RespondWithCreated(c, h.wizard.Start())
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.wizard.Get(id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) ChooseSpecialty(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req struct {
		Specialty string `json:"specialty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	sess, err := h.wizard.ChooseSpecialty(id, req.Specialty)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) ChooseDoctor(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req struct {
		DoctorID uuid.UUID `json:"doctor_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	sess, err := h.wizard.ChooseDoctor(id, req.DoctorID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) ChooseSchedule(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req booking.ScheduleSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	sess, err := h.wizard.ChooseSchedule(id, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) SetPatientInfo(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req model.PatientInfo
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	sess, err := h.wizard.SetPatientInfo(id, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) SetPayment(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req booking.PaymentSelection
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	sess, err := h.wizard.SetPayment(id, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) Back(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	sess, err := h.wizard.Back(id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, sess)
}

func (h *Handler) ConfirmSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	result, err := h.wizard.Confirm(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, result)
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid session ID", err))
		return uuid.Nil, false
	}
	return id, true
}
