package room

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/service/room"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/httputil"
)

type Handler struct {
	service *room.Service
}

func NewHandler(service *room.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	rooms := r.Group("/rooms")
	{
		rooms.POST("", h.CreateRoom)
		rooms.GET("", h.ListRooms)
		rooms.GET("/history", h.ListHistory)
		rooms.POST("/vacate-all", h.VacateAll)
		rooms.GET("/:id", h.GetRoom)
		rooms.PUT("/:id", h.UpdateRoom)
		rooms.DELETE("/:id", h.DeleteRoom)
		rooms.POST("/:id/check-in", h.CheckIn)
		rooms.POST("/:id/check-out", h.CheckOut)
	}
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req model.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) ListRooms(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.List())
}

func (h *Handler) ListHistory(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.History())
}

func (h *Handler) GetRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	rm, err := h.service.Get(id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rm)
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	var req model.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) DeleteRoom(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "room deleted successfully"})
}

func (h *Handler) CheckIn(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	var req model.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	rm, err := h.service.CheckIn(c.Request.Context(), id, req.PatientName)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, rm)
}

func (h *Handler) CheckOut(c *gin.Context) {
	id, ok := roomID(c)
	if !ok {
		return
	}
	entry, err := h.service.CheckOut(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entry)
}

func (h *Handler) VacateAll(c *gin.Context) {
	entries, err := h.service.VacateAll(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entries)
}

func roomID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid room ID", err))
		return uuid.Nil, false
	}
	return id, true
}
