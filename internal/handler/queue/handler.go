package queue

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/service/queue"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/httputil"
)

type Handler struct {
	service *queue.Service
}

func NewHandler(service *queue.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	entries := r.Group("/queue")
	{
		entries.GET("", h.ListQueue)
		entries.POST("", h.AddToQueue)
		entries.POST("/:id/call", h.CallNext)
		entries.POST("/:id/complete", h.Complete)
		entries.DELETE("/:id", h.Remove)
	}
}

func (h *Handler) ListQueue(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.List(c.Query("date")))
}

func (h *Handler) AddToQueue(c *gin.Context) {
	var req model.AddQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	entry, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, entry)
}

func (h *Handler) CallNext(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	entry, err := h.service.Call(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entry)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	entry, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, entry)
}

func (h *Handler) Remove(c *gin.Context) {
	id, ok := entryID(c)
	if !ok {
		return
	}
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "queue entry removed"})
}

func entryID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid queue entry ID", err))
		return uuid.Nil, false
	}
	return id, true
}
