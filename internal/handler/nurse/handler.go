package nurse

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/httputil"
)

type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	nurses := r.Group("/nurses")
	{
		nurses.GET("", h.ListNurses)
		nurses.POST("", h.CreateNurse)
		nurses.PUT("/:id", h.UpdateNurse)
		nurses.DELETE("/:id", h.DeleteNurse)
	}
}

func (h *Handler) ListNurses(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.store.Nurses())
}

func (h *Handler) CreateNurse(c *gin.Context) {
	var req model.CreateNurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	now := time.Now()
	nurse := model.Nurse{
		ID:        uuid.New(),
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Shift:     req.Shift,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.store.AddNurse(c.Request.Context(), nurse); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, nurse)
}

func (h *Handler) UpdateNurse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid nurse ID", err))
		return
	}

	var req model.CreateNurseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	nurse := model.Nurse{
		ID:    id,
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
		Shift: req.Shift,
	}
	if err := h.store.UpdateNurse(c.Request.Context(), nurse); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, nurse)
}

func (h *Handler) DeleteNurse(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid nurse ID", err))
		return
	}

	if err := h.store.DeleteNurse(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "nurse deleted successfully"})
}
