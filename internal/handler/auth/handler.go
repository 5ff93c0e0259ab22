package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/klinikdev/klinik-api/internal/model"
	"github.com/klinikdev/klinik-api/internal/service/auth"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/httputil"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, errors.BadRequest(err.Error(), err))
		return
	}

	token, err := h.service.Login(req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, token)
}
