package billing

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/klinikdev/klinik-api/internal/store"
	"github.com/klinikdev/klinik-api/pkg/errors"
	"github.com/klinikdev/klinik-api/pkg/httputil"
)

// Handler exposes read-only payment and invoice listings; both records
// are only ever written by the booking transaction.
type Handler struct {
	store *store.Store
}

func NewHandler(st *store.Store) *Handler {
	return &Handler{store: st}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/payments", h.ListPayments)
	r.GET("/invoices", h.ListInvoices)
	r.GET("/invoices/:id", h.GetInvoice)
}

func (h *Handler) ListPayments(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.store.Payments())
}

func (h *Handler) ListInvoices(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.store.Invoices())
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, errors.BadRequest("invalid invoice ID", err))
		return
	}

	invoice, ok := h.store.InvoiceByID(id)
	if !ok {
		httputil.RespondWithError(c, errors.NotFound("invoice", nil))
		return
	}
	httputil.RespondWithSuccess(c, invoice)
}
