// internal/gateway/billing/handler.go
package billing

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-gateway/internal/common/errors"
	"rental-gateway/internal/common/logger"
	"rental-gateway/internal/gateway/respond"
)

const (
	OpGetRentalDue   = "getRentalDue"
	OpPendingDues    = "pendingDues"
	OpGetInvoices    = "getInvoices"
	OpGetUserInvoice = "getUserInvoice"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"route": "billingAndPayments"}),
	}
}

// Handle dispatches one billing operation. The token and operation
// guards run before the body is even looked at.
func (h *Handler) Handle(c *gin.Context) {
	token, operation, ok := respond.TokenAndOperation(c, h.logger)
	if !ok {
		return
	}

	// Body is optional; only some operations carry identifiers.
	var req Request
	_ = c.ShouldBindJSON(&req)

	switch operation {
	case OpGetRentalDue:
		out, err := h.service.RentalDue(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpPendingDues:
		if req.UserID.String() == "" {
			respond.Error(c, h.logger, errors.NewMissingFieldError("userId is required in the body"))
			return
		}
		out, err := h.service.PendingDues(c.Request.Context(), token, req.UserID.String())
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpGetInvoices:
		out, err := h.service.Invoices(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpGetUserInvoice:
		if req.UserID.String() == "" || req.InvoiceID.String() == "" {
			respond.Error(c, h.logger, errors.NewMissingFieldError("userId and invoiceId are required in the body"))
			return
		}
		out, err := h.service.UserInvoice(c.Request.Context(), token, req.UserID.String(), req.InvoiceID.String())
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	default:
		respond.Error(c, h.logger, errors.NewInvalidOperationError(operation))
	}
}
