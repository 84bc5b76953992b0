// internal/gateway/inventory/handler.go
package inventory

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-gateway/internal/common/errors"
	"rental-gateway/internal/common/logger"
	"rental-gateway/internal/gateway/respond"
)

const (
	OpGetActiveProductList = "getActiveProductList"
	OpShowActiveProducts   = "showActiveProducts"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"route": "productInventory"}),
	}
}

func (h *Handler) Handle(c *gin.Context) {
	token, operation, ok := respond.TokenAndOperation(c, h.logger)
	if !ok {
		return
	}

	switch operation {
	case OpGetActiveProductList:
		out, err := h.service.ActiveProductList(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpShowActiveProducts:
		out, err := h.service.FormattedActiveProducts(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	default:
		respond.Error(c, h.logger, errors.NewInvalidOperationError(operation))
	}
}
