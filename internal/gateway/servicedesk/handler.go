// internal/gateway/servicedesk/handler.go
package servicedesk

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-gateway/internal/common/errors"
	"rental-gateway/internal/common/logger"
	"rental-gateway/internal/gateway/respond"
)

const (
	OpGetServiceRequests   = "getServiceRequests"
	OpShowServiceRequests  = "showServiceRequests"
	OpGetKYCStatus         = "getKYCStatus"
	OpGetDeliverySlots     = "getDeliverySlots"
	OpBookCssSlot          = "bookCssSlot"
	OpRescheduleRequest    = "rescheduleRequest"
	OpCreateRepairTicket   = "createRepairTicket"
	OpCancelServiceRequest = "cancelServiceRequest"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"route": "orderServiceManagement"}),
	}
}

// HandleGet dispatches the read-only operations. A POST-only operation
// arriving on GET is invalid, not misrouted.
func (h *Handler) HandleGet(c *gin.Context) {
	token, operation, ok := respond.TokenAndOperation(c, h.logger)
	if !ok {
		return
	}

	switch operation {
	case OpGetServiceRequests:
		out, err := h.service.ServiceRequests(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpShowServiceRequests:
		out, err := h.service.FormattedServiceRequests(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpGetKYCStatus:
		out, err := h.service.KYCStatus(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	default:
		respond.Error(c, h.logger, errors.NewInvalidOperationError(operation))
	}
}

// HandlePost dispatches the mutating operations. Bodies are decoded
// with numbers preserved so ids pass through to the upstream untouched.
func (h *Handler) HandlePost(c *gin.Context) {
	token, operation, ok := respond.TokenAndOperation(c, h.logger)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		respond.Error(c, h.logger, errors.NewMissingBodyError())
		return
	}

	switch operation {
	case OpGetDeliverySlots:
		data, ok := h.decodeBody(c, body, "orderUniqueId and requestType are required", "orderUniqueId", "requestType")
		if !ok {
			return
		}
		out, err := h.service.DeliverySlots(c.Request.Context(), token, data)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, gin.H{"results": out})

	case OpBookCssSlot:
		data, ok := h.decodeBody(c, body, "serviceRequestId and taskDateTime are required", "serviceRequestId", "taskDateTime")
		if !ok {
			return
		}
		out, err := h.service.BookSlot(c.Request.Context(), token, data)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpRescheduleRequest:
		data, ok := h.decodeBody(c, body, "serviceRequestId and preferredDate are required", "serviceRequestId", "preferredDate")
		if !ok {
			return
		}
		out, err := h.service.Reschedule(c.Request.Context(), token, data)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpCreateRepairTicket:
		var req RepairTicketRequest
		if err := json.Unmarshal(body, &req); err != nil {
			respond.Error(c, h.logger, errors.NewInvalidBodyError(err.Error()))
			return
		}
		if len(req.MediaURLs()) == 0 {
			respond.Error(c, h.logger, errors.NewMissingFieldError("At least one image URL is required"))
			return
		}
		out, err := h.service.CreateRepairTicket(c.Request.Context(), token, &req)
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.JSON(c, http.StatusOK, out)

	case OpCancelServiceRequest:
		data, ok := h.decodeBody(c, body, "serviceRequestId is required in the request body", "serviceRequestId")
		if !ok {
			return
		}
		out, err := h.service.CancelRequest(c.Request.Context(), token, data["serviceRequestId"])
		if err != nil {
			respond.Error(c, h.logger, err)
			return
		}
		respond.Raw(c, http.StatusOK, out)

	default:
		respond.Error(c, h.logger, errors.NewInvalidOperationError(operation))
	}
}

// decodeBody parses the body with UseNumber and enforces that the
// named fields are present and non-empty. Only the named fields are
// returned; anything else the caller sent stays out of the upstream
// payload. On failure it writes the 400 itself and returns ok=false.
func (h *Handler) decodeBody(c *gin.Context, body []byte, missingMsg string, required ...string) (map[string]interface{}, bool) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]interface{}
	if err := dec.Decode(&data); err != nil {
		respond.Error(c, h.logger, errors.NewInvalidBodyError(err.Error()))
		return nil, false
	}

	out := make(map[string]interface{}, len(required))
	for _, field := range required {
		if !hasValue(data, field) {
			respond.Error(c, h.logger, errors.NewMissingFieldError(missingMsg))
			return nil, false
		}
		out[field] = data[field]
	}
	return out, true
}

func hasValue(data map[string]interface{}, field string) bool {
	v, ok := data[field]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return false
	}
	return true
}
