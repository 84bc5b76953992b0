// internal/gateway/escalation/handler.go
package escalation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-gateway/internal/clients/sheety"
	"rental-gateway/internal/common/errors"
	"rental-gateway/internal/common/logger"
	"rental-gateway/internal/gateway/respond"
)

type Handler struct {
	service *Service
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log.WithFields(map[string]interface{}{"route": "escalation"}),
	}
}

// Handle routes one escalation event. The spreadsheet backend is
// unauthenticated, so unlike the other routes there is no token guard.
func (h *Handler) Handle(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		respond.Error(c, h.logger, errors.NewMissingBodyError())
		return
	}

	if err := ValidateBody(body); err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	input, err := parseInput(body)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	workingHours := h.service.WorkingHours(h.service.now())

	// Field presence depends on the path: the off-hours log only needs
	// the conversation; the live path also needs the service request.
	if input.ConversationID == "" {
		if workingHours {
			respond.Error(c, h.logger, errors.NewMissingFieldError("conversationId and servicerequestId are required in the body"))
		} else {
			respond.Error(c, h.logger, errors.NewMissingFieldError("conversationId is required in the body"))
		}
		return
	}
	if workingHours && input.ServiceRequestID == "" {
		respond.Error(c, h.logger, errors.NewMissingFieldError("conversationId and servicerequestId are required in the body"))
		return
	}

	outcome, err := h.service.Escalate(c.Request.Context(), input, workingHours)
	if err != nil {
		respond.Error(c, h.logger, err)
		return
	}

	if outcome.EmailSent {
		respond.JSON(c, http.StatusOK, gin.H{
			"message":   "Email sent successfully for existing service request",
			"emailData": outcome.Email,
		})
		return
	}
	respond.Raw(c, http.StatusOK, outcome.Sheet)
}

// parseInput decodes the body preserving numbers as json.Number so ids
// survive untouched into sheet rows and email variables.
func parseInput(body []byte) (*Input, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw sheety.Row
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.NewMissingBodyError()
	}

	input := &Input{Raw: raw}
	input.ConversationID = stringField(raw, "conversationId")
	input.ServiceRequestID = stringField(raw, "servicerequestId")
	input.UserID = raw["userid"]
	input.WarehouseName = stringField(raw, "warehouseName")
	input.City = stringField(raw, "city")
	input.VoiceOfCustomer = stringField(raw, "voiceofCustomer")
	input.RequestType = stringField(raw, "requestType")
	if v, ok := raw["marketplace"].(bool); ok {
		input.Marketplace = v
	}

	return input, nil
}

// stringField renders a body field in canonical string form; absent
// fields become "".
func stringField(raw sheety.Row, key string) string {
	v, ok := raw[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
