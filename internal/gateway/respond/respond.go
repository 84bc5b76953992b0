// Package respond renders the gateway's JSON response surface:
// payloads pass through as-is, failures become {error, details?}.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"rental-gateway/internal/common/errors"
	"rental-gateway/internal/common/logger"
)

// JSON writes a JSON body with the given status.
func JSON(c *gin.Context, status int, body interface{}) {
	c.JSON(status, body)
}

// Raw forwards an upstream payload byte-for-byte.
func Raw(c *gin.Context, status int, payload json.RawMessage) {
	c.Data(status, "application/json", payload)
}

// Error renders any error as {error, details?} with its HTTP status.
// Client errors keep their message; everything unclassified becomes
// "Request failed" with the cause in details.
func Error(c *gin.Context, log logger.Logger, err error) {
	ge, ok := errors.AsGatewayError(err)
	if !ok {
		ge = errors.NewInternalError(err)
	}

	if ge.Status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed", map[string]interface{}{
			"path": c.FullPath(),
			"code": string(ge.Code),
		})
	} else {
		log.Warn("rejected request", map[string]interface{}{
			"path": c.FullPath(),
			"code": string(ge.Code),
		})
	}

	body := gin.H{"error": ge.Message}
	if ge.Details != "" {
		body["details"] = ge.Details
	}
	c.JSON(ge.Status, body)
}

// TokenAndOperation reads the token and operation query parameters,
// writing the 400 response itself when either is missing. The token
// check runs first; no outbound call may precede these guards.
func TokenAndOperation(c *gin.Context, log logger.Logger) (token, operation string, ok bool) {
	token = c.Query("token")
	if token == "" {
		Error(c, log, errors.NewMissingTokenError())
		return "", "", false
	}

	operation = c.Query("operation")
	if operation == "" {
		Error(c, log, errors.NewMissingOperationError())
		return "", "", false
	}

	return token, operation, true
}
