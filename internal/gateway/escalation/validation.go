// internal/gateway/escalation/validation.go
package escalation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"rental-gateway/internal/common/errors"
)

// bodySchema type-checks the escalation body. Field presence is
// enforced per routing path in the handler so the caller keeps the
// exact error messages the assistant depends on.
const bodySchema = `{
	"type": "object",
	"properties": {
		"conversationId":   {"type": ["string", "number"]},
		"servicerequestId": {"type": ["string", "number"]},
		"userid":           {"type": ["string", "number"]},
		"marketplace":      {"type": "boolean"},
		"warehouseName":    {"type": "string"},
		"city":             {"type": "string"},
		"voiceofCustomer":  {"type": "string"},
		"requestType":      {"type": "string"}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(bodySchema)

// ValidateBody validates the raw escalation body against the schema.
func ValidateBody(body []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.NewMissingBodyError()
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return errors.NewInvalidBodyError(fmt.Sprintf("%v", errs))
	}

	return nil
}
