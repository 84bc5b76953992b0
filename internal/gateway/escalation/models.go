// internal/gateway/escalation/models.go
package escalation

import (
	"encoding/json"

	"rental-gateway/internal/clients/sheety"
)

// Input is an escalation event from the chat assistant. Identifier
// fields are kept in canonical string form; Raw preserves the body as
// sent so appended sheet rows carry every field the bot included.
type Input struct {
	ConversationID   string
	ServiceRequestID string
	UserID           interface{}
	Marketplace      bool
	WarehouseName    string
	City             string
	VoiceOfCustomer  string
	RequestType      string
	Raw              sheety.Row
}

// Outcome reports which path an escalation took. Exactly one of Email
// and Sheet is set: an existing service request sends one email, a new
// one appends one sheet row.
type Outcome struct {
	EmailSent bool
	Email     json.RawMessage
	Sheet     json.RawMessage
}
