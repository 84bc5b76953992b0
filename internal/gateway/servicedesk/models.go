// internal/gateway/servicedesk/models.go
package servicedesk

import "encoding/json"

type ServiceRequestsResponse struct {
	Type string            `json:"type"`
	Data []json.RawMessage `json:"data"`
}

type FormattedServiceRequestsResponse struct {
	Type string               `json:"type"`
	Data []ServiceRequestView `json:"data"`
}

// ServiceRequestView is the condensed row the assistant renders.
type ServiceRequestView struct {
	ID        json.Number `json:"id"`
	Type      string      `json:"type"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"createdAt"`
}

// serviceRequestRow is the subset of an upstream row the shaped
// listing needs.
type serviceRequestRow struct {
	ServiceRequestID json.Number `json:"serviceRequestId"`
	RequestType      labelRef    `json:"requestType"`
	RequestStatus    labelRef    `json:"requestStatus"`
	CreatedAt        string      `json:"createdAt"`
}

type labelRef struct {
	Label string `json:"label"`
}

type KYCStatusView struct {
	StepsCompleted  json.RawMessage `json:"stepsCompleted"`
	TotalSteps      json.RawMessage `json:"totalSteps"`
	LastUpdatedAt   string          `json:"lastUpdatedAt"`
	CurrentDocument string          `json:"currentDocument"`
	KYCStatus       *string         `json:"kycStatus"`
	ProfessionType  string          `json:"professionType"`
}

// RepairTicketRequest creates a repair ticket from up to four media
// attachments. At least one non-empty URL is required.
type RepairTicketRequest struct {
	Media1      string      `json:"media1"`
	Media2      string      `json:"media2"`
	Media3      string      `json:"media3"`
	Media4      string      `json:"media4"`
	Description string      `json:"description"`
	OrderID     json.Number `json:"orderId"`
}

// MediaURLs returns the non-empty attachment URLs in order.
func (r *RepairTicketRequest) MediaURLs() []string {
	urls := make([]string, 0, 4)
	for _, u := range []string{r.Media1, r.Media2, r.Media3, r.Media4} {
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

type TypedResponse struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
