// internal/gateway/servicedesk/service.go
package servicedesk

import (
	"context"
	"encoding/json"

	"rental-gateway/internal/clients/rento"
	"rental-gateway/internal/common/logger"
)

// repairRequestType is the upstream ticket category for product repairs.
const repairRequestType = 20

const professionNotSelected = "Not selected profession"

// professionLabels maps the upstream profession code to its
// caller-facing label. 1337 is the upstream sentinel for "none picked".
var professionLabels = map[int]string{
	100:  "Working Professional",
	200:  "Self Employed",
	300:  "Freelancer",
	500:  "Student",
	1337: professionNotSelected,
}

// ProfessionLabel resolves the profession code; a missing or unknown
// code reads as not selected.
func ProfessionLabel(code *int) string {
	if code == nil {
		return professionNotSelected
	}
	if label, ok := professionLabels[*code]; ok {
		return label
	}
	return professionNotSelected
}

type Service struct {
	rento  *rento.Client
	logger logger.Logger
}

func NewService(client *rento.Client, log logger.Logger) *Service {
	return &Service{
		rento:  client,
		logger: log.WithFields(map[string]interface{}{"component": "servicedesk"}),
	}
}

// ServiceRequests forwards the active requests byte-for-byte.
func (s *Service) ServiceRequests(ctx context.Context, token string) (*ServiceRequestsResponse, error) {
	page, err := s.rento.ServiceRequests(ctx, token)
	if err != nil {
		return nil, err
	}

	return &ServiceRequestsResponse{Type: "ServiceRequests", Data: page.Results}, nil
}

// FormattedServiceRequests condenses each active request to the four
// fields the assistant renders.
func (s *Service) FormattedServiceRequests(ctx context.Context, token string) (*FormattedServiceRequestsResponse, error) {
	page, err := s.rento.ServiceRequests(ctx, token)
	if err != nil {
		return nil, err
	}

	views := make([]ServiceRequestView, 0, len(page.Results))
	for _, raw := range page.Results {
		var row serviceRequestRow
		if err := json.Unmarshal(raw, &row); err != nil {
			s.logger.WithError(err).Warn("Skipping unreadable service request row", nil)
			continue
		}
		views = append(views, ServiceRequestView{
			ID:        row.ServiceRequestID,
			Type:      row.RequestType.Label,
			Status:    row.RequestStatus.Label,
			CreatedAt: row.CreatedAt,
		})
	}

	return &FormattedServiceRequestsResponse{Type: "FormattedServiceRequests", Data: views}, nil
}

// KYCStatus reshapes the verification payload, resolving the numeric
// status against the upstream's own status map.
func (s *Service) KYCStatus(ctx context.Context, token string) (*KYCStatusView, error) {
	status, err := s.rento.KYCCompletionStatus(ctx, token)
	if err != nil {
		return nil, err
	}

	return &KYCStatusView{
		StepsCompleted:  status.StepsCompleted,
		TotalSteps:      status.TotalSteps,
		LastUpdatedAt:   status.LastUpdatedAt,
		CurrentDocument: status.CurrentDocument,
		KYCStatus:       statusText(status.EvalResponse),
		ProfessionType:  ProfessionLabel(status.ProfessionType),
	}, nil
}

// statusText reverse-looks-up the normalized status in the status map.
// No match renders as JSON null.
func statusText(eval rento.KYCEvalResponse) *string {
	for _, entry := range eval.StatusMap {
		if entry.Value == eval.NormalizedStatus {
			key := entry.Key
			return &key
		}
	}
	return nil
}

func (s *Service) DeliverySlots(ctx context.Context, token string, data map[string]interface{}) (json.RawMessage, error) {
	return s.rento.CssSlots(ctx, token, data)
}

func (s *Service) BookSlot(ctx context.Context, token string, data map[string]interface{}) (*TypedResponse, error) {
	out, err := s.rento.BookCssSlot(ctx, token, data)
	if err != nil {
		return nil, err
	}
	return &TypedResponse{Type: "BookedCssSlot", Data: out}, nil
}

func (s *Service) Reschedule(ctx context.Context, token string, data map[string]interface{}) (*TypedResponse, error) {
	out, err := s.rento.RescheduleTicket(ctx, token, data)
	if err != nil {
		return nil, err
	}
	return &TypedResponse{Type: "RescheduledRequest", Data: out}, nil
}

// CreateRepairTicket uploads the attachments first, then opens a repair
// ticket referencing the uploaded images.
func (s *Service) CreateRepairTicket(ctx context.Context, token string, req *RepairTicketRequest) (*TypedResponse, error) {
	uploaded, err := s.rento.UploadImages(ctx, token, req.MediaURLs())
	if err != nil {
		return nil, err
	}

	orderItemID, err := req.OrderID.Int64()
	if err != nil {
		orderItemID = 0
	}

	out, err := s.rento.CreateTickets(ctx, token, rento.NewTicket{
		RequestType: repairRequestType,
		Images:      uploaded,
		OrderItemID: orderItemID,
		Message:     req.Description,
	})
	if err != nil {
		return nil, err
	}
	return &TypedResponse{Type: "CreatedRepairTicket", Data: out}, nil
}

func (s *Service) CancelRequest(ctx context.Context, token string, serviceRequestID interface{}) (json.RawMessage, error) {
	return s.rento.CancelRequest(ctx, token, serviceRequestID)
}
