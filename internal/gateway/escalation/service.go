// internal/gateway/escalation/service.go
package escalation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"rental-gateway/internal/clients/centercom"
	"rental-gateway/internal/clients/sheety"
	"rental-gateway/internal/common/config"
	"rental-gateway/internal/common/logger"
)

// IST has no daylight saving, so a fixed offset is exact.
var istZone = time.FixedZone("IST", 5*3600+30*60)

type Service struct {
	cfg       config.EscalationConfig
	sheety    *sheety.Client
	centercom *centercom.Client
	logger    logger.Logger
	now       func() time.Time
}

func NewService(cfg config.EscalationConfig, sheetyClient *sheety.Client, centercomClient *centercom.Client, log logger.Logger) *Service {
	return &Service{
		cfg:       cfg,
		sheety:    sheetyClient,
		centercom: centercomClient,
		logger:    log.WithFields(map[string]interface{}{"component": "escalation"}),
		now:       time.Now,
	}
}

// WorkingHours reports whether t falls inside the business-hours
// window. The window is IST wall-clock hours, half-open [start, end),
// every day of the week.
func (s *Service) WorkingHours(t time.Time) bool {
	hour := t.In(istZone).Hour()
	return hour >= s.cfg.StartHour && hour < s.cfg.EndHour
}

// Recipients resolves the notification recipient list for a city,
// unioning in the marketplace ids when the order came from a
// marketplace partner. The result is sorted and deduplicated.
func (s *Service) Recipients(city string, marketplace bool) []int64 {
	ids := s.cfg.RecipientsFor(city)

	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	if marketplace {
		for _, id := range s.cfg.MarketplaceRecipients {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Escalate routes the event: business hours go to the callback sheet
// and, for known service requests, to an email blast; off hours land
// in the offline-hours sheet for next-day follow-up. The caller passes
// the working-hours decision it validated the input under, so a
// request straddling the window boundary cannot switch paths.
func (s *Service) Escalate(ctx context.Context, input *Input, workingHours bool) (*Outcome, error) {
	if workingHours {
		return s.businessHours(ctx, input)
	}
	return s.offHours(ctx, input)
}

func (s *Service) businessHours(ctx context.Context, input *Input) (*Outcome, error) {
	rows, err := s.sheety.ListCallbacks(ctx)
	if err != nil {
		return nil, err
	}

	if s.findCallback(rows, input.ServiceRequestID) {
		return s.notifyExisting(ctx, input)
	}
	return s.appendCallback(ctx, input)
}

// findCallback linear-scans the sheet for a matching service-request
// id. Ids are compared in canonical string form because the sheet may
// hold them as either numbers or text.
func (s *Service) findCallback(rows []sheety.Row, serviceRequestID string) bool {
	for _, row := range rows {
		if v, ok := row["servicerequestId"]; ok && fmt.Sprint(v) == serviceRequestID {
			return true
		}
	}
	return false
}

func (s *Service) notifyExisting(ctx context.Context, input *Input) (*Outcome, error) {
	city := strings.ToLower(strings.TrimSpace(input.City))
	recipients := s.Recipients(input.City, input.Marketplace)

	s.logger.Info("service request already escalated, notifying owners", map[string]interface{}{
		"serviceRequestId": input.ServiceRequestID,
		"city":             city,
		"recipients":       len(recipients),
	})

	emailData, err := s.centercom.SendBulkEmail(ctx, recipients, centercom.EmailVariables{
		UserID:           input.UserID,
		TicketID:         input.ServiceRequestID,
		Comment:          input.VoiceOfCustomer,
		LocationName:     city,
		RequestTypeLabel: input.RequestType,
	})
	if err != nil {
		return nil, err
	}

	return &Outcome{EmailSent: true, Email: emailData}, nil
}

func (s *Service) appendCallback(ctx context.Context, input *Input) (*Outcome, error) {
	s.logger.Info("service request not found in sheet, appending", map[string]interface{}{
		"serviceRequestId": input.ServiceRequestID,
	})

	row := s.rowFromInput(input)
	row["warehouse"] = input.WarehouseName

	data, err := s.sheety.AppendCallback(ctx, row)
	if err != nil {
		return nil, err
	}

	return &Outcome{Sheet: data}, nil
}

func (s *Service) offHours(ctx context.Context, input *Input) (*Outcome, error) {
	s.logger.Info("outside working hours, logging for follow-up", map[string]interface{}{
		"conversationId": input.ConversationID,
	})

	data, err := s.sheety.AppendOfflineHour(ctx, s.rowFromInput(input))
	if err != nil {
		return nil, err
	}

	return &Outcome{Sheet: data}, nil
}

// rowFromInput copies the original body fields and adds the chat deep
// link so an agent can jump straight into the conversation.
func (s *Service) rowFromInput(input *Input) sheety.Row {
	row := make(sheety.Row, len(input.Raw)+2)
	for k, v := range input.Raw {
		row[k] = v
	}
	row["chatUrl"] = s.cfg.ChatURL(input.ConversationID)
	row["marketplace"] = input.Marketplace
	return row
}
