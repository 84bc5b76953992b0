// internal/gateway/billing/service.go
package billing

import (
	"context"
	"fmt"

	"rental-gateway/internal/clients/rento"
	"rental-gateway/internal/common/logger"
)

// paymentStatusPaid is the upstream ledger code for a settled invoice.
const paymentStatusPaid = 20

// PaymentStatusLabel maps the upstream numeric payment status to its
// caller-facing label. Only code 20 means paid.
func PaymentStatusLabel(code int) string {
	if code == paymentStatusPaid {
		return "Paid"
	}
	return "Unpaid"
}

type Service struct {
	rento  *rento.Client
	logger logger.Logger
}

func NewService(client *rento.Client, log logger.Logger) *Service {
	return &Service{
		rento:  client,
		logger: log.WithFields(map[string]interface{}{"component": "billing"}),
	}
}

func (s *Service) RentalDue(ctx context.Context, token string) (*RentalDueResponse, error) {
	data, err := s.rento.DashboardData(ctx, token)
	if err != nil {
		return nil, err
	}

	return &RentalDueResponse{
		Type: "RentalDue",
		Data: RentalDueData{
			PendingDuesText:             data.PendingDuesText,
			TotalPendingRentalDueAmount: data.TotalPendingRentalDueAmount,
			TotalPayableAmount:          data.TotalPayableAmount,
			PendingLateFeeAmount:        data.PendingLateFeeAmount,
			RentoMoney:                  data.RentoMoney,
		},
	}, nil
}

func (s *Service) PendingDues(ctx context.Context, token, userID string) (*PendingDuesResponse, error) {
	data, err := s.rento.PendingRentalItemsBreakUp(ctx, token, userID)
	if err != nil {
		return nil, err
	}

	return &PendingDuesResponse{Type: "PendingDues", Data: data}, nil
}

func (s *Service) Invoices(ctx context.Context, token string) (*InvoicesResponse, error) {
	ledgers, err := s.rento.LedgersData(ctx, token)
	if err != nil {
		return nil, err
	}

	views := make([]InvoiceView, 0, len(ledgers.Invoices))
	for _, inv := range ledgers.Invoices {
		views = append(views, InvoiceView{
			ID:              inv.ID,
			CreatedAt:       inv.CreatedAt,
			InvoiceMonth:    inv.InvoiceMonth,
			InvoiceNumber:   inv.InvoiceNumber,
			Total:           inv.Total,
			PaymentStatus:   PaymentStatusLabel(inv.PaymentStatus),
			InvoicePaidDate: inv.InvoicePaidDate,
		})
	}

	return &InvoicesResponse{Type: "Invoices", Data: InvoicesData{Invoices: views}}, nil
}

func (s *Service) UserInvoice(ctx context.Context, token, userID, invoiceID string) (*UserInvoiceView, error) {
	inv, err := s.rento.UserLedgerInvoice(ctx, token, userID, invoiceID)
	if err != nil {
		return nil, err
	}

	rents := make([]OrderItemRentView, 0, len(inv.OrderItemRents))
	for _, r := range inv.OrderItemRents {
		rents = append(rents, OrderItemRentView{
			RentAmount:            r.RentAmount,
			BillingCycleStartDate: r.BillingCycleStartDate,
			BillingCycleEndDate:   r.BillingCycleEndDate,
			DueDate:               r.DueDate,
			RentalMonth:           r.RentalMonth,
			ProductName:           r.OrderItem.Product.Name,
			OrderUniqueID:         r.OrderItem.Order.UniqueID,
		})
	}

	return &UserInvoiceView{
		ID:             inv.ID,
		InvoiceDate:    inv.InvoiceDate,
		UserID:         inv.UserID,
		InvoiceNumber:  inv.InvoiceNumber,
		Address:        inv.Address,
		RentAmount:     inv.RentAmount,
		PaymentStatus:  PaymentStatusLabel(inv.PaymentStatus),
		InvoiceURL:     s.invoiceURL(inv.ID),
		OrderItemRents: rents,
	}, nil
}

// invoiceURL derives the dashboard deep link for a rental invoice.
func (s *Service) invoiceURL(invoiceID int64) string {
	return fmt.Sprintf("%s/dashboard/my-subscriptions/%d/rental-invoice", s.rento.BaseURL(), invoiceID)
}
