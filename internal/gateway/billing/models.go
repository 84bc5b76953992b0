// internal/gateway/billing/models.go
package billing

import "encoding/json"

// Request is the optional body of a billing call. Identifiers are
// operation-scoped: pendingDues needs userId, getUserInvoice needs
// both, the other operations take none.
type Request struct {
	InvoiceID json.Number `json:"invoiceId"`
	UserID    json.Number `json:"userId"`
}

type RentalDueResponse struct {
	Type string        `json:"type"`
	Data RentalDueData `json:"data"`
}

type RentalDueData struct {
	PendingDuesText             string          `json:"pendingDuesText"`
	TotalPendingRentalDueAmount json.RawMessage `json:"totalPendingRentalDueAmount"`
	TotalPayableAmount          json.RawMessage `json:"totalPayableAmount"`
	PendingLateFeeAmount        json.RawMessage `json:"pendingLateFeeAmount"`
	RentoMoney                  json.RawMessage `json:"rentoMoney"`
}

type PendingDuesResponse struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type InvoicesResponse struct {
	Type string       `json:"type"`
	Data InvoicesData `json:"data"`
}

type InvoicesData struct {
	Invoices []InvoiceView `json:"invoices"`
}

// InvoiceView is the client-facing invoice row: upstream numeric
// payment status replaced with its label.
type InvoiceView struct {
	ID              int64           `json:"id"`
	CreatedAt       string          `json:"createdAt"`
	InvoiceMonth    string          `json:"invoiceMonth"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Total           json.RawMessage `json:"total"`
	PaymentStatus   string          `json:"paymentStatus"`
	InvoicePaidDate string          `json:"invoicePaidDate"`
}

type UserInvoiceView struct {
	ID             int64               `json:"id"`
	InvoiceDate    string              `json:"invoiceDate"`
	UserID         int64               `json:"userId"`
	InvoiceNumber  string              `json:"invoiceNumber"`
	Address        string              `json:"address"`
	RentAmount     json.RawMessage     `json:"rentAmount"`
	PaymentStatus  string              `json:"paymentStatus"`
	InvoiceURL     string              `json:"invoiceUrl"`
	OrderItemRents []OrderItemRentView `json:"orderItemRents"`
}

type OrderItemRentView struct {
	RentAmount            json.RawMessage `json:"rentAmount"`
	BillingCycleStartDate string          `json:"billingCycleStartDate"`
	BillingCycleEndDate   string          `json:"billingCycleEndDate"`
	DueDate               string          `json:"dueDate"`
	RentalMonth           string          `json:"rentalMonth"`
	ProductName           string          `json:"productName"`
	OrderUniqueID         string          `json:"orderUniqueId"`
}
