// internal/clients/rento/models.go
package rento

import "encoding/json"

// Dashboard is the subset of the dashboard payload the assistant shows
// for rental dues.
type Dashboard struct {
	PendingDuesText             string          `json:"pendingDuesText"`
	TotalPendingRentalDueAmount json.RawMessage `json:"totalPendingRentalDueAmount"`
	TotalPayableAmount          json.RawMessage `json:"totalPayableAmount"`
	PendingLateFeeAmount        json.RawMessage `json:"pendingLateFeeAmount"`
	RentoMoney                  json.RawMessage `json:"rentoMoney"`
}

// Ledgers is the invoice-list payload.
type Ledgers struct {
	Invoices []LedgerInvoice `json:"invoices"`
}

type LedgerInvoice struct {
	ID              int64           `json:"id"`
	CreatedAt       string          `json:"createdAt"`
	InvoiceMonth    string          `json:"invoiceMonth"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Total           json.RawMessage `json:"total"`
	PaymentStatus   int             `json:"paymentStatus"`
	InvoicePaidDate string          `json:"invoicePaidDate"`
}

// UserInvoice is a single ledger invoice with its line items.
type UserInvoice struct {
	ID             int64           `json:"id"`
	InvoiceDate    string          `json:"invoiceDate"`
	UserID         int64           `json:"userId"`
	InvoiceNumber  string          `json:"invoiceNumber"`
	Address        string          `json:"address"`
	RentAmount     json.RawMessage `json:"rentAmount"`
	PaymentStatus  int             `json:"paymentStatus"`
	OrderItemRents []OrderItemRent `json:"orderItemRents"`
}

type OrderItemRent struct {
	RentAmount            json.RawMessage `json:"rentAmount"`
	BillingCycleStartDate string          `json:"billingCycleStartDate"`
	BillingCycleEndDate   string          `json:"billingCycleEndDate"`
	DueDate               string          `json:"dueDate"`
	RentalMonth           string          `json:"rentalMonth"`
	OrderItem             OrderItem       `json:"orderItem"`
}

type OrderItem struct {
	Product Product `json:"product"`
	Order   Order   `json:"order"`
}

type Product struct {
	Name string `json:"name"`
}

type Order struct {
	UniqueID string `json:"uniqueId"`
}

// ServiceRequestsPage keeps rows raw so the raw variant of the listing
// can forward them byte-for-byte; the shaped variant decodes each row.
type ServiceRequestsPage struct {
	Results []json.RawMessage `json:"results"`
}

// KYCStatus is the identity-verification completion payload.
type KYCStatus struct {
	StepsCompleted  json.RawMessage `json:"stepsCompleted"`
	TotalSteps      json.RawMessage `json:"totalSteps"`
	CurrentDocument string          `json:"currentDocument"`
	LastUpdatedAt   string          `json:"lastUpdatedAt"`
	ProfessionType  *int            `json:"professionType"`
	EvalResponse    KYCEvalResponse `json:"evalResponse"`
}

type KYCEvalResponse struct {
	NormalizedStatus int                      `json:"normalizedStatus"`
	StatusMap        map[string]KYCStatusPair `json:"statusMap"`
}

type KYCStatusPair struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}
