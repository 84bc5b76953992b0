// internal/gateway/inventory/models.go
package inventory

import "encoding/json"

type ActiveProductListResponse struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type FormattedActiveProductsResponse struct {
	Type        string        `json:"type"`
	Data        []ProductView `json:"data"`
	Message     string        `json:"message"`
	Instruction string        `json:"instruction"`
}

// ProductView is the card the assistant renders per rented product.
type ProductView struct {
	ID         json.Number     `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	RentAmount json.RawMessage `json:"rentAmount"`
	Tenure     json.RawMessage `json:"tenure"`
	Status     string          `json:"status"`
}

// productRow is the subset of an upstream row the card needs.
type productRow struct {
	ID          json.Number     `json:"id"`
	ProductName string          `json:"productName"`
	Category    string          `json:"category"`
	RentAmount  json.RawMessage `json:"rentAmount"`
	Tenure      json.RawMessage `json:"tenure"`
	Status      string          `json:"status"`
}
