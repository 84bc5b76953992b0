// internal/gateway/inventory/service.go
package inventory

import (
	"context"
	"encoding/json"

	"rental-gateway/internal/clients/rento"
	"rental-gateway/internal/common/errors"
	"rental-gateway/internal/common/logger"
)

type Service struct {
	rento  *rento.Client
	logger logger.Logger
}

func NewService(client *rento.Client, log logger.Logger) *Service {
	return &Service{
		rento:  client,
		logger: log.WithFields(map[string]interface{}{"component": "inventory"}),
	}
}

// ActiveProductList forwards the rented-product list byte-for-byte.
func (s *Service) ActiveProductList(ctx context.Context, token string) (*ActiveProductListResponse, error) {
	data, err := s.rento.ActiveProductList(ctx, token)
	if err != nil {
		return nil, err
	}

	return &ActiveProductListResponse{Type: "ActiveProductList", Data: data}, nil
}

// FormattedActiveProducts condenses each rented product to the card the
// assistant renders, with the canned carousel copy.
func (s *Service) FormattedActiveProducts(ctx context.Context, token string) (*FormattedActiveProductsResponse, error) {
	data, err := s.rento.ActiveProductList(ctx, token)
	if err != nil {
		return nil, err
	}

	var rows []productRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.NewUpstreamDecodeError("rento", err)
	}

	views := make([]ProductView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ProductView{
			ID:         row.ID,
			Name:       row.ProductName,
			Category:   row.Category,
			RentAmount: row.RentAmount,
			Tenure:     row.Tenure,
			Status:     row.Status,
		})
	}

	return &FormattedActiveProductsResponse{
		Type:        "FormattedActiveProducts",
		Data:        views,
		Message:     "These are your active rented products.",
		Instruction: "Swipe or scroll to view all your active products.",
	}, nil
}
