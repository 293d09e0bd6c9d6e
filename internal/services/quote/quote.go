// Package quote prices orders against a fixed price list without touching
// any loyalty ledger. Points are supplied by the caller and never stored.
package quote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fastprodman/ticketcalc/internal/services/pricing"
)

var ErrCategoryNotPriced = errors.New("category not priced")

type Query struct {
	Category        pricing.Category
	Quantity        int
	RedeemPoints    bool
	AvailablePoints int64
}

type Quote struct {
	ID        uuid.UUID
	Category  pricing.Category
	UnitPrice decimal.Decimal
	Quantity  int
	Result    pricing.Result
}

type QuoteService struct {
	prices pricing.PriceList
}

func New(prices pricing.PriceList) *QuoteService {
	return &QuoteService{prices: prices}
}

// Prices returns the configured price list in menu order.
func (s *QuoteService) Prices() []CategoryPrice {
	out := make([]CategoryPrice, 0, len(pricing.Categories))

	for _, c := range pricing.Categories {
		p, ok := s.prices.Price(c)
		if !ok {
			continue
		}

		out = append(out, CategoryPrice{Category: c, UnitPrice: p})
	}

	return out
}

type CategoryPrice struct {
	Category  pricing.Category
	UnitPrice decimal.Decimal
}

func (s *QuoteService) Quote(ctx context.Context, q Query) (Quote, error) {
	if !q.Category.Valid() {
		return Quote{}, fmt.Errorf("quote: %w: category %d", pricing.ErrInvalidInput, int(q.Category))
	}

	price, ok := s.prices.Price(q.Category)
	if !ok {
		return Quote{}, fmt.Errorf("quote %s: %w", q.Category, ErrCategoryNotPriced)
	}

	result, err := pricing.Compute(pricing.Request{
		Category:        q.Category,
		UnitPrice:       price,
		Quantity:        q.Quantity,
		RedeemPoints:    q.RedeemPoints,
		AvailablePoints: q.AvailablePoints,
	})
	if err != nil {
		return Quote{}, fmt.Errorf("quote: %w", err)
	}

	out := Quote{
		ID:        uuid.New(),
		Category:  q.Category,
		UnitPrice: price,
		Quantity:  q.Quantity,
		Result:    result,
	}

	slog.InfoContext(ctx, "quote issued",
		"quote_id", out.ID.String(),
		"category", q.Category.String(),
		"quantity", q.Quantity,
		"final_price", result.FinalPrice.StringFixed(2),
	)

	return out, nil
}
