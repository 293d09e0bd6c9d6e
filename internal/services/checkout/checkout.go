package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/ticketcalc/internal/repos/loyalty"
	"github.com/fastprodman/ticketcalc/internal/services/pricing"
)

type CheckoutService struct {
	ledger loyalty.Ledger
	now    func() time.Time
}

func New(ledger loyalty.Ledger) *CheckoutService {
	return &CheckoutService{
		ledger: ledger,
		now:    time.Now,
	}
}

// Balance returns the customer's points, creating the entry at 0 on first contact.
func (s *CheckoutService) Balance(ctx context.Context, customerID string) (int64, error) {
	points, err := s.ledger.GetOrCreate(customerID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	slog.DebugContext(ctx, "loyalty balance read", "customer", customerID, "points", points)

	return points, nil
}

// Apply stores the result's new balance for the customer, overwriting the old one.
func (s *CheckoutService) Apply(ctx context.Context, customerID string, result pricing.Result) error {
	err := s.ledger.Set(customerID, result.NewBalance)
	if err != nil {
		return fmt.Errorf("apply result: %w", err)
	}

	slog.DebugContext(ctx, "loyalty balance updated",
		"customer", customerID,
		"spent", result.PointsSpent,
		"earned", result.PointsEarned,
		"balance", result.NewBalance,
	)

	return nil
}

// Checkout runs one transaction:
//
// 1) Validate the order.
// 2) Read the customer's balance, 0 for a new customer.
// 3) Price the order.
// 4) Store the new balance. Nothing is written if any earlier step fails.
// 5) Stamp the receipt.
func (s *CheckoutService) Checkout(ctx context.Context, order Order) (Receipt, error) {
	customerID := strings.TrimSpace(order.CustomerID)

	req := pricing.Request{
		Category:     order.Category,
		UnitPrice:    order.UnitPrice,
		Quantity:     order.Quantity,
		RedeemPoints: order.RedeemPoints,
	}

	// 1) Validate
	err := pricing.Validate(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("checkout: %w", err)
	}

	// 2) Balance
	points, _, err := s.ledger.Get(customerID)
	if err != nil {
		return Receipt{}, fmt.Errorf("checkout: %w", err)
	}

	req.AvailablePoints = points

	// 3) Price
	result, err := pricing.Compute(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("checkout: %w", err)
	}

	// 4) Apply
	err = s.Apply(ctx, customerID, result)
	if err != nil {
		return Receipt{}, fmt.Errorf("checkout: %w", err)
	}

	// 5) Receipt
	receipt := Receipt{
		ID:         uuid.New(),
		IssuedAt:   s.now(),
		CustomerID: customerID,
		Category:   order.Category,
		UnitPrice:  order.UnitPrice,
		Quantity:   order.Quantity,
		Redeemed:   order.RedeemPoints,
		Result:     result,
	}

	slog.InfoContext(ctx, "checkout completed",
		"receipt_id", receipt.ID.String(),
		"customer", customerID,
		"category", order.Category.String(),
		"quantity", order.Quantity,
		"final_price", result.FinalPrice.StringFixed(2),
	)

	return receipt, nil
}
