package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fastprodman/ticketcalc/internal/services/pricing"
)

type Order struct {
	CustomerID   string
	Category     pricing.Category
	UnitPrice    decimal.Decimal
	Quantity     int
	RedeemPoints bool
}

// Receipt is everything needed to print one transaction.
type Receipt struct {
	ID         uuid.UUID
	IssuedAt   time.Time
	CustomerID string
	Category   pricing.Category
	UnitPrice  decimal.Decimal
	Quantity   int
	Redeemed   bool
	Result     pricing.Result
}
