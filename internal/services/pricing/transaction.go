package pricing

import (
	"errors"

	"github.com/shopspring/decimal"
)

// GroupDiscountThreshold is the quantity a purchase must exceed to get the group discount.
const GroupDiscountThreshold = 10

var (
	GroupDiscountRate = decimal.RequireFromString("0.05")
	TaxRate           = decimal.RequireFromString("0.10")

	// PointsEarnUnit is how much final price earns one loyalty point.
	PointsEarnUnit = decimal.NewFromInt(10)
	// PointValue is the currency value of one redeemed point.
	PointValue = decimal.NewFromInt(1)
)

var ErrInvalidInput = errors.New("invalid input")

type Request struct {
	Category        Category
	UnitPrice       decimal.Decimal
	Quantity        int
	RedeemPoints    bool
	AvailablePoints int64
}

// Result holds full-precision amounts. Round only when rendering.
type Result struct {
	GrossSubtotal   decimal.Decimal // unit price * quantity
	GroupDiscount   decimal.Decimal
	Subtotal        decimal.Decimal // gross minus group discount, taxable base
	LoyaltyDiscount decimal.Decimal
	Tax             decimal.Decimal
	FinalPrice      decimal.Decimal

	PointsSpent  int64
	PointsEarned int64
	NewBalance   int64
}
