// Package pricing computes ticket transactions: group discount, tax,
// loyalty redemption and loyalty accrual. It has no state and no I/O.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Compute prices a single transaction:
//
// 1) gross = unit price * quantity
// 2) group discount when quantity exceeds the threshold
// 3) tax on the discounted subtotal
// 4) redemption capped at the subtotal (not subtotal + tax)
// 5) points earned on the final price, points spent truncated.
func Compute(req Request) (Result, error) {
	err := Validate(req)
	if err != nil {
		return Result{}, fmt.Errorf("compute transaction: %w", err)
	}

	gross := req.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

	groupDiscount := decimal.Zero
	if req.Quantity > GroupDiscountThreshold {
		groupDiscount = gross.Mul(GroupDiscountRate)
	}

	subtotal := gross.Sub(groupDiscount)
	tax := subtotal.Mul(TaxRate)

	loyaltyDiscount := decimal.Zero
	if req.RedeemPoints {
		available := decimal.NewFromInt(req.AvailablePoints).Mul(PointValue)
		loyaltyDiscount = decimal.Min(available, subtotal)
	}

	finalPrice := subtotal.Add(tax).Sub(loyaltyDiscount)

	earned, _ := finalPrice.QuoRem(PointsEarnUnit, 0)
	spent := loyaltyDiscount.Div(PointValue).Truncate(0)
	balance := decimal.NewFromInt(req.AvailablePoints).Sub(spent).Add(earned)

	if !fitsPoints(earned) || !fitsPoints(balance) {
		return Result{}, fmt.Errorf("compute transaction: %w: new balance %s exceeds the points range",
			ErrInvalidInput, balance)
	}

	return Result{
		GrossSubtotal:   gross,
		GroupDiscount:   groupDiscount,
		Subtotal:        subtotal,
		LoyaltyDiscount: loyaltyDiscount,
		Tax:             tax,
		FinalPrice:      finalPrice,
		PointsSpent:     spent.IntPart(),
		PointsEarned:    earned.IntPart(),
		NewBalance:      balance.IntPart(),
	}, nil
}

var maxPoints = decimal.NewFromInt(math.MaxInt64)

// fitsPoints reports whether d is a storable point count: 0..MaxInt64.
func fitsPoints(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(maxPoints)
}

// Validate checks the request fields Compute rejects up front.
func Validate(req Request) error {
	if !req.Category.Valid() {
		return fmt.Errorf("%w: category %d", ErrInvalidInput, int(req.Category))
	}

	if req.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price %s is negative", ErrInvalidInput, req.UnitPrice)
	}

	if req.Quantity < 1 {
		return fmt.Errorf("%w: quantity %d is below 1", ErrInvalidInput, req.Quantity)
	}

	if req.AvailablePoints < 0 {
		return fmt.Errorf("%w: available points %d is negative", ErrInvalidInput, req.AvailablePoints)
	}

	return nil
}
