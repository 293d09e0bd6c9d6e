package checkout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastprodman/ticketcalc/internal/repos/loyalty"
	"github.com/fastprodman/ticketcalc/internal/repos/loyalty/memory"
	"github.com/fastprodman/ticketcalc/internal/services/pricing"
)

// countingLedger records writes on top of the memory ledger.
type countingLedger struct {
	loyalty.Ledger
	sets int
}

func (l *countingLedger) Set(customerID string, points int64) error {
	l.sets++
	return l.Ledger.Set(customerID, points)
}

func newService(t *testing.T) (*CheckoutService, *countingLedger) {
	t.Helper()

	ledger := &countingLedger{Ledger: memory.New()}
	svc := New(ledger)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }

	return svc, ledger
}

func TestCheckout_DocumentedSession(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := t.Context()

	first, err := svc.Checkout(ctx, Order{
		CustomerID: "John",
		Category:   pricing.CategoryPremium,
		UnitPrice:  decimal.NewFromInt(25),
		Quantity:   12,
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.True(t, first.IssuedAt.Equal(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)), "issued at %s", first.IssuedAt)
	assert.Equal(t, "313.50", first.Result.FinalPrice.StringFixed(2))
	assert.Equal(t, int64(31), first.Result.NewBalance)

	second, err := svc.Checkout(ctx, Order{
		CustomerID:   "John",
		Category:     pricing.CategoryRegular,
		UnitPrice:    decimal.NewFromInt(15),
		Quantity:     5,
		RedeemPoints: true,
	})
	require.NoError(t, err)

	// 75 + 7.50 - 31 = 51.50 -> 5 earned, 31 - 31 + 5 = 5
	assert.Equal(t, "31.00", second.Result.LoyaltyDiscount.StringFixed(2))
	assert.Equal(t, "51.50", second.Result.FinalPrice.StringFixed(2))

	got, err := svc.Balance(ctx, "John")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCheckout_NewCustomerIsRecordedOnSuccess(t *testing.T) {
	t.Parallel()

	svc, ledger := newService(t)

	_, err := svc.Checkout(t.Context(), Order{
		CustomerID: " Ada ",
		Category:   pricing.CategoryVIP,
		UnitPrice:  decimal.NewFromInt(50),
		Quantity:   1,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, ledger.Len())

	got, found, err := ledger.Get("Ada")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(5), got)
}

func TestCheckout_InvalidInputLeavesLedgerUntouched(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		order Order
	}{
		{
			name: "negative_price",
			order: Order{
				Category:  pricing.CategoryVIP,
				UnitPrice: decimal.NewFromInt(-1), Quantity: 1, RedeemPoints: true,
			},
		},
		{
			name: "zero_quantity",
			order: Order{
				Category:  pricing.CategoryVIP,
				UnitPrice: decimal.NewFromInt(10), Quantity: 0,
			},
		},
		{
			name: "unknown_category",
			order: Order{
				Category:  pricing.Category(9),
				UnitPrice: decimal.NewFromInt(10), Quantity: 1,
			},
		},
		{
			name: "points_past_int64",
			order: Order{
				Category:  pricing.CategoryRegular,
				UnitPrice: decimal.RequireFromString("1e18"), Quantity: 1000,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			t.Run("known_customer", func(t *testing.T) {
				t.Parallel()

				svc, ledger := newService(t)
				require.NoError(t, ledger.Ledger.Set("Ada", 12))

				order := tt.order
				order.CustomerID = "Ada"

				_, err := svc.Checkout(t.Context(), order)
				require.ErrorIs(t, err, pricing.ErrInvalidInput)

				assert.Zero(t, ledger.sets, "ledger written on invalid input")

				got, err := svc.Balance(t.Context(), "Ada")
				require.NoError(t, err)
				assert.Equal(t, int64(12), got)
			})

			t.Run("unseen_customer", func(t *testing.T) {
				t.Parallel()

				svc, ledger := newService(t)

				order := tt.order
				order.CustomerID = "Zed"

				_, err := svc.Checkout(t.Context(), order)
				require.ErrorIs(t, err, pricing.ErrInvalidInput)

				assert.Zero(t, ledger.sets, "ledger written on invalid input")
				assert.Zero(t, ledger.Len(), "customer recorded on invalid input")
			})
		})
	}
}

func TestCheckout_EmptyCustomer(t *testing.T) {
	t.Parallel()

	svc, ledger := newService(t)

	_, err := svc.Checkout(t.Context(), Order{
		CustomerID: "  ",
		Category:   pricing.CategoryRegular,
		UnitPrice:  decimal.NewFromInt(10),
		Quantity:   1,
	})
	require.ErrorIs(t, err, loyalty.ErrInvalidCustomerID)
	assert.Zero(t, ledger.Len())
}

func TestApply_OverwritesBalance(t *testing.T) {
	t.Parallel()

	svc, _ := newService(t)
	ctx := t.Context()

	_, err := svc.Balance(ctx, "Ada")
	require.NoError(t, err)

	require.NoError(t, svc.Apply(ctx, "Ada", pricing.Result{NewBalance: 99}))
	require.NoError(t, svc.Apply(ctx, "Ada", pricing.Result{NewBalance: 4}))

	got, err := svc.Balance(ctx, "Ada")
	require.NoError(t, err)
	assert.Equal(t, int64(4), got)
}
