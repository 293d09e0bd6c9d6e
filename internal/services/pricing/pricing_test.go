package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute_Scenarios(t *testing.T) {
	t.Parallel()

	type want struct {
		gross, group, subtotal, loyalty, tax, final string
		spent, earned, balance                      int64
	}

	tests := []struct {
		name string
		req  Request
		want want
	}{
		{
			name: "group_discount_no_redemption",
			req: Request{
				Category:  CategoryPremium,
				UnitPrice: dec("25"),
				Quantity:  12,
			},
			want: want{
				gross: "300", group: "15", subtotal: "285", loyalty: "0",
				tax: "28.5", final: "313.5", spent: 0, earned: 31, balance: 31,
			},
		},
		{
			name: "redeem_small_balance",
			req: Request{
				Category:        CategoryRegular,
				UnitPrice:       dec("15"),
				Quantity:        5,
				RedeemPoints:    true,
				AvailablePoints: 3,
			},
			want: want{
				gross: "75", group: "0", subtotal: "75", loyalty: "3",
				tax: "7.5", final: "79.5", spent: 3, earned: 7, balance: 7,
			},
		},
		{
			name: "quantity_ten_has_no_group_discount",
			req: Request{
				Category:  CategoryVIP,
				UnitPrice: dec("50"),
				Quantity:  10,
			},
			want: want{
				gross: "500", group: "0", subtotal: "500", loyalty: "0",
				tax: "50", final: "550", spent: 0, earned: 55, balance: 55,
			},
		},
		{
			name: "quantity_eleven_gets_group_discount",
			req: Request{
				Category:  CategoryVIP,
				UnitPrice: dec("10"),
				Quantity:  11,
			},
			want: want{
				gross: "110", group: "5.5", subtotal: "104.5", loyalty: "0",
				tax: "10.45", final: "114.95", spent: 0, earned: 11, balance: 11,
			},
		},
		{
			name: "redemption_capped_at_subtotal_not_subtotal_plus_tax",
			req: Request{
				Category:        CategoryRegular,
				UnitPrice:       dec("20"),
				Quantity:        2,
				RedeemPoints:    true,
				AvailablePoints: 100,
			},
			want: want{
				gross: "40", group: "0", subtotal: "40", loyalty: "40",
				tax: "4", final: "4", spent: 40, earned: 0, balance: 60,
			},
		},
		{
			name: "fractional_subtotal_redemption_truncates_points_spent",
			req: Request{
				Category:        CategoryRegular,
				UnitPrice:       dec("2.75"),
				Quantity:        2,
				RedeemPoints:    true,
				AvailablePoints: 10,
			},
			want: want{
				gross: "5.5", group: "0", subtotal: "5.5", loyalty: "5.5",
				tax: "0.55", final: "0.55", spent: 5, earned: 0, balance: 5,
			},
		},
		{
			name: "points_held_but_not_redeemed",
			req: Request{
				Category:        CategoryPremium,
				UnitPrice:       dec("9.99"),
				Quantity:        3,
				AvailablePoints: 42,
			},
			want: want{
				gross: "29.97", group: "0", subtotal: "29.97", loyalty: "0",
				tax: "2.997", final: "32.967", spent: 0, earned: 3, balance: 45,
			},
		},
		{
			name: "largest_balance_redeems_without_wrapping",
			req: Request{
				Category:        CategoryRegular,
				UnitPrice:       dec("15"),
				Quantity:        1,
				RedeemPoints:    true,
				AvailablePoints: math.MaxInt64,
			},
			want: want{
				gross: "15", group: "0", subtotal: "15", loyalty: "15",
				tax: "1.5", final: "1.5", spent: 15, earned: 0, balance: math.MaxInt64 - 15,
			},
		},
		{
			name: "free_tickets",
			req: Request{
				Category:        CategoryRegular,
				UnitPrice:       decimal.Zero,
				Quantity:        4,
				RedeemPoints:    true,
				AvailablePoints: 8,
			},
			want: want{
				gross: "0", group: "0", subtotal: "0", loyalty: "0",
				tax: "0", final: "0", spent: 0, earned: 0, balance: 8,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Compute(tt.req)
			require.NoError(t, err)

			assert.Equal(t, tt.want.gross, got.GrossSubtotal.String(), "gross subtotal")
			assert.Equal(t, tt.want.group, got.GroupDiscount.String(), "group discount")
			assert.Equal(t, tt.want.subtotal, got.Subtotal.String(), "subtotal")
			assert.Equal(t, tt.want.loyalty, got.LoyaltyDiscount.String(), "loyalty discount")
			assert.Equal(t, tt.want.tax, got.Tax.String(), "tax")
			assert.Equal(t, tt.want.final, got.FinalPrice.String(), "final price")

			assert.Equal(t, tt.want.spent, got.PointsSpent, "points spent")
			assert.Equal(t, tt.want.earned, got.PointsEarned, "points earned")
			assert.Equal(t, tt.want.balance, got.NewBalance, "new balance")
		})
	}
}

func TestCompute_InvalidInput(t *testing.T) {
	t.Parallel()

	valid := Request{Category: CategoryRegular, UnitPrice: dec("10"), Quantity: 1}

	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{"negative_unit_price", func(r *Request) { r.UnitPrice = dec("-1") }},
		{"zero_quantity", func(r *Request) { r.Quantity = 0 }},
		{"negative_quantity", func(r *Request) { r.Quantity = -3 }},
		{"negative_points", func(r *Request) { r.AvailablePoints = -1 }},
		{"unknown_category", func(r *Request) { r.Category = Category(7) }},
		{"zero_category", func(r *Request) { r.Category = 0 }},
		{"balance_past_int64", func(r *Request) { r.AvailablePoints = math.MaxInt64 }},
		{"earned_points_past_int64", func(r *Request) {
			r.UnitPrice = dec("1e18")
			r.Quantity = 1000
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := valid
			tt.mutate(&req)

			got, err := Compute(req)
			require.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, got)
		})
	}
}

func TestCompute_Properties(t *testing.T) {
	t.Parallel()

	prices := []string{"0", "0.01", "1", "7.33", "15", "25", "99.99", "250"}
	points := []int64{0, 1, 3, 50, 1_000}

	for _, p := range prices {
		for qty := 1; qty <= 25; qty++ {
			for _, pts := range points {
				for _, redeem := range []bool{false, true} {
					req := Request{
						Category:        CategoryPremium,
						UnitPrice:       dec(p),
						Quantity:        qty,
						RedeemPoints:    redeem,
						AvailablePoints: pts,
					}

					got, err := Compute(req)
					require.NoError(t, err, "compute %+v", req)

					gross := dec(p).Mul(decimal.NewFromInt(int64(qty)))
					if qty > GroupDiscountThreshold {
						assert.True(t, got.GroupDiscount.Equal(gross.Mul(dec("0.05"))), "qty %d: group discount %s", qty, got.GroupDiscount)
					} else {
						assert.True(t, got.GroupDiscount.IsZero(), "qty %d: group discount %s", qty, got.GroupDiscount)
					}

					assert.True(t, got.Tax.Equal(got.Subtotal.Mul(dec("0.10"))), "tax %s on subtotal %s", got.Tax, got.Subtotal)

					if !redeem {
						assert.True(t, got.LoyaltyDiscount.IsZero(), "loyalty discount %s without redemption", got.LoyaltyDiscount)
					}
					assert.True(t, got.LoyaltyDiscount.LessThanOrEqual(got.Subtotal), "loyalty discount %s exceeds subtotal %s", got.LoyaltyDiscount, got.Subtotal)
					assert.True(t, got.LoyaltyDiscount.LessThanOrEqual(decimal.NewFromInt(pts)), "loyalty discount %s exceeds points %d", got.LoyaltyDiscount, pts)

					wantFinal := got.GrossSubtotal.Sub(got.GroupDiscount).Sub(got.LoyaltyDiscount).Add(got.Tax)
					assert.True(t, got.FinalPrice.Equal(wantFinal), "final price %s, want %s", got.FinalPrice, wantFinal)
					assert.False(t, got.FinalPrice.IsNegative(), "final price %s", got.FinalPrice)
					assert.GreaterOrEqual(t, got.NewBalance, int64(0))

					again, err := Compute(req)
					require.NoError(t, err)
					require.True(t, sameResult(again, got), "compute is not deterministic: %+v vs %+v", got, again)
				}
			}
		}
	}
}

func sameResult(a, b Result) bool {
	return a.GrossSubtotal.Equal(b.GrossSubtotal) &&
		a.GroupDiscount.Equal(b.GroupDiscount) &&
		a.Subtotal.Equal(b.Subtotal) &&
		a.LoyaltyDiscount.Equal(b.LoyaltyDiscount) &&
		a.Tax.Equal(b.Tax) &&
		a.FinalPrice.Equal(b.FinalPrice) &&
		a.PointsSpent == b.PointsSpent &&
		a.PointsEarned == b.PointsEarned &&
		a.NewBalance == b.NewBalance
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"regular", CategoryRegular, false},
		{"Premium", CategoryPremium, false},
		{" VIP ", CategoryVIP, false},
		{"1", CategoryRegular, false},
		{"2", CategoryPremium, false},
		{"3", CategoryVIP, false},
		{"4", 0, true},
		{"balcony", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCategory(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_TextRoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var back Category
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, c, back)
	}

	_, err := Category(0).MarshalText()
	require.ErrorIs(t, err, ErrInvalidInput)
}
