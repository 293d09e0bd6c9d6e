package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Category int

const (
	CategoryRegular Category = iota + 1
	CategoryPremium
	CategoryVIP
)

// Categories lists every category in menu order.
var Categories = []Category{CategoryRegular, CategoryPremium, CategoryVIP}

func (c Category) String() string {
	switch c {
	case CategoryRegular:
		return "Regular"
	case CategoryPremium:
		return "Premium"
	case CategoryVIP:
		return "VIP"
	default:
		return "Unknown"
	}
}

func (c Category) Valid() bool {
	return c >= CategoryRegular && c <= CategoryVIP
}

// ParseCategory accepts a category name (any case) or its menu number.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "1":
		return CategoryRegular, nil
	case "premium", "2":
		return CategoryPremium, nil
	case "vip", "3":
		return CategoryVIP, nil
	default:
		return 0, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, s)
	}
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: category %d", ErrInvalidInput, int(c))
	}

	return []byte(strings.ToLower(c.String())), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}

	*c = parsed

	return nil
}

// PriceList maps each category to its unit price for a session.
type PriceList map[Category]decimal.Decimal

// Price returns the unit price for c and whether it is set.
func (pl PriceList) Price(c Category) (decimal.Decimal, bool) {
	p, ok := pl[c]

	return p, ok
}

// Missing returns the categories without a price, in menu order.
func (pl PriceList) Missing() []Category {
	var out []Category

	for _, c := range Categories {
		if _, ok := pl[c]; !ok {
			out = append(out, c)
		}
	}

	return out
}
