// Package pricefile reads per-category unit prices from a YAML document:
//
//	prices:
//	  regular: 15
//	  premium: 25.50
//	  vip: "50"
package pricefile

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/fastprodman/ticketcalc/internal/services/pricing"
)

var ErrInvalidPriceFile = errors.New("invalid price file")

type document struct {
	Prices map[string]yaml.Node `yaml:"prices"`
}

// Load reads and parses the price file at path.
func Load(path string) (pricing.PriceList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read price file: %w", err)
	}

	prices, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return prices, nil
}

func Parse(data []byte) (pricing.PriceList, error) {
	var doc document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPriceFile, err)
	}

	if len(doc.Prices) == 0 {
		return nil, fmt.Errorf("%w: no prices", ErrInvalidPriceFile)
	}

	prices := make(pricing.PriceList, len(doc.Prices))

	for key, node := range doc.Prices {
		category, err := pricing.ParseCategory(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPriceFile, err)
		}

		if _, dup := prices[category]; dup {
			return nil, fmt.Errorf("%w: %s listed twice", ErrInvalidPriceFile, category)
		}

		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w: price for %s is not a scalar (line %d)", ErrInvalidPriceFile, category, node.Line)
		}

		price, err := decimal.NewFromString(node.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: price for %s (line %d): %w", ErrInvalidPriceFile, category, node.Line, err)
		}

		if price.IsNegative() {
			return nil, fmt.Errorf("%w: price for %s is negative", ErrInvalidPriceFile, category)
		}

		prices[category] = price
	}

	return prices, nil
}
