// Package console drives the interactive pricing session: it collects and
// validates operator input, runs checkouts and prints receipts.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/fastprodman/ticketcalc/internal/services/checkout"
	"github.com/fastprodman/ticketcalc/internal/services/pricing"
)

const (
	typePrompt     = "Select the ticket type (1 for Regular, 2 for Premium, 3 for VIP): "
	quantityPrompt = "Enter the number of tickets: "
	goodbye        = "Thank you for using the Ticket Price Calculator! Goodbye."
)

// Checkout is the part of checkout.CheckoutService the session needs.
type Checkout interface {
	Balance(ctx context.Context, customerID string) (int64, error)
	Checkout(ctx context.Context, order checkout.Order) (checkout.Receipt, error)
}

type Session struct {
	prompt *Prompter
	svc    Checkout
	// preset skips the per-session price prompts when set.
	preset pricing.PriceList
}

type Option func(*Session)

// WithPriceList uses fixed prices instead of asking for them every session.
func WithPriceList(prices pricing.PriceList) Option {
	return func(s *Session) {
		s.preset = prices
	}
}

func NewSession(in io.Reader, out io.Writer, svc Checkout, opts ...Option) *Session {
	s := &Session{
		prompt: NewPrompter(in, out),
		svc:    svc,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run loops over customers until the operator exits, declines to continue,
// or the input ends. It returns ctx.Err() when canceled. A session runs once.
func (s *Session) Run(ctx context.Context) error {
	defer s.prompt.Close()

	s.prompt.Println("Welcome to the Advanced Ticket Price Calculator!")

	for {
		more, err := s.transaction(ctx)
		if errors.Is(err, io.EOF) {
			s.prompt.Println()
			s.prompt.Println(goodbye)

			return nil
		}

		if err != nil {
			return err
		}

		if !more {
			s.prompt.Println(goodbye)

			return nil
		}
	}
}

// transaction handles one customer and reports whether to keep going.
func (s *Session) transaction(ctx context.Context) (bool, error) {
	name, err := s.customerName(ctx)
	if err != nil {
		return false, err
	}

	if strings.EqualFold(name, "exit") {
		return false, nil
	}

	// First contact records the customer at 0 points.
	points, err := s.svc.Balance(ctx, name)
	if err != nil {
		return false, fmt.Errorf("look up %q: %w", name, err)
	}

	prices, err := s.prices(ctx)
	if err != nil {
		return false, err
	}

	writeMenu(s.prompt.out, prices)

	choice, err := s.prompt.IntInRange(ctx, typePrompt, 1, len(pricing.Categories))
	if err != nil {
		return false, err
	}

	category := pricing.Categories[choice-1]

	quantity, err := s.prompt.IntInRange(ctx, quantityPrompt, 1, math.MaxInt32)
	if err != nil {
		return false, err
	}

	s.prompt.Printf("\nYou have %d loyalty points.\n", points)

	redeem, err := s.prompt.YesNo(ctx, "Do you want to redeem your points? (yes/no): ")
	if err != nil {
		return false, err
	}

	price, _ := prices.Price(category)

	receipt, err := s.svc.Checkout(ctx, checkout.Order{
		CustomerID:   name,
		Category:     category,
		UnitPrice:    price,
		Quantity:     quantity,
		RedeemPoints: redeem,
	})

	switch {
	case errors.Is(err, pricing.ErrInvalidInput):
		slog.WarnContext(ctx, "transaction rejected", "customer", name, "error", err)
		s.prompt.Printf("\nTransaction rejected: %v\n", err)
	case err != nil:
		return false, fmt.Errorf("checkout %q: %w", name, err)
	default:
		err = WriteReceipt(s.prompt.out, receipt)
		if err != nil {
			return false, err
		}
	}

	return s.prompt.YesNo(ctx, "\nDo you want to calculate another ticket? (yes/no): ")
}

func (s *Session) customerName(ctx context.Context) (string, error) {
	for {
		name, err := s.prompt.Line(ctx, "\nEnter your name (or type 'exit' to quit): ")
		if err != nil {
			return "", err
		}

		if name != "" {
			return name, nil
		}
	}
}

func (s *Session) prices(ctx context.Context) (pricing.PriceList, error) {
	if s.preset != nil {
		return s.preset, nil
	}

	prices := make(pricing.PriceList, len(pricing.Categories))

	for _, c := range pricing.Categories {
		p, err := s.prompt.Price(ctx, c.String())
		if err != nil {
			return nil, err
		}

		prices[c] = p
	}

	return prices, nil
}
