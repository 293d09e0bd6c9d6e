package memory

import (
	"fmt"
	"strings"

	"github.com/fastprodman/ticketcalc/internal/repos/loyalty"
)

var _ loyalty.Ledger = (*ledgerRepo)(nil)

// ledgerRepo is owned by a single session and is not safe for concurrent use.
type ledgerRepo struct {
	balances map[string]int64
}

func New() *ledgerRepo {
	return &ledgerRepo{balances: make(map[string]int64)}
}

func (r *ledgerRepo) GetOrCreate(customerID string) (int64, error) {
	key, err := normalize(customerID)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	points, ok := r.balances[key]
	if !ok {
		r.balances[key] = 0
	}

	return points, nil
}

func (r *ledgerRepo) Get(customerID string) (int64, bool, error) {
	key, err := normalize(customerID)
	if err != nil {
		return 0, false, fmt.Errorf("get balance: %w", err)
	}

	points, ok := r.balances[key]

	return points, ok, nil
}

func (r *ledgerRepo) Set(customerID string, points int64) error {
	key, err := normalize(customerID)
	if err != nil {
		return fmt.Errorf("set balance: %w", err)
	}

	if points < 0 {
		return fmt.Errorf("set balance %d for %q: %w", points, key, loyalty.ErrNegativeBalance)
	}

	r.balances[key] = points

	return nil
}

func (r *ledgerRepo) Len() int {
	return len(r.balances)
}

// normalize trims surrounding whitespace. Case is significant.
func normalize(customerID string) (string, error) {
	key := strings.TrimSpace(customerID)
	if key == "" {
		return "", loyalty.ErrInvalidCustomerID
	}

	return key, nil
}
