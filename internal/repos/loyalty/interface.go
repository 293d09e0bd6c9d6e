package loyalty

import "errors"

var ErrInvalidCustomerID = errors.New("invalid customer id")
var ErrNegativeBalance = errors.New("negative points balance")

// Ledger stores loyalty point balances keyed by customer.
type Ledger interface {
	// GetOrCreate returns the balance, recording the customer at 0 on first contact.
	GetOrCreate(customerID string) (int64, error)
	// Get returns the balance without recording the customer. found is false
	// for a customer the ledger has never seen.
	Get(customerID string) (points int64, found bool, err error)
	// Set overwrites the balance unconditionally.
	Set(customerID string, points int64) error
	Len() int
}
