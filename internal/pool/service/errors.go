package service

import (
	"errors"
	"fmt"
)

var (
	// ErrZeroInvestment rejects profit distribution on an empty pool.
	ErrZeroInvestment = errors.New("cannot distribute profit on a pool with zero investment")
	// ErrInvalidCredentials is deliberately generic: callers must not learn
	// whether the name exists or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid name or password")
)

// ValidationError reports malformed or missing input detected before any
// business logic runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// CapacityExceededError rejects a contribution that would push the pool past
// its funding goal. Remaining is the maximum amount still accepted.
type CapacityExceededError struct {
	Remaining float64
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("investment exceeds pool capacity, only %.2f is remaining", e.Remaining)
}

// InvalidAmountError rejects a buyout larger than the investor's current
// position.
type InvalidAmountError struct {
	Requested float64
	Available float64
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("buyout amount of %.2f exceeds the current investment of %.2f", e.Requested, e.Available)
}
