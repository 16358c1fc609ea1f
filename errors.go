package papertrade

import (
	"errors"
	"fmt"
)

// Sentinel errors, to be tested with errors.Is.
var (
	ErrUnknownTicker      = errors.New("unknown ticker")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrPersistence        = errors.New("persistence failure")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrCurrencyMismatch   = errors.New("currency mismatch")
)

// UnknownTickerError reports a ticker that is not listed in the market.
type UnknownTickerError struct {
	Ticker string
}

func (e *UnknownTickerError) Error() string        { return fmt.Sprintf("stock %q not found", e.Ticker) }
func (e *UnknownTickerError) Is(target error) bool { return target == ErrUnknownTicker }

// InsufficientFundsError reports a buy that costs more than the available cash.
type InsufficientFundsError struct {
	Required  Money
	Available Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("not enough cash: you need %s but only have %s", e.Required, e.Available)
}
func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }

// InsufficientSharesError reports a sell of more shares than owned.
type InsufficientSharesError struct {
	Ticker    string
	Owned     int
	Requested int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("cannot sell %d shares of %s: you only own %d", e.Requested, e.Ticker, e.Owned)
}
func (e *InsufficientSharesError) Is(target error) bool { return target == ErrInsufficientShares }

// PersistenceError reports a failure to load or save the portfolio state.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot %s portfolio: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("cannot %s portfolio %q: %v", e.Op, e.Path, e.Err)
}
func (e *PersistenceError) Unwrap() error        { return e.Err }
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
