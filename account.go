package papertrade

import (
	"errors"
	"io/fs"
	"log"
	"sync"

	"github.com/etnz/papertrade/timestamp"
)

// Account is a portfolio bound to its Store: every successful trade is saved.
//
// Trades are serialized, one mutation in flight at a time. A trade whose save
// fails is still executed in memory; the account is then flagged Unsaved until
// the next successful save.
type Account struct {
	mu        sync.Mutex
	portfolio *Portfolio
	store     Store
	clock     timestamp.Clock
	unsaved   bool
}

// OpenAccount loads the portfolio from 'store'.
//
// When there is no saved portfolio, or it cannot be read, a new portfolio with
// 'startingCash' is created and saved immediately. The returned error is only
// about that first save; the account is usable in all cases.
func OpenAccount(store Store, startingCash Money) (*Account, error) {
	a := &Account{store: store}
	p, err := store.Load()
	switch {
	case err == nil:
		log.Println("portfolio data loaded successfully")
		a.portfolio = p
		return a, nil
	case errors.Is(err, fs.ErrNotExist):
		log.Println("no portfolio file found, starting with a new portfolio")
	default:
		log.Printf("warning, %v: starting with a new portfolio", err)
	}
	a.portfolio = NewPortfolio(startingCash)
	return a, a.Save()
}

// WithClock sets the clock used to timestamp transactions.
func (a *Account) WithClock(c timestamp.Clock) *Account {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.clock = c
	return a
}

// Portfolio returns the current portfolio. It must be treated as read only.
func (a *Account) Portfolio() *Portfolio {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.portfolio
}

// Unsaved reports whether the last save failed.
func (a *Account) Unsaved() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.unsaved
}

// Buy buys 'quantity' shares of 'ticker' at the current market price and saves the portfolio.
//
// Engine errors leave the account unchanged. A PersistenceError means the trade
// was executed but not saved.
func (a *Account) Buy(ticker string, quantity int, m *Market) (Transaction, error) {
	return a.apply(func(p *Portfolio, at timestamp.Timestamp) (*Portfolio, Transaction, error) {
		return p.Buy(ticker, quantity, m, at)
	})
}

// Sell sells 'quantity' shares of 'ticker' at the current market price and saves the portfolio.
//
// Engine errors leave the account unchanged. A PersistenceError means the trade
// was executed but not saved.
func (a *Account) Sell(ticker string, quantity int, m *Market) (Transaction, error) {
	return a.apply(func(p *Portfolio, at timestamp.Timestamp) (*Portfolio, Transaction, error) {
		return p.Sell(ticker, quantity, m, at)
	})
}

type transition func(*Portfolio, timestamp.Timestamp) (*Portfolio, Transaction, error)

func (a *Account) apply(f transition) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	next, tx, err := f(a.portfolio, a.clock.Now())
	if err != nil {
		return Transaction{}, err
	}
	a.portfolio = next
	return tx, a.save()
}

// TotalValue returns the value of the portfolio at current market prices.
func (a *Account) TotalValue(m *Market) (Money, error) {
	return a.Portfolio().TotalValue(m)
}

// Save saves the portfolio.
func (a *Account) Save() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.save()
}

func (a *Account) save() error {
	if err := a.store.Save(a.portfolio); err != nil {
		log.Printf("warning, portfolio not saved: %v", err)
		a.unsaved = true
		return err
	}
	a.unsaved = false
	return nil
}
