package papertrade

import (
	"testing"

	"github.com/etnz/papertrade/timestamp"
)

// at is the timestamp used by tests for trades.
var at = timestamp.MustParse("2025-01-02 10:00:00")

// testListings is a small market used by most tests.
func testListings() []Listing {
	return []Listing{
		{"AAPL", "Apple Inc.", USD(175.20)},
		{"MSFT", "Microsoft Corp.", USD(340.54)},
		{"JPM", "JPMorgan Chase & Co.", USD(150.12)},
	}
}

// newTestMarket returns a market over testListings that never moves unless told to.
func newTestMarket(t testing.TB, moves ...float64) *Market {
	t.Helper()
	m, err := NewMarket(testListings(), NewSequence(moves...))
	if err != nil {
		t.Fatalf("NewMarket() error = %v", err)
	}
	return m
}

// setPrice forces the current price of an instrument.
func setPrice(t testing.TB, m *Market, ticker string, price Money) {
	t.Helper()
	i, err := m.Lookup(ticker)
	if err != nil {
		t.Fatalf("Lookup(%q) error = %v", ticker, err)
	}
	i.price = price
	i.history.Append(price)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
