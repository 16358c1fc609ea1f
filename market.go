package papertrade

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// MaxMove is the largest relative price change in a single tick (5%).
const MaxMove = 0.05

// Listing defines an instrument when the market opens.
type Listing struct {
	Ticker string
	Name   string
	Price  Money
}

// DefaultListings returns the eight stocks of the simulated market.
func DefaultListings() []Listing {
	return []Listing{
		{"AAPL", "Apple Inc.", USD(175.20)},
		{"MSFT", "Microsoft Corp.", USD(340.54)},
		{"GOOGL", "Alphabet Inc.", USD(140.88)},
		{"AMZN", "Amazon.com, Inc.", USD(135.30)},
		{"TSLA", "Tesla, Inc.", USD(260.02)},
		{"NVDA", "NVIDIA Corporation", USD(470.61)},
		{"META", "Meta Platforms, Inc.", USD(305.49)},
		{"JPM", "JPMorgan Chase & Co.", USD(150.12)},
	}
}

// Quote is a point-in-time view of an instrument.
type Quote struct {
	Ticker string
	Name   string
	Price  Money
	Change Money
}

// Market holds the fixed set of instruments available for trading.
type Market struct {
	instruments []*Instrument // sorted by ticker
	index       map[string]*Instrument
	source      PercentSource
}

// NewMarket opens a market with 'listings'. Price movements are drawn from 'source'.
func NewMarket(listings []Listing, source PercentSource) (*Market, error) {
	if source == nil {
		return nil, errors.New("market needs a price movement source")
	}
	m := &Market{
		instruments: make([]*Instrument, 0, len(listings)),
		index:       make(map[string]*Instrument, len(listings)),
		source:      source,
	}
	var errs error
	for _, l := range listings {
		ticker := normalizeTicker(l.Ticker)
		switch {
		case ticker == "":
			errs = errors.Join(errs, fmt.Errorf("listing %q has no ticker", l.Name))
		case !l.Price.IsPositive():
			errs = errors.Join(errs, fmt.Errorf("listing %s has a non positive price %s", ticker, l.Price))
		case m.Has(ticker):
			errs = errors.Join(errs, fmt.Errorf("listing %s is already defined", ticker))
		default:
			i := newInstrument(l)
			m.instruments = append(m.instruments, i)
			m.index[ticker] = i
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("invalid market listings: %w", errs)
	}
	slices.SortFunc(m.instruments, func(a, b *Instrument) int { return strings.Compare(a.ticker, b.ticker) })
	return m, nil
}

// NewDefaultMarket opens a market with the default listings.
func NewDefaultMarket(source PercentSource) *Market {
	m, err := NewMarket(DefaultListings(), source)
	if err != nil {
		panic(err) // default listings are valid
	}
	return m
}

func normalizeTicker(ticker string) string { return strings.ToUpper(strings.TrimSpace(ticker)) }

// Has reports whether 'ticker' is listed (case insensitive).
func (m *Market) Has(ticker string) bool {
	_, ok := m.index[normalizeTicker(ticker)]
	return ok
}

// Lookup returns the instrument listed as 'ticker' (case insensitive) or an UnknownTickerError.
func (m *Market) Lookup(ticker string) (*Instrument, error) {
	t := normalizeTicker(ticker)
	i, ok := m.index[t]
	if !ok {
		return nil, &UnknownTickerError{Ticker: t}
	}
	return i, nil
}

// Price returns the current price of 'ticker'.
func (m *Market) Price(ticker string) (Money, error) {
	i, err := m.Lookup(ticker)
	if err != nil {
		return Money{}, err
	}
	return i.Price(), nil
}

// PriceChange returns the last price change of 'ticker'.
func (m *Market) PriceChange(ticker string) (Money, error) {
	i, err := m.Lookup(ticker)
	if err != nil {
		return Money{}, err
	}
	return i.Change(), nil
}

// AdvancePrices applies one tick to every instrument.
func (m *Market) AdvancePrices() {
	for _, i := range m.instruments {
		i.tick(m.source.Next() * MaxMove)
	}
}

// Tickers returns the listed tickers in alphabetical order.
func (m *Market) Tickers() []string {
	tickers := make([]string, len(m.instruments))
	for n, i := range m.instruments {
		tickers[n] = i.ticker
	}
	return tickers
}

// Quotes returns the current quote of every instrument, ordered by ticker.
func (m *Market) Quotes() []Quote {
	quotes := make([]Quote, len(m.instruments))
	for n, i := range m.instruments {
		quotes[n] = Quote{Ticker: i.ticker, Name: i.name, Price: i.price, Change: i.Change()}
	}
	return quotes
}
