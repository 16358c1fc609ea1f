package papertrade

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/etnz/papertrade/timestamp"
)

// DefaultCurrency is the currency of the simulated market and of every portfolio.
const DefaultCurrency = "USD"

// DefaultStartingCash returns the cash of a brand new portfolio.
func DefaultStartingCash() Money { return USD(100000) }

// Portfolio is the user's cash, positions and the log of every trade.
//
// Buy and Sell are pure: they return the resulting portfolio and leave the
// receiver untouched, so that persistence can be layered on top (see Account).
type Portfolio struct {
	cash         Money
	holdings     map[string]Holding // never contains a zero quantity
	transactions []Transaction      // chronological, append-only
}

// NewPortfolio returns an empty portfolio with 'cash'.
func NewPortfolio(cash Money) *Portfolio {
	if cash.Currency() == "" {
		cash = cash.in(DefaultCurrency)
	}
	return &Portfolio{
		cash:         cash,
		holdings:     make(map[string]Holding),
		transactions: make([]Transaction, 0),
	}
}

// Cash returns the cash balance.
func (p *Portfolio) Cash() Money { return p.cash }

// Currency returns the currency of the portfolio.
func (p *Portfolio) Currency() string { return p.cash.Currency() }

// Holding returns the position in 'ticker' (case insensitive), if any.
func (p *Portfolio) Holding(ticker string) (Holding, bool) {
	h, ok := p.holdings[normalizeTicker(ticker)]
	return h, ok
}

// Tickers returns the tickers of all positions in alphabetical order.
func (p *Portfolio) Tickers() []string { return slices.Sorted(maps.Keys(p.holdings)) }

// Holdings returns an iterator over all positions, in ticker order.
func (p *Portfolio) Holdings() iter.Seq2[string, Holding] {
	return func(yield func(string, Holding) bool) {
		for _, ticker := range p.Tickers() {
			if !yield(ticker, p.holdings[ticker]) {
				return
			}
		}
	}
}

// Transactions returns an iterator over the transaction log in chronological order.
func (p *Portfolio) Transactions() iter.Seq[Transaction] { return slices.Values(p.transactions) }

// Len returns the number of transactions in the log.
func (p *Portfolio) Len() int { return len(p.transactions) }

// Equal reports whether both portfolios have the same cash, positions and transaction log.
func (p *Portfolio) Equal(q *Portfolio) bool {
	if !p.cash.Equal(q.cash) || len(p.holdings) != len(q.holdings) {
		return false
	}
	for t, h := range p.holdings {
		o, ok := q.holdings[t]
		if !ok || o.Quantity != h.Quantity || !o.AvgPrice.Equal(h.AvgPrice) {
			return false
		}
	}
	return slices.EqualFunc(p.transactions, q.transactions, Transaction.Equal)
}

// clone returns a copy that can be modified without affecting p.
func (p *Portfolio) clone() *Portfolio {
	return &Portfolio{
		cash:         p.cash,
		holdings:     maps.Clone(p.holdings),
		transactions: slices.Clone(p.transactions),
	}
}

// Buy returns the portfolio after buying 'quantity' shares of 'ticker' at the current market price.
//
// It fails with an UnknownTickerError if the ticker is not listed and with an
// InsufficientFundsError if the cost exceeds the cash balance. On failure the
// returned portfolio is nil.
func (p *Portfolio) Buy(ticker string, quantity int, m *Market, at timestamp.Timestamp) (*Portfolio, Transaction, error) {
	if quantity <= 0 {
		return nil, Transaction{}, fmt.Errorf("cannot buy %d shares of %s: %w", quantity, ticker, ErrInvalidQuantity)
	}
	inst, err := m.Lookup(ticker)
	if err != nil {
		return nil, Transaction{}, err
	}
	price := inst.Price()
	if err := p.checkCurrency(inst); err != nil {
		return nil, Transaction{}, err
	}
	cost := price.Mul(quantity)
	if p.cash.LessThan(cost) {
		return nil, Transaction{}, &InsufficientFundsError{Required: cost, Available: p.cash}
	}

	next := p.clone()
	next.cash = next.cash.Sub(cost)
	if h, ok := next.holdings[inst.Ticker()]; ok {
		next.holdings[inst.Ticker()] = h.add(quantity, cost)
	} else {
		next.holdings[inst.Ticker()] = Holding{Quantity: quantity, AvgPrice: price}
	}
	tx := NewTransaction(at, TxBuy, inst.Ticker(), quantity, price)
	next.transactions = append(next.transactions, tx)
	return next, tx, nil
}

// Sell returns the portfolio after selling 'quantity' shares of 'ticker' at the current market price.
//
// It fails with an InsufficientSharesError if the position is missing or too small.
// Selling never changes the average price of the remaining shares; a position sold
// entirely is removed. On failure the returned portfolio is nil.
func (p *Portfolio) Sell(ticker string, quantity int, m *Market, at timestamp.Timestamp) (*Portfolio, Transaction, error) {
	ticker = normalizeTicker(ticker)
	if quantity <= 0 {
		return nil, Transaction{}, fmt.Errorf("cannot sell %d shares of %s: %w", quantity, ticker, ErrInvalidQuantity)
	}
	h, ok := p.holdings[ticker]
	if !ok || h.Quantity < quantity {
		return nil, Transaction{}, &InsufficientSharesError{Ticker: ticker, Owned: h.Quantity, Requested: quantity}
	}
	inst, err := m.Lookup(ticker)
	if err != nil {
		return nil, Transaction{}, fmt.Errorf("held position is not listed: %w", err)
	}
	if err := p.checkCurrency(inst); err != nil {
		return nil, Transaction{}, err
	}
	price := inst.Price()

	next := p.clone()
	next.cash = next.cash.Add(price.Mul(quantity))
	h.Quantity -= quantity
	if h.Quantity == 0 {
		delete(next.holdings, ticker)
	} else {
		next.holdings[ticker] = h
	}
	tx := NewTransaction(at, TxSell, ticker, quantity, price)
	next.transactions = append(next.transactions, tx)
	return next, tx, nil
}

// checkCurrency fails if 'inst' is not priced in the portfolio currency.
func (p *Portfolio) checkCurrency(inst *Instrument) error {
	if c := inst.Price().Currency(); c != p.Currency() {
		return fmt.Errorf("%s is priced in %s, the portfolio holds %s: %w", inst.Ticker(), c, p.Currency(), ErrCurrencyMismatch)
	}
	return nil
}

// TotalValue returns the cash plus the market value of every position.
func (p *Portfolio) TotalValue(m *Market) (Money, error) {
	v, err := p.Valuate(m)
	if err != nil {
		return Money{}, err
	}
	return v.TotalValue, nil
}

// Validate checks the consistency of a portfolio read from storage.
func (p *Portfolio) Validate() error {
	if p.cash.IsNegative() {
		return fmt.Errorf("negative cash balance %s", p.cash)
	}
	for t, h := range p.holdings {
		if t == "" || t != normalizeTicker(t) {
			return fmt.Errorf("invalid ticker %q in holdings", t)
		}
		if h.Quantity <= 0 {
			return fmt.Errorf("holding %s has a non positive quantity %d", t, h.Quantity)
		}
		if h.AvgPrice.IsNegative() {
			return fmt.Errorf("holding %s has a negative average price %s", t, h.AvgPrice)
		}
	}
	for i, tx := range p.transactions {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction #%d: %w", i+1, err)
		}
	}
	return nil
}
