package papertrade

import "fmt"

// Valuation is a mark-to-market view of a portfolio against current market prices.
type Valuation struct {
	Positions  []PositionValue // in ticker order
	Cash       Money
	StockValue Money // sum of positions market value
	Invested   Money // sum of positions cost at average price
	ProfitLoss Money // StockValue - Invested
	TotalValue Money // Cash + StockValue
}

// PositionValue values a single holding.
type PositionValue struct {
	Ticker      string
	Name        string
	Quantity    int
	AvgPrice    Money
	Price       Money
	MarketValue Money // Quantity × Price
	Invested    Money // Quantity × AvgPrice
	ProfitLoss  Money // MarketValue - Invested
}

// Valuate values every holding at the current market price.
//
// A held ticker missing from the market is an internal consistency fault and
// is reported as an error wrapping an UnknownTickerError.
func (p *Portfolio) Valuate(m *Market) (*Valuation, error) {
	zero := M(0, p.Currency())
	v := &Valuation{
		Positions:  make([]PositionValue, 0, len(p.holdings)),
		Cash:       p.cash,
		StockValue: zero,
		Invested:   zero,
	}
	for ticker, h := range p.Holdings() {
		inst, err := m.Lookup(ticker)
		if err != nil {
			return nil, fmt.Errorf("inconsistent portfolio, cannot value %s: %w", ticker, err)
		}
		if err := p.checkCurrency(inst); err != nil {
			return nil, err
		}
		pos := PositionValue{
			Ticker:      ticker,
			Name:        inst.Name(),
			Quantity:    h.Quantity,
			AvgPrice:    h.AvgPrice,
			Price:       inst.Price(),
			MarketValue: inst.Price().Mul(h.Quantity),
			Invested:    h.Cost(),
		}
		pos.ProfitLoss = pos.MarketValue.Sub(pos.Invested)
		v.Positions = append(v.Positions, pos)
		v.StockValue = v.StockValue.Add(pos.MarketValue)
		v.Invested = v.Invested.Add(pos.Invested)
	}
	v.ProfitLoss = v.StockValue.Sub(v.Invested)
	v.TotalValue = v.Cash.Add(v.StockValue)
	return v, nil
}
