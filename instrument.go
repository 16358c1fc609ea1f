package papertrade

import "iter"

// Instrument is a tradable stock: a fixed identity and a fluctuating price.
type Instrument struct {
	ticker  string
	name    string
	price   Money
	history *History[Money]
}

func newInstrument(l Listing) *Instrument {
	i := &Instrument{
		ticker:  normalizeTicker(l.Ticker),
		name:    l.Name,
		price:   l.Price,
		history: NewHistory[Money](HistorySize),
	}
	i.history.Append(i.price)
	return i
}

func (i *Instrument) Ticker() string { return i.ticker }
func (i *Instrument) Name() string   { return i.name }
func (i *Instrument) Price() Money   { return i.price }

// History returns the recent prices, oldest first. The current price is the last one.
func (i *Instrument) History() iter.Seq[Money] { return i.history.Values() }

// HistoryLen returns the number of recent prices remembered.
func (i *Instrument) HistoryLen() int { return i.history.Len() }

// Change returns the difference between the current price and the previous one,
// or zero if there is no previous price.
func (i *Instrument) Change() Money {
	prev, ok := i.history.Previous()
	if !ok {
		return M(0, i.price.Currency())
	}
	return i.price.Sub(prev)
}

// tick moves the price by 'pct' (a fraction, e.g. 0.05 for +5%) and records it.
func (i *Instrument) tick(pct float64) {
	i.price = i.price.Scale(pct)
	if i.history.Len() == 0 {
		i.history.Append(i.price)
	}
	i.history.Append(i.price)
}
