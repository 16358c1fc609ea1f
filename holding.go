package papertrade

// Holding is a position in one instrument: a number of shares and their
// weighted average cost per share.
type Holding struct {
	Quantity int   `json:"quantity"`
	AvgPrice Money `json:"avgPrice"`
}

// Cost returns the amount invested in the position at its average cost.
func (h Holding) Cost() Money { return h.AvgPrice.Mul(h.Quantity) }

// add returns the holding after buying 'quantity' more shares for 'cost'.
// The new average price is (AvgPrice × Quantity + cost) / (Quantity + quantity), rounded to cents.
func (h Holding) add(quantity int, cost Money) Holding {
	total := h.Quantity + quantity
	return Holding{
		Quantity: total,
		AvgPrice: h.Cost().Add(cost).Div(total),
	}
}
