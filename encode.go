package papertrade

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// The persisted state is a single pretty printed JSON object:
//
//	{
//	  "cash": 98248.00,
//	  "holdings": {
//	    "AAPL": { "quantity": 10, "avgPrice": 175.20 }
//	  },
//	  "transactions": [
//	    { "timestamp": "2025-01-02 10:00:00", "type": "BUY", "ticker": "AAPL",
//	      "quantity": 10, "price": 175.20, "total": 1752.00 }
//	  ]
//	}
//
// Fields are written in this order, holdings in ticker order and transactions
// in chronological order, so that the file diffs nicely between runs.

// EncodePortfolio writes the portfolio state to w.
//
// Amounts are persisted without their currency: only DefaultCurrency portfolios can be encoded.
func EncodePortfolio(w io.Writer, p *Portfolio) error {
	if p.Currency() != DefaultCurrency {
		return fmt.Errorf("cannot encode a portfolio in %s, only %s is supported: %w", p.Currency(), DefaultCurrency, ErrCurrencyMismatch)
	}
	var holdings objectWriter
	for ticker, h := range p.Holdings() {
		holdings.Field(ticker, h)
	}
	hjson, err := holdings.MarshalJSON()
	if err != nil {
		return err
	}

	var obj objectWriter
	obj.Field("cash", p.cash)
	obj.Raw("holdings", hjson)
	obj.Field("transactions", p.transactions)
	data, err := obj.Indent()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// DecodePortfolio reads a portfolio state from r and validates it.
func DecodePortfolio(r io.Reader) (*Portfolio, error) {
	var temp struct {
		Cash         *Money             `json:"cash"`
		Holdings     map[string]Holding `json:"holdings"`
		Transactions []Transaction      `json:"transactions"`
	}
	if err := json.NewDecoder(r).Decode(&temp); err != nil {
		return nil, fmt.Errorf("invalid portfolio format: %w", err)
	}
	if temp.Cash == nil {
		return nil, errors.New("invalid portfolio format: missing cash")
	}

	p := NewPortfolio(temp.Cash.in(DefaultCurrency))
	for ticker, h := range temp.Holdings {
		h.AvgPrice = h.AvgPrice.in(DefaultCurrency)
		p.holdings[ticker] = h
	}
	for _, tx := range temp.Transactions {
		p.transactions = append(p.transactions, tx.in(DefaultCurrency))
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid portfolio: %w", err)
	}
	return p, nil
}
