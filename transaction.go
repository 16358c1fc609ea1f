package papertrade

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/papertrade/timestamp"
)

// TxType identifies the side of a transaction.
type TxType string

// Transaction types, as persisted.
const (
	TxBuy  TxType = "BUY"
	TxSell TxType = "SELL"
)

// ParseTxType parses "BUY" or "SELL".
func ParseTxType(s string) (TxType, error) {
	switch t := TxType(s); t {
	case TxBuy, TxSell:
		return t, nil
	default:
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
}

// Transaction is the immutable record of an executed buy or sell.
type Transaction struct {
	at       timestamp.Timestamp
	typ      TxType
	ticker   string
	quantity int
	price    Money
	total    Money
}

// NewTransaction records 'quantity' shares of 'ticker' traded at 'price' per share.
// The total is derived as quantity × price rounded to cents.
func NewTransaction(at timestamp.Timestamp, typ TxType, ticker string, quantity int, price Money) Transaction {
	return Transaction{
		at:       at,
		typ:      typ,
		ticker:   ticker,
		quantity: quantity,
		price:    price,
		total:    price.Mul(quantity),
	}
}

func (t Transaction) When() timestamp.Timestamp { return t.at }
func (t Transaction) Type() TxType              { return t.typ }
func (t Transaction) Ticker() string            { return t.ticker }
func (t Transaction) Quantity() int             { return t.quantity }
func (t Transaction) Price() Money              { return t.price }
func (t Transaction) Total() Money              { return t.total }

// Equal reports whether both transactions record the same trade.
func (t Transaction) Equal(o Transaction) bool {
	return t.at == o.at && t.typ == o.typ && t.ticker == o.ticker && t.quantity == o.quantity &&
		t.price.Equal(o.price) && t.total.Equal(o.total)
}

// Validate checks the consistency of a transaction read from storage.
func (t Transaction) Validate() error {
	if _, err := ParseTxType(string(t.typ)); err != nil {
		return err
	}
	if t.at.IsZero() {
		return fmt.Errorf("%s transaction without timestamp", t.typ)
	}
	if t.ticker == "" {
		return fmt.Errorf("%s transaction without ticker", t.typ)
	}
	if t.quantity <= 0 {
		return fmt.Errorf("%s transaction quantity must be positive, got %d", t.typ, t.quantity)
	}
	if !t.price.IsPositive() {
		return fmt.Errorf("%s transaction price must be positive, got %s", t.typ, t.price)
	}
	if want := t.price.Mul(t.quantity); !t.total.Equal(want) {
		return fmt.Errorf("%s transaction total %s does not match %d × %s", t.typ, t.total, t.quantity, t.price)
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w objectWriter
	w.Field("timestamp", t.at)
	w.Field("type", t.typ)
	w.Field("ticker", t.ticker)
	w.Field("quantity", t.quantity)
	w.Field("price", t.price)
	w.Field("total", t.total)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		Timestamp timestamp.Timestamp `json:"timestamp"`
		Type      TxType              `json:"type"`
		Ticker    string              `json:"ticker"`
		Quantity  int                 `json:"quantity"`
		Price     Money               `json:"price"`
		Total     Money               `json:"total"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction{
		at:       temp.Timestamp,
		typ:      temp.Type,
		ticker:   temp.Ticker,
		quantity: temp.Quantity,
		price:    temp.Price,
		total:    temp.Total,
	}
	return nil
}

// in returns a copy of t with its amounts in currency 'c'.
func (t Transaction) in(c string) Transaction {
	t.price, t.total = t.price.in(c), t.total.in(c)
	return t
}
