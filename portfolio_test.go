package papertrade

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

// TestTradingScenario follows a buy, buy more, sell all sequence on AAPL.
func TestTradingScenario(t *testing.T) {
	m := newTestMarket(t)
	p := NewPortfolio(DefaultStartingCash())

	// buy 10 AAPL @ 175.20
	p, tx, err := p.Buy("AAPL", 10, m, at)
	if err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if !p.Cash().Equal(USD(98248)) {
		t.Errorf("Cash() = %v, want 98248.00", p.Cash())
	}
	if h, _ := p.Holding("AAPL"); h.Quantity != 10 || !h.AvgPrice.Equal(USD(175.20)) {
		t.Errorf("Holding(AAPL) = %+v, want {10 175.20}", h)
	}
	if tx.Type() != TxBuy || tx.Ticker() != "AAPL" || tx.Quantity() != 10 || !tx.Price().Equal(USD(175.20)) || !tx.Total().Equal(USD(1752)) || tx.When() != at {
		t.Errorf("Buy() transaction = %+v", tx)
	}

	// buy 5 more @ 180.00
	setPrice(t, m, "AAPL", USD(180))
	p, tx, err = p.Buy("AAPL", 5, m, at)
	if err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if !tx.Total().Equal(USD(900)) {
		t.Errorf("Buy() total = %v, want 900.00", tx.Total())
	}
	if !p.Cash().Equal(USD(97348)) {
		t.Errorf("Cash() = %v, want 97348.00", p.Cash())
	}
	if h, _ := p.Holding("AAPL"); h.Quantity != 15 || !h.AvgPrice.Equal(USD(176.80)) {
		t.Errorf("Holding(AAPL) = %+v, want {15 176.80}", h)
	}

	// sell all 15 @ 190.00
	setPrice(t, m, "AAPL", USD(190))
	p, tx, err = p.Sell("AAPL", 15, m, at)
	if err != nil {
		t.Fatalf("Sell() error = %v", err)
	}
	if !tx.Total().Equal(USD(2850)) || tx.Type() != TxSell {
		t.Errorf("Sell() transaction = %+v, want SELL for 2850.00", tx)
	}
	if !p.Cash().Equal(USD(100198)) {
		t.Errorf("Cash() = %v, want 100198.00", p.Cash())
	}
	if _, ok := p.Holding("AAPL"); ok {
		t.Errorf("Holding(AAPL) still exists after selling all shares")
	}
	if p.Len() != 3 {
		t.Errorf("Len() = %d, want 3", p.Len())
	}
}

func TestBuyIsPure(t *testing.T) {
	m := newTestMarket(t)
	p := NewPortfolio(DefaultStartingCash())
	next, _, err := p.Buy("msft", 3, m, at)
	if err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if !p.Cash().Equal(DefaultStartingCash()) || p.Len() != 0 || len(p.Tickers()) != 0 {
		t.Errorf("Buy() modified its receiver")
	}
	if h, ok := next.Holding("MSFT"); !ok || h.Quantity != 3 {
		t.Errorf("Buy(msft) did not normalize the ticker: %v", next.Tickers())
	}
}

func TestBuyErrors(t *testing.T) {
	m := newTestMarket(t)
	p := NewPortfolio(USD(1000))

	testCases := []struct {
		name     string
		ticker   string
		quantity int
		want     error
	}{
		{"unknown ticker", "XYZ", 1, ErrUnknownTicker},
		{"insufficient funds", "MSFT", 3, ErrInsufficientFunds},
		{"zero quantity", "AAPL", 0, ErrInvalidQuantity},
		{"negative quantity", "AAPL", -5, ErrInvalidQuantity},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, tx, err := p.Buy(tc.ticker, tc.quantity, m, at)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Buy() error = %v, want %v", err, tc.want)
			}
			if next != nil || tx != (Transaction{}) {
				t.Errorf("Buy() returned a result along with an error")
			}
			if !p.Cash().Equal(USD(1000)) || p.Len() != 0 || len(p.Tickers()) != 0 {
				t.Errorf("failed Buy() modified the portfolio")
			}
		})
	}

	_, _, err := p.Buy("MSFT", 3, m, at)
	var funds *InsufficientFundsError
	if !errors.As(err, &funds) {
		t.Fatalf("Buy() error = %v, want an InsufficientFundsError", err)
	}
	if !funds.Required.Equal(USD(1021.62)) || !funds.Available.Equal(USD(1000)) {
		t.Errorf("InsufficientFundsError = %+v, want required 1021.62 available 1000.00", funds)
	}
}

func TestBuyExactCash(t *testing.T) {
	m := newTestMarket(t)
	p, _, err := NewPortfolio(USD(1752)).Buy("AAPL", 10, m, at)
	if err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if !p.Cash().IsZero() {
		t.Errorf("Cash() = %v, want 0", p.Cash())
	}
}

func TestSell(t *testing.T) {
	m := newTestMarket(t)
	p := must3(NewPortfolio(DefaultStartingCash()).Buy("JPM", 10, m, at))

	t.Run("partial sell keeps average price", func(t *testing.T) {
		setPrice(t, m, "JPM", USD(160))
		next, _, err := p.Sell("jpm", 4, m, at)
		if err != nil {
			t.Fatalf("Sell() error = %v", err)
		}
		h, ok := next.Holding("JPM")
		if !ok || h.Quantity != 6 || !h.AvgPrice.Equal(USD(150.12)) {
			t.Errorf("Holding(JPM) = %+v, want {6 150.12}", h)
		}
		if want := p.Cash().Add(USD(640)); !next.Cash().Equal(want) {
			t.Errorf("Cash() = %v, want %v", next.Cash(), want)
		}
	})

	testCases := []struct {
		name      string
		ticker    string
		quantity  int
		wantOwned int
	}{
		{"more than owned", "JPM", 11, 10},
		{"never bought", "AAPL", 1, 0},
		{"unknown ticker", "XYZ", 1, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			next, _, err := p.Sell(tc.ticker, tc.quantity, m, at)
			var shares *InsufficientSharesError
			if !errors.As(err, &shares) || !errors.Is(err, ErrInsufficientShares) {
				t.Fatalf("Sell() error = %v, want an InsufficientSharesError", err)
			}
			if shares.Owned != tc.wantOwned || shares.Requested != tc.quantity {
				t.Errorf("InsufficientSharesError = %+v, want owned %d", shares, tc.wantOwned)
			}
			if next != nil || p.Len() != 1 {
				t.Errorf("failed Sell() modified the portfolio")
			}
		})
	}

	if _, _, err := p.Sell("JPM", 0, m, at); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("Sell(0) error = %v, want ErrInvalidQuantity", err)
	}
}

func TestValuate(t *testing.T) {
	m := newTestMarket(t)
	p := NewPortfolio(DefaultStartingCash())
	p = must3(p.Buy("AAPL", 10, m, at))
	p = must3(p.Buy("MSFT", 2, m, at))
	setPrice(t, m, "AAPL", USD(170))
	setPrice(t, m, "MSFT", USD(350))

	v, err := p.Valuate(m)
	if err != nil {
		t.Fatalf("Valuate() error = %v", err)
	}
	// cash: 100000 - 1752 - 681.08 = 97566.92
	if !v.Cash.Equal(USD(97566.92)) {
		t.Errorf("Cash = %v, want 97566.92", v.Cash)
	}
	if len(v.Positions) != 2 || v.Positions[0].Ticker != "AAPL" || v.Positions[1].Ticker != "MSFT" {
		t.Fatalf("Positions = %+v", v.Positions)
	}
	aapl := v.Positions[0]
	if !aapl.MarketValue.Equal(USD(1700)) || !aapl.Invested.Equal(USD(1752)) || !aapl.ProfitLoss.Equal(USD(-52)) {
		t.Errorf("AAPL position = %+v", aapl)
	}
	msft := v.Positions[1]
	if !msft.MarketValue.Equal(USD(700)) || !msft.ProfitLoss.Equal(USD(18.92)) {
		t.Errorf("MSFT position = %+v", msft)
	}
	if !v.StockValue.Equal(USD(2400)) || !v.ProfitLoss.Equal(USD(-33.08)) || !v.TotalValue.Equal(USD(99966.92)) {
		t.Errorf("Valuation totals = %v %v %v", v.StockValue, v.ProfitLoss, v.TotalValue)
	}
	if total := must(p.TotalValue(m)); !total.Equal(v.TotalValue) {
		t.Errorf("TotalValue() = %v, want %v", total, v.TotalValue)
	}

	// A portfolio holding an unlisted ticker is inconsistent.
	other, err := NewMarket([]Listing{{"AAPL", "Apple Inc.", USD(1)}}, NewSequence())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.TotalValue(other); !errors.Is(err, ErrUnknownTicker) {
		t.Errorf("TotalValue() error = %v, want ErrUnknownTicker", err)
	}
}

func TestPropertyAccounting(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := NewDefaultMarket(NewRandomSource(rapid.Uint64Min(1).Draw(t, "seed")))
		tickers := m.Tickers()
		p := NewPortfolio(USD(rapid.IntRange(0, 200_000).Draw(t, "cash")))

		steps := rapid.IntRange(1, 50).Draw(t, "steps")
		for range steps {
			m.AdvancePrices()
			ticker := rapid.SampledFrom(tickers).Draw(t, "ticker")
			qty := rapid.IntRange(1, 300).Draw(t, "qty")
			price := must(m.Price(ticker))
			before, hadBefore := p.Holding(ticker)

			if rapid.Bool().Draw(t, "buy") {
				next, _, err := p.Buy(ticker, qty, m, at)
				if p.Cash().LessThan(price.Mul(qty)) {
					if !errors.Is(err, ErrInsufficientFunds) {
						t.Fatalf("Buy() error = %v, want ErrInsufficientFunds", err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("Buy() error = %v", err)
				}
				if want := p.Cash().Sub(price.Mul(qty)); !next.Cash().Equal(want) {
					t.Fatalf("Cash() = %v, want %v", next.Cash(), want)
				}
				after, _ := next.Holding(ticker)
				if after.Quantity != before.Quantity+qty {
					t.Fatalf("quantity = %d, want %d", after.Quantity, before.Quantity+qty)
				}
				if want := before.Cost().Add(price.Mul(qty)).Div(after.Quantity); hadBefore && !after.AvgPrice.Equal(want) {
					t.Fatalf("avg price = %v, want %v", after.AvgPrice, want)
				}
				p = next
			} else {
				next, _, err := p.Sell(ticker, qty, m, at)
				if before.Quantity < qty {
					if !errors.Is(err, ErrInsufficientShares) {
						t.Fatalf("Sell() error = %v, want ErrInsufficientShares", err)
					}
					continue
				}
				if err != nil {
					t.Fatalf("Sell() error = %v", err)
				}
				if want := p.Cash().Add(price.Mul(qty)); !next.Cash().Equal(want) {
					t.Fatalf("Cash() = %v, want %v", next.Cash(), want)
				}
				after, ok := next.Holding(ticker)
				if before.Quantity == qty && ok {
					t.Fatalf("holding %s not removed after selling all", ticker)
				}
				if ok && (after.Quantity != before.Quantity-qty || !after.AvgPrice.Equal(before.AvgPrice)) {
					t.Fatalf("holding after sell = %+v, before %+v", after, before)
				}
				p = next
			}

			if p.Cash().IsNegative() {
				t.Fatalf("negative cash %v", p.Cash())
			}
			want := p.Cash()
			for ticker, h := range p.Holdings() {
				if h.Quantity == 0 {
					t.Fatalf("zero quantity holding %s", ticker)
				}
				want = want.Add(must(m.Price(ticker)).Mul(h.Quantity))
			}
			if got := must(p.TotalValue(m)); !got.Equal(want) {
				t.Fatalf("TotalValue() = %v, want %v", got, want)
			}
		}
	})
}

func must3(p *Portfolio, _ Transaction, err error) *Portfolio {
	if err != nil {
		panic(err)
	}
	return p
}

func TestCurrencyMismatch(t *testing.T) {
	usd := newTestMarket(t)
	eur, err := NewMarket([]Listing{{"AAPL", "Apple Inc.", M(160, "EUR")}}, NewSequence())
	if err != nil {
		t.Fatalf("NewMarket() error = %v", err)
	}

	p := NewPortfolio(M(1000, "EUR"))
	if _, _, err := p.Buy("AAPL", 1, usd, at); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Buy() in a USD market error = %v, want ErrCurrencyMismatch", err)
	}

	p = must3(p.Buy("AAPL", 2, eur, at))
	if !p.Cash().Equal(M(680, "EUR")) {
		t.Errorf("Cash() = %v, want 680.00 EUR", p.Cash())
	}
	if _, _, err := p.Sell("AAPL", 1, usd, at); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Sell() in a USD market error = %v, want ErrCurrencyMismatch", err)
	}
	if _, err := p.Valuate(usd); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("Valuate() in a USD market error = %v, want ErrCurrencyMismatch", err)
	}
	if _, err := p.TotalValue(eur); err != nil {
		t.Errorf("TotalValue() in the EUR market error = %v", err)
	}
}
