package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/etnz/papertrade"
	"github.com/etnz/papertrade/renderer"
	"github.com/google/subcommands"
)

type playCmd struct {
	pause time.Duration
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "start the interactive trading simulator" }
func (*playCmd) Usage() string {
	return `ptrade [-state-file <file>] [-seed <n>] play [-pause <duration>]

  Starts the interactive menu: view the market, view the portfolio, buy and sell
  stocks, and review the transaction history. Market prices move before every menu.
  The portfolio is saved after every trade and on exit.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.pause, "pause", 2*time.Second, "Pause between two menus, while market prices are updating.")
}

func (c *playCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s := &session{
		account: openAccount(),
		market:  openMarket(),
		in:      stdin,
		out:     stdout,
		pause:   c.pause,
		clear:   !*plain,
	}
	if err := s.run(ctx); err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// session is one interactive game on an account.
type session struct {
	account *papertrade.Account
	market  *papertrade.Market
	in      io.Reader
	out     io.Writer
	pause   time.Duration
	clear   bool // clear the terminal before each screen

	lines <-chan string   // lines read from in, closed at end of input
	done  <-chan struct{} // closed when the session must stop
}

const menu = ` Main Menu
---------------------
 [1] View Market Data 📈
 [2] View My Portfolio 💼
 [3] Buy Stock 🛒
 [4] Sell Stock 💰
 [5] View Transaction History 📜
 [6] Exit 🚪
`

// run loops over the main menu until the user exits, the input ends, or the context is done.
// The portfolio is saved before returning.
func (s *session) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.lines, s.done = readLines(ctx, s.in), ctx.Done()

	for {
		s.market.AdvancePrices()
		s.mainMenu()
		choice, ok := s.prompt("Choose an option: ")
		if !ok || ctx.Err() != nil {
			return s.exit()
		}

		switch choice {
		case "1":
			s.viewMarket()
		case "2":
			s.viewPortfolio()
			s.pressEnter()
		case "3":
			s.buy()
		case "4":
			s.sell()
		case "5":
			s.viewTransactions()
		case "6":
			return s.exit()
		default:
			fmt.Fprintln(s.out, "Invalid option. Please try again.")
		}

		fmt.Fprintln(s.out, "\nMarket prices are updating...")
		select {
		case <-ctx.Done():
			return s.exit()
		case <-time.After(s.pause):
		}
	}
}

// readLines reads 'r' line by line in the background, so that waiting for the user
// can be interrupted.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// prompt prints 'msg' and reads a line. It returns false once the input is exhausted
// or the session is stopped.
func (s *session) prompt(msg string) (string, bool) {
	fmt.Fprint(s.out, msg)
	select {
	case line, ok := <-s.lines:
		if ok {
			return strings.TrimSpace(line), true
		}
	case <-s.done:
	}
	fmt.Fprintln(s.out)
	return "", false
}

func (s *session) pressEnter() {
	s.prompt("\nPress Enter to return to the menu...")
}

func (s *session) clearScreen() {
	if s.clear {
		fmt.Fprint(s.out, "\033[H\033[2J")
	}
}

func (s *session) markdown(md string) { fmt.Fprint(s.out, style(md)) }

func (s *session) mainMenu() {
	s.clearScreen()
	p := s.account.Portfolio()
	total, err := p.TotalValue(s.market)
	if err != nil {
		log.Printf("warning, cannot value the portfolio: %v", err)
	}
	s.markdown(renderer.Summary(renderer.SummaryData{
		Cash:       p.Cash(),
		TotalValue: total,
		Unsaved:    s.account.Unsaved(),
	}))
	fmt.Fprint(s.out, menu)
}

func (s *session) viewMarket() {
	s.clearScreen()
	s.markdown(renderer.Market(s.market.Quotes()))
	s.pressEnter()
}

func (s *session) viewPortfolio() {
	s.clearScreen()
	v, err := s.account.Portfolio().Valuate(s.market)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.markdown(renderer.Portfolio(v))
}

func (s *session) viewTransactions() {
	s.clearScreen()
	s.markdown(renderer.Transactions(slices.Collect(s.account.Portfolio().Transactions())))
	s.pressEnter()
}

func (s *session) buy() {
	s.clearScreen()
	s.markdown(renderer.Market(s.market.Quotes()))
	fmt.Fprintf(s.out, "\nYour cash: %s\n", s.account.Portfolio().Cash())

	ticker, ok := s.prompt("Enter the ticker of the stock you want to buy: ")
	if !ok {
		return
	}
	ticker = strings.ToUpper(ticker)
	price, err := s.market.Price(ticker)
	if err != nil {
		fmt.Fprintf(s.out, "Error: Stock '%s' not found.\n", ticker)
		s.pressEnter()
		return
	}
	fmt.Fprintf(s.out, "Current price of %s: %s\n", ticker, price)

	answer, ok := s.prompt("How many shares do you want to buy? ")
	if !ok {
		return
	}
	quantity, err := parseQuantity(answer)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v.\n", err)
		s.pressEnter()
		return
	}
	tx, err := s.account.Buy(ticker, quantity, s.market)
	reportTrade(s.out, s.out, tx, err)
	s.pressEnter()
}

func (s *session) sell() {
	s.viewPortfolio()
	p := s.account.Portfolio()
	if len(p.Tickers()) == 0 {
		fmt.Fprintln(s.out, "\nYou do not own any stocks to sell.")
		s.pressEnter()
		return
	}

	ticker, ok := s.prompt("\nEnter the ticker of the stock you want to sell: ")
	if !ok {
		return
	}
	ticker = strings.ToUpper(ticker)
	if _, ok := p.Holding(ticker); !ok {
		fmt.Fprintf(s.out, "Error: You do not own any shares of '%s'.\n", ticker)
		s.pressEnter()
		return
	}

	answer, ok := s.prompt("How many shares do you want to sell? ")
	if !ok {
		return
	}
	quantity, err := parseQuantity(answer)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v.\n", err)
		s.pressEnter()
		return
	}
	tx, err := s.account.Sell(ticker, quantity, s.market)
	reportTrade(s.out, s.out, tx, err)
	s.pressEnter()
}

// exit saves the portfolio and says goodbye.
func (s *session) exit() error {
	if err := s.account.Save(); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return err
	}
	fmt.Fprintln(s.out, "\nSaving portfolio and exiting. Happy trading! 👋")
	return nil
}
