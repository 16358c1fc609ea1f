// Package papertrade is the engine of a single-user stock trading simulator.
//
// It models a small market of fixed instruments whose prices move randomly one
// tick at a time, and a portfolio that buys and sells against a cash balance.
//
// The core functionalities include:
//   - Market: a fixed set of Instruments, each remembering its ten most recent
//     prices, advanced by an injectable PercentSource.
//   - Accounting: pure Buy and Sell transitions on a Portfolio, with a single
//     weighted average cost basis per ticker and an append-only transaction log.
//   - Valuation: market value and profit/loss of every position, and the total
//     portfolio value, computed the same way for every view.
//   - Persistence: an Account saves its Portfolio to a Store after every trade,
//     in a human-readable JSON file.
//
// This package serves as the foundational logic for the `ptrade` command-line
// tool.
package papertrade
