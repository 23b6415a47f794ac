// Package tradesim simulates a trading account: a cash balance, share
// holdings and an audit journal of every transaction.
//
// The core functionalities include:
//   - Account operations: deposit, withdraw, buy and sell shares. Each
//     operation is validated before anything changes, so a failed operation
//     leaves the account untouched, the cash balance never goes negative and
//     a held symbol always has a positive quantity.
//   - Price oracle: shares are priced at call time by an injected PriceOracle,
//     a static PriceTable by default, or any function through PriceFunc.
//   - Reporting: total portfolio value, profit or loss against an initial
//     deposit, holdings and the ordered list of transactions.
//   - Audit export: the journal can be written as JSONL, one transaction per
//     line.
//
// Amounts are exact decimals (Money, Quantity), never floats.
//
// This package serves as the foundational logic for the `tsim` command-line
// tool.
package tradesim
