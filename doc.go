// Package mwr computes money-weighted rates of return of an investment
// portfolio.
//
// The core functionalities include:
//   - Ledger Management: reading a chronological record of buys, sells,
//     deposits, withdrawals and dividends from JSONL or CSV files, and
//     converting broker exports into it.
//   - Valuation: deriving the positions held and their market value from
//     the ledger.
//   - Return Engine: a stateless calculation that splits the ledger into
//     standard analysis periods (year-to-date, trailing years, all time),
//     turns each period into dated cash flows and solves their internal
//     rate of return (XIRR) with Newton-Raphson iterations.
//
// This package serves as the foundational logic for the `mwr` command-line
// tool.
package mwr
