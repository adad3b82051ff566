// Package cgt computes South African capital gains tax on cryptocurrency
// activity from a pasted transaction ledger.
//
// The package is made of two stages:
//   - Parse converts loosely formatted ledger text (tab or comma separated,
//     several date formats, any common number locale) into transactions
//     sorted by date.
//   - Compute replays those transactions against per asset FIFO inventories
//     of lots, records a DisposalEvent for every SELL and TRADE, and
//     aggregates them into TaxYearSummary and 1 March YearBoundarySnapshot.
//
// A South African tax year ends on the last day of February and is named
// after that calendar year: a disposal on 15 March 2024 belongs to tax year
// 2025.
//
// The package is pure: it performs no I/O, holds no global state and never
// logs. Every error is returned with enough context (line number, asset,
// quantities) for the caller to fix its input.
package cgt
