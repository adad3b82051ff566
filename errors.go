package cgt

import (
	"errors"
	"fmt"
)

// Errors reported while parsing a ledger. They are wrapped in a *ParseError
// carrying the line number.
var (
	ErrNoData        = errors.New("no data provided")
	ErrTooFewFields  = errors.New("too few fields")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction type")
	ErrInvalidAsset  = errors.New("invalid asset")
)

// ErrUnknownTaxYear is returned when a tax year has no disposal.
var ErrUnknownTaxYear = errors.New("no data found for tax year")

// ParseError reports a malformed line of the ledger text.
type ParseError struct {
	Line int   // 1-based, the header is line 1.
	Err  error // cause
}

func (e *ParseError) Error() string { return fmt.Sprintf("error on line %d: %v", e.Line, e.Err) }
func (e *ParseError) Unwrap() error { return e.Err }

// DerivationError reports a BUY line whose coin quantity can neither be read
// nor derived from the amount of rand spent and the unit price.
type DerivationError struct {
	Asset     string
	Spent     Money
	UnitPrice Money
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("cannot derive %s quantity: buy quantity is missing and unit price is %s (spent %s)",
		e.Asset, e.UnitPrice.Decimal(), e.Spent.Decimal())
}

// InsufficientBalanceError reports a disposal of more of an asset than held
// at that point in the ledger.
type InsufficientBalanceError struct {
	Asset     string
	Requested Quantity
	Available Quantity
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient %s balance: trying to remove %s, only %s available", e.Asset, e.Requested, e.Available)
}
