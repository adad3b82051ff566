package cgt

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/zacgt/cgt/date"
)

// minFields is the number of columns of a ledger line:
// Date, Type, SellAsset, SellQuantity, BuyAsset, BuyQuantity, UnitPrice.
const minFields = 7

// Decode reads the whole ledger text from r and parses it.
func Decode(r io.Reader) ([]Transaction, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return Parse(string(b))
}

// Parse converts pasted ledger text into transactions sorted by date.
//
// The first line is a header and is ignored. Columns are tab separated (as
// copied from a spreadsheet) or comma separated (as exported to CSV). Any
// malformed line aborts the parse with a *ParseError: a single bad row makes
// the chronological order, and therefore FIFO, unreliable.
func Parse(text string) ([]Transaction, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ParseError{Line: 1, Err: ErrNoData}
	}
	lines := strings.Split(text, "\n")

	transactions := make([]Transaction, 0, len(lines)-1)
	for i, line := range lines[1:] {
		lineNumber := i + 2 // the header is line 1
		if strings.TrimSpace(line) == "" {
			continue
		}
		tx, err := parseLine(line)
		if err != nil {
			return nil, &ParseError{Line: lineNumber, Err: err}
		}
		transactions = append(transactions, tx)
	}

	// FIFO depends on this order, same-time lines keep their relative order.
	slices.SortStableFunc(transactions, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return transactions, nil
}

// splitFields splits a line on tabs, falling back to commas when the line
// has no tab.
func splitFields(line string) ([]string, error) {
	fields, err := readRecord(line, '\t')
	if err != nil {
		return nil, err
	}
	if len(fields) == 1 {
		return readRecord(line, ',')
	}
	return fields, nil
}

func readRecord(line string, sep rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = sep
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("malformed line: %w", err)
	}
	return fields, nil
}

func parseLine(line string) (Transaction, error) {
	fields, err := splitFields(line)
	if err != nil {
		return Transaction{}, err
	}
	if len(fields) < minFields {
		return Transaction{}, fmt.Errorf("%w: expected %d columns, got %d", ErrTooFewFields, minFields, len(fields))
	}

	on, err := date.Parse(fields[0])
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: %w", ErrInvalidDate, err)
	}
	sellQuantity, err := ParseAmount(fields[3])
	if err != nil {
		return Transaction{}, err
	}
	buyQuantity, err := ParseAmount(fields[5])
	if err != nil {
		return Transaction{}, err
	}
	price, err := ParseAmount(fields[6])
	if err != nil {
		return Transaction{}, err
	}
	kind, err := ParseKind(fields[1])
	if err != nil {
		return Transaction{}, err
	}

	tx := Transaction{
		Date:         on,
		Kind:         kind,
		SellAsset:    normalizeAsset(fields[2]),
		SellQuantity: Q(sellQuantity),
		BuyAsset:     normalizeAsset(fields[4]),
		BuyQuantity:  Q(buyQuantity),
		UnitPrice:    R(price).exact(),
	}

	// A BUY often only records the rand spent, the coins received follow from the price.
	if tx.Kind == Buy && tx.BuyQuantity.IsZero() {
		if !tx.UnitPrice.IsPositive() {
			return Transaction{}, &DerivationError{Asset: tx.BuyAsset, Spent: R(sellQuantity), UnitPrice: tx.UnitPrice}
		}
		tx.BuyQuantity = R(sellQuantity).DivPrice(tx.UnitPrice)
	}

	if err := tx.Validate(); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func normalizeAsset(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

// ParseAmount parses a number as typed by a user in any common locale.
//
// Currency symbols (R $ € £) and whitespace are ignored. A comma is a decimal
// separator when there is no period ("0,1") or when it comes after the last
// period ("1.000,50"); otherwise commas separate thousands ("1,000.50"). An
// empty amount is zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return -1
		case r == 'R' || r == '$' || r == '€' || r == '£':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return decimal.Zero, nil
	}

	lastComma, lastDot := strings.LastIndex(cleaned, ","), strings.LastIndex(cleaned, ".")
	switch {
	case lastComma >= 0 && lastDot < 0:
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	case lastComma > lastDot:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	default:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q (cleaned %q)", ErrInvalidAmount, s, cleaned)
	}
	return d, nil
}
