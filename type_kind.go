package cgt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind is the nature of a ledger line.
type Kind int

const (
	// Buy acquires an asset with rand.
	Buy Kind = iota + 1
	// Sell disposes of an asset for rand.
	Sell
	// Trade disposes of one asset to acquire another.
	Trade
)

// Kinds lists every kind in display order.
var Kinds = []Kind{Buy, Sell, Trade}

func (k Kind) String() string {
	switch k {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	case Trade:
		return "TRADE"
	default:
		return "UNKNOWN"
	}
}

// IsDisposal reports whether the kind gives up an asset that was held.
func (k Kind) IsDisposal() bool { return k == Sell || k == Trade }

// ParseKind parses a kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "BUY":
		return Buy, nil
	case "SELL":
		return Sell, nil
	case "TRADE":
		return Trade, nil
	default:
		return 0, fmt.Errorf("%w: %q must be BUY, SELL, or TRADE", ErrInvalidKind, s)
	}
}

func (k Kind) MarshalJSON() ([]byte, error) { return json.Marshal(k.String()) }
