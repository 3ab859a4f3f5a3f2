package kourasync

import (
	"log"

	"github.com/shopspring/decimal"
)

// SymbolProfile is the nested asset profile the ledger attaches to the
// activities it returns.
type SymbolProfile struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Activity is a single ledger activity, in the shape the ledger service
// consumes and produces. Candidates built by Reconstruct carry the flat
// Symbol field; activities read back from the ledger carry the nested
// SymbolProfile instead.
//
// Fee and Quantity decode from both JSON numbers and quoted numbers, the
// ledger is not consistent about which it sends.
type Activity struct {
	ID            string          `json:"id,omitempty"`
	AccountID     string          `json:"accountId"`
	Comment       string          `json:"comment,omitempty"`
	Currency      string          `json:"currency,omitempty"`
	DataSource    string          `json:"dataSource,omitempty"`
	Date          string          `json:"date"`
	Fee           decimal.Decimal `json:"fee"`
	Quantity      decimal.Decimal `json:"quantity"`
	Symbol        string          `json:"symbol,omitempty"`
	SymbolProfile *SymbolProfile  `json:"SymbolProfile,omitempty"`
	Type          string          `json:"type"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

// Value returns the activity's total value (quantity times unit price).
func (a Activity) Value() decimal.Decimal {
	return a.Quantity.Mul(a.UnitPrice)
}

// Comparable is the canonical seven-field form used for duplicate detection.
// Two activities describe the same economic event exactly when all seven
// fields are equal.
type Comparable struct {
	AccountID string
	Date      string
	Fee       decimal.Decimal
	Quantity  decimal.Decimal
	Symbol    string
	Type      string
	UnitPrice decimal.Decimal
}

// Equal reports whether both canonical forms carry the same seven fields.
func (c Comparable) Equal(o Comparable) bool {
	return c.AccountID == o.AccountID &&
		c.Date == o.Date &&
		c.Symbol == o.Symbol &&
		c.Type == o.Type &&
		c.Fee.Equal(o.Fee) &&
		c.Quantity.Equal(o.Quantity) &&
		c.UnitPrice.Equal(o.UnitPrice)
}

// truncateDate keeps the first 18 characters of an ISO-8601 date string,
// date plus hour-minute granularity. The truncation absorbs sub-minute and
// timezone jitter between the two services.
func truncateDate(date string) string {
	if len(date) > 18 {
		return date[:18]
	}
	return date
}

// NormalizeExisting maps a ledger-shaped activity to its canonical form.
// The symbol is resolved from the nested SymbolProfile; when that is absent
// or empty, the flat symbol field is used instead, with a warning. A missing
// symbol normalizes to the empty string, it is never an error.
func NormalizeExisting(act Activity) Comparable {
	var symbol string
	if act.SymbolProfile != nil {
		symbol = act.SymbolProfile.Symbol
	}
	if symbol == "" {
		log.Printf("could not find nested symbol for activity %s, falling back to %q", act.ID, act.Symbol)
		symbol = act.Symbol
	}

	return Comparable{
		AccountID: act.AccountID,
		Date:      truncateDate(act.Date),
		Fee:       act.Fee.Abs(),
		Quantity:  act.Quantity.Abs(),
		Symbol:    symbol,
		Type:      act.Type,
		UnitPrice: act.UnitPrice,
	}
}

// NormalizeCandidate maps a brokerage-shaped or synthetic activity to its
// canonical form. Candidates only ever carry the flat symbol field.
//
// This path is deliberately kept separate from NormalizeExisting: the two
// services ship differently shaped records, and unifying the symbol
// resolution would silently change duplicate detection for records synced
// before the nested profile existed.
func NormalizeCandidate(act Activity) Comparable {
	return Comparable{
		AccountID: act.AccountID,
		Date:      truncateDate(act.Date),
		Fee:       act.Fee.Abs(),
		Quantity:  act.Quantity.Abs(),
		Symbol:    act.Symbol,
		Type:      act.Type,
		UnitPrice: act.UnitPrice,
	}
}
