package kourasync

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func holding(code, name string, units, value float64) FundHolding {
	return FundHolding{
		FundID: json.Number(code),
		Name:   name,
		Units:  decimal.NewFromFloat(units),
		Value:  decimal.NewFromFloat(value),
	}
}

func TestReconstruct(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	mapping := NewFundMapping()

	holdings := []FundHolding{
		holding("810007", "Bitcoin Fund", 100, 150.0),
		holding("810003", "NZ Equities Fund", 0, 0), // zero position, skipped
		holding("999999", "Mystery Fund", 10, 10),   // unmapped, skipped
	}

	activities := Reconstruct(holdings, mapping, "NZD", now)
	if len(activities) != 1 {
		t.Fatalf("Reconstruct() returned %d activities, want 1", len(activities))
	}

	got := activities[0]
	if got.Symbol != "GF_KOURABTC" {
		t.Errorf("symbol = %q, want GF_KOURABTC", got.Symbol)
	}
	if got.Type != "BUY" {
		t.Errorf("type = %q, want BUY", got.Type)
	}
	if !got.UnitPrice.Equal(decimal.NewFromInt(1)) {
		t.Errorf("unitPrice = %s, want 1", got.UnitPrice)
	}
	if !got.Quantity.Equal(decimal.NewFromFloat(150.0)) {
		t.Errorf("quantity = %s, want 150", got.Quantity)
	}
	if !got.Fee.IsZero() {
		t.Errorf("fee = %s, want 0", got.Fee)
	}
	if got.AccountID != "" {
		t.Errorf("accountId = %q, want empty until account resolution", got.AccountID)
	}
	if got.DataSource != "MANUAL" {
		t.Errorf("dataSource = %q, want MANUAL", got.DataSource)
	}
	if got.Currency != "NZD" {
		t.Errorf("currency = %q, want NZD", got.Currency)
	}
	if got.Date != now.Format(time.RFC3339) {
		t.Errorf("date = %q, want %q", got.Date, now.Format(time.RFC3339))
	}
	// The comment records the true units and per-unit price for auditing.
	if !strings.Contains(got.Comment, "100.0000 units") || !strings.Contains(got.Comment, "$1.5000 per unit") {
		t.Errorf("comment = %q, want true units and per-unit price", got.Comment)
	}
}

func TestReconstruct_roundsValueToCents(t *testing.T) {
	holdings := []FundHolding{holding("810001", "Cash Fund", 3, 10.005)}

	activities := Reconstruct(holdings, NewFundMapping(), "NZD", time.Now())
	if len(activities) != 1 {
		t.Fatalf("Reconstruct() returned %d activities, want 1", len(activities))
	}
	if got := activities[0].Quantity; !got.Equal(decimal.NewFromFloat(10.01)) {
		t.Errorf("quantity = %s, want 10.01", got)
	}
}

func TestReconstruct_negativeValueIsSkipped(t *testing.T) {
	holdings := []FundHolding{holding("810001", "Cash Fund", 5, -1)}
	if activities := Reconstruct(holdings, NewFundMapping(), "NZD", time.Now()); len(activities) != 0 {
		t.Errorf("Reconstruct() = %v, want nothing for a negative value", activities)
	}
}

func TestReconstruct_snapshotSurvivesDiffRoundTrip(t *testing.T) {
	// A snapshot imported once must not be imported again on the next run
	// against unchanged upstream data.
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	holdings := []FundHolding{holding("810007", "Bitcoin Fund", 100, 150.0)}

	candidates := Reconstruct(holdings, NewFundMapping(), "NZD", now)
	for i := range candidates {
		candidates[i].AccountID = "acc-1"
	}

	// First sync: everything is new. The ledger echoes activities back with
	// a nested profile instead of the flat symbol.
	var existing []Activity
	for _, act := range Diff(existing, candidates) {
		act.SymbolProfile = &SymbolProfile{Symbol: act.Symbol}
		act.Symbol = ""
		existing = append(existing, act)
	}

	if diff := Diff(existing, candidates); len(diff) != 0 {
		t.Errorf("second sync Diff() = %v, want empty", diff)
	}
}
