package cmd

import (
	"strings"
	"testing"

	"github.com/matakite/kourasync"
	"github.com/shopspring/decimal"
)

func TestLoadConfig_defaults(t *testing.T) {
	for _, key := range []string{"GHOST_HOST", "GHOST_ACCOUNT_NAME", "GHOST_CURRENCY"} {
		t.Setenv(key, "")
	}

	cfg := loadConfig()
	if cfg.GhostHost != "https://ghostfol.io" {
		t.Errorf("GhostHost = %q, want the public instance", cfg.GhostHost)
	}
	if cfg.AccountName != "Koura Wealth" {
		t.Errorf("AccountName = %q, want Koura Wealth", cfg.AccountName)
	}
	if cfg.Currency != "NZD" {
		t.Errorf("Currency = %q, want NZD", cfg.Currency)
	}
}

func TestLoadConfig_environmentWins(t *testing.T) {
	t.Setenv("GHOST_HOST", "http://localhost:3333")
	t.Setenv("GHOST_CURRENCY", "EUR")

	cfg := loadConfig()
	if cfg.GhostHost != "http://localhost:3333" {
		t.Errorf("GhostHost = %q, want the local instance", cfg.GhostHost)
	}
	if cfg.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", cfg.Currency)
	}
}

func TestActivitiesTable(t *testing.T) {
	activities := []kourasync.Activity{
		{
			Date:      "2024-05-01T00:00:00Z",
			Type:      "BUY",
			Symbol:    "GF_KOURAGROW",
			Quantity:  decimal.NewFromFloat(150.5),
			UnitPrice: decimal.NewFromInt(1),
			Fee:       decimal.Zero,
			Currency:  "NZD",
			Comment:   "Current holdings: 100.0000 units @ $1.5050 per unit",
		},
		{
			// existing ledger rows carry the symbol in the nested profile
			Date:          "2024-05-02T00:00:00Z",
			Type:          "BUY",
			Quantity:      decimal.NewFromInt(10),
			UnitPrice:     decimal.NewFromInt(1),
			Fee:           decimal.Zero,
			SymbolProfile: &kourasync.SymbolProfile{Symbol: "GF_KOURACASH"},
		},
	}

	table := activitiesTable(activities, "NZD")

	if !strings.Contains(table, "GF_KOURAGROW") {
		t.Errorf("table is missing the flat symbol:\n%s", table)
	}
	if !strings.Contains(table, "GF_KOURACASH") {
		t.Errorf("table is missing the nested profile symbol:\n%s", table)
	}
	if !strings.Contains(table, "150.50") {
		t.Errorf("table is missing the quantity:\n%s", table)
	}
	if lines := strings.Count(table, "\n"); lines != 4 {
		t.Errorf("table has %d lines, want header, separator and 2 rows", lines)
	}
}
