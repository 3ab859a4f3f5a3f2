package kourasync

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// Reconstruct turns the brokerage's current fund holdings into synthetic
// "current position" activities, one BUY per fund, dated now.
//
// The portal does not expose a per-fund trade history in an importable
// shape, so each sync produces a standing snapshot instead: the unit price
// is fixed at 1.00 and the quantity carries the dollar value, which keeps
// the imported value equal to the reported value whatever the market does
// later. The true units and per-unit price go into the comment for human
// auditing.
//
// Holdings without a positive value and positive units, and holdings whose
// code has no symbol mapping, are skipped and logged. AccountID is left
// empty; the caller fills it in once the ledger account is resolved.
func Reconstruct(holdings []FundHolding, mapping *FundMapping, currency string, now time.Time) []Activity {
	var activities []Activity
	date := now.Format(time.RFC3339)

	for _, fund := range holdings {
		if !fund.Value.IsPositive() || !fund.Units.IsPositive() {
			log.Printf("skipping fund %s with zero value/units", fund.Name)
			continue
		}

		symbol, ok := mapping.Symbol(fund.FundCode())
		if !ok {
			log.Printf("no symbol mapping for fund code %s", fund.FundCode())
			continue
		}

		unitPrice := fund.Value.Div(fund.Units)
		activities = append(activities, Activity{
			Comment:    fmt.Sprintf("Current holdings: %s units @ $%s per unit", fund.Units.StringFixed(4), unitPrice.StringFixed(4)),
			Currency:   currency,
			DataSource: "MANUAL",
			Date:       date,
			Fee:        decimal.Zero,
			Quantity:   fund.Value.Round(2),
			Symbol:     symbol,
			Type:       "BUY",
			UnitPrice:  decimal.NewFromInt(1),
		})
		log.Printf("created holding for %s: $%s %s", fund.Name, fund.Value.StringFixed(2), currency)
	}
	return activities
}
