package kourasync

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// FundHolding is a brokerage-reported position: one fund, its current units
// and dollar value, and a date-indexed history of unit prices.
//
// The portal is not consistent about the code field: older payloads carry a
// "code" string, newer ones a numeric "fundId". FundCode resolves whichever
// is present.
type FundHolding struct {
	FundID    json.Number                `json:"fundId"`
	Code      string                     `json:"code"`
	Name      string                     `json:"name"`
	Units     decimal.Decimal            `json:"units"`
	Value     decimal.Decimal            `json:"value"`
	Valuation map[string]decimal.Decimal `json:"valuation"`
}

// FundCode returns the brokerage fund code, whichever field it came in on.
func (h FundHolding) FundCode() string {
	if h.FundID.String() != "" {
		return h.FundID.String()
	}
	return h.Code
}

// PriceOn returns the fund's unit price on the given day ("2006-01-02").
// When the valuation history has no entry for that exact day, the closest
// previous day is used; ok is false when there is no previous entry at all.
func (h FundHolding) PriceOn(day string) (price decimal.Decimal, ok bool) {
	if price, ok := h.Valuation[day]; ok {
		return price, true
	}

	target, err := time.Parse("2006-01-02", day)
	if err != nil {
		return decimal.Zero, false
	}

	var closest time.Time
	for ds, p := range h.Valuation {
		d, err := time.Parse("2006-01-02", ds)
		if err != nil {
			// Undated entries cannot be compared, skip them.
			continue
		}
		if d.After(target) {
			continue
		}
		if !ok || d.After(closest) {
			closest, price, ok = d, p, true
		}
	}
	return price, ok
}

// LatestPrice returns the most recent entry of the valuation history.
// Dates in "2006-01-02" form order lexically, so no parsing is needed.
func (h FundHolding) LatestPrice() (day string, price decimal.Decimal, ok bool) {
	for ds, p := range h.Valuation {
		if ds > day {
			day, price, ok = ds, p, true
		}
	}
	return day, price, ok
}
