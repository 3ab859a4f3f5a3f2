package ghostfolio

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

// Manual assets live under the MANUAL data source; symbols are free-form but
// must be registered before activities referencing them can be imported.

// CreateAsset registers a manual asset profile in the ledger, then fills in
// its name and currency.
func (c *Client) CreateAsset(symbol, name, currency string) error {
	path := "/api/v1/admin/profile-data/MANUAL/" + url.PathEscape(symbol)

	if err := c.do(http.MethodPost, path, nil, nil, nil); err != nil {
		return fmt.Errorf("cannot create asset %s: %w", symbol, err)
	}

	details := map[string]string{
		"currency": currency,
		"name":     name,
	}
	if err := c.do(http.MethodPatch, path, nil, details, nil); err != nil {
		return fmt.Errorf("cannot set details of asset %s: %w", symbol, err)
	}
	return nil
}

// UpdateMarketData pushes date-indexed prices for a manual asset.
func (c *Client) UpdateMarketData(symbol string, prices map[string]decimal.Decimal) error {
	payload := map[string]any{"marketData": prices}

	path := "/api/v1/admin/profile-data/MANUAL/" + url.PathEscape(symbol)
	if err := c.do(http.MethodPatch, path, nil, payload, nil); err != nil {
		return fmt.Errorf("cannot update market data for %s: %w", symbol, err)
	}
	return nil
}
