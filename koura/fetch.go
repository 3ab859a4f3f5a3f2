package koura

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/matakite/kourasync"
	"github.com/shopspring/decimal"
)

// Account is one entry of the portal's account list.
type Account struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

// Accounts lists the investor's accounts.
func (c *Client) Accounts() ([]Account, error) {
	var accounts []Account
	if err := c.get("/api/clients/accounts", nil, &accounts); err != nil {
		return nil, fmt.Errorf("error getting accounts: %w", err)
	}
	return accounts, nil
}

// AccountDetails returns the detailed account payload, allocations included.
// The payload is deep and undocumented, so it is kept as raw JSON; use
// AccountValue to pluck the figures of interest.
func (c *Client) AccountDetails(accountID string) (map[string]any, error) {
	var details map[string]any
	if err := c.get("/api/clients/account/"+url.PathEscape(accountID), nil, &details); err != nil {
		return nil, fmt.Errorf("error getting account details: %w", err)
	}
	return details, nil
}

// AccountValue extracts the account's total balance from a details payload.
// The portal has moved the figure around between releases, so a few known
// locations are probed in order.
func AccountValue(details map[string]any) (decimal.Decimal, error) {
	paths := []string{"$.balance", "$.totals.balance", "$.accountTotals.balance"}
	for _, path := range paths {
		jval, err := jsonpath.Get(path, any(details))
		if err != nil {
			continue
		}
		// because jsonpath is never clear about whether it returns a list of 1 answer, or a single answer:
		// by this call I keep the first one if any
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		if v, ok := jval.(float64); ok {
			return decimal.NewFromFloat(v), nil
		}
	}
	return decimal.Zero, fmt.Errorf("no balance found in account details")
}

// PortfolioFunds returns the account's current holdings and their unit price
// history.
func (c *Client) PortfolioFunds(accountID string) ([]kourasync.FundHolding, error) {
	var funds []kourasync.FundHolding
	path := "/api/clients/account/" + url.PathEscape(accountID) + "/portfolio/funds"
	if err := c.get(path, nil, &funds); err != nil {
		return nil, fmt.Errorf("error getting portfolio funds: %w", err)
	}
	return funds, nil
}

// Transaction is a single portal transaction (contributions, fees, ...).
type Transaction struct {
	ID     json.Number     `json:"id"`
	Type   string          `json:"type"`
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	FundID json.Number     `json:"fundId"`
}

// Transactions returns one page of account transactions along with the total
// count the portal reports.
func (c *Client) Transactions(accountID string, page, pageSize int) ([]Transaction, int, error) {
	// sample of response:
	// {
	//     "transactions": [ {"id": 1, "type": "CONTRIBUTION", ...} ],
	//     "totalCount": 137
	// }
	var result struct {
		Transactions []Transaction `json:"transactions"`
		TotalCount   int           `json:"totalCount"`
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("pageSize", strconv.Itoa(pageSize))
	path := "/api/clients/account/" + url.PathEscape(accountID) + "/transactions"
	if err := c.get(path, query, &result); err != nil {
		return nil, 0, fmt.Errorf("error getting transactions: %w", err)
	}
	return result.Transactions, result.TotalCount, nil
}

// AllTransactions pages through the portal until every transaction has been
// retrieved.
func (c *Client) AllTransactions(accountID string) ([]Transaction, error) {
	const pageSize = 100

	var all []Transaction
	for page := 1; ; page++ {
		txs, total, err := c.Transactions(accountID, page, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, txs...)
		// An empty page also stops the loop, in case the portal's
		// totalCount overshoots.
		if len(all) >= total || len(txs) == 0 {
			break
		}
	}
	return all, nil
}
