package ghostfolio

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Rhymond/go-money"
)

// Account is a Ghostfolio account.
type Account struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Balance    float64 `json:"balance"`
	Currency   string  `json:"currency"`
	IsExcluded bool    `json:"isExcluded"`
	PlatformID string  `json:"platformId,omitempty"`
}

// Accounts lists all accounts of the authenticated user.
func (c *Client) Accounts() ([]Account, error) {
	var data struct {
		Accounts []Account `json:"accounts"`
	}
	if err := c.do(http.MethodGet, "/api/v1/account", nil, nil, &data); err != nil {
		return nil, err
	}
	return data.Accounts, nil
}

// CreateAccount creates an account with a zero balance and returns its id.
func (c *Client) CreateAccount(name, currency, platformID string) (string, error) {
	account := Account{
		Name:       name,
		Balance:    0,
		Currency:   currency,
		IsExcluded: false,
		PlatformID: platformID,
	}
	var created Account
	if err := c.do(http.MethodPost, "/api/v1/account", nil, account, &created); err != nil {
		return "", err
	}
	log.Printf("created account %q: %s", name, created.ID)
	return created.ID, nil
}

// EnsureAccount returns the id of the account with the given name, creating
// it when no account matches.
func (c *Client) EnsureAccount(name, currency, platformID string) (string, error) {
	accounts, err := c.Accounts()
	if err != nil {
		return "", err
	}
	for _, account := range accounts {
		if account.Name == name {
			log.Printf("found account %q: %s", name, account.ID)
			return account.ID, nil
		}
	}
	return c.CreateAccount(name, currency, platformID)
}

// SetCash updates the account's cash balance.
func (c *Client) SetCash(accountID, name, platformID string, cash *money.Money) error {
	account := Account{
		ID:         accountID,
		Name:       name,
		Balance:    cash.AsMajorUnits(),
		Currency:   cash.Currency().Code,
		IsExcluded: false,
		PlatformID: platformID,
	}
	log.Printf("updating cash for account %s to %s", accountID, cash.Display())
	if err := c.do(http.MethodPut, "/api/v1/account/"+accountID, nil, account, nil); err != nil {
		return fmt.Errorf("cannot update cash for account %s: %w", accountID, err)
	}
	return nil
}
