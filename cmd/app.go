// Package cmd implements the CLI application to sync a Koura Wealth account
// into a Ghostfolio instance.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/matakite/kourasync/ghostfolio"
	"github.com/matakite/kourasync/koura"
)

// Commands lists the subcommands a main package registers.
// A main package will loop over Commands and Execute() the user-selected one.
var Commands = []subcommands.Command{
	&syncCmd{},
	&activitiesCmd{},
	&purgeCmd{},
	&registerAssetsCmd{},
	&updatePricesCmd{},
	&topicCmd{},
	&AssistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// read the environment directly.

// config holds everything the commands need from the environment.
type config struct {
	GhostHost   string // Ghostfolio instance URL
	GhostKey    string // Ghostfolio security token, exchanged for a bearer
	GhostToken  string // Ghostfolio bearer token, used directly when set
	AccountName string // name of the ledger account to sync into
	Currency    string // currency of the synced account and assets
	PlatformID  string // optional Ghostfolio platform id for the account
	Username    string // Koura Wealth portal username
	Password    string // Koura Wealth portal password
	AccountID   string // Koura Wealth account id, discovered when empty
}

// loadConfig reads the configuration from the environment, applying defaults.
func loadConfig() config {
	return config{
		GhostHost:   getenv("GHOST_HOST", "https://ghostfol.io"),
		GhostKey:    os.Getenv("GHOST_KEY"),
		GhostToken:  os.Getenv("GHOST_TOKEN"),
		AccountName: getenv("GHOST_ACCOUNT_NAME", "Koura Wealth"),
		Currency:    getenv("GHOST_CURRENCY", "NZD"),
		PlatformID:  os.Getenv("GHOST_KOURA_PLATFORM"),
		Username:    os.Getenv("KOURA_USERNAME"),
		Password:    os.Getenv("KOURA_PASSWORD"),
		AccountID:   os.Getenv("KOURA_ACCOUNT_ID"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ghostClient returns a Ghostfolio client from the configuration, exchanging
// the security token for a bearer when no bearer is set.
func ghostClient(cfg config) (*ghostfolio.Client, error) {
	if cfg.GhostToken != "" {
		return ghostfolio.NewClient(cfg.GhostHost, cfg.GhostToken), nil
	}
	if cfg.GhostKey == "" {
		return nil, fmt.Errorf("neither GHOST_TOKEN nor GHOST_KEY is set")
	}
	return ghostfolio.NewClientFromKey(cfg.GhostHost, cfg.GhostKey)
}

// kouraClient returns a portal client from the configuration.
func kouraClient(cfg config) (*koura.Client, error) {
	if cfg.Username == "" || cfg.Password == "" {
		return nil, fmt.Errorf("KOURA_USERNAME and KOURA_PASSWORD must be set")
	}
	return koura.NewClient(cfg.Username, cfg.Password), nil
}

// kouraAccountID returns the configured portal account id, falling back to
// the first account the portal lists.
func kouraAccountID(cfg config, client *koura.Client) (string, error) {
	if cfg.AccountID != "" {
		return cfg.AccountID, nil
	}
	accounts, err := client.Accounts()
	if err != nil {
		return "", fmt.Errorf("cannot list portal accounts: %w", err)
	}
	if len(accounts) == 0 {
		return "", fmt.Errorf("the portal returned no accounts")
	}
	return accounts[0].ID.String(), nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// fall back to the raw markdown, still readable
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
