package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/matakite/kourasync"
	"github.com/matakite/kourasync/koura"
)

// syncCmd implements the "sync" command.
type syncCmd struct {
	dryRun  bool
	mapping string
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "syncs Koura Wealth holdings into Ghostfolio" }
func (*syncCmd) Usage() string {
	return `kgs sync [-n] [-mapping <file>]

Fetches the current fund holdings from the Koura Wealth portal, rebuilds them
as holding activities, and imports into Ghostfolio the ones not synced yet.
Already synced activities are recognized and left untouched, so running sync
twice in a row imports nothing the second time.

Usage Examples:
# Preview what would be imported.
$ kgs sync -n

`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.dryRun, "n", false, "dry run, print the new activities instead of importing them")
	f.StringVar(&c.mapping, "mapping", "mapping.yaml", "fund code to symbol mapping overlay file")
}

func (c *syncCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()

	mapping, err := kourasync.LoadFundMapping(c.mapping)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fund mapping: %v\n", err)
		return subcommands.ExitFailure
	}

	portal, err := kouraClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := portal.Signin(); err != nil {
		fmt.Fprintf(os.Stderr, "Error signing in to the portal: %v\n", err)
		return subcommands.ExitFailure
	}

	accountID, err := kouraAccountID(cfg, portal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ghost, err := ghostClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to Ghostfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	ghostAccountID, err := ghost.EnsureAccount(cfg.AccountName, cfg.Currency, cfg.PlatformID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing the Ghostfolio account: %v\n", err)
		return subcommands.ExitFailure
	}

	// The account value is informative only, sync carries on without it.
	if details, err := portal.AccountDetails(accountID); err != nil {
		log.Printf("cannot fetch account details: %v", err)
	} else if value, err := koura.AccountValue(details); err != nil {
		log.Printf("cannot read the account value: %v", err)
	} else {
		log.Printf("portal account value: $%s", value.StringFixed(2))
	}

	holdings, err := portal.PortfolioFunds(accountID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching portfolio funds: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(holdings) == 0 {
		fmt.Fprintf(os.Stderr, "Error: the portal returned no fund holdings, refusing to sync an empty portfolio\n")
		return subcommands.ExitFailure
	}

	if transactions, err := portal.AllTransactions(accountID); err != nil {
		log.Printf("cannot fetch portal transactions: %v", err)
	} else {
		log.Printf("the portal reports %d transactions", len(transactions))
	}

	candidates := kourasync.Reconstruct(holdings, mapping, cfg.Currency, time.Now())
	for i := range candidates {
		candidates[i].AccountID = ghostAccountID
	}

	existing, err := ghost.Activities(ghostAccountID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching existing activities: %v\n", err)
		return subcommands.ExitFailure
	}

	missing := kourasync.Diff(existing, candidates)
	if len(missing) == 0 {
		fmt.Println("✅ Nothing to sync, the ledger is up to date.")
		return subcommands.ExitSuccess
	}

	if c.dryRun {
		fmt.Printf("Would import %d new activities:\n", len(missing))
		printMarkdown(activitiesTable(missing, cfg.Currency))
		return subcommands.ExitSuccess
	}

	if err := ghost.Import(missing); err != nil {
		fmt.Fprintf(os.Stderr, "Error importing activities: %v\n", err)
		return subcommands.ExitFailure
	}

	// Holdings are carried as activities, the cash stays at zero.
	zero := money.New(0, cfg.Currency)
	if err := ghost.SetCash(ghostAccountID, cfg.AccountName, cfg.PlatformID, zero); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting the cash balance: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully imported %d new activities.\n", len(missing))
	return subcommands.ExitSuccess
}
