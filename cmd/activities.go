package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/matakite/kourasync"
)

// activitiesCmd implements the "activities" command.
type activitiesCmd struct{}

func (*activitiesCmd) Name() string     { return "activities" }
func (*activitiesCmd) Synopsis() string { return "lists the activities recorded in Ghostfolio" }
func (*activitiesCmd) Usage() string {
	return `kgs activities

Lists the activities currently recorded for the synced Ghostfolio account.
`
}

func (c *activitiesCmd) SetFlags(f *flag.FlagSet) {}

func (c *activitiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()

	ghost, err := ghostClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to Ghostfolio: %v\n", err)
		return subcommands.ExitFailure
	}
	accountID, err := ghost.EnsureAccount(cfg.AccountName, cfg.Currency, cfg.PlatformID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error preparing the Ghostfolio account: %v\n", err)
		return subcommands.ExitFailure
	}

	activities, err := ghost.Activities(accountID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching activities: %v\n", err)
		return subcommands.ExitFailure
	}
	if len(activities) == 0 {
		fmt.Println("No activities recorded yet.")
		return subcommands.ExitSuccess
	}

	printMarkdown(activitiesTable(activities, cfg.Currency))
	return subcommands.ExitSuccess
}

// activitiesTable renders activities as a markdown table.
func activitiesTable(activities []kourasync.Activity, currency string) string {
	var b strings.Builder
	fmt.Fprintln(&b, "| Date | Type | Symbol | Quantity | Unit Price | Fee | Value | Comment |")
	fmt.Fprintln(&b, "|------|------|--------|---------:|-----------:|----:|------:|---------|")
	for _, a := range activities {
		cur := a.Currency
		if cur == "" {
			cur = currency
		}
		symbol := a.Symbol
		if symbol == "" && a.SymbolProfile != nil {
			symbol = a.SymbolProfile.Symbol
		}
		value := money.NewFromFloat(a.Value().InexactFloat64(), cur)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			a.Date,
			a.Type,
			symbol,
			a.Quantity.StringFixed(2),
			a.UnitPrice.StringFixed(4),
			a.Fee.StringFixed(2),
			value.Display(),
			a.Comment,
		)
	}
	return b.String()
}
