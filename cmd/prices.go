package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/matakite/kourasync"
	"github.com/shopspring/decimal"
)

// updatePricesCmd implements the "update-prices" command.
type updatePricesCmd struct {
	mapping string
	history bool
}

func (*updatePricesCmd) Name() string     { return "update-prices" }
func (*updatePricesCmd) Synopsis() string { return "pushes fund unit prices to Ghostfolio" }
func (*updatePricesCmd) Usage() string {
	return `kgs update-prices [-history] [-mapping <file>]

Fetches the portal fund valuations and pushes the unit prices to the manual
assets in Ghostfolio. By default only the latest price of each fund is
pushed, -history pushes every valuation day the portal reports.
`
}

func (c *updatePricesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.history, "history", false, "push the full valuation history instead of the latest price")
	f.StringVar(&c.mapping, "mapping", "mapping.yaml", "fund code to symbol mapping overlay file")
}

func (c *updatePricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	holdings, err := portal.PortfolioFunds(accountID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching portfolio funds: %v\n", err)
		return subcommands.ExitFailure
	}

	ghost, err := ghostClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to Ghostfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	updated := 0
	for _, holding := range holdings {
		symbol, ok := mapping.Symbol(holding.FundCode())
		if !ok {
			fmt.Fprintf(os.Stderr, "Warning: no symbol mapping for fund code %s, skipping\n", holding.FundCode())
			continue
		}

		prices := make(map[string]decimal.Decimal)
		if c.history {
			for day, price := range holding.Valuation {
				prices[day] = price
			}
		} else if day, price, ok := holding.LatestPrice(); ok {
			prices[day] = price
		}
		if len(prices) == 0 {
			fmt.Fprintf(os.Stderr, "Warning: no valuation for fund %s, skipping\n", holding.FundCode())
			continue
		}

		if err := ghost.UpdateMarketData(symbol, prices); err != nil {
			fmt.Fprintf(os.Stderr, "Error updating prices for %s: %v\n", symbol, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("pushed %d prices for %s\n", len(prices), symbol)
		updated++
	}

	fmt.Printf("✅ Successfully updated prices for %d assets.\n", updated)
	return subcommands.ExitSuccess
}
