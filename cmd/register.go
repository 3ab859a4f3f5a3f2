package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/matakite/kourasync"
)

// registerAssetsCmd implements the "register-assets" command.
type registerAssetsCmd struct {
	mapping string
}

func (*registerAssetsCmd) Name() string     { return "register-assets" }
func (*registerAssetsCmd) Synopsis() string { return "registers the fund symbols as manual assets" }
func (*registerAssetsCmd) Usage() string {
	return `kgs register-assets [-mapping <file>]

Registers every mapped fund symbol as a manual asset in Ghostfolio, so that
activities referencing them can be imported. Registering a symbol that
already exists fails on the Ghostfolio side and is reported, the remaining
symbols are still registered.
`
}

func (c *registerAssetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.mapping, "mapping", "mapping.yaml", "fund code to symbol mapping overlay file")
}

func (c *registerAssetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := loadConfig()

	mapping, err := kourasync.LoadFundMapping(c.mapping)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fund mapping: %v\n", err)
		return subcommands.ExitFailure
	}

	ghost, err := ghostClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to Ghostfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	failures := 0
	for _, code := range mapping.Codes() {
		symbol, _ := mapping.Symbol(code)
		name := mapping.Name(code)
		if err := ghost.CreateAsset(symbol, name, cfg.Currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error registering %s: %v\n", symbol, err)
			failures++
			continue
		}
		fmt.Printf("registered %s (%s)\n", symbol, name)
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "Finished with %d failures.\n", failures)
		return subcommands.ExitFailure
	}
	fmt.Println("✅ Successfully registered all assets.")
	return subcommands.ExitSuccess
}
