package cmd

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// purgeCmd implements the "purge" command.
type purgeCmd struct {
	force bool
}

func (*purgeCmd) Name() string     { return "purge" }
func (*purgeCmd) Synopsis() string { return "deletes every activity of the synced account" }
func (*purgeCmd) Usage() string {
	return `kgs purge [-f]

Deletes every activity of the synced Ghostfolio account. The next sync run
rebuilds the holdings from scratch. Asks for confirmation unless -f is given.
`
}

func (c *purgeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.force, "f", false, "do not ask for confirmation")
}

func (c *purgeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if !c.force {
		fmt.Printf("Delete all activities of account %q (%s)? [y/N] ", cfg.AccountName, accountID)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "y" {
			fmt.Println("Aborted.")
			return subcommands.ExitSuccess
		}
	}

	if err := ghost.DeleteActivities(accountID); err != nil {
		fmt.Fprintf(os.Stderr, "Error deleting activities: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("✅ Successfully deleted all activities of account %q.\n", cfg.AccountName)
	return subcommands.ExitSuccess
}
