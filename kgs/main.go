package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/matakite/kourasync/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// credentials usually live in a .env next to the binary
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion for the subcommands; it exits the
// process when invoked by the shell completion machinery.
func completion() {
	subs := make(map[string]*complete.Command, len(cmd.Commands))
	for _, c := range cmd.Commands {
		subs[c.Name()] = &complete.Command{
			Flags: map[string]complete.Predictor{
				"mapping": predict.Files("*.yaml"),
			},
		}
	}
	(&complete.Command{Sub: subs}).Complete("kgs")
}
