package main

import (
	"log"
	"os"

	"github.com/custodia-labs/graphctl/internal/cli"
	"github.com/custodia-labs/graphctl/internal/history"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cli.SetVersion(version)

	// Local operation history; the CLI degrades gracefully without it.
	store, err := history.NewStore("")
	if err != nil {
		log.Printf("failed to open history store: %v", err)
	} else {
		defer store.Close()
		cli.SetHistory(store)
	}

	if err := cli.Execute(); err != nil {
		return 1
	}
	return 0
}
