package main

import (
	"os"

	"github.com/mmynk/splitter/cmd/splitctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
