package main

import (
	"os"

	"geoseal/cmd/geoseal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
