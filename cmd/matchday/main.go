package main

import (
	"os"

	"github.com/bnema/matchday-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
