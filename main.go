package main

import (
	"os"

	"github.com/insightdelivered/bank-statement-tool/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
