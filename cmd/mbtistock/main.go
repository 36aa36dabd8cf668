package main

import (
	"os"

	"github.com/wonny/mbtistock/cmd/mbtistock/commands"
)

// main is the entry point for the mbtistock CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/mbtistock [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
