package main

import (
	"os"
	"slices"
)

// cliFlags switch the process into CLI mode. Without them it starts the
// host for the presentation layer.
var cliFlags = []string{"--input", "-i", "--output", "-o", "--help", "-h", "--cli-only"}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if isCLIMode(args) {
		return runCLI(args, os.Stdout, os.Stderr)
	}
	return runServer()
}

func isCLIMode(args []string) bool {
	for _, arg := range args {
		if slices.Contains(cliFlags, arg) {
			return true
		}
	}
	return false
}
