// Command memscan is an interactive scanner for a running process's memory,
// modeled on the teacher's cmd/viewcore: a small main that parses flags,
// resolves configuration, and hands off to a command dispatcher — except
// here the dispatcher is a readline REPL rather than a one-shot subcommand,
// since each memscan session accumulates state (the attached target, the
// selected element type, the current address set) across many commands.
package main

import (
	"fmt"
	"os"

	"github.com/memscan/memscan/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "memscan: loading configuration: %v\n", err)
		os.Exit(2)
	}

	if err := Execute(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "memscan: %v\n", err)
		os.Exit(1)
	}
}
