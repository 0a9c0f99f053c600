package main

import (
	"github.com/spf13/cobra"

	"github.com/memscan/memscan/internal/config"
	"github.com/memscan/memscan/internal/memctx"
)

// Execute builds and runs the memscan command tree. With no arguments it
// drops into the interactive REPL (spec.md §6's CLI surface); a pid may be
// given on the command line to attach immediately instead of requiring a
// first "process" command.
func Execute(cfg *config.Config) error {
	var attachPid int

	root := &cobra.Command{
		Use:   "memscan",
		Short: "interactive scanner for a running process's memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := memctx.New(cfg.ProcRoot)
			if attachPid != 0 {
				if err := ctx.Attach(attachPid); err != nil {
					return err
				}
				if cfg.DefaultType != "" {
					if err := ctx.ChangeType(cfg.DefaultType); err != nil {
						return err
					}
				}
			}
			return runREPL(ctx, cfg)
		},
	}
	root.Flags().IntVar(&attachPid, "pid", 0, "attach to this pid immediately on startup")

	return root.Execute()
}
