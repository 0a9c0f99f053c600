package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/memscan/memscan/internal/config"
	"github.com/memscan/memscan/internal/display"
	"github.com/memscan/memscan/internal/memctx"
)

// runREPL drives the interactive command loop over ctx, matching spec.md
// §6's CLI surface: type|t, process|proc, filter|f, print|p, select|s,
// unselect|u, set, freeze, exit|quit.
func runREPL(ctx *memctx.Context, cfg *config.Config) error {
	rl, err := readline.New("memscan> ")
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	sess := newSession()
	defer sess.stopAllFreezes()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		if err := dispatch(ctx, sess, cfg, cmd, args); err != nil {
			if err == errExit {
				return nil
			}
			fmt.Fprintf(os.Stdout, "error: %v\n", err)
		}
	}
}

var errExit = fmt.Errorf("exit requested")

func dispatch(ctx *memctx.Context, sess *session, cfg *config.Config, cmd string, args []string) error {
	switch cmd {
	case "type", "t":
		if len(args) != 1 {
			return fmt.Errorf("usage: type <i8|u8|i16|u16|i32|u32|i64|u64|i128|u128>")
		}
		return ctx.ChangeType(args[0])

	case "process", "proc":
		if len(args) != 1 {
			return fmt.Errorf("usage: process <pid>")
		}
		pid, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid pid %q: %w", args[0], err)
		}
		if err := ctx.Attach(pid); err != nil {
			return err
		}
		if cfg.DefaultType != "" {
			return ctx.ChangeType(cfg.DefaultType)
		}
		return nil

	case "filter", "f":
		if len(args) < 1 {
			return fmt.Errorf("usage: filter <op> [operand]")
		}
		var operand string
		if len(args) > 1 {
			operand = args[1]
		}
		if err := ctx.RefreshMaps(); err != nil {
			return err
		}
		ch, err := ctx.Filter(args[0], operand, cfg.ProgressBatch)
		if err != nil {
			return err
		}
		drainProgress(os.Stdout, ch)
		fmt.Printf("%d address(es) match\n", ctx.Scanner().Len())
		return nil

	case "print", "p":
		scanner := ctx.Scanner()
		if scanner == nil {
			return fmt.Errorf("print: no type selected")
		}
		display.PrintRows(os.Stdout, scanner.DisplayRows())
		return nil

	case "select", "s":
		idx, err := parseIndex(args)
		if err != nil {
			return err
		}
		sess.select_(idx)
		return nil

	case "unselect", "u":
		idx, err := parseIndex(args)
		if err != nil {
			return err
		}
		sess.unselect(idx)
		return nil

	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: set <i> <value>")
		}
		selectionIdx, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		idx, err := sess.resolve(selectionIdx)
		if err != nil {
			return err
		}
		scanner := ctx.Scanner()
		if scanner == nil {
			return fmt.Errorf("set: no type selected")
		}
		return scanner.Write(idx, args[1])

	case "freeze":
		selectionIdx, err := parseIndex(args)
		if err != nil {
			return err
		}
		idx, err := sess.resolve(selectionIdx)
		if err != nil {
			return err
		}
		scanner := ctx.Scanner()
		if scanner == nil {
			return fmt.Errorf("freeze: no type selected")
		}
		return sess.startFreeze(scanner, idx)

	case "exit", "quit":
		return errExit

	default:
		return fmt.Errorf("unrecognized command %q", cmd)
	}
}

func parseIndex(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("usage: <command> <i>")
	}
	idx, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", args[0], err)
	}
	return idx, nil
}
