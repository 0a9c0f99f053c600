package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/memscan/memscan/internal/scan"
)

// freezeInterval is how often a frozen address is rewritten with its
// recorded value.
const freezeInterval = 250 * time.Millisecond

// session holds REPL-local state that does not belong in memctx.Context:
// the set of selected row indices (for "set"/"freeze" to act on) and the
// cancel functions for any addresses currently being frozen. Neither
// concept exists in the scanning engine itself; both are collaborator state
// owned by the CLI, per spec.md §6.
type session struct {
	selected []int
	freezes  map[int]context.CancelFunc
}

func newSession() *session {
	return &session{freezes: make(map[int]context.CancelFunc)}
}

func (s *session) select_(index int) {
	for _, i := range s.selected {
		if i == index {
			return
		}
	}
	s.selected = append(s.selected, index)
	sort.Ints(s.selected)
}

func (s *session) unselect(index int) {
	for i, v := range s.selected {
		if v == index {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			break
		}
	}
	s.stopFreeze(index)
}

// resolve turns a selection ordinal (the position a row holds in the sorted
// "select" list) into the scanner row index it
// refers to. set and freeze operate on selections, not raw row indices,
// so they always go through this (spec.md §4.8).
func (s *session) resolve(selectionIndex int) (int, error) {
	if selectionIndex < 0 || selectionIndex >= len(s.selected) {
		return 0, fmt.Errorf("selection %d out of range [0,%d)", selectionIndex, len(s.selected))
	}
	return s.selected[selectionIndex], nil
}

// startFreeze launches a goroutine that periodically rewrites index's
// recorded value until stopFreeze cancels it. Any previous freeze on the
// same index is cancelled first.
func (s *session) startFreeze(scanner scan.Scanner, index int) error {
	s.stopFreeze(index)

	_, rewrite, err := scanner.FreezeWriter(index)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.freezes[index] = cancel
	go func() {
		ticker := time.NewTicker(freezeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				rewrite()
			}
		}
	}()
	return nil
}

func (s *session) stopFreeze(index int) {
	if cancel, ok := s.freezes[index]; ok {
		cancel()
		delete(s.freezes, index)
	}
}

func (s *session) stopAllFreezes() {
	for index := range s.freezes {
		s.stopFreeze(index)
	}
}
