package memctx

import (
	"os"
	"testing"
)

func TestAttachChangeTypeAndFilter(t *testing.T) {
	ctx := New("")
	if err := ctx.Attach(os.Getpid()); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if ctx.Target() == nil {
		t.Fatal("expected a target after Attach")
	}

	if err := ctx.ChangeType("i32"); err != nil {
		t.Fatalf("change type: %v", err)
	}
	if ctx.GetType() != "i32" {
		t.Errorf("got type %q, want i32", ctx.GetType())
	}
	if ctx.Scanner() == nil {
		t.Fatal("expected a scanner after ChangeType")
	}
	if !ctx.Scanner().IsEmpty() {
		t.Error("a freshly selected type should start with an empty scanner")
	}
}

func TestFilterWithoutAttachFails(t *testing.T) {
	ctx := New("")
	if _, err := ctx.Filter("equal", "1", 1000); err == nil {
		t.Error("expected an error filtering before any target is attached")
	}
}

func TestFilterWithoutTypeFails(t *testing.T) {
	ctx := New("")
	if err := ctx.Attach(os.Getpid()); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if _, err := ctx.Filter("equal", "1", 1000); err == nil {
		t.Error("expected an error filtering before a type is selected")
	}
}

func TestTypeChangeResetsScanner(t *testing.T) {
	ctx := New("")
	if err := ctx.Attach(os.Getpid()); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := ctx.ChangeType("i32"); err != nil {
		t.Fatal(err)
	}
	ch, err := ctx.Filter("unknown", "", 2000)
	if err != nil {
		t.Fatal(err)
	}
	for range ch {
	}
	if ctx.Scanner().IsEmpty() {
		t.Fatal("expected a non-empty scanner after an unknown-initial-value scan")
	}

	if err := ctx.ChangeType("u32"); err != nil {
		t.Fatal(err)
	}
	if !ctx.Scanner().IsEmpty() {
		t.Error("changing type must reset the scanner to empty")
	}
}
