// Package scan implements the incremental value-scanning engine: predicates,
// the address set that tracks live candidate addresses across successive
// scans, and the type-erased Scanner capability that lets the CLI operate on
// whichever element width the user selected without itself being generic.
package scan

import (
	"fmt"

	"github.com/memscan/memscan/internal/arch"
)

// Kind names one of the ten scan predicates a user can type at the "filter"
// command (spec.md §6's ScanType enumeration).
type Kind int

const (
	Equal Kind = iota
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	Changed
	NotChanged
	Refresh
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Equal:
		return "equal"
	case NotEqual:
		return "not-equal"
	case Less:
		return "less"
	case LessEqual:
		return "less-equal"
	case Greater:
		return "greater"
	case GreaterEqual:
		return "greater-equal"
	case Changed:
		return "changed"
	case NotChanged:
		return "not-changed"
	case Refresh:
		return "refresh"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// needsOperand reports whether this kind compares against a user-supplied
// literal rather than purely against the address's own history.
func (k Kind) needsOperand() bool {
	switch k {
	case Equal, NotEqual, Less, LessEqual, Greater, GreaterEqual:
		return true
	default:
		return false
	}
}

// requiresPriorScan reports whether this kind is only meaningful once
// addresses already carry a stored value from an earlier scan.
func (k Kind) requiresPriorScan() bool {
	switch k {
	case Changed, NotChanged, Refresh:
		return true
	default:
		return false
	}
}

var kindNames = map[string]Kind{
	"equal":         Equal,
	"eq":            Equal,
	"not-equal":     NotEqual,
	"neq":           NotEqual,
	"!=":            NotEqual,
	"==":            Equal,
	"less":          Less,
	"lt":            Less,
	"<":             Less,
	"less-equal":    LessEqual,
	"le":            LessEqual,
	"<=":            LessEqual,
	"greater":       Greater,
	"gt":            Greater,
	">":             Greater,
	"greater-equal": GreaterEqual,
	"ge":            GreaterEqual,
	">=":            GreaterEqual,
	"changed":       Changed,
	"not-changed":   NotChanged,
	"notchanged":    NotChanged,
	"unchanged":     NotChanged,
	"refresh":       Refresh,
	"unknown":       Unknown,
}

// ParseKind parses the predicate name used on the "filter" command line.
func ParseKind(name string) (Kind, error) {
	k, ok := kindNames[name]
	if !ok {
		return 0, fmt.Errorf("unrecognized scan predicate %q", name)
	}
	return k, nil
}

// Predicate is a fully-parsed filter ready to evaluate against addresses of
// element type T: a Kind plus, for comparison kinds, the parsed Operand.
type Predicate[T arch.Value[T]] struct {
	Kind    Kind
	Operand T
}

// ParsePredicate parses a predicate name and, if the kind needs one, an
// operand literal, using desc to parse the literal into T. It returns an
// error rather than panicking on an unparseable literal or unknown kind
// name, per the no-panics-on-malformed-input design decision.
func ParsePredicate[T arch.Value[T]](desc arch.Descriptor[T], name string, operandLiteral string) (Predicate[T], error) {
	kind, err := ParseKind(name)
	if err != nil {
		return Predicate[T]{}, err
	}
	if !kind.needsOperand() {
		return Predicate[T]{Kind: kind}, nil
	}
	if operandLiteral == "" {
		return Predicate[T]{}, fmt.Errorf("predicate %q requires an operand", name)
	}
	operand, err := desc.Parse(operandLiteral)
	if err != nil {
		return Predicate[T]{}, fmt.Errorf("parsing operand %q as %s: %w", operandLiteral, desc.Name, err)
	}
	return Predicate[T]{Kind: kind, Operand: operand}, nil
}

// eval decides whether (stored, fresh) satisfies the predicate. fresh is the
// value under test (just read from the target's memory, or the stored value
// itself on a refinement that does no live read); stored is the value
// recorded at the previous scan. On an initial scan there is no previous
// value: callers pass the value just read as both stored and fresh with
// hadPriorScan false, so Changed admits every address and NotChanged none.
func (p Predicate[T]) eval(stored T, fresh T, hadPriorScan bool) bool {
	switch p.Kind {
	case Equal:
		return fresh == p.Operand
	case NotEqual:
		return fresh != p.Operand
	case Less:
		return fresh.Less(p.Operand)
	case LessEqual:
		return !p.Operand.Less(fresh)
	case Greater:
		return p.Operand.Less(fresh)
	case GreaterEqual:
		return !fresh.Less(p.Operand)
	case Changed:
		return !hadPriorScan || fresh != stored
	case NotChanged:
		return hadPriorScan && fresh == stored
	case Refresh:
		return true
	case Unknown:
		return true
	default:
		return false
	}
}
