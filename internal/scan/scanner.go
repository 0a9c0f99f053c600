package scan

import (
	"fmt"

	"github.com/memscan/memscan/internal/arch"
	"github.com/memscan/memscan/internal/memreader"
	"github.com/memscan/memscan/internal/target"
)

// Scanner is the type-erased capability over AddressSet[T]: internal/memctx
// and cmd/memscan hold a Scanner without knowing which element width the
// user selected with the "type" command, mirroring the teacher's habit of
// exposing a narrow interface (program.File, program.Program) in place of a
// concrete generic type the caller would otherwise have to parameterize on.
type Scanner interface {
	TypeName() string
	Scan(predicateName string, operandLiteral string, maps []target.MemoryMap, progressBatch int) (<-chan Progress, error)
	Len() int
	IsEmpty() bool
	Addresses() []uint64
	ValueStrings() []string
	DisplayRows() []DisplayRow
	Write(index int, literal string) error
	// FreezeWriter returns a function that rewrites the address at index
	// with its currently stored value, for the "freeze" command's periodic
	// rewrite goroutine.
	FreezeWriter(index int) (addr uint64, rewrite func() error, err error)
}

type typedScanner[T arch.Value[T]] struct {
	desc   arch.Descriptor[T]
	set    *AddressSet[T]
	format func(T) string
}

func newTypedScanner[T arch.Value[T]](desc arch.Descriptor[T], reader *memreader.Reader, format func(T) string) *typedScanner[T] {
	return &typedScanner[T]{
		desc:   desc,
		set:    NewAddressSet(desc, reader),
		format: format,
	}
}

func (s *typedScanner[T]) TypeName() string { return s.desc.Name }

func (s *typedScanner[T]) Scan(predicateName string, operandLiteral string, maps []target.MemoryMap, progressBatch int) (<-chan Progress, error) {
	pred, err := ParsePredicate(s.desc, predicateName, operandLiteral)
	if err != nil {
		return nil, err
	}
	return s.set.Scan(pred, maps, progressBatch)
}

func (s *typedScanner[T]) Len() int     { return s.set.Len() }
func (s *typedScanner[T]) IsEmpty() bool { return s.set.IsEmpty() }
func (s *typedScanner[T]) Addresses() []uint64 { return s.set.Addresses() }

func (s *typedScanner[T]) ValueStrings() []string {
	return s.set.ValueStrings(s.format)
}

func (s *typedScanner[T]) DisplayRows() []DisplayRow {
	return s.set.DisplayRows(s.format)
}

func (s *typedScanner[T]) Write(index int, literal string) error {
	return s.set.Write(index, literal)
}

func (s *typedScanner[T]) FreezeWriter(index int) (uint64, func() error, error) {
	addr, value, err := s.set.ValueAt(index)
	if err != nil {
		return 0, nil, err
	}
	rewrite := func() error {
		if !memreader.WriteValue(s.set.reader, addr, s.desc, value) {
			return fmt.Errorf("freeze: writing %#x failed", addr)
		}
		return nil
	}
	return addr, rewrite, nil
}

// NewScanner constructs the Scanner for the named element type tag (one of
// "i8","u8","i16","u16","i32","u32","i64","u64","i128","u128", matching
// spec.md §6's type-name vocabulary), reading through reader.
func NewScanner(typeTag string, reader *memreader.Reader) (Scanner, error) {
	switch typeTag {
	case "i8":
		return newTypedScanner(arch.DescI8, reader, arch.FormatI8), nil
	case "u8":
		return newTypedScanner(arch.DescU8, reader, arch.FormatU8), nil
	case "i16":
		return newTypedScanner(arch.DescI16, reader, arch.FormatI16), nil
	case "u16":
		return newTypedScanner(arch.DescU16, reader, arch.FormatU16), nil
	case "i32":
		return newTypedScanner(arch.DescI32, reader, arch.FormatI32), nil
	case "u32":
		return newTypedScanner(arch.DescU32, reader, arch.FormatU32), nil
	case "i64":
		return newTypedScanner(arch.DescI64, reader, arch.FormatI64), nil
	case "u64":
		return newTypedScanner(arch.DescU64, reader, arch.FormatU64), nil
	case "i128":
		return newTypedScanner(arch.DescI128, reader, arch.FormatI128), nil
	case "u128":
		return newTypedScanner(arch.DescU128, reader, arch.FormatU128), nil
	default:
		return nil, fmt.Errorf("unrecognized element type %q", typeTag)
	}
}
