package memreader

import (
	"reflect"
	"testing"

	"github.com/memscan/memscan/internal/arch"
)

// probeValue is a package-level variable whose address we can recover with
// reflect, the same trick the teacher uses in probe/addr_test.go to get a
// real, valid address without depending on any particular memory layout.
var probeValue int32 = 0x00c0ffee

func addrOf(p interface{}) uintptr {
	return reflect.ValueOf(p).Elem().UnsafeAddr()
}

func TestReadValueFromOwnProcess(t *testing.T) {
	r, err := Open("/proc/self/mem")
	if err != nil {
		t.Fatalf("opening /proc/self/mem: %v", err)
	}
	defer r.Close()

	addr := uint64(addrOf(&probeValue))
	got, ok := ReadValue(r, addr, arch.DescI32)
	if !ok {
		t.Fatal("read failed, want success")
	}
	if got != arch.I32(probeValue) {
		t.Errorf("got %v, want %v", got, probeValue)
	}
}

func TestWriteValueToOwnProcess(t *testing.T) {
	var target int64 = 111
	r, err := Open("/proc/self/mem")
	if err != nil {
		t.Fatalf("opening /proc/self/mem: %v", err)
	}
	defer r.Close()

	addr := uint64(addrOf(&target))
	if !WriteValue(r, addr, arch.DescI64, arch.I64(222)) {
		t.Fatal("write failed, want success")
	}
	if target != 222 {
		t.Errorf("write did not take effect in-process: got %v, want 222", target)
	}

	got, ok := ReadValue(r, addr, arch.DescI64)
	if !ok || got != 222 {
		t.Errorf("got (%v, %v), want (222, true)", got, ok)
	}
}

func TestReadValueUnmappedAddressFailsSilently(t *testing.T) {
	r, err := Open("/proc/self/mem")
	if err != nil {
		t.Fatalf("opening /proc/self/mem: %v", err)
	}
	defer r.Close()

	_, ok := ReadValue(r, 0, arch.DescI32)
	if ok {
		t.Error("expected read at address 0 to fail")
	}
}

func TestCloneIndependentReader(t *testing.T) {
	r, err := Open("/proc/self/mem")
	if err != nil {
		t.Fatalf("opening /proc/self/mem: %v", err)
	}
	defer r.Close()

	clone, err := r.Clone()
	if err != nil {
		t.Fatalf("cloning reader: %v", err)
	}
	defer clone.Close()

	addr := uint64(addrOf(&probeValue))
	got, ok := ReadValue(clone, addr, arch.DescI32)
	if !ok || got != arch.I32(probeValue) {
		t.Errorf("clone read got (%v, %v), want (%v, true)", got, ok, probeValue)
	}
}
