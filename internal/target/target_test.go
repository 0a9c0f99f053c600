package target

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

func TestParseMapsLine(t *testing.T) {
	line := "00400000-00452000 r-xp 00000000 08:02 173521      /usr/bin/dbus-daemon"
	m, err := ParseMapsLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if m.AddrStart != 0x00400000 || m.AddrEnd != 0x00452000 {
		t.Errorf("got range %#x-%#x", m.AddrStart, m.AddrEnd)
	}
	if !m.Perms.Read || m.Perms.Write || !m.Perms.Execute || !m.Perms.Private {
		t.Errorf("got perms %+v", m.Perms)
	}
	if m.Dev.Major != 0x08 || m.Dev.Minor != 0x02 {
		t.Errorf("got dev %+v", m.Dev)
	}
	if m.Inode != 173521 {
		t.Errorf("got inode %d", m.Inode)
	}
	if m.Pathname != "/usr/bin/dbus-daemon" {
		t.Errorf("got pathname %q", m.Pathname)
	}
	if m.Len() != 0x452000-0x400000 {
		t.Errorf("got len %d", m.Len())
	}
}

func TestParseMapsLineAnonymous(t *testing.T) {
	line := "7f1234500000-7f1234521000 rw-p 00000000 00:00 0 "
	m, err := ParseMapsLine(line)
	if err != nil {
		t.Fatal(err)
	}
	if m.Pathname != "" {
		t.Errorf("expected empty pathname, got %q", m.Pathname)
	}
	if !m.Perms.Read || !m.Perms.Write || m.Perms.Execute {
		t.Errorf("got perms %+v", m.Perms)
	}
}

func TestParseMapsLineMalformedReturnsError(t *testing.T) {
	cases := []string{
		"",
		"00400000 r-xp 00000000 08:02 173521",    // missing '-'
		"00400000-00452000 rx 00000000 08:02 1",  // short perms
		"00400000-00452000 r-xp zz 08:02 173521", // bad offset
		"00400000-00452000 r-xp 00000000 8 173521",
	}
	for _, c := range cases {
		if _, err := ParseMapsLine(c); err == nil {
			t.Errorf("ParseMapsLine(%q): expected error, got nil", c)
		}
	}
}

func TestParseMapsPreservesOrder(t *testing.T) {
	contents := "" +
		"00400000-00401000 r-xp 00000000 00:00 0 \n" +
		"00601000-00602000 rw-p 00001000 00:00 0 \n" +
		"7ffff7a00000-7ffff7bff000 r--p 00000000 08:02 99 /lib/libc.so\n"
	maps, err := ParseMaps(contents)
	if err != nil {
		t.Fatal(err)
	}
	if len(maps) != 3 {
		t.Fatalf("got %d maps, want 3", len(maps))
	}
	if maps[0].AddrStart != 0x00400000 || maps[2].Pathname != "/lib/libc.so" {
		t.Errorf("order not preserved: %+v", maps)
	}
}

func TestAttachFromFixtureProcRoot(t *testing.T) {
	root := t.TempDir()
	pid := os.Getpid()
	pidDir := filepath.Join(root, strconv.Itoa(pid))
	if err := os.MkdirAll(pidDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(pidDir, "cmdline"), []byte("memscan\x00--flag\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	mapsContents := "00400000-00401000 r-xp 00000000 00:00 0 \n"
	if err := os.WriteFile(filepath.Join(pidDir, "maps"), []byte(mapsContents), 0o644); err != nil {
		t.Fatal(err)
	}

	tgt, err := Attach(pid, root)
	if err != nil {
		t.Fatal(err)
	}
	if tgt.Command != "memscan --flag" {
		t.Errorf("got command %q", tgt.Command)
	}
	if len(tgt.Maps) != 1 {
		t.Errorf("got %d maps, want 1", len(tgt.Maps))
	}
	if tgt.MemPath() != filepath.Join(root, strconv.Itoa(pid), "mem") {
		t.Errorf("got mem path %q", tgt.MemPath())
	}
}
