package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestWriteStubWithExit(t *testing.T) {
	dir := t.TempDir()
	WriteStubWithExit(t, dir, "stub", 4)

	info, err := os.Stat(filepath.Join(dir, "stub"))
	if err != nil {
		t.Fatalf("stat stub: %v", err)
	}
	if info.Mode().Perm()&0o100 == 0 {
		t.Fatalf("expected stub to be executable, got %v", info.Mode())
	}

	err = exec.Command(filepath.Join(dir, "stub")).Run()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected exit error, got %v", err)
	}
	if exitErr.ExitCode() != 4 {
		t.Fatalf("expected exit code 4, got %d", exitErr.ExitCode())
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "service/udiskie.service", "[Unit]\n")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[Unit]\n" {
		t.Fatalf("unexpected content %q", data)
	}
}
