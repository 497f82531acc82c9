package cluster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestServerArgs(t *testing.T) {
	s := &Server{
		index:      2,
		port:       44002,
		storageDir: "jetstream_test_2",
		confPath:   "confs/supercluster_2.conf",
		binPath:    "nats-server",
	}

	got := strings.Join(s.args(), " ")
	want := "--port 44002 -js -sd jetstream_test_2 -c confs/supercluster_2.conf -V -D"
	if got != want {
		t.Errorf("args = %q; want %q", got, want)
	}
}

func TestServerAddr(t *testing.T) {
	s := &Server{index: 1, port: 44001}
	if s.Addr() != "localhost:44001" {
		t.Errorf("Addr = %q; want localhost:44001", s.Addr())
	}
}

func TestSpawnMissingBinary(t *testing.T) {
	dir := t.TempDir()

	_, err := Spawn(filepath.Join(dir, "no-such-binary"), 0, 44000, filepath.Join(dir, "storage_"), filepath.Join(dir, "node.conf"))
	if err == nil {
		t.Fatal("Expected error for missing binary, got nil")
	}
}

func TestSpawnWipesStorageDir(t *testing.T) {
	dir := t.TempDir()
	storagePfx := filepath.Join(dir, "storage_")

	// stale state from a previous run
	staleDir := storagePfx + "0"
	if err := os.MkdirAll(staleDir, 0755); err != nil {
		t.Fatalf("Failed to create stale dir: %v", err)
	}
	stale := filepath.Join(staleDir, "old.blk")
	if err := os.WriteFile(stale, []byte("stale"), 0644); err != nil {
		t.Fatalf("Failed to write stale file: %v", err)
	}

	// spawn fails on the missing binary, after the wipe
	_, err := Spawn(filepath.Join(dir, "no-such-binary"), 0, 44000, storagePfx, filepath.Join(dir, "node.conf"))
	if err == nil {
		t.Fatal("Expected error for missing binary, got nil")
	}

	if _, err := os.Stat(staleDir); !os.IsNotExist(err) {
		t.Errorf("Expected stale storage dir to be wiped before spawn")
	}
}

func TestKillWithoutProcess(t *testing.T) {
	s := &Server{index: 0}
	if err := s.kill(); err != nil {
		t.Errorf("kill on never-started server should be a no-op, got %v", err)
	}

	// Shutdown must also tolerate a dead slot
	s.storageDir = filepath.Join(t.TempDir(), "storage_0")
	s.Shutdown()
}
