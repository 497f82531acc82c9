package cluster

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteConfsClustered(t *testing.T) {
	dir := t.TempDir()

	paths, err := WriteConfs(dir, 3, 44000)
	if err != nil {
		t.Fatalf("WriteConfs failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("Expected 3 conf files, got %d", len(paths))
	}

	for i, path := range paths {
		want := filepath.Join(dir, fmt.Sprintf("supercluster_%d.conf", i))
		if path != want {
			t.Errorf("Expected conf path %s, got %s", want, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read conf %d: %v", i, err)
		}
		conf := string(data)

		if !strings.Contains(conf, fmt.Sprintf("server_name: \"exercise-%d\"", i)) {
			t.Errorf("Conf %d missing server_name:\n%s", i, conf)
		}
		if !strings.Contains(conf, "name: \"exercise\"") {
			t.Errorf("Conf %d missing cluster name:\n%s", i, conf)
		}

		selfRoute := fmt.Sprintf("\"nats://127.0.0.1:%d\"", 44100+i)
		if strings.Contains(conf, selfRoute) {
			t.Errorf("Conf %d routes to itself:\n%s", i, conf)
		}
		for j := 0; j < 3; j++ {
			if j == i {
				continue
			}
			route := fmt.Sprintf("\"nats://127.0.0.1:%d\"", 44100+j)
			if !strings.Contains(conf, route) {
				t.Errorf("Conf %d missing route to node %d:\n%s", i, j, conf)
			}
		}
	}
}

func TestWriteConfsSingleNode(t *testing.T) {
	dir := t.TempDir()

	paths, err := WriteConfs(dir, 1, 44000)
	if err != nil {
		t.Fatalf("WriteConfs failed: %v", err)
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatalf("Failed to read conf: %v", err)
	}
	if strings.Contains(string(data), "cluster {") {
		t.Errorf("Single-node conf should have no cluster block:\n%s", string(data))
	}
}
