package cluster

import (
	"fmt"
	"net"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/downfa11-org/jetstream-exerciser/util"
)

// Server owns one external nats-server process. Index, port, storage
// directory and config file stay stable across restarts; the process
// and its storage do not.
type Server struct {
	cmd        *exec.Cmd
	index      int
	port       int
	storageDir string
	confPath   string
	binPath    string
}

// Spawn wipes the node's storage directory and starts a fresh server
// process for the given slot.
func Spawn(binPath string, index, basePort int, storagePfx, confPath string) (*Server, error) {
	s := &Server{
		index:      index,
		port:       basePort + index,
		storageDir: fmt.Sprintf("%s%d", storagePfx, index),
		confPath:   confPath,
		binPath:    binPath,
	}
	if err := s.spawn(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) spawn() error {
	if err := os.RemoveAll(s.storageDir); err != nil {
		return fmt.Errorf("wipe storage dir %s: %w", s.storageDir, err)
	}

	cmd := exec.Command(s.binPath, s.args()...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %s for server %d: %w", s.binPath, s.index, err)
	}

	s.cmd = cmd
	return nil
}

func (s *Server) args() []string {
	return []string{
		"--port", strconv.Itoa(s.port),
		"-js",
		"-sd", s.storageDir,
		"-c", s.confPath,
		"-V", "-D",
	}
}

func (s *Server) Index() int { return s.index }

func (s *Server) Addr() string {
	return fmt.Sprintf("localhost:%d", s.port)
}

// Restart forcefully terminates the process, waits for it to exit and
// spawns a replacement on the same index, port and config, with the
// storage directory wiped fresh.
func (s *Server) Restart() error {
	if err := s.kill(); err != nil {
		return err
	}
	return s.spawn()
}

func (s *Server) kill() error {
	if s.cmd == nil || s.cmd.Process == nil {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil {
		return fmt.Errorf("kill server %d: %w", s.index, err)
	}
	// exit status is an error after Kill, only the reap matters
	_ = s.cmd.Wait()
	s.cmd = nil
	return nil
}

// Shutdown terminates the process and removes its storage directory.
// Safe to call on an already-terminated server.
func (s *Server) Shutdown() {
	if err := s.kill(); err != nil {
		util.Warn("shutdown server %d: %v", s.index, err)
	}
	if err := os.RemoveAll(s.storageDir); err != nil {
		util.Warn("remove storage dir %s: %v", s.storageDir, err)
	}
}

// WaitReady blocks until the server accepts TCP connections on its
// client port or the timeout elapses.
func (s *Server) WaitReady(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", s.Addr(), 250*time.Millisecond)
		if err == nil {
			conn.Close()
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server %d on %s never became ready", s.index, s.Addr())
}
