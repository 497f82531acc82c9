//go:build unix

package cluster

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Suspend delivers SIGSTOP. The process stops executing but keeps its
// OS resources and open sockets.
func (s *Server) Suspend() error {
	pid, err := s.pid()
	if err != nil {
		return err
	}
	if err := unix.Kill(pid, unix.SIGSTOP); err != nil {
		return fmt.Errorf("suspend server %d (pid %d): %w", s.index, pid, err)
	}
	return nil
}

// Resume delivers SIGCONT, undoing a previous Suspend.
func (s *Server) Resume() error {
	pid, err := s.pid()
	if err != nil {
		return err
	}
	if err := unix.Kill(pid, unix.SIGCONT); err != nil {
		return fmt.Errorf("resume server %d (pid %d): %w", s.index, pid, err)
	}
	return nil
}

func (s *Server) pid() (int, error) {
	if s.cmd == nil || s.cmd.Process == nil {
		return 0, fmt.Errorf("server %d has no running process", s.index)
	}
	return s.cmd.Process.Pid, nil
}
