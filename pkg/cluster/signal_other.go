//go:build !unix

package cluster

import "fmt"

// This platform has no SIGSTOP/SIGCONT equivalent the harness can rely
// on, so pause/resume fault injection is unavailable rather than
// silently approximated.

func (s *Server) Suspend() error {
	return fmt.Errorf("suspend server %d: process suspension is not supported on this platform", s.index)
}

func (s *Server) Resume() error {
	return fmt.Errorf("resume server %d: process suspension is not supported on this platform", s.index)
}
