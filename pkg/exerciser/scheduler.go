package exerciser

import (
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/downfa11-org/jetstream-exerciser/pkg/metrics"
	"github.com/downfa11-org/jetstream-exerciser/util"
)

// ServerNode is the process-control surface the scheduler drives.
// Restart replaces the process in place (same identity, storage wiped);
// Suspend/Resume freeze and thaw it. pkg/cluster.Server implements it
// against real OS processes.
type ServerNode interface {
	Restart() error
	Suspend() error
	Resume() error
}

type Options struct {
	Seed           uint64
	ReceiveTimeout time.Duration

	// TolerateTransportErrors downgrades publish/consume transport
	// errors (not timeouts) to warnings, so client-side failover in the
	// system under test can be exercised. Default is fail-fast.
	TolerateTransportErrors bool
}

// Scheduler drives the randomized fault/traffic walk: exactly one
// weighted action per step, then one validation pass over consumers
// with new observations. Single-threaded; the seed fully determines
// the chosen action sequence.
type Scheduler struct {
	servers   []ServerNode
	consumers []*Consumer

	rng         *rand.Rand
	seq         util.Sequence
	paused      map[int]struct{}
	unvalidated map[int]struct{}
	oracle      Oracle
	opts        Options

	published uint64
	consumed  uint64
}

func New(servers []ServerNode, consumers []*Consumer, opts Options) *Scheduler {
	if opts.ReceiveTimeout <= 0 {
		opts.ReceiveTimeout = 500 * time.Millisecond
	}
	return &Scheduler{
		servers:     servers,
		consumers:   consumers,
		rng:         rand.New(rand.NewSource(int64(opts.Seed))),
		paused:      make(map[int]struct{}),
		unvalidated: make(map[int]struct{}),
		opts:        opts,
	}
}

// Run executes the given number of steps, aborting on the first
// process-control error, non-tolerated transport error or invariant
// violation.
func (s *Scheduler) Run(steps uint64) error {
	for i := uint64(0); i < steps; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Step performs one randomly chosen action, then validates. Weights
// over 50 units: restart-server 1, pause-server 4, resume-server 5,
// publish 20, consume 20.
func (s *Scheduler) Step() error {
	var err error
	switch n := s.rng.Intn(50); {
	case n == 0:
		err = s.restartServer()
	case n <= 4:
		err = s.pauseServer()
	case n <= 9:
		err = s.resumeServer()
	case n <= 29:
		err = s.publish()
	default:
		err = s.consume()
	}
	if err != nil {
		return err
	}
	return s.validate()
}

func (s *Scheduler) restartServer() error {
	idx := s.rng.Intn(len(s.servers))
	util.Info("restarting server %d", idx)
	metrics.CountAction("restart_server")

	if err := s.servers[idx].Restart(); err != nil {
		return fmt.Errorf("restart server %d: %w", idx, err)
	}

	delete(s.paused, idx)
	metrics.PausedServers.Set(float64(len(s.paused)))
	return nil
}

func (s *Scheduler) pauseServer() error {
	if len(s.paused) == len(s.servers) {
		// all servers already paused
		return nil
	}

	idx := s.rng.Intn(len(s.servers))
	for {
		if _, isPaused := s.paused[idx]; !isPaused {
			break
		}
		idx = s.rng.Intn(len(s.servers))
	}

	util.Info("pausing server %d", idx)
	metrics.CountAction("pause_server")

	if err := s.servers[idx].Suspend(); err != nil {
		return fmt.Errorf("pause server %d: %w", idx, err)
	}

	s.paused[idx] = struct{}{}
	metrics.PausedServers.Set(float64(len(s.paused)))
	return nil
}

func (s *Scheduler) resumeServer() error {
	if len(s.paused) == 0 {
		// nothing to resume
		return nil
	}

	idx := s.pickPaused()
	util.Info("resuming server %d", idx)
	metrics.CountAction("resume_server")

	if err := s.servers[idx].Resume(); err != nil {
		return fmt.Errorf("resume server %d: %w", idx, err)
	}

	delete(s.paused, idx)
	metrics.PausedServers.Set(float64(len(s.paused)))
	return nil
}

// pickPaused chooses uniformly among paused indices. Go randomizes map
// iteration order, so pick through a sorted slice to keep replay of a
// seed deterministic.
func (s *Scheduler) pickPaused() int {
	idxs := make([]int, 0, len(s.paused))
	for i := range s.paused {
		idxs = append(idxs, i)
	}
	slices.Sort(idxs)
	return idxs[s.rng.Intn(len(idxs))]
}

func (s *Scheduler) publish() error {
	c := s.consumers[s.rng.Intn(len(s.consumers))]
	util.Info("publishing message by client %d", c.ID)
	metrics.CountAction("publish")

	id := s.seq.Next()
	if err := c.Endpoint.Publish(util.EncodeID(id)); err != nil {
		if s.opts.TolerateTransportErrors {
			util.Warn("publish by client %d failed: %v", c.ID, err)
			metrics.TransportErrors.Inc()
			return nil
		}
		return fmt.Errorf("publish by client %d: %w", c.ID, err)
	}

	s.published++
	metrics.MessagesPublished.Inc()
	return nil
}

func (s *Scheduler) consume() error {
	ci := s.rng.Intn(len(s.consumers))
	c := s.consumers[ci]
	util.Info("consuming message by client %d", c.ID)
	metrics.CountAction("consume")

	data, ok, err := c.Endpoint.Receive(s.opts.ReceiveTimeout)
	if err != nil {
		if s.opts.TolerateTransportErrors {
			util.Warn("consume by client %d failed: %v", c.ID, err)
			metrics.TransportErrors.Inc()
			return nil
		}
		return fmt.Errorf("consume by client %d: %w", c.ID, err)
	}
	if !ok {
		// absence within the window is expected, not an error
		metrics.ConsumeTimeouts.Inc()
		return nil
	}

	id, err := util.DecodeID(data)
	if err != nil {
		// malformed payload is a defect of the system under test
		return fmt.Errorf("consume by client %d: %w", c.ID, err)
	}

	c.observed = append(c.observed, id)
	s.unvalidated[ci] = struct{}{}
	s.consumed++
	metrics.MessagesConsumed.Inc()
	return nil
}

// validate merges every consumer with new observations into the
// oracle, checking order-prefix agreement. Runs after every step; the
// unvalidated set is cleared each pass.
func (s *Scheduler) validate() error {
	if len(s.unvalidated) == 0 {
		return nil
	}

	ids := make([]int, 0, len(s.unvalidated))
	for id := range s.unvalidated {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	s.unvalidated = make(map[int]struct{})

	for _, id := range ids {
		if err := s.oracle.Merge(id, s.consumers[id].observed); err != nil {
			return err
		}
	}

	metrics.OracleLength.Set(float64(s.oracle.Len()))
	return nil
}

func (s *Scheduler) Oracle() *Oracle { return &s.oracle }

func (s *Scheduler) Published() uint64 { return s.published }

func (s *Scheduler) Consumed() uint64 { return s.consumed }
