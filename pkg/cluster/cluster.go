package cluster

import (
	"fmt"
	"time"

	"github.com/downfa11-org/jetstream-exerciser/pkg/config"
	"github.com/downfa11-org/jetstream-exerciser/util"
)

const readyTimeout = 10 * time.Second

// Cluster owns the spawned server processes and the consumer-bound
// client connections for one exerciser run.
type Cluster struct {
	Servers []*Server
	Clients []*Client
}

// Start provisions the full system under test: per-node config files,
// N server processes, the shared work-queue stream and M durable
// consumers bound round-robin across the servers. On any failure,
// everything already started is torn down before returning.
func Start(cfg *config.Config) (*Cluster, error) {
	cl := &Cluster{}
	if err := cl.start(cfg); err != nil {
		cl.Teardown()
		return nil, err
	}
	return cl, nil
}

func (cl *Cluster) start(cfg *config.Config) error {
	confs, err := WriteConfs(cfg.ConfDir, cfg.Servers, cfg.BasePort)
	if err != nil {
		return err
	}

	for i := 0; i < cfg.Servers; i++ {
		srv, err := Spawn(cfg.ServerPath, i, cfg.BasePort, cfg.StoragePfx, confs[i])
		if err != nil {
			return err
		}
		cl.Servers = append(cl.Servers, srv)
	}

	// let servers come up
	for _, srv := range cl.Servers {
		if err := srv.WaitReady(readyTimeout); err != nil {
			return err
		}
	}

	util.Info("creating testing stream %s", cfg.Stream)

	admin, err := Connect(cl.Servers[0].Addr())
	if err != nil {
		return err
	}
	err = admin.EnsureStream(cfg.Stream)
	admin.Close()
	if err != nil {
		return err
	}

	for id := 0; id < cfg.Clients; id++ {
		srv := cl.Servers[id%len(cl.Servers)]
		name := fmt.Sprintf("consumer_%d", id)
		util.Info("creating testing consumer %s on server %d", name, srv.Index())

		c, err := Connect(srv.Addr())
		if err != nil {
			return err
		}
		cl.Clients = append(cl.Clients, c)

		if err := c.BindConsumer(cfg.Stream, name); err != nil {
			return err
		}
	}

	return nil
}

// Teardown closes every client connection and terminates every server
// process, removing its storage directory. Idempotent.
func (cl *Cluster) Teardown() {
	for _, c := range cl.Clients {
		if c != nil {
			c.Close()
		}
	}
	cl.Clients = nil

	for _, s := range cl.Servers {
		if s != nil {
			s.Shutdown()
		}
	}
	cl.Servers = nil
}
