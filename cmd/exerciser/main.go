package main

import (
	crand "crypto/rand"
	"encoding/binary"
	"os"

	"github.com/downfa11-org/jetstream-exerciser/pkg/cluster"
	"github.com/downfa11-org/jetstream-exerciser/pkg/config"
	"github.com/downfa11-org/jetstream-exerciser/pkg/exerciser"
	"github.com/downfa11-org/jetstream-exerciser/pkg/metrics"
	"github.com/downfa11-org/jetstream-exerciser/util"
	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		// the flag set already printed usage
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		util.Fatal("%v", err)
	}
}

func run(cfg *config.Config) error {
	runID := uuid.New()
	seed := resolveSeed(cfg)
	util.Info("starting cluster exerciser run %s with seed %d", runID, seed)

	if cfg.EnableExporter {
		metrics.StartMetricsServer(cfg.ExporterPort)
	}

	cl, err := cluster.Start(cfg)
	if err != nil {
		return err
	}
	defer cl.Teardown()

	servers := make([]exerciser.ServerNode, len(cl.Servers))
	for i, s := range cl.Servers {
		servers[i] = s
	}
	consumers := make([]*exerciser.Consumer, len(cl.Clients))
	for i, c := range cl.Clients {
		consumers[i] = exerciser.NewConsumer(i, c)
	}

	sched := exerciser.New(servers, consumers, exerciser.Options{
		Seed:                    seed,
		ReceiveTimeout:          cfg.ReceiveTimeout(),
		TolerateTransportErrors: cfg.TolerateTransportErrors,
	})

	if err := sched.Run(cfg.Steps); err != nil {
		return err
	}

	util.Info("run %s complete: %d steps, %d published, %d consumed, oracle length %d",
		runID, cfg.Steps, sched.Published(), sched.Consumed(), sched.Oracle().Len())
	return nil
}

// resolveSeed uses the configured seed when present, otherwise draws a
// fresh one. Either way the seed is printed at startup so a failing run
// can be replayed.
func resolveSeed(cfg *config.Config) uint64 {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		util.Fatal("generate seed: %v", err)
	}
	return binary.LittleEndian.Uint64(b[:])
}
