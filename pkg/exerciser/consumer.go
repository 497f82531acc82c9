package exerciser

import "time"

// Endpoint is the queue-client capability a consumer owns: publish to
// the shared stream and bounded-wait receive through its durable
// consumer. ok=false reports an elapsed wait, not an error.
// pkg/cluster.Client implements it over NATS JetStream.
type Endpoint interface {
	Publish(data []byte) error
	Receive(timeout time.Duration) (data []byte, ok bool, err error)
}

// Consumer pairs an endpoint with the append-only log of identifiers
// it has observed, in observation order. Consumers are created once at
// cluster start and never destroyed; the log only grows.
type Consumer struct {
	ID       int
	Endpoint Endpoint

	observed []uint64
}

func NewConsumer(id int, ep Endpoint) *Consumer {
	return &Consumer{ID: id, Endpoint: ep}
}

// Observed returns the consumer's log. Callers must not mutate it.
func (c *Consumer) Observed() []uint64 { return c.observed }
