package cluster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Client owns one NATS connection and, once BindConsumer has run, the
// durable pull subscription it receives through. Publishes go to the
// bound stream's subject.
type Client struct {
	nc      *nats.Conn
	js      nats.JetStreamContext
	sub     *nats.Subscription
	subject string
}

func Connect(addr string) (*Client, error) {
	nc, err := nats.Connect(addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("jetstream context for %s: %w", addr, err)
	}
	return &Client{nc: nc, js: js}, nil
}

// EnsureStream drops any stale stream left over from an aborted run
// and creates a fresh one with work-queue retention.
func (c *Client) EnsureStream(name string) error {
	_ = c.js.DeleteStream(name)

	if _, err := c.js.AddStream(&nats.StreamConfig{
		Name:      name,
		Retention: nats.WorkQueuePolicy,
	}); err != nil {
		return fmt.Errorf("create stream %s: %w", name, err)
	}
	return nil
}

// BindConsumer creates the named durable pull consumer on the stream
// and binds this client's publishes to the stream subject.
func (c *Client) BindConsumer(stream, durable string) error {
	sub, err := c.js.PullSubscribe(stream, durable)
	if err != nil {
		return fmt.Errorf("create consumer %s on %s: %w", durable, stream, err)
	}
	c.sub = sub
	c.subject = stream
	return nil
}

// Publish sends one already-encoded payload to the bound stream.
func (c *Client) Publish(data []byte) error {
	if _, err := c.js.Publish(c.subject, data); err != nil {
		return fmt.Errorf("publish to %s: %w", c.subject, err)
	}
	return nil
}

// Receive waits up to timeout for a single message, acks it and
// returns its payload. ok is false when the wait elapsed without a
// message, which is a normal outcome, not an error.
func (c *Client) Receive(timeout time.Duration) (data []byte, ok bool, err error) {
	msgs, err := c.sub.Fetch(1, nats.MaxWait(timeout))
	if err != nil {
		if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("receive: %w", err)
	}
	if len(msgs) == 0 {
		return nil, false, nil
	}

	msg := msgs[0]
	if err := msg.Ack(); err != nil {
		return nil, false, fmt.Errorf("ack: %w", err)
	}
	return msg.Data, true, nil
}

func (c *Client) Close() {
	if c.nc != nil {
		c.nc.Close()
	}
}
