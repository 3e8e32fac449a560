package archiver

import (
	"context"
	"time"

	"qubic.li/archiver/qubicnode"
)

// tickChannelCapacity bounds the producer/consumer channel; kept small so
// a slow store applies backpressure onto the producer.
const tickChannelCapacity = 32

// producerPollInterval is how long the producer sleeps between polling the
// peer's current tick.
const producerPollInterval = 1 * time.Second

// backfillDepth is how many ticks before the starting tick the producer
// enqueues on startup.
const backfillDepth = 10

// Producer walks the peer's tick stream forward, enqueuing newly observed
// ticks and a fixed backlog of recent history on startup, onto a bounded
// channel consumers drain.
type Producer struct {
	client *qubicnode.PersistentClient
	ticks  chan uint32
}

// NewProducer creates a Producer reading from client.
func NewProducer(client *qubicnode.PersistentClient) *Producer {
	return &Producer{
		client: client,
		ticks:  make(chan uint32, tickChannelCapacity),
	}
}

// Ticks is the channel consumers receive tick numbers from.
func (p *Producer) Ticks() <-chan uint32 { return p.ticks }

// Run drives the producer loop until ctx is cancelled, at which point it
// closes the tick channel so consumers can drain and exit.
func (p *Producer) Run(ctx context.Context) error {
	defer close(p.ticks)

	t0, err := qubicnode.Do(p.client, func(c *qubicnode.Client) (uint32, error) {
		info, err := c.GetCurrentTickInfo()
		if err != nil {
			return 0, err
		}
		return info.Tick, nil
	})
	if err != nil {
		return err
	}

	if !p.enqueue(ctx, t0) {
		return ctx.Err()
	}

	earliestViewed := t0
	for i := uint32(1); i <= backfillDepth; i++ {
		if i > t0 {
			break // saturate at zero: there is no tick below genesis
		}
		t := t0 - i
		if !p.enqueue(ctx, t) {
			return ctx.Err()
		}
		earliestViewed = t
	}
	_ = earliestViewed

	latestViewed := t0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(producerPollInterval):
		}

		t1, err := qubicnode.Do(p.client, func(c *qubicnode.Client) (uint32, error) {
			info, err := c.GetCurrentTickInfo()
			if err != nil {
				return 0, err
			}
			return info.Tick, nil
		})
		if err != nil {
			// A failed poll is not fatal: the producer retries after the
			// next sleep.
			continue
		}

		for t := latestViewed + 1; t <= t1; t++ {
			if !p.enqueue(ctx, t) {
				return ctx.Err()
			}
		}
		if t1 > latestViewed {
			latestViewed = t1
		}
	}
}

// enqueue sends tick on the channel, returning false if ctx was cancelled
// first.
func (p *Producer) enqueue(ctx context.Context, tick uint32) bool {
	select {
	case p.ticks <- tick:
		return true
	case <-ctx.Done():
		return false
	}
}
