package qubicnode

import (
	"fmt"
	"sync"
)

// PersistentClient holds one Transport behind a mutex and reconnects on
// error, retrying the failed operation once before surfacing it. Only one
// request may be in flight at a time.
type PersistentClient struct {
	addr string

	mu     sync.Mutex
	client *Client
}

// NewPersistentClient creates a PersistentClient that dials addr lazily on
// first use.
func NewPersistentClient(addr string) *PersistentClient {
	return &PersistentClient{addr: addr}
}

// Close releases the underlying connection, if one is open.
func (p *PersistentClient) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

func (p *PersistentClient) ensureConnected() (*Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	c, err := DialClient(p.addr)
	if err != nil {
		return nil, fmt.Errorf("qubicnode: reconnect to %s: %w", p.addr, err)
	}
	p.client = c
	return c, nil
}

// Do runs op against the persistent connection, reconnecting and retrying
// exactly once if op's first attempt fails.
func Do[T any](p *PersistentClient, op func(*Client) (T, error)) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero T

	c, err := p.ensureConnected()
	if err != nil {
		return zero, err
	}

	result, err := op(c)
	if err == nil {
		return result, nil
	}

	// First attempt failed: drop the stale connection and retry once.
	_ = c.Close()
	p.client = nil

	c, err = p.ensureConnected()
	if err != nil {
		return zero, err
	}
	return op(c)
}
