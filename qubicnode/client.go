package qubicnode

import (
	"fmt"

	"qubic.li/archiver/transaction"
	"qubic.li/archiver/wire"
)

// Client exposes the typed request/response operation table over one
// Transport.
type Client struct {
	t *Transport
}

// NewClient wraps a Transport.
func NewClient(t *Transport) *Client { return &Client{t: t} }

// DialClient opens a new Transport to addr and wraps it in a Client.
func DialClient(addr string) (*Client, error) {
	t, err := Dial(addr)
	if err != nil {
		return nil, err
	}
	return NewClient(t), nil
}

// Close releases the underlying transport.
func (c *Client) Close() error { return c.t.Close() }

// GetCurrentTickInfo fetches the peer's current tick, epoch and vote tally.
func (c *Client) GetCurrentTickInfo() (wire.CurrentTickInfo, error) {
	f, err := c.t.SingleResponse(wire.RequestCurrentTickInfo, nil)
	if err != nil {
		return wire.CurrentTickInfo{}, err
	}
	if f.header.MessageType != wire.RespondCurrentTickInfo {
		return wire.CurrentTickInfo{}, unexpectedType(wire.RespondCurrentTickInfo, f.header.MessageType)
	}
	return wire.CurrentTickInfoFromBytes(f.body)
}

// RequestEntity fetches id's spectrum entry, tick, and Merkle proof.
func (c *Client) RequestEntity(id [32]byte) (wire.RespondedEntity, error) {
	req := wire.RequestedEntity{PublicKey: id}
	f, err := c.t.SingleResponse(wire.RequestEntity, req.ToBytes())
	if err != nil {
		return wire.RespondedEntity{}, err
	}
	if f.header.MessageType != wire.RespondEntity {
		return wire.RespondedEntity{}, unexpectedType(wire.RespondEntity, f.header.MessageType)
	}
	return wire.RespondedEntityFromBytes(f.body)
}

// RequestComputors fetches the current elected computor set.
func (c *Client) RequestComputors() (wire.Computors, error) {
	f, err := c.t.SingleResponse(wire.RequestComputors, nil)
	if err != nil {
		return wire.Computors{}, err
	}
	if f.header.MessageType != wire.BroadcastComputors {
		return wire.Computors{}, unexpectedType(wire.BroadcastComputors, f.header.MessageType)
	}
	return wire.ComputorsFromBytes(f.body)
}

// RequestContractIpo fetches contract index i's current IPO book.
func (c *Client) RequestContractIpo(index uint32) (wire.ContractIpo, error) {
	req := wire.RequestContractIpo{ContractIndex: index}
	f, err := c.t.SingleResponse(wire.RequestContractIPO, req.ToBytes())
	if err != nil {
		return wire.ContractIpo{}, err
	}
	if f.header.MessageType != wire.RespondContractIPO {
		return wire.ContractIpo{}, unexpectedType(wire.RespondContractIPO, f.header.MessageType)
	}
	return wire.ContractIpoFromBytes(f.body)
}

// RequestTickData fetches tick t's summary.
func (c *Client) RequestTickData(tick uint32) (wire.TickData, error) {
	req := wire.RequestedTickData{Tick: tick}
	f, err := c.t.SingleResponse(wire.RequestTickData, req.ToBytes())
	if err != nil {
		return wire.TickData{}, err
	}
	return wire.TickDataFromBytes(f.body)
}

// RequestQuorumTick fetches tick t filtered to the given computor-seat vote
// flags.
func (c *Client) RequestQuorumTick(tick uint32, flags [(wire.NumberOfComputors + 7) / 8]byte) (wire.TickData, error) {
	req := wire.QuorumTickData{Tick: tick, Flags: flags}
	f, err := c.t.SingleResponse(wire.RequestQuorumTick, req.ToBytes())
	if err != nil {
		return wire.TickData{}, err
	}
	return wire.TickDataFromBytes(f.body)
}

// RequestTickTransactions fetches the flagged transaction slots of tick t,
// draining frames until EndResponse.
func (c *Client) RequestTickTransactions(tick uint32, flags wire.TransactionFlags) ([]transaction.TransactionWithData, error) {
	req := wire.RequestedTickTransactions{Tick: tick, Flags: flags}
	payloads, err := c.t.MultiResponse(wire.RequestTickTransactions, req.ToBytes())
	if err != nil {
		return nil, err
	}
	out := make([]transaction.TransactionWithData, 0, len(payloads))
	for _, p := range payloads {
		tx, err := transaction.TransactionWithDataFromBytes(p)
		if err != nil {
			return nil, fmt.Errorf("qubicnode: decode tick transaction: %w", err)
		}
		out = append(out, tx)
	}
	return out, nil
}

// SendSignedTransaction broadcasts an already-signed transaction
// fire-and-forget; the peer does not acknowledge it.
func (c *Client) SendSignedTransaction(tx transaction.TransactionWithData) error {
	return c.t.FireAndForget(wire.BroadcastTransaction, tx.ToBytes())
}

// ExchangePublicPeers trades up to four known peer addresses with the
// remote end.
func (c *Client) ExchangePublicPeers(peers [4][4]byte) (wire.ExchangedPublicPeers, error) {
	req := wire.ExchangedPublicPeers{Peers: peers}
	f, err := c.t.SingleResponse(wire.ExchangePublicPeers, req.ToBytes())
	if err != nil {
		return wire.ExchangedPublicPeers{}, err
	}
	return wire.ExchangedPublicPeersFromBytes(f.body)
}

// RequestContractFunction invokes a read-only smart-contract function. The
// request/response bodies are opaque; this repo only carries them, it never
// interprets the payload.
func (c *Client) RequestContractFunction(body []byte) ([]byte, error) {
	f, err := c.t.SingleResponse(wire.RequestContractFunction, body)
	if err != nil {
		return nil, err
	}
	if f.header.MessageType != wire.RespondContractFunction {
		return nil, unexpectedType(wire.RespondContractFunction, f.header.MessageType)
	}
	return f.body, nil
}

func unexpectedType(want, got byte) error {
	return fmt.Errorf("qubicnode: unexpected response message type (want %d, got %d)", want, got)
}
