package qubicnode

import (
	"context"
	"fmt"

	"qubic.li/archiver/wire"
)

// Subscribe sends the initial ExchangePublicPeers handshake, then loops
// reading frames and dispatching them by message type into sink until ctx
// is cancelled or a read error occurs. Unknown message types are dropped,
// matching the wire protocol's rule that any unknown type is dropped by a
// receiver.
func (c *Client) Subscribe(ctx context.Context, initialPeers [4][4]byte, sink chan<- wire.NetworkEvent) error {
	req := wire.ExchangedPublicPeers{Peers: initialPeers}
	if err := c.t.FireAndForget(wire.ExchangePublicPeers, req.ToBytes()); err != nil {
		return fmt.Errorf("qubicnode: subscribe handshake: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f, err := c.t.readFrame()
		if err != nil {
			return err
		}

		event, ok, err := decodeNetworkEvent(f)
		if err != nil {
			return fmt.Errorf("qubicnode: decode subscribed frame: %w", err)
		}
		if !ok {
			continue
		}

		select {
		case sink <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func decodeNetworkEvent(f frame) (wire.NetworkEvent, bool, error) {
	switch f.header.MessageType {
	case wire.ExchangePublicPeers:
		peers, err := wire.ExchangedPublicPeersFromBytes(f.body)
		if err != nil {
			return wire.NetworkEvent{}, false, err
		}
		return wire.NetworkEvent{Kind: wire.EventExchangePublicPeers, ExchangePublicPeers: peers}, true, nil

	case wire.BroadcastMessage:
		return wire.NetworkEvent{Kind: wire.EventBroadcastMessage, BroadcastMessagePayload: f.body}, true, nil

	case wire.BroadcastTransaction:
		return wire.NetworkEvent{Kind: wire.EventBroadcastTransaction, BroadcastTransaction: f.body}, true, nil

	case wire.BroadcastTick:
		tick, err := wire.TickFromBytes(f.body)
		if err != nil {
			return wire.NetworkEvent{}, false, err
		}
		return wire.NetworkEvent{Kind: wire.EventBroadcastTick, BroadcastTick: tick}, true, nil

	case wire.BroadcastFutureTickData:
		td, err := wire.TickDataFromBytes(f.body)
		if err != nil {
			return wire.NetworkEvent{}, false, err
		}
		return wire.NetworkEvent{Kind: wire.EventBroadcastFutureTick, BroadcastFutureTick: td}, true, nil

	default:
		return wire.NetworkEvent{}, false, nil
	}
}
