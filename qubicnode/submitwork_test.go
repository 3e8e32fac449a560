package qubicnode

import (
	"testing"

	"qubic.li/archiver/wire"
)

func TestSubmitWorkBroadcastsFireAndForget(t *testing.T) {
	tr, serverConn := pipeTransport()
	defer tr.Close()
	defer serverConn.Close()
	c := NewClient(tr)

	sol := WorkSolution{PublicKey: [32]byte{1}, Nonce: [32]byte{2}}

	peer := newFakePeer(t, serverConn)
	done := make(chan struct{})
	go func() {
		defer close(done)
		hdr, body := peer.readFrame()
		if hdr.MessageType != wire.BroadcastMessage {
			t.Errorf("MessageType = %d, want %d", hdr.MessageType, wire.BroadcastMessage)
		}
		if len(body) != broadcastMessageSize {
			t.Errorf("body length = %d, want %d", len(body), broadcastMessageSize)
		}
		var from [32]byte
		copy(from[:], body[:32])
		if from != sol.PublicKey {
			t.Errorf("source public key not carried in the first 32 bytes")
		}
	}()

	if err := c.SubmitWork(sol); err != nil {
		t.Fatalf("SubmitWork: %v", err)
	}
	<-done
}
