package qubicnode

import (
	"net"
	"testing"
	"time"

	"qubic.li/archiver/wire"
)

// fakePeer wraps the server half of a net.Pipe connection with frame-level
// helpers, standing in for a real computor during transport tests.
type fakePeer struct {
	t    *testing.T
	conn net.Conn
}

func newFakePeer(t *testing.T, conn net.Conn) *fakePeer {
	return &fakePeer{t: t, conn: conn}
}

func (f *fakePeer) readFrame() (wire.Header, []byte) {
	f.t.Helper()
	var hdrBuf [wire.HeaderSize]byte
	if _, err := readFull(f.conn, hdrBuf[:]); err != nil {
		f.t.Fatalf("fakePeer: read header: %v", err)
	}
	hdr, err := wire.DecodeHeader(hdrBuf[:])
	if err != nil {
		f.t.Fatalf("fakePeer: decode header: %v", err)
	}
	body := make([]byte, int(hdr.Size)-wire.HeaderSize)
	if len(body) > 0 {
		if _, err := readFull(f.conn, body); err != nil {
			f.t.Fatalf("fakePeer: read body: %v", err)
		}
	}
	return hdr, body
}

func (f *fakePeer) writeFrame(messageType byte, dejavu uint32, body []byte) {
	f.t.Helper()
	size := wire.HeaderSize + len(body)
	hdr, err := wire.EncodeHeader(wire.Header{Size: uint32(size), MessageType: messageType, Dejavu: dejavu})
	if err != nil {
		f.t.Fatalf("fakePeer: encode header: %v", err)
	}
	if _, err := f.conn.Write(hdr[:]); err != nil {
		f.t.Fatalf("fakePeer: write header: %v", err)
	}
	if len(body) > 0 {
		if _, err := f.conn.Write(body); err != nil {
			f.t.Fatalf("fakePeer: write body: %v", err)
		}
	}
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func pipeTransport() (*Transport, net.Conn) {
	client, server := net.Pipe()
	return NewTransport(client, time.Second), server
}

func TestFireAndForgetDeliversFrame(t *testing.T) {
	tr, serverConn := pipeTransport()
	defer tr.Close()
	defer serverConn.Close()

	peer := newFakePeer(t, serverConn)
	done := make(chan struct{})
	go func() {
		defer close(done)
		hdr, body := peer.readFrame()
		if hdr.MessageType != wire.BroadcastTransaction {
			t.Errorf("MessageType = %d, want %d", hdr.MessageType, wire.BroadcastTransaction)
		}
		if string(body) != "payload" {
			t.Errorf("body = %q, want %q", body, "payload")
		}
	}()

	if err := tr.FireAndForget(wire.BroadcastTransaction, []byte("payload")); err != nil {
		t.Fatalf("FireAndForget: %v", err)
	}
	<-done
}

func TestSingleResponseSkipsUnsolicitedExchangePublicPeers(t *testing.T) {
	tr, serverConn := pipeTransport()
	defer tr.Close()
	defer serverConn.Close()

	peer := newFakePeer(t, serverConn)
	go func() {
		_, _ = peer.readFrame() // the request
		peer.writeFrame(wire.ExchangePublicPeers, 0, make([]byte, 16))
		peer.writeFrame(wire.RespondEntity, 0, []byte("entity-bytes"))
	}()

	f, err := tr.SingleResponse(wire.RequestEntity, []byte("req"))
	if err != nil {
		t.Fatalf("SingleResponse: %v", err)
	}
	if f.header.MessageType != wire.RespondEntity {
		t.Fatalf("MessageType = %d, want %d", f.header.MessageType, wire.RespondEntity)
	}
	if string(f.body) != "entity-bytes" {
		t.Fatalf("body = %q, want %q", f.body, "entity-bytes")
	}
}

func TestMultiResponseCollectsUntilEndResponse(t *testing.T) {
	tr, serverConn := pipeTransport()
	defer tr.Close()
	defer serverConn.Close()

	peer := newFakePeer(t, serverConn)
	go func() {
		_, _ = peer.readFrame() // the request
		peer.writeFrame(wire.RequestTickTransactions, 0, []byte("tx1"))
		peer.writeFrame(wire.RequestTickTransactions, 0, []byte("tx2"))
		peer.writeFrame(wire.EndResponse, 0, nil)
	}()

	payloads, err := tr.MultiResponse(wire.RequestTickTransactions, []byte("req"))
	if err != nil {
		t.Fatalf("MultiResponse: %v", err)
	}
	if len(payloads) != 2 || string(payloads[0]) != "tx1" || string(payloads[1]) != "tx2" {
		t.Fatalf("payloads = %v, want [tx1 tx2]", payloads)
	}
}

func TestWriteFrameRejectsOversizedBody(t *testing.T) {
	tr, serverConn := pipeTransport()
	defer tr.Close()
	defer serverConn.Close()

	big := make([]byte, wire.MaxFrameSize)
	if err := tr.FireAndForget(wire.BroadcastMessage, big); err == nil {
		t.Fatalf("FireAndForget accepted a body exceeding MaxFrameSize")
	}
}
