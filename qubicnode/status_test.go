package qubicnode

import (
	"testing"

	"qubic.li/archiver/wire"
)

func TestTransactionStatusStringer(t *testing.T) {
	if StatusIncluded.String() != "INCLUDED" {
		t.Fatalf("StatusIncluded.String() = %q", StatusIncluded.String())
	}
	if StatusNotFound.String() != "NOT_FOUND" {
		t.Fatalf("StatusNotFound.String() = %q", StatusNotFound.String())
	}
}

func TestTransactionStatusIncludedViaTickDataDigest(t *testing.T) {
	tr, serverConn := pipeTransport()
	defer tr.Close()
	defer serverConn.Close()
	c := NewClient(tr)

	var hash [32]byte
	hash[0] = 1

	var td wire.TickData
	td.TransactionDigest[0] = hash

	peer := newFakePeer(t, serverConn)
	go func() {
		_, _ = peer.readFrame()
		peer.writeFrame(wire.BroadcastTick, 0, td.ToBytes())
	}()

	status, err := c.TransactionStatus(hash, 1000)
	if err != nil {
		t.Fatalf("TransactionStatus: %v", err)
	}
	if status != StatusIncluded {
		t.Fatalf("status = %v, want StatusIncluded", status)
	}
}

func TestTransactionStatusFallsBackToNotFound(t *testing.T) {
	tr, serverConn := pipeTransport()
	defer tr.Close()
	defer serverConn.Close()
	c := NewClient(tr)

	var hash [32]byte
	hash[0] = 9 // absent from both the tick summary and the tick's transactions

	peer := newFakePeer(t, serverConn)
	go func() {
		_, _ = peer.readFrame() // RequestTickData
		peer.writeFrame(wire.BroadcastTick, 0, wire.TickData{}.ToBytes())
		_, _ = peer.readFrame() // RequestTickTransactions
		peer.writeFrame(wire.EndResponse, 0, nil)
	}()

	status, err := c.TransactionStatus(hash, 1000)
	if err != nil {
		t.Fatalf("TransactionStatus: %v", err)
	}
	if status != StatusNotFound {
		t.Fatalf("status = %v, want StatusNotFound", status)
	}
}
