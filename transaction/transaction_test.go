package transaction

import "testing"

func TestRawTransactionSizeIs80(t *testing.T) {
	if RawTransactionSize != 80 {
		t.Fatalf("RawTransactionSize = %d, want 80", RawTransactionSize)
	}
}

func TestRawTransactionRoundTrip(t *testing.T) {
	want := RawTransaction{
		Amount:    1_000_000,
		Tick:      15_000_123,
		InputType: 2,
		InputSize: 64,
	}
	want.From[0] = 1
	want.To[0] = 2

	b := want.ToBytes()
	if len(b) != RawTransactionSize {
		t.Fatalf("ToBytes length = %d, want %d", len(b), RawTransactionSize)
	}
	got, err := RawTransactionFromBytes(b)
	if err != nil {
		t.Fatalf("RawTransactionFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestRawTransactionFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := RawTransactionFromBytes(make([]byte, RawTransactionSize-1)); err == nil {
		t.Fatalf("accepted a buffer one byte short")
	}
}

func TestTransactionWithDataRoundTripNoPayload(t *testing.T) {
	var raw RawTransaction
	raw.From[0] = 9
	raw.To[0] = 8
	raw.Amount = 500
	raw.Tick = 42

	want := TransactionWithData{Raw: raw, Payload: Payload{Kind: KindNone}}
	want.Signature[0] = 0xAB

	got, err := TransactionWithDataFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("TransactionWithDataFromBytes: %v", err)
	}
	if got.Raw != want.Raw || got.Signature != want.Signature || got.Payload.Kind != KindNone {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestTransactionWithDataFromBytesRejectsTooShort(t *testing.T) {
	if _, err := TransactionWithDataFromBytes(make([]byte, RawTransactionSize)); err == nil {
		t.Fatalf("accepted a buffer shorter than RawTransactionSize+64")
	}
}

func TestHashIdentityIsLowercase(t *testing.T) {
	var tx TransactionWithData
	tx.Raw.Amount = 1
	id := tx.HashIdentity()
	for _, c := range id {
		if c < 'a' || c > 'z' {
			t.Fatalf("HashIdentity produced non-lowercase byte %q", c)
		}
	}
}

func TestHashDeterministic(t *testing.T) {
	var tx RawTransaction
	tx.Amount = 7
	a := TransactionWithData{Raw: tx, Payload: Payload{Kind: KindNone}}
	b := TransactionWithData{Raw: tx, Payload: Payload{Kind: KindNone}}
	if a.Hash() != b.Hash() {
		t.Fatalf("Hash not deterministic for identical transactions")
	}
}
