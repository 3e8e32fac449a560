// Package transaction implements the ledger's transaction record: the fixed
// 80-byte RawTransaction header, the polymorphic payload it carries, and the
// signed TransactionWithData wire form, serialized field-by-field in
// little-endian order rather than through an unsafe pointer cast.
package transaction

import (
	"qubic.li/archiver/identity"
	"qubic.li/archiver/wire"
)

// RawTransaction is the fixed 80-byte transaction header every transfer,
// asset operation, and work submission shares.
type RawTransaction struct {
	From      [32]byte
	To        [32]byte
	Amount    uint64
	Tick      uint32
	InputType uint16
	InputSize uint16
}

// RawTransactionSize is the packed size of RawTransaction.
const RawTransactionSize = 32 + 32 + 8 + 4 + 2 + 2

func (t RawTransaction) ToBytes() []byte {
	w := wire.NewWriter(RawTransactionSize)
	w.WriteID(t.From)
	w.WriteID(t.To)
	w.WriteU64(t.Amount)
	w.WriteU32(t.Tick)
	w.WriteU16(t.InputType)
	w.WriteU16(t.InputSize)
	return w.Bytes()
}

func RawTransactionFromBytes(b []byte) (RawTransaction, error) {
	if len(b) != RawTransactionSize {
		return RawTransaction{}, &wire.InvalidDataLength{Expected: RawTransactionSize, Found: len(b)}
	}
	r := wire.NewReader(b)
	var t RawTransaction
	t.From, _ = r.ReadID()
	t.To, _ = r.ReadID()
	t.Amount, _ = r.ReadU64()
	t.Tick, _ = r.ReadU32()
	t.InputType, _ = r.ReadU16()
	t.InputSize, _ = r.ReadU16()
	return t, nil
}

// TransactionWithData is a RawTransaction plus its polymorphic payload and
// trailing 64-byte signature.
type TransactionWithData struct {
	Raw       RawTransaction
	Payload   Payload
	Signature [64]byte
}

// minTransactionWithDataSize is RawTransaction + Signature; anything shorter
// can't possibly hold both.
const minTransactionWithDataSize = RawTransactionSize + 64

func (t TransactionWithData) ToBytes() []byte {
	w := wire.NewWriter(minTransactionWithDataSize + len(t.Payload.Bytes()))
	w.WriteBytes(t.Raw.ToBytes())
	w.WriteBytes(t.Payload.Bytes())
	w.WriteSignature(t.Signature)
	return w.Bytes()
}

func TransactionWithDataFromBytes(b []byte) (TransactionWithData, error) {
	if len(b) < minTransactionWithDataSize {
		return TransactionWithData{}, &wire.InvalidMinimumDataLength{Minimum: minTransactionWithDataSize, Found: len(b)}
	}

	rawBytes := b[:RawTransactionSize]
	raw, err := RawTransactionFromBytes(rawBytes)
	if err != nil {
		return TransactionWithData{}, err
	}

	payloadBytes := b[RawTransactionSize : len(b)-64]
	payload, err := decodePayload(raw, payloadBytes)
	if err != nil {
		return TransactionWithData{}, err
	}

	var sig [64]byte
	copy(sig[:], b[len(b)-64:])

	return TransactionWithData{Raw: raw, Payload: payload, Signature: sig}, nil
}

// Hash returns the raw 32-byte digest H(ToBytes())[0..32]; HashIdentity
// renders it in the lowercase base-26 identity form.
func (t TransactionWithData) Hash() [32]byte {
	return txHash(t.ToBytes())
}

// HashIdentity is Hash rendered as the 60-character lowercase identity
// string used as the archiver's transactions-tree key.
func (t TransactionWithData) HashIdentity() string {
	return identity.Encode(t.Hash(), true)
}
