package transaction

import (
	"qubic.li/archiver/fourq"
	"qubic.li/archiver/identity"
)

// Builder accumulates a transaction's fields before sanitizing the payload
// and, if a wallet is attached, signing it.
type Builder struct {
	from, to [32]byte
	amount   uint64
	tick     uint32
	payload  Payload
	wallet   *identity.Wallet
}

// NewBuilder starts a Builder with its "from"/"to"/amount/tick fields unset.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) From(id [32]byte) *Builder   { b.from = id; return b }
func (b *Builder) To(id [32]byte) *Builder     { b.to = id; return b }
func (b *Builder) Amount(v uint64) *Builder    { b.amount = v; return b }
func (b *Builder) Tick(v uint32) *Builder      { b.tick = v; return b }
func (b *Builder) Payload(p Payload) *Builder  { b.payload = p; return b }

// SignWith attaches a wallet; Build will overwrite From with the wallet's
// public key and sign the resulting record.
func (b *Builder) SignWith(w identity.Wallet) *Builder {
	b.wallet = &w
	return b
}

// Build sanitizes the payload onto the raw fields and, if a wallet was
// attached, signs the result. From is overwritten with the wallet's public
// key before signing, so Build never returns WrongSignature; any error comes
// from re-parsing the signed bytes.
func (b *Builder) Build(p fourq.Provider) (TransactionWithData, error) {
	raw := RawTransaction{
		From:   b.from,
		To:     b.to,
		Amount: b.amount,
		Tick:   b.tick,
	}
	b.payload.sanitize(&raw)

	tx := TransactionWithData{Raw: raw, Payload: b.payload}

	if b.wallet == nil {
		return tx, nil
	}

	tx.Raw.From = b.wallet.PublicKey()
	return SignRecord(p, *b.wallet, tx)
}
