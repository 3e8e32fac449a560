package transaction

import (
	"fmt"

	"qubic.li/archiver/fourq"
	"qubic.li/archiver/identity"
	"qubic.li/archiver/k12"
)

// WrongSignature reports that a record's signer field does not match the
// wallet asked to sign it.
type WrongSignature struct {
	Expected [32]byte
	Found    [32]byte
}

func (e *WrongSignature) Error() string {
	return fmt.Sprintf("transaction: wrong signer (expected %s, found %s)",
		identity.Encode(e.Expected, false), identity.Encode(e.Found, false))
}

// SignRecord implements the generic signing wrapper for any typed record
// with a known signer field and a fixed 64-byte trailing signature: digest
// = H(bytes with a zeroed signature, minus the trailing 64 bytes), sign that
// digest, splice the signature back in, and parse the bytes back into a
// TransactionWithData. It fails with WrongSignature if tx.Raw.From does not
// match the wallet's public key, leaving tx unmodified.
func SignRecord(p fourq.Provider, w identity.Wallet, tx TransactionWithData) (TransactionWithData, error) {
	if tx.Raw.From != w.PublicKey() {
		return tx, &WrongSignature{Expected: w.PublicKey(), Found: tx.Raw.From}
	}

	unsigned := tx
	unsigned.Signature = [64]byte{}
	bytes := unsigned.ToBytes()
	digest := k12.Sum32(bytes[:len(bytes)-64])

	sig := w.Sign(p, digest)

	signedBytes := append([]byte(nil), bytes[:len(bytes)-64]...)
	signedBytes = append(signedBytes, sig[:]...)

	return TransactionWithDataFromBytes(signedBytes)
}

// VerifyRecord checks tx's signature against the public key named by its
// "from" field.
func VerifyRecord(p fourq.Provider, tx TransactionWithData) bool {
	unsigned := tx
	unsigned.Signature = [64]byte{}
	bytes := unsigned.ToBytes()
	digest := k12.Sum32(bytes[:len(bytes)-64])
	return identity.VerifyDigest(p, tx.Raw.From, digest, tx.Signature)
}

func txHash(b []byte) [32]byte {
	return k12.Sum32(b)
}
