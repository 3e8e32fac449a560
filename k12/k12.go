// Package k12 provides the variable-length hash this repo uses for
// canonicalization, identity checksums and transaction digests.
//
// Every call site only needs H(bytes) -> bytes[N], so the XOF is treated as
// a black box behind this package. It is computed with SHAKE256, not
// KangarooTwelve: its output differs from KangarooTwelve's, so identities,
// checksums, hashes and signatures derived from it do not match those of
// the live network.
package k12

import (
	"golang.org/x/crypto/sha3"
)

// Sum squeezes n bytes of XOF output from the canonical image of data.
func Sum(data []byte, n int) []byte {
	h := sha3.NewShake256()
	_, _ = h.Write(data)
	out := make([]byte, n)
	_, _ = h.Read(out)
	return out
}

// Sum32 is the common case: a 32-byte digest, used for transaction hashes,
// subseed/private-key derivation and signing digests.
func Sum32(data []byte) [32]byte {
	var out [32]byte
	copy(out[:], Sum(data, 32))
	return out
}

// Sum64 squeezes 64 bytes of XOF output, used for the SchnorrQ nonce/key
// expansion step in schnorrq.Sign.
func Sum64(data []byte) [64]byte {
	var out [64]byte
	copy(out[:], Sum(data, 64))
	return out
}
