package identity

import (
	"crypto/rand"
	"fmt"

	"qubic.li/archiver/fourq"
	"qubic.li/archiver/k12"
	"qubic.li/archiver/schnorrq"
)

// SeedLength is the fixed length of a Qubic seed string.
const SeedLength = 55

// Wallet holds key material derived from a seed for the lifetime of the
// process.
type Wallet struct {
	subseed    [32]byte
	privateKey [32]byte
	publicKey  [32]byte
}

// FromSeed derives a Wallet from a 55-lowercase-letter seed:
// subseed = H(seed), private = H(subseed), public = encode(scalar_mul_fixed(private, G)).
func FromSeed(provider fourq.Provider, seed string) (Wallet, error) {
	subseed, err := Subseed(seed)
	if err != nil {
		return Wallet{}, err
	}
	private := PrivateKey(subseed)
	public := PublicKey(provider, private)
	return Wallet{subseed: subseed, privateKey: private, publicKey: public}, nil
}

// Subseed reduces each letter of seed to 0..25 and hashes the result.
func Subseed(seed string) ([32]byte, error) {
	if len(seed) != SeedLength {
		return [32]byte{}, fmt.Errorf("identity: invalid seed length (expected %d, found %d)", SeedLength, len(seed))
	}
	reduced := make([]byte, SeedLength)
	for i := 0; i < SeedLength; i++ {
		c := seed[i]
		if !isLowerAlpha(c) {
			return [32]byte{}, fmt.Errorf("identity: invalid seed format at byte %d", i)
		}
		reduced[i] = c - 'a'
	}
	return k12.Sum32(reduced), nil
}

// PrivateKey derives the private scalar from a subseed.
func PrivateKey(subseed [32]byte) [32]byte {
	return k12.Sum32(subseed[:])
}

// PublicKey derives the public key from a private key via SchnorrQ
// fixed-base scalar multiplication.
func PublicKey(provider fourq.Provider, private [32]byte) [32]byte {
	scalar := scalarFromLE32(private)
	p := provider.ScalarMulFixed(scalar)
	return provider.Encode(p)
}

func scalarFromLE32(b [32]byte) fourq.Scalar {
	var s fourq.Scalar
	for i := 0; i < 4; i++ {
		var w uint64
		for j := 0; j < 8; j++ {
			w |= uint64(b[i*8+j]) << (8 * j)
		}
		s[i] = w
	}
	return s
}

// PublicKey returns the wallet's public key.
func (w Wallet) PublicKey() [32]byte { return w.publicKey }

// Subseed returns the wallet's subseed, needed by Sign.
func (w Wallet) Subseed() [32]byte { return w.subseed }

// Identity renders the wallet's public key as a 60-character identity.
func (w Wallet) Identity() string { return Encode(w.publicKey, false) }

// Sign signs a 32-byte message digest with the wallet's key material.
func (w Wallet) Sign(provider fourq.Provider, digest [32]byte) schnorrq.Signature {
	return schnorrq.Sign(provider, w.subseed, w.publicKey, digest)
}

// SignMessage hashes an arbitrary byte message to a 32-byte digest with the
// same XOF Sign uses internally, then signs that digest. Callers that already
// hold a packed record's digest should call Sign directly instead.
func (w Wallet) SignMessage(provider fourq.Provider, message []byte) schnorrq.Signature {
	return w.Sign(provider, k12.Sum32(message))
}

// Verify checks a signature produced by Sign/SignMessage against this
// wallet's public key.
func (w Wallet) Verify(provider fourq.Provider, digest [32]byte, sig schnorrq.Signature) bool {
	return schnorrq.Verify(provider, w.publicKey, digest, sig)
}

// VerifyDigest checks a signature against an arbitrary public key, for
// callers that only have an identity's public bytes rather than a Wallet
// (e.g. verifying a peer-supplied transaction).
func VerifyDigest(provider fourq.Provider, publicKey [32]byte, digest [32]byte, sig [64]byte) bool {
	return schnorrq.Verify(provider, publicKey, digest, schnorrq.Signature(sig))
}

// RandomSeed generates a fresh 55-lowercase-letter seed. It is not part
// of the wire protocol; it exists for tests and local tooling that need a
// throwaway wallet.
func RandomSeed() (string, error) {
	buf := make([]byte, SeedLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, SeedLength)
	for i, b := range buf {
		out[i] = 'a' + b%26
	}
	return string(out), nil
}
