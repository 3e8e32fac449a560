// Package schnorrq implements SchnorrQ-over-FourQ message signing and
// verification, built entirely on the fourq.Provider black box and the k12
// XOF. Nothing here touches curve internals directly.
package schnorrq

import (
	"math/bits"

	"qubic.li/archiver/fourq"
	"qubic.li/archiver/k12"
)

// Signature is a 64-byte SchnorrQ signature: the encoded nonce point R
// followed by the scalar s.
type Signature [64]byte

func scalarFromLE32(b []byte) fourq.Scalar {
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

func scalarToLE32(s fourq.Scalar) [32]byte {
	var out [32]byte
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(s[i] >> (8 * j))
		}
	}
	return out
}

// reduceModOrder folds an arbitrary 256-bit quantity into [0, order) using
// a Montgomery-enter/Montgomery-exit trick: multiplying by R' enters
// Montgomery form (reducing mod order as a side
// effect of the provider's modular multiply), multiplying the result by
// plain 1 (MontgomeryOne) exits it again, leaving an ordinary reduced value.
func reduceModOrder(p fourq.Provider, raw fourq.Scalar) fourq.Scalar {
	entered := p.MontgomeryMultiplyModOrder(raw, p.MontgomeryRPrime())
	return p.MontgomeryMultiplyModOrder(entered, p.MontgomeryOne())
}

// mulModOrder computes a*b mod order via the same enter/exit sequence.
func mulModOrder(p fourq.Provider, a, b fourq.Scalar) fourq.Scalar {
	aMont := p.MontgomeryMultiplyModOrder(a, p.MontgomeryRPrime())
	bMont := p.MontgomeryMultiplyModOrder(b, p.MontgomeryRPrime())
	prodMont := p.MontgomeryMultiplyModOrder(aMont, bMont)
	return p.MontgomeryMultiplyModOrder(prodMont, p.MontgomeryOne())
}

// subModOrder computes (a-b) mod order, adding the curve order back
// word-wise with carry if the plain subtraction underflows (spec 4.2).
func subModOrder(p fourq.Provider, a, b fourq.Scalar) fourq.Scalar {
	var out fourq.Scalar
	var borrow uint64
	for i := 0; i < 4; i++ {
		d, bw := bits.Sub64(a[i], b[i], borrow)
		out[i] = d
		borrow = bw
	}
	if borrow != 0 {
		order := p.CurveOrder()
		var carry uint64
		for i := 0; i < 4; i++ {
			s, c := bits.Add64(out[i], order[i], carry)
			out[i] = s
			carry = c
		}
	}
	return out
}

// Sign produces a SchnorrQ signature over a 32-byte message digest, given
// the signer's subseed and public key (spec 4.2).
func Sign(p fourq.Provider, subseed, publicKey, digest [32]byte) Signature {
	k := k12.Sum64(subseed[:])

	var rInput [64]byte
	copy(rInput[:32], k[32:64])
	copy(rInput[32:], digest[:])
	rHash := k12.Sum64(rInput[:])
	r := reduceModOrder(p, scalarFromLE32(rHash[:32]))

	R := p.ScalarMulFixed(r)

	var sig Signature
	sigR := p.Encode(R)
	copy(sig[:32], sigR[:])

	var hInput [96]byte
	copy(hInput[:32], sig[:32])
	copy(hInput[32:64], publicKey[:])
	copy(hInput[64:], digest[:])
	hHash := k12.Sum64(hInput[:])
	h := reduceModOrder(p, scalarFromLE32(hHash[:32]))

	kScalar := scalarFromLE32(k[:32])
	s := subModOrder(p, r, mulModOrder(p, h, kScalar))
	sBytes := scalarToLE32(s)
	copy(sig[32:], sBytes[:])

	return sig
}

// Verify checks a SchnorrQ signature over a 32-byte message digest against
// a public key, applying the four canonical-form rejection rules from spec
// section 3 before touching the curve.
func Verify(p fourq.Provider, publicKey [32]byte, digest [32]byte, sig Signature) bool {
	if publicKey[15]&0x80 != 0 || sig[15]&0x80 != 0 || sig[62]&0xC0 != 0 || sig[63] != 0 {
		return false
	}

	A, ok := p.Decode(publicKey)
	if !ok {
		return false
	}

	var hInput [96]byte
	copy(hInput[:32], sig[:32])
	copy(hInput[32:64], publicKey[:])
	copy(hInput[64:], digest[:])
	hHash := k12.Sum64(hInput[:])
	h := reduceModOrder(p, scalarFromLE32(hHash[:32]))

	s := scalarFromLE32(sig[32:])
	// R' = s*G + h*A; if this matches the signature's R, the relation
	// s = r - h*k (spec 4.2) holds without ever revealing k.
	Rp, ok := p.ScalarMulDouble(h, A, s)
	if !ok {
		return false
	}

	encoded := p.Encode(Rp)
	return encoded == [32]byte(sig[:32])
}
