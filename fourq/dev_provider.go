package fourq

import "math/big"

// DevProvider is a development-only Provider. It is NOT FourQ: it stands in
// for the real curve so the rest of the repo (schnorrq, identity, the wire
// client) can be built, wired and tested against a narrow, self-consistent
// interface before a production FourQ backend is linked in. It makes no
// security claim and is unsuitable for production use.
//
// Internally it implements classic Schnorr-over-a-safe-prime-group
// arithmetic: points are residues mod devPrime, "fixed-base multiply" is
// modular exponentiation by the generator, and "double-scalar multiply" is
// the product of two modular exponentiations. This is enough to make
// schnorrq.Sign/Verify round-trip correctly; it is not bit-compatible with
// FourQ and does not reproduce FourQ's published test vectors, which require
// the real curve.
type DevProvider struct{}

var (
	// devPrime is a 256-bit safe prime: devPrime = 2*devOrder + 1.
	devPrime, _ = new(big.Int).SetString(
		"FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEC3", 16)
	// devOrder is the prime order of the subgroup generated by devGenerator.
	devOrder, _ = new(big.Int).SetString(
		"7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF61", 16)
	devGenerator = big.NewInt(5)
)

func scalarToBig(s Scalar) *big.Int {
	b := make([]byte, 32)
	for i := 0; i < 4; i++ {
		for j := 0; j < 8; j++ {
			b[31-(i*8+j)] = byte(s[i] >> (8 * j))
		}
	}
	return new(big.Int).SetBytes(b)
}

func bigToScalar(v *big.Int) Scalar {
	b := v.Bytes()
	var padded [32]byte
	copy(padded[32-len(b):], b)
	var s Scalar
	for i := 0; i < 4; i++ {
		var w uint64
		for j := 0; j < 8; j++ {
			w |= uint64(padded[31-(i*8+j)]) << (8 * j)
		}
		s[i] = w
	}
	return s
}

func pointToBig(p Point) *big.Int {
	return scalarToBig(Scalar(p.Limbs))
}

func bigToPoint(v *big.Int) Point {
	return Point{Limbs: bigToScalar(v)}
}

func (DevProvider) Decode(public [32]byte) (Point, bool) {
	var be [32]byte
	for i, b := range public {
		be[31-i] = b
	}
	v := new(big.Int).SetBytes(be[:])
	if v.Sign() == 0 || v.Cmp(devPrime) >= 0 {
		return Point{}, false
	}
	return Point{Limbs: bigToScalar(v)}, true
}

func (DevProvider) Encode(p Point) [32]byte {
	v := pointToBig(p)
	be := v.Bytes()
	var padded [32]byte
	copy(padded[32-len(be):], be)
	var out [32]byte
	for i, b := range padded {
		out[31-i] = b
	}
	return out
}

func (DevProvider) ScalarMulFixed(scalar Scalar) Point {
	s := new(big.Int).Mod(scalarToBig(scalar), devOrder)
	v := new(big.Int).Exp(devGenerator, s, devPrime)
	return bigToPoint(v)
}

func (DevProvider) ScalarMulDouble(scalarA Scalar, a Point, scalarB Scalar) (Point, bool) {
	base := pointToBig(a)
	if base.Sign() == 0 || base.Cmp(devPrime) >= 0 {
		return Point{}, false
	}
	sa := new(big.Int).Mod(scalarToBig(scalarA), devOrder)
	sb := new(big.Int).Mod(scalarToBig(scalarB), devOrder)
	left := new(big.Int).Exp(base, sa, devPrime)
	right := new(big.Int).Exp(devGenerator, sb, devPrime)
	v := new(big.Int).Mod(new(big.Int).Mul(left, right), devPrime)
	return bigToPoint(v), true
}

func (DevProvider) MontgomeryMultiplyModOrder(a, b Scalar) Scalar {
	av := new(big.Int).Mod(scalarToBig(a), devOrder)
	bv := new(big.Int).Mod(scalarToBig(b), devOrder)
	v := new(big.Int).Mod(new(big.Int).Mul(av, bv), devOrder)
	return bigToScalar(v)
}

// MontgomeryRPrime and MontgomeryOne exist to match the real FourQ
// Montgomery-form API; DevProvider's MontgomeryMultiplyModOrder works
// directly in ordinary residues, so both are the multiplicative identity
// and entering/exiting Montgomery form is a no-op here.
func (DevProvider) MontgomeryRPrime() Scalar { return Scalar{1, 0, 0, 0} }
func (DevProvider) MontgomeryOne() Scalar    { return Scalar{1, 0, 0, 0} }

func (DevProvider) CurveOrder() Scalar { return bigToScalar(devOrder) }
