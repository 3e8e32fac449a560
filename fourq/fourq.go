// Package fourq defines the narrow elliptic-curve surface SchnorrQ needs:
// point decode/encode, fixed-base and double-scalar multiplication, and
// Montgomery multiplication modulo the curve order. The FourQ curve
// arithmetic itself (point decode, fixed-base multiply, double-scalar
// multiply, Montgomery reduction) is treated as a black-box library
// dependency, not something this repo reimplements: a narrow interface plus
// a development-only implementation, never a from-scratch field-arithmetic
// backend.
package fourq

// Scalar is a 256-bit integer stored as four little-endian 64-bit limbs,
// the representation every SchnorrQ operation in schnorrq.Sign/Verify works
// with directly.
type Scalar [4]uint64

// Point is an opaque curve point. Providers are free to choose any internal
// representation (affine GF(p^2) coordinates for a real FourQ backend, or
// something simpler for a dev stand-in); callers only ever pass Points back
// into the same Provider that produced them.
type Point struct {
	Limbs [4]uint64
}

// Provider is the black-box FourQ backend. A production build wires this to
// a real constant-time FourQ implementation; this repo ships only
// DevProvider, a software stand-in good enough for round-trip testing and
// wire-format development.
type Provider interface {
	// Decode parses a 32-byte compressed point. ok is false if the bytes do
	// not describe a point on the curve.
	Decode(public [32]byte) (p Point, ok bool)
	// Encode serializes p back to its 32-byte compressed form.
	Encode(p Point) [32]byte

	// ScalarMulFixed computes scalar * G for the curve's fixed base point G.
	ScalarMulFixed(scalar Scalar) Point
	// ScalarMulDouble computes scalarA*A + scalarB*G. ok is false if a is
	// not a valid curve point.
	ScalarMulDouble(scalarA Scalar, a Point, scalarB Scalar) (p Point, ok bool)

	// MontgomeryMultiplyModOrder computes (a*b)/R mod CurveOrder in
	// Montgomery form, where R is the Montgomery radix.
	MontgomeryMultiplyModOrder(a, b Scalar) Scalar

	// MontgomeryRPrime is R' = R^2 mod CurveOrder, used to enter Montgomery
	// form. MontgomeryOne is the plain integer 1; Montgomery-multiplying by
	// it divides by R and so exits Montgomery form.
	MontgomeryRPrime() Scalar
	MontgomeryOne() Scalar

	// CurveOrder returns the group order as four little-endian 64-bit words.
	CurveOrder() Scalar
}
