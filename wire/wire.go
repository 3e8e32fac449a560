// Package wire implements the packed byte codec and framing types for the
// ledger's TCP protocol: the 8-byte Header every frame starts with, a
// cursor-based Reader/Writer for the little-endian packed layouts every wire
// type uses, and the message-type constant table.
package wire

import (
	"encoding/binary"
	"fmt"
)

// HeaderSize is the fixed length of the header prefixing every frame.
const HeaderSize = 8

// Header is the 8-byte frame prefix: a 24-bit little-endian total frame
// size (including the header itself), a message type byte, and a 32-bit
// little-endian dejavu correlation tag.
type Header struct {
	Size        uint32 // only the low 24 bits are meaningful
	MessageType byte
	Dejavu      uint32
}

// MaxFrameSize is the largest value Size can hold (2^24 - 1); the wire
// format has no room to express anything larger.
const MaxFrameSize = 1<<24 - 1

// ErrTruncated is returned by Reader methods when fewer bytes remain than
// the requested field needs.
var ErrTruncated = fmt.Errorf("wire: truncated")

// EncodeHeader renders h to its packed 8-byte form.
func EncodeHeader(h Header) ([HeaderSize]byte, error) {
	var out [HeaderSize]byte
	if h.Size > MaxFrameSize {
		return out, fmt.Errorf("wire: frame size %d exceeds %d", h.Size, MaxFrameSize)
	}
	out[0] = byte(h.Size)
	out[1] = byte(h.Size >> 8)
	out[2] = byte(h.Size >> 16)
	out[3] = h.MessageType
	binary.LittleEndian.PutUint32(out[4:8], h.Dejavu)
	return out, nil
}

// DecodeHeader parses the first HeaderSize bytes of b.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrTruncated
	}
	size := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
	return Header{
		Size:        size,
		MessageType: b[3],
		Dejavu:      binary.LittleEndian.Uint32(b[4:8]),
	}, nil
}

// Reader is a forward-only cursor over a packed little-endian byte buffer,
// used by every wire type's from_bytes, with fixed-width array helpers the
// ledger's structs need (32-byte identities, 64-byte signatures).
type Reader struct {
	b   []byte
	pos int
}

// NewReader creates a Reader over b with the read position at 0.
func NewReader(b []byte) *Reader {
	return &Reader{b: b}
}

// Remaining reports how many unread bytes are left.
func (r *Reader) Remaining() int {
	if r.pos >= len(r.b) {
		return 0
	}
	return len(r.b) - r.pos
}

// ReadExact returns the next n bytes without copying.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, ErrTruncated
	}
	start := r.pos
	r.pos += n
	return r.b[start:r.pos], nil
}

func (r *Reader) ReadU8() (byte, error) {
	b, err := r.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadID reads a 32-byte identity/public-key field.
func (r *Reader) ReadID() ([32]byte, error) {
	var out [32]byte
	b, err := r.ReadExact(32)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// ReadSignature reads a 64-byte trailing signature field.
func (r *Reader) ReadSignature() ([64]byte, error) {
	var out [64]byte
	b, err := r.ReadExact(64)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

// Writer accumulates a packed little-endian byte image, the to_bytes
// counterpart of Reader.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty Writer, optionally preallocating cap bytes.
func NewWriter(cap int) *Writer {
	return &Writer{buf: make([]byte, 0, cap)}
}

func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) WriteU8(v byte) { w.buf = append(w.buf, v) }

func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *Writer) WriteBytes(b []byte) { w.buf = append(w.buf, b...) }

func (w *Writer) WriteID(id [32]byte) { w.buf = append(w.buf, id[:]...) }

func (w *Writer) WriteSignature(sig [64]byte) { w.buf = append(w.buf, sig[:]...) }

// InvalidDataLength reports that a fixed-size type's from_bytes input was
// not exactly the expected length.
type InvalidDataLength struct {
	Expected int
	Found    int
}

func (e *InvalidDataLength) Error() string {
	return fmt.Sprintf("wire: invalid data length (expected %d, found %d)", e.Expected, e.Found)
}

// InvalidMinimumDataLength reports that a variable-length type's from_bytes
// input was shorter than the minimum header it needs.
type InvalidMinimumDataLength struct {
	Minimum int
	Found   int
}

func (e *InvalidMinimumDataLength) Error() string {
	return fmt.Sprintf("wire: below minimum data length (minimum %d, found %d)", e.Minimum, e.Found)
}
