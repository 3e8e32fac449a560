// Package qubicnode implements the TCP protocol client: framing modes over
// a raw connection (bufio-wrapped net.Conn, read/write deadlines, an 8-byte
// size/type/dejavu header) plus the typed request/response operation table
// peers expose.
package qubicnode

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/google/uuid"

	"qubic.li/archiver/wire"
)

// DefaultDeadline is the default read/write deadline for every socket
// operation.
const DefaultDeadline = 5 * time.Second

// Transport frames requests/responses over one TCP connection. Exactly one
// request may be in flight at a time: callers needing pipelining must open
// multiple Transports.
type Transport struct {
	conn     net.Conn
	r        *bufio.Reader
	w        *bufio.Writer
	deadline time.Duration

	// connID is a per-connection debug correlation id, distinct from the
	// wire-level dejavu tag attached to individual requests: it groups every
	// log line touching one underlying socket across its whole lifetime.
	connID string
}

// Dial opens a TCP connection to addr with the default deadline.
func Dial(addr string) (*Transport, error) {
	conn, err := net.DialTimeout("tcp", addr, DefaultDeadline)
	if err != nil {
		return nil, fmt.Errorf("qubicnode: dial %s: %w", addr, err)
	}
	return NewTransport(conn, DefaultDeadline), nil
}

// NewTransport wraps an already-open connection.
func NewTransport(conn net.Conn, deadline time.Duration) *Transport {
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	connID := uuid.New().String()
	slog.Debug("qubicnode: connection opened", "conn", connID, "remote", conn.RemoteAddr())
	return &Transport{
		conn:     conn,
		r:        bufio.NewReader(conn),
		w:        bufio.NewWriter(conn),
		deadline: deadline,
		connID:   connID,
	}
}

// Close releases the underlying connection.
func (t *Transport) Close() error {
	slog.Debug("qubicnode: connection closed", "conn", t.connID)
	return t.conn.Close()
}

// randomDejavu draws a random 32-bit correlation tag the client chooses for
// each new request.
func randomDejavu() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// writeFrame writes one Header+body frame, applying the write deadline.
func (t *Transport) writeFrame(messageType byte, dejavu uint32, body []byte) error {
	size := wire.HeaderSize + len(body)
	if size > wire.MaxFrameSize {
		return fmt.Errorf("qubicnode: frame of %d bytes exceeds max frame size", size)
	}
	hdr, err := wire.EncodeHeader(wire.Header{Size: uint32(size), MessageType: messageType, Dejavu: dejavu})
	if err != nil {
		return err
	}
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.deadline)); err != nil {
		return fmt.Errorf("qubicnode[%s]: set write deadline: %w", t.connID, err)
	}
	if _, err := t.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("qubicnode[%s]: write header: %w", t.connID, err)
	}
	if len(body) > 0 {
		if _, err := t.w.Write(body); err != nil {
			return fmt.Errorf("qubicnode[%s]: write body: %w", t.connID, err)
		}
	}
	return t.w.Flush()
}

// frame is one decoded Header + raw body pulled off the wire.
type frame struct {
	header wire.Header
	body   []byte
}

// readFrame reads exactly one frame, applying the read deadline.
func (t *Transport) readFrame() (frame, error) {
	if err := t.conn.SetReadDeadline(time.Now().Add(t.deadline)); err != nil {
		return frame{}, fmt.Errorf("qubicnode[%s]: set read deadline: %w", t.connID, err)
	}
	var hdrBuf [wire.HeaderSize]byte
	if _, err := io.ReadFull(t.r, hdrBuf[:]); err != nil {
		return frame{}, fmt.Errorf("qubicnode[%s]: read header: %w", t.connID, err)
	}
	hdr, err := wire.DecodeHeader(hdrBuf[:])
	if err != nil {
		return frame{}, err
	}
	if int(hdr.Size) < wire.HeaderSize {
		return frame{}, fmt.Errorf("qubicnode[%s]: frame size %d smaller than header", t.connID, hdr.Size)
	}
	bodyLen := int(hdr.Size) - wire.HeaderSize
	body := make([]byte, bodyLen)
	if bodyLen > 0 {
		if _, err := io.ReadFull(t.r, body); err != nil {
			return frame{}, fmt.Errorf("qubicnode[%s]: read body: %w", t.connID, err)
		}
	}
	return frame{header: hdr, body: body}, nil
}

// FireAndForget writes a framed request and does not wait for a reply.
func (t *Transport) FireAndForget(messageType byte, body []byte) error {
	dejavu, err := randomDejavu()
	if err != nil {
		return err
	}
	return t.writeFrame(messageType, dejavu, body)
}

// SingleResponse writes a framed request and reads exactly one response
// frame, transparently draining an unsolicited ExchangePublicPeers frame the
// peer may interleave first.
func (t *Transport) SingleResponse(messageType byte, body []byte) (frame, error) {
	dejavu, err := randomDejavu()
	if err != nil {
		return frame{}, err
	}
	if err := t.writeFrame(messageType, dejavu, body); err != nil {
		return frame{}, err
	}
	for {
		f, err := t.readFrame()
		if err != nil {
			return frame{}, err
		}
		if f.header.MessageType == wire.ExchangePublicPeers {
			continue
		}
		return f, nil
	}
}

// MultiResponse writes a framed request and reads frames until EndResponse,
// returning every preceding payload in arrival order. Since Header.Size
// already bounds each frame's body to exactly what was
// sent on the wire, there is no reserved tail to trim at this layer; callers
// decoding a fixed-size element from a variable-length multi-response frame
// are responsible for ignoring bytes beyond that element's own size.
func (t *Transport) MultiResponse(messageType byte, body []byte) ([][]byte, error) {
	dejavu, err := randomDejavu()
	if err != nil {
		return nil, err
	}
	if err := t.writeFrame(messageType, dejavu, body); err != nil {
		return nil, err
	}
	var payloads [][]byte
	for {
		f, err := t.readFrame()
		if err != nil {
			return nil, err
		}
		if f.header.MessageType == wire.EndResponse {
			return payloads, nil
		}
		payloads = append(payloads, f.body)
	}
}
