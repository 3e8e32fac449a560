package wire

import "fmt"

// CurrentTickInfo is the response to GetCurrentTickInfo. Grounded on
// qubic-tcp-types/src/types/ticks.rs's CurrentTickInfo.
type CurrentTickInfo struct {
	Duration          uint16
	Epoch             uint16
	Tick              uint32
	AlignedVotes      uint16
	MisalignedVotes   uint16
	InitialTick       uint32
}

const currentTickInfoSize = 2 + 2 + 4 + 2 + 2 + 4

func (t CurrentTickInfo) ToBytes() []byte {
	w := NewWriter(currentTickInfoSize)
	w.WriteU16(t.Duration)
	w.WriteU16(t.Epoch)
	w.WriteU32(t.Tick)
	w.WriteU16(t.AlignedVotes)
	w.WriteU16(t.MisalignedVotes)
	w.WriteU32(t.InitialTick)
	return w.Bytes()
}

func CurrentTickInfoFromBytes(b []byte) (CurrentTickInfo, error) {
	if len(b) != currentTickInfoSize {
		return CurrentTickInfo{}, &InvalidDataLength{Expected: currentTickInfoSize, Found: len(b)}
	}
	r := NewReader(b)
	var t CurrentTickInfo
	t.Duration, _ = r.ReadU16()
	t.Epoch, _ = r.ReadU16()
	t.Tick, _ = r.ReadU32()
	t.AlignedVotes, _ = r.ReadU16()
	t.MisalignedVotes, _ = r.ReadU16()
	t.InitialTick, _ = r.ReadU32()
	return t, nil
}

// RequestedEntity asks a peer for a wallet's spectrum entry. Named with the
// "Requested" prefix (matching RequestedTickTransactions) to stay distinct
// from the RequestEntity message-type constant.
type RequestedEntity struct {
	PublicKey [32]byte
}

func (r RequestedEntity) ToBytes() []byte {
	w := NewWriter(32)
	w.WriteID(r.PublicKey)
	return w.Bytes()
}

func RequestedEntityFromBytes(b []byte) (RequestedEntity, error) {
	if len(b) != 32 {
		return RequestedEntity{}, &InvalidDataLength{Expected: 32, Found: len(b)}
	}
	rd := NewReader(b)
	id, _ := rd.ReadID()
	return RequestedEntity{PublicKey: id}, nil
}

// Entity is a wallet's spectrum entry: balance in/out and transfer counters.
type Entity struct {
	PublicKey                   [32]byte
	IncomingAmount              uint64
	OutgoingAmount              uint64
	NumberOfIncomingTransfers   uint32
	NumberOfOutgoingTransfers   uint32
	LatestIncomingTransferTick  uint32
	LatestOutgoingTransferTick  uint32
}

// Balance is IncomingAmount - OutgoingAmount, the quantity materialized into
// the archiver's WalletEntry.
func (e Entity) Balance() uint64 { return e.IncomingAmount - e.OutgoingAmount }

const entitySize = 32 + 8 + 8 + 4 + 4 + 4 + 4

func (e Entity) ToBytes() []byte {
	w := NewWriter(entitySize)
	w.WriteID(e.PublicKey)
	w.WriteU64(e.IncomingAmount)
	w.WriteU64(e.OutgoingAmount)
	w.WriteU32(e.NumberOfIncomingTransfers)
	w.WriteU32(e.NumberOfOutgoingTransfers)
	w.WriteU32(e.LatestIncomingTransferTick)
	w.WriteU32(e.LatestOutgoingTransferTick)
	return w.Bytes()
}

func EntityFromBytes(b []byte) (Entity, error) {
	if len(b) != entitySize {
		return Entity{}, &InvalidDataLength{Expected: entitySize, Found: len(b)}
	}
	r := NewReader(b)
	var e Entity
	e.PublicKey, _ = r.ReadID()
	e.IncomingAmount, _ = r.ReadU64()
	e.OutgoingAmount, _ = r.ReadU64()
	e.NumberOfIncomingTransfers, _ = r.ReadU32()
	e.NumberOfOutgoingTransfers, _ = r.ReadU32()
	e.LatestIncomingTransferTick, _ = r.ReadU32()
	e.LatestOutgoingTransferTick, _ = r.ReadU32()
	return e, nil
}

// RespondedEntity answers RequestedEntity with the entity, the tick it was
// read at, and a spectrum Merkle proof (siblings).
type RespondedEntity struct {
	Entity        Entity
	Tick          uint32
	SpectrumIndex uint32
	Siblings      [SpectrumDepth][32]byte
}

const respondedEntitySize = entitySize + 4 + 4 + SpectrumDepth*32

func (r RespondedEntity) ToBytes() []byte {
	w := NewWriter(respondedEntitySize)
	w.WriteBytes(r.Entity.ToBytes())
	w.WriteU32(r.Tick)
	w.WriteU32(r.SpectrumIndex)
	for _, s := range r.Siblings {
		w.WriteID(s)
	}
	return w.Bytes()
}

func RespondedEntityFromBytes(b []byte) (RespondedEntity, error) {
	if len(b) != respondedEntitySize {
		return RespondedEntity{}, &InvalidDataLength{Expected: respondedEntitySize, Found: len(b)}
	}
	r := NewReader(b)
	var out RespondedEntity
	entityBytes, _ := r.ReadExact(entitySize)
	ent, err := EntityFromBytes(entityBytes)
	if err != nil {
		return RespondedEntity{}, err
	}
	out.Entity = ent
	out.Tick, _ = r.ReadU32()
	out.SpectrumIndex, _ = r.ReadU32()
	for i := 0; i < SpectrumDepth; i++ {
		out.Siblings[i], _ = r.ReadID()
	}
	return out, nil
}

// RequestComputors has no fields; RequestComputorsBytes is its empty body.
var RequestComputorsBytes = []byte{}

// Computors is the elected 676-member computor set and its broadcast
// signature.
type Computors struct {
	Epoch     uint16
	PublicKeys [NumberOfComputors][32]byte
	Signature [64]byte
}

const computorsSize = 2 + NumberOfComputors*32 + 64

func (c Computors) ToBytes() []byte {
	w := NewWriter(computorsSize)
	w.WriteU16(c.Epoch)
	for _, pk := range c.PublicKeys {
		w.WriteID(pk)
	}
	w.WriteSignature(c.Signature)
	return w.Bytes()
}

func ComputorsFromBytes(b []byte) (Computors, error) {
	if len(b) != computorsSize {
		return Computors{}, &InvalidDataLength{Expected: computorsSize, Found: len(b)}
	}
	r := NewReader(b)
	var c Computors
	c.Epoch, _ = r.ReadU16()
	for i := 0; i < NumberOfComputors; i++ {
		c.PublicKeys[i], _ = r.ReadID()
	}
	c.Signature, _ = r.ReadSignature()
	return c, nil
}

// RequestContractIpo asks for the current IPO book of contract i.
type RequestContractIpo struct {
	ContractIndex uint32
}

func (r RequestContractIpo) ToBytes() []byte {
	w := NewWriter(4)
	w.WriteU32(r.ContractIndex)
	return w.Bytes()
}

func RequestContractIpoFromBytes(b []byte) (RequestContractIpo, error) {
	if len(b) != 4 {
		return RequestContractIpo{}, &InvalidDataLength{Expected: 4, Found: len(b)}
	}
	r := NewReader(b)
	v, _ := r.ReadU32()
	return RequestContractIpo{ContractIndex: v}, nil
}

// ContractIpo answers RequestContractIpo with one price/bidder slot per
// computor seat.
type ContractIpo struct {
	ContractIndex uint32
	Tick          uint32
	PublicKeys    [NumberOfComputors][32]byte
	Prices        [NumberOfComputors]uint64
}

const contractIpoSize = 4 + 4 + NumberOfComputors*32 + NumberOfComputors*8

func (c ContractIpo) ToBytes() []byte {
	w := NewWriter(contractIpoSize)
	w.WriteU32(c.ContractIndex)
	w.WriteU32(c.Tick)
	for _, pk := range c.PublicKeys {
		w.WriteID(pk)
	}
	for _, p := range c.Prices {
		w.WriteU64(p)
	}
	return w.Bytes()
}

func ContractIpoFromBytes(b []byte) (ContractIpo, error) {
	if len(b) != contractIpoSize {
		return ContractIpo{}, &InvalidDataLength{Expected: contractIpoSize, Found: len(b)}
	}
	r := NewReader(b)
	var c ContractIpo
	c.ContractIndex, _ = r.ReadU32()
	c.Tick, _ = r.ReadU32()
	for i := 0; i < NumberOfComputors; i++ {
		c.PublicKeys[i], _ = r.ReadID()
	}
	for i := 0; i < NumberOfComputors; i++ {
		c.Prices[i], _ = r.ReadU64()
	}
	return c, nil
}

// RequestedTickData asks for the named tick's summary. Named with the
// "Requested" prefix to stay distinct from the RequestTickData message-type
// constant.
type RequestedTickData struct {
	Tick uint32
}

func (r RequestedTickData) ToBytes() []byte {
	w := NewWriter(4)
	w.WriteU32(r.Tick)
	return w.Bytes()
}

func RequestedTickDataFromBytes(b []byte) (RequestedTickData, error) {
	if len(b) != 4 {
		return RequestedTickData{}, &InvalidDataLength{Expected: 4, Found: len(b)}
	}
	r := NewReader(b)
	v, _ := r.ReadU32()
	return RequestedTickData{Tick: v}, nil
}

// quorumFlagsLen is the packed length of a one-bit-per-computor flag array.
const quorumFlagsLen = (NumberOfComputors + 7) / 8

// QuorumTickData requests a tick with a computor-seat vote filter.
type QuorumTickData struct {
	Tick  uint32
	Flags [quorumFlagsLen]byte
}

func (q QuorumTickData) ToBytes() []byte {
	w := NewWriter(4 + quorumFlagsLen)
	w.WriteU32(q.Tick)
	w.WriteBytes(q.Flags[:])
	return w.Bytes()
}

func QuorumTickDataFromBytes(b []byte) (QuorumTickData, error) {
	want := 4 + quorumFlagsLen
	if len(b) != want {
		return QuorumTickData{}, &InvalidDataLength{Expected: want, Found: len(b)}
	}
	r := NewReader(b)
	var q QuorumTickData
	q.Tick, _ = r.ReadU32()
	flags, _ := r.ReadExact(quorumFlagsLen)
	copy(q.Flags[:], flags)
	return q, nil
}

// TickData is the per-tick summary: up to NumberOfTransactionPerTick
// transaction digests, a contract-fee slot per contract, and the proposing
// computor's signature. TransactionDigest entries that are all-zero are the
// sentinel for "no transaction in that slot".
type TickData struct {
	ComputorIndex     uint16
	Epoch             uint16
	Tick              uint32
	Timestamp         uint64
	TimeLock          [32]byte
	TransactionDigest [NumberOfTransactionPerTick][32]byte
	ContractFees      [MaxNumberOfContracts]uint64
	Signature         [64]byte
}

const tickDataSize = 2 + 2 + 4 + 8 + 32 +
	NumberOfTransactionPerTick*32 +
	MaxNumberOfContracts*8 + 64

func (t TickData) ToBytes() []byte {
	w := NewWriter(tickDataSize)
	w.WriteU16(t.ComputorIndex)
	w.WriteU16(t.Epoch)
	w.WriteU32(t.Tick)
	w.WriteU64(t.Timestamp)
	w.WriteID(t.TimeLock)
	for _, d := range t.TransactionDigest {
		w.WriteID(d)
	}
	for _, f := range t.ContractFees {
		w.WriteU64(f)
	}
	w.WriteSignature(t.Signature)
	return w.Bytes()
}

func TickDataFromBytes(b []byte) (TickData, error) {
	if len(b) != tickDataSize {
		return TickData{}, &InvalidDataLength{Expected: tickDataSize, Found: len(b)}
	}
	r := NewReader(b)
	var t TickData
	t.ComputorIndex, _ = r.ReadU16()
	t.Epoch, _ = r.ReadU16()
	t.Tick, _ = r.ReadU32()
	t.Timestamp, _ = r.ReadU64()
	t.TimeLock, _ = r.ReadID()
	for i := range t.TransactionDigest {
		t.TransactionDigest[i], _ = r.ReadID()
	}
	for i := range t.ContractFees {
		t.ContractFees[i], _ = r.ReadU64()
	}
	t.Signature, _ = r.ReadSignature()
	return t, nil
}

// TransactionDigests reports the non-sentinel transaction digests present in
// this tick, in slot order.
func (t TickData) TransactionDigests() [][32]byte {
	out := make([][32]byte, 0, NumberOfTransactionPerTick)
	var zero [32]byte
	for _, d := range t.TransactionDigest {
		if d != zero {
			out = append(out, d)
		}
	}
	return out
}

// ContainsDigest reports whether hash appears among this tick's non-zero
// transaction digests.
func (t TickData) ContainsDigest(hash [32]byte) bool {
	var zero [32]byte
	if hash == zero {
		return false
	}
	for _, d := range t.TransactionDigest {
		if d == hash {
			return true
		}
	}
	return false
}

// Tick is the lighter-weight broadcast-tick digest summary (distinct from
// TickData: it carries rolling state digests instead of per-transaction
// slots).
type Tick struct {
	ComputorIndex                      uint16
	Epoch                              uint16
	TickNumber                         uint32
	Timestamp                          uint64
	PrevResourceTestingDigest          uint64
	SaltedResourceTestingDigest        uint64
	PrevSpectrumDigest                 [32]byte
	PrevUniverseDigest                 [32]byte
	PrevComputorDigest                 [32]byte
	SaltedSpectrumDigest               [32]byte
	SaltedUniverseDigest               [32]byte
	SaltedComputorDigest               [32]byte
	TransactionDigest                  [32]byte
	ExpectedNextTickTransactionDigest  [32]byte
	Signature                          [64]byte
}

const tickSize = 2 + 2 + 4 + 8 + 8 + 8 + 32*8 + 64

func (t Tick) ToBytes() []byte {
	w := NewWriter(tickSize)
	w.WriteU16(t.ComputorIndex)
	w.WriteU16(t.Epoch)
	w.WriteU32(t.TickNumber)
	w.WriteU64(t.Timestamp)
	w.WriteU64(t.PrevResourceTestingDigest)
	w.WriteU64(t.SaltedResourceTestingDigest)
	w.WriteID(t.PrevSpectrumDigest)
	w.WriteID(t.PrevUniverseDigest)
	w.WriteID(t.PrevComputorDigest)
	w.WriteID(t.SaltedSpectrumDigest)
	w.WriteID(t.SaltedUniverseDigest)
	w.WriteID(t.SaltedComputorDigest)
	w.WriteID(t.TransactionDigest)
	w.WriteID(t.ExpectedNextTickTransactionDigest)
	w.WriteSignature(t.Signature)
	return w.Bytes()
}

func TickFromBytes(b []byte) (Tick, error) {
	if len(b) != tickSize {
		return Tick{}, &InvalidDataLength{Expected: tickSize, Found: len(b)}
	}
	r := NewReader(b)
	var t Tick
	t.ComputorIndex, _ = r.ReadU16()
	t.Epoch, _ = r.ReadU16()
	t.TickNumber, _ = r.ReadU32()
	t.Timestamp, _ = r.ReadU64()
	t.PrevResourceTestingDigest, _ = r.ReadU64()
	t.SaltedResourceTestingDigest, _ = r.ReadU64()
	t.PrevSpectrumDigest, _ = r.ReadID()
	t.PrevUniverseDigest, _ = r.ReadID()
	t.PrevComputorDigest, _ = r.ReadID()
	t.SaltedSpectrumDigest, _ = r.ReadID()
	t.SaltedUniverseDigest, _ = r.ReadID()
	t.SaltedComputorDigest, _ = r.ReadID()
	t.TransactionDigest, _ = r.ReadID()
	t.ExpectedNextTickTransactionDigest, _ = r.ReadID()
	t.Signature, _ = r.ReadSignature()
	return t, nil
}

// transactionFlagsLen is the packed length of a one-bit-per-slot flag array
// covering every transaction slot in a tick.
const transactionFlagsLen = NumberOfTransactionPerTick / 8

// TransactionFlags selects which of a tick's NumberOfTransactionPerTick
// slots a RequestTickTransactions call wants returned.
type TransactionFlags [transactionFlagsLen]byte

// AllTransactionFlags requests every slot.
func AllTransactionFlags() TransactionFlags {
	var f TransactionFlags
	for i := range f {
		f[i] = 0
	}
	return f
}

// FirstTransactionFlags sets exactly the first n bits (n <= NumberOfTransactionPerTick),
// corresponding to "give me slots 0..n". The source this protocol was
// distilled from fills every byte with 0xFF before applying the remainder
// mask, which sets bits beyond n whenever n isn't a multiple of 8; this is
// the corrected semantics, matching "first n" literally.
func FirstTransactionFlags(n int) TransactionFlags {
	var f TransactionFlags
	if n <= 0 {
		return f
	}
	if n > NumberOfTransactionPerTick {
		n = NumberOfTransactionPerTick
	}
	full := n / 8
	for i := 0; i < full; i++ {
		f[i] = 0xFF
	}
	remaining := n % 8
	if remaining > 0 {
		var mask byte
		for i := 0; i < remaining; i++ {
			mask |= 1 << uint(i)
		}
		f[full] = mask
	}
	return f
}

// RequestedTickTransactions asks a peer for the flagged transaction slots of
// a single tick.
type RequestedTickTransactions struct {
	Tick  uint32
	Flags TransactionFlags
}

func (r RequestedTickTransactions) ToBytes() []byte {
	w := NewWriter(4 + transactionFlagsLen)
	w.WriteU32(r.Tick)
	w.WriteBytes(r.Flags[:])
	return w.Bytes()
}

func RequestedTickTransactionsFromBytes(b []byte) (RequestedTickTransactions, error) {
	want := 4 + transactionFlagsLen
	if len(b) != want {
		return RequestedTickTransactions{}, &InvalidDataLength{Expected: want, Found: len(b)}
	}
	r := NewReader(b)
	var out RequestedTickTransactions
	out.Tick, _ = r.ReadU32()
	flags, _ := r.ReadExact(transactionFlagsLen)
	copy(out.Flags[:], flags)
	return out, nil
}

// ExchangedPublicPeers carries up to four IPv4 peer addresses, used both as
// the subscribe handshake's opening frame and as the unsolicited frame a
// peer may interleave before a single-response answer. Named with the
// "Exchanged" past form to stay distinct from the ExchangePublicPeers
// message-type constant.
type ExchangedPublicPeers struct {
	Peers [4][4]byte
}

func (e ExchangedPublicPeers) ToBytes() []byte {
	w := NewWriter(16)
	for _, p := range e.Peers {
		w.WriteBytes(p[:])
	}
	return w.Bytes()
}

func ExchangedPublicPeersFromBytes(b []byte) (ExchangedPublicPeers, error) {
	if len(b) != 16 {
		return ExchangedPublicPeers{}, &InvalidDataLength{Expected: 16, Found: len(b)}
	}
	r := NewReader(b)
	var e ExchangedPublicPeers
	for i := range e.Peers {
		p, _ := r.ReadExact(4)
		copy(e.Peers[i][:], p)
	}
	return e, nil
}

// NetworkEventKind discriminates the payload carried by a subscribed
// NetworkEvent.
type NetworkEventKind int

const (
	EventExchangePublicPeers NetworkEventKind = iota
	EventBroadcastMessage
	EventBroadcastTransaction
	EventBroadcastTick
	EventBroadcastFutureTick
)

// NetworkEvent is one frame dispatched to a subscribe sink. Exactly one of
// the typed fields is populated, selected by Kind.
type NetworkEvent struct {
	Kind NetworkEventKind

	ExchangePublicPeers ExchangedPublicPeers
	BroadcastMessagePayload []byte // opaque BroadcastMessage body
	BroadcastTransaction    []byte // opaque encoded TransactionWithData
	BroadcastTick           Tick
	BroadcastFutureTick     TickData
}

func (e NetworkEvent) String() string {
	switch e.Kind {
	case EventExchangePublicPeers:
		return "ExchangePublicPeers"
	case EventBroadcastMessage:
		return "BroadcastMessage"
	case EventBroadcastTransaction:
		return "BroadcastTransaction"
	case EventBroadcastTick:
		return fmt.Sprintf("BroadcastTick(%d)", e.BroadcastTick.TickNumber)
	case EventBroadcastFutureTick:
		return fmt.Sprintf("BroadcastFutureTick(%d)", e.BroadcastFutureTick.Tick)
	default:
		return "Unknown"
	}
}

// OpaquePayload wraps a message body this repo does not construct locally
// (the asset family, contract-function calls, log and system-info
// exchanges) but still needs to carry, frame, and replay verbatim.
type OpaquePayload struct {
	MessageType byte
	Body        []byte
}

func (p OpaquePayload) ToBytes() []byte { return append([]byte(nil), p.Body...) }
