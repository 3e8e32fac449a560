package transaction

import "qubic.li/archiver/wire"

// Kind discriminates the seven payload variants a transaction may carry.
type Kind int

const (
	KindNone Kind = iota
	KindIpoBid
	KindIssueAsset
	KindSendToMany
	KindSubmitWork
	KindTransferAsset
	KindUnknown
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindIpoBid:
		return "IpoBid"
	case KindIssueAsset:
		return "IssueAsset"
	case KindSendToMany:
		return "SendToMany"
	case KindSubmitWork:
		return "SubmitWork"
	case KindTransferAsset:
		return "TransferAsset"
	default:
		return "Unknown"
	}
}

// ContractIpoBid is the IpoBid payload: a fixed-price, fixed-quantity bid
// into a contract's initial offering.
type ContractIpoBid struct {
	Price    uint64
	Quantity uint16
}

// contractIpoBidSize is sizeof(ContractIpoBid) in the original C layout: a
// u64 followed by a u16 padded out to the u64 field's 8-byte alignment, so
// the struct occupies 16 bytes on the wire even though only 10 are
// meaningful.
const contractIpoBidSize = 16
const contractIpoBidPayloadSize = 8 + 2

func (b ContractIpoBid) ToBytes() []byte {
	w := wire.NewWriter(contractIpoBidSize)
	w.WriteU64(b.Price)
	w.WriteU16(b.Quantity)
	w.WriteBytes(make([]byte, contractIpoBidSize-contractIpoBidPayloadSize))
	return w.Bytes()
}

// IssueAssetInput names a new asset and its unit conventions.
type IssueAssetInput struct {
	Name                  [8]byte
	NumberOfUnits         int64
	UnitOfMeasurement     uint64
	NumberOfDecimalPlaces int8
}

const issueAssetInputSize = 8 + 8 + 8 + 1

func (i IssueAssetInput) ToBytes() []byte {
	w := wire.NewWriter(issueAssetInputSize)
	w.WriteBytes(i.Name[:])
	w.WriteU64(uint64(i.NumberOfUnits))
	w.WriteU64(i.UnitOfMeasurement)
	w.WriteU8(byte(i.NumberOfDecimalPlaces))
	return w.Bytes()
}

// TransferAssetInput names the asset-transfer destination only. It has no
// field for the asset name, issuer or number of units, and RawTransaction
// has none either; sanitize sets only To (QX) and a fixed Amount fee.
type TransferAssetInput struct {
	Destination [32]byte
}

const transferAssetInputSize = 32

func (t TransferAssetInput) ToBytes() []byte {
	w := wire.NewWriter(transferAssetInputSize)
	w.WriteID(t.Destination)
	return w.Bytes()
}

// sendToManyRecipients is the fixed fan-out width of SendToManyInput.
const sendToManyRecipients = 25

// SendToManyInput fans a single transaction out to up to 25 recipients.
type SendToManyInput struct {
	IDs     [sendToManyRecipients][32]byte
	Amounts [sendToManyRecipients]uint64
}

const sendToManyInputSize = sendToManyRecipients*32 + sendToManyRecipients*8

func (s SendToManyInput) ToBytes() []byte {
	w := wire.NewWriter(sendToManyInputSize)
	for _, id := range s.IDs {
		w.WriteID(id)
	}
	for _, a := range s.Amounts {
		w.WriteU64(a)
	}
	return w.Bytes()
}

func (s SendToManyInput) totalAmount() uint64 {
	var total uint64
	for _, a := range s.Amounts {
		total += a
	}
	return total
}

// miningSeedSize and nonceSize are both 32 bytes, so the SubmitWork payload
// is sizeof(MiningSeed)+sizeof(Nonce) = 64.
const miningSeedSize = 32
const nonceSize = 32

// SubmitWork carries the mining seed and solved nonce for a
// proof-of-work submission.
type SubmitWork struct {
	Seed  [miningSeedSize]byte
	Nonce [nonceSize]byte
}

func (s SubmitWork) ToBytes() []byte {
	w := wire.NewWriter(miningSeedSize + nonceSize)
	w.WriteBytes(s.Seed[:])
	w.WriteBytes(s.Nonce[:])
	return w.Bytes()
}

// Payload is the polymorphic transaction body. Exactly one of the typed
// fields is meaningful, selected by Kind; Raw preserves the original bytes
// for KindUnknown so an upstream upgrade can reinterpret them later.
type Payload struct {
	Kind Kind

	IpoBid        ContractIpoBid
	IssueAsset    IssueAssetInput
	TransferAsset TransferAssetInput
	SendToMany    SendToManyInput
	SubmitWork    SubmitWork
	Raw           []byte
}

// Bytes renders the payload's canonical byte image.
func (p Payload) Bytes() []byte {
	switch p.Kind {
	case KindIpoBid:
		return p.IpoBid.ToBytes()
	case KindIssueAsset:
		return p.IssueAsset.ToBytes()
	case KindTransferAsset:
		return p.TransferAsset.ToBytes()
	case KindSendToMany:
		return p.SendToMany.ToBytes()
	case KindSubmitWork:
		return p.SubmitWork.ToBytes()
	case KindUnknown:
		return p.Raw
	default:
		return nil
	}
}

// QXContractID is the fixed identity of the QX asset-issuance contract
// (qubic_tcp_types::types::assets::QXID), the destination asset operations
// sanitize their "to" field to.
var QXContractID = contractID(1)

// sendToManyContractIndex is the fixed contract seat SendToMany payments
// route through.
const sendToManyContractIndex = 4

func contractID(index uint32) [32]byte {
	var id [32]byte
	id[0] = byte(index)
	id[1] = byte(index >> 8)
	id[2] = byte(index >> 16)
	id[3] = byte(index >> 24)
	return id
}

// sanitize enforces each payload variant's fixed (input_type, input_size,
// to, amount) shape onto raw. Applied by Builder.Build before signing.
func (p Payload) sanitize(raw *RawTransaction) {
	switch p.Kind {
	case KindIpoBid:
		raw.InputType = 0
		raw.InputSize = contractIpoBidSize
	case KindIssueAsset:
		raw.InputType = 1
		raw.InputSize = issueAssetInputSize
		raw.To = QXContractID
		raw.Amount = 1_000_000_000
	case KindTransferAsset:
		raw.InputType = 2
		raw.Amount = 1_000_000
		raw.To = QXContractID
		raw.InputSize = transferAssetInputSize
	case KindSubmitWork:
		raw.To = [32]byte{}
		raw.Amount = 1_000_000
		raw.InputType = 2
		raw.InputSize = miningSeedSize + nonceSize
	case KindSendToMany:
		raw.InputType = 1
		raw.InputSize = sendToManyInputSize
		raw.To = contractID(sendToManyContractIndex)
		raw.Amount += p.SendToMany.totalAmount()
	case KindUnknown:
		raw.InputSize = uint16(len(p.Raw))
	case KindNone:
		// no fixed shape
	}
}

// decodePayload reverses sanitize's discriminant table: (input_type,
// input_size) selects a variant; a type-2, 64-byte payload is SubmitWork only
// when the amount is 1_000_000. Any mismatch falls into KindUnknown,
// preserving the raw bytes.
func decodePayload(raw RawTransaction, body []byte) (Payload, error) {
	switch raw.InputType {
	case 0:
		switch {
		case raw.InputSize == contractIpoBidSize && len(body) == contractIpoBidSize:
			r := wire.NewReader(body[:contractIpoBidPayloadSize])
			price, _ := r.ReadU64()
			qty, _ := r.ReadU16()
			return Payload{Kind: KindIpoBid, IpoBid: ContractIpoBid{Price: price, Quantity: qty}}, nil
		case raw.InputSize == 0 && len(body) == 0:
			return Payload{Kind: KindNone}, nil
		default:
			return Payload{Kind: KindUnknown, Raw: body}, nil
		}

	case 1:
		switch {
		case raw.InputSize == issueAssetInputSize && len(body) == issueAssetInputSize:
			r := wire.NewReader(body)
			var in IssueAssetInput
			name, _ := r.ReadExact(8)
			copy(in.Name[:], name)
			units, _ := r.ReadU64()
			in.NumberOfUnits = int64(units)
			in.UnitOfMeasurement, _ = r.ReadU64()
			places, _ := r.ReadU8()
			in.NumberOfDecimalPlaces = int8(places)
			return Payload{Kind: KindIssueAsset, IssueAsset: in}, nil
		case raw.InputSize == sendToManyInputSize && len(body) == sendToManyInputSize:
			r := wire.NewReader(body)
			var in SendToManyInput
			for i := range in.IDs {
				in.IDs[i], _ = r.ReadID()
			}
			for i := range in.Amounts {
				in.Amounts[i], _ = r.ReadU64()
			}
			return Payload{Kind: KindSendToMany, SendToMany: in}, nil
		default:
			return Payload{Kind: KindUnknown, Raw: body}, nil
		}

	case 2:
		workSize := miningSeedSize + nonceSize
		switch {
		case int(raw.InputSize) == workSize && len(body) == workSize && raw.Amount == 1_000_000:
			var w SubmitWork
			copy(w.Seed[:], body[:miningSeedSize])
			copy(w.Nonce[:], body[miningSeedSize:])
			return Payload{Kind: KindSubmitWork, SubmitWork: w}, nil
		case raw.InputSize == transferAssetInputSize && len(body) == transferAssetInputSize:
			var in TransferAssetInput
			copy(in.Destination[:], body)
			return Payload{Kind: KindTransferAsset, TransferAsset: in}, nil
		default:
			return Payload{Kind: KindUnknown, Raw: body}, nil
		}

	default:
		if raw.InputSize == 0 && len(body) == 0 {
			return Payload{Kind: KindNone}, nil
		}
		return Payload{Kind: KindUnknown, Raw: body}, nil
	}
}
