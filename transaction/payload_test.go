package transaction

import "testing"

func TestContractIpoBidWireSizeIs16WithPadding(t *testing.T) {
	bid := ContractIpoBid{Price: 1000, Quantity: 5}
	b := bid.ToBytes()
	if len(b) != 16 {
		t.Fatalf("ContractIpoBid.ToBytes() length = %d, want 16", len(b))
	}
	for i := contractIpoBidPayloadSize; i < contractIpoBidSize; i++ {
		if b[i] != 0 {
			t.Fatalf("padding byte %d = %#x, want 0", i, b[i])
		}
	}
}

func TestSanitizeIpoBidForcesInputTypeAndSize(t *testing.T) {
	p := Payload{Kind: KindIpoBid, IpoBid: ContractIpoBid{Price: 77, Quantity: 2}}
	var raw RawTransaction
	p.sanitize(&raw)
	if raw.InputType != 0 {
		t.Fatalf("InputType = %d, want 0", raw.InputType)
	}
	if raw.InputSize != 16 {
		t.Fatalf("InputSize = %d, want 16", raw.InputSize)
	}
}

func TestIpoBidSanitizeDecodeRoundTrip(t *testing.T) {
	p := Payload{Kind: KindIpoBid, IpoBid: ContractIpoBid{Price: 123456, Quantity: 9}}
	var raw RawTransaction
	p.sanitize(&raw)

	body := p.Bytes()
	if len(body) != int(raw.InputSize) {
		t.Fatalf("payload body length %d does not match sanitized InputSize %d", len(body), raw.InputSize)
	}

	decoded, err := decodePayload(raw, body)
	if err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if decoded.Kind != KindIpoBid {
		t.Fatalf("decoded Kind = %v, want KindIpoBid", decoded.Kind)
	}
	if decoded.IpoBid != p.IpoBid {
		t.Fatalf("decoded IpoBid = %+v, want %+v", decoded.IpoBid, p.IpoBid)
	}
}

func TestSanitizeIssueAsset(t *testing.T) {
	p := Payload{Kind: KindIssueAsset, IssueAsset: IssueAssetInput{NumberOfUnits: 100}}
	var raw RawTransaction
	p.sanitize(&raw)
	if raw.InputType != 1 || raw.InputSize != issueAssetInputSize {
		t.Fatalf("unexpected sanitize result: %+v", raw)
	}
	if raw.To != QXContractID {
		t.Fatalf("To was not set to QXContractID")
	}
	if raw.Amount != 1_000_000_000 {
		t.Fatalf("Amount = %d, want 1_000_000_000", raw.Amount)
	}
}

func TestIssueAssetSanitizeDecodeRoundTrip(t *testing.T) {
	p := Payload{Kind: KindIssueAsset, IssueAsset: IssueAssetInput{
		Name:                  [8]byte{'Q', 'U', 'B', 'I', 'C'},
		NumberOfUnits:         1_000_000,
		UnitOfMeasurement:     1,
		NumberOfDecimalPlaces: 2,
	}}
	var raw RawTransaction
	p.sanitize(&raw)

	decoded, err := decodePayload(raw, p.Bytes())
	if err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if decoded.Kind != KindIssueAsset || decoded.IssueAsset != p.IssueAsset {
		t.Fatalf("round trip mismatch: got %+v want %+v", decoded.IssueAsset, p.IssueAsset)
	}
}

func TestSanitizeTransferAsset(t *testing.T) {
	p := Payload{Kind: KindTransferAsset, TransferAsset: TransferAssetInput{Destination: [32]byte{1}}}
	var raw RawTransaction
	p.sanitize(&raw)
	if raw.InputType != 2 || raw.InputSize != transferAssetInputSize {
		t.Fatalf("unexpected sanitize result: %+v", raw)
	}
	if raw.Amount != 1_000_000 {
		t.Fatalf("Amount = %d, want 1_000_000", raw.Amount)
	}
	if raw.To != QXContractID {
		t.Fatalf("To was not set to QXContractID")
	}
}

func TestTransferAssetSanitizeDecodeRoundTrip(t *testing.T) {
	p := Payload{Kind: KindTransferAsset, TransferAsset: TransferAssetInput{Destination: [32]byte{9, 9}}}
	var raw RawTransaction
	p.sanitize(&raw)

	decoded, err := decodePayload(raw, p.Bytes())
	if err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if decoded.Kind != KindTransferAsset || decoded.TransferAsset != p.TransferAsset {
		t.Fatalf("round trip mismatch")
	}
}

func TestSanitizeSubmitWorkZeroesTo(t *testing.T) {
	p := Payload{Kind: KindSubmitWork, SubmitWork: SubmitWork{Seed: [32]byte{1}, Nonce: [32]byte{2}}}
	raw := RawTransaction{To: [32]byte{9}}
	p.sanitize(&raw)
	if raw.To != ([32]byte{}) {
		t.Fatalf("SubmitWork sanitize did not zero To")
	}
	if raw.Amount != 1_000_000 || raw.InputType != 2 {
		t.Fatalf("unexpected sanitize result: %+v", raw)
	}
}

func TestSubmitWorkSanitizeDecodeRoundTrip(t *testing.T) {
	p := Payload{Kind: KindSubmitWork, SubmitWork: SubmitWork{Seed: [32]byte{1, 2, 3}, Nonce: [32]byte{4, 5, 6}}}
	var raw RawTransaction
	p.sanitize(&raw)

	decoded, err := decodePayload(raw, p.Bytes())
	if err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if decoded.Kind != KindSubmitWork || decoded.SubmitWork != p.SubmitWork {
		t.Fatalf("round trip mismatch")
	}
}

func TestSanitizeSendToManyAccumulatesAmount(t *testing.T) {
	var s SendToManyInput
	s.Amounts[0] = 100
	s.Amounts[1] = 250
	p := Payload{Kind: KindSendToMany, SendToMany: s}
	raw := RawTransaction{Amount: 50}
	p.sanitize(&raw)
	if raw.Amount != 50+350 {
		t.Fatalf("Amount = %d, want %d", raw.Amount, 50+350)
	}
	if raw.InputType != 1 || raw.InputSize != sendToManyInputSize {
		t.Fatalf("unexpected sanitize result: %+v", raw)
	}
}

func TestSendToManySanitizeDecodeRoundTrip(t *testing.T) {
	var s SendToManyInput
	s.IDs[0] = [32]byte{1}
	s.Amounts[0] = 42
	p := Payload{Kind: KindSendToMany, SendToMany: s}
	var raw RawTransaction
	p.sanitize(&raw)

	decoded, err := decodePayload(raw, p.Bytes())
	if err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if decoded.Kind != KindSendToMany || decoded.SendToMany != p.SendToMany {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecodePayloadFallsBackToUnknownOnMismatch(t *testing.T) {
	raw := RawTransaction{InputType: 0, InputSize: 3}
	decoded, err := decodePayload(raw, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if decoded.Kind != KindUnknown {
		t.Fatalf("Kind = %v, want KindUnknown", decoded.Kind)
	}
	if string(decoded.Raw) != "\x01\x02\x03" {
		t.Fatalf("Raw = %v, want original body preserved", decoded.Raw)
	}
}

func TestKindStringNames(t *testing.T) {
	cases := map[Kind]string{
		KindNone:          "None",
		KindIpoBid:        "IpoBid",
		KindIssueAsset:    "IssueAsset",
		KindSendToMany:    "SendToMany",
		KindSubmitWork:    "SubmitWork",
		KindTransferAsset: "TransferAsset",
		KindUnknown:       "Unknown",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
