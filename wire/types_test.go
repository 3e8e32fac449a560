package wire

import "testing"

func TestCurrentTickInfoRoundTrip(t *testing.T) {
	want := CurrentTickInfo{
		Duration:        5,
		Epoch:           120,
		Tick:            15_000_000,
		AlignedVotes:    600,
		MisalignedVotes: 76,
		InitialTick:     14_999_000,
	}
	got, err := CurrentTickInfoFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("CurrentTickInfoFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestCurrentTickInfoFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := CurrentTickInfoFromBytes([]byte{1, 2, 3}); err == nil {
		t.Fatalf("accepted a short buffer")
	}
}

func TestRequestedEntityRoundTrip(t *testing.T) {
	var pk [32]byte
	for i := range pk {
		pk[i] = byte(i)
	}
	want := RequestedEntity{PublicKey: pk}
	got, err := RequestedEntityFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("RequestedEntityFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch")
	}
}

func TestEntityBalance(t *testing.T) {
	e := Entity{IncomingAmount: 1000, OutgoingAmount: 400}
	if e.Balance() != 600 {
		t.Fatalf("Balance() = %d, want 600", e.Balance())
	}
}

func TestEntityRoundTrip(t *testing.T) {
	var pk [32]byte
	pk[0] = 7
	want := Entity{
		PublicKey:                  pk,
		IncomingAmount:             123456789,
		OutgoingAmount:             987654,
		NumberOfIncomingTransfers:  3,
		NumberOfOutgoingTransfers:  1,
		LatestIncomingTransferTick: 99,
		LatestOutgoingTransferTick: 50,
	}
	got, err := EntityFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("EntityFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestRespondedEntityRoundTrip(t *testing.T) {
	var want RespondedEntity
	want.Entity.IncomingAmount = 5
	want.Tick = 42
	want.SpectrumIndex = 7
	for i := range want.Siblings {
		want.Siblings[i][0] = byte(i)
	}
	got, err := RespondedEntityFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("RespondedEntityFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch")
	}
}

func TestComputorsRoundTrip(t *testing.T) {
	var want Computors
	want.Epoch = 99
	want.PublicKeys[0][0] = 1
	want.PublicKeys[NumberOfComputors-1][31] = 9
	want.Signature[0] = 5
	got, err := ComputorsFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("ComputorsFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch")
	}
}

func TestComputorsFromBytesRejectsWrongLength(t *testing.T) {
	if _, err := ComputorsFromBytes(make([]byte, computorsSize-1)); err == nil {
		t.Fatalf("accepted a buffer one byte short of computorsSize")
	}
}

func TestContractIpoRoundTrip(t *testing.T) {
	var want ContractIpo
	want.ContractIndex = 3
	want.Tick = 1000
	want.PublicKeys[0][0] = 1
	want.Prices[0] = 500
	want.Prices[NumberOfComputors-1] = 999
	got, err := ContractIpoFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("ContractIpoFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch")
	}
}

func TestTickDataRoundTrip(t *testing.T) {
	var want TickData
	want.ComputorIndex = 1
	want.Epoch = 120
	want.Tick = 15_000_001
	want.Timestamp = 1732300000
	want.TimeLock[0] = 9
	want.TransactionDigest[0][0] = 1
	want.TransactionDigest[5][3] = 2
	want.ContractFees[0] = 100
	want.Signature[63] = 7
	got, err := TickDataFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("TickDataFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch")
	}
}

func TestTickDataTransactionDigestsSkipsZeroSlots(t *testing.T) {
	var td TickData
	td.TransactionDigest[0][0] = 1
	td.TransactionDigest[3][0] = 2
	digests := td.TransactionDigests()
	if len(digests) != 2 {
		t.Fatalf("TransactionDigests() returned %d entries, want 2", len(digests))
	}
	if !td.ContainsDigest(td.TransactionDigest[0]) {
		t.Fatalf("ContainsDigest missed a populated slot")
	}
	if td.ContainsDigest([32]byte{}) {
		t.Fatalf("ContainsDigest matched the all-zero sentinel")
	}
}

func TestTickRoundTrip(t *testing.T) {
	var want Tick
	want.ComputorIndex = 2
	want.Epoch = 120
	want.TickNumber = 15_000_002
	want.Timestamp = 1732300001
	want.PrevSpectrumDigest[0] = 1
	want.Signature[0] = 8
	got, err := TickFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("TickFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch")
	}
}

func TestAllTransactionFlagsRequestsEverySlot(t *testing.T) {
	f := AllTransactionFlags()
	for i, b := range f {
		if b != 0 {
			t.Fatalf("AllTransactionFlags byte %d = %#x, want 0", i, b)
		}
	}
}

func TestFirstTransactionFlagsSetsExactlyFirstN(t *testing.T) {
	f := FirstTransactionFlags(10)
	for i := 0; i < 10; i++ {
		byteIdx, bit := i/8, uint(i%8)
		if f[byteIdx]&(1<<bit) == 0 {
			t.Fatalf("bit %d not set", i)
		}
	}
	for i := 10; i < NumberOfTransactionPerTick; i++ {
		byteIdx, bit := i/8, uint(i%8)
		if f[byteIdx]&(1<<bit) != 0 {
			t.Fatalf("bit %d set beyond requested n=10", i)
		}
	}
}

func TestFirstTransactionFlagsZeroAndNegative(t *testing.T) {
	if f := FirstTransactionFlags(0); f != (TransactionFlags{}) {
		t.Fatalf("FirstTransactionFlags(0) set bits")
	}
	if f := FirstTransactionFlags(-5); f != (TransactionFlags{}) {
		t.Fatalf("FirstTransactionFlags(-5) set bits")
	}
}

func TestFirstTransactionFlagsClampsAboveMax(t *testing.T) {
	got := FirstTransactionFlags(NumberOfTransactionPerTick + 100)
	want := FirstTransactionFlags(NumberOfTransactionPerTick)
	if got != want {
		t.Fatalf("FirstTransactionFlags did not clamp to NumberOfTransactionPerTick")
	}
}

func TestRequestedTickTransactionsRoundTrip(t *testing.T) {
	want := RequestedTickTransactions{Tick: 777, Flags: FirstTransactionFlags(3)}
	got, err := RequestedTickTransactionsFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("RequestedTickTransactionsFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch")
	}
}

func TestExchangedPublicPeersRoundTrip(t *testing.T) {
	want := ExchangedPublicPeers{Peers: [4][4]byte{{1, 2, 3, 4}, {5, 6, 7, 8}, {9, 9, 9, 9}, {0, 0, 0, 0}}}
	got, err := ExchangedPublicPeersFromBytes(want.ToBytes())
	if err != nil {
		t.Fatalf("ExchangedPublicPeersFromBytes: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch")
	}
}

func TestNetworkEventString(t *testing.T) {
	cases := []struct {
		event NetworkEvent
		want  string
	}{
		{NetworkEvent{Kind: EventExchangePublicPeers}, "ExchangePublicPeers"},
		{NetworkEvent{Kind: EventBroadcastMessage}, "BroadcastMessage"},
		{NetworkEvent{Kind: EventBroadcastTransaction}, "BroadcastTransaction"},
		{NetworkEvent{Kind: EventBroadcastTick, BroadcastTick: Tick{TickNumber: 5}}, "BroadcastTick(5)"},
		{NetworkEvent{Kind: EventBroadcastFutureTick, BroadcastFutureTick: TickData{Tick: 6}}, "BroadcastFutureTick(6)"},
	}
	for _, c := range cases {
		if got := c.event.String(); got != c.want {
			t.Fatalf("String() = %q, want %q", got, c.want)
		}
	}
}

func TestOpaquePayloadToBytesCopies(t *testing.T) {
	body := []byte{1, 2, 3}
	p := OpaquePayload{MessageType: 99, Body: body}
	out := p.ToBytes()
	out[0] = 0xFF
	if body[0] != 1 {
		t.Fatalf("ToBytes shared the backing array with Body")
	}
}
