package wire

// Message type numbers carried in Header.MessageType. Grounded on
// qubic_tcp_types/mod.rs's MessageType enum; any type not in this table is
// dropped by a receiver rather than treated as an error.
const (
	ExchangePublicPeers     byte = 0
	BroadcastMessage        byte = 1
	BroadcastComputors      byte = 2
	BroadcastTick           byte = 3
	BroadcastFutureTickData byte = 8
	RequestComputors        byte = 11
	RequestQuorumTick       byte = 14
	RequestTickData         byte = 16
	BroadcastTransaction    byte = 24
	RequestCurrentTickInfo  byte = 27
	RespondCurrentTickInfo  byte = 28
	RequestTickTransactions byte = 29
	RequestEntity           byte = 31
	RespondEntity           byte = 32
	RequestContractIPO      byte = 33
	RespondContractIPO      byte = 34
	EndResponse             byte = 35

	// Asset request/response family: opaque passthrough types, never
	// constructed locally.
	RequestIssuedAssets     byte = 36
	RespondIssuedAssets     byte = 37
	RequestOwnedAssets      byte = 38
	RespondOwnedAssets      byte = 39
	RequestPossessedAssets  byte = 40
	RespondPossessedAssets  byte = 41
	RequestContractFunction byte = 42
	RespondContractFunction byte = 43
	RequestLog              byte = 44
	RespondLog              byte = 45
	RequestSystemInfo       byte = 46
	RespondSystemInfo       byte = 47

	ProcessSpecialCommand byte = 255
)

// Structural constants fixed by the protocol (qubic_tcp_types/consts.rs).
const (
	NumberOfComputors          = 676
	NumberOfTransactionPerTick = 1024
	MaxNumberOfContracts       = 1024
	SpectrumDepth              = 24
	SpectrumCapacity           = 1 << 24
)

// Arbitrator is the fixed 32-byte identity of the network's designated
// tie-breaking authority (qubic_tcp_types/consts.rs's ARBITRATOR).
var Arbitrator = [32]byte{
	158, 26, 16, 12, 251, 85, 109, 239, 123, 204, 98, 82, 228, 125, 223, 9,
	133, 66, 134, 55, 195, 209, 179, 202, 161, 111, 51, 253, 152, 67, 141, 148,
}
