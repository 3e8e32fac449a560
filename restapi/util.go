package restapi

import "encoding/hex"

// hexDigest renders a 32-byte digest as lowercase hex, used for transaction
// and tick-data identifiers that are not base-26 wallet identities.
func hexDigest(d [32]byte) string {
	return hex.EncodeToString(d[:])
}
