package qubicnode

import (
	"crypto/rand"
	"fmt"

	"qubic.li/archiver/k12"
	"qubic.li/archiver/wire"
)

// WorkSolution is a proof-of-work nonce found for a mining seed.
type WorkSolution struct {
	PublicKey [32]byte
	Nonce     [32]byte
}

// broadcastMessageSize is BroadcastMessage's packed layout: source +
// destination identities, gamming nonce, solution nonce, signature.
const broadcastMessageSize = 32 + 32 + 32 + 32 + 64

// SubmitWork broadcasts sol fire-and-forget, masking the real nonce behind
// a gamma derived from a randomly drawn gamming nonce. This message carries
// no verifiable signature: the trailing 64 bytes are filled with uniform
// random noise.
func (c *Client) SubmitWork(sol WorkSolution) error {
	var gammingNonce [32]byte
	var gammingKey [32]byte

	for {
		if _, err := rand.Read(gammingNonce[:]); err != nil {
			return fmt.Errorf("qubicnode: draw gamming nonce: %w", err)
		}

		// shared_key_for_destination is zero for a work submission: the
		// destination is the network at large, not a single identity with
		// an established shared secret.
		var sharedAndGN [64]byte
		copy(sharedAndGN[32:], gammingNonce[:])
		gammingKey = k12.Sum32(sharedAndGN[:])

		if gammingKey[0] == 0 {
			break
		}
	}

	gamma := k12.Sum32(gammingKey[:])

	var solutionNonce [32]byte
	for i := range solutionNonce {
		solutionNonce[i] = sol.Nonce[i] ^ gamma[i]
	}

	var sig [64]byte
	if _, err := rand.Read(sig[:]); err != nil {
		return fmt.Errorf("qubicnode: draw signature padding: %w", err)
	}

	w := wire.NewWriter(broadcastMessageSize)
	w.WriteID(sol.PublicKey) // source_public_key: the miner's own identity
	w.WriteID([32]byte{})    // destination_public_key: unused for work submission
	w.WriteBytes(gammingNonce[:])
	w.WriteBytes(solutionNonce[:])
	w.WriteSignature(sig)

	return c.t.FireAndForget(wire.BroadcastMessage, w.Bytes())
}
