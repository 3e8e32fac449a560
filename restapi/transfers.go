package restapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qubic.li/archiver/identity"
	"qubic.li/archiver/qubicnode"
	"qubic.li/archiver/transaction"
	"qubic.li/archiver/wire"
)

// maxTransferTickRange is the largest end_tick-start_tick span a single
// request may scan.
const maxTransferTickRange = 100_000_000

type tickTransfers struct {
	TickNumber   uint32                `json:"tickNumber"`
	Identity     string                `json:"identity"`
	Transactions []transactionResponse `json:"transactions"`
}

// isContractDestination reports whether pubKey names a smart-contract
// index rather than a seed-derived wallet. Contract identities are built as
// the little-endian contract index in the low 8 bytes with every remaining
// byte zero; a real wallet's public key has no such structure.
func isContractDestination(pubKey [32]byte) bool {
	for _, b := range pubKey[8:] {
		if b != 0 {
			return false
		}
	}
	return true
}

func (h *Handler) transfers(c *gin.Context) {
	id := c.Param("id")
	if _, err := identity.Decode(id); err != nil {
		fail(c, "invalid identity: %v", err)
		return
	}

	latest, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) (wire.CurrentTickInfo, error) {
		return cl.GetCurrentTickInfo()
	})
	if err != nil {
		fail(c, "fetch current tick: %v", err)
		return
	}

	startTick := latest.Tick
	if v := c.Query("start_tick"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			fail(c, "invalid start_tick: %v", err)
			return
		}
		startTick = uint32(n)
	}

	endTick := latest.Tick
	if v := c.Query("end_tick"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			fail(c, "invalid end_tick: %v", err)
			return
		}
		endTick = uint32(n)
	}

	if endTick < startTick {
		fail(c, "end_tick should be higher or equal to start_tick")
		return
	}
	if uint64(endTick)-uint64(startTick) > maxTransferTickRange {
		fail(c, "tick range too big")
		return
	}

	desc := c.Query("desc") == "true"
	scOnly := c.Query("sc_only") == "true"

	result := make([]tickTransfers, 0)
	for tick := startTick; tick <= endTick; tick++ {
		txs, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) ([]transaction.TransactionWithData, error) {
			return cl.RequestTickTransactions(tick, wire.AllTransactionFlags())
		})
		if err != nil {
			fail(c, "fetch tick %d transactions: %v", tick, err)
			return
		}

		var matched []transactionResponse
		for _, tx := range txs {
			if identity.Encode(tx.Raw.From, false) != id && identity.Encode(tx.Raw.To, false) != id {
				continue
			}
			if scOnly && !isContractDestination(tx.Raw.To) {
				continue
			}
			matched = append(matched, toTransactionResponse(tx))
		}
		if len(matched) > 0 {
			result = append(result, tickTransfers{TickNumber: tick, Identity: id, Transactions: matched})
		}

		if tick == endTick {
			break // avoid uint32 wraparound when endTick == math.MaxUint32
		}
	}

	if desc {
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}

	c.JSON(http.StatusOK, gin.H{"transferTransactionsPerTick": result})
}
