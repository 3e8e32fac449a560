package restapi

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"qubic.li/archiver/identity"
	"qubic.li/archiver/qubicnode"
	"qubic.li/archiver/transaction"
	"qubic.li/archiver/wire"
)

type transactionResponse struct {
	SourceID   string `json:"sourceId"`
	DestID     string `json:"destId"`
	Amount     uint64 `json:"amount,string"`
	TickNumber uint32 `json:"tickNumber"`
	InputType  uint16 `json:"inputType"`
	InputSize  uint16 `json:"inputSize"`
	Kind       string `json:"kind"`
	TxID       string `json:"txId"`
}

func toTransactionResponse(tx transaction.TransactionWithData) transactionResponse {
	return transactionResponse{
		SourceID:   identity.Encode(tx.Raw.From, false),
		DestID:     identity.Encode(tx.Raw.To, false),
		Amount:     tx.Raw.Amount,
		TickNumber: tx.Raw.Tick,
		InputType:  tx.Raw.InputType,
		InputSize:  tx.Raw.InputSize,
		Kind:       tx.Payload.Kind.String(),
		TxID:       tx.HashIdentity(),
	}
}

type broadcastTransactionRequest struct {
	EncodedTransaction string `json:"encodedTransaction" binding:"required"`
}

func (h *Handler) broadcastTransaction(c *gin.Context) {
	var req broadcastTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "decode request body: %v", err)
		return
	}

	raw, err := base64.StdEncoding.DecodeString(req.EncodedTransaction)
	if err != nil {
		fail(c, "decode base64 transaction: %v", err)
		return
	}

	tx, err := transaction.TransactionWithDataFromBytes(raw)
	if err != nil {
		fail(c, "parse transaction: %v", err)
		return
	}

	_, err = qubicnode.Do(h.client, func(cl *qubicnode.Client) (struct{}, error) {
		return struct{}{}, cl.SendSignedTransaction(tx)
	})
	if err != nil {
		fail(c, "broadcast transaction: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactionId": tx.HashIdentity()})
}

type balanceResponse struct {
	ID      string `json:"id"`
	Balance uint64 `json:"balance,string"`
	Tick    uint32 `json:"tick"`
}

func (h *Handler) balance(c *gin.Context) {
	id := c.Param("id")
	pubKey, err := identity.Decode(id)
	if err != nil {
		fail(c, "invalid identity: %v", err)
		return
	}

	resp, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) (wire.RespondedEntity, error) {
		return cl.RequestEntity(pubKey)
	})
	if err != nil {
		fail(c, "fetch entity: %v", err)
		return
	}

	c.JSON(http.StatusOK, balanceResponse{
		ID:      id,
		Balance: resp.Entity.Balance(),
		Tick:    resp.Tick,
	})
}

type transactionDetailResponse struct {
	SourceID   string `json:"sourceId"`
	DestID     string `json:"destId"`
	Amount     uint64 `json:"amount,string"`
	TickNumber uint32 `json:"tickNumber"`
	InputType  uint16 `json:"inputType"`
	InputSize  uint16 `json:"inputSize"`
	Payload    string `json:"payload"`
	TxID       string `json:"txId"`
}

func (h *Handler) transaction(c *gin.Context) {
	txID := c.Param("tx_id")

	raw, payload, found, err := h.store.GetTransaction(txID)
	if err != nil {
		fail(c, "lookup transaction: %v", err)
		return
	}
	if !found {
		fail(c, "transaction %s not found", txID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transactionDetailResponse{
		SourceID:   identity.Encode(raw.From, false),
		DestID:     identity.Encode(raw.To, false),
		Amount:     raw.Amount,
		TickNumber: raw.Tick,
		InputType:  raw.InputType,
		InputSize:  raw.InputSize,
		Payload:    base64.StdEncoding.EncodeToString(payload),
		TxID:       txID,
	}})
}

func (h *Handler) tickTransactions(c *gin.Context) {
	tick, ok := parseTickParam(c, "tick")
	if !ok {
		return
	}

	approvedOnly := c.Query("approved") == "true"
	transfersOnly := c.Query("transfers") == "true"

	var digests map[[32]byte]bool
	if approvedOnly {
		td, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) (wire.TickData, error) {
			return cl.RequestTickData(tick)
		})
		if err != nil {
			fail(c, "fetch tick data: %v", err)
			return
		}
		digests = make(map[[32]byte]bool)
		for _, d := range td.TransactionDigests() {
			digests[d] = true
		}
	}

	txs, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) ([]transaction.TransactionWithData, error) {
		return cl.RequestTickTransactions(tick, wire.AllTransactionFlags())
	})
	if err != nil {
		fail(c, "fetch tick transactions: %v", err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		if approvedOnly && !digests[tx.Hash()] {
			continue
		}
		if transfersOnly && tx.Raw.Amount == 0 {
			continue
		}
		out = append(out, toTransactionResponse(tx))
	}

	c.JSON(http.StatusOK, gin.H{"transactions": out})
}
