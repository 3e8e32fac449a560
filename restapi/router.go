// Package restapi implements the HTTP facade merging live peer queries with
// the archiver's cached wallet/transaction index.
package restapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"qubic.li/archiver/archiver"
	"qubic.li/archiver/qubicnode"
)

// Handler holds the dependencies every route needs: a persistent live-node
// connection and the archiver's cache store.
type Handler struct {
	client    *qubicnode.PersistentClient
	store     *archiver.Store
	startedAt time.Time
	version   string
}

// NewHandler builds a Handler wrapping client and store.
func NewHandler(client *qubicnode.PersistentClient, store *archiver.Store, version string) *Handler {
	return &Handler{client: client, store: store, startedAt: time.Now(), version: version}
}

// NewRouter builds the gin.Engine binding every route this facade exposes.
func NewRouter(h *Handler) *gin.Engine {
	// Extra fields on a request body are rejected rather than silently
	// ignored.
	gin.EnableJsonDecoderDisallowUnknownFields()

	r := gin.Default()

	r.GET("/v1/latestTick", h.latestTick)
	r.GET("/v1/tick-info", h.tickInfo)
	r.GET("/v1/ticks/:tick/tick-data", h.tickData)
	r.POST("/v1/broadcast-transaction", h.broadcastTransaction)
	r.GET("/v1/balances/:id", h.balance)
	r.GET("/v2/transactions/:tx_id", h.transaction)
	r.GET("/v2/ticks/:tick/transactions", h.tickTransactions)
	r.GET("/v2/identities/:id/transfers", h.transfers)
	r.GET("/v1/rich-list", h.richList)
	r.GET("/v1/epochs/:epoch/computors", h.computors)
	r.GET("/v1/healthcheck", h.healthcheck)
	r.POST("/v1/querySmartContract", h.querySmartContract)

	return r
}
