package restapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qubic.li/archiver/qubicnode"
	"qubic.li/archiver/wire"
)

type tickInfoResponse struct {
	Duration        uint16 `json:"duration"`
	Epoch           uint16 `json:"epoch"`
	Tick            uint32 `json:"tick"`
	AlignedVotes    uint16 `json:"alignedVotes"`
	MisalignedVotes uint16 `json:"misalignedVotes"`
	InitialTick     uint32 `json:"initialTick"`
}

func toTickInfoResponse(info wire.CurrentTickInfo) tickInfoResponse {
	return tickInfoResponse{
		Duration:        info.Duration,
		Epoch:           info.Epoch,
		Tick:            info.Tick,
		AlignedVotes:    info.AlignedVotes,
		MisalignedVotes: info.MisalignedVotes,
		InitialTick:     info.InitialTick,
	}
}

func (h *Handler) latestTick(c *gin.Context) {
	info, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) (wire.CurrentTickInfo, error) {
		return cl.GetCurrentTickInfo()
	})
	if err != nil {
		fail(c, "fetch current tick: %v", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"latestTick": info.Tick})
}

func (h *Handler) tickInfo(c *gin.Context) {
	info, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) (wire.CurrentTickInfo, error) {
		return cl.GetCurrentTickInfo()
	})
	if err != nil {
		fail(c, "fetch current tick: %v", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tickInfo": toTickInfoResponse(info)})
}

func parseTickParam(c *gin.Context, name string) (uint32, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		fail(c, "invalid tick: %v", err)
		return 0, false
	}
	return uint32(v), true
}

type tickDataResponse struct {
	ComputorIndex     uint16   `json:"computorIndex"`
	Epoch             uint16   `json:"epoch"`
	Tick              uint32   `json:"tick"`
	Timestamp         uint64   `json:"timestamp,string"`
	TransactionHashes []string `json:"transactionIds"`
}

func (h *Handler) tickData(c *gin.Context) {
	tick, ok := parseTickParam(c, "tick")
	if !ok {
		return
	}

	td, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) (wire.TickData, error) {
		return cl.RequestTickData(tick)
	})
	if err != nil {
		fail(c, "fetch tick data: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickData": tickDataResponse{
		ComputorIndex:     td.ComputorIndex,
		Epoch:             td.Epoch,
		Tick:              td.Tick,
		Timestamp:         td.Timestamp,
		TransactionHashes: encodeDigests(td.TransactionDigests()),
	}})
}

func encodeDigests(digests [][32]byte) []string {
	out := make([]string, len(digests))
	for i, d := range digests {
		out[i] = hexDigest(d)
	}
	return out
}
