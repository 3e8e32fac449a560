package restapi

import (
	"encoding/base64"
	"net/http"

	"github.com/gin-gonic/gin"

	"qubic.li/archiver/qubicnode"
	"qubic.li/archiver/wire"
)

type querySmartContractRequest struct {
	ContractIndex uint32 `json:"contractIndex" binding:"required"`
	InputType     uint16 `json:"inputType"`
	InputSize     uint16 `json:"inputSize"`
	RequestData   string `json:"requestData"`
}

func (h *Handler) querySmartContract(c *gin.Context) {
	var req querySmartContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, "decode request body: %v", err)
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.RequestData)
	if err != nil {
		fail(c, "decode base64 requestData: %v", err)
		return
	}

	body := wire.NewWriter(4 + 2 + 2 + len(data))
	body.WriteU32(req.ContractIndex)
	body.WriteU16(req.InputType)
	body.WriteU16(req.InputSize)
	body.WriteBytes(data)

	respBody, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) ([]byte, error) {
		return cl.RequestContractFunction(body.Bytes())
	})
	if err != nil {
		fail(c, "query smart contract: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"responseData": base64.StdEncoding.EncodeToString(respBody),
	})
}
