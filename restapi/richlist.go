package restapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qubic.li/archiver/identity"
	"qubic.li/archiver/qubicnode"
	"qubic.li/archiver/wire"
)

const (
	defaultRichListPageSize = 50
	maxRichListPageSize     = 200
)

func (h *Handler) richList(c *gin.Context) {
	page := 1
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, "invalid page: %v", err)
			return
		}
		page = n
	}
	pageSize := defaultRichListPageSize
	if v := c.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			fail(c, "invalid page_size: %v", err)
			return
		}
		pageSize = n
	}

	if page < 1 {
		fail(c, "page must be higher than zero")
		return
	}
	if pageSize < 1 {
		fail(c, "page_size must be higher than zero")
		return
	}
	if pageSize > maxRichListPageSize {
		fail(c, "page_size must not be higher than %d", maxRichListPageSize)
		return
	}

	total, err := h.store.RichListSize()
	if err != nil {
		fail(c, "read rich list size: %v", err)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	if total > 0 && page > totalPages {
		fail(c, "page must not be higher than total_pages (%d)", totalPages)
		return
	}

	entries, err := h.store.RichList((page-1)*pageSize, pageSize)
	if err != nil {
		fail(c, "read rich list: %v", err)
		return
	}

	epoch, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) (uint16, error) {
		info, err := cl.GetCurrentTickInfo()
		if err != nil {
			return 0, err
		}
		return info.Epoch, nil
	})
	if err != nil {
		fail(c, "fetch current epoch: %v", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pagination": gin.H{
			"totalRecords": total,
			"totalPages":   totalPages,
			"currentPage":  page,
		},
		"epoch": epoch,
		"richList": gin.H{
			"entities": entries,
		},
	})
}

func (h *Handler) computors(c *gin.Context) {
	// The epoch path parameter is accepted for parity with the original
	// route but unused: request_computors only ever returns the peer's
	// current epoch committee.
	if _, ok := parseTickParam(c, "epoch"); !ok {
		return
	}

	computors, err := qubicnode.Do(h.client, func(cl *qubicnode.Client) (wire.Computors, error) {
		return cl.RequestComputors()
	})
	if err != nil {
		fail(c, "fetch computors: %v", err)
		return
	}

	ids := make([]string, len(computors.PublicKeys))
	for i, pk := range computors.PublicKeys {
		ids[i] = identity.Encode(pk, false)
	}

	c.JSON(http.StatusOK, gin.H{"computors": gin.H{
		"epoch":      computors.Epoch,
		"identities": ids,
	}})
}
