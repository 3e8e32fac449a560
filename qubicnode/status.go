package qubicnode

import "qubic.li/archiver/wire"

// TransactionStatus is the outcome of a transaction-status check.
type TransactionStatus int

const (
	StatusIncluded TransactionStatus = iota
	StatusNotFound
)

func (s TransactionStatus) String() string {
	if s == StatusIncluded {
		return "INCLUDED"
	}
	return "NOT_FOUND"
}

// TransactionStatus fetches tick's summary and checks whether hash appears
// among its transaction digests; if not, it falls back to fetching the
// tick's full transaction set and scanning that, covering the case where a
// digest slot is recycled or the tick summary is stale.
func (c *Client) TransactionStatus(hash [32]byte, tick uint32) (TransactionStatus, error) {
	td, err := c.RequestTickData(tick)
	if err != nil {
		return StatusNotFound, err
	}
	if td.ContainsDigest(hash) {
		return StatusIncluded, nil
	}

	txs, err := c.RequestTickTransactions(tick, wire.AllTransactionFlags())
	if err != nil {
		return StatusNotFound, err
	}
	for _, tx := range txs {
		if tx.Hash() == hash {
			return StatusIncluded, nil
		}
	}
	return StatusNotFound, nil
}
