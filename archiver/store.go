// Package archiver implements the indexing gateway: a producer/consumer
// tick walk that materializes transactions and wallet balances into an
// embedded key/value store ordered by balance, plus the REST facade's
// read path over that store.
package archiver

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"qubic.li/archiver/identity"
	"qubic.li/archiver/transaction"
)

var (
	bucketWallets          = []byte("wallets")
	bucketWalletsByBalance = []byte("wallets_by_balance")
	bucketTransactions     = []byte("transactions")
)

// WalletEntry is the persisted record for one observed identity.
type WalletEntry struct {
	Identity     string `json:"identity"`
	Balance      uint64 `json:"balance,string"`
	ValidForTick uint32 `json:"validForTick"`
}

// Store wraps the embedded key/value database backing the archiver. Its two
// trees (wallets, transactions) are shared read/write between one producer
// and N consumers; bbolt enforces per-key atomicity on every write.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if absent) the bbolt database at path and ensures
// its buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("archiver: open store: %w", err)
	}

	s := &Store{db: db}
	if err := s.db.Update(func(tx *bolt.Tx) error {
		for _, b := range [][]byte{bucketWallets, bucketWalletsByBalance, bucketTransactions} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("create bucket %s: %w", b, err)
			}
		}
		return nil
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database file.
func (s *Store) Close() error { return s.db.Close() }

// balanceIndexKey is the 8-byte big-endian balance prefixed to an identity
// string, ordered so reverse iteration yields descending balances.
func balanceIndexKey(balance uint64, id string) []byte {
	key := make([]byte, 8+len(id))
	binary.BigEndian.PutUint64(key[:8], balance)
	copy(key[8:], id)
	return key
}

// PutTransaction persists tx under its lowercase-identity hash key.
func (s *Store) PutTransaction(tx transaction.TransactionWithData) error {
	value, err := json.Marshal(encodedTransaction{
		Raw:       tx.Raw,
		Kind:      tx.Payload.Kind.String(),
		Payload:   tx.Payload.Bytes(),
		Signature: tx.Signature,
	})
	if err != nil {
		return err
	}
	key := []byte(tx.HashIdentity())
	return s.db.Update(func(btx *bolt.Tx) error {
		return btx.Bucket(bucketTransactions).Put(key, value)
	})
}

// encodedTransaction is the store's on-disk shape for a transaction: the
// payload is kept in its already-discriminated byte form (Kind + Bytes())
// rather than round-tripped through TransactionWithDataFromBytes, since the
// store only ever needs to answer "what did we see", not re-verify wire
// framing.
type encodedTransaction struct {
	Raw       transaction.RawTransaction `json:"raw"`
	Kind      string                     `json:"kind"`
	Payload   []byte                     `json:"payload"`
	Signature [64]byte                   `json:"signature"`
}

// GetTransaction looks up a transaction by its lowercase identity hash.
func (s *Store) GetTransaction(hashIdentity string) (transaction.RawTransaction, []byte, bool, error) {
	var raw transaction.RawTransaction
	var payload []byte
	found := false
	err := s.db.View(func(btx *bolt.Tx) error {
		v := btx.Bucket(bucketTransactions).Get([]byte(hashIdentity))
		if v == nil {
			return nil
		}
		var enc encodedTransaction
		if err := json.Unmarshal(v, &enc); err != nil {
			return err
		}
		raw = enc.Raw
		payload = enc.Payload
		found = true
		return nil
	})
	return raw, payload, found, err
}

// UpsertWallet reads the primary record for id, only advances
// balance/validForTick if the new tick is newer, then writes the result
// under both the primary identity key and the balance-ordered index key.
// If the balance changed, the stale index entry is removed so the index
// never holds two entries for one identity.
func (s *Store) UpsertWallet(id string, balance uint64, tick uint32) error {
	if identity.IsEmpty(mustDecode(id)) {
		return nil
	}

	return s.db.Update(func(btx *bolt.Tx) error {
		wallets := btx.Bucket(bucketWallets)
		index := btx.Bucket(bucketWalletsByBalance)

		var existing WalletEntry
		hadExisting := false
		if raw := wallets.Get([]byte(id)); raw != nil {
			if err := json.Unmarshal(raw, &existing); err != nil {
				return err
			}
			hadExisting = true
		}

		entry := WalletEntry{Identity: id, Balance: balance, ValidForTick: tick}
		if hadExisting {
			if existing.ValidForTick >= tick {
				// Not newer: keep the existing record untouched.
				return nil
			}
		}

		if hadExisting {
			if err := index.Delete(balanceIndexKey(existing.Balance, id)); err != nil {
				return err
			}
		}

		encoded, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		if err := wallets.Put([]byte(id), encoded); err != nil {
			return err
		}
		return index.Put(balanceIndexKey(entry.Balance, id), encoded)
	})
}

func mustDecode(id string) [32]byte {
	b, err := identity.Decode(id)
	if err != nil {
		return [32]byte{}
	}
	return b
}

// GetWallet looks up the primary record for id.
func (s *Store) GetWallet(id string) (WalletEntry, bool, error) {
	var entry WalletEntry
	found := false
	err := s.db.View(func(btx *bolt.Tx) error {
		raw := btx.Bucket(bucketWallets).Get([]byte(id))
		if raw == nil {
			return nil
		}
		found = true
		return json.Unmarshal(raw, &entry)
	})
	return entry, found, err
}

// RichListSize reports how many wallets the index holds.
func (s *Store) RichListSize() (int, error) {
	var n int
	err := s.db.View(func(btx *bolt.Tx) error {
		n = btx.Bucket(bucketWalletsByBalance).Stats().KeyN
		return nil
	})
	return n, err
}

// RichList returns up to size wallets starting at the page boundary
// startIndex into the descending-balance ordering.
func (s *Store) RichList(startIndex, size int) ([]WalletEntry, error) {
	var out []WalletEntry
	err := s.db.View(func(btx *bolt.Tx) error {
		c := btx.Bucket(bucketWalletsByBalance).Cursor()
		i := 0
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if i < startIndex {
				i++
				continue
			}
			if len(out) >= size {
				break
			}
			var entry WalletEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return err
			}
			out = append(out, entry)
			i++
		}
		return nil
	})
	return out, err
}
