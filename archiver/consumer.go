package archiver

import (
	"context"
	"log/slog"

	"qubic.li/archiver/identity"
	"qubic.li/archiver/qubicnode"
	"qubic.li/archiver/transaction"
	"qubic.li/archiver/wire"
)

// DefaultConsumerCount is the default number of concurrent tick consumers.
const DefaultConsumerCount = 4

// RunConsumers starts n worker goroutines draining ticks from the producer
// and persisting what they find, blocking until ticks is closed and every
// worker has drained it.
func RunConsumers(ctx context.Context, n int, ticks <-chan uint32, client *qubicnode.PersistentClient, store *Store, log *slog.Logger) {
	if n <= 0 {
		n = DefaultConsumerCount
	}
	done := make(chan struct{}, n)
	for i := 0; i < n; i++ {
		go func(worker int) {
			defer func() { done <- struct{}{} }()
			consume(ctx, ticks, client, store, log.With("consumer", worker))
		}(i)
	}
	for i := 0; i < n; i++ {
		<-done
	}
}

// consume drains ticks until the channel closes. A failure processing one
// tick is logged and does not block later ticks: a consumer failure on a
// single tick must not prevent future ticks from being processed.
func consume(ctx context.Context, ticks <-chan uint32, client *qubicnode.PersistentClient, store *Store, log *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case tick, ok := <-ticks:
			if !ok {
				return
			}
			if err := processTick(client, store, tick); err != nil {
				log.Error("process tick failed", "tick", tick, "error", err)
			}
		}
	}
}

func processTick(client *qubicnode.PersistentClient, store *Store, tick uint32) error {
	txs, err := qubicnode.Do(client, func(c *qubicnode.Client) ([]transaction.TransactionWithData, error) {
		return c.RequestTickTransactions(tick, wire.AllTransactionFlags())
	})
	if err != nil {
		return err
	}

	for _, tx := range txs {
		if err := store.PutTransaction(tx); err != nil {
			return err
		}

		fromID := identity.Encode(tx.Raw.From, false)
		toID := identity.Encode(tx.Raw.To, false)

		if err := updateWallet(client, store, tick, fromID); err != nil {
			return err
		}
		if err := updateWallet(client, store, tick, toID); err != nil {
			return err
		}
	}
	return nil
}

// updateWallet fetches id's current spectrum entry from the peer and
// upserts the store's record for it.
func updateWallet(client *qubicnode.PersistentClient, store *Store, tick uint32, id string) error {
	pubKey, err := identity.Decode(id)
	if err != nil {
		return err
	}
	if identity.IsEmpty(pubKey) {
		return nil
	}

	resp, err := qubicnode.Do(client, func(c *qubicnode.Client) (wire.RespondedEntity, error) {
		return c.RequestEntity(pubKey)
	})
	if err != nil {
		return err
	}

	return store.UpsertWallet(id, resp.Entity.Balance(), resp.Tick)
}
