// Package state is the engine's key-value storage. Every engine operation
// runs inside a single Store.Update call, so its writes commit together or
// not at all.
package state

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketContract      = []byte("contract_config")
	bucketTokens        = []byte("token_config_map")
	bucketTokenBySource = []byte("token_denom_by_source_map")
	bucketTokenByLpt    = []byte("token_denom_by_lpt_address")
	bucketStats         = []byte("stake_stats_map")
	bucketStakeParams   = []byte("stake_params")
	bucketUnstakeParams = []byte("unstake_params")
	bucketStakes        = []byte("stakes_map")
	bucketUnstakes      = []byte("unstakes_map")
	bucketOutbox        = []byte("outbox")

	allBuckets = [][]byte{
		bucketContract, bucketTokens, bucketTokenBySource, bucketTokenByLpt, bucketStats,
		bucketStakeParams, bucketUnstakeParams, bucketStakes, bucketUnstakes, bucketOutbox,
	}

	keyContractConfig = []byte("contract")
	keyBridgeConfig   = []byte("bridge")

	ErrNotFound = errors.New("not found")
)

// Store is the transactional key-value store holding all engine state.
type Store interface {
	View(ctx context.Context, fn func(tx *Tx) error) error
	Update(ctx context.Context, fn func(tx *Tx) error) error
	Ping(ctx context.Context) error
	Close() error
}

type LocalStore struct {
	db *bolt.DB
}

func NewLocalStore(path string, openTimeout time.Duration) (*LocalStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range allBuckets {
			if _, e := tx.CreateBucketIfNotExists(name); e != nil {
				return e
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &LocalStore{db: db}, nil
}

func (s *LocalStore) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

// Update runs fn in a read-write transaction. Any error returned by fn rolls
// back every write made through the Tx.
func (s *LocalStore) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(btx *bolt.Tx) error {
		return fn(&Tx{tx: btx})
	})
}

func (s *LocalStore) Ping(ctx context.Context) error {
	return s.View(ctx, func(tx *Tx) error {
		if tx.tx.Bucket(bucketTokens) == nil {
			return errors.New("token bucket is missing")
		}
		return nil
	})
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

// Tx exposes typed accessors over one bbolt transaction.
type Tx struct {
	tx *bolt.Tx
}

func (t *Tx) bucket(name []byte) *bolt.Bucket {
	return t.tx.Bucket(name)
}

func getJSON[T any](b *bolt.Bucket, key []byte) (*T, error) {
	v := b.Get(key)
	if v == nil {
		return nil, ErrNotFound
	}
	var out T
	if err := json.Unmarshal(v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func putJSON(b *bolt.Bucket, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return b.Put(key, data)
}

// itemKey orders items of one token by id: denom | 0x00 | big-endian id.
func itemKey(denom string, id uint64) []byte {
	key := make([]byte, 0, len(denom)+9)
	key = append(key, denom...)
	key = append(key, 0)
	return binary.BigEndian.AppendUint64(key, id)
}

func seqKey(seq uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, seq)
}
