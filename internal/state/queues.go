package state

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/yieldward/yield-ward-service/internal/types"
)

func paramsBucket(kind types.QueueKind) []byte {
	switch kind {
	case types.StakeQueue:
		return bucketStakeParams
	case types.UnstakeQueue:
		return bucketUnstakeParams
	default:
		panic(fmt.Sprintf("unknown queue kind %q", kind))
	}
}

func (t *Tx) QueueParams(kind types.QueueKind, denom string) (*types.QueueParams, error) {
	return getJSON[types.QueueParams](t.bucket(paramsBucket(kind)), []byte(denom))
}

func (t *Tx) SetQueueParams(kind types.QueueKind, denom string, params *types.QueueParams) error {
	return putJSON(t.bucket(paramsBucket(kind)), []byte(denom), params)
}

func (t *Tx) StakeItem(denom string, id uint64) (*types.StakeItem, error) {
	return getJSON[types.StakeItem](t.bucket(bucketStakes), itemKey(denom, id))
}

func (t *Tx) SetStakeItem(denom string, id uint64, item *types.StakeItem) error {
	return putJSON(t.bucket(bucketStakes), itemKey(denom, id), item)
}

func (t *Tx) UnstakeItem(denom string, id uint64) (*types.UnstakeItem, error) {
	return getJSON[types.UnstakeItem](t.bucket(bucketUnstakes), itemKey(denom, id))
}

func (t *Tx) SetUnstakeItem(denom string, id uint64, item *types.UnstakeItem) error {
	return putJSON(t.bucket(bucketUnstakes), itemKey(denom, id), item)
}

// StakeItems visits the stake items of one token in id order.
func (t *Tx) StakeItems(denom string, fn func(id uint64, item *types.StakeItem) error) error {
	return scanItems(t, bucketStakes, denom, fn)
}

// UnstakeItems visits the unstake items of one token in id order.
func (t *Tx) UnstakeItems(denom string, fn func(id uint64, item *types.UnstakeItem) error) error {
	return scanItems(t, bucketUnstakes, denom, fn)
}

func scanItems[T any](t *Tx, bucket []byte, denom string, fn func(id uint64, item *T) error) error {
	prefix := append([]byte(denom), 0)
	c := t.bucket(bucket).Cursor()
	for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
		var item T
		if err := json.Unmarshal(v, &item); err != nil {
			return err
		}
		if err := fn(binary.BigEndian.Uint64(k[len(prefix):]), &item); err != nil {
			return err
		}
	}
	return nil
}
