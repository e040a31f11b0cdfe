package state

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldward/yield-ward-service/internal/types"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewLocalStore(filepath.Join(dir, "state.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_PingAfterOpen(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.SetToken("uusdc", &types.TokenConfig{Chain: "ethereum"}))
		require.NoError(t, tx.SetQueueParams(types.StakeQueue, "uusdc", &types.QueueParams{NextID: 7}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	err = s.View(ctx, func(tx *Tx) error {
		assert.False(t, tx.HasToken("uusdc"))
		_, err := tx.QueueParams(types.StakeQueue, "uusdc")
		assert.ErrorIs(t, err, ErrNotFound)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_CancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Update(ctx, func(tx *Tx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_ItemsAreScopedPerToken(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, func(tx *Tx) error {
		for _, denom := range []string{"t1", "t10", "t2"} {
			for id := uint64(1); id <= 3; id++ {
				item := &types.StakeItem{
					User:        denom,
					TokenAmount: uint256.NewInt(id * 100),
					ActionStage: types.StakeWaitingExecution,
				}
				if err := tx.SetStakeItem(denom, id, item); err != nil {
					return err
				}
			}
		}
		return nil
	})
	require.NoError(t, err)

	var ids []uint64
	err = s.View(ctx, func(tx *Tx) error {
		return tx.StakeItems("t1", func(id uint64, item *types.StakeItem) error {
			assert.Equal(t, "t1", item.User)
			ids = append(ids, id)
			return nil
		})
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, ids)
}

func TestStore_AmountsSurviveJSON(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	big, err := uint256.FromDecimal("340282366920938463463374607431768211455")
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.SetUnstakeItem("t1", 1, &types.UnstakeItem{
			User: "owner", LpTokenAmount: big, ActionStage: types.UnstakeRegistered,
		})
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		item, err := tx.UnstakeItem("t1", 1)
		require.NoError(t, err)
		assert.True(t, big.Eq(item.LpTokenAmount))
		assert.Nil(t, item.TokenAmount)
		assert.Equal(t, types.UnstakeRegistered, item.ActionStage)
		return nil
	}))
}

func TestIndex_UpdateMovesEntry(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	oldKey := SourceKey("ethereum", "0xaaaa")
	newKey := SourceKey("ethereum", "0xbbbb")

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		if err := TokenBySource.Insert(tx, oldKey, "t1"); err != nil {
			return err
		}
		return TokenBySource.Update(tx, oldKey, newKey, "t1")
	}))

	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		_, err := TokenBySource.Lookup(tx, oldKey)
		assert.ErrorIs(t, err, ErrNotFound)
		denom, err := TokenBySource.Lookup(tx, newKey)
		require.NoError(t, err)
		assert.Equal(t, "t1", denom)
		return nil
	}))
}

func TestIndex_RejectsConflicts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Update(ctx, func(tx *Tx) error {
		require.NoError(t, TokenByLpt.Insert(tx, LptKey("ward1lpa"), "t1"))
		require.NoError(t, TokenByLpt.Insert(tx, LptKey("ward1lpb"), "t2"))
		// re-inserting the same binding is a no-op
		require.NoError(t, TokenByLpt.Insert(tx, LptKey("ward1lpa"), "t1"))

		assert.ErrorIs(t, TokenByLpt.Insert(tx, LptKey("ward1lpa"), "t2"), ErrIndexConflict)
		assert.ErrorIs(t, TokenByLpt.Update(tx, LptKey("ward1lpb"), LptKey("ward1lpa"), "t2"), ErrIndexConflict)
		return nil
	})
	require.NoError(t, err)
}

func TestOutbox_OrderAndDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		for i := 0; i < 3; i++ {
			if _, err := tx.AppendOutbox(types.OutboxEvent, types.NewEvent("e").AddUint("i", uint64(i))); err != nil {
				return err
			}
		}
		return nil
	}))

	var records []OutboxRecord
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		var err error
		records, err = tx.PendingOutbox(2)
		assert.Equal(t, 3, tx.OutboxLen())
		return err
	}))
	require.Len(t, records, 2)
	assert.Less(t, records[0].Seq, records[1].Seq)

	require.NoError(t, s.Update(ctx, func(tx *Tx) error {
		return tx.DeleteOutbox(records[0].Seq)
	}))
	require.NoError(t, s.View(ctx, func(tx *Tx) error {
		rest, err := tx.PendingOutbox(10)
		require.NoError(t, err)
		require.Len(t, rest, 2)
		assert.Equal(t, records[1].Seq, rest[0].Seq)
		return nil
	}))
}
