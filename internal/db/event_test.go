package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/yieldward/yield-ward-service/internal/config"
	"github.com/yieldward/yield-ward-service/internal/db/model"
	"github.com/yieldward/yield-ward-service/internal/types"
)

const testDbName = "yield-ward-test"

func newMockDatabase(mt *mtest.T, limit int64) *Database {
	return &Database{
		DbName: testDbName,
		Client: mt.Client,
		cfg:    config.DbConfig{DbName: testDbName, MaxPaginationLimit: limit},
	}
}

func eventDoc(seq int64, eventType string) bson.D {
	return bson.D{
		{Key: "_id", Value: seq},
		{Key: "type", Value: eventType},
		{Key: "attributes", Value: bson.A{bson.D{{Key: "key", Value: "stake_id"}, {Key: "value", Value: "1"}}}},
		{Key: "archived_at", Value: int64(1700000000)},
	}
}

func TestSaveEvent(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upserts by sequence", func(mt *mtest.T) {
		db := newMockDatabase(mt, 10)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		err := db.SaveEvent(context.Background(), 7, types.NewEvent("stake").AddUint("stake_id", 1))
		require.NoError(t, err)
	})

	mt.Run("surfaces write errors", func(mt *mtest.T) {
		db := newMockDatabase(mt, 10)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "duplicate key",
		}))

		err := db.SaveEvent(context.Background(), 7, types.NewEvent("stake"))
		assert.Error(t, err)
	})
}

func TestFindEvents(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := testDbName + "." + model.EventCollection

	mt.Run("full page returns a pagination token", func(mt *mtest.T) {
		db := newMockDatabase(mt, 2)
		first := mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, eventDoc(9, "stake"), eventDoc(8, "stake"))
		mt.AddMockResponses(first)

		result, err := db.FindEvents(context.Background(), "stake", "")
		require.NoError(t, err)
		require.Len(t, result.Data, 2)
		assert.Equal(t, int64(9), result.Data[0].Seq)
		assert.Equal(t, "stake_id", result.Data[0].Attributes[0].Key)
		require.NotEmpty(t, result.PaginationToken)

		decoded, err := model.DecodePaginationToken[model.EventPagination](result.PaginationToken)
		require.NoError(t, err)
		assert.Equal(t, int64(8), decoded.Seq)
	})

	mt.Run("short page has no token", func(mt *mtest.T) {
		db := newMockDatabase(mt, 5)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, eventDoc(3, "unstake")))

		result, err := db.FindEvents(context.Background(), "", "")
		require.NoError(t, err)
		assert.Len(t, result.Data, 1)
		assert.Empty(t, result.PaginationToken)
	})

	mt.Run("rejects a malformed token", func(mt *mtest.T) {
		db := newMockDatabase(mt, 5)

		_, err := db.FindEvents(context.Background(), "", "%%%")
		require.Error(t, err)
		assert.True(t, IsInvalidPaginationTokenError(err))
	})
}

func TestUnprocessableMessages(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := testDbName + "." + model.UnprocessableMsgCollection

	mt.Run("save and list", func(mt *mtest.T) {
		db := newMockDatabase(mt, 5)
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		require.NoError(t, db.SaveUnprocessableMessage(context.Background(), `{"payload":"0x00"}`, "receipt-1"))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "message_body", Value: `{"payload":"0x00"}`},
			{Key: "receipt", Value: "receipt-1"},
		}))
		msgs, err := db.FindUnprocessableMessages(context.Background())
		require.NoError(t, err)
		require.Len(t, msgs, 1)
		assert.Equal(t, "receipt-1", msgs[0].Receipt)
	})
}
