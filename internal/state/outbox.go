package state

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/yieldward/yield-ward-service/internal/types"
)

// OutboxRecord is a side effect recorded in the same transaction as the
// state change that produced it. Records are relayed in sequence order.
type OutboxRecord struct {
	Seq       uint64           `json:"-"`
	Kind      types.OutboxKind `json:"kind"`
	Body      json.RawMessage  `json:"body"`
	CreatedAt int64            `json:"created_at"`
	Attempts  int              `json:"attempts"`
}

func (t *Tx) AppendOutbox(kind types.OutboxKind, body any) (uint64, error) {
	b := t.bucket(bucketOutbox)
	seq, err := b.NextSequence()
	if err != nil {
		return 0, err
	}
	data, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	record := OutboxRecord{Kind: kind, Body: data, CreatedAt: time.Now().Unix()}
	return seq, putJSON(b, seqKey(seq), record)
}

// PendingOutbox returns up to limit records with the lowest sequence numbers.
func (t *Tx) PendingOutbox(limit int) ([]OutboxRecord, error) {
	var records []OutboxRecord
	c := t.bucket(bucketOutbox).Cursor()
	for k, v := c.First(); k != nil && len(records) < limit; k, v = c.Next() {
		var record OutboxRecord
		if err := json.Unmarshal(v, &record); err != nil {
			return nil, err
		}
		record.Seq = binary.BigEndian.Uint64(k)
		records = append(records, record)
	}
	return records, nil
}

func (t *Tx) SetOutboxRecord(record OutboxRecord) error {
	return putJSON(t.bucket(bucketOutbox), seqKey(record.Seq), record)
}

func (t *Tx) DeleteOutbox(seq uint64) error {
	return t.bucket(bucketOutbox).Delete(seqKey(seq))
}

func (t *Tx) OutboxLen() int {
	return t.bucket(bucketOutbox).Stats().KeyN
}
