package state

import (
	"encoding/json"

	"github.com/yieldward/yield-ward-service/internal/types"
)

func (t *Tx) Stats(denom string) (*types.StakeStats, error) {
	return getJSON[types.StakeStats](t.bucket(bucketStats), []byte(denom))
}

func (t *Tx) SetStats(denom string, stats *types.StakeStats) error {
	return putJSON(t.bucket(bucketStats), []byte(denom), stats)
}

func (t *Tx) AllStats() ([]types.StakeStatsEntry, error) {
	var entries []types.StakeStatsEntry
	err := t.bucket(bucketStats).ForEach(func(k, v []byte) error {
		var stats types.StakeStats
		if err := json.Unmarshal(v, &stats); err != nil {
			return err
		}
		entries = append(entries, types.StakeStatsEntry{Denom: string(k), Stats: &stats})
		return nil
	})
	return entries, err
}
