package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStages_DecodeKnownValuesOnly(t *testing.T) {
	var item struct {
		Stake   StakeStage   `json:"stake"`
		Unstake UnstakeStage `json:"unstake"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"stake":"executed","unstake":"registered"}`), &item))
	assert.Equal(t, StakeExecuted, item.Stake)
	assert.Equal(t, UnstakeRegistered, item.Unstake)

	assert.Error(t, json.Unmarshal([]byte(`{"stake":"registered"}`), &item))
	assert.Error(t, json.Unmarshal([]byte(`{"unstake":"waiting_execution"}`), &item))
	assert.Error(t, json.Unmarshal([]byte(`{"unstake":3}`), &item))
}
