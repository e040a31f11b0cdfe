package codec

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/holiman/uint256"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yieldward/yield-ward-service/internal/types"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestPayloadLayoutsMatchGoldenFiles(t *testing.T) {
	g := newGoldie(t)

	unstake, ok := EncodeUnstakeRequest(UnstakeRequest{LpTokenAmount: uint256.NewInt(1001), UnstakeID: 1})
	require.True(t, ok)
	stakeResp, ok := EncodeStakeResponse(StakeResponse{
		Status: types.StatusSuccess, StakeID: 1, LpTokenAmount: uint256.NewInt(1001),
	})
	require.True(t, ok)

	fixtures := map[string][]byte{
		"stake_request":                     EncodeStakeRequest(StakeRequest{StakeID: 1}),
		"unstake_request":                   unstake,
		"reinit_request":                    EncodeReinitRequest(),
		"stake_response_success":            stakeResp,
		"unstake_response_fail_with_reinit": EncodeUnstakeResponse(UnstakeResponse{Status: types.StatusFail, UnstakeID: 7, ReinitUnstakeID: 3}),
		"reinit_response":                   EncodeReinitResponse(ReinitResponse{ReinitUnstakeID: 1}),
	}
	for name, payload := range fixtures {
		g.Assert(t, name, []byte(hex.EncodeToString(payload)))
	}
}

func TestStakeRequestRoundTrip(t *testing.T) {
	for _, id := range []uint64{0, 1, 42, math.MaxUint64} {
		payload := EncodeStakeRequest(StakeRequest{StakeID: id})
		require.Len(t, payload, RequestLength)
		assert.Equal(t, byte(types.ActionStake), payload[RequestLength-1])

		decoded, ok := DecodeStakeRequest(payload)
		require.True(t, ok)
		assert.Equal(t, id, decoded.StakeID)
	}
}

func TestUnstakeRequestRoundTrip(t *testing.T) {
	maxU128 := new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
	for _, amount := range []*uint256.Int{uint256.NewInt(0), uint256.NewInt(1001), maxU128} {
		payload, ok := EncodeUnstakeRequest(UnstakeRequest{LpTokenAmount: amount, UnstakeID: 9})
		require.True(t, ok)
		assert.Equal(t, byte(types.ActionUnstake), payload[RequestLength-1])

		decoded, ok := DecodeUnstakeRequest(payload)
		require.True(t, ok)
		assert.True(t, amount.Eq(decoded.LpTokenAmount))
		assert.Equal(t, uint64(9), decoded.UnstakeID)
	}
}

func TestEncodeUnstakeRequestRejectsWideAmount(t *testing.T) {
	wide := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	_, ok := EncodeUnstakeRequest(UnstakeRequest{LpTokenAmount: wide, UnstakeID: 1})
	assert.False(t, ok)
}

func TestStakeResponseRoundTrip(t *testing.T) {
	in := StakeResponse{
		Status:          types.StatusFail,
		StakeID:         5,
		ReinitUnstakeID: 2,
		LpTokenAmount:   uint256.NewInt(77),
	}
	payload, ok := EncodeStakeResponse(in)
	require.True(t, ok)
	require.Len(t, payload, StakeResponseLength)

	out, ok := DecodeStakeResponse(payload)
	require.True(t, ok)
	assert.Equal(t, in.Status, out.Status)
	assert.Equal(t, in.StakeID, out.StakeID)
	assert.Equal(t, in.ReinitUnstakeID, out.ReinitUnstakeID)
	assert.True(t, in.LpTokenAmount.Eq(out.LpTokenAmount))
}

func TestUnstakeAndReinitResponseRoundTrip(t *testing.T) {
	unstake := UnstakeResponse{Status: types.StatusSuccess, UnstakeID: 3, ReinitUnstakeID: 1}
	decoded, ok := DecodeUnstakeResponse(EncodeUnstakeResponse(unstake))
	require.True(t, ok)
	assert.Equal(t, unstake, decoded)

	reinit := ReinitResponse{ReinitUnstakeID: 12}
	decodedReinit, ok := DecodeReinitResponse(EncodeReinitResponse(reinit))
	require.True(t, ok)
	assert.Equal(t, reinit, decodedReinit)
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	for n := 0; n < 40; n++ {
		b := make([]byte, n)
		if n != RequestLength {
			_, ok := DecodeStakeRequest(b)
			assert.False(t, ok, "stake request length %d", n)
			_, ok = DecodeUnstakeRequest(b)
			assert.False(t, ok, "unstake request length %d", n)
		}
		if n != StakeResponseLength {
			_, ok := DecodeStakeResponse(b)
			assert.False(t, ok, "stake response length %d", n)
		}
		if n != UnstakeResponseLength {
			_, ok := DecodeUnstakeResponse(b)
			assert.False(t, ok, "unstake response length %d", n)
		}
		if n != ReinitResponseLength {
			_, ok := DecodeReinitResponse(b)
			assert.False(t, ok, "reinit response length %d", n)
		}
	}
}

func TestDecodeRejectsUnknownStatus(t *testing.T) {
	payload := EncodeUnstakeResponse(UnstakeResponse{UnstakeID: 1})
	payload[0] = 2
	_, ok := DecodeUnstakeResponse(payload)
	assert.False(t, ok)

	stake := make([]byte, StakeResponseLength)
	stake[0] = 0xff
	_, ok = DecodeStakeResponse(stake)
	assert.False(t, ok)
}

func TestEnvelopeSplit(t *testing.T) {
	body := EncodeReinitResponse(ReinitResponse{ReinitUnstakeID: 4})
	envelope := WrapEnvelope(types.ActionReinit, body)

	tag, inner, ok := SplitEnvelope(envelope)
	require.True(t, ok)
	assert.Equal(t, byte(types.ActionReinit), tag)
	assert.Equal(t, body, inner)

	_, _, ok = SplitEnvelope(nil)
	assert.False(t, ok)
}
