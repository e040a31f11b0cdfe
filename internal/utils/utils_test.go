package utils

import (
	"context"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHomeAddress(t *testing.T, prefix string) string {
	t.Helper()
	data, err := bech32.ConvertBits([]byte("01234567890123456789"), 8, 5, true)
	require.NoError(t, err)
	addr, err := bech32.Encode(prefix, data)
	require.NoError(t, err)
	return addr
}

func TestValidateHomeAddress(t *testing.T) {
	addr := testHomeAddress(t, "ward")
	require.NoError(t, ValidateHomeAddress(addr, "ward"))

	assert.Error(t, ValidateHomeAddress(addr, "cosmos"))
	assert.Error(t, ValidateHomeAddress("ward1notbech32", "ward"))
	assert.Error(t, ValidateHomeAddress("", "ward"))
}

func TestNormalizeRemoteAddress(t *testing.T) {
	got, err := NormalizeRemoteAddress("0xAbCdEf0123456789aBcDeF0123456789AbCdEf01")
	require.NoError(t, err)
	assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", got)

	_, err = NormalizeRemoteAddress("0x1234")
	assert.Error(t, err)
	_, err = NormalizeRemoteAddress("not-an-address")
	assert.Error(t, err)
}

func TestDecodePayloadHex(t *testing.T) {
	b, err := DecodePayloadHex("0x0102ff")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02, 0xff}, b)

	_, err = DecodePayloadHex("0102")
	assert.Error(t, err)
}

func TestSleep(t *testing.T) {
	require.NoError(t, Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	assert.ErrorIs(t, Sleep(ctx, time.Hour), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
