// Package codec translates requests and responses to and from the fixed
// big-endian byte layouts exchanged with the remote yield contract.
//
// Requests are 32 bytes with the ActionType tag in the last byte (the Reinit
// request is the bare tag). Inbound responses arrive wrapped in an envelope
// whose first byte is the ActionType used for routing; SplitEnvelope strips
// it before the body is decoded.
package codec

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/yieldward/yield-ward-service/internal/types"
)

const (
	RequestLength         = 32
	StakeResponseLength   = 33
	UnstakeResponseLength = 17
	ReinitResponseLength  = 8

	amountLength = 16
)

type StakeRequest struct {
	StakeID uint64
}

type UnstakeRequest struct {
	LpTokenAmount *uint256.Int
	UnstakeID     uint64
}

type StakeResponse struct {
	Status          types.Status
	StakeID         uint64
	ReinitUnstakeID uint64
	LpTokenAmount   *uint256.Int
}

type UnstakeResponse struct {
	Status          types.Status
	UnstakeID       uint64
	ReinitUnstakeID uint64
}

type ReinitResponse struct {
	ReinitUnstakeID uint64
}

// EncodeStakeRequest lays out 23 zero bytes, the stake id and the Stake tag.
func EncodeStakeRequest(req StakeRequest) []byte {
	payload := make([]byte, RequestLength)
	binary.BigEndian.PutUint64(payload[23:31], req.StakeID)
	payload[31] = byte(types.ActionStake)
	return payload
}

func DecodeStakeRequest(payload []byte) (StakeRequest, bool) {
	if len(payload) != RequestLength || payload[31] != byte(types.ActionStake) {
		return StakeRequest{}, false
	}
	if !allZero(payload[:23]) {
		return StakeRequest{}, false
	}
	return StakeRequest{StakeID: binary.BigEndian.Uint64(payload[23:31])}, true
}

// EncodeUnstakeRequest lays out 7 zero bytes, the 128-bit share amount, the
// unstake id and the Unstake tag. It reports false when the amount does not
// fit into 128 bits.
func EncodeUnstakeRequest(req UnstakeRequest) ([]byte, bool) {
	if !types.IsU128(req.LpTokenAmount) {
		return nil, false
	}
	payload := make([]byte, RequestLength)
	putAmount(payload[7:23], req.LpTokenAmount)
	binary.BigEndian.PutUint64(payload[23:31], req.UnstakeID)
	payload[31] = byte(types.ActionUnstake)
	return payload, true
}

func DecodeUnstakeRequest(payload []byte) (UnstakeRequest, bool) {
	if len(payload) != RequestLength || payload[31] != byte(types.ActionUnstake) {
		return UnstakeRequest{}, false
	}
	if !allZero(payload[:7]) {
		return UnstakeRequest{}, false
	}
	return UnstakeRequest{
		LpTokenAmount: new(uint256.Int).SetBytes(payload[7:23]),
		UnstakeID:     binary.BigEndian.Uint64(payload[23:31]),
	}, true
}

func EncodeReinitRequest() []byte {
	return []byte{byte(types.ActionReinit)}
}

func EncodeStakeResponse(resp StakeResponse) ([]byte, bool) {
	amount := resp.LpTokenAmount
	if amount == nil {
		amount = new(uint256.Int)
	}
	if !types.IsU128(amount) {
		return nil, false
	}
	payload := make([]byte, StakeResponseLength)
	payload[0] = byte(resp.Status)
	binary.BigEndian.PutUint64(payload[1:9], resp.StakeID)
	binary.BigEndian.PutUint64(payload[9:17], resp.ReinitUnstakeID)
	putAmount(payload[17:33], amount)
	return payload, true
}

func DecodeStakeResponse(payload []byte) (StakeResponse, bool) {
	if len(payload) != StakeResponseLength {
		return StakeResponse{}, false
	}
	status, ok := types.StatusFromByte(payload[0])
	if !ok {
		return StakeResponse{}, false
	}
	return StakeResponse{
		Status:          status,
		StakeID:         binary.BigEndian.Uint64(payload[1:9]),
		ReinitUnstakeID: binary.BigEndian.Uint64(payload[9:17]),
		LpTokenAmount:   new(uint256.Int).SetBytes(payload[17:33]),
	}, true
}

func EncodeUnstakeResponse(resp UnstakeResponse) []byte {
	payload := make([]byte, UnstakeResponseLength)
	payload[0] = byte(resp.Status)
	binary.BigEndian.PutUint64(payload[1:9], resp.UnstakeID)
	binary.BigEndian.PutUint64(payload[9:17], resp.ReinitUnstakeID)
	return payload
}

func DecodeUnstakeResponse(payload []byte) (UnstakeResponse, bool) {
	if len(payload) != UnstakeResponseLength {
		return UnstakeResponse{}, false
	}
	status, ok := types.StatusFromByte(payload[0])
	if !ok {
		return UnstakeResponse{}, false
	}
	return UnstakeResponse{
		Status:          status,
		UnstakeID:       binary.BigEndian.Uint64(payload[1:9]),
		ReinitUnstakeID: binary.BigEndian.Uint64(payload[9:17]),
	}, true
}

func EncodeReinitResponse(resp ReinitResponse) []byte {
	payload := make([]byte, ReinitResponseLength)
	binary.BigEndian.PutUint64(payload, resp.ReinitUnstakeID)
	return payload
}

func DecodeReinitResponse(payload []byte) (ReinitResponse, bool) {
	if len(payload) != ReinitResponseLength {
		return ReinitResponse{}, false
	}
	return ReinitResponse{ReinitUnstakeID: binary.BigEndian.Uint64(payload)}, true
}

// WrapEnvelope prefixes a response body with its routing tag.
func WrapEnvelope(action types.ActionType, body []byte) []byte {
	envelope := make([]byte, 0, len(body)+1)
	envelope = append(envelope, byte(action))
	return append(envelope, body...)
}

// SplitEnvelope returns the raw routing byte and the body behind it. It
// reports false only for an empty envelope; the tag is validated by the
// caller so an unknown tag surfaces as InvalidActionType.
func SplitEnvelope(envelope []byte) (byte, []byte, bool) {
	if len(envelope) == 0 {
		return 0, nil, false
	}
	return envelope[0], envelope[1:], true
}

func putAmount(dst []byte, amount *uint256.Int) {
	b := amount.Bytes32()
	copy(dst, b[32-amountLength:])
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}
