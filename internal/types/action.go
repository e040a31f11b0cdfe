package types

import "fmt"

// ActionType is the wire tag that identifies a request or response kind.
type ActionType uint8

const (
	ActionStake   ActionType = 0
	ActionUnstake ActionType = 1
	ActionReinit  ActionType = 2
)

func (a ActionType) String() string {
	switch a {
	case ActionStake:
		return "stake"
	case ActionUnstake:
		return "unstake"
	case ActionReinit:
		return "reinit"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(a))
	}
}

func ActionTypeFromByte(b byte) (ActionType, error) {
	switch ActionType(b) {
	case ActionStake, ActionUnstake, ActionReinit:
		return ActionType(b), nil
	default:
		return 0, fmt.Errorf("invalid action type: %d", b)
	}
}

// Status is the remote outcome reported in a response.
type Status uint8

const (
	StatusSuccess Status = 0
	StatusFail    Status = 1
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "fail"
}

func StatusFromByte(b byte) (Status, bool) {
	switch Status(b) {
	case StatusSuccess, StatusFail:
		return Status(b), true
	default:
		return 0, false
	}
}
