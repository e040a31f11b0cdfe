package types

import (
	"strconv"

	"github.com/holiman/uint256"
)

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is an observable record of a state change, keyed by type.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

func NewEvent(eventType string) *Event {
	return &Event{Type: eventType}
}

func (e *Event) Add(key, value string) *Event {
	e.Attributes = append(e.Attributes, Attribute{Key: key, Value: value})
	return e
}

func (e *Event) AddUint(key string, value uint64) *Event {
	return e.Add(key, strconv.FormatUint(value, 10))
}

func (e *Event) AddAmount(key string, value *uint256.Int) *Event {
	if value == nil {
		return e.Add(key, "0")
	}
	return e.Add(key, value.Dec())
}

// Get returns the value of the first attribute with the given key.
func (e *Event) Get(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

type LedgerOp string

const (
	LedgerMint     LedgerOp = "mint"
	LedgerBurn     LedgerOp = "burn"
	LedgerTransfer LedgerOp = "transfer"
)

// LedgerInstruction asks the token ledger to move value. Token is either a
// deposit denom (transfers of principal) or a share-token address.
type LedgerInstruction struct {
	Op        LedgerOp     `json:"op"`
	Token     string       `json:"token"`
	Recipient string       `json:"recipient,omitempty"`
	Amount    *uint256.Int `json:"amount"`
}

type OutboxKind string

const (
	OutboxGmp    OutboxKind = "gmp"
	OutboxLedger OutboxKind = "ledger"
	OutboxEvent  OutboxKind = "event"
)
