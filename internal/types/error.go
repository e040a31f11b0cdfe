package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

func (e ErrorCode) String() string {
	return string(e)
}

const (
	// 5XX
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ArithmeticUnderflow  ErrorCode = "ARITHMETIC_UNDERFLOW"
	ArithmeticOverflow   ErrorCode = "ARITHMETIC_OVERFLOW"
	RequestTimeout       ErrorCode = "REQUEST_TIMEOUT"

	// 4XX
	ValidationError            ErrorCode = "VALIDATION_ERROR"
	NotFound                   ErrorCode = "NOT_FOUND"
	BadRequest                 ErrorCode = "BAD_REQUEST"
	Forbidden                  ErrorCode = "FORBIDDEN"
	Unauthorized               ErrorCode = "UNAUTHORIZED"
	UnknownToken               ErrorCode = "UNKNOWN_TOKEN"
	UnknownTokenBySource       ErrorCode = "UNKNOWN_TOKEN_BY_SOURCE"
	UnknownLpToken             ErrorCode = "UNKNOWN_LP_TOKEN"
	StakeNotFound              ErrorCode = "STAKE_NOT_FOUND"
	UnstakeNotFound            ErrorCode = "UNSTAKE_NOT_FOUND"
	TokenAlreadyExists         ErrorCode = "TOKEN_ALREADY_EXISTS"
	TokenIndexConflict         ErrorCode = "TOKEN_INDEX_CONFLICT"
	StakeDisabled              ErrorCode = "STAKE_DISABLED"
	UnstakeDisabled            ErrorCode = "UNSTAKE_DISABLED"
	MintIsNotAllowed           ErrorCode = "MINT_IS_NOT_ALLOWED"
	ZeroAmount                 ErrorCode = "ZERO_AMOUNT"
	InvalidActionType          ErrorCode = "INVALID_ACTION_TYPE"
	InvalidMessagePayload      ErrorCode = "INVALID_MESSAGE_PAYLOAD"
	InvalidToken               ErrorCode = "INVALID_TOKEN"
	InvalidFundsShape          ErrorCode = "INVALID_FUNDS_SHAPE"
	StakeRequestInvalidStage   ErrorCode = "STAKE_REQUEST_INVALID_STAGE"
	UnstakeRequestInvalidStage ErrorCode = "UNSTAKE_REQUEST_INVALID_STAGE"
)

// Error represents an error with an HTTP status code and an application-specific error code.
type Error struct {
	Err        error
	StatusCode int
	ErrorCode  ErrorCode
}

const UninitializedStatusCode = 0

func (e *Error) Error() string {
	return e.Err.Error()
}

// NewError creates a new Error with the provided status code, error code, and underlying error.
// If the status code is not provided (0), it defaults to http.StatusInternalServerError(500).
// If the error code is empty, it defaults to INTERNAL_SERVICE_ERROR.
func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	if statusCode == UninitializedStatusCode {
		statusCode = http.StatusInternalServerError
	}
	if errorCode == "" {
		errorCode = InternalServiceError
	}
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewInternalServiceError(err error) *Error {
	return &Error{
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  InternalServiceError,
		Err:        err,
	}
}

// IsClientError reports whether the error was caused by the request itself.
// Re-delivering the same request can never make it succeed.
func (e *Error) IsClientError() bool {
	return e.StatusCode >= http.StatusBadRequest && e.StatusCode < http.StatusInternalServerError
}

func NewUnauthorizedError(sender string) *Error {
	return NewErrorWithMsg(http.StatusForbidden, Unauthorized, fmt.Sprintf("unauthorized sender: %s", sender))
}

func NewUnknownTokenError(denom string) *Error {
	return NewErrorWithMsg(http.StatusNotFound, UnknownToken, fmt.Sprintf("unknown token: %s", denom))
}

func NewUnknownTokenBySourceError(chain, address string) *Error {
	return NewErrorWithMsg(
		http.StatusNotFound, UnknownTokenBySource,
		fmt.Sprintf("unknown token for source chain %s and address %s", chain, address),
	)
}

func NewUnknownLpTokenError(address string) *Error {
	return NewErrorWithMsg(http.StatusNotFound, UnknownLpToken, fmt.Sprintf("unknown lp token: %s", address))
}

func NewInvalidTokenError(actual, expected string) *Error {
	return NewErrorWithMsg(
		http.StatusBadRequest, InvalidToken,
		fmt.Sprintf("invalid token: got %s, expected %s", actual, expected),
	)
}

func NewInvalidFundsError(msg string) *Error {
	return NewErrorWithMsg(http.StatusBadRequest, InvalidFundsShape, msg)
}

func NewInvalidPayloadError() *Error {
	return NewErrorWithMsg(http.StatusBadRequest, InvalidMessagePayload, "invalid message payload")
}

func NewStakeInvalidStageError(symbol string, id uint64) *Error {
	return NewErrorWithMsg(
		http.StatusConflict, StakeRequestInvalidStage,
		fmt.Sprintf("stake request %s:%d is not waiting for execution", symbol, id),
	)
}

func NewUnstakeInvalidStageError(symbol string, id uint64) *Error {
	return NewErrorWithMsg(
		http.StatusConflict, UnstakeRequestInvalidStage,
		fmt.Sprintf("unstake request %s:%d has invalid stage", symbol, id),
	)
}

func NewStakeNotFoundError(denom string, id uint64) *Error {
	return NewErrorWithMsg(http.StatusNotFound, StakeNotFound, fmt.Sprintf("stake request %s:%d not found", denom, id))
}

func NewUnstakeNotFoundError(denom string, id uint64) *Error {
	return NewErrorWithMsg(http.StatusNotFound, UnstakeNotFound, fmt.Sprintf("unstake request %s:%d not found", denom, id))
}

func NewZeroAmountError() *Error {
	return NewErrorWithMsg(http.StatusBadRequest, ZeroAmount, "amount must be greater than zero")
}
