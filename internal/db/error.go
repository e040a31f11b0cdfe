package db

import "errors"

// InvalidPaginationTokenError reports a token that does not decode into a
// cursor of the queried collection.
type InvalidPaginationTokenError struct {
	Message string
}

func (e *InvalidPaginationTokenError) Error() string {
	return e.Message
}

func IsInvalidPaginationTokenError(err error) bool {
	var target *InvalidPaginationTokenError
	return errors.As(err, &target)
}
