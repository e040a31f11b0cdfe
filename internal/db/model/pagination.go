package model

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
)

// Pagination tokens are the unpadded url-safe base64 of a JSON cursor. A
// cursor with fields unknown to T is rejected.

func GetPaginationToken[T any](cursor T) (string, error) {
	raw, err := json.Marshal(cursor)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodePaginationToken[T any](token string) (*T, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	cursor := new(T)
	if err := decoder.Decode(cursor); err != nil {
		return nil, err
	}
	return cursor, nil
}
