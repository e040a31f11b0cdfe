package state

import (
	"bytes"
	"errors"
)

var ErrIndexConflict = errors.New("index key is bound to another token")

// Index is a reverse lookup from a secondary key to a token denom, kept in
// step with the primary token records.
type Index struct {
	bucket []byte
}

var (
	// TokenBySource resolves a remote (chain, contract address) pair.
	TokenBySource = Index{bucket: bucketTokenBySource}
	// TokenByLpt resolves a share-token address.
	TokenByLpt = Index{bucket: bucketTokenByLpt}
)

// SourceKey expects an already normalized address.
func SourceKey(chain, address string) []byte {
	key := make([]byte, 0, len(chain)+len(address)+1)
	key = append(key, chain...)
	key = append(key, 0)
	return append(key, address...)
}

func LptKey(address string) []byte {
	return []byte(address)
}

func (i Index) Lookup(tx *Tx, key []byte) (string, error) {
	v := tx.bucket(i.bucket).Get(key)
	if v == nil {
		return "", ErrNotFound
	}
	return string(v), nil
}

// Insert binds key to denom. Binding a key that already points at another
// token fails with ErrIndexConflict.
func (i Index) Insert(tx *Tx, key []byte, denom string) error {
	b := tx.bucket(i.bucket)
	if cur := b.Get(key); cur != nil && string(cur) != denom {
		return ErrIndexConflict
	}
	return b.Put(key, []byte(denom))
}

// Update rebinds denom from oldKey to newKey. The stale entry is removed and
// the new one inserted in the caller's transaction, so a lookup never sees
// both or neither.
func (i Index) Update(tx *Tx, oldKey, newKey []byte, denom string) error {
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	b := tx.bucket(i.bucket)
	if cur := b.Get(newKey); cur != nil && string(cur) != denom {
		return ErrIndexConflict
	}
	if cur := b.Get(oldKey); cur != nil && string(cur) == denom {
		if err := b.Delete(oldKey); err != nil {
			return err
		}
	}
	return b.Put(newKey, []byte(denom))
}
