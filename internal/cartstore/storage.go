package cartstore

import "errors"

// ErrNotFound is returned by Load when no cart blob exists under the key.
var ErrNotFound = errors.New("cart not found")

// Storage is the durable key-value port the store persists carts into.
// It is treated as unreliable: Save failures are logged and swallowed
// (the in-memory cart stays authoritative), and a Load that fails or
// returns garbage means "no cart". Multiple writers to the same key are
// not reconciled; the last writer wins.
type Storage interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}
