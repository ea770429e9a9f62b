package repository

// KeyValueStore is the persistence surface the player store needs.
// Get reports found=false for a missing key instead of an error.
type KeyValueStore interface {
	Get(key string) (value []byte, found bool, err error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys(prefix string) ([]string, error)
}
