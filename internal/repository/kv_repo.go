package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"phonics/internal/database"
)

// KeyValueRepository stores blobs in the key_values table
type KeyValueRepository struct {
	db *database.DB
}

// NewKeyValueRepository creates a new key-value repository
func NewKeyValueRepository(db *database.DB) *KeyValueRepository {
	return &KeyValueRepository{db: db}
}

// Get retrieves the value stored under key
func (r *KeyValueRepository) Get(key string) ([]byte, bool, error) {
	var value []byte
	query := "SELECT item_value FROM key_values WHERE item_key = ?"
	err := r.db.QueryRow(query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value stored under key
func (r *KeyValueRepository) Set(key string, value []byte) error {
	return setValue(r.db, key, value)
}

// SetMany writes several entries in one transaction
func (r *KeyValueRepository) SetMany(entries map[string][]byte) error {
	return r.db.WithTx(func(tx *database.Tx) error {
		for key, value := range entries {
			if err := setValue(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes key; deleting a missing key is not an error
func (r *KeyValueRepository) Delete(key string) error {
	_, err := r.db.Exec("DELETE FROM key_values WHERE item_key = ?", key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Keys lists all keys starting with prefix, sorted
func (r *KeyValueRepository) Keys(prefix string) ([]string, error) {
	query := "SELECT item_key FROM key_values WHERE item_key LIKE ? ORDER BY item_key ASC"
	rows, err := r.db.Query(query, likePattern(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to query keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		// LIKE is case-insensitive on some dialects
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	return keys, rows.Err()
}

func setValue(db database.DBTX, key string, value []byte) error {
	if _, err := db.Exec(db.GetDialect().UpsertKeyValue(), key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// likePattern turns a literal prefix into a LIKE pattern. Wildcards and the
// backslash escape (the default on postgres and mysql) become the single
// character wildcard, which still matches them; the HasPrefix check in Keys
// drops the extra matches.
func likePattern(prefix string) string {
	return likeSpecial.Replace(prefix) + "%"
}

var likeSpecial = strings.NewReplacer("%", "_", `\`, "_")
