package repository

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	gdataObject    = "kv"
	gdataIndexProp = "index"
)

// GdataRepository keeps blobs in the per-user application data directory.
// gdata props are file names, so keys are hex encoded and the original keys
// are tracked in a YAML index prop.
type GdataRepository struct {
	manager *gdata.Manager
}

// OpenGdataRepository opens the data directory for appName
func OpenGdataRepository(appName string) (*GdataRepository, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata storage: %w", err)
	}
	return NewGdataRepository(manager), nil
}

// NewGdataRepository wraps an already opened manager
func NewGdataRepository(manager *gdata.Manager) *GdataRepository {
	return &GdataRepository{manager: manager}
}

// Get retrieves the value stored under key
func (r *GdataRepository) Get(key string) ([]byte, bool, error) {
	prop := gdataProp(key)
	if !r.manager.ObjectPropExists(gdataObject, prop) {
		return nil, false, nil
	}
	data, err := r.manager.LoadObjectProp(gdataObject, prop)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores value under key and records the key in the index
func (r *GdataRepository) Set(key string, value []byte) error {
	if err := r.manager.SaveObjectProp(gdataObject, gdataProp(key), value); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	index, err := r.loadIndex()
	if err != nil {
		return err
	}
	if _, ok := index[key]; ok {
		return nil
	}
	index[key] = struct{}{}
	return r.saveIndex(index)
}

// Delete removes key; deleting a missing key is not an error
func (r *GdataRepository) Delete(key string) error {
	prop := gdataProp(key)
	if r.manager.ObjectPropExists(gdataObject, prop) {
		if err := r.manager.DeleteObjectProp(gdataObject, prop); err != nil {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}

	index, err := r.loadIndex()
	if err != nil {
		return err
	}
	if _, ok := index[key]; !ok {
		return nil
	}
	delete(index, key)
	return r.saveIndex(index)
}

// Keys lists all indexed keys starting with prefix, sorted
func (r *GdataRepository) Keys(prefix string) ([]string, error) {
	index, err := r.loadIndex()
	if err != nil {
		return nil, err
	}

	var keys []string
	for key := range index {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *GdataRepository) loadIndex() (map[string]struct{}, error) {
	index := make(map[string]struct{})
	if !r.manager.ObjectPropExists(gdataObject, gdataIndexProp) {
		return index, nil
	}

	data, err := r.manager.LoadObjectProp(gdataObject, gdataIndexProp)
	if err != nil {
		return nil, fmt.Errorf("failed to load key index: %w", err)
	}

	var keys []string
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("failed to parse key index: %w", err)
	}
	for _, key := range keys {
		index[key] = struct{}{}
	}
	return index, nil
}

func (r *GdataRepository) saveIndex(index map[string]struct{}) error {
	keys := make([]string, 0, len(index))
	for key := range index {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	data, err := yaml.Marshal(keys)
	if err != nil {
		return fmt.Errorf("failed to marshal key index: %w", err)
	}
	if err := r.manager.SaveObjectProp(gdataObject, gdataIndexProp, data); err != nil {
		return fmt.Errorf("failed to save key index: %w", err)
	}
	return nil
}

func gdataProp(key string) string {
	return "v_" + hex.EncodeToString([]byte(key))
}
