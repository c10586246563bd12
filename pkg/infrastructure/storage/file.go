package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
)

type entriesJSON struct {
	Entries map[string]string `json:"entries"`
}

// FileStorage keeps all entries in a single JSON document and rewrites it on every Set.
type FileStorage struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

func NewFileStorage(path string) (*FileStorage, error) {
	entries, err := loadEntries(path)
	if err != nil {
		return nil, err
	}
	return &FileStorage{path: path, entries: entries}, nil
}

func (f *FileStorage) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.entries[key]
	return value, ok, nil
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = value
	return saveEntries(f.path, f.entries)
}

func loadEntries(path string) (map[string]string, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}

	var data entriesJSON
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}
	if data.Entries == nil {
		return make(map[string]string), nil
	}
	return data.Entries, nil
}

func saveEntries(path string, entries map[string]string) error {
	jsonData, err := json.MarshalIndent(entriesJSON{Entries: entries}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode entries")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", tmp)
	}
	return errors.Wrapf(os.Rename(tmp, path), "failed to replace %s", path)
}
