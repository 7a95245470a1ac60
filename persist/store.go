// Package persist implements the persistence port the editing core stays
// ignorant of: named Design documents saved as JSON on disk. The host calls
// Save after each committed edit when autosave is on.
package persist

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/peterbourgon/diskv/v3"

	"fitplan/design"
)

// Store is the persistence contract. The editing core only ever produces and
// accepts design.Design values; everything about encoding and location lives
// behind this interface.
type Store interface {
	Save(name string, d *design.Design) error
	Load(name string) (*design.Design, error)
	List() ([]string, error)
	Delete(name string) error
}

// DiskStore is a Store backed by diskv, one JSON file per document.
type DiskStore struct {
	d *diskv.Diskv
}

// Open creates a store rooted at basePath, creating it on first write.
func Open(basePath string) *DiskStore {
	return &DiskStore{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		CacheSizeMax: 1024 * 1024, // 1MB
	})}
}

func key(name string) string { return name + ".json" }

// Save writes the document under the given name, replacing any previous
// version.
func (s *DiskStore) Save(name string, d *design.Design) error {
	if name == "" {
		return fmt.Errorf("save: empty document name")
	}
	if d == nil {
		return fmt.Errorf("save %q: nil design", name)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("save %q: %w", name, err)
	}
	return s.d.Write(key(name), data)
}

// Load reads a document by name.
func (s *DiskStore) Load(name string) (*design.Design, error) {
	data, err := s.d.Read(key(name))
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	var d design.Design
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	return &d, nil
}

// List returns the stored document names, sorted.
func (s *DiskStore) List() ([]string, error) {
	var names []string
	for k := range s.d.Keys(nil) {
		if len(k) > len(".json") && k[len(k)-len(".json"):] == ".json" {
			names = append(names, k[:len(k)-len(".json")])
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes a stored document. Deleting a missing document is an error,
// matching diskv semantics.
func (s *DiskStore) Delete(name string) error {
	return s.d.Erase(key(name))
}
