// Package export serializes enumerated method metadata to disk so other
// tools can consume a scope's reflection surface without loading the
// manifest and replaying the session.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Archive format changes
const archiveSchemaVersion uint16 = 1

// Archive is the on-disk unit: every exported scope of one manifest.
type Archive struct {
	Schema uint16
	Scopes []ScopeDescriptor
}

// ScopeDescriptor captures the enumerated methods of a single scope.
type ScopeDescriptor struct {
	Name    string
	Methods []MethodDescriptor
}

// MethodDescriptor is one method as the enumerator saw it: identity,
// symbol, and the property bits, with types rendered to their C++
// spellings.
type MethodDescriptor struct {
	Name     string
	Mangled  string
	Title    string
	Property uint64
	Extra    uint64
	NArgs    int
	NDefault int
	Return   string
	Params   []string
}

// Write serializes the archive next to path via a temp file and renames it
// into place.
func Write(path string, a *Archive) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(a); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), path)
}

// Read loads and validates an archive from disk.
func Read(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("export: archive %s does not exist", path)
		}
		return nil, err
	}
	defer f.Close()

	var a Archive
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&a); err != nil {
		return nil, err
	}
	if a.Schema != archiveSchemaVersion {
		return nil, fmt.Errorf("export: archive %s has schema %d, want %d", path, a.Schema, archiveSchemaVersion)
	}
	return &a, nil
}
