package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// ErrCorrupt reports a backing file that cannot be decoded into a snapshot.
var ErrCorrupt = errors.New("corrupt backing store")

// Snapshot is the persisted form of the registry: composite key to the
// entity's dictionary.
type Snapshot map[string]map[string]any

// Backend persists and restores whole snapshots. Each call opens, fully
// reads or writes, and closes the underlying file.
type Backend interface {
	// Load returns the stored snapshot. ok is false when nothing has been
	// stored yet; that is not an error.
	Load() (snap Snapshot, ok bool, err error)

	// Store replaces the stored snapshot with snap.
	Store(snap Snapshot) error
}

// encodeRecord renders one entity dictionary as JSON. Float values are
// written with a fractional part so they decode back as floats.
func encodeRecord(rec map[string]any) ([]byte, error) {
	return json.Marshal(wrapFloats(rec))
}

// encodeSnapshot renders a whole snapshot as one JSON document.
func encodeSnapshot(snap Snapshot) ([]byte, error) {
	out := make(map[string]map[string]any, len(snap))
	for key, rec := range snap {
		out[key] = wrapFloats(rec)
	}
	return json.Marshal(out)
}

func wrapFloats(rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		switch f := v.(type) {
		case float64:
			out[k] = types.FloatValue(f)
		case float32:
			out[k] = types.FloatValue(float64(f))
		default:
			out[k] = v
		}
	}
	return out
}

// decodeRecord parses one entity dictionary. Numbers are kept as
// json.Number so integers and floats stay distinct.
func decodeRecord(data []byte) (map[string]any, error) {
	var rec map[string]any
	if err := decodeStrict(data, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("%w: null record", ErrCorrupt)
	}
	return rec, nil
}

// decodeSnapshot parses a whole JSON document produced by encodeSnapshot.
func decodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := decodeStrict(data, &snap); err != nil {
		return nil, err
	}
	if snap == nil {
		snap = Snapshot{}
	}
	for key, rec := range snap {
		if rec == nil {
			return nil, fmt.Errorf("%w: null record %s", ErrCorrupt, key)
		}
	}
	return snap, nil
}

func decodeStrict(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data after document", ErrCorrupt)
	}
	return nil
}
