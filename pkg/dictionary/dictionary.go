// Package dictionary resolves per-course word definitions used to gloss
// chip exercises, and imports dictionary files into the content store.
package dictionary

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry is one item in a dictionary file.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Reverse    bool   `json:"reverse"`
}

// LoadFile reads a dictionary JSON file, either {"items": [...]} or a bare
// array of entries.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes dictionary JSON in either supported shape.
func Parse(data []byte) ([]Entry, error) {
	var wrapped struct {
		Items []Entry `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Items) > 0 {
		return wrapped.Items, nil
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary as object or array: %w", err)
	}
	return entries, nil
}
