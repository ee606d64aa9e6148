package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

// Inventory maps category identifiers to their records and remembers the
// order in which the identifiers appeared in the source file.
type Inventory struct {
	order   []string
	records map[string]*CategoryRecord
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{records: map[string]*CategoryRecord{}}
}

// Add inserts or replaces a category. A replaced category keeps its
// original position.
func (inv *Inventory) Add(identifier string, rec *CategoryRecord) {
	if rec == nil {
		rec = &CategoryRecord{}
	}
	if _, ok := inv.records[identifier]; !ok {
		inv.order = append(inv.order, identifier)
	}
	inv.records[identifier] = rec
}

// Get returns the record for identifier.
func (inv *Inventory) Get(identifier string) (*CategoryRecord, bool) {
	rec, ok := inv.records[identifier]
	return rec, ok
}

// Identifiers returns the category identifiers in insertion order.
func (inv *Inventory) Identifiers() []string {
	out := make([]string, len(inv.order))
	copy(out, inv.order)
	return out
}

// Len returns the number of categories.
func (inv *Inventory) Len() int {
	return len(inv.order)
}

// LoadInventory reads and parses the inventory file at path. Files ending in
// .yaml or .yml are parsed as YAML, everything else as JSON.
func LoadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read inventory %q: %w", path, err)
	}

	var inv *Inventory
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		inv, err = ParseInventoryYAML(data)
	default:
		inv, err = ParseInventoryJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse inventory %q: %w", path, err)
	}
	return inv, nil
}

// ParseInventoryJSON decodes a JSON object keyed by category identifier.
// The object is walked token by token so that key order survives.
func ParseInventoryJSON(data []byte) (*Inventory, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("inventory must be a JSON object keyed by category identifier")
	}

	inv := NewInventory()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		identifier, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON: unexpected token %v", tok)
		}

		var rec CategoryRecord
		if err := dec.Decode(&rec); err != nil {
			return nil, fmt.Errorf("category %q: %w", identifier, err)
		}
		inv.Add(identifier, &rec)
	}

	// closing brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid JSON: unexpected data after inventory object")
	}

	return inv, nil
}

// ParseInventoryYAML decodes a YAML mapping keyed by category identifier.
func ParseInventoryYAML(data []byte) (*Inventory, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("inventory is empty")
	}

	var top any
	if err := yaml.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}
	if _, ok := top.(map[any]any); !ok {
		return nil, errors.New("inventory must be a YAML mapping keyed by category identifier")
	}

	var doc yaml.MapSlice
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	inv := NewInventory()
	for _, item := range doc {
		identifier := fmt.Sprint(item.Key)

		// Re-encode the value so it decodes through the typed struct.
		raw, err := yaml.Marshal(item.Value)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", identifier, err)
		}
		var rec CategoryRecord
		if err := yaml.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("category %q: %w", identifier, err)
		}
		inv.Add(identifier, &rec)
	}
	return inv, nil
}
