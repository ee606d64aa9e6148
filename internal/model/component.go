// Package model defines the inventory data structures read from Sbom.json.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OptString is a string field that may be absent from the inventory.
// Set records whether the key carried a value at all; Present additionally
// requires that value to be non-empty, so "" and null both count as missing.
type OptString struct {
	Value string
	Set   bool
}

// Some returns a set OptString holding v.
func Some(v string) OptString {
	return OptString{Value: v, Set: true}
}

// Present reports whether the field holds a usable, non-empty value.
func (o OptString) Present() bool {
	return o.Set && o.Value != ""
}

// Or returns the value when present and def otherwise.
func (o OptString) Or(def string) string {
	if o.Present() {
		return o.Value
	}
	return def
}

// UnmarshalJSON accepts strings, null, and other scalars. Numbers and
// booleans are kept as their literal text ("version": 9.34 -> "9.34").
func (o *OptString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*o = OptString{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*o = Some(s)
		return nil
	}

	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return fmt.Errorf("expected a string value, got %s", data)
	}
	*o = Some(string(data))
	return nil
}

// UnmarshalYAML accepts any scalar; yaml.v2 keeps the source text of
// unquoted numbers when decoding into a string.
func (o *OptString) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*o = Some(s)
	return nil
}

// MarshalJSON writes null for unset fields.
func (o OptString) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Component is one entry of a category's component list.
type Component struct {
	Name        OptString `json:"component" yaml:"component"`
	Vendor      OptString `json:"vendor" yaml:"vendor"`
	Version     OptString `json:"version" yaml:"version"`
	ProductName OptString `json:"product_name" yaml:"product_name"`
	Category    OptString `json:"category" yaml:"category"`
	Remark      OptString `json:"remark" yaml:"remark"`
}

// CategoryRecord is the per-ECU value of the inventory.
type CategoryRecord struct {
	ECUName    string       `json:"ecu_name" yaml:"ecu_name"`
	Components []*Component `json:"components" yaml:"components"`
}
