package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Field is a single column/value pair used to build a Row in order
type Field struct {
	Name  string
	Value interface{}
}

// Row represents a single table row
// Key = column name, Value = cell value. Keys keep insertion order.
type Row struct {
	keys []string
	data map[string]interface{}
}

// NewRow creates a Row from fields, in the order given.
// A repeated name keeps its first position and takes the last value.
func NewRow(fields ...Field) Row {
	r := Row{
		keys: make([]string, 0, len(fields)),
		data: make(map[string]interface{}, len(fields)),
	}
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// FromMap creates a Row from a plain map. Go maps are unordered, so keys
// are sorted to keep the result deterministic.
func FromMap(m map[string]interface{}) Row {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := Row{
		keys: keys,
		data: make(map[string]interface{}, len(m)),
	}
	for k, v := range m {
		r.data[k] = v
	}
	return r
}

// Get returns the value stored under key and whether the key exists
func (r Row) Get(key string) (interface{}, bool) {
	val, exists := r.data[key]
	return val, exists
}

// Has reports whether key is present
func (r Row) Has(key string) bool {
	_, exists := r.data[key]
	return exists
}

// Set stores value under key. New keys are appended after existing ones.
func (r *Row) Set(key string, value interface{}) {
	if r.data == nil {
		r.data = make(map[string]interface{})
	}
	if _, exists := r.data[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.data[key] = value
}

// Delete removes key from the row. Missing keys are ignored.
func (r *Row) Delete(key string) {
	if _, exists := r.data[key]; !exists {
		return
	}
	delete(r.data, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Rekey moves the value under oldKey to newKey, keeping its position.
// It does nothing if oldKey is absent or newKey is already taken.
func (r *Row) Rekey(oldKey, newKey string) {
	if oldKey == newKey || !r.Has(oldKey) || r.Has(newKey) {
		return
	}
	r.data[newKey] = r.data[oldKey]
	delete(r.data, oldKey)
	for i, k := range r.keys {
		if k == oldKey {
			r.keys[i] = newKey
			break
		}
	}
}

// Reorder returns a copy whose keys follow order. Keys the row has but
// order does not mention keep their relative order after the others;
// names in order the row lacks are skipped.
func (r Row) Reorder(order []string) Row {
	out := Row{
		keys: make([]string, 0, len(r.keys)),
		data: make(map[string]interface{}, len(r.data)),
	}
	for _, k := range order {
		if v, exists := r.data[k]; exists && !out.Has(k) {
			out.keys = append(out.keys, k)
			out.data[k] = v
		}
	}
	for _, k := range r.keys {
		if !out.Has(k) {
			out.keys = append(out.keys, k)
			out.data[k] = r.data[k]
		}
	}
	return out
}

// Keys returns the row's keys in order
func (r Row) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of keys
func (r Row) Len() int {
	return len(r.keys)
}

// Map returns the row's values as a plain map
func (r Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.data))
	for k, v := range r.data {
		m[k] = v
	}
	return m
}

// Copy creates a copy of the row to prevent mutation.
// Cell values themselves are not cloned.
func (r Row) Copy() Row {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	data := make(map[string]interface{}, len(r.data))
	for k, v := range r.data {
		data[k] = v
	}
	return Row{keys: keys, data: data}
}

// String returns a string representation for debugging
func (r Row) String() string {
	parts := make([]string, len(r.keys))
	for i, k := range r.keys {
		parts[i] = fmt.Sprintf("%s:%v", k, r.data[k])
	}
	return "Row{" + strings.Join(parts, " ") + "}"
}

// MarshalJSON implements json.Marshaler interface
// Keys are written in row order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.data[k])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler interface
// This allows Row to be unmarshaled from a JSON object, keeping key order
func (r *Row) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row must be a JSON object, got %v", tok)
	}

	row := NewRow()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected key token %v", tok)
		}

		var val interface{}
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("column %s: %w", key, err)
		}
		row.Set(key, val)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = row
	return nil
}
