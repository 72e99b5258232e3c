package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UpdateIntent says what an update does to a field.
type UpdateIntent int

const (
	IntentNone UpdateIntent = iota
	IntentReplace
	IntentAppend
	IntentUnset
)

func (i UpdateIntent) String() string {
	switch i {
	case IntentReplace:
		return "replace"
	case IntentAppend:
		return "append"
	case IntentUnset:
		return "unset"
	default:
		return "none"
	}
}

// ParseUpdateIntent parses "replace", "append" or "unset".
func ParseUpdateIntent(s string) (UpdateIntent, error) {
	switch strings.ToLower(s) {
	case "replace", "set":
		return IntentReplace, nil
	case "append", "push":
		return IntentAppend, nil
	case "unset":
		return IntentUnset, nil
	}
	return IntentNone, fmt.Errorf("unknown update intent %q", s)
}

var jsonNull = []byte("null")

// Optional tracks whether a field was present in a patch. An absent field
// leaves the record alone, null unsets it, any other value replaces it.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// None returns a present Optional that unsets the field.
func None[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

// Intent reports the update this Optional describes.
func (o Optional[T]) Intent() UpdateIntent {
	switch {
	case !o.Set:
		return IntentNone
	case o.Null:
		return IntentUnset
	default:
		return IntentReplace
	}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}

// ListUpdate is a patch for a string list column. A JSON array replaces the
// list, null unsets it, and {"op": "append", "values": [...]} states the
// intent explicitly.
type ListUpdate struct {
	Intent UpdateIntent
	Values []string
}

// ReplaceList, AppendList and UnsetList build list patches in code.
func ReplaceList(values ...string) ListUpdate {
	return ListUpdate{Intent: IntentReplace, Values: values}
}

func AppendList(values ...string) ListUpdate {
	return ListUpdate{Intent: IntentAppend, Values: values}
}

func UnsetList() ListUpdate {
	return ListUpdate{Intent: IntentUnset}
}

func (l *ListUpdate) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, jsonNull):
		*l = UnsetList()
		return nil
	case len(b) > 0 && b[0] == '[':
		var values []string
		if err := json.Unmarshal(b, &values); err != nil {
			return err
		}
		*l = ReplaceList(values...)
		return nil
	}

	var explicit struct {
		Op     string   `json:"op"`
		Values []string `json:"values"`
	}
	if err := json.Unmarshal(b, &explicit); err != nil {
		return err
	}
	intent, err := ParseUpdateIntent(explicit.Op)
	if err != nil {
		return err
	}
	*l = ListUpdate{Intent: intent, Values: explicit.Values}
	return nil
}

func (l ListUpdate) MarshalJSON() ([]byte, error) {
	if l.Intent == IntentNone {
		return jsonNull, nil
	}
	return json.Marshal(struct {
		Op     string   `json:"op"`
		Values []string `json:"values,omitempty"`
	}{l.Intent.String(), l.Values})
}

// changes accumulates the columns a patch touched.
type changes []string

func (c *changes) add(column string) {
	*c = append(*c, column)
}

func setField[T any](c *changes, o Optional[T], dst *T, column string) {
	if !o.Set {
		return
	}
	if o.Null {
		var zero T
		*dst = zero
	} else {
		*dst = o.Value
	}
	c.add(column)
}

func setPtrField[T any](c *changes, o Optional[T], dst **T, column string) {
	if !o.Set {
		return
	}
	if o.Null {
		*dst = nil
	} else {
		v := o.Value
		*dst = &v
	}
	c.add(column)
}

func setList(c *changes, l ListUpdate, dst *StringList, column string) {
	switch l.Intent {
	case IntentReplace:
		*dst = append(StringList{}, l.Values...)
	case IntentAppend:
		*dst = dst.With(l.Values...)
	case IntentUnset:
		*dst = nil
	default:
		return
	}
	c.add(column)
}

// StringList is a set-like list of strings stored as JSON.
type StringList []string

// Contains reports whether v is in the list.
func (s StringList) Contains(v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// With returns the list with values appended, skipping ones already present.
func (s StringList) With(values ...string) StringList {
	out := append(StringList{}, s...)
	for _, v := range values {
		if !out.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// Intersects reports whether any of values is in the list.
func (s StringList) Intersects(values []string) bool {
	for _, v := range values {
		if s.Contains(v) {
			return true
		}
	}
	return false
}

// SoftDelete is the patch value that marks a record deleted now.
func SoftDelete() Optional[time.Time] {
	return Some(time.Now().UTC())
}
