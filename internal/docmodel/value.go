// ABOUTME: Tagged key-value document model for schema-less feed and item data
// ABOUTME: Provides dotted-path resolution with short-circuit on absent intermediate values

package docmodel

import "strings"

// Kind discriminates the variants a Value can hold.
type Kind int

const (
	KindAbsent Kind = iota
	KindString
	KindList
	KindDoc
)

// Value is a single field in a document: a string, a list of values,
// a nested document, or absent.
type Value struct {
	kind Kind
	str  string
	list []Value
	doc  Doc
}

// Doc is a document: an unordered mapping of field names to values.
type Doc map[string]Value

// Absent is the sentinel for a missing field.
var Absent = Value{kind: KindAbsent}

// String wraps a string as a Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Strings wraps a slice of strings as a list Value.
func Strings(ss []string) Value {
	list := make([]Value, len(ss))
	for i, s := range ss {
		list[i] = String(s)
	}
	return Value{kind: KindList, list: list}
}

// List wraps a slice of values as a list Value.
func List(vs []Value) Value {
	return Value{kind: KindList, list: vs}
}

// Nested wraps a document as a Value.
func Nested(d Doc) Value {
	return Value{kind: KindDoc, doc: d}
}

// Kind returns the variant held by the value.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether the value is the absent sentinel.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// AsString returns the string form of the value and whether it holds one.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsList returns the list elements and whether the value holds a list.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}
	return v.list, true
}

// AsDoc returns the nested document and whether the value holds one.
func (v Value) AsDoc() (Doc, bool) {
	if v.kind != KindDoc {
		return nil, false
	}
	return v.doc, true
}

// IsTruthy reports whether the value counts as present and non-empty.
// Absent values, empty strings, empty lists, and empty documents are falsy.
func (v Value) IsTruthy() bool {
	switch v.kind {
	case KindString:
		return v.str != ""
	case KindList:
		return len(v.list) > 0
	case KindDoc:
		return len(v.doc) > 0
	default:
		return false
	}
}

// Text flattens the value into a string for interpolation. Lists join their
// elements with ", "; nested documents and absent values render empty.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindList:
		parts := make([]string, 0, len(v.list))
		for _, e := range v.list {
			parts = append(parts, e.Text())
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// Lookup resolves a dotted path ("a.b.c") against the document.
//
// One segment is consumed at a time. An intermediate value that is absent
// or falsy short-circuits to Absent: an empty string or empty list midway
// through a path is treated the same as a missing key. The terminal segment
// returns the raw value without that suppression, so a present-but-empty
// leaf is still returned as-is.
func (d Doc) Lookup(path string) Value {
	return d.LookupSegments(strings.Split(path, "."))
}

// LookupSegments resolves a pre-split path against the document.
func (d Doc) LookupSegments(segments []string) Value {
	if len(segments) == 0 {
		return Absent
	}
	v, ok := d[segments[0]]
	if !ok {
		return Absent
	}
	if len(segments) == 1 {
		return v
	}
	if !v.IsTruthy() {
		return Absent
	}
	nested, ok := v.AsDoc()
	if !ok {
		return Absent
	}
	return nested.LookupSegments(segments[1:])
}

// Set assigns a field, dropping it when the value is absent.
func (d Doc) Set(name string, v Value) {
	if v.IsAbsent() {
		delete(d, name)
		return
	}
	d[name] = v
}
