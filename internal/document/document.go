// =============================================================================
// Sales Computation - Document Model
// =============================================================================
//
// This package holds the in-memory form of an input document. Input files
// (JSON, or workbook sheets converted by the loader) are parsed into a tree of
// Value nodes before any normalization happens.
//
// ORDERING:
//   Objects keep their fields in document order. The multi-item sales shape
//   prices the items of one record in the order they were written.
//
// NUMBERS:
//   Numbers keep their literal text (json.Number) so prices and quantities
//   can be converted to exact decimals later without float rounding.
//
// =============================================================================

package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// =============================================================================
// VALUE KINDS
// =============================================================================

// Kind identifies the type of a Value.
type Kind int

const (
	// Missing is the zero Kind. It marks a field that is not present at all,
	// which is different from a field that is present and null.
	Missing Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// =============================================================================
// VALUE
// =============================================================================

// Value is one node of a parsed document.
// The zero Value is Missing.
type Value struct {
	kind   Kind
	boolV  bool
	text   string
	items  []Value
	fields []Field
}

// Field is one key/value entry of an object, in document order.
type Field struct {
	Key   string
	Value Value
}

// NullValue returns a null Value.
func NullValue() Value { return Value{kind: Null} }

// BoolValue returns a boolean Value.
func BoolValue(b bool) Value { return Value{kind: Bool, boolV: b} }

// NumberValue returns a numeric Value from its literal text.
// The text is not validated here; callers pass json.Number or other
// already-parsed numeric literals.
func NumberValue(n json.Number) Value { return Value{kind: Number, text: string(n)} }

// StringValue returns a string Value.
func StringValue(s string) Value { return Value{kind: String, text: s} }

// ArrayValue returns an array Value holding items.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, items: items}
}

// ObjectValue returns an object Value holding fields in the given order.
func ObjectValue(fields ...Field) Value {
	if fields == nil {
		fields = []Field{}
	}
	return Value{kind: Object, fields: fields}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return v.kind == Missing }

// AsString returns the string content when the value is a String.
func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.text, true
}

// AsBool returns the boolean when the value is a Bool.
func (v Value) AsBool() (bool, bool) {
	if v.kind != Bool {
		return false, false
	}
	return v.boolV, true
}

// AsNumber returns the numeric literal when the value is a Number.
func (v Value) AsNumber() (json.Number, bool) {
	if v.kind != Number {
		return "", false
	}
	return json.Number(v.text), true
}

// Items returns the elements of an array, or nil for any other kind.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	return v.items
}

// Fields returns the fields of an object in document order, or nil for any
// other kind.
func (v Value) Fields() []Field {
	if v.kind != Object {
		return nil
	}
	return v.fields
}

// UniqueFields returns the fields of an object with repeated keys collapsed:
// each key appears once, at the position of its first occurrence, holding the
// value of its last occurrence. Any other kind yields nil.
func (v Value) UniqueFields() []Field {
	if v.kind != Object {
		return nil
	}

	index := make(map[string]int, len(v.fields))
	out := make([]Field, 0, len(v.fields))
	for _, f := range v.fields {
		if i, ok := index[f.Key]; ok {
			out[i].Value = f.Value
			continue
		}
		index[f.Key] = len(out)
		out = append(out, f)
	}
	return out
}

// Has reports whether an object carries the given key.
func (v Value) Has(key string) bool {
	return !v.Get(key).IsMissing()
}

// Get returns the value stored under key in an object. When a key is repeated
// the last occurrence wins. Any other kind, or an absent key, yields Missing.
func (v Value) Get(key string) Value {
	if v.kind != Object {
		return Value{}
	}
	for i := len(v.fields) - 1; i >= 0; i-- {
		if v.fields[i].Key == key {
			return v.fields[i].Value
		}
	}
	return Value{}
}

// String renders the value for human-readable messages.
//
// Strings render as their raw content, null as "null", a missing value as
// "<missing>", and everything else as compact JSON.
func (v Value) String() string {
	switch v.kind {
	case Missing:
		return "<missing>"
	case String:
		return v.text
	default:
		var sb strings.Builder
		v.writeJSON(&sb)
		return sb.String()
	}
}

// MarshalJSON encodes the value back to JSON, keeping field order.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == Missing {
		return nil, errors.New("cannot marshal a missing value")
	}
	var sb strings.Builder
	v.writeJSON(&sb)
	return []byte(sb.String()), nil
}

func (v Value) writeJSON(sb *strings.Builder) {
	switch v.kind {
	case Missing, Null:
		sb.WriteString("null")
	case Bool:
		if v.boolV {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Number:
		sb.WriteString(v.text)
	case String:
		writeJSONString(sb, v.text)
	case Array:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteByte(',')
			}
			item.writeJSON(sb)
		}
		sb.WriteByte(']')
	case Object:
		sb.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			writeJSONString(sb, f.Key)
			sb.WriteByte(':')
			f.Value.writeJSON(sb)
		}
		sb.WriteByte('}')
	}
}

func writeJSONString(sb *strings.Builder, s string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	sb.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}

// =============================================================================
// PARSING
// =============================================================================

// ErrSyntax is wrapped by every error returned from Parse.
var ErrSyntax = errors.New("invalid JSON document")

// Parse decodes exactly one JSON value from data.
//
// PARAMETERS:
//   - data: The raw document bytes.
//
// RETURNS:
//   - The parsed Value tree.
//   - An error wrapping ErrSyntax if the input is not a single valid JSON value.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	// Only whitespace may follow the value.
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after top-level value")
		}
		return Value{}, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			return decodeArray(dec)
		case '{':
			return decodeObject(dec)
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		item, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}

	// Consume the closing ']'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ArrayValue(items...), nil
}

func decodeObject(dec *json.Decoder) (Value, error) {
	fields := []Field{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}

		val, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, Field{Key: key, Value: val})
	}

	// Consume the closing '}'.
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return ObjectValue(fields...), nil
}
