// Package frontmatter implements the structured-header format used by every
// note this tool writes. A note is a header block of ordered key/value
// fields bounded by "---" delimiter lines, followed by a free-text body:
//
//	---
//	id: 6966
//	title: Days of Future Past
//	writtenBy:
//	  - "[[Chris Claremont]]"
//	coverDate:
//	  value: 1981-01
//	  year: 1981
//	  month: 1
//	---
//	body text
//
// Values are scalars (string, integer, boolean, null), lists of scalars, or
// one-level nested objects of scalars (partial dates). Field order is part
// of the format: serialization emits fields in the order they were added,
// and parsing preserves the order found, so serialize(parse(text)) is the
// identity on canonical input.
package frontmatter

// Kind discriminates the value variants a header field can hold.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindNull
	KindList
	KindObject
)

// Value is a tagged variant for a header field value. Exactly the member
// named by Kind is meaningful.
type Value struct {
	Kind   Kind
	Str    string
	Int    int
	Bool   bool
	List   []Value // scalar items only
	Fields []Field // one-level nested object, scalar values only
}

// Field is a single ordered header entry.
type Field struct {
	Key   string
	Value Value
}

// Doc is a parsed or under-assembly note: the ordered header plus the
// free-text body.
type Doc struct {
	Fields []Field
	Body   string
}

func String(s string) Value { return Value{Kind: KindString, Str: s} }
func Int(i int) Value       { return Value{Kind: KindInt, Int: i} }
func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func Null() Value           { return Value{Kind: KindNull} }

func List(items ...Value) Value { return Value{Kind: KindList, List: items} }

// Strings builds a list value from string items.
func Strings(items ...string) Value {
	list := make([]Value, 0, len(items))
	for _, item := range items {
		list = append(list, String(item))
	}
	return Value{Kind: KindList, List: list}
}

func Object(fields ...Field) Value { return Value{Kind: KindObject, Fields: fields} }

// Get returns the value for key and whether it is present.
func (d *Doc) Get(key string) (Value, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Has reports whether the header contains key.
func (d *Doc) Has(key string) bool {
	_, ok := d.Get(key)
	return ok
}

// Set replaces the value for key in place, or appends the field if absent.
func (d *Doc) Set(key string, v Value) {
	for i, f := range d.Fields {
		if f.Key == key {
			d.Fields[i].Value = v
			return
		}
	}
	d.Fields = append(d.Fields, Field{Key: key, Value: v})
}

// Equal reports deep equality of two values.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindString:
		return v.Str == other.Str
	case KindInt:
		return v.Int == other.Int
	case KindBool:
		return v.Bool == other.Bool
	case KindNull:
		return true
	case KindList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.Fields) != len(other.Fields) {
			return false
		}
		for i := range v.Fields {
			if v.Fields[i].Key != other.Fields[i].Key || !v.Fields[i].Value.Equal(other.Fields[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// Contains reports whether a list value already holds an equal item.
// It is false for non-list values.
func (v Value) Contains(item Value) bool {
	if v.Kind != KindList {
		return false
	}
	for _, existing := range v.List {
		if existing.Equal(item) {
			return true
		}
	}
	return false
}
