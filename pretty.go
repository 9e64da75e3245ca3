package overlay

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// RecursionMarker replaces a value that would re-enter an object already
// being printed on the current path.
const RecursionMarker = "<recursive>"

// DescKind selects the variant of a Description.
type DescKind uint8

const (
	DescPrimitive DescKind = iota // Text is printed as-is (quoted when nested)
	DescSequence                  // Items printed as [a, b]
	DescRecord                    // Fields printed as Type { k: v }
	DescOpaque                    // Text is custom display, never quoted
)

// Field is one key/value pair of a record Description.
type Field struct {
	Key   string
	Value any
}

// Description is the tagged union a Describer returns.
type Description struct {
	Kind     DescKind
	Text     string  // DescPrimitive, DescOpaque
	Items    []any   // DescSequence
	TypeName string  // DescRecord; empty omits the prefix
	Fields   []Field // DescRecord
}

// Describer lets a value choose how Pretty prints it. Pointer receivers take
// part in recursion detection; the returned Items and Field values are
// printed recursively.
type Describer interface {
	Describe() Description
}

// Pretty converts an arbitrary value into a bounded, single-string form
// suitable for the log panel. It terminates on cyclic graphs, quotes nested
// strings, and escapes every '[' so the result is safe inside [tag] markup.
func Pretty(v any) string {
	return prettyValue(v, false, seenSet{})
}

var identRe = regexp.MustCompile(`^\w+$`)

// identity is a pointer-identity key for the seen set. The type is part of
// the key since a struct and its first field share an address. Slices also
// key on their length so sub-slices of one array stay distinct.
type identity struct {
	typ reflect.Type
	ptr uintptr
	n   int
}

// seenSet holds the identities on the path from the root to the value being
// rendered. Entries are removed on the way back up.
type seenSet map[identity]struct{}

func (s seenSet) has(id identity) bool {
	_, ok := s[id]
	return ok
}

// identityOf returns the pointer identity of v when it has one.
func identityOf(rv reflect.Value) (identity, bool) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.IsNil() || rv.Len() == 0 {
			return identity{}, false
		}
		return identity{typ: rv.Type(), ptr: rv.Pointer(), n: rv.Len()}, true
	}
	return identity{}, false
}

func prettyValue(v any, inside bool, seen seenSet) string {
	return escapeBrackets(render(v, inside, seen))
}

func render(v any, inside bool, seen seenSet) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	if id, ok := identityOf(rv); ok {
		if seen.has(id) {
			return RecursionMarker
		}
		seen[id] = struct{}{}
		defer delete(seen, id)
	}

	if d, ok := v.(Describer); ok {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "null"
		}
		return renderDescription(d.Describe(), inside, seen)
	}

	if s, ok := v.(string); ok {
		if inside {
			return strconv.Quote(s)
		}
		return s
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			break // []byte prints through fmt
		}
		items := make([]string, rv.Len())
		for i := range items {
			items[i] = prettyValue(elemInterface(rv.Index(i)), true, seen)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
	}

	switch x := v.(type) {
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}

	switch rv.Kind() {
	case reflect.Pointer:
		elem := rv.Elem()
		if elem.Kind() == reflect.Struct || elem.Kind() == reflect.Map {
			return renderRecord(elem, seen)
		}
		return render(elem.Interface(), inside, seen)
	case reflect.Struct:
		return renderRecord(rv, seen)
	case reflect.Map:
		if isStringKeyed(rv.Type()) {
			return renderRecord(rv, seen)
		}
	case reflect.String:
		if inside {
			return strconv.Quote(rv.String())
		}
	}
	return primitive(rv)
}

func renderDescription(d Description, inside bool, seen seenSet) string {
	switch d.Kind {
	case DescPrimitive:
		if inside {
			return strconv.Quote(d.Text)
		}
		return d.Text
	case DescSequence:
		items := make([]string, len(d.Items))
		for i, it := range d.Items {
			items[i] = prettyValue(it, true, seen)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case DescRecord:
		fields := make([]string, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = formatKey(f.Key) + ": " + prettyValue(f.Value, true, seen)
		}
		return joinRecord(d.TypeName, fields)
	default:
		return d.Text
	}
}

// renderRecord prints a struct's exported fields in declaration order, or a
// string-keyed map's entries sorted by key.
func renderRecord(rv reflect.Value, seen seenSet) string {
	t := rv.Type()
	var fields []string

	switch rv.Kind() {
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			val := prettyValue(elemInterface(rv.Field(i)), true, seen)
			fields = append(fields, formatKey(f.Name)+": "+val)
		}
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			val := prettyValue(elemInterface(rv.MapIndex(k)), true, seen)
			fields = append(fields, formatKey(k.String())+": "+val)
		}
	}
	return joinRecord(recordTypeName(t), fields)
}

func joinRecord(typeName string, fields []string) string {
	var b strings.Builder
	if typeName != "" {
		b.WriteString(typeName)
		b.WriteByte(' ')
	}
	b.WriteByte('{')
	if len(fields) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(fields, ", "))
		b.WriteByte(' ')
	}
	b.WriteByte('}')
	return b.String()
}

// recordTypeName returns the type prefix for a record. Anonymous structs and
// the generic map[string]any have none.
func recordTypeName(t reflect.Type) string {
	if t.Name() == "" {
		return ""
	}
	return t.Name()
}

func formatKey(k string) string {
	if identRe.MatchString(k) {
		return k
	}
	return strconv.Quote(k)
}

func isStringKeyed(t reflect.Type) bool {
	return t.Key().Kind() == reflect.String
}

// elemInterface unwraps an element for recursion; unexported values that
// cannot be converted back to an interface print through their kind.
func elemInterface(rv reflect.Value) any {
	if !rv.IsValid() {
		return nil
	}
	if rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.CanInterface() {
		return primitive(rv)
	}
	return rv.Interface()
}

// primitive formats numbers, booleans and anything else through fmt.
func primitive(rv reflect.Value) string {
	switch rv.Kind() {
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return formatFloat(rv.Float(), 32)
	case reflect.Float64:
		return formatFloat(rv.Float(), 64)
	case reflect.String:
		return rv.String()
	}
	if rv.CanInterface() {
		return fmt.Sprint(rv.Interface())
	}
	return "<" + rv.Type().String() + ">"
}

// formatFloat prints the shortest decimal form, switching to exponent
// notation for very large magnitudes.
func formatFloat(f float64, bits int) string {
	if math.Abs(f) >= 1e21 {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// escapeBrackets prefixes every '[' that is not already escaped with a
// backslash. Running it twice is a no-op.
func escapeBrackets(s string) string {
	if strings.IndexByte(s, '[') < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); i++ {
		if s[i] == '[' && (i == 0 || s[i-1] != '\\') {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
