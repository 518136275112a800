package field

import (
	"cmp"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PlaceholderPath is the path used by Placeholder when none is given.
// It does not correspond to a valid field path.
const PlaceholderPath = "$"

// PathSeparator joins path segments, e.g. "::position::x".
const PathSeparator = "::"

// Field is a statically typed field path from a source type S to a target
// type T. It is a pure value and may be copied freely.
type Field[S, T any] struct {
	path string
}

// New constructs a Field from a raw path string.
//
// Nothing checks that path actually resolves to a T inside S; the accessor
// registered for the field is what gives the path meaning.
func New[S, T any](path string) Field[S, T] {
	return Field[S, T]{path: path}
}

// Path returns the raw field path string.
func (f Field[S, T]) Path() string {
	return f.path
}

// Untyped erases the static types into an UntypedField.
func (f Field[S, T]) Untyped() UntypedField {
	return Untyped[S, T](f.path)
}

// String returns the erased form's description.
func (f Field[S, T]) String() string {
	return f.Untyped().String()
}

// Join builds a canonical path from segments: Join("position", "x") returns
// "::position::x". Segments are NFC normalised so that visually identical
// names produce identical fields.
func Join(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(PathSeparator)
		b.WriteString(norm.NFC.String(s))
	}
	return b.String()
}

// UntypedField is the type-erased form of Field.
//
// Two UntypedFields are equal iff they share the source type, the target
// type and the path string.
type UntypedField struct {
	source reflect.Type
	target reflect.Type
	path   string
}

// Untyped constructs an UntypedField for the given source and target types.
func Untyped[S, T any](path string) UntypedField {
	return UntypedField{
		source: reflect.TypeFor[S](),
		target: reflect.TypeFor[T](),
		path:   path,
	}
}

// Placeholder returns a field with empty struct source and target types.
// Used by tests and tooling that only need distinct keys.
func Placeholder(path string) UntypedField {
	if path == "" {
		path = PlaceholderPath
	}
	return Untyped[struct{}, struct{}](path)
}

// Source returns the type token of the source type.
func (u UntypedField) Source() reflect.Type {
	return u.source
}

// Target returns the type token of the target type.
func (u UntypedField) Target() reflect.Type {
	return u.target
}

// Path returns the raw field path string.
func (u UntypedField) Path() string {
	return u.path
}

// IsZero reports whether u is the zero value (no types attached).
func (u UntypedField) IsZero() bool {
	return u.source == nil && u.target == nil && u.path == ""
}

// Is reports whether u was erased from a Field[S, T].
func Is[S, T any](u UntypedField) bool {
	return u.source == reflect.TypeFor[S]() && u.target == reflect.TypeFor[T]()
}

// Compare orders fields by source type, target type, then path.
func (u UntypedField) Compare(other UntypedField) int {
	if c := CompareTypes(u.source, other.source); c != 0 {
		return c
	}
	if c := CompareTypes(u.target, other.target); c != 0 {
		return c
	}
	return cmp.Compare(u.path, other.path)
}

// String formats the field as "Source::path -> Target".
func (u UntypedField) String() string {
	return fmt.Sprintf("%s%s -> %s", typeName(u.source), u.path, typeName(u.target))
}

// Typed re-attaches the static types. It returns false when S or T does not
// match the erased type tokens.
func Typed[S, T any](u UntypedField) (Field[S, T], bool) {
	if !Is[S, T](u) {
		return Field[S, T]{}, false
	}
	return Field[S, T]{path: u.path}, true
}

// MustTyped is like Typed but panics on a type mismatch.
func MustTyped[S, T any](u UntypedField) Field[S, T] {
	f, ok := Typed[S, T](u)
	if !ok {
		panic(&AccessorError{Code: ErrCodeTypeMismatch, Field: u, Want: Untyped[S, T](u.path)})
	}
	return f
}

// TypedUnchecked re-attaches the static types without comparing them.
// A Field carries no data besides its path, so a wrong guess only produces
// a field that will never match a registered accessor.
func TypedUnchecked[S, T any](u UntypedField) Field[S, T] {
	return Field[S, T]{path: u.path}
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
