package field

import (
	"reflect"
	"slices"
)

// Accessor reads and writes a T stored inside an S.
//
// Accessors are stateless. They must agree with the Field they are
// registered under; the registry only checks the type tokens.
type Accessor[S, T any] struct {
	Get func(source *S) T
	Set func(source *S, value T)
}

// AccessorOf builds an Accessor from a function returning a pointer to the
// target inside the source.
func AccessorOf[S, T any](ptr func(source *S) *T) Accessor[S, T] {
	return Accessor[S, T]{
		Get: func(s *S) T { return *ptr(s) },
		Set: func(s *S, v T) { *ptr(s) = v },
	}
}

// Valid reports whether both functions are present.
func (a Accessor[S, T]) Valid() bool {
	return a.Get != nil && a.Set != nil
}

// Untyped erases the accessor's static types.
func (a Accessor[S, T]) Untyped() UntypedAccessor {
	return UntypedAccessor{
		get:    a.Get,
		set:    a.Set,
		source: reflect.TypeFor[S](),
		target: reflect.TypeFor[T](),
	}
}

// UntypedAccessor is the type-erased form of Accessor. It remembers the type
// tokens of S and T so the typed form can be recovered safely.
type UntypedAccessor struct {
	get    any
	set    any
	source reflect.Type
	target reflect.Type
}

// Source returns the type token of the source type.
func (u UntypedAccessor) Source() reflect.Type {
	return u.source
}

// Target returns the type token of the target type.
func (u UntypedAccessor) Target() reflect.Type {
	return u.target
}

// TypedAccessor recovers an Accessor[S, T], returning false when the type
// tokens do not match.
func TypedAccessor[S, T any](u UntypedAccessor) (Accessor[S, T], bool) {
	if u.source != reflect.TypeFor[S]() || u.target != reflect.TypeFor[T]() {
		return Accessor[S, T]{}, false
	}
	return TypedAccessorUnchecked[S, T](u), true
}

// TypedAccessorUnchecked recovers an Accessor[S, T] without comparing type
// tokens. Panics if the stored functions are not of the requested types.
func TypedAccessorUnchecked[S, T any](u UntypedAccessor) Accessor[S, T] {
	return Accessor[S, T]{
		Get: u.get.(func(*S) T),
		Set: u.set.(func(*S, T)),
	}
}

// Registry maps erased fields to erased accessors.
//
// The registry is plain owned configuration: build it during setup and pass
// it by pointer into baking and sampling. It is not safe for concurrent
// mutation.
type Registry struct {
	accessors map[UntypedField]UntypedAccessor
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		accessors: make(map[UntypedField]UntypedAccessor),
	}
}

// Register stores an accessor for a field. An existing entry for the same
// field is replaced (last write wins).
func (r *Registry) Register(f UntypedField, a UntypedAccessor) {
	r.accessors[f] = a
}

// Register stores a typed accessor under a typed field.
func Register[S, T any](r *Registry, f Field[S, T], a Accessor[S, T]) {
	r.Register(f.Untyped(), a.Untyped())
}

// Define creates a field from path, registers an accessor built from ptr
// and returns the field.
func Define[S, T any](r *Registry, path string, ptr func(source *S) *T) Field[S, T] {
	f := New[S, T](path)
	Register(r, f, AccessorOf(ptr))
	return f
}

// Get retrieves the accessor registered for f as an Accessor[S, T].
//
// Returns an *AccessorError with ErrCodeKeyNotFound when nothing is
// registered and ErrCodeTypeMismatch when the registered accessor has other
// types.
func Get[S, T any](r *Registry, f UntypedField) (Accessor[S, T], error) {
	u, ok := r.accessors[f]
	if !ok {
		return Accessor[S, T]{}, &AccessorError{Code: ErrCodeKeyNotFound, Field: f}
	}
	a, ok := TypedAccessor[S, T](u)
	if !ok {
		return Accessor[S, T]{}, &AccessorError{
			Code:  ErrCodeTypeMismatch,
			Field: f,
			Want:  Untyped[S, T](f.path),
		}
	}
	return a, nil
}

// Lookup returns the erased accessor registered for f.
func (r *Registry) Lookup(f UntypedField) (UntypedAccessor, bool) {
	a, ok := r.accessors[f]
	return a, ok
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	return len(r.accessors)
}

// Fields returns every registered field in sorted order.
func (r *Registry) Fields() []UntypedField {
	fields := make([]UntypedField, 0, len(r.accessors))
	for f := range r.accessors {
		fields = append(fields, f)
	}
	slices.SortFunc(fields, UntypedField.Compare)
	return fields
}
