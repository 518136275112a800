package pipeline

import (
	"fmt"
	"reflect"

	"github.com/roach88/motion/internal/action"
	"github.com/roach88/motion/internal/field"
)

// Key identifies a pipeline by the type tokens of the subject id, the
// source struct and the target value.
type Key struct {
	Subject reflect.Type
	Source  reflect.Type
	Target  reflect.Type
}

// KeyOf returns the key for subject id type I and field types S and T.
func KeyOf[I comparable, S, T any]() Key {
	return Key{
		Subject: reflect.TypeFor[I](),
		Source:  reflect.TypeFor[S](),
		Target:  reflect.TypeFor[T](),
	}
}

// KeyFromAction returns the key of the pipeline responsible for k.
func KeyFromAction(k action.Key) Key {
	return Key{
		Subject: k.Subject.Type,
		Source:  k.Field.Source(),
		Target:  k.Field.Target(),
	}
}

// Compare orders keys by subject, source, then target type.
func (k Key) Compare(o Key) int {
	if c := field.CompareTypes(k.Subject, o.Subject); c != 0 {
		return c
	}
	if c := field.CompareTypes(k.Source, o.Source); c != 0 {
		return c
	}
	return field.CompareTypes(k.Target, o.Target)
}

func (k Key) String() string {
	return fmt.Sprintf("(%v, %v -> %v)", k.Subject, k.Source, k.Target)
}
