package field

import (
	"cmp"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
)

// Type tokens are ordered by name first. Distinct types can share a name
// (same identifier in two packages with the same base name), so ties are
// broken by package path, walking into element and key types. Types that
// still tie, such as unnamed structs over such types, fall back to the
// order in which the process first compared them.
var (
	typeSeq   atomic.Uint64
	typeOrder sync.Map // reflect.Type -> uint64
)

// CompareTypes totally orders reflect type tokens. A nil type sorts first.
func CompareTypes(a, b reflect.Type) int {
	switch {
	case a == b:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c := cmp.Or(strings.Compare(a.String(), b.String()), comparePath(a, b)); c != 0 {
		return c
	}
	return cmp.Compare(typeRank(a), typeRank(b))
}

// comparePath orders two types with the same printed name by the import
// paths of the named types they are built from.
func comparePath(a, b reflect.Type) int {
	if c := cmp.Or(
		strings.Compare(a.PkgPath(), b.PkgPath()),
		strings.Compare(a.Name(), b.Name()),
		cmp.Compare(a.Kind(), b.Kind()),
	); c != 0 || a.Name() != "" {
		return c
	}
	switch a.Kind() {
	case reflect.Map:
		return cmp.Or(comparePath(a.Key(), b.Key()), comparePath(a.Elem(), b.Elem()))
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		return comparePath(a.Elem(), b.Elem())
	}
	return 0
}

func typeRank(t reflect.Type) uint64 {
	if v, ok := typeOrder.Load(t); ok {
		return v.(uint64)
	}
	v, _ := typeOrder.LoadOrStore(t, typeSeq.Add(1))
	return v.(uint64)
}
