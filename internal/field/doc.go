// Package field identifies animatable fields of host types and the accessors
// that read and write them.
//
// A Field[S, T] is a statically typed path from a source type S to a target
// value type T (for example the x component of a node's position). Erasing it
// with Untyped yields an UntypedField: two reflect type tokens plus the path
// string. UntypedField is comparable and totally ordered, so it can key maps
// and sorted tables without the engine knowing S or T at compile time.
//
// Accessors are the read/write pair registered for a field. The Registry
// stores them type-erased and hands them back typed:
//
//	reg := field.NewRegistry()
//	posX := field.Define(reg, field.Join("position", "x"), func(n *Node) *float64 { return &n.Position.X })
//
//	acc, err := field.Get[Node, float64](reg, posX.Untyped())
//	if field.IsTypeMismatch(err) {
//	    // registered, but not as Node -> float64
//	}
//
// # Type safety
//
// Re-attaching static types to an erased value is always guarded by a type
// token comparison. The only paths that skip the comparison carry the
// Unchecked suffix, and even those fail with a runtime panic rather than
// reinterpreting memory.
package field
