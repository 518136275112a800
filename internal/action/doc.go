// Package action stores the value transitions a timeline plays back.
//
// An action is a pure function from a field's current value to its next
// value, tagged with the (subject, field) Key it targets. Actions of
// different value types live side by side in one Store: each value type gets
// its own column, and the Store keeps the key, easing and sample mark of every
// action in separate relations so baking and sampling can run independently.
//
// Typed access goes through package-level generic functions (Add, Get,
// SetInterp, SetSegment, ...) since methods cannot carry type parameters.
// Every typed getter fails closed: asking for the wrong value type returns
// false rather than panicking.
package action
