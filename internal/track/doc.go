// Package track compiles scheduled action clips into immutable,
// binary-searchable tracks.
//
// Clips are first collected into a Fragment: a mutable map from action Key to
// a time-sorted Sequence. Fragments are combined with Chain, All, Any, Flow
// and Delay, which only move clips in time, and are finally compiled into a
// Track whose clips live in one flat arena addressed by sorted key spans.
//
// Overlapping clips on the same key are a programming error and panic with
// an *OverlapError.
package track
