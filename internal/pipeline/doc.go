// Package pipeline connects the timeline to host storage.
//
// A Pipeline handles every action whose key matches one (subject id type,
// source type, target type) triple. Bake folds each sequence's actions from
// the host's live value into start/end segments; Sample writes the value
// selected by each action's mark back to the host.
//
// Most hosts only need Lookup, which builds both halves from a single
// "find the source struct for this subject" function:
//
//	reg := pipeline.NewRegistry[*Scene]()
//	pipeline.Register[*Scene, NodeID, Node, float64](reg, (*Scene).Node)
//
// Hosts with unusual storage implement Pipeline directly, usually on top of
// the generic Bake and Sample helpers.
package pipeline
