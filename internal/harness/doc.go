// Package harness runs animation scenarios against a reference scene.
//
// A scenario declares scene nodes, composes actions into tracks, and lists
// the frames to sample. Running it produces a trace of every value written
// per frame, which tests compare against golden snapshots and the CLI can
// record to a store.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: fade
//	description: "Fade a box out and back in"
//	nodes:
//	  - id: box
//	    opacity: 1
//	tracks:
//	  - chain:
//	      - act: { node: box, field: opacity, to: 0, duration: 1 }
//	      - act: { node: box, field: opacity, to: 1, duration: 1, ease: cubic_in_out }
//	frames:
//	  - time: 0.5
//	  - advance: 1
//	expect:
//	  - { frame: 1, node: box, field: opacity, value: 0.5 }
//
// Files are checked against an embedded CUE schema before decoding, then
// decoded strictly (unknown fields are errors) and validated for node
// references and value types.
//
// # Steps
//
//   - act: animate one field with to (absolute) or by (relative)
//   - chain, all, any: sequence, overlay, or overlay with the shortest duration
//   - flow: stagger steps by a fixed delay
//   - delay: shift one step later
//
// # Determinism
//
// Timeline ids come from a fixed generator seeded with the scenario name,
// action ids from a per-timeline logical clock, and written values are
// rendered as canonical JSON with floats rounded to six places. Two runs
// of one scenario produce byte-identical traces.
package harness
