// Package timeline plays compiled tracks back against host data.
//
// A Timeline is built with a Builder: actions are added with Act (or ActStep
// for discrete values), played into track fragments, combined with the
// package track combinators and added as tracks. After Compile the host
// drives the timeline once per frame:
//
//	timeline.BakeActions(tl, pipelines, world, accessors) // after structural changes
//	tl.SetTargetTime(t)
//	tl.Mark()
//	timeline.SampleQueuedActions(tl, pipelines, world, accessors)
//
// Mark converts the move from the current cursor to the target cursor into
// at most one sample mark per (subject, field) key. Sampling writes the
// marked values back through the registered pipelines and clears the marks.
//
// A Timeline is not safe for concurrent use.
package timeline
