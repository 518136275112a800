package track

import "slices"

// nonNil drops nil fragments. Combinators consume their inputs, so it
// panics when a fragment is passed twice or was already consumed.
func nonNil(frags []*Fragment) []*Fragment {
	out := make([]*Fragment, 0, len(frags))
	for _, f := range frags {
		if f == nil {
			continue
		}
		if f.sequences == nil {
			panic("track: fragment already consumed by a combinator")
		}
		if slices.Contains(out, f) {
			panic("track: fragment passed to a combinator twice")
		}
		out = append(out, f)
	}
	return out
}

// Chain runs fragments one after another. Each fragment is delayed by the
// summed durations of the fragments before it; the result's duration is
// the sum of all durations.
func Chain(frags ...*Fragment) *Fragment {
	frags = nonNil(frags)
	if len(frags) == 0 {
		return NewFragment()
	}

	out := frags[0]
	offset := out.duration
	for _, f := range frags[1:] {
		f.delay(offset)
		out.absorb(f)
		offset += f.duration
	}
	out.duration = offset
	return out
}

// All runs fragments concurrently at their own offsets. The result's
// duration is the longest input duration.
func All(frags ...*Fragment) *Fragment {
	frags = nonNil(frags)
	if len(frags) == 0 {
		return NewFragment()
	}

	out := frags[0]
	longest := out.duration
	for _, f := range frags[1:] {
		longest = max(longest, f.duration)
		out.absorb(f)
	}
	out.duration = longest
	return out
}

// Any runs fragments concurrently like All, but the result's duration is
// the shortest input duration. Clips running past it are kept.
func Any(frags ...*Fragment) *Fragment {
	frags = nonNil(frags)
	if len(frags) == 0 {
		return NewFragment()
	}

	out := frags[0]
	shortest := out.duration
	for _, f := range frags[1:] {
		shortest = min(shortest, f.duration)
		out.absorb(f)
	}
	out.duration = shortest
	return out
}

// Flow staggers fragments by a fixed delay: fragment i starts at i*delay.
// The result's duration is the latest end over all fragments.
func Flow(delay float32, frags ...*Fragment) *Fragment {
	frags = nonNil(frags)
	if len(frags) == 0 {
		return NewFragment()
	}

	out := frags[0]
	end := out.duration
	var offset float32
	for _, f := range frags[1:] {
		offset += delay
		end = max(end, offset+f.duration)
		f.delay(offset)
		out.absorb(f)
	}
	out.duration = end
	return out
}

// Delay shifts every clip of f later by d and extends its duration by d.
func Delay(d float32, f *Fragment) *Fragment {
	if f == nil {
		f = NewFragment()
	}
	f.delay(d)
	f.duration += d
	return f
}
