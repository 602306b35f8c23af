package instrument

import "math/rand"

// RandomIDs returns an IDSource backed by math/rand, matching
// end-to-end scenario 2's "some integer <N>" requirement: the value
// itself is unconstrained, only its presence and format.
func RandomIDs() IDSource {
	return func() uint32 { return rand.Uint32() }
}

// SequentialIDs returns an IDSource that yields 0, 1, 2, … — useful for
// deterministic tests and golden fixtures.
func SequentialIDs() IDSource {
	next := uint32(0)
	return func() uint32 {
		id := next
		next++
		return id
	}
}
