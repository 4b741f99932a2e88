// Package chunk implements the horizontal, fixed-width row batch that
// a table's chunk sequence is made of: a fixed set of same-length
// segment.Segment columns plus per-row MVCC metadata.
package chunk

import (
	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
)

// Chunk is an ordered tuple of segments, one per column, all of
// identical length.
type Chunk struct {
	segments []segment.Segment
	// RowVersions is non-nil iff the owning table was built with
	// MVCC enabled. Its length always equals the chunk's row count;
	// this core never reads or writes the slots beyond keeping that
	// invariant.
	RowVersions []RowVersionSlot
}

// RowVersionSlot is the per-row metadata reserved for a future MVCC
// layer. Only the slot's existence and count are meaningful here.
type RowVersionSlot struct {
	Begin uint64
	End   uint64
}

// New builds a chunk from a complete set of same-length segments.
// Callers (storage/table) are responsible for schema, type and length
// consistency checks; New itself performs no checks, and Size reports
// the first segment's length.
func New(segments []segment.Segment, mvccEnabled bool) *Chunk {
	c := &Chunk{segments: segments}
	if mvccEnabled {
		c.RowVersions = make([]RowVersionSlot, c.Size())
	}
	return c
}

// Size returns the chunk's row count, i.e. every segment's length.
func (c *Chunk) Size() int {
	if len(c.segments) == 0 {
		return 0
	}
	return c.segments[0].Size()
}

// ColumnCount returns the number of segments (== schema width).
func (c *Chunk) ColumnCount() int {
	return len(c.segments)
}

// Segment returns the segment backing columnID, or false if out of
// range.
func (c *Chunk) Segment(columnID types.ColumnId) (segment.Segment, bool) {
	if int(columnID) < 0 || int(columnID) >= len(c.segments) {
		return nil, false
	}
	return c.segments[int(columnID)], true
}

// Segments returns the full segment list in schema order. Callers
// must not mutate the returned slice.
func (c *Chunk) Segments() []segment.Segment {
	return c.segments
}
