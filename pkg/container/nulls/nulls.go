// Package nulls wraps github.com/RoaringBitmap/roaring to track
// NULL positions within a value segment.
package nulls

import "github.com/RoaringBitmap/roaring"

// Bitmap marks a set of positions (segment offsets) as NULL.
type Bitmap struct {
	rb *roaring.Bitmap
}

// New returns an empty null bitmap.
func New() *Bitmap {
	return &Bitmap{rb: roaring.NewBitmap()}
}

// Add marks position i as NULL.
func (b *Bitmap) Add(i uint32) {
	b.rb.Add(i)
}

// Contains reports whether position i is marked NULL.
func (b *Bitmap) Contains(i uint32) bool {
	if b == nil || b.rb == nil {
		return false
	}
	return b.rb.Contains(i)
}

// Count returns the number of NULL positions.
func (b *Bitmap) Count() int {
	if b == nil || b.rb == nil {
		return 0
	}
	return int(b.rb.GetCardinality())
}

// Any reports whether at least one position is NULL.
func (b *Bitmap) Any() bool {
	return b.Count() > 0
}

// Clone returns an independent copy.
func (b *Bitmap) Clone() *Bitmap {
	if b == nil || b.rb == nil {
		return New()
	}
	return &Bitmap{rb: b.rb.Clone()}
}
