package rule

import "github.com/simsieg/hyrise/pkg/container/types"

// columnGroup accumulates the tightest lower/upper boundary seen so
// far for one column. A boundary that loses the tightening
// comparison is implied by the surviving bound and is discarded
// entirely: a superseded bound never reappears in the output.
type columnGroup struct {
	column     types.ColumnId
	firstIndex int
	lower      *boundary
	upper      *boundary
}

// considerLower applies the tightening relation: LowerInclusive
// replaces best iff best.value < new.value; LowerExclusive replaces
// iff best.value <= new.value (ties flip to exclusive).
func (g *columnGroup) considerLower(b boundary) {
	if g.lower == nil {
		g.lower = &b
		return
	}
	best := g.lower
	var replace bool
	switch b.kind {
	case kindLowerInclusive:
		replace = types.Compare(best.value, b.value) < 0
	case kindLowerExclusive:
		replace = types.Compare(best.value, b.value) <= 0
	}
	if replace {
		g.lower = &b
	}
}

// considerUpper mirrors considerLower: UpperInclusive replaces best
// iff best.value > new.value; UpperExclusive replaces iff
// best.value >= new.value.
func (g *columnGroup) considerUpper(b boundary) {
	if g.upper == nil {
		g.upper = &b
		return
	}
	best := g.upper
	var replace bool
	switch b.kind {
	case kindUpperInclusive:
		replace = types.Compare(best.value, b.value) > 0
	case kindUpperExclusive:
		replace = types.Compare(best.value, b.value) >= 0
	}
	if replace {
		g.upper = &b
	}
}
