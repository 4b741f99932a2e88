package segment

import "github.com/simsieg/hyrise/pkg/container/types"

// Encoding names the concrete storage strategy behind a Segment,
// letting operators decide whether two segments are "the same
// encoding" for fast-path dispatch without resorting to reflection.
type Encoding uint8

const (
	EncodingValue Encoding = iota
	EncodingDictionary
	EncodingReference
)

type dictionaryLike interface {
	UniqueValuesCount() types.ValueId
}

// EncodingOf classifies seg. A reference segment is always classified
// as EncodingReference; the encoding of the column it points into is
// not consulted.
func EncodingOf(seg Segment) Encoding {
	switch seg.(type) {
	case *ReferenceSegment:
		return EncodingReference
	}
	if _, ok := seg.(dictionaryLike); ok {
		return EncodingDictionary
	}
	return EncodingValue
}

// Resolve attempts to view seg as a TypedSegment[T], succeeding for
// ValueSegment[T] and DictionarySegment[T] whose element type matches
// T. It fails for ReferenceSegment, which callers must dereference
// through the erased path instead.
func Resolve[T Numeric](seg Segment) (TypedSegment[T], bool) {
	s, ok := seg.(TypedSegment[T])
	return s, ok
}

// AsDictionary narrows seg to its dictionary-segment operations
// (LowerBound/UpperBound/UniqueValuesCount/Code) when it is
// dictionary-encoded with element type T.
func AsDictionary[T Numeric](seg Segment) (*DictionarySegment[T], bool) {
	s, ok := seg.(*DictionarySegment[T])
	return s, ok
}
