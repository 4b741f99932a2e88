package types

// Value is a tagged variant over the supported column types plus an
// explicit NULL state. Comparisons follow SQL three-valued logic: any
// comparison touching NULL is Unknown and never satisfies a
// predicate.
type Value struct {
	typ    T
	isNull bool
	i32    int32
	i64    int64
	f32    float32
	f64    float64
	str    string
}

// Null constructs a NULL value of the given type. The type is kept so
// callers can still ask DataType() of a NULL literal (e.g. to type
// check a between-predicate bound).
func Null(t T) Value {
	return Value{typ: t, isNull: true}
}

func Int32(v int32) Value    { return Value{typ: T_int32, i32: v} }
func Int64(v int64) Value    { return Value{typ: T_int64, i64: v} }
func Float32(v float32) Value { return Value{typ: T_float32, f32: v} }
func Float64(v float64) Value { return Value{typ: T_float64, f64: v} }
func String(v string) Value   { return Value{typ: T_varchar, str: v} }

func (v Value) DataType() T  { return v.typ }
func (v Value) IsNull() bool { return v.isNull }

func (v Value) AsInt32() int32     { return v.i32 }
func (v Value) AsInt64() int64     { return v.i64 }
func (v Value) AsFloat32() float32 { return v.f32 }
func (v Value) AsFloat64() float64 { return v.f64 }
func (v Value) AsString() string   { return v.str }

// Trivalent is the result of a SQL comparison: True, False, or
// Unknown (whenever either operand is NULL).
type Trivalent uint8

const (
	Unknown Trivalent = iota
	True
	False
)

// Compare returns -1, 0, 1 for a < b, a == b, a > b, restricted to
// two non-null values of the same type. Callers must check IsNull()
// on both operands first; Compare panics on a type mismatch since
// that indicates a caller bug, not a data condition.
func Compare(a, b Value) int {
	if a.typ != b.typ {
		panic("types: Compare called on mismatched types")
	}
	switch a.typ {
	case T_int32:
		return compareOrdered(a.i32, b.i32)
	case T_int64:
		return compareOrdered(a.i64, b.i64)
	case T_float32:
		return compareOrdered(a.f32, b.f32)
	case T_float64:
		return compareOrdered(a.f64, b.f64)
	case T_varchar:
		return compareOrdered(a.str, b.str)
	default:
		panic("types: Compare called on invalid type")
	}
}

func compareOrdered[T int32 | int64 | float32 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareOp is one of the six SQL comparison operators.
type CompareOp uint8

const (
	OpEQ CompareOp = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

func (op CompareOp) String() string {
	switch op {
	case OpEQ:
		return "="
	case OpNE:
		return "<>"
	case OpLT:
		return "<"
	case OpLE:
		return "<="
	case OpGT:
		return ">"
	case OpGE:
		return ">="
	default:
		return "?"
	}
}

// Flip returns the operator that holds when the operands of op are
// swapped, e.g. `a < b` iff `b > a`. Used for right-join
// normalization and for value-op-column forms during boundary
// derivation.
func (op CompareOp) Flip() CompareOp {
	switch op {
	case OpLT:
		return OpGT
	case OpLE:
		return OpGE
	case OpGT:
		return OpLT
	case OpGE:
		return OpLE
	default:
		return op
	}
}

// EvalTrivalent evaluates `a op b` under SQL three-valued semantics.
func EvalTrivalent(op CompareOp, a, b Value) Trivalent {
	if a.IsNull() || b.IsNull() {
		return Unknown
	}
	c := Compare(a, b)
	var holds bool
	switch op {
	case OpEQ:
		holds = c == 0
	case OpNE:
		holds = c != 0
	case OpLT:
		holds = c < 0
	case OpLE:
		holds = c <= 0
	case OpGT:
		holds = c > 0
	case OpGE:
		holds = c >= 0
	}
	if holds {
		return True
	}
	return False
}
