// Package colexec defines the operator contract table-scan and
// nested-loop join implement: a synchronous, single-call Execute,
// since operators are run directly by a caller-supplied scheduler
// rather than a vectorized pipeline internal to the package.
package colexec

import (
	"context"

	"github.com/simsieg/hyrise/pkg/storage/table"
)

// Operator is the physical-plan execution contract every scan/join
// operator satisfies.
type Operator interface {
	Name() string
	Execute(ctx context.Context) (*table.Table, error)
	DeepCopy(inputs ...Operator) Operator
	SetParameters(params map[string]any)
}
