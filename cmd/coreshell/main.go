// Command coreshell is a small demonstration driver: it loads engine
// config, builds an in-memory table from a literal row list, runs a
// predicate chain through the composition rule, executes the fused
// scan (or a join against a second literal table), and prints the
// resulting position list. It intentionally has no SQL parser, so the
// "query" is wired up in Go rather than parsed from text.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/simsieg/hyrise/pkg/config"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/logutil"
	"github.com/simsieg/hyrise/pkg/sql/colexec/nestedloopjoin"
	"github.com/simsieg/hyrise/pkg/sql/colexec/tablescan"
	"github.com/simsieg/hyrise/pkg/sql/plan"
	"github.com/simsieg/hyrise/pkg/sql/plan/rule"
	"github.com/simsieg/hyrise/pkg/storage/table"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "coreshell",
		Short: "demonstration driver for the columnar query core",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := config.Load(configPath)
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	root.AddCommand(scanCmd(), joinCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// demoSchema is the fixed two-column (id INT, score DOUBLE) shape
// every subcommand builds its literal table against.
func demoSchema() []types.ColumnDefinition {
	return []types.ColumnDefinition{
		{Name: "id", DataType: types.T_int32, Nullable: false},
		{Name: "score", DataType: types.T_float64, Nullable: true},
	}
}

func buildDemoTable(rows [][2]any) (*table.Table, error) {
	cfg := config.Get()
	t := table.New(demoSchema(), table.Data, cfg.MaxChunkSize, cfg.MVCCEnabled)
	for _, r := range rows {
		id := types.Int32(r[0].(int32))
		var score types.Value
		if r[1] == nil {
			score = types.Null(types.T_float64)
		} else {
			score = types.Float64(r[1].(float64))
		}
		if err := t.Append([]types.Value{id, score}); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// composedBetween builds the chain `col > lo` then `col < hi`
// (deliberately two separate one-sided predicates) and runs it
// through the composition rule, returning the single fused Between
// expression the chain reduces to.
func composedBetween(column types.ColumnId, lo, hi types.Value) (*plan.Between, error) {
	source := plan.NewSourceNode("demo")
	lowerBound := plan.NewPredicateNode(&plan.BinaryComparison{
		Op:  types.OpGT,
		Lhs: &plan.ColumnRef{Column: column},
		Rhs: &plan.Literal{Value: lo},
	}, source)
	upperBound := plan.NewPredicateNode(&plan.BinaryComparison{
		Op:  types.OpLT,
		Lhs: &plan.ColumnRef{Column: column},
		Rhs: &plan.Literal{Value: hi},
	}, lowerBound)

	rewritten := rule.BetweenComposition{}.Rewrite(upperBound)
	pn, ok := rewritten.(*plan.PredicateNode)
	if !ok {
		return nil, fmt.Errorf("coreshell: composition did not yield a predicate node")
	}
	between, ok := pn.Predicate().(*plan.Between)
	if !ok {
		return nil, fmt.Errorf("coreshell: composition did not fuse to a Between")
	}
	return between, nil
}

func printPositions(label string, t *table.Table) {
	fmt.Printf("%s: %d chunk(s), %d row(s)\n", label, t.ChunkCount(), t.RowCount())
	for i := 0; i < t.ChunkCount(); i++ {
		c, err := t.GetChunk(types.ChunkId(i))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		seg0, ok := c.Segment(0)
		if !ok {
			continue
		}
		for off := 0; off < c.Size(); off++ {
			p := seg0.ValueAt(types.ChunkOffset(off))
			fmt.Printf("  chunk %d offset %d -> null=%v value=%v\n", i, off, p.Null, p.Value)
		}
	}
}

func scanCmd() *cobra.Command {
	var lo, hi float64
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "compose a between-predicate chain and run it as a table scan",
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := buildDemoTable([][2]any{
				{int32(1), 10.0},
				{int32(2), 20.0},
				{int32(3), nil},
				{int32(4), 40.0},
			})
			if err != nil {
				return err
			}

			between, err := composedBetween(1, types.Float64(lo), types.Float64(hi))
			if err != nil {
				return err
			}
			logutil.Info(context.Background(), "fused predicate", zap.Uint8("condition", uint8(between.Condition)))

			op := tablescan.New(t, between.Column, between.Lo, between.Hi, between.Condition)
			result, err := op.Execute(context.Background())
			if err != nil {
				return err
			}
			printPositions("scan result", result)
			return nil
		},
	}
	cmd.Flags().Float64Var(&lo, "lo", 10, "lower bound (exclusive, from the demo chain's first predicate)")
	cmd.Flags().Float64Var(&hi, "hi", 40, "upper bound (exclusive, from the demo chain's second predicate)")
	return cmd
}

func joinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "run a nested-loop left join between two literal demo tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := buildDemoTable([][2]any{
				{int32(1), 10.0},
				{int32(2), 20.0},
				{int32(3), 30.0},
			})
			if err != nil {
				return err
			}
			right, err := buildDemoTable([][2]any{
				{int32(2), 200.0},
				{int32(3), 300.0},
				{int32(5), 500.0},
			})
			if err != nil {
				return err
			}

			op := nestedloopjoin.New(left, right, nestedloopjoin.Left, 0, 0, types.OpEQ)
			result, err := op.Execute(context.Background())
			if err != nil {
				return err
			}
			printPositions("join result", result)
			return nil
		},
	}
	return cmd
}
