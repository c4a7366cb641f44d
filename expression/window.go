// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expression

import (
	"fmt"
	"strings"

	"github.com/dolthub/spearql/sql"
	"github.com/dolthub/spearql/sql/types"
)

// Direction is the sort direction of a SortOrder.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// NullOrdering places NULLs first or last within a sorted group. Defaults
// follow the common SQL convention (ASC -> NullsFirst, DESC -> NullsLast)
// when not specified explicitly.
type NullOrdering int

const (
	NullsFirst NullOrdering = iota
	NullsLast
)

// SortOrder is one ORDER BY / window ORDER BY entry.
type SortOrder struct {
	Expr         Expression
	Direction    Direction
	NullOrdering NullOrdering
}

// NewSortOrder builds a SortOrder with the conventional default null
// ordering for its direction.
func NewSortOrder(expr Expression, dir Direction) SortOrder {
	no := NullsFirst
	if dir == Descending {
		no = NullsLast
	}
	return SortOrder{Expr: expr, Direction: dir, NullOrdering: no}
}

func (s SortOrder) String() string {
	return fmt.Sprintf("%s %s", s.Expr.String(), s.Direction)
}

// FrameBoundKind names one edge of a window frame.
type FrameBoundKind int

const (
	UnboundedPreceding FrameBoundKind = iota
	Preceding
	CurrentRow
	Following
	UnboundedFollowing
)

// FrameBound is one edge (lower or upper) of a WindowFrame. Offset is nil
// for UnboundedPreceding/CurrentRow/UnboundedFollowing and a resolved
// numeric expression for Preceding/Following.
type FrameBound struct {
	Kind   FrameBoundKind
	Offset Expression
}

// WindowFrame bounds the row-set a window function is computed over.
type WindowFrame struct {
	Lower FrameBound
	Upper FrameBound
}

// DefaultFrame is RANGE BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW, the
// default frame for an aggregate window function with an ORDER BY.
var DefaultFrame = WindowFrame{
	Lower: FrameBound{Kind: UnboundedPreceding},
	Upper: FrameBound{Kind: CurrentRow},
}

// WindowSpec is the partition/order/frame a WindowFunction is computed
// over. Two specs are considered "the same" for the purposes of window
// layering iff their partition-by and order-by expressions (SameOrEqual),
// sort directions, null orderings and frame bounds all match - sameSpec
// below is exactly that comparison.
type WindowSpec struct {
	PartitionBy []Expression
	OrderBy     []SortOrder
	Frame       WindowFrame
}

// expressions returns every expression reachable directly from the
// partitioning (partition-by, order-by, and any non-nil frame bound
// offsets) - used by collectAggregateFunctions/collectWindowFunctions to
// walk the window's surrounding clauses without reaching into the
// function itself.
func (w WindowSpec) expressions() []Expression {
	var out []Expression
	out = append(out, w.PartitionBy...)
	for _, o := range w.OrderBy {
		out = append(out, o.Expr)
	}
	for _, b := range []FrameBound{w.Frame.Lower, w.Frame.Upper} {
		if b.Offset != nil {
			out = append(out, b.Offset)
		}
	}
	return out
}

func (w WindowSpec) String() string {
	var parts []string
	if len(w.PartitionBy) > 0 {
		ps := make([]string, len(w.PartitionBy))
		for i, p := range w.PartitionBy {
			ps[i] = p.String()
		}
		parts = append(parts, "PARTITION BY "+strings.Join(ps, ", "))
	}
	if len(w.OrderBy) > 0 {
		os := make([]string, len(w.OrderBy))
		for i, o := range w.OrderBy {
			os[i] = o.String()
		}
		parts = append(parts, "ORDER BY "+strings.Join(os, ", "))
	}
	return strings.Join(parts, " ")
}

// SameSpec reports whether two WindowSpecs are structurally equal, used
// by ResolveAggregates to group WindowAliases into Window layers.
func SameSpec(a, b WindowSpec) bool {
	return sameSpec(a, b)
}

func sameSpec(a, b WindowSpec) bool {
	if len(a.PartitionBy) != len(b.PartitionBy) || len(a.OrderBy) != len(b.OrderBy) {
		return false
	}
	for i := range a.PartitionBy {
		if !SameOrEqual(a.PartitionBy[i], b.PartitionBy[i]) {
			return false
		}
	}
	for i := range a.OrderBy {
		if a.OrderBy[i].Direction != b.OrderBy[i].Direction || a.OrderBy[i].NullOrdering != b.OrderBy[i].NullOrdering {
			return false
		}
		if !SameOrEqual(a.OrderBy[i].Expr, b.OrderBy[i].Expr) {
			return false
		}
	}
	if a.Frame.Lower.Kind != b.Frame.Lower.Kind || a.Frame.Upper.Kind != b.Frame.Upper.Kind {
		return false
	}
	return SameOrEqual(a.Frame.Lower.Offset, b.Frame.Lower.Offset) &&
		SameOrEqual(a.Frame.Upper.Offset, b.Frame.Upper.Offset)
}

// WindowFunction wraps either an AggregateFunction or a ranking/analytic
// function (RowNumber, Rank, DenseRank, ...) together with the WindowSpec
// it is computed over, e.g. `max(a) OVER (PARTITION BY b)`.
type WindowFunction struct {
	Func Expression
	Spec WindowSpec
}

func NewWindowFunction(fn Expression, spec WindowSpec) *WindowFunction {
	return &WindowFunction{Func: fn, Spec: spec}
}

// Children exposes Func plus every expression in Spec, so the generic
// TransformUp/TransformDown/Collect/References traversals reach into a
// window call like any other node. collectAggregateFunctions/
// collectWindowFunctions do *not* use this generic traversal for the
// "treat aggregates inside Func specially" rule - see collect.go.
func (w *WindowFunction) Children() []Expression {
	children := make([]Expression, 0, 1+len(w.Spec.expressions()))
	children = append(children, w.Func)
	children = append(children, w.Spec.expressions()...)
	return children
}

func (w *WindowFunction) WithChildren(children ...Expression) (Expression, error) {
	if len(children) < 1 {
		return nil, fmt.Errorf("expression: WindowFunction takes at least 1 child, got %d", len(children))
	}
	rest := children[1:]
	newSpec := w.Spec
	newSpec.PartitionBy = append([]Expression(nil), w.Spec.PartitionBy...)
	newSpec.OrderBy = append([]SortOrder(nil), w.Spec.OrderBy...)

	idx := 0
	for i := range newSpec.PartitionBy {
		newSpec.PartitionBy[i] = rest[idx]
		idx++
	}
	for i := range newSpec.OrderBy {
		newSpec.OrderBy[i].Expr = rest[idx]
		idx++
	}
	if w.Spec.Frame.Lower.Offset != nil {
		newSpec.Frame.Lower.Offset = rest[idx]
		idx++
	}
	if w.Spec.Frame.Upper.Offset != nil {
		newSpec.Frame.Upper.Offset = rest[idx]
		idx++
	}

	return NewWindowFunction(children[0], newSpec), nil
}

func (w *WindowFunction) Type() sql.Type   { return w.Func.Type() }
func (w *WindowFunction) IsNullable() bool { return true }
func (w *WindowFunction) Resolved() bool {
	if !w.Func.Resolved() {
		return false
	}
	return ExpressionsResolved(w.Spec.expressions()...)
}

func (w *WindowFunction) String() string {
	spec := w.Spec.String()
	if spec == "" {
		return fmt.Sprintf("%s OVER ()", w.Func.String())
	}
	return fmt.Sprintf("%s OVER (%s)", w.Func.String(), spec)
}

// selfKey covers the parts of Spec that Children does not expose: how many
// children are partition keys, each ORDER BY entry's direction and null
// ordering, and the frame bound kinds.
func (w *WindowFunction) selfKey() interface{} {
	key := fmt.Sprintf("partitions=%d;frame=%d,%d", len(w.Spec.PartitionBy), w.Spec.Frame.Lower.Kind, w.Spec.Frame.Upper.Kind)
	for _, o := range w.Spec.OrderBy {
		key += fmt.Sprintf(";order=%d,%d", o.Direction, o.NullOrdering)
	}
	return key
}

// rankingFunction is the shared shape of the non-aggregate analytic
// functions (ROW_NUMBER, RANK, DENSE_RANK): no arguments, always BIGINT,
// never nullable. Gives WindowFunction.Func a non-aggregate shape to wrap.
type rankingFunction struct {
	name string
}

func (r *rankingFunction) Children() []Expression                        { return nil }
func (r *rankingFunction) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: %s takes no children, got %d", r.name, len(children))
	}
	return r, nil
}
func (r *rankingFunction) Type() sql.Type   { return types.Int64 }
func (r *rankingFunction) IsNullable() bool { return false }
func (r *rankingFunction) Resolved() bool   { return true }
func (r *rankingFunction) String() string   { return r.name + "()" }
func (r *rankingFunction) selfKey() interface{} { return r.name }

type RowNumber struct{ rankingFunction }
type Rank struct{ rankingFunction }
type DenseRank struct{ rankingFunction }

func NewRowNumber() *RowNumber { return &RowNumber{rankingFunction{"ROW_NUMBER"}} }
func NewRank() *Rank           { return &Rank{rankingFunction{"RANK"}} }
func NewDenseRank() *DenseRank { return &DenseRank{rankingFunction{"DENSE_RANK"}} }

func (r *RowNumber) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: ROW_NUMBER takes no children, got %d", len(children))
	}
	return r, nil
}

func (r *Rank) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: RANK takes no children, got %d", len(children))
	}
	return r, nil
}

func (r *DenseRank) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: DENSE_RANK takes no children, got %d", len(children))
	}
	return r, nil
}
