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

	"github.com/dolthub/spearql/sql"
	"github.com/dolthub/spearql/sql/types"
)

// AggregateFunction is an expression whose evaluation depends on a group
// of input rows. Its single Arg must not itself contain another
// AggregateFunction - the nested-aggregate rejection in
// analyzer.ResolveAggregates enforces this, since a single-argument shape
// keeps the arity of every concrete aggregate uniform and makes "its
// children" mean "its one argument" unambiguously.
type AggregateFunction interface {
	Expression
	// FunctionName is the SQL name, e.g. "COUNT", as rendered by String
	// in plans and error messages. Synthesized output column names are
	// $a<n>, not function names.
	FunctionName() string
	// Arg is the aggregate's single argument expression.
	Arg() Expression
}

type aggregateFunction struct {
	name string
	arg  Expression
	typ  sql.Type
}

func (a *aggregateFunction) Children() []Expression { return []Expression{a.arg} }
func (a *aggregateFunction) Type() sql.Type         { return a.typ }
func (a *aggregateFunction) IsNullable() bool        { return false }
func (a *aggregateFunction) Resolved() bool          { return a.arg.Resolved() }
func (a *aggregateFunction) FunctionName() string    { return a.name }
func (a *aggregateFunction) Arg() Expression         { return a.arg }

func (a *aggregateFunction) String() string {
	return fmt.Sprintf("%s(%s)", a.name, a.arg.String())
}

func (a *aggregateFunction) selfKey() interface{} { return a.name }

// Count is COUNT(expr) / COUNT(*); its argument may be a Star placeholder.
type Count struct{ aggregateFunction }

func NewCount(arg Expression) *Count {
	return &Count{aggregateFunction{name: "COUNT", arg: arg, typ: types.Int64}}
}

func (c *Count) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: COUNT takes 1 child, got %d", len(children))
	}
	return NewCount(children[0]), nil
}

// Sum is SUM(expr), promoted to DOUBLE.
type Sum struct{ aggregateFunction }

func NewSum(arg Expression) *Sum {
	return &Sum{aggregateFunction{name: "SUM", arg: arg, typ: types.NumericResultType(arg.Type())}}
}

func (s *Sum) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: SUM takes 1 child, got %d", len(children))
	}
	return NewSum(children[0]), nil
}

// Avg is AVG(expr), always DOUBLE.
type Avg struct{ aggregateFunction }

func NewAvg(arg Expression) *Avg {
	return &Avg{aggregateFunction{name: "AVG", arg: arg, typ: types.Float64}}
}

func (s *Avg) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: AVG takes 1 child, got %d", len(children))
	}
	return NewAvg(children[0]), nil
}

// Max is MAX(expr), same type as its argument.
type Max struct{ aggregateFunction }

func NewMax(arg Expression) *Max {
	return &Max{aggregateFunction{name: "MAX", arg: arg, typ: arg.Type()}}
}

func (s *Max) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: MAX takes 1 child, got %d", len(children))
	}
	return NewMax(children[0]), nil
}

// Min is MIN(expr), same type as its argument.
type Min struct{ aggregateFunction }

func NewMin(arg Expression) *Min {
	return &Min{aggregateFunction{name: "MIN", arg: arg, typ: arg.Type()}}
}

func (s *Min) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: MIN takes 1 child, got %d", len(children))
	}
	return NewMin(children[0]), nil
}

// DistinctAggregateFunction wraps an AggregateFunction to mark it as
// operating over distinct argument values, e.g. COUNT(DISTINCT x). It is
// deliberately a thin wrapper with no execution semantics of its own:
// distinct-aggregate lowering is rejected during analysis, not implemented.
type DistinctAggregateFunction struct {
	Inner AggregateFunction
}

func NewDistinctAggregateFunction(inner AggregateFunction) *DistinctAggregateFunction {
	return &DistinctAggregateFunction{Inner: inner}
}

func (d *DistinctAggregateFunction) Children() []Expression { return []Expression{d.Inner} }

func (d *DistinctAggregateFunction) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: DistinctAggregateFunction takes 1 child, got %d", len(children))
	}
	inner, ok := children[0].(AggregateFunction)
	if !ok {
		return nil, fmt.Errorf("expression: DistinctAggregateFunction child must be an AggregateFunction, got %T", children[0])
	}
	return NewDistinctAggregateFunction(inner), nil
}

func (d *DistinctAggregateFunction) Type() sql.Type   { return d.Inner.Type() }
func (d *DistinctAggregateFunction) IsNullable() bool { return d.Inner.IsNullable() }
func (d *DistinctAggregateFunction) Resolved() bool   { return d.Inner.Resolved() }
func (d *DistinctAggregateFunction) FunctionName() string { return d.Inner.FunctionName() }
func (d *DistinctAggregateFunction) Arg() Expression   { return d.Inner.Arg() }

func (d *DistinctAggregateFunction) String() string {
	return fmt.Sprintf("%s(DISTINCT %s)", d.Inner.FunctionName(), d.Inner.Arg().String())
}

func (d *DistinctAggregateFunction) selfKey() interface{} { return "distinct:" + d.Inner.FunctionName() }
