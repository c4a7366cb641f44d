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

package plan

import (
	"fmt"
	"strings"

	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/sql"
)

// Aggregate is the resolved form of a grouping/aggregation: it groups
// Child's rows by KeyAliases and computes AggAliases over each group.
// Its output schema is the concatenation of the grouping keys' and
// aggregates' synthetic InternalAttributes - never user-visible column
// names, since those live one or more layers up in the enclosing Project
// - those live one or more layers up in the enclosing Project.
type Aggregate struct {
	UnaryNode
	KeyAliases []*expression.GroupingAlias
	AggAliases []*expression.AggregationAlias
}

func NewAggregate(keyAliases []*expression.GroupingAlias, aggAliases []*expression.AggregationAlias, child LogicalPlan) *Aggregate {
	return &Aggregate{UnaryNode: UnaryNode{Child: child}, KeyAliases: keyAliases, AggAliases: aggAliases}
}

// KeysOnly reports whether this Aggregate has no aggregate functions,
// i.e. it implements a plain GROUP BY / DISTINCT with no aggregation -
// useful to a later physical planner deciding whether a sort-based
// distinct applies.
func (a *Aggregate) KeysOnly() bool { return len(a.AggAliases) == 0 }

func (a *Aggregate) WithChildren(children ...LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Aggregate takes 1 child, got %d", len(children))
	}
	return NewAggregate(a.KeyAliases, a.AggAliases, children[0]), nil
}

func (a *Aggregate) Schema() sql.Schema {
	s := make(sql.Schema, 0, len(a.KeyAliases)+len(a.AggAliases))
	for _, k := range a.KeyAliases {
		s = append(s, &sql.Column{Name: k.Name(), Type: k.Type(), Nullable: k.IsNullable()})
	}
	for _, ag := range a.AggAliases {
		s = append(s, &sql.Column{Name: ag.Name(), Type: ag.Type(), Nullable: ag.IsNullable()})
	}
	return s
}

func (a *Aggregate) Resolved() bool {
	if !a.Child.Resolved() {
		return false
	}
	for _, k := range a.KeyAliases {
		if !k.Resolved() {
			return false
		}
	}
	for _, ag := range a.AggAliases {
		if !ag.Resolved() {
			return false
		}
	}
	return true
}

func (a *Aggregate) Expressions() []expression.Expression {
	out := make([]expression.Expression, 0, len(a.KeyAliases)+len(a.AggAliases))
	for _, k := range a.KeyAliases {
		out = append(out, k)
	}
	for _, ag := range a.AggAliases {
		out = append(out, ag)
	}
	return out
}

func (a *Aggregate) WithExpressions(exprs ...expression.Expression) (LogicalPlan, error) {
	expected := len(a.KeyAliases) + len(a.AggAliases)
	if len(exprs) != expected {
		return nil, fmt.Errorf("plan: Aggregate.WithExpressions expected %d, got %d", expected, len(exprs))
	}
	keys := make([]*expression.GroupingAlias, len(a.KeyAliases))
	for i := range keys {
		ga, ok := exprs[i].(*expression.GroupingAlias)
		if !ok {
			return nil, fmt.Errorf("plan: Aggregate key %d is not a GroupingAlias: %T", i, exprs[i])
		}
		keys[i] = ga
	}
	aggs := make([]*expression.AggregationAlias, len(a.AggAliases))
	for i := range aggs {
		aa, ok := exprs[len(keys)+i].(*expression.AggregationAlias)
		if !ok {
			return nil, fmt.Errorf("plan: Aggregate func %d is not an AggregationAlias: %T", i, exprs[len(keys)+i])
		}
		aggs[i] = aa
	}
	return NewAggregate(keys, aggs, a.Child), nil
}

func (a *Aggregate) String() string {
	keys := make([]string, len(a.KeyAliases))
	for i, k := range a.KeyAliases {
		keys[i] = k.String()
	}
	aggs := make([]string, len(a.AggAliases))
	for i, ag := range a.AggAliases {
		aggs[i] = ag.String()
	}
	return fmt.Sprintf("Aggregate(keys=[%s], funcs=[%s])\n  %s", strings.Join(keys, ", "), strings.Join(aggs, ", "), a.Child.String())
}
