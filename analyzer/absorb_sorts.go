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

package analyzer

import (
	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/plan"
	"github.com/dolthub/spearql/sql"
	"github.com/dolthub/spearql/transform"
)

// absorbSorts implements ORDER BY absorption: Sort(order,
// agg) where agg is an UnresolvedAggregate with a fully resolved project
// list. Each sort key is resolved-and-unaliased against agg.ProjectList,
// then replaces (never appends to) agg.Order. With two Sorts stacked above
// one aggregation, the bottom-up walk absorbs the inner one first and the
// outer one last, so only the outer Sort's order survives.
func absorbSorts(ctx *sql.Context, a *Analyzer, n plan.LogicalPlan) (plan.LogicalPlan, transform.TreeIdentity, error) {
	a.Log("absorb_sorts: node of type %T", n)

	changed := transform.SameTree
	result, err := plan.TransformUp(n, func(node plan.LogicalPlan) (plan.LogicalPlan, error) {
		s, ok := node.(*plan.Sort)
		if !ok {
			return node, nil
		}
		agg, ok := s.Child.(*plan.UnresolvedAggregate)
		if !ok || !namedExpressionsResolvedFor(agg.ProjectList) {
			return node, nil
		}

		order := make([]expression.SortOrder, len(s.Order))
		for i, o := range s.Order {
			resolved, err := resolveAndUnaliasAgainst(o.Expr, agg.ProjectList)
			if err != nil {
				return nil, err
			}
			order[i] = expression.SortOrder{Expr: resolved, Direction: o.Direction, NullOrdering: o.NullOrdering}
		}

		a.Log("absorbing ORDER BY with %d keys into aggregation", len(order))
		changed = transform.NewTree
		return agg.WithOrder(order), nil
	})
	if err != nil {
		return nil, transform.SameTree, err
	}
	return result, changed, nil
}
