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

// absorbHavingConditions implements HAVING absorption:
// Filter(condition, agg) where agg is an UnresolvedAggregate with a fully
// resolved project list. condition is resolved-and-unaliased against
// agg.ProjectList, rejected if it still reaches a window function, and
// otherwise folded into agg.HavingConditions - the Filter node disappears,
// its condition carried forward for ResolveAggregates to place.
func absorbHavingConditions(ctx *sql.Context, a *Analyzer, n plan.LogicalPlan) (plan.LogicalPlan, transform.TreeIdentity, error) {
	a.Log("absorb_having_conditions: node of type %T", n)

	changed := transform.SameTree
	result, err := plan.TransformUp(n, func(node plan.LogicalPlan) (plan.LogicalPlan, error) {
		f, ok := node.(*plan.Filter)
		if !ok {
			return node, nil
		}
		agg, ok := f.Child.(*plan.UnresolvedAggregate)
		if !ok || !namedExpressionsResolvedFor(agg.ProjectList) {
			return node, nil
		}

		condition, err := resolveAndUnaliasAgainst(f.Condition, agg.ProjectList)
		if err != nil {
			return nil, err
		}

		if wins := expression.CollectWindowFunctions(condition); len(wins) > 0 {
			return nil, errWindowInHaving(condition, wins[0])
		}

		a.Log("absorbing HAVING condition %s into aggregation", condition.String())
		changed = transform.NewTree
		return agg.WithHavingConditions(condition), nil
	})
	if err != nil {
		return nil, transform.SameTree, err
	}
	return result, changed, nil
}

func namedExpressionsResolvedFor(exprs []expression.NamedExpression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}
