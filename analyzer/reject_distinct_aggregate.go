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

// rewriteDistinctAggregateFunctions rejects any
// DistinctAggregateFunction still present once ResolveAggregates has had
// its chance to fire is a deliberate, documented limitation rather than a
// semantic error - COUNT(DISTINCT x) and friends require a lowering this
// pipeline does not implement. The rule itself
// never rewrites anything; it only ever errors or passes through unchanged.
func rewriteDistinctAggregateFunctions(ctx *sql.Context, a *Analyzer, n plan.LogicalPlan) (plan.LogicalPlan, transform.TreeIdentity, error) {
	a.Log("rewrite_distinct_aggregate_functions: node of type %T", n)

	var offending *expression.DistinctAggregateFunction
	_, err := plan.TransformUp(n, func(node plan.LogicalPlan) (plan.LogicalPlan, error) {
		ex, ok := node.(plan.Expressioner)
		if !ok {
			return node, nil
		}
		for _, e := range ex.Expressions() {
			for _, d := range expression.Collect(e, func(n expression.Expression) bool {
				_, ok := n.(*expression.DistinctAggregateFunction)
				return ok
			}) {
				if offending == nil {
					offending = d.(*expression.DistinctAggregateFunction)
				}
			}
		}
		return node, nil
	})
	if err != nil {
		return nil, transform.SameTree, err
	}
	if offending != nil {
		return nil, transform.SameTree, errDistinctAggregateUnsupported(offending)
	}
	return n, transform.SameTree, nil
}
