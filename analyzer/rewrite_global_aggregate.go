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

// rewriteProjectsAsGlobalAggregates promotes a bare Project containing an
// aggregate with no GROUP BY at all (e.g. `SELECT count(x) FROM t`) into
// an UnresolvedAggregate with empty grouping keys.
func rewriteProjectsAsGlobalAggregates(ctx *sql.Context, a *Analyzer, n plan.LogicalPlan) (plan.LogicalPlan, transform.TreeIdentity, error) {
	a.Log("rewrite_projects_as_global_aggregates: node of type %T", n)

	changed := transform.SameTree
	result, err := plan.TransformUp(n, func(node plan.LogicalPlan) (plan.LogicalPlan, error) {
		p, ok := node.(*plan.Project)
		if !ok || !p.Child.Resolved() {
			return node, nil
		}

		projectExprs := make([]expression.Expression, len(p.ProjectList))
		for i, e := range p.ProjectList {
			projectExprs[i] = e
		}
		if !expression.HasAggregateFunction(projectExprs...) {
			return node, nil
		}

		a.Log("project list contains an aggregate with no GROUP BY; promoting to a global aggregation")
		changed = transform.NewTree
		return plan.NewUnresolvedAggregate(p.Child, nil, p.ProjectList, nil, nil), nil
	})
	if err != nil {
		return nil, transform.SameTree, err
	}
	return result, changed, nil
}
