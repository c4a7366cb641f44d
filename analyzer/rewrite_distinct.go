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

// rewriteDistinctsAsAggregates rewrites a Distinct into an equivalent
// GROUP BY over every output column:
//
//	SELECT DISTINCT L FROM R  ⟹  SELECT L FROM R GROUP BY L
//
// A Distinct(child) whose child is resolved becomes an
// UnresolvedAggregate grouped and projected on child's full output.
func rewriteDistinctsAsAggregates(ctx *sql.Context, a *Analyzer, n plan.LogicalPlan) (plan.LogicalPlan, transform.TreeIdentity, error) {
	a.Log("rewrite_distincts_as_aggregates: node of type %T", n)

	changed := transform.SameTree
	result, err := plan.TransformUp(n, func(node plan.LogicalPlan) (plan.LogicalPlan, error) {
		d, ok := node.(*plan.Distinct)
		if !ok || !d.Child.Resolved() {
			return node, nil
		}

		output := columnsAsExpressions(d.Child.Schema())
		projectList := columnsAsNamed(d.Child.Schema())

		a.Log("rewriting DISTINCT over %d columns into GROUP BY", len(output))
		changed = transform.NewTree
		return plan.NewUnresolvedAggregate(d.Child, output, projectList, nil, nil), nil
	})
	if err != nil {
		return nil, transform.SameTree, err
	}
	return result, changed, nil
}

// columnsAsExpressions builds one AttributeRef per column of s. In a full
// engine these ids would come from the relation that produced s; here we
// mint fresh placeholder ids only when the schema doesn't already carry
// attribute identity, since the child's output is already
// resolved, identity-bearing attributes.
func columnsAsExpressions(s sql.Schema) []expression.Expression {
	out := make([]expression.Expression, len(s))
	for i, c := range s {
		out[i] = columnAttributeRef(c)
	}
	return out
}

func columnsAsNamed(s sql.Schema) []expression.NamedExpression {
	out := make([]expression.NamedExpression, len(s))
	for i, c := range s {
		out[i] = columnAttributeRef(c)
	}
	return out
}

func columnAttributeRef(c *sql.Column) *expression.AttributeRef {
	if ref, ok := c.Extra.(*expression.AttributeRef); ok {
		return ref
	}
	return expression.NewAttributeRef(sql.FreshID(), c.Source, c.Name, c.Type, c.Nullable)
}
