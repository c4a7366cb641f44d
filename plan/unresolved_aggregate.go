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

// UnresolvedAggregate is the intermediate form SQL parsing (or one of
// RewriteDistinctsAsAggregates/RewriteProjectsAsGlobalAggregates) produces
// for any query that groups, aggregates, filters with HAVING or sorts on
// top of a grouping. analyzer.ResolveAggregates is the only rule that
// consumes one; after it fires, no UnresolvedAggregate remains in that
// subtree.
type UnresolvedAggregate struct {
	UnaryNode
	Keys             []expression.Expression
	ProjectList      []expression.NamedExpression
	HavingConditions []expression.Expression
	Order            []expression.SortOrder
}

func NewUnresolvedAggregate(
	child LogicalPlan,
	keys []expression.Expression,
	projectList []expression.NamedExpression,
	havingConditions []expression.Expression,
	order []expression.SortOrder,
) *UnresolvedAggregate {
	return &UnresolvedAggregate{
		UnaryNode:        UnaryNode{Child: child},
		Keys:             keys,
		ProjectList:      projectList,
		HavingConditions: havingConditions,
		Order:            order,
	}
}

// WithHavingConditions returns a copy with conditions appended, used by
// AbsorbHavingConditions.
func (u *UnresolvedAggregate) WithHavingConditions(conditions ...expression.Expression) *UnresolvedAggregate {
	cp := *u
	cp.HavingConditions = append(append([]expression.Expression(nil), u.HavingConditions...), conditions...)
	return &cp
}

// WithOrder returns a copy with Order replaced (not appended) - only the
// Sort that ends up adjacent to the aggregate after absorption wins.
func (u *UnresolvedAggregate) WithOrder(order []expression.SortOrder) *UnresolvedAggregate {
	cp := *u
	cp.Order = order
	return &cp
}

func (u *UnresolvedAggregate) WithChildren(children ...LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: UnresolvedAggregate takes 1 child, got %d", len(children))
	}
	cp := *u
	cp.UnaryNode = UnaryNode{Child: children[0]}
	return &cp, nil
}

func (u *UnresolvedAggregate) Schema() sql.Schema {
	s := make(sql.Schema, len(u.ProjectList))
	for i, e := range u.ProjectList {
		s[i] = &sql.Column{Name: e.Name(), Type: e.Type(), Nullable: e.IsNullable()}
	}
	return s
}

func (u *UnresolvedAggregate) Resolved() bool {
	if !u.Child.Resolved() {
		return false
	}
	return expression.ExpressionsResolved(u.Keys...) &&
		namedExpressionsResolved(u.ProjectList) &&
		expression.ExpressionsResolved(u.HavingConditions...) &&
		sortOrderResolved(u.Order)
}

func sortOrderResolved(order []expression.SortOrder) bool {
	for _, o := range order {
		if !o.Expr.Resolved() {
			return false
		}
	}
	return true
}

// Expressions flattens Keys, ProjectList, HavingConditions and Order (in
// that order) so TransformExpressionsUp can rewrite every expression this
// node owns uniformly.
func (u *UnresolvedAggregate) Expressions() []expression.Expression {
	out := make([]expression.Expression, 0, len(u.Keys)+len(u.ProjectList)+len(u.HavingConditions)+len(u.Order))
	out = append(out, u.Keys...)
	for _, e := range u.ProjectList {
		out = append(out, e)
	}
	out = append(out, u.HavingConditions...)
	for _, o := range u.Order {
		out = append(out, o.Expr)
	}
	return out
}

func (u *UnresolvedAggregate) WithExpressions(exprs ...expression.Expression) (LogicalPlan, error) {
	expected := len(u.Keys) + len(u.ProjectList) + len(u.HavingConditions) + len(u.Order)
	if len(exprs) != expected {
		return nil, fmt.Errorf("plan: UnresolvedAggregate.WithExpressions expected %d, got %d", expected, len(exprs))
	}

	i := 0
	keys := append([]expression.Expression(nil), exprs[i:i+len(u.Keys)]...)
	i += len(u.Keys)

	projectList := make([]expression.NamedExpression, len(u.ProjectList))
	for j := range projectList {
		ne, ok := exprs[i].(expression.NamedExpression)
		if !ok {
			return nil, fmt.Errorf("plan: UnresolvedAggregate project list entry %d is not a NamedExpression: %T", j, exprs[i])
		}
		projectList[j] = ne
		i++
	}

	having := append([]expression.Expression(nil), exprs[i:i+len(u.HavingConditions)]...)
	i += len(u.HavingConditions)

	order := make([]expression.SortOrder, len(u.Order))
	for j := range order {
		order[j] = expression.SortOrder{Expr: exprs[i], Direction: u.Order[j].Direction, NullOrdering: u.Order[j].NullOrdering}
		i++
	}

	return &UnresolvedAggregate{
		UnaryNode:        u.UnaryNode,
		Keys:             keys,
		ProjectList:      projectList,
		HavingConditions: having,
		Order:            order,
	}, nil
}

func (u *UnresolvedAggregate) String() string {
	keys := exprStrings(u.Keys)
	proj := namedExprStrings(u.ProjectList)
	having := exprStrings(u.HavingConditions)
	return fmt.Sprintf(
		"UnresolvedAggregate(keys=[%s], project=[%s], having=[%s])\n  %s",
		strings.Join(keys, ", "), strings.Join(proj, ", "), strings.Join(having, ", "), u.Child.String(),
	)
}

func exprStrings(exprs []expression.Expression) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = e.String()
	}
	return out
}

func namedExprStrings(exprs []expression.NamedExpression) []string {
	out := make([]string, len(exprs))
	for i, e := range exprs {
		out[i] = e.String()
	}
	return out
}
