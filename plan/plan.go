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

// Package plan defines the immutable logical plan tree the aggregation
// pipeline rewrites, down to the aggregation-specific node shapes:
// UnresolvedAggregate (the parser's intermediate form) and the canonical
// Aggregate/Window/Project layering that analyzer.ResolveAggregates
// produces.
package plan

import (
	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/sql"
)

// LogicalPlan is a node in the immutable relational plan tree.
type LogicalPlan interface {
	Children() []LogicalPlan
	WithChildren(children ...LogicalPlan) (LogicalPlan, error)
	Schema() sql.Schema
	Resolved() bool
	String() string
}

// UnaryNode is embedded by every single-child plan node (Project, Filter,
// Sort, Distinct, UnresolvedAggregate, Aggregate, Window).
type UnaryNode struct {
	Child LogicalPlan
}

func (n UnaryNode) Children() []LogicalPlan { return []LogicalPlan{n.Child} }

// Expressioner is implemented by any plan node that carries expressions,
// so that TransformExpressionsUp can rewrite them generically without a
// type switch over every node kind.
type Expressioner interface {
	Expressions() []expression.Expression
	WithExpressions(exprs ...expression.Expression) (LogicalPlan, error)
}

// TransformUp applies f to n bottom-up, rebuilding each node from its
// already-transformed children before applying f to it. A node whose
// children all come back unchanged is passed to f as-is rather than
// rebuilt, so an f that matches nothing returns n itself.
func TransformUp(n LogicalPlan, f func(LogicalPlan) (LogicalPlan, error)) (LogicalPlan, error) {
	children := n.Children()
	if len(children) == 0 {
		return f(n)
	}

	newChildren := make([]LogicalPlan, len(children))
	changed := false
	for i, c := range children {
		nc, err := TransformUp(c, f)
		if err != nil {
			return nil, err
		}
		if nc != c {
			changed = true
		}
		newChildren[i] = nc
	}
	if !changed {
		return f(n)
	}

	rebuilt, err := n.WithChildren(newChildren...)
	if err != nil {
		return nil, err
	}
	return f(rebuilt)
}

// TransformDown applies f to n top-down.
func TransformDown(n LogicalPlan, f func(LogicalPlan) (LogicalPlan, error)) (LogicalPlan, error) {
	rewritten, err := f(n)
	if err != nil {
		return nil, err
	}

	children := rewritten.Children()
	if len(children) == 0 {
		return rewritten, nil
	}

	newChildren := make([]LogicalPlan, len(children))
	for i, c := range children {
		nc, err := TransformDown(c, f)
		if err != nil {
			return nil, err
		}
		newChildren[i] = nc
	}
	return rewritten.WithChildren(newChildren...)
}

// Collect gathers, pre-order, every node in n's subtree satisfying p.
func Collect(n LogicalPlan, p func(LogicalPlan) bool) []LogicalPlan {
	var out []LogicalPlan
	if p(n) {
		out = append(out, n)
	}
	for _, c := range n.Children() {
		out = append(out, Collect(c, p)...)
	}
	return out
}

// TransformExpressionsUp applies f, bottom-up, to every expression
// directly owned by every node (via Expressioner) in n's subtree. Nodes
// that don't implement Expressioner are left untouched but still visited
// for their children.
func TransformExpressionsUp(n LogicalPlan, f func(expression.Expression) (expression.Expression, error)) (LogicalPlan, error) {
	return TransformUp(n, func(node LogicalPlan) (LogicalPlan, error) {
		ex, ok := node.(Expressioner)
		if !ok {
			return node, nil
		}

		exprs := ex.Expressions()
		if len(exprs) == 0 {
			return node, nil
		}

		newExprs := make([]expression.Expression, len(exprs))
		for i, e := range exprs {
			ne, err := expression.TransformUp(e, f)
			if err != nil {
				return nil, err
			}
			newExprs[i] = ne
		}
		return ex.WithExpressions(newExprs...)
	})
}
