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

// resolveAggregates is the core rule: it turns one
// UnresolvedAggregate into the canonical
//
//	Aggregate -> [Filter] -> [Window...] -> [Sort] -> Project
//
// layering, minting the internal GroupingAlias/AggregationAlias/WindowAlias
// attributes that carry values between the layers.
func resolveAggregates(ctx *sql.Context, a *Analyzer, n plan.LogicalPlan) (plan.LogicalPlan, transform.TreeIdentity, error) {
	a.Log("resolve_aggregates: node of type %T", n)

	changed := transform.SameTree
	result, err := plan.TransformUp(n, func(node plan.LogicalPlan) (plan.LogicalPlan, error) {
		agg, ok := node.(*plan.UnresolvedAggregate)
		if !ok {
			return node, nil
		}

		built, err := buildAggregatePlan(agg)
		if err != nil {
			return nil, err
		}
		if built == nil {
			// precondition guard declined to fire; wait for a later pass.
			return node, nil
		}

		changed = transform.NewTree
		return built, nil
	})
	if err != nil {
		return nil, transform.SameTree, err
	}
	return result, changed, nil
}

// buildAggregatePlan returns nil, nil when the precondition guard declines
// to fire, a built plan on success, or an error for one of the semantic
// rejections or the build-time rejections further down in the pipeline.
func buildAggregatePlan(agg *plan.UnresolvedAggregate) (plan.LogicalPlan, error) {
	if !agg.Child.Resolved() {
		return nil, nil
	}
	if !expression.ExpressionsResolved(agg.Keys...) {
		return nil, nil
	}
	if !namedExpressionsResolvedFor(agg.ProjectList) {
		return nil, nil
	}
	if !expression.ExpressionsResolved(agg.HavingConditions...) {
		return nil, nil
	}
	for _, o := range agg.Order {
		if !o.Expr.Resolved() {
			return nil, nil
		}
	}
	if hasDistinctAggregateFunctionIn(agg.ProjectList) {
		return nil, nil
	}

	// (e) aggregates are illegal in GROUP BY.
	for _, key := range agg.Keys {
		if aggs := expression.CollectAggregateFunctions(key); len(aggs) > 0 {
			return nil, errAggregateInGroupingKey(key, aggs[0])
		}
	}
	// (f) window functions are illegal in GROUP BY and HAVING.
	keysAndHaving := append(append([]expression.Expression(nil), agg.Keys...), agg.HavingConditions...)
	for _, e := range keysAndHaving {
		if wins := expression.CollectWindowFunctions(e); len(wins) > 0 {
			if containsExpr(agg.Keys, e) {
				return nil, errWindowInGroupingKey(e, wins[0])
			}
			return nil, errWindowInHaving(e, wins[0])
		}
	}

	// Step 1: build key aliases and rewrite_keys/restore_keys.
	keyAliases := make([]*expression.GroupingAlias, len(agg.Keys))
	for i, k := range agg.Keys {
		keyAliases[i] = expression.NewGroupingAlias(i, k)
	}
	rewriteKeys := expression.Rewriter(keyAliases)
	restoreKeys := expression.Restorer(keyAliases)

	projectExprs := namedExprsToExprs(agg.ProjectList)
	rewrittenForCollect := make([]expression.Expression, 0, len(projectExprs)+len(agg.HavingConditions)+len(agg.Order))
	for _, e := range append(append([]expression.Expression(nil), projectExprs...), agg.HavingConditions...) {
		re, err := expression.TransformUp(e, rewriteKeys)
		if err != nil {
			return nil, err
		}
		rewrittenForCollect = append(rewrittenForCollect, re)
	}
	for _, o := range agg.Order {
		re, err := expression.TransformUp(o.Expr, rewriteKeys)
		if err != nil {
			return nil, err
		}
		rewrittenForCollect = append(rewrittenForCollect, re)
	}

	// Step 2: collect aggregates from project_list ⧺ conditions ⧺ order,
	// after rewrite_keys.
	aggs := expression.CollectAggregateFunctionsFrom(rewrittenForCollect...)

	// Step 3: reject nested aggregates.
	for _, outer := range aggs {
		inner := outer.Arg()
		if d, ok := outer.(*expression.DistinctAggregateFunction); ok {
			inner = d.Inner.Arg()
		}
		if nested := expression.CollectAggregateFunctions(inner); len(nested) > 0 {
			return nil, errNestedAggregate(outer, nested[0])
		}
	}

	// Step 4: build aggregate aliases; rewrite_aggs/restore_aggs, with the
	// window-aggregate exemption.
	aggAliases := make([]*expression.AggregationAlias, len(aggs))
	for i, ag := range aggs {
		aggAliases[i] = expression.NewAggregationAlias(i, ag)
	}
	rewriteAggs := expression.Rewriter(aggAliases)
	restoreAggs := expression.Restorer(aggAliases)

	rewriteAggsExceptWindowTop := func(e expression.Expression) (expression.Expression, error) {
		if w, ok := e.(*expression.WindowFunction); ok {
			restoredFunc, err := expression.TransformUp(w.Func, restoreAggs)
			if err != nil {
				return nil, err
			}
			newChildren, err := rewriteChildren(restoredFunc, rewriteAggs)
			if err != nil {
				return nil, err
			}
			fn, err := restoredFunc.WithChildren(newChildren...)
			if err != nil {
				return nil, err
			}
			return expression.NewWindowFunction(fn, w.Spec), nil
		}
		return rewriteAggs(e)
	}

	// Step 5: collect windows from project_list ⧺ order, after
	// rewrite_keys ∘ rewrite_aggs (with the exemption above).
	keysThenAggs := func(e expression.Expression) (expression.Expression, error) {
		re, err := expression.TransformUp(e, rewriteKeys)
		if err != nil {
			return nil, err
		}
		return expression.TransformUp(re, rewriteAggsExceptWindowTop)
	}

	windowSources := make([]expression.Expression, 0, len(projectExprs)+len(agg.Order))
	windowSources = append(windowSources, projectExprs...)
	for _, o := range agg.Order {
		windowSources = append(windowSources, o.Expr)
	}
	var afterKeysAggs []expression.Expression
	for _, e := range windowSources {
		re, err := keysThenAggs(e)
		if err != nil {
			return nil, err
		}
		afterKeysAggs = append(afterKeysAggs, re)
	}
	wins := expression.CollectWindowFunctionsFrom(afterKeysAggs...)

	windowAliases := make([]*expression.WindowAlias, len(wins))
	for i, w := range wins {
		windowAliases[i] = expression.NewWindowAlias(i, w)
	}
	rewriteWins := expression.Rewriter(windowAliases)
	restoreWins := expression.Restorer(windowAliases)

	// Step 6: compose rewrite/restore.
	rewrite := func(e expression.Expression) (expression.Expression, error) {
		re, err := expression.TransformUp(e, rewriteKeys)
		if err != nil {
			return nil, err
		}
		re, err = expression.TransformUp(re, rewriteAggsExceptWindowTop)
		if err != nil {
			return nil, err
		}
		return expression.TransformUp(re, rewriteWins)
	}
	restore := func(e expression.Expression) (expression.Expression, error) {
		re, err := expression.TransformUp(e, restoreWins)
		if err != nil {
			return nil, err
		}
		re, err = expression.TransformUp(re, restoreAggs)
		if err != nil {
			return nil, err
		}
		return expression.TransformUp(re, restoreKeys)
	}

	// Step 7: apply rewrite to conditions, order, and project_list.
	rewrittenConditions := make([]expression.Expression, len(agg.HavingConditions))
	for i, c := range agg.HavingConditions {
		re, err := rewrite(c)
		if err != nil {
			return nil, err
		}
		rewrittenConditions[i] = re
	}

	rewrittenOrder := make([]expression.SortOrder, len(agg.Order))
	for i, o := range agg.Order {
		re, err := rewrite(o.Expr)
		if err != nil {
			return nil, err
		}
		rewrittenOrder[i] = expression.SortOrder{Expr: re, Direction: o.Direction, NullOrdering: o.NullOrdering}
	}

	rewrittenProjectList := make([]expression.NamedExpression, len(agg.ProjectList))
	for i, p := range agg.ProjectList {
		re, err := rewrite(p)
		if err != nil {
			return nil, err
		}
		if ia, ok := re.(*expression.InternalAttribute); ok {
			rewrittenProjectList[i] = expression.NewAliasWithID(p.Name(), p.ID(), ia)
		} else if ne, ok := re.(expression.NamedExpression); ok {
			rewrittenProjectList[i] = ne
		} else {
			rewrittenProjectList[i] = expression.NewAliasWithID(p.Name(), p.ID(), re)
		}
	}

	// Step 8: reject dangling attributes.
	allowedOutput := make(map[sql.ExpressionID]bool, len(rewrittenProjectList))
	for _, p := range rewrittenProjectList {
		allowedOutput[p.ID()] = true
	}
	for _, w := range wins {
		if err := rejectDangling("window function", w, restore, nil, agg.Keys); err != nil {
			return nil, err
		}
	}
	for _, p := range rewrittenProjectList {
		if err := rejectDangling("SELECT field", p, restore, nil, agg.Keys); err != nil {
			return nil, err
		}
	}
	for _, c := range rewrittenConditions {
		if err := rejectDangling("HAVING condition", c, restore, allowedOutput, agg.Keys); err != nil {
			return nil, err
		}
	}
	for _, o := range rewrittenOrder {
		if err := rejectDangling("ORDER BY expression", o.Expr, restore, allowedOutput, agg.Keys); err != nil {
			return nil, err
		}
	}

	// Step 9: assemble the layered plan bottom-up.
	var built plan.LogicalPlan = plan.NewAggregate(keyAliases, aggAliases, agg.Child)

	if len(rewrittenConditions) > 0 {
		built = plan.NewFilter(expression.JoinAnd(rewrittenConditions...), built)
	}

	for _, layer := range groupWindowsBySpec(windowAliases) {
		built = plan.NewWindow(layer, layer[0].AliasedChild().(*expression.WindowFunction).Spec, built)
	}

	if len(rewrittenOrder) > 0 {
		built = plan.NewSort(rewrittenOrder, built)
	}

	built = plan.NewProject(rewrittenProjectList, built)

	return built, nil
}

func hasDistinctAggregateFunctionIn(projectList []expression.NamedExpression) bool {
	for _, p := range projectList {
		if expression.HasDistinctAggregateFunction(p) {
			return true
		}
	}
	return false
}

func namedExprsToExprs(named []expression.NamedExpression) []expression.Expression {
	out := make([]expression.Expression, len(named))
	for i, n := range named {
		out[i] = n
	}
	return out
}

func containsExpr(haystack []expression.Expression, needle expression.Expression) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

// rewriteChildren rewrites each of e's direct children with f, leaving e's
// own node untouched - used by the window-aggregate exemption in step 4,
// which must rewrite aggregates inside a window-aggregate's arguments
// without rewriting the window-aggregate itself.
func rewriteChildren(e expression.Expression, f func(expression.Expression) (expression.Expression, error)) ([]expression.Expression, error) {
	children := e.Children()
	out := make([]expression.Expression, len(children))
	for i, c := range children {
		rc, err := expression.TransformUp(c, f)
		if err != nil {
			return nil, err
		}
		out[i] = rc
	}
	return out, nil
}

// rejectDangling checks one expression e for a column reference that
// names neither a grouping key nor an aggregate argument.
// expression.References walks AttributeRef leaves by concrete dynamic
// type, so an InternalAttribute (a distinct dynamic type, never a bare
// *AttributeRef) is never returned here - every reference this sees is
// necessarily a plain, non-internal attribute, which by construction is
// neither a grouping key (those were rewritten to GroupingAliases earlier)
// nor an aggregate argument (consumed into AggregationAliases earlier):
// it is dangling, unless it names one of the allowedOutput attributes
// (the HAVING/ORDER BY whitelist).
func rejectDangling(component string, e expression.Expression, restore func(expression.Expression) (expression.Expression, error), allowedOutput map[sql.ExpressionID]bool, keys []expression.Expression) error {
	for _, ref := range expression.References(e) {
		if allowedOutput != nil && allowedOutput[ref.ID()] {
			continue
		}
		restored, err := restore(e)
		if err != nil {
			return err
		}
		return errDanglingReference(component, ref, restored, keys)
	}
	return nil
}

// groupWindowsBySpec partitions windowAliases into layers sharing a
// structurally equal WindowSpec, preserving first-seen order both within
// and across layers.
func groupWindowsBySpec(windowAliases []*expression.WindowAlias) [][]*expression.WindowAlias {
	var layers [][]*expression.WindowAlias
	var specs []expression.WindowSpec
	for _, wa := range windowAliases {
		w := wa.AliasedChild().(*expression.WindowFunction)
		placed := false
		for i, spec := range specs {
			if expression.SameSpec(spec, w.Spec) {
				layers[i] = append(layers[i], wa)
				placed = true
				break
			}
		}
		if !placed {
			layers = append(layers, []*expression.WindowAlias{wa})
			specs = append(specs, w.Spec)
		}
	}
	return layers
}
