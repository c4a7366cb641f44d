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

// CollectAggregateFunctions returns the deduplicated sequence of
// non-window AggregateFunctions within e, in first-seen order:
//
//  1. for every WindowFunction(f, spec) in e, aggregates inside f's own
//     children and inside spec are collected (f itself never is, even if
//     f is itself an aggregate - `max(a) OVER (...)` is a window call,
//     not a group-by aggregate);
//  2. window functions are then eliminated from e (replaced by a
//     throwaway synthetic attribute) so the rest of the traversal cannot
//     see into them;
//  3. DistinctAggregateFunctions are collected and eliminated the same
//     way, then ordinary AggregateFunctions are collected from what's left.
func CollectAggregateFunctions(e Expression) []AggregateFunction {
	var windowInternal []AggregateFunction
	for _, n := range Collect(e, isWindowFunction) {
		w := n.(*WindowFunction)
		for _, sub := range w.Func.Children() {
			windowInternal = append(windowInternal, CollectAggregateFunctions(sub)...)
		}
		for _, sub := range w.Spec.expressions() {
			windowInternal = append(windowInternal, CollectAggregateFunctions(sub)...)
		}
	}

	eliminated := eliminateWindowFunctions(e)

	var distinctAggs []AggregateFunction
	for _, n := range Collect(eliminated, isDistinctAggregateFunction) {
		distinctAggs = append(distinctAggs, n.(AggregateFunction))
	}

	withoutDistinct := eliminateDistinctAggregateFunctions(eliminated)

	var ordinaryAggs []AggregateFunction
	for _, n := range Collect(withoutDistinct, isAggregateFunction) {
		ordinaryAggs = append(ordinaryAggs, n.(AggregateFunction))
	}

	all := append(append(windowInternal, distinctAggs...), ordinaryAggs...)
	return dedupAggregateFunctions(all)
}

// CollectAggregateFunctionsFrom is CollectAggregateFunctions applied
// across several expressions (e.g. a project list plus HAVING conditions
// plus ORDER BY expressions) and deduplicated across all of them: the
// same count(x) appearing in SELECT and HAVING produces exactly one entry.
func CollectAggregateFunctionsFrom(exprs ...Expression) []AggregateFunction {
	var all []AggregateFunction
	for _, e := range exprs {
		all = append(all, CollectAggregateFunctions(e)...)
	}
	return dedupAggregateFunctions(all)
}

// CollectWindowFunctions returns every distinct (by structural equality)
// WindowFunction occurrence in e, in first-seen order.
func CollectWindowFunctions(e Expression) []*WindowFunction {
	var out []*WindowFunction
	for _, n := range Collect(e, isWindowFunction) {
		w := n.(*WindowFunction)
		if !containsWindow(out, w) {
			out = append(out, w)
		}
	}
	return out
}

// CollectWindowFunctionsFrom is CollectWindowFunctions across several
// expressions, deduplicated across all of them.
func CollectWindowFunctionsFrom(exprs ...Expression) []*WindowFunction {
	var out []*WindowFunction
	for _, e := range exprs {
		for _, w := range CollectWindowFunctions(e) {
			if !containsWindow(out, w) {
				out = append(out, w)
			}
		}
	}
	return out
}

// HasAggregateFunction reports whether any of exprs contains a non-window
// AggregateFunction, ignoring aggregates buried inside window calls (via
// the same window-elimination trick CollectAggregateFunctions uses) but
// counting DistinctAggregateFunctions as aggregates.
func HasAggregateFunction(exprs ...Expression) bool {
	for _, e := range exprs {
		eliminated := eliminateWindowFunctions(e)
		if len(Collect(eliminated, isAggregateFunction)) > 0 {
			return true
		}
	}
	return false
}

// HasDistinctAggregateFunction reports whether any of exprs contains a
// DistinctAggregateFunction, outside of any window call.
func HasDistinctAggregateFunction(exprs ...Expression) bool {
	for _, e := range exprs {
		eliminated := eliminateWindowFunctions(e)
		if len(Collect(eliminated, isDistinctAggregateFunction)) > 0 {
			return true
		}
	}
	return false
}

// HasWindowFunction reports whether any of exprs contains a WindowFunction.
func HasWindowFunction(exprs ...Expression) bool {
	for _, e := range exprs {
		if len(Collect(e, isWindowFunction)) > 0 {
			return true
		}
	}
	return false
}

func isWindowFunction(e Expression) bool {
	_, ok := e.(*WindowFunction)
	return ok
}

func isAggregateFunction(e Expression) bool {
	_, ok := e.(AggregateFunction)
	return ok
}

func isDistinctAggregateFunction(e Expression) bool {
	_, ok := e.(*DistinctAggregateFunction)
	return ok
}

// eliminateWindowFunctions replaces every WindowFunction in e with a
// throwaway synthetic attribute, so that an outer traversal cannot see
// into it. The synthetic attribute here is never retained - it exists
// only to make the rest of e's tree shape harmless to walk.
func eliminateWindowFunctions(e Expression) Expression {
	out, err := TransformDown(e, func(n Expression) (Expression, error) {
		if w, ok := n.(*WindowFunction); ok {
			return NewWindowAlias(0, w).Attr(), nil
		}
		return n, nil
	})
	if err != nil {
		return e
	}
	return out
}

func eliminateDistinctAggregateFunctions(e Expression) Expression {
	out, err := TransformDown(e, func(n Expression) (Expression, error) {
		if d, ok := n.(*DistinctAggregateFunction); ok {
			return NewAggregationAlias(0, d).Attr(), nil
		}
		return n, nil
	})
	if err != nil {
		return e
	}
	return out
}

func dedupAggregateFunctions(in []AggregateFunction) []AggregateFunction {
	var out []AggregateFunction
	for _, a := range in {
		dup := false
		for _, o := range out {
			if SameOrEqual(a, o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, a)
		}
	}
	return out
}

func containsWindow(haystack []*WindowFunction, w *WindowFunction) bool {
	for _, o := range haystack {
		if SameOrEqual(w, o) {
			return true
		}
	}
	return false
}
