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
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/spearql/expression"
)

// ErrIllegalAggregation covers every semantic rejection raised
// except the distinct-aggregate guard: aggregate-in-grouping-key,
// window-in-grouping-key, window-in-having, nested-aggregate and
// dangling-reference all raise this kind, with a category-specific
// message built by the helpers below.
var ErrIllegalAggregation = errors.NewKind("illegal aggregation: %s")

// ErrDistinctAggregateUnsupported is raised when a DistinctAggregateFunction
// survives to RewriteDistinctAggregateFunctions. It is a
// distinct kind from ErrIllegalAggregation - a deliberate,
// documented limitation, not a semantic error in the user's query.
var ErrDistinctAggregateUnsupported = errors.NewKind("unsupported: %s")

func errAggregateInGroupingKey(key, agg expression.Expression) error {
	return ErrIllegalAggregation.New(
		"aggregate functions are not allowed in GROUP BY: key " + key.String() + " contains " + agg.String(),
	)
}

func errWindowInGroupingKey(key expression.Expression, win *expression.WindowFunction) error {
	return ErrIllegalAggregation.New(
		"window functions are not allowed in GROUP BY: key " + key.String() + " contains " + win.String(),
	)
}

func errWindowInHaving(cond expression.Expression, win *expression.WindowFunction) error {
	return ErrIllegalAggregation.New(
		"window functions are not allowed in HAVING: condition " + cond.String() + " contains " + win.String(),
	)
}

func errNestedAggregate(outer, inner expression.AggregateFunction) error {
	return ErrIllegalAggregation.New(
		"aggregate function " + outer.String() + " contains nested aggregate function " + inner.String(),
	)
}

// errDanglingReference names the component (window function, SELECT
// field, HAVING condition, ORDER BY expression), the unresolved attribute,
// the user-restored expression, and the grouping keys.
func errDanglingReference(component string, attr *expression.AttributeRef, restoredExpr expression.Expression, keys []expression.Expression) error {
	keyStrs := make([]string, len(keys))
	for i, k := range keys {
		keyStrs[i] = k.String()
	}
	return ErrIllegalAggregation.New(
		component + " references " + attr.String() +
			", which is neither a grouping key nor an aggregate argument, in " + restoredExpr.String() +
			" (grouping keys: [" + strings.Join(keyStrs, ", ") + "])",
	)
}

func errDistinctAggregateUnsupported(fn expression.AggregateFunction) error {
	return ErrDistinctAggregateUnsupported.New(
		"distinct aggregate function is not supported yet: " + fn.String(),
	)
}
