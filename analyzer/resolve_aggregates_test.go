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

package analyzer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/spearql/analyzer"
	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/plan"
	"github.com/dolthub/spearql/sql"
)

func newAnalyzer() *analyzer.Analyzer {
	return analyzer.NewAnalyzer(analyzer.NewMapCatalog())
}

// S1 - DISTINCT to GROUP BY.
func TestDistinctToGroupBy(t *testing.T) {
	require := require.New(t)

	table := newTestTable("t", "a", "b")
	input := plan.NewDistinct(table)

	result, err := newAnalyzer().Analyze(sql.NewEmptyContext(), input, nil)
	require.NoError(err)

	project, ok := result.(*plan.Project)
	require.True(ok, "expected a top-level Project, got %T", result)
	require.Len(project.ProjectList, 2)

	agg, ok := project.Child.(*plan.Aggregate)
	require.True(ok, "expected Aggregate under Project, got %T", project.Child)
	require.Len(agg.KeyAliases, 2)
	require.True(agg.KeysOnly())
	relChild, ok := agg.Child.(*plan.Relation)
	require.True(ok)
	require.Same(table, relChild)
}

// S2 - global aggregate: SELECT count(x) FROM t.
func TestGlobalAggregate(t *testing.T) {
	require := require.New(t)

	table := newTestTable("t", "x")
	x := col(table, "x")
	input := plan.NewProject(
		[]expression.NamedExpression{expression.NewAlias("c", expression.NewCount(x))},
		table,
	)

	result, err := newAnalyzer().Analyze(sql.NewEmptyContext(), input, nil)
	require.NoError(err)

	project, ok := result.(*plan.Project)
	require.True(ok)
	require.Len(project.ProjectList, 1)
	require.Equal("c", project.ProjectList[0].Name())

	agg, ok := project.Child.(*plan.Aggregate)
	require.True(ok)
	require.Empty(agg.KeyAliases)
	require.Len(agg.AggAliases, 1)
	require.Equal("COUNT", agg.AggAliases[0].AliasedChild().(expression.AggregateFunction).FunctionName())
}

// S3 - HAVING and ORDER BY mixing.
func TestHavingAndOrderByMixing(t *testing.T) {
	require := require.New(t)

	table := newTestTable("t", "x", "y", "z")
	x, y, z := col(table, "x"), col(table, "y"), col(table, "z")

	agg := plan.NewUnresolvedAggregate(
		table,
		[]expression.Expression{y},
		[]expression.NamedExpression{expression.NewAlias("c", expression.NewCount(x))},
		nil, nil,
	)
	having := plan.NewFilter(
		expression.NewGreaterThan(expression.NewMax(z), intLit(0)),
		agg,
	)
	input := plan.NewSort(
		[]expression.SortOrder{expression.NewSortOrder(y, expression.Descending)},
		having,
	)

	result, err := newAnalyzer().Analyze(sql.NewEmptyContext(), input, nil)
	require.NoError(err)

	project, ok := result.(*plan.Project)
	require.True(ok, "expected top Project, got %T", result)
	require.Len(project.ProjectList, 1)
	require.Equal("c", project.ProjectList[0].Name())

	sort, ok := project.Child.(*plan.Sort)
	require.True(ok, "expected Sort under Project, got %T", project.Child)
	require.Len(sort.Order, 1)

	filter, ok := sort.Child.(*plan.Filter)
	require.True(ok, "expected Filter under Sort, got %T", sort.Child)

	aggregate, ok := filter.Child.(*plan.Aggregate)
	require.True(ok, "expected Aggregate under Filter, got %T", filter.Child)
	require.Len(aggregate.KeyAliases, 1)
	require.Len(aggregate.AggAliases, 2, "count(x) and max(z) must both be collected")
}

// S4 - dangling column: SELECT z FROM t GROUP BY y.
func TestDanglingColumnRejected(t *testing.T) {
	require := require.New(t)

	table := newTestTable("t", "y", "z")
	y, z := col(table, "y"), col(table, "z")

	input := plan.NewUnresolvedAggregate(
		table,
		[]expression.Expression{y},
		[]expression.NamedExpression{expression.NewAlias("z", z)},
		nil, nil,
	)

	_, err := newAnalyzer().Analyze(sql.NewEmptyContext(), input, nil)
	require.Error(err)
	require.True(analyzer.ErrIllegalAggregation.Is(err), "expected IllegalAggregation, got %v", err)
}

// S5 - aggregate in GROUP BY.
func TestAggregateInGroupingKeyRejected(t *testing.T) {
	require := require.New(t)

	table := newTestTable("t", "x")
	x := col(table, "x")

	input := plan.NewUnresolvedAggregate(
		table,
		[]expression.Expression{expression.NewCount(x)},
		[]expression.NamedExpression{expression.NewAlias("x", x)},
		nil, nil,
	)

	_, err := newAnalyzer().Analyze(sql.NewEmptyContext(), input, nil)
	require.Error(err)
	require.True(analyzer.ErrIllegalAggregation.Is(err))
}

// S6 - window plus aggregate.
func TestWindowPlusAggregate(t *testing.T) {
	require := require.New(t)

	table := newTestTable("t", "a", "b")
	a, b := col(table, "a"), col(table, "b")

	win := expression.NewWindowFunction(
		expression.NewMax(a),
		expression.WindowSpec{PartitionBy: []expression.Expression{expression.NewAvg(b)}},
	)
	input := plan.NewUnresolvedAggregate(
		table,
		[]expression.Expression{a},
		[]expression.NamedExpression{
			expression.NewAlias("w", win),
			expression.NewAlias("m", expression.NewMax(a)),
		},
		nil, nil,
	)

	result, err := newAnalyzer().Analyze(sql.NewEmptyContext(), input, nil)
	require.NoError(err)

	project, ok := result.(*plan.Project)
	require.True(ok, "expected top Project, got %T", result)

	window, ok := project.Child.(*plan.Window)
	require.True(ok, "expected Window under Project, got %T", project.Child)
	require.Len(window.FunctionAliases, 1)

	aggregate, ok := window.Child.(*plan.Aggregate)
	require.True(ok, "expected Aggregate under Window, got %T", window.Child)
	require.Len(aggregate.KeyAliases, 1)
	require.Len(aggregate.AggAliases, 2, "avg(b) from the window spec and the standalone max(a) must both be collected")
}
