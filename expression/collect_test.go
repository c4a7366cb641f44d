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

package expression_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/sql/types"
)

func col(id uint64, name string) *expression.AttributeRef {
	return expression.NewAttributeRef(sqlID(id), "t", name, types.Int64, false)
}

func TestCollectAggregateFunctionsDedup(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	sum := expression.NewSum(a)
	// sum(a) appears twice, structurally identical: must dedup to one entry.
	e := expression.NewAnd(
		expression.NewGreaterThan(sum, expression.NewLiteral(int64(0), types.Int64)),
		expression.NewLessThan(expression.NewSum(a), expression.NewLiteral(int64(10), types.Int64)),
	)

	aggs := expression.CollectAggregateFunctions(e)
	require.Len(aggs, 1)
	require.Equal("SUM", aggs[0].FunctionName())
}

func TestCollectAggregateFunctionsFromAcrossClauses(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	selectExpr := expression.NewAlias("c", expression.NewCount(a))
	havingExpr := expression.NewGreaterThan(expression.NewCount(a), expression.NewLiteral(int64(5), types.Int64))

	aggs := expression.CollectAggregateFunctionsFrom(selectExpr, havingExpr)
	require.Len(aggs, 1, "count(a) in SELECT and HAVING must collapse to one AggregationAlias source")
}

func TestWindowAggregateSeparation(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	b := col(2, "b")

	// max(a) OVER (PARTITION BY avg(b)): avg(b) is a real aggregate (it's
	// in the partitioning, not the function itself); max(a) the window's
	// own function is never collected as a group-by aggregate.
	spec := expression.WindowSpec{PartitionBy: []expression.Expression{expression.NewAvg(b)}}
	win := expression.NewWindowFunction(expression.NewMax(a), spec)

	aggs := expression.CollectAggregateFunctions(win)
	require.Len(aggs, 1)
	require.Equal("AVG", aggs[0].FunctionName())
}

func TestSameOrEqualComparesAttributeRefsByID(t *testing.T) {
	require := require.New(t)

	x := expression.NewAttributeRef(sqlID(1), "t", "x", types.Int64, false)
	y := expression.NewAttributeRef(sqlID(2), "t", "y", types.Int64, false)
	require.False(expression.SameOrEqual(x, y))

	x2 := expression.NewAttributeRef(sqlID(1), "t", "x", types.Int64, false)
	require.True(expression.SameOrEqual(x, x2))
}
