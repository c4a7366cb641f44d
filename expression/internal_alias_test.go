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

func TestGroupingAliasRewriterFirstMatchWins(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	keyAliases := []*expression.GroupingAlias{
		expression.NewGroupingAlias(0, a),
		expression.NewGroupingAlias(1, expression.NewAttributeRef(sqlID(1), "t", "a", types.Int64, false)),
	}

	rewritten, err := expression.TransformUp(a, expression.Rewriter(keyAliases))
	require.NoError(err)

	attr, ok := rewritten.(*expression.InternalAttribute)
	require.True(ok)
	require.Equal("$g0", attr.Name())
}

func TestAggregationAliasRestorerRoundTrips(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	sum := expression.NewSum(a)
	aggAliases := []*expression.AggregationAlias{expression.NewAggregationAlias(0, sum)}

	rewritten, err := expression.TransformUp(sum, expression.Rewriter(aggAliases))
	require.NoError(err)
	require.IsType(&expression.InternalAttribute{}, rewritten)

	restored, err := expression.TransformUp(rewritten, expression.Restorer(aggAliases))
	require.NoError(err)
	require.True(expression.SameOrEqual(sum, restored))
}

func TestUnaliasUnwrapsOneLevel(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	alias := expression.NewAlias("x", a)
	require.Same(a, expression.Unalias(alias).(*expression.AttributeRef))
	require.Equal(a, expression.Unalias(a))
}
