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
	"github.com/dolthub/spearql/plan"
	"github.com/dolthub/spearql/sql"
)

// rewriteDistinctsAsAggregates groups on every column of the child's
// output, preserving the original column identities (ids) in the
// resulting GROUP BY keys.
func TestRewriteDistinctsAsAggregatesGroupsOnFullOutput(t *testing.T) {
	require := require.New(t)

	table := newTestTable("t", "a", "b")
	a, b := col(table, "a"), col(table, "b")
	input := plan.NewDistinct(table)

	rule := analyzer.DefaultRules[0]
	require.Equal("rewrite_distincts_as_aggregates", rule.Name)

	result, _, err := rule.Apply(sql.NewEmptyContext(), analyzer.NewAnalyzer(analyzer.NewMapCatalog()), input)
	require.NoError(err)

	agg, ok := result.(*plan.UnresolvedAggregate)
	require.True(ok, "expected UnresolvedAggregate, got %T", result)
	require.Len(agg.Keys, 2)
	require.Same(a, agg.Keys[0])
	require.Same(b, agg.Keys[1])
	require.Len(agg.ProjectList, 2)
}

// A Distinct whose child is not yet resolved is left untouched, since the
// rule needs a concrete output schema to group on.
func TestRewriteDistinctsAsAggregatesSkipsUnresolvedChild(t *testing.T) {
	require := require.New(t)

	input := plan.NewDistinct(&unresolvedLeaf{})

	rule := analyzer.DefaultRules[0]
	result, _, err := rule.Apply(sql.NewEmptyContext(), analyzer.NewAnalyzer(analyzer.NewMapCatalog()), input)
	require.NoError(err)
	require.Same(input, result)
}

// unresolvedLeaf is a minimal LogicalPlan leaf that never resolves, used
// to exercise a rule's resolved-child guard in isolation.
type unresolvedLeaf struct{}

func (u *unresolvedLeaf) Children() []plan.LogicalPlan                         { return nil }
func (u *unresolvedLeaf) WithChildren(children ...plan.LogicalPlan) (plan.LogicalPlan, error) {
	return u, nil
}
func (u *unresolvedLeaf) Schema() sql.Schema { return nil }
func (u *unresolvedLeaf) Resolved() bool     { return false }
func (u *unresolvedLeaf) String() string     { return "unresolvedLeaf" }
