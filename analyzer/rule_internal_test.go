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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/memory"
	"github.com/dolthub/spearql/plan"
	"github.com/dolthub/spearql/sql"
	"github.com/dolthub/spearql/sql/types"
)

func TestGetRuleFindsByName(t *testing.T) {
	require := require.New(t)
	r := getRule("resolve_aggregates")
	require.Equal("resolve_aggregates", r.Name)
	require.NotNil(r.Apply)
}

func TestGetRulePanicsOnUnknownName(t *testing.T) {
	require := require.New(t)
	require.Panics(func() { getRule("not_a_real_rule") })
}

// MaxIterations of 0 means the fixed-point loop body never runs, so
// Analyze returns the input plan untouched even though a rule would
// otherwise fire on it.
func TestAnalyzeRespectsZeroMaxIterations(t *testing.T) {
	require := require.New(t)

	table := memory.NewTable("t", []memory.ColumnDef{{Name: "a", Type: types.Int64, Nullable: true}})
	input := plan.NewDistinct(table)

	a := NewAnalyzer(NewMapCatalog())
	a.Config.MaxIterations = 0

	result, err := a.Analyze(sql.NewEmptyContext(), input, nil)
	require.NoError(err)
	require.Same(input, result)
}

// AllRules is a RuleSelector that accepts every rule.
func TestAllRulesSelectsEverything(t *testing.T) {
	require := require.New(t)
	for _, r := range DefaultRules {
		require.True(AllRules(r))
	}
}

// A RuleSelector that excludes resolve_aggregates leaves an
// UnresolvedAggregate in place even though the rest of the batch runs.
func TestAnalyzeHonorsRuleSelector(t *testing.T) {
	require := require.New(t)

	table := memory.NewTable("t", []memory.ColumnDef{{Name: "a", Type: types.Int64, Nullable: true}})
	col := table.Output[0].Extra.(*expression.AttributeRef)
	input := plan.NewProject([]expression.NamedExpression{expression.NewAlias("c", expression.NewCount(col))}, table)

	a := NewAnalyzer(NewMapCatalog())
	onlyGlobalAggregateRewrite := func(r Rule) bool {
		return r.Name == "rewrite_projects_as_global_aggregates"
	}

	result, err := a.Analyze(sql.NewEmptyContext(), input, onlyGlobalAggregateRewrite)
	require.NoError(err)

	_, ok := result.(*plan.UnresolvedAggregate)
	require.True(ok, "expected UnresolvedAggregate to survive since resolve_aggregates was excluded, got %T", result)
}
