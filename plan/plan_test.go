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

package plan_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/memory"
	"github.com/dolthub/spearql/plan"
	"github.com/dolthub/spearql/sql/types"
)

func testRelation(name string, cols ...string) *plan.Relation {
	defs := make([]memory.ColumnDef, len(cols))
	for i, c := range cols {
		defs[i] = memory.ColumnDef{Name: c, Type: types.Int64, Nullable: true}
	}
	return memory.NewTable(name, defs)
}

func relCol(t *plan.Relation, name string) *expression.AttributeRef {
	for _, c := range t.Output {
		if c.Name == name {
			return c.Extra.(*expression.AttributeRef)
		}
	}
	panic("plan_test: no such column: " + name)
}

// TransformUp rebuilds a node from its already-transformed children before
// applying f to the rebuilt node itself - f sees children in their final
// form, never the original ones.
func TestTransformUpVisitsBottomUp(t *testing.T) {
	require := require.New(t)

	table := testRelation("t", "a")
	project := plan.NewProject([]expression.NamedExpression{expression.NewAlias("a", relCol(table, "a"))}, table)
	filter := plan.NewFilter(expression.NewLiteral(true, types.Boolean), project)

	var visitOrder []string
	_, err := plan.TransformUp(filter, func(n plan.LogicalPlan) (plan.LogicalPlan, error) {
		switch n.(type) {
		case *plan.Relation:
			visitOrder = append(visitOrder, "relation")
		case *plan.Project:
			visitOrder = append(visitOrder, "project")
		case *plan.Filter:
			visitOrder = append(visitOrder, "filter")
		}
		return n, nil
	})
	require.NoError(err)
	require.Equal([]string{"relation", "project", "filter"}, visitOrder)
}

// TransformDown visits a node before its children, the reverse of TransformUp.
func TestTransformDownVisitsTopDown(t *testing.T) {
	require := require.New(t)

	table := testRelation("t", "a")
	project := plan.NewProject([]expression.NamedExpression{expression.NewAlias("a", relCol(table, "a"))}, table)

	var visitOrder []string
	_, err := plan.TransformDown(project, func(n plan.LogicalPlan) (plan.LogicalPlan, error) {
		switch n.(type) {
		case *plan.Relation:
			visitOrder = append(visitOrder, "relation")
		case *plan.Project:
			visitOrder = append(visitOrder, "project")
		}
		return n, nil
	})
	require.NoError(err)
	require.Equal([]string{"project", "relation"}, visitOrder)
}

// A rule that declines to match every node (identity) leaves the tree
// pointer-equal at every level it touches, matching the "no match is
// identity" convention the aggregation rules all rely on.
func TestTransformUpIdentityWhenNoMatch(t *testing.T) {
	require := require.New(t)

	table := testRelation("t", "a")
	project := plan.NewProject([]expression.NamedExpression{expression.NewAlias("a", relCol(table, "a"))}, table)

	result, err := plan.TransformUp(project, func(n plan.LogicalPlan) (plan.LogicalPlan, error) {
		return n, nil
	})
	require.NoError(err)
	require.Same(project, result)
}

func TestCollectGathersPreOrder(t *testing.T) {
	require := require.New(t)

	table := testRelation("t", "a")
	project := plan.NewProject([]expression.NamedExpression{expression.NewAlias("a", relCol(table, "a"))}, table)
	filter := plan.NewFilter(expression.NewLiteral(true, types.Boolean), project)

	found := plan.Collect(filter, func(n plan.LogicalPlan) bool {
		_, ok := n.(*plan.Project)
		return ok
	})
	require.Len(found, 1)
	require.Same(project, found[0])
}

// TransformExpressionsUp rewrites every expression a node owns via its
// Expressioner implementation, leaving non-Expressioner nodes (Relation)
// untouched.
func TestTransformExpressionsUpRewritesOwnedExpressions(t *testing.T) {
	require := require.New(t)

	table := testRelation("t", "a")
	a := relCol(table, "a")
	project := plan.NewProject([]expression.NamedExpression{expression.NewAlias("a", a)}, table)

	replacement := expression.NewLiteral(int64(42), types.Int64)
	result, err := plan.TransformExpressionsUp(project, func(e expression.Expression) (expression.Expression, error) {
		if _, ok := e.(*expression.AttributeRef); ok {
			return replacement, nil
		}
		return e, nil
	})
	require.NoError(err)

	p, ok := result.(*plan.Project)
	require.True(ok)
	alias, ok := p.ProjectList[0].(*expression.Alias)
	require.True(ok)
	require.Same(replacement, alias.Child)
}

func TestProjectWithChildrenAndExpressions(t *testing.T) {
	require := require.New(t)

	table := testRelation("t", "a")
	a := relCol(table, "a")
	project := plan.NewProject([]expression.NamedExpression{expression.NewAlias("a", a)}, table)

	other := testRelation("u", "a")
	rebuilt, err := project.WithChildren(other)
	require.NoError(err)
	p := rebuilt.(*plan.Project)
	require.Same(other, p.Child)

	_, err = project.WithChildren(other, other)
	require.Error(err)

	newAlias := expression.NewAlias("b", a)
	rebuilt2, err := project.WithExpressions(newAlias)
	require.NoError(err)
	require.Equal("b", rebuilt2.(*plan.Project).ProjectList[0].Name())

	_, err = project.WithExpressions(newAlias, newAlias)
	require.Error(err)
}

func TestRelationIsLeafAndResolved(t *testing.T) {
	require := require.New(t)

	table := testRelation("t", "a", "b")
	require.Empty(table.Children())
	require.True(table.Resolved())
	require.Len(table.Schema(), 2)

	_, err := table.WithChildren(table)
	require.Error(err)
}
