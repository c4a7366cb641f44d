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
)

func TestMapCatalogFunctionLookupCaseInsensitive(t *testing.T) {
	require := require.New(t)

	cat := analyzer.NewMapCatalog()
	cat.RegisterFunction(&analyzer.FunctionInfo{
		Name: "COUNT",
		Builder: func(args []expression.Expression) (expression.Expression, error) {
			return expression.NewCount(args[0]), nil
		},
	})

	info, err := cat.LookupFunction("count")
	require.NoError(err)
	require.Equal("COUNT", info.Name)

	info, err = cat.LookupFunction("CoUnT")
	require.NoError(err)
	require.Equal("COUNT", info.Name)
}

func TestMapCatalogFunctionNotFound(t *testing.T) {
	require := require.New(t)

	cat := analyzer.NewMapCatalog()
	_, err := cat.LookupFunction("sum")
	require.Error(err)
	require.True(analyzer.ErrFunctionNotFound.Is(err))
}

func TestMapCatalogRelationLookupCaseInsensitive(t *testing.T) {
	require := require.New(t)

	table := newTestTable("Orders", "id")
	cat := analyzer.NewMapCatalog()
	cat.RegisterRelation("Orders", table)

	rel, err := cat.LookupRelation("orders")
	require.NoError(err)
	require.Same(table, rel)
}

func TestMapCatalogRelationNotFound(t *testing.T) {
	require := require.New(t)

	cat := analyzer.NewMapCatalog()
	_, err := cat.LookupRelation("nope")
	require.Error(err)
	require.True(analyzer.ErrTableNotFound.Is(err))
}
