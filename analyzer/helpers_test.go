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
	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/memory"
	"github.com/dolthub/spearql/plan"
	"github.com/dolthub/spearql/sql/types"
)

// newTestTable builds a *plan.Relation named name with one nullable
// BIGINT column per entry in cols.
func newTestTable(name string, cols ...string) *plan.Relation {
	defs := make([]memory.ColumnDef, len(cols))
	for i, c := range cols {
		defs[i] = memory.ColumnDef{Name: c, Type: types.Int64, Nullable: true}
	}
	return memory.NewTable(name, defs)
}

// col looks up the resolved AttributeRef memory.NewTable minted for
// columnName in t's schema.
func col(t *plan.Relation, columnName string) *expression.AttributeRef {
	for _, c := range t.Output {
		if c.Name == columnName {
			return c.Extra.(*expression.AttributeRef)
		}
	}
	panic("analyzer_test: no such column: " + columnName)
}

// intLit builds a BIGINT literal from a loosely-typed threshold value
// (an int, a numeric string, ...), routing it through
// expression.NewCoercedLiteral the way a parser-adjacent literal builder
// would coerce a constant to its declared column type.
func intLit(v interface{}) *expression.Literal {
	lit, err := expression.NewCoercedLiteral(v, types.Int64)
	if err != nil {
		panic(err)
	}
	return lit
}
