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

// Package memory is a minimal in-memory Catalog implementation: no
// storage, no execution, just named relations and functions for tests
// and examples to build plans against.
package memory

import (
	"github.com/dolthub/spearql/analyzer"
	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/plan"
	"github.com/dolthub/spearql/sql"
)

// ColumnDef names one column to build a table from; NewTable mints a
// fresh, identity-bearing AttributeRef for each, the way a real relation's
// output would already carry resolved attribute ids by the time this
// pipeline sees it.
type ColumnDef struct {
	Name     string
	Type     sql.Type
	Nullable bool
}

// NewTable builds a *plan.Relation named name with one resolved
// AttributeRef per column in cols, stashed in sql.Column.Extra so that
// rules rewriting the relation's schema into expressions (e.g.
// RewriteDistinctsAsAggregates) reuse these ids rather than minting
// unrelated new ones.
func NewTable(name string, cols []ColumnDef) *plan.Relation {
	schema := make(sql.Schema, len(cols))
	for i, c := range cols {
		ref := expression.NewAttributeRef(sql.FreshID(), name, c.Name, c.Type, c.Nullable)
		schema[i] = &sql.Column{Name: c.Name, Source: name, Type: c.Type, Nullable: c.Nullable, Extra: ref}
	}
	return plan.NewRelation(name, schema)
}

// NewCatalog builds an analyzer.Catalog with one relation registered per
// table, and no functions - callers add functions with RegisterFunction
// on the returned *analyzer.MapCatalog directly.
func NewCatalog(tables ...*plan.Relation) *analyzer.MapCatalog {
	cat := analyzer.NewMapCatalog()
	for _, t := range tables {
		cat.RegisterRelation(t.RelName, t)
	}
	return cat
}
