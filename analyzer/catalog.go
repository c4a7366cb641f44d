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
	"github.com/dolthub/spearql/plan"
)

// ErrFunctionNotFound is returned by a Catalog when asked to look up a
// function name it does not have.
var ErrFunctionNotFound = errors.NewKind("function %q not found")

// ErrTableNotFound is returned by a Catalog when asked to look up a
// relation name it does not have.
var ErrTableNotFound = errors.NewKind("table %q not found")

// FunctionInfo describes one entry in the catalog's function registry:
// a case-insensitive name and a variadic builder.
type FunctionInfo struct {
	Name    string
	Builder func(args []expression.Expression) (expression.Expression, error)
}

// Catalog is the external collaborator this pipeline reads from: a handle onto
// the table/function registry. The aggregation pipeline only ever reads
// it; resolving UnresolvedColumn/UnresolvedFunction nodes against it is
// the reference-resolution rule's job, out of this package's scope.
type Catalog interface {
	LookupFunction(name string) (*FunctionInfo, error)
	LookupRelation(name string) (plan.LogicalPlan, error)
}

// MapCatalog is a trivial in-memory Catalog, sufficient for tests and for
// embedding this package into a larger engine that already has its own
// catalog and just wants to satisfy this interface.
type MapCatalog struct {
	Functions map[string]*FunctionInfo
	Relations map[string]plan.LogicalPlan
}

func NewMapCatalog() *MapCatalog {
	return &MapCatalog{
		Functions: make(map[string]*FunctionInfo),
		Relations: make(map[string]plan.LogicalPlan),
	}
}

func (c *MapCatalog) RegisterFunction(info *FunctionInfo) {
	c.Functions[strings.ToLower(info.Name)] = info
}

func (c *MapCatalog) RegisterRelation(name string, p plan.LogicalPlan) {
	c.Relations[strings.ToLower(name)] = p
}

func (c *MapCatalog) LookupFunction(name string) (*FunctionInfo, error) {
	if f, ok := c.Functions[strings.ToLower(name)]; ok {
		return f, nil
	}
	return nil, ErrFunctionNotFound.New(name)
}

func (c *MapCatalog) LookupRelation(name string) (plan.LogicalPlan, error) {
	if r, ok := c.Relations[strings.ToLower(name)]; ok {
		return r, nil
	}
	return nil, ErrTableNotFound.New(name)
}
