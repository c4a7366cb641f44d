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

package plan

import (
	"fmt"
	"strings"

	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/sql"
)

// Project evaluates ProjectList against the rows its Child produces. It is
// the top-level node of every canonical aggregation plan (§4.6 step 9).
type Project struct {
	UnaryNode
	ProjectList []expression.NamedExpression
}

func NewProject(projectList []expression.NamedExpression, child LogicalPlan) *Project {
	return &Project{UnaryNode: UnaryNode{Child: child}, ProjectList: projectList}
}

func (p *Project) WithChildren(children ...LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Project takes 1 child, got %d", len(children))
	}
	return NewProject(p.ProjectList, children[0]), nil
}

func (p *Project) Schema() sql.Schema {
	s := make(sql.Schema, len(p.ProjectList))
	for i, e := range p.ProjectList {
		s[i] = &sql.Column{Name: e.Name(), Type: e.Type(), Nullable: e.IsNullable()}
	}
	return s
}

func (p *Project) Resolved() bool {
	return p.Child.Resolved() && namedExpressionsResolved(p.ProjectList)
}

func (p *Project) Expressions() []expression.Expression {
	out := make([]expression.Expression, len(p.ProjectList))
	for i, e := range p.ProjectList {
		out[i] = e
	}
	return out
}

func (p *Project) WithExpressions(exprs ...expression.Expression) (LogicalPlan, error) {
	if len(exprs) != len(p.ProjectList) {
		return nil, fmt.Errorf("plan: Project.WithExpressions expected %d, got %d", len(p.ProjectList), len(exprs))
	}
	newList := make([]expression.NamedExpression, len(exprs))
	for i, e := range exprs {
		ne, ok := e.(expression.NamedExpression)
		if !ok {
			return nil, fmt.Errorf("plan: Project entry %d is not a NamedExpression: %T", i, e)
		}
		newList[i] = ne
	}
	return NewProject(newList, p.Child), nil
}

func (p *Project) String() string {
	names := make([]string, len(p.ProjectList))
	for i, e := range p.ProjectList {
		names[i] = e.String()
	}
	return fmt.Sprintf("Project(%s)\n  %s", strings.Join(names, ", "), p.Child.String())
}

func namedExpressionsResolved(exprs []expression.NamedExpression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}
