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

// Window computes FunctionAliases, a single layer of window functions
// sharing one WindowSpec, over Child's rows. A query using window
// functions under more than one distinct spec produces a stack of Window
// nodes, one per spec, ordered by first appearance.
type Window struct {
	UnaryNode
	FunctionAliases []*expression.WindowAlias
	Spec            expression.WindowSpec
}

func NewWindow(functionAliases []*expression.WindowAlias, spec expression.WindowSpec, child LogicalPlan) *Window {
	return &Window{UnaryNode: UnaryNode{Child: child}, FunctionAliases: functionAliases, Spec: spec}
}

func (w *Window) WithChildren(children ...LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Window takes 1 child, got %d", len(children))
	}
	return NewWindow(w.FunctionAliases, w.Spec, children[0]), nil
}

func (w *Window) Schema() sql.Schema {
	childSchema := w.Child.Schema()
	s := make(sql.Schema, 0, len(childSchema)+len(w.FunctionAliases))
	s = append(s, childSchema...)
	for _, fa := range w.FunctionAliases {
		s = append(s, &sql.Column{Name: fa.Name(), Type: fa.Type(), Nullable: fa.IsNullable()})
	}
	return s
}

func (w *Window) Resolved() bool {
	if !w.Child.Resolved() {
		return false
	}
	for _, fa := range w.FunctionAliases {
		if !fa.Resolved() {
			return false
		}
	}
	return true
}

func (w *Window) Expressions() []expression.Expression {
	out := make([]expression.Expression, len(w.FunctionAliases))
	for i, fa := range w.FunctionAliases {
		out[i] = fa
	}
	return out
}

func (w *Window) WithExpressions(exprs ...expression.Expression) (LogicalPlan, error) {
	if len(exprs) != len(w.FunctionAliases) {
		return nil, fmt.Errorf("plan: Window.WithExpressions expected %d, got %d", len(w.FunctionAliases), len(exprs))
	}
	newAliases := make([]*expression.WindowAlias, len(exprs))
	for i, e := range exprs {
		wa, ok := e.(*expression.WindowAlias)
		if !ok {
			return nil, fmt.Errorf("plan: Window func %d is not a WindowAlias: %T", i, e)
		}
		newAliases[i] = wa
	}
	return NewWindow(newAliases, w.Spec, w.Child), nil
}

func (w *Window) String() string {
	fns := make([]string, len(w.FunctionAliases))
	for i, fa := range w.FunctionAliases {
		fns[i] = fa.String()
	}
	return fmt.Sprintf("Window(%s)\n  %s", strings.Join(fns, ", "), w.Child.String())
}
