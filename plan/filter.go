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

	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/sql"
)

// Filter applies Condition to rows coming from Child, keeping only those
// for which it evaluates true. In the canonical aggregation plan, a
// Filter directly above Aggregate implements HAVING (§4.6 step 9).
type Filter struct {
	UnaryNode
	Condition expression.Expression
}

func NewFilter(condition expression.Expression, child LogicalPlan) *Filter {
	return &Filter{UnaryNode: UnaryNode{Child: child}, Condition: condition}
}

func (f *Filter) WithChildren(children ...LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Filter takes 1 child, got %d", len(children))
	}
	return NewFilter(f.Condition, children[0]), nil
}

func (f *Filter) Schema() sql.Schema { return f.Child.Schema() }
func (f *Filter) Resolved() bool     { return f.Child.Resolved() && f.Condition.Resolved() }

func (f *Filter) Expressions() []expression.Expression {
	return []expression.Expression{f.Condition}
}

func (f *Filter) WithExpressions(exprs ...expression.Expression) (LogicalPlan, error) {
	if len(exprs) != 1 {
		return nil, fmt.Errorf("plan: Filter.WithExpressions expected 1, got %d", len(exprs))
	}
	return NewFilter(exprs[0], f.Child), nil
}

func (f *Filter) String() string {
	return fmt.Sprintf("Filter(%s)\n  %s", f.Condition.String(), f.Child.String())
}
