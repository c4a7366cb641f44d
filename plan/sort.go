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

// Sort orders rows from Child according to Order. In the canonical
// aggregation plan, a Sort directly above (Aggregate/Filter/Window)
// implements ORDER BY (§4.6 step 9).
type Sort struct {
	UnaryNode
	Order []expression.SortOrder
}

func NewSort(order []expression.SortOrder, child LogicalPlan) *Sort {
	return &Sort{UnaryNode: UnaryNode{Child: child}, Order: order}
}

func (s *Sort) WithChildren(children ...LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Sort takes 1 child, got %d", len(children))
	}
	return NewSort(s.Order, children[0]), nil
}

func (s *Sort) Schema() sql.Schema { return s.Child.Schema() }

func (s *Sort) Resolved() bool {
	if !s.Child.Resolved() {
		return false
	}
	for _, o := range s.Order {
		if !o.Expr.Resolved() {
			return false
		}
	}
	return true
}

func (s *Sort) Expressions() []expression.Expression {
	out := make([]expression.Expression, len(s.Order))
	for i, o := range s.Order {
		out[i] = o.Expr
	}
	return out
}

func (s *Sort) WithExpressions(exprs ...expression.Expression) (LogicalPlan, error) {
	if len(exprs) != len(s.Order) {
		return nil, fmt.Errorf("plan: Sort.WithExpressions expected %d, got %d", len(s.Order), len(exprs))
	}
	newOrder := make([]expression.SortOrder, len(s.Order))
	for i, o := range s.Order {
		newOrder[i] = expression.SortOrder{Expr: exprs[i], Direction: o.Direction, NullOrdering: o.NullOrdering}
	}
	return NewSort(newOrder, s.Child), nil
}

func (s *Sort) String() string {
	parts := make([]string, len(s.Order))
	for i, o := range s.Order {
		parts[i] = o.String()
	}
	return fmt.Sprintf("Sort(%s)\n  %s", strings.Join(parts, ", "), s.Child.String())
}
