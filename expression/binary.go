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

package expression

import (
	"fmt"

	"github.com/dolthub/spearql/sql"
	"github.com/dolthub/spearql/sql/types"
)

// binaryExpression is shared plumbing for the small set of comparison,
// boolean connective and arithmetic expressions the HAVING/ORDER BY
// absorption rules and test fixtures need (no string functions - those
// belong to the expression function registry this package does not
// implement).
type binaryExpression struct {
	op          string
	left, right Expression
	typ         sql.Type
}

func (b *binaryExpression) Children() []Expression { return []Expression{b.left, b.right} }

func (b *binaryExpression) Type() sql.Type   { return b.typ }
func (b *binaryExpression) IsNullable() bool { return b.left.IsNullable() || b.right.IsNullable() }
func (b *binaryExpression) Resolved() bool   { return b.left.Resolved() && b.right.Resolved() }

func (b *binaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.left.String(), b.op, b.right.String())
}

func (b *binaryExpression) selfKey() interface{} { return b.op }

// Comparison is a binary predicate such as `>` or `=`, always Boolean.
type Comparison struct {
	binaryExpression
}

func newComparison(op string, left, right Expression) *Comparison {
	return &Comparison{binaryExpression{op: op, left: left, right: right, typ: types.Boolean}}
}

func (c *Comparison) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression: %s takes 2 children, got %d", c.op, len(children))
	}
	return newComparison(c.op, children[0], children[1]), nil
}

func NewGreaterThan(left, right Expression) *Comparison { return newComparison(">", left, right) }
func NewLessThan(left, right Expression) *Comparison    { return newComparison("<", left, right) }
func NewEquals(left, right Expression) *Comparison      { return newComparison("=", left, right) }

// BooleanConnective is AND/OR over two boolean operands.
type BooleanConnective struct {
	binaryExpression
}

func newConnective(op string, left, right Expression) *BooleanConnective {
	return &BooleanConnective{binaryExpression{op: op, left: left, right: right, typ: types.Boolean}}
}

func (c *BooleanConnective) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression: %s takes 2 children, got %d", c.op, len(children))
	}
	return newConnective(c.op, children[0], children[1]), nil
}

func NewAnd(left, right Expression) *BooleanConnective { return newConnective("AND", left, right) }
func NewOr(left, right Expression) *BooleanConnective  { return newConnective("OR", left, right) }

// JoinAnd ANDs together an arbitrary, non-empty list of conditions,
// left-associatively, for use when folding multiple pushdown filters
// into one condition.
func JoinAnd(exprs ...Expression) Expression {
	if len(exprs) == 0 {
		return nil
	}
	result := exprs[0]
	for _, e := range exprs[1:] {
		result = NewAnd(result, e)
	}
	return result
}

// Arithmetic is a basic numeric binary operator (+ - * /), kept around so
// aggregates can appear nested inside arithmetic in test fixtures (e.g.
// `sum(x) / count(x)`).
type Arithmetic struct {
	binaryExpression
}

func NewArithmetic(left, right Expression, op string) *Arithmetic {
	return &Arithmetic{binaryExpression{op: op, left: left, right: right, typ: types.NumericResultType(left.Type())}}
}

func (a *Arithmetic) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 2 {
		return nil, fmt.Errorf("expression: arithmetic %s takes 2 children, got %d", a.op, len(children))
	}
	return NewArithmetic(children[0], children[1], a.op), nil
}
