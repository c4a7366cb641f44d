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
)

// InternalAttribute is the synthetic attribute produced by GroupingAlias,
// AggregationAlias or WindowAlias. It is a marker subtype of AttributeRef:
// it must never escape the top-level Project the aggregation resolution
// rule builds (§3 Lifecycle).
type InternalAttribute struct {
	AttributeRef
}

func newInternalAttribute(name string, typ sql.Type, nullable bool) *InternalAttribute {
	return &InternalAttribute{AttributeRef{id: sql.FreshID(), name: name, typ: typ, nullable: nullable}}
}

// aliasKind names which of the three internal-alias families an
// InternalAttribute's name prefix came from; used only for readable names
// ($g0, $a0, $w0).
type aliasKind string

const (
	groupingKind    aliasKind = "g"
	aggregationKind aliasKind = "a"
	windowKind      aliasKind = "w"
)

// internalAlias is the shape shared by GroupingAlias/AggregationAlias/
// WindowAlias: owns a child expression, exposes a synthetic attribute with
// the child's type and nullability.
type internalAlias struct {
	kind  aliasKind
	index int
	Child Expression
	attr  *InternalAttribute
}

func newInternalAlias(kind aliasKind, index int, child Expression) internalAlias {
	name := fmt.Sprintf("$%s%d", kind, index)
	return internalAlias{
		kind:  kind,
		index: index,
		Child: child,
		attr:  newInternalAttribute(name, child.Type(), child.IsNullable()),
	}
}

func (a internalAlias) Children() []Expression { return []Expression{a.Child} }
func (a internalAlias) Type() sql.Type         { return a.Child.Type() }
func (a internalAlias) IsNullable() bool       { return a.Child.IsNullable() }
func (a internalAlias) Resolved() bool         { return a.Child.Resolved() }
func (a internalAlias) Name() string           { return a.attr.name }
func (a internalAlias) ID() sql.ExpressionID   { return a.attr.id }
func (a internalAlias) String() string {
	return fmt.Sprintf("%s AS %s", a.Child.String(), a.attr.name)
}
func (a internalAlias) selfKey() interface{} { return a.attr.id }

// Attr returns the synthetic InternalAttribute this alias exposes.
func (a internalAlias) Attr() *InternalAttribute { return a.attr }

// GroupingAlias wraps one GROUP BY key expression.
type GroupingAlias struct{ internalAlias }

// NewGroupingAlias creates the index-th grouping alias ($g<index>) over
// child. index is the position of child within the key list being built,
// used only to derive the synthetic name.
func NewGroupingAlias(index int, child Expression) *GroupingAlias {
	return &GroupingAlias{newInternalAlias(groupingKind, index, child)}
}

func (g *GroupingAlias) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: GroupingAlias takes 1 child, got %d", len(children))
	}
	cp := *g
	cp.Child = children[0]
	return &cp, nil
}

// AggregationAlias wraps one aggregate function occurrence.
type AggregationAlias struct{ internalAlias }

func NewAggregationAlias(index int, child Expression) *AggregationAlias {
	return &AggregationAlias{newInternalAlias(aggregationKind, index, child)}
}

func (g *AggregationAlias) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: AggregationAlias takes 1 child, got %d", len(children))
	}
	cp := *g
	cp.Child = children[0]
	return &cp, nil
}

// WindowAlias wraps one window function occurrence.
type WindowAlias struct{ internalAlias }

func NewWindowAlias(index int, child Expression) *WindowAlias {
	return &WindowAlias{newInternalAlias(windowKind, index, child)}
}

func (g *WindowAlias) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: WindowAlias takes 1 child, got %d", len(children))
	}
	cp := *g
	cp.Child = children[0]
	return &cp, nil
}

// aliasEntry is the common surface rewriter/restorer need from any of the
// three internal-alias families.
type aliasEntry interface {
	NamedExpression
	AliasedChild() Expression
	Attr() *InternalAttribute
}

func (g *GroupingAlias) AliasedChild() Expression    { return g.Child }
func (g *AggregationAlias) AliasedChild() Expression { return g.Child }
func (g *WindowAlias) AliasedChild() Expression      { return g.Child }

// Rewriter returns a partial function, for use with TransformUp, that
// maps each expression structurally equal to some alias's child to that
// alias's synthetic attribute. Ties (an expression matching more than one
// alias's child) are broken in favor of the first alias in declaration
// order, per §4.2.
func Rewriter[A aliasEntry](aliases []A) func(Expression) (Expression, error) {
	return func(e Expression) (Expression, error) {
		for _, a := range aliases {
			if SameOrEqual(e, a.AliasedChild()) {
				return a.Attr(), nil
			}
		}
		return e, nil
	}
}

// Restorer returns the inverse of Rewriter: it maps each alias's synthetic
// attribute back to the alias's child, for use in error messages so that
// user-facing expressions never contain $g0/$a0/$w0.
func Restorer[A aliasEntry](aliases []A) func(Expression) (Expression, error) {
	return func(e Expression) (Expression, error) {
		ia, ok := e.(*InternalAttribute)
		if !ok {
			return e, nil
		}
		for _, a := range aliases {
			if a.Attr().id == ia.id {
				return a.AliasedChild(), nil
			}
		}
		return e, nil
	}
}
