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

// NamedExpression is an Expression that carries a user- or system-facing
// name and a globally unique id. Alias and AttributeRef are the two
// variants; GroupingAlias/AggregationAlias/WindowAlias (internal_alias.go)
// are a third, internal-only family.
type NamedExpression interface {
	Expression
	Name() string
	ID() sql.ExpressionID
}

// AttributeRef is a leaf NamedExpression bound to a concrete column,
// either from a relation's output or from one of the internal alias
// families. Two AttributeRefs are the same iff their ids match -
// structural equality on everything else (name, table, type) is
// irrelevant to identity.
type AttributeRef struct {
	id       sql.ExpressionID
	name     string
	table    string
	typ      sql.Type
	nullable bool
}

// NewAttributeRef creates a reference to a concrete, already-resolved
// column. It does not mint a fresh id - ids for ordinary columns come
// from the relation/reference-resolution layer this package does not
// implement; only the internal alias constructors mint fresh ids, since
// those are the only attributes this package creates.
func NewAttributeRef(id sql.ExpressionID, table, name string, typ sql.Type, nullable bool) *AttributeRef {
	return &AttributeRef{id: id, name: name, table: table, typ: typ, nullable: nullable}
}

func (a *AttributeRef) Children() []Expression { return nil }

func (a *AttributeRef) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: AttributeRef is a leaf, got %d children", len(children))
	}
	return a, nil
}

func (a *AttributeRef) Type() sql.Type    { return a.typ }
func (a *AttributeRef) IsNullable() bool  { return a.nullable }
func (a *AttributeRef) Resolved() bool    { return a.typ != nil }
func (a *AttributeRef) Name() string      { return a.name }
func (a *AttributeRef) Table() string     { return a.table }
func (a *AttributeRef) ID() sql.ExpressionID { return a.id }

func (a *AttributeRef) String() string {
	if a.table == "" {
		return a.name
	}
	return fmt.Sprintf("%s.%s", a.table, a.name)
}

func (a *AttributeRef) selfKey() interface{} { return a.id }

// Equals reports whether two AttributeRefs refer to the same attribute:
// by id, per §4.1.
func (a *AttributeRef) Equals(other *AttributeRef) bool {
	return other != nil && a.id == other.id
}

// Alias is a NamedExpression that gives a child expression a user-visible
// name while preserving a stable id across rewrites (e.g. `count(x) AS c`).
type Alias struct {
	Child Expression
	name  string
	id    sql.ExpressionID
}

// NewAlias creates an alias with a freshly-minted id.
func NewAlias(name string, child Expression) *Alias {
	return &Alias{Child: child, name: name, id: sql.FreshID()}
}

// NewAliasWithID creates an alias that reuses an existing id, used by
// ResolveAggregates step 7 to preserve the original project-list entry's
// identity when re-wrapping a rewritten attribute.
func NewAliasWithID(name string, id sql.ExpressionID, child Expression) *Alias {
	return &Alias{Child: child, name: name, id: id}
}

func (a *Alias) Children() []Expression { return []Expression{a.Child} }

func (a *Alias) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("expression: Alias takes 1 child, got %d", len(children))
	}
	return &Alias{Child: children[0], name: a.name, id: a.id}, nil
}

func (a *Alias) Type() sql.Type    { return a.Child.Type() }
func (a *Alias) IsNullable() bool  { return a.Child.IsNullable() }
func (a *Alias) Resolved() bool    { return a.Child.Resolved() }
func (a *Alias) Name() string      { return a.name }
func (a *Alias) ID() sql.ExpressionID { return a.id }

func (a *Alias) String() string {
	return fmt.Sprintf("%s AS %s", a.Child.String(), a.name)
}

func (a *Alias) selfKey() interface{} { return a.name }

// Unalias returns e's underlying child if e is an Alias, and e unchanged
// otherwise. It unwraps one level only; the HAVING/ORDER BY absorption
// rules unwrap aliases with their own TransformUp pass instead.
func Unalias(e Expression) Expression {
	if al, ok := e.(*Alias); ok {
		return al.Child
	}
	return e
}

// Literal is a constant value of a known type.
type Literal struct {
	value interface{}
	typ   sql.Type
}

// NewLiteral creates a resolved constant expression.
func NewLiteral(value interface{}, typ sql.Type) *Literal {
	return &Literal{value: value, typ: typ}
}

// NewCoercedLiteral builds a Literal of typ from a loosely-typed Go value -
// a raw int where typ is BIGINT, a numeric string where typ is VARCHAR, and
// so on - coercing it to typ's canonical representation first via
// types.CoerceLiteral. Use this instead of NewLiteral whenever the value
// doesn't already come in typ's Go representation.
func NewCoercedLiteral(value interface{}, typ sql.Type) (*Literal, error) {
	coerced, err := types.CoerceLiteral(typ, value)
	if err != nil {
		return nil, err
	}
	return &Literal{value: coerced, typ: typ}, nil
}

func (l *Literal) Children() []Expression { return nil }

func (l *Literal) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: Literal is a leaf, got %d children", len(children))
	}
	return l, nil
}

func (l *Literal) Type() sql.Type   { return l.typ }
func (l *Literal) IsNullable() bool { return l.value == nil }
func (l *Literal) Resolved() bool   { return true }
func (l *Literal) Value() interface{} { return l.value }

func (l *Literal) String() string {
	if s, ok := l.value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", l.value)
}

func (l *Literal) selfKey() interface{} { return l.value }
