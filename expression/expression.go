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

// Package expression defines the immutable expression tree the analyzer
// rewrites: the generic Expression contract, the transform_up/transform_down/
// collect primitives every rule is built from, and structural equality.
//
// Evaluation lives outside this package's scope - an Expression here is
// resolved and typed, never executed. Evaluating an unresolved expression
// is a contract violation the caller is responsible for not committing.
package expression

import (
	"reflect"

	"github.com/mitchellh/hashstructure"

	"github.com/dolthub/spearql/sql"
)

// Expression is a node in the immutable expression tree.
type Expression interface {
	// Children returns this node's direct children, in order. A leaf
	// returns nil.
	Children() []Expression
	// WithChildren returns a copy of this node with its children replaced.
	// len(children) must equal len(e.Children()); implementations panic or
	// error otherwise.
	WithChildren(children ...Expression) (Expression, error)
	// Type is this expression's data type. Calling Type on an unresolved
	// expression is undefined.
	Type() sql.Type
	// IsNullable reports whether this expression may evaluate to NULL.
	IsNullable() bool
	// Resolved reports whether every descendant of this expression,
	// including itself, binds successfully and has a defined Type.
	Resolved() bool
	// String renders a SQL-like form of the expression, used in error
	// messages and plan printing.
	String() string
}

// TransformUp applies f to e bottom-up: every child is transformed first,
// then f is applied to the node rebuilt from the transformed children. A
// rule that does not match a node returns it unchanged from f, which is
// the "no match is identity" convention every rule in this package follows.
// A node whose children all come back unchanged is passed to f as-is
// rather than rebuilt, so an f that matches nothing returns e itself.
func TransformUp(e Expression, f func(Expression) (Expression, error)) (Expression, error) {
	children := e.Children()
	if len(children) == 0 {
		return f(e)
	}

	newChildren := make([]Expression, len(children))
	changed := false
	for i, c := range children {
		nc, err := TransformUp(c, f)
		if err != nil {
			return nil, err
		}
		if nc != c {
			changed = true
		}
		newChildren[i] = nc
	}
	if !changed {
		return f(e)
	}

	rebuilt, err := e.WithChildren(newChildren...)
	if err != nil {
		return nil, err
	}

	return f(rebuilt)
}

// TransformDown applies f to e top-down: f is applied to e first, then the
// traversal recurses into the (possibly replaced) node's children.
func TransformDown(e Expression, f func(Expression) (Expression, error)) (Expression, error) {
	rewritten, err := f(e)
	if err != nil {
		return nil, err
	}

	children := rewritten.Children()
	if len(children) == 0 {
		return rewritten, nil
	}

	newChildren := make([]Expression, len(children))
	for i, c := range children {
		nc, err := TransformDown(c, f)
		if err != nil {
			return nil, err
		}
		newChildren[i] = nc
	}

	return rewritten.WithChildren(newChildren...)
}

// Collect gathers, in pre-order, every node in e's subtree (e included)
// satisfying the partial predicate p.
func Collect(e Expression, p func(Expression) bool) []Expression {
	var out []Expression
	if p(e) {
		out = append(out, e)
	}
	for _, c := range e.Children() {
		out = append(out, Collect(c, p)...)
	}
	return out
}

// References returns the set (deduplicated by expression id) of
// AttributeRef leaves reachable in e's subtree.
func References(e Expression) []*AttributeRef {
	var out []*AttributeRef
	seen := make(map[sql.ExpressionID]bool)
	for _, node := range Collect(e, func(n Expression) bool {
		_, ok := n.(*AttributeRef)
		return ok
	}) {
		ref := node.(*AttributeRef)
		if !seen[ref.id] {
			seen[ref.id] = true
			out = append(out, ref)
		}
	}
	return out
}

// SameOrEqual is the stable structural equality §4.1 requires: two
// expressions are the same-or-equal if they have the same shape and the
// same literal/leaf data, irrespective of where in the tree they sit or
// whether they are the same pointers. AttributeRefs compare by expression
// id only (not name, table or type), since that is the one piece of
// "structure" that actually identifies a column.
//
// hashstructure gives an O(size) structural hash; a full reflect.DeepEqual
// only runs to break the astronomically unlikely case of a hash collision,
// so the common case stays cheap.
func SameOrEqual(a, b Expression) bool {
	if a == nil || b == nil {
		return a == b
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}

	ha, err := structuralHash(a)
	if err != nil {
		return reflect.DeepEqual(a, b)
	}
	hb, err := structuralHash(b)
	if err != nil {
		return reflect.DeepEqual(a, b)
	}
	if ha != hb {
		return false
	}
	return reflect.DeepEqual(normalize(a), normalize(b))
}

// structuralHash hashes the normalized form of e so that two
// structurally-identical subtrees hash the same regardless of the
// concrete AttributeRef pointers involved.
func structuralHash(e Expression) (uint64, error) {
	return hashstructure.Hash(normalize(e), nil)
}

// normalizedNode is the shape structuralHash/DeepEqual actually compare:
// the expression's dynamic type name, its own leaf data (via selfKey, for
// types that carry it, e.g. AttributeRef's expression id or Literal's
// value), and the normalized form of its children.
type normalizedNode struct {
	Type     string
	Self     interface{}
	Children []normalizedNode
}

func normalize(e Expression) normalizedNode {
	children := e.Children()
	nc := make([]normalizedNode, len(children))
	for i, c := range children {
		nc[i] = normalize(c)
	}
	return normalizedNode{
		Type:     reflect.TypeOf(e).String(),
		Self:     selfKey(e),
		Children: nc,
	}
}

// selfKeyer is implemented by leaf/near-leaf expressions that carry data
// beyond their children and their dynamic type, e.g. AttributeRef's
// expression id, Literal's value, Alias's name.
type selfKeyer interface {
	selfKey() interface{}
}

func selfKey(e Expression) interface{} {
	if sk, ok := e.(selfKeyer); ok {
		return sk.selfKey()
	}
	return nil
}

// ExpressionsResolved reports whether every expression in exprs is
// resolved.
func ExpressionsResolved(exprs ...Expression) bool {
	for _, e := range exprs {
		if !e.Resolved() {
			return false
		}
	}
	return true
}
