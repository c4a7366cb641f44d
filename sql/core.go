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

// Package sql holds the handful of types shared by the expression, plan and
// analyzer packages: the semantic Type interface, Schema/Column, the
// process-wide expression id generator, and a tracing Context.
package sql

import (
	"context"
	"sync/atomic"

	opentracing "github.com/opentracing/opentracing-go"
)

// Type is a semantic type carried by an Expression. It intentionally knows
// nothing about on-disk encoding or evaluation - those belong to the
// execution engine that consumes the resolved plan this package produces.
type Type interface {
	// String returns the SQL-like rendering of the type, e.g. "BIGINT".
	String() string
	// Equals reports whether two types are the same semantic type.
	Equals(Type) bool
}

// Column describes one field of a Schema.
type Column struct {
	Name     string
	Source   string
	Type     Type
	Nullable bool
	// Extra carries the producing node's attribute identity (typically an
	// *expression.AttributeRef) alongside the column's name/type, so that
	// a rule rebuilding expressions from a child's Schema() can reference
	// the same attribute id rather than minting a new, unrelated one.
	// Nil when the column has no attribute identity yet (e.g. in a test
	// fixture schema).
	Extra interface{}
}

// Schema is an ordered list of columns, the output shape of a LogicalPlan.
type Schema []*Column

// ExpressionID uniquely identifies a NamedExpression for the lifetime of a
// plan tree. Two AttributeRefs are the same expression iff their ids match;
// tree rewriting freely clones nodes, so pointer identity cannot serve this
// role.
type ExpressionID uint64

var idCounter uint64

// FreshID mints a new, process-wide unique ExpressionID. It is the only
// shared, mutable piece of state in this package and must be safe to call
// from multiple analyzer invocations running in parallel on disjoint plans;
// an atomic add gives that without locks.
func FreshID() ExpressionID {
	return ExpressionID(atomic.AddUint64(&idCounter, 1))
}

// Context carries a cancellable context.Context plus a tracer used by rules
// to open spans around each pass, e.g. ctx.Span("analyzer.resolve_aggregates").
type Context struct {
	context.Context
	tracer opentracing.Tracer
}

// NewContext wraps a context.Context for use by the analyzer. If tracer is
// nil, the global opentracing.NoopTracer is used, so Span is always safe to
// call.
func NewContext(ctx context.Context, tracer opentracing.Tracer) *Context {
	if tracer == nil {
		tracer = opentracing.NoopTracer{}
	}
	return &Context{Context: ctx, tracer: tracer}
}

// NewEmptyContext returns a Context suitable for tests: background
// context.Context, no-op tracer.
func NewEmptyContext() *Context {
	return NewContext(context.Background(), nil)
}

// Span opens an opentracing span named name, returning it alongside a
// Context that carries the derived span context. Callers must Finish() the
// returned span.
func (c *Context) Span(name string, opts ...opentracing.StartSpanOption) (opentracing.Span, *Context) {
	span := c.tracer.StartSpan(name, opts...)
	return span, &Context{Context: opentracing.ContextWithSpan(c.Context, span), tracer: c.tracer}
}
