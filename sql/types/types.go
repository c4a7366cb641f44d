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

// Package types supplies the handful of concrete sql.Type values the
// aggregation pipeline needs to type-check grouping keys, aggregate
// results and literals. It is deliberately small: the real type system
// (DECIMAL precision/scale, ENUM/SET, temporal types, ...) belongs to the
// catalog this package plugs into.
package types

import (
	"fmt"

	"github.com/spf13/cast"

	"github.com/dolthub/spearql/sql"
)

type primitiveType struct {
	name string
}

func (t primitiveType) String() string { return t.name }

func (t primitiveType) Equals(other sql.Type) bool {
	o, ok := other.(primitiveType)
	return ok && o.name == t.name
}

var (
	Int64   sql.Type = primitiveType{"BIGINT"}
	Float64 sql.Type = primitiveType{"DOUBLE"}
	VarChar sql.Type = primitiveType{"VARCHAR"}
	Boolean sql.Type = primitiveType{"BOOLEAN"}
	// Null is the type of the SQL NULL literal, comparable but unifiable
	// with any other type during resolution (handled by a reference
	// resolver this package does not implement).
	Null sql.Type = primitiveType{"NULL"}
)

// NumericResultType returns the result type of a numeric aggregate given
// its argument type, following the small set of promotion rules the
// aggregation pipeline needs (SUM/AVG promote to DOUBLE, COUNT is always
// BIGINT regardless of argument type).
func NumericResultType(argType sql.Type) sql.Type {
	if argType == nil {
		return Float64
	}
	if argType.Equals(Int64) {
		return Float64
	}
	return argType
}

// CoerceLiteral converts an arbitrary Go value supplied by a test fixture
// or catalog default into the canonical representation for t, the way a
// parser-adjacent literal builder would. Only used at plan-construction
// time, never during resolution proper.
func CoerceLiteral(t sql.Type, v interface{}) (interface{}, error) {
	switch {
	case t.Equals(Int64):
		return cast.ToInt64E(v)
	case t.Equals(Float64):
		return cast.ToFloat64E(v)
	case t.Equals(VarChar):
		return cast.ToStringE(v)
	case t.Equals(Boolean):
		return cast.ToBoolE(v)
	default:
		return nil, fmt.Errorf("types: cannot coerce value of type %T to %s", v, t)
	}
}
