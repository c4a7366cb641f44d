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

package expression_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/spearql/expression"
	"github.com/dolthub/spearql/sql/types"
)

func TestJoinAndLeftAssociative(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	b := col(2, "b")
	c := col(3, "c")
	zero := expression.NewLiteral(int64(0), types.Int64)

	joined := expression.JoinAnd(
		expression.NewGreaterThan(a, zero),
		expression.NewGreaterThan(b, zero),
		expression.NewGreaterThan(c, zero),
	)

	top, ok := joined.(*expression.BooleanConnective)
	require.True(ok)
	left, ok := top.Children()[0].(*expression.BooleanConnective)
	require.True(ok, "left child must itself be the AND of the first two conditions")
	require.Equal("(t.a > 0)", left.Children()[0].String())
	require.Equal("(t.c > 0)", top.Children()[1].String())
}

func TestJoinAndEmptyReturnsNil(t *testing.T) {
	require := require.New(t)
	require.Nil(expression.JoinAnd())
}

func TestComparisonResolvedAndNullability(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	zero := expression.NewLiteral(int64(0), types.Int64)
	cmp := expression.NewGreaterThan(a, zero)
	require.True(cmp.Resolved())
	require.False(cmp.IsNullable(), "neither operand in this fixture is nullable")
	require.Equal(types.Boolean, cmp.Type())
}

func TestArithmeticResultTypePromotion(t *testing.T) {
	require := require.New(t)

	a := col(1, "a")
	b := col(2, "b")
	arith := expression.NewArithmetic(a, b, "/")
	require.Equal(types.Float64, arith.Type(), "BIGINT / BIGINT promotes to DOUBLE per NumericResultType")
}
