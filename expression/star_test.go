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
)

func TestStarIsLeafAndResolved(t *testing.T) {
	require := require.New(t)

	star := expression.NewStar()
	require.Empty(star.Children())
	require.True(star.Resolved())
	require.False(star.IsNullable())
	require.Equal("*", star.String())
}

// COUNT(*) is structurally interchangeable across occurrences, since two
// Star values carry no distinguishing data.
func TestStarSameOrEqual(t *testing.T) {
	require := require.New(t)
	require.True(expression.SameOrEqual(expression.NewStar(), expression.NewStar()))
}
