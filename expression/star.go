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

// Star is the `*` placeholder argument of COUNT(*). It is always
// resolved, by convention never a true column reference.
type Star struct{}

func NewStar() *Star { return &Star{} }

func (s *Star) Children() []Expression { return nil }

func (s *Star) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: Star takes no children, got %d", len(children))
	}
	return s, nil
}

func (s *Star) Type() sql.Type   { return types.Int64 }
func (s *Star) IsNullable() bool { return false }
func (s *Star) Resolved() bool   { return true }
func (s *Star) String() string   { return "*" }
func (s *Star) selfKey() interface{} { return "*" }
