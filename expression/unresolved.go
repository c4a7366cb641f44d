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

// UnresolvedColumn is a bare name reference not yet bound to a concrete
// attribute. Binding one against a child plan's output in general is a
// reference-resolution rule's job, an external collaborator this package
// does not implement; the one exception this package implements itself is
// AbsorbHavingConditions/AbsorbSorts binding an UnresolvedColumn against
// the aliases of an UnresolvedAggregate's project list, since that
// binding is intrinsic to the aggregation rewrite and cannot wait for a
// later pass.
type UnresolvedColumn struct {
	name string
}

func NewUnresolvedColumn(name string) *UnresolvedColumn {
	return &UnresolvedColumn{name: name}
}

func (u *UnresolvedColumn) Children() []Expression { return nil }

func (u *UnresolvedColumn) WithChildren(children ...Expression) (Expression, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("expression: UnresolvedColumn is a leaf, got %d children", len(children))
	}
	return u, nil
}

func (u *UnresolvedColumn) Type() sql.Type   { return nil }
func (u *UnresolvedColumn) IsNullable() bool { return true }
func (u *UnresolvedColumn) Resolved() bool   { return false }
func (u *UnresolvedColumn) Name() string     { return u.name }
func (u *UnresolvedColumn) String() string   { return u.name }
func (u *UnresolvedColumn) selfKey() interface{} { return u.name }
