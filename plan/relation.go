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

package plan

import (
	"fmt"

	"github.com/dolthub/spearql/sql"
)

// Relation is a leaf plan node standing in for a resolved table or
// subquery output - a reference-resolution rule this package does not
// implement is what would normally produce one of these from an
// UnresolvedTable. It is always resolved.
type Relation struct {
	RelName string
	Output  sql.Schema
}

func NewRelation(name string, output sql.Schema) *Relation {
	return &Relation{RelName: name, Output: output}
}

func (r *Relation) Children() []LogicalPlan { return nil }

func (r *Relation) WithChildren(children ...LogicalPlan) (LogicalPlan, error) {
	if len(children) != 0 {
		return nil, fmt.Errorf("plan: Relation is a leaf, got %d children", len(children))
	}
	return r, nil
}

func (r *Relation) Schema() sql.Schema { return r.Output }
func (r *Relation) Resolved() bool     { return true }
func (r *Relation) String() string     { return fmt.Sprintf("Relation(%s)", r.RelName) }
