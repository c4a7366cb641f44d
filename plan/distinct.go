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

// Distinct deduplicates the rows coming from Child. RewriteDistinctsAsAggregates
// rewrites every Distinct into an UnresolvedAggregate keyed on the full
// output, so Distinct itself never reaches the physical planner.
type Distinct struct {
	UnaryNode
}

func NewDistinct(child LogicalPlan) *Distinct {
	return &Distinct{UnaryNode{Child: child}}
}

func (d *Distinct) WithChildren(children ...LogicalPlan) (LogicalPlan, error) {
	if len(children) != 1 {
		return nil, fmt.Errorf("plan: Distinct takes 1 child, got %d", len(children))
	}
	return NewDistinct(children[0]), nil
}

func (d *Distinct) Schema() sql.Schema { return d.Child.Schema() }
func (d *Distinct) Resolved() bool     { return d.Child.Resolved() }
func (d *Distinct) String() string     { return fmt.Sprintf("Distinct\n  %s", d.Child.String()) }
