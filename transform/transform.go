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

// Package transform holds the TreeIdentity marker shared by the plan and
// analyzer packages: every rule reports whether it actually rewrote the
// tree it was given, so the analyzer's fixed-point loop can stop as soon
// as a full pass over all rules produces no change, rather than iterating
// a fixed number of times or re-diffing the tree by hand.
package transform

// TreeIdentity reports whether a transform produced a new tree (NewTree)
// or returned its input unchanged (SameTree).
type TreeIdentity bool

const (
	// SameTree means the transform did not change anything.
	SameTree TreeIdentity = false
	// NewTree means the transform replaced at least one node.
	NewTree TreeIdentity = true
)

// OrIdentity combines two identities: the result is NewTree if either
// input is, matching how a rule that rewrites multiple subtrees reports
// whether *any* of them changed.
func (t TreeIdentity) OrIdentity(other TreeIdentity) TreeIdentity {
	return t || other
}
