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

package analyzer

import "github.com/dolthub/spearql/expression"

// resolveAndUnaliasAgainst implements the shared half of
// AbsorbHavingConditions/AbsorbSorts: any UnresolvedColumn in e whose name
// matches a project list alias is bound to that alias's full expression,
// after which every Alias(child, _) remaining in e is unwrapped to child,
// so HAVING/ORDER BY operate on the underlying expression rather than a
// second alias layer.
//
// An UnresolvedColumn with no matching alias is left unresolved - it is
// not this rule's job to bind it against anything else (that's the
// reference-resolution rule, out of scope for this package);
// ResolveAggregates' precondition guard waits for it instead of firing.
func resolveAndUnaliasAgainst(e expression.Expression, projectList []expression.NamedExpression) (expression.Expression, error) {
	bound, err := expression.TransformUp(e, func(n expression.Expression) (expression.Expression, error) {
		uc, ok := n.(*expression.UnresolvedColumn)
		if !ok {
			return n, nil
		}
		for _, pe := range projectList {
			if pe.Name() == uc.Name() {
				return pe, nil
			}
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}

	return expression.TransformUp(bound, func(n expression.Expression) (expression.Expression, error) {
		if al, ok := n.(*expression.Alias); ok {
			return al.Child, nil
		}
		return n, nil
	})
}
