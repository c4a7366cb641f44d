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

import "github.com/dolthub/spearql/sql"

// sqlID builds a deterministic ExpressionID for fixtures that need to
// compare by a known id rather than one minted by sql.FreshID, which would
// make tests depend on global, cross-test mutable counter state.
func sqlID(id uint64) sql.ExpressionID {
	return sql.ExpressionID(id)
}
