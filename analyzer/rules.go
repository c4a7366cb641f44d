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

// DefaultRules is the aggregation pipeline's rule batch. The batch runs
// in this fixed order:
//
//	RewriteDistincts ≺ RewriteProjectsAsGlobalAggregates ≺
//	AbsorbHavingConditions ≺ AbsorbSorts ≺ ResolveAggregates ≺
//	RewriteDistinctAggregateFunctions
var DefaultRules = []Rule{
	{Name: "rewrite_distincts_as_aggregates", Apply: rewriteDistinctsAsAggregates},
	{Name: "rewrite_projects_as_global_aggregates", Apply: rewriteProjectsAsGlobalAggregates},
	{Name: "absorb_having_conditions", Apply: absorbHavingConditions},
	{Name: "absorb_sorts", Apply: absorbSorts},
	{Name: "resolve_aggregates", Apply: resolveAggregates},
	{Name: "rewrite_distinct_aggregate_functions", Apply: rewriteDistinctAggregateFunctions},
}
