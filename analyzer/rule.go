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

// Package analyzer applies the aggregation resolution pipeline to a
// logical plan: a fixed-point loop over an ordered batch of tree-rewrite
// rules, each one a pure function from plan to plan.
package analyzer

import (
	"github.com/sirupsen/logrus"

	"github.com/dolthub/spearql/plan"
	"github.com/dolthub/spearql/sql"
	"github.com/dolthub/spearql/transform"
)

// RuleFunc is one named rewrite pass over a logical plan. It reports,
// alongside the (possibly rewritten) plan, whether it changed anything -
// the fixed-point loop in Analyzer.Analyze uses this to stop as soon as a
// full pass produces no change, rather than iterating a fixed count.
type RuleFunc func(ctx *sql.Context, a *Analyzer, n plan.LogicalPlan) (plan.LogicalPlan, transform.TreeIdentity, error)

// Rule pairs a RuleFunc with the name used in logs, spans, and getRule
// lookups in tests.
type Rule struct {
	Name  string
	Apply RuleFunc
}

// RuleSelector decides whether a given Rule should run in a particular
// Analyze call; AllRules runs the whole DefaultRules batch.
type RuleSelector func(Rule) bool

// AllRules is the RuleSelector that runs every rule in the batch.
func AllRules(Rule) bool { return true }

// Config holds the small set of knobs the aggregation pipeline exposes.
// Loading it from a file is an external collaborator's job - this package
// only ever sees the already-decoded struct.
type Config struct {
	// MaxIterations caps the fixed-point loop; a hard cap keeps a
	// misbehaving rule batch from looping forever.
	MaxIterations int
}

// DefaultConfig returns the default iteration cap.
func DefaultConfig() Config {
	return Config{MaxIterations: 8}
}

// Analyzer runs DefaultRules to a fixed point over a logical plan.
type Analyzer struct {
	Catalog Catalog
	Config  Config
	log     *logrus.Entry
}

// NewAnalyzer builds an Analyzer backed by catalog, logging through a
// fresh logrus entry.
func NewAnalyzer(catalog Catalog) *Analyzer {
	return &Analyzer{
		Catalog: catalog,
		Config:  DefaultConfig(),
		log:     logrus.WithField("component", "analyzer"),
	}
}

// Log writes a Debug-level line tagged with the analyzer component.
func (a *Analyzer) Log(format string, args ...interface{}) {
	a.log.Debugf(format, args...)
}

// Analyze runs sel's subset of DefaultRules, in batch order, to a fixed
// point: repeated full passes over the batch until one pass leaves the
// tree unchanged, or Config.MaxIterations passes have run. Each rule walks
// the plan bottom-up (plan.TransformUp), not top-down.
func (a *Analyzer) Analyze(ctx *sql.Context, n plan.LogicalPlan, sel RuleSelector) (plan.LogicalPlan, error) {
	if sel == nil {
		sel = AllRules
	}

	span, ctx := ctx.Span("analyzer.analyze")
	defer span.Finish()

	current := n
	for iteration := 0; iteration < a.Config.MaxIterations; iteration++ {
		changedThisPass := false

		for _, rule := range DefaultRules {
			if !sel(rule) {
				continue
			}

			ruleSpan, ruleCtx := ctx.Span("analyzer." + rule.Name)
			next, identity, err := rule.Apply(ruleCtx, a, current)
			ruleSpan.Finish()
			if err != nil {
				a.log.WithField("rule", rule.Name).Debugf("rule failed: %v", err)
				return nil, err
			}

			if identity == transform.NewTree {
				a.log.WithField("rule", rule.Name).Debug("rule rewrote the tree")
				changedThisPass = true
			}
			current = next
		}

		if !changedThisPass {
			return current, nil
		}
	}

	return current, nil
}

// getRule looks up one rule by name from DefaultRules.
func getRule(name string) Rule {
	for _, r := range DefaultRules {
		if r.Name == name {
			return r
		}
	}
	panic("analyzer: no such rule: " + name)
}
