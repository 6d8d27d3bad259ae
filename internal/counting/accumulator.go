// Package counting tallies question counts during a document build, globally
// and per module, including the per-category provenance counts and the
// derived subtract-from-total summary values.
package counting

import "github.com/jonathan/survey-maker/internal/types"

// Reserved count keys. They share the namespace with the category keys, so
// the category key validation keeps them distinct.
const (
	KeyModules        = "modules"
	KeyQuestions      = "questions"
	KeyQuestionsTotal = "questions_incl_choices"
)

// Accumulator holds the count state of exactly one document build. It is
// never shared between builds: multiple documents built in the same process
// each construct their own.
type Accumulator struct {
	order       []string // reserved keys then enabled non-dvz categories, declaration order
	global      map[string]int
	moduleOrder []string
	perModule   map[string]map[string]int
	subtract    map[string]bool
}

// NewAccumulator initializes zeroed global buckets for the reserved keys and
// every key in enabled, in that order. The reserved dvz provenance category
// never gets a bucket even when enabled. The subtract-from-total flags are
// read from categories.
func NewAccumulator(categories types.CategorySet, enabled []string) *Accumulator {
	a := &Accumulator{
		global:    map[string]int{},
		perModule: map[string]map[string]int{},
		subtract:  map[string]bool{},
	}
	for _, key := range []string{KeyModules, KeyQuestions, KeyQuestionsTotal} {
		a.order = append(a.order, key)
		a.global[key] = 0
	}
	for _, key := range enabled {
		if key == types.DVZKey {
			continue
		}
		a.order = append(a.order, key)
		a.global[key] = 0
		if cat, ok := categories.Get(key); ok {
			a.subtract[key] = cat.SubtractCountFromTotal
		}
	}
	return a
}

// AddModule counts one module and initializes its per-module buckets. Only
// called for modules that take part in counting.
func (a *Accumulator) AddModule(key string) {
	a.global[KeyModules]++
	bucket := map[string]int{}
	for _, k := range a.order {
		if k == KeyModules {
			continue
		}
		bucket[k] = 0
	}
	a.moduleOrder = append(a.moduleOrder, key)
	a.perModule[key] = bucket
}

// RecordQuestion tallies one question: one main question, weight toward the
// weighted total, and weight toward the matched and refers-to categories.
// The dvz provenance category is rendered but never numerically counted.
// A question excluded from counting (counted=false) is a no-op.
func (a *Accumulator) RecordQuestion(moduleKey, matchedKey, refersKey string, weight int, counted bool) {
	if !counted {
		return
	}
	a.bump(moduleKey, KeyQuestions, 1)
	a.bump(moduleKey, KeyQuestionsTotal, weight)
	if matchedKey != "" && matchedKey != types.DVZKey {
		a.bump(moduleKey, matchedKey, weight)
	}
	if refersKey != "" && refersKey != matchedKey {
		a.bump(moduleKey, refersKey, weight)
	}
}

// IncreaseCounter bumps an extra category counter and the weighted total by
// one, in both scopes. Driven by the increase_counter question field.
func (a *Accumulator) IncreaseCounter(moduleKey, category string) {
	a.bump(moduleKey, KeyQuestionsTotal, 1)
	a.bump(moduleKey, category, 1)
}

func (a *Accumulator) bump(moduleKey, key string, n int) {
	a.global[key] += n
	if bucket, ok := a.perModule[moduleKey]; ok {
		bucket[key] += n
	}
}

// Keys returns every counted key in reporting order: the reserved keys
// followed by the enabled categories in declaration order.
func (a *Accumulator) Keys() []string {
	return a.order
}

// CategoryKeys returns the counted category keys in declaration order.
func (a *Accumulator) CategoryKeys() []string {
	return a.order[3:]
}

// ModuleKeys returns the counted module keys in document order.
func (a *Accumulator) ModuleKeys() []string {
	return a.moduleOrder
}

// Value returns the raw global count for key.
func (a *Accumulator) Value(key string) int {
	return a.global[key]
}

// ModuleValue returns the raw per-module count for key.
func (a *Accumulator) ModuleValue(moduleKey, key string) int {
	return a.perModule[moduleKey][key]
}

// SummaryValue returns the reported global number for key: the raw count,
// or total minus count for a subtract-from-total category. The derivation
// reports a complementary population without a separate declared category.
func (a *Accumulator) SummaryValue(key string) int {
	if a.subtract[key] {
		return a.global[KeyQuestionsTotal] - a.global[key]
	}
	return a.global[key]
}

// ModuleSummaryValue returns the reported per-module number for key, with
// the same subtract-from-total derivation against the module's own total.
func (a *Accumulator) ModuleSummaryValue(moduleKey, key string) int {
	if a.subtract[key] {
		return a.perModule[moduleKey][KeyQuestionsTotal] - a.perModule[moduleKey][key]
	}
	return a.perModule[moduleKey][key]
}
