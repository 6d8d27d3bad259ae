// Package colorize resolves which declared colorize category, if any,
// applies to a module, section or question node. Categories are scanned in
// declaration order and only the first eligible match is honored.
package colorize

import (
	"strings"

	"github.com/jonathan/survey-maker/internal/types"
)

// NeutralColor is returned for a matched category whose apply_color flag is
// off: the category still matches for counting but renders without color.
const NeutralColor = "black"

// Match is one resolved category match on a node.
type Match struct {
	Key      string
	Color    string
	Category types.ColorizeCategory
}

// ModuleMatch is a category match on a module or section node, carrying the
// raw trigger value (a goto string triggers a redirection line) and the
// category's goto condition label.
type ModuleMatch struct {
	Match
	Trigger   types.TriggerValue
	CondLabel string
}

// Explanation is one category explanation line for the front-matter block.
type Explanation struct {
	Key  string
	Text string
}

// Engine resolves category matches under the active mode flags.
type Engine struct {
	categories types.CategorySet
	reviewMode bool
	dvzMode    bool
}

// NewEngine validates the declared categories and returns an engine for the
// given mode flags. A category key containing the word-separator character
// is a fatal configuration error, raised here before any traversal begins.
func NewEngine(categories types.CategorySet, reviewMode, dvzMode bool) (*Engine, error) {
	if err := categories.Validate(); err != nil {
		return nil, err
	}
	return &Engine{categories: categories, reviewMode: reviewMode, dvzMode: dvzMode}, nil
}

// Categories returns the declared categories in declaration order.
func (e *Engine) Categories() types.CategorySet {
	return e.categories
}

// Eligible reports whether a category takes part in this build: enabled, and
// not gated behind an inactive mode flag.
func (e *Engine) Eligible(c types.ColorizeCategory) bool {
	if !c.AddThis {
		return false
	}
	if c.ReviewOnly && !e.reviewMode {
		return false
	}
	if c.DVZOnly && !e.dvzMode {
		return false
	}
	return true
}

// EligibleKeys returns the keys of all eligible categories in declaration
// order.
func (e *Engine) EligibleKeys() []string {
	var keys []string
	for _, entry := range e.categories {
		if e.Eligible(entry.Category) {
			keys = append(keys, entry.Key)
		}
	}
	return keys
}

// Primary returns the first eligible category. It receives the line-level
// color command and the block-level color environment in the preamble.
func (e *Engine) Primary() (Match, bool) {
	for _, entry := range e.categories {
		if !e.Eligible(entry.Category) {
			continue
		}
		return Match{Key: entry.Key, Color: entry.Category.Color, Category: entry.Category}, true
	}
	return Match{}, false
}

// FirstMatch scans the declared categories in order and returns the first
// eligible one whose key triggers on the node. A match with apply_color off
// gets the neutral color but still counts as matched.
func (e *Engine) FirstMatch(triggers types.TriggerSet) (Match, bool) {
	for _, entry := range e.categories {
		if !e.Eligible(entry.Category) {
			continue
		}
		if _, ok := triggers.Get(entry.Key); !ok {
			continue
		}
		color := entry.Category.Color
		if !entry.Category.ApplyColor {
			color = NeutralColor
		}
		return Match{Key: entry.Key, Color: color, Category: entry.Category}, true
	}
	return Match{}, false
}

// ModuleTrigger resolves a module- or section-level trigger: same scan and
// priority rule as FirstMatch, but the raw trigger value is returned so a
// string value can drive a redirection line.
func (e *Engine) ModuleTrigger(triggers types.TriggerSet) (ModuleMatch, bool) {
	for _, entry := range e.categories {
		if !e.Eligible(entry.Category) {
			continue
		}
		tv, ok := triggers.Get(entry.Key)
		if !ok {
			continue
		}
		return ModuleMatch{
			Match:     Match{Key: entry.Key, Color: entry.Category.Color, Category: entry.Category},
			Trigger:   tv,
			CondLabel: entry.Category.GotoConditionLabel,
		}, true
	}
	return ModuleMatch{}, false
}

// RefersTo scans for the first eligible category whose trigger on the node
// carries a refers_to reference and composes the colored, parenthesized
// reference phrase.
func (e *Engine) RefersTo(triggers types.TriggerSet) (phrase string, key string, ok bool) {
	for _, entry := range e.categories {
		if !e.Eligible(entry.Category) {
			continue
		}
		tv, found := triggers.Get(entry.Key)
		if !found || tv.Kind != types.TriggerRef || tv.RefersTo == "" {
			continue
		}
		cmd := `\color` + strings.ReplaceAll(entry.Key, "_", "")
		phrase = cmd + `{(` + entry.Category.Label + `: $\rightarrow$ {` + tv.RefersTo + `})}`
		return phrase, entry.Key, true
	}
	return "", "", false
}

// Explanations returns the explanation lines of all eligible categories, in
// declaration order, for the front-matter color notes block.
func (e *Engine) Explanations() []Explanation {
	var out []Explanation
	for _, entry := range e.categories {
		if !e.Eligible(entry.Category) || entry.Category.Explanation == "" {
			continue
		}
		out = append(out, Explanation{Key: entry.Key, Text: entry.Category.Explanation})
	}
	return out
}

// HasAny reports whether any declared category is eligible in this build.
func (e *Engine) HasAny() bool {
	for _, entry := range e.categories {
		if e.Eligible(entry.Category) {
			return true
		}
	}
	return false
}
