// Package redirect composes the localized "go to" phrases that send a reader
// to another question, module or module section depending on an answer.
package redirect

import (
	"strings"

	"github.com/jonathan/survey-maker/internal/labels"
	"github.com/jonathan/survey-maker/internal/types"
)

// Arrow is the glyph opening every redirection phrase.
const Arrow = `$\rightarrow$`

// Resolver builds redirection phrases for one locale.
type Resolver struct {
	labels *labels.Set
}

// NewResolver returns a resolver using the given label set.
func NewResolver(l *labels.Set) *Resolver {
	return &Resolver{labels: l}
}

// Phrase returns the redirection phrase for a filter regardless of any
// particular choice, or the empty string when filter is nil. Used on
// question shapes that render the filter condition as a separate info line.
func (r *Resolver) Phrase(filter *types.FilterSpec) string {
	if filter == nil {
		return ""
	}
	return r.compose(filter.Goto)
}

// PhraseForChoice returns the redirection phrase when the selected choice
// equals the filter condition, and the empty string otherwise.
func (r *Resolver) PhraseForChoice(filter *types.FilterSpec, choice string) string {
	if filter == nil || filter.Condition != choice {
		return ""
	}
	return r.compose(filter.Goto)
}

// compose parses the "<category>:<rest>" goto target and builds the phrase.
// An unknown category prefix falls back to echoing the raw target unmapped.
func (r *Resolver) compose(target string) string {
	prefix := strings.SplitN(target, ":", 2)[0]

	var category string
	switch prefix {
	case "quest":
		category = r.labels.WordQuestion
	case "mod":
		category = r.labels.WordModule
	case "modsec":
		category = r.labels.WordModuleSect
	}

	// underscores are not allowed in the non-question anchors
	if prefix != "quest" {
		target = strings.ReplaceAll(target, "_", "")
	}

	if category == "" {
		return Arrow + " " + r.labels.GoTo + " " + target
	}
	return Arrow + " " + r.labels.GoTo + " " + category + ` \ref{` + target + `}`
}

// ConditionLine builds the module- or section-level redirection line shown
// before the content that may be skipped: "<label> -> <GoTo> \textbf{\ref{target}}".
func (r *Resolver) ConditionLine(condLabel, target string) string {
	if strings.HasPrefix(target, "mod") {
		// both mod: and modsec: anchors have their underscores stripped
		target = strings.ReplaceAll(target, "_", "")
	}
	return condLabel + " " + Arrow + " " + r.labels.GoTo + ` \textbf{\ref{` + target + `}}`
}
