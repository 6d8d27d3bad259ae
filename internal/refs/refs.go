// Package refs maps survey keys to canonical, markup-safe anchor labels.
// The functions are pure and stable: anchors are referenced from elsewhere in
// the same build, so the same input must always produce the same label.
package refs

import "strings"

const (
	modulePrefix  = "mod"
	quPrefix      = "quest"
	sectionPrefix = "modsec"
)

// ModuleLabel returns the anchor for a module key. Underscores are stripped
// because the underlying label mechanism strips them too.
func ModuleLabel(key string) string {
	return strings.ReplaceAll(modulePrefix+":"+key, "_", "")
}

// QuestionLabel returns the anchor for a question key. The key is used
// unchanged: question keys must already be anchor-safe. This asymmetry with
// ModuleLabel is deliberate and relied on by existing survey definitions.
func QuestionLabel(key string) string {
	return quPrefix + ":" + key
}

// SectionLabel returns the anchor for a module-section title: lower-cased,
// with whitespace, underscores and slashes removed.
func SectionLabel(title string) string {
	label := sectionPrefix + ":" + strings.ToLower(title)
	replacer := strings.NewReplacer("_", "", " ", "", "\t", "", "/", "")
	return replacer.Replace(label)
}
