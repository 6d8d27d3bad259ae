package assembly

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/survey-maker/internal/counting"
	"github.com/jonathan/survey-maker/internal/refs"
	"github.com/jonathan/survey-maker/internal/texbuild"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// makeReport closes the document with the count summary when enabled.
func (b *build) makeReport() error {
	if !b.opts.AddSummary {
		return nil
	}

	title := b.opts.SummaryTitle
	b.doc.Append(texbuild.Command{Name: "clearpage"})
	b.doc.Append(texbuild.Command{Name: "setcounter", Arguments: []string{"secnumdepth", "0"}})
	for _, p := range texbuild.Section(title, strings.ToLower(whitespaceRe.ReplaceAllString(title, "_"))) {
		b.doc.Append(p)
	}
	return b.createSummaryTables()
}

// createSummaryTables renders the two count tables: the global totals and
// the per-module matrix, columns in category declaration order, both with
// the subtract-from-total derivation applied.
func (b *build) createSummaryTables() error {
	doc := b.doc

	doc.Append(texbuild.ModuleSection(b.labels.SummaryGlobal, "global"))
	doc.Append(texbuild.Command{Name: "newline"})

	err := doc.Scope(texbuild.Tabular("ll"), func() error {
		doc.Append(texbuild.Command{Name: "toprule"})
		doc.Append(texbuild.Text(`\textbf{` + b.labels.NameQuantity + `}&\textbf{` + b.labels.NameNumber + `}\\`))
		doc.Append(texbuild.Command{Name: "midrule"})
		for _, key := range b.counts.Keys() {
			if key == counting.KeyQuestions {
				// only the count including sub-questions is reported
				continue
			}
			row := b.displayName(key) + " & " + strconv.Itoa(b.counts.SummaryValue(key)) + `\\`
			doc.Append(texbuild.Text(row))
		}
		doc.Append(texbuild.Command{Name: "bottomrule"})
		return nil
	})
	if err != nil {
		return err
	}

	doc.Append(texbuild.Command{Name: "newline"})
	doc.Append(texbuild.ModuleSection(b.labels.SummaryPerModule, "permodule"))
	doc.Append(texbuild.Command{Name: "newline"})

	// one column for the module name plus one per reported count key; the
	// module and main-question counts are not reported per module
	columns := "l" + strings.Repeat("l", len(b.counts.Keys())-2)
	return doc.Scope(texbuild.Tabular(columns), func() error {
		doc.Append(texbuild.Command{Name: "toprule"})
		header := `\textbf{` + b.labels.NameModule + `}`
		for _, key := range b.counts.Keys() {
			if key == counting.KeyModules || key == counting.KeyQuestions {
				continue
			}
			header += " & " + b.displayName(key)
		}
		doc.Append(texbuild.Text(header + `\\`))
		doc.Append(texbuild.Command{Name: "midrule"})

		for _, moduleKey := range b.counts.ModuleKeys() {
			module, _ := b.def.Lookup(moduleKey)
			row := `\ref{` + refs.ModuleLabel(moduleKey) + `} ` + module.Title
			for _, key := range b.counts.Keys() {
				if key == counting.KeyModules || key == counting.KeyQuestions {
					continue
				}
				row += " & " + strconv.Itoa(b.counts.ModuleSummaryValue(moduleKey, key))
			}
			doc.Append(texbuild.Text(row + `\\`))
		}
		doc.Append(texbuild.Command{Name: "bottomrule"})
		return nil
	})
}

// displayName maps a count key to the name shown in the summary tables.
func (b *build) displayName(key string) string {
	switch key {
	case counting.KeyQuestions:
		return b.labels.NameMainOnly
	case counting.KeyQuestionsTotal:
		return b.labels.NameAllQuestions
	case counting.KeyModules:
		return b.labels.NameModules
	}
	if cat, ok := b.rules.Categories().Get(key); ok && cat.Label != "" {
		return cat.Label
	}
	return key
}

