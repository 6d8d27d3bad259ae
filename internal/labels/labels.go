// Package labels supplies the fixed sets of user-facing document strings for
// the supported locales.
package labels

import "fmt"

// Supported locales.
const (
	LocaleDutch   = "dutch"
	LocaleEnglish = "english"
)

// Set holds every user-facing string the document emits outside the survey
// definition itself.
type Set struct {
	Locale string

	QuestionNotes    string // heading above the general info block
	ColorNotes       string // heading above the colorize explanations
	ModulesContents  string // table-of-contents title
	GoTo             string // the "go to" word in redirection phrases
	DefaultChoices   []string
	WordQuestion     string // redirect category word for quest: anchors
	WordModule       string // redirect category word for mod: anchors
	WordModuleSect   string // redirect category word for modsec: anchors
	SummaryGlobal    string // heading of the global count table
	SummaryPerModule string // heading of the per-module count table
	NameQuantity     string // summary table column headers
	NameNumber       string
	NameModule       string
	NameModules      string // display name of the reserved module count
	NameMainOnly     string // display name of the main-question count
	NameAllQuestions string // display name of the weighted question count
}

// ForLocale returns the label set for the requested locale.
func ForLocale(locale string) (*Set, error) {
	switch locale {
	case LocaleDutch:
		return &Set{
			Locale:           LocaleDutch,
			QuestionNotes:    "Toelichting vragen",
			ColorNotes:       "Toelichting kleuren",
			ModulesContents:  "Modules Vragenlijst",
			GoTo:             "Ga naar",
			DefaultChoices:   []string{"Ja", "Nee"},
			WordQuestion:     "vraag",
			WordModule:       "module",
			WordModuleSect:   "module sectie",
			SummaryGlobal:    "Globaal aantal vragen",
			SummaryPerModule: "Aantal vragen per module",
			NameQuantity:     "Grootheid",
			NameNumber:       "Aantal",
			NameModule:       "Module",
			NameModules:      "Modules",
			NameMainOnly:     "Vragen Alleen Main",
			NameAllQuestions: "Alle Vragen",
		}, nil
	case LocaleEnglish:
		return &Set{
			Locale:           LocaleEnglish,
			QuestionNotes:    "Question notes",
			ColorNotes:       "Color notes",
			ModulesContents:  "Modules Questionnaire",
			GoTo:             "Go to",
			DefaultChoices:   []string{"Yes", "No"},
			WordQuestion:     "question",
			WordModule:       "module",
			WordModuleSect:   "module section",
			SummaryGlobal:    "Global number of questions",
			SummaryPerModule: "Number of questions per module",
			NameQuantity:     "Quantity",
			NameNumber:       "Count",
			NameModule:       "Module",
			NameModules:      "Modules",
			NameMainOnly:     "Main questions only",
			NameAllQuestions: "All questions",
		}, nil
	default:
		return nil, fmt.Errorf("language must be one of %q or %q, got %q", LocaleDutch, LocaleEnglish, locale)
	}
}
