package assembly

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/survey-maker/internal/counting"
	"github.com/jonathan/survey-maker/internal/types"
)

func decodeSurvey(t *testing.T, src string) types.SurveyDefinition {
	t.Helper()
	var d types.SurveyDefinition
	require.NoError(t, yaml.Unmarshal([]byte(src), &d))
	return d
}

func decodeCategories(t *testing.T, src string) types.CategorySet {
	t.Helper()
	var s types.CategorySet
	require.NoError(t, yaml.Unmarshal([]byte(src), &s))
	return s
}

const basicSurvey = `
internetgebruik:
  title: Internetgebruik
  info: Deze module gaat over internetgebruik.
  questions:
    breedband:
      question: Heeft uw bedrijf een breedbandverbinding?
      type: choices
      choices: ["Ja", "Nee"]
      filter:
        condition: Nee
        goto: mod:personeel
    medewerkers:
      question: Hoeveel medewerkers gebruiken een computer?
      type: quantity
      quantity_label: personen
personeel:
  title: Personeel
  questions:
    opleiding:
      question: Biedt uw bedrijf ICT-opleidingen aan?
      type: choices
`

const basicCategories = `
internetgebruik:
  label: Internet
  color: cbsblauw
  explanation: vragen over internetgebruik
`

func testOptions() Options {
	return Options{
		Title:     "ICT-enquete",
		Author:    "CBS",
		Version:   "1.2",
		BuildDate: "30.08.2026",
	}
}

func TestBuildDocument_BasicStructure(t *testing.T) {
	engine := New(nil)
	doc, result, err := engine.BuildDocument(decodeSurvey(t, basicSurvey), decodeCategories(t, basicCategories), testOptions())
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 0, result.Warnings)
	assert.Equal(t, 0, doc.Depth())

	out := doc.String()
	assert.True(t, strings.HasPrefix(out, `\PassOptionsToPackage`))
	assert.Contains(t, out, `\documentclass[dutch,final,oneside,a4paper]{sdaps}`)
	assert.Contains(t, out, `\title{ICT-enquete}`)
	assert.Contains(t, out, `\begin{questionnaire}[noinfo]`)
	assert.Contains(t, out, `\addinfo{Date}{30.08.2026}`)

	assert.Contains(t, out, `\section{Internetgebruik}`)
	assert.Contains(t, out, `\label{mod:internetgebruik}`)
	assert.Contains(t, out, `\section{Personeel}`)

	assert.Contains(t, out, `\begin{choicequestion}[1]{Heeft uw bedrijf een breedbandverbinding?}`)
	assert.Contains(t, out, `\label{quest:breedband}`)
	assert.Contains(t, out, `\begin{markgroup}{Hoeveel medewerkers gebruiken een computer?}`)
	assert.Contains(t, out, `\choiceitemtext{1.2em}{4}{personen:}`)
}

func TestBuildDocument_FilterPhraseOnMatchingChoice(t *testing.T) {
	engine := New(nil)
	doc, _, err := engine.BuildDocument(decodeSurvey(t, basicSurvey), decodeCategories(t, basicCategories), testOptions())
	require.NoError(t, err)

	out := doc.String()
	assert.Contains(t, out, `\choiceitem{Ja}`)
	assert.Contains(t, out, `\choiceitem{Nee$\rightarrow$ Ga naar module \ref{mod:personeel}}`)
}

func TestBuildDocument_Counts(t *testing.T) {
	engine := New(nil)
	_, result, err := engine.BuildDocument(decodeSurvey(t, basicSurvey), decodeCategories(t, basicCategories), testOptions())
	require.NoError(t, err)

	counts := result.Counts
	assert.Equal(t, 2, counts.Value(counting.KeyModules))
	assert.Equal(t, 3, counts.Value(counting.KeyQuestions))
	assert.Equal(t, 3, counts.Value(counting.KeyQuestionsTotal))
	assert.Equal(t, []string{"internetgebruik", "personeel"}, counts.ModuleKeys())
}

func TestBuildDocument_DisabledModuleAbsent(t *testing.T) {
	src := `
internetgebruik:
  title: Internetgebruik
  add_this: false
  questions:
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
personeel:
  title: Personeel
  questions:
    opleiding:
      question: Biedt uw bedrijf ICT-opleidingen aan?
      type: choices
`
	engine := New(nil)
	doc, result, err := engine.BuildDocument(decodeSurvey(t, src), nil, testOptions())
	require.NoError(t, err)

	out := doc.String()
	assert.NotContains(t, out, "Internetgebruik")
	assert.NotContains(t, out, "breedband")
	assert.Equal(t, 1, result.Counts.Value(counting.KeyModules))
}

func TestBuildDocument_TitlesEscaped(t *testing.T) {
	src := `
inkoop:
  title: Inkoop & Verkoop (100% van de omzet)
  questions:
    omzet:
      question: Hoeveel procent van de omzet komt uit verkoop via internet?
      type: quantity
`
	opts := testOptions()
	opts.Title = "Productie & handel"

	engine := New(nil)
	doc, _, err := engine.BuildDocument(decodeSurvey(t, src), nil, opts)
	require.NoError(t, err)

	out := doc.String()
	assert.Contains(t, out, `\title{Productie \& handel}`)
	assert.Contains(t, out, `\section{Inkoop \& Verkoop (100\% van de omzet)}`)
	assert.Contains(t, out, `\label{mod:inkoop}`)
	assert.NotContains(t, out, `\section{Inkoop & Verkoop`)
}

func TestBuildDocument_ReenabledModuleSummaryIdentical(t *testing.T) {
	const disabled = `
internetgebruik:
  title: Internetgebruik
  questions:
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
personeel:
  title: Personeel
  add_this: false
  questions:
    opleiding:
      question: Biedt uw bedrijf ICT-opleidingen aan?
      type: choices
`
	const reenabled = `
internetgebruik:
  title: Internetgebruik
  questions:
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
personeel:
  title: Personeel
  add_this: true
  questions:
    opleiding:
      question: Biedt uw bedrijf ICT-opleidingen aan?
      type: choices
`
	const reference = `
internetgebruik:
  title: Internetgebruik
  questions:
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
personeel:
  title: Personeel
  questions:
    opleiding:
      question: Biedt uw bedrijf ICT-opleidingen aan?
      type: choices
`
	opts := testOptions()
	opts.AddSummary = true
	opts.SummaryTitle = "Overzicht aantal vragen"

	// the preamble carries a per-build identifier, so only the summary
	// section is compared
	summaryOf := func(src string) string {
		engine := New(nil)
		doc, _, err := engine.BuildDocument(decodeSurvey(t, src), nil, opts)
		require.NoError(t, err)
		out := doc.String()
		i := strings.Index(out, `\section{Overzicht aantal vragen}`)
		require.GreaterOrEqual(t, i, 0)
		return out[i:]
	}

	withDisabled := summaryOf(disabled)
	assert.Contains(t, withDisabled, `Modules & 1\\`)
	assert.NotContains(t, withDisabled, `\ref{mod:personeel}`)

	assert.Equal(t, summaryOf(reference), summaryOf(reenabled))
}

func TestBuildDocument_ExcludedModuleRenderedNotCounted(t *testing.T) {
	src := `
algemeen:
  title: Algemene gegevens
  exclude_from_count: true
  questions:
    naam:
      question: Wat is de naam van uw bedrijf?
      type: textbox
`
	engine := New(nil)
	doc, result, err := engine.BuildDocument(decodeSurvey(t, src), nil, testOptions())
	require.NoError(t, err)

	assert.Contains(t, doc.String(), `\section{Algemene gegevens}`)
	assert.Equal(t, 0, result.Counts.Value(counting.KeyModules))
	assert.Equal(t, 0, result.Counts.Value(counting.KeyQuestions))
}

func TestBuildDocument_UnknownTypeSoftSkip(t *testing.T) {
	src := `
internetgebruik:
  title: Internetgebruik
  questions:
    matrix:
      question: Deze vraag heeft een onbekende vorm
      type: matrix
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
`
	engine := New(nil)
	doc, result, err := engine.BuildDocument(decodeSurvey(t, src), decodeCategories(t, basicCategories), testOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Warnings)
	out := doc.String()
	assert.NotContains(t, out, "onbekende vorm")
	// no empty color wrapper is left behind by the skip
	assert.NotContains(t, out, "\\begin{colorize}[cbsblauw]\n  \\end{colorize}")
	assert.Contains(t, out, `\label{quest:breedband}`)
	// the skipped question contributes nothing to the counts
	assert.Equal(t, 1, result.Counts.Value(counting.KeyQuestions))
}

func TestBuildDocument_QuestionColorWrapping(t *testing.T) {
	src := `
internetgebruik:
  title: Internetgebruik
  questions:
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
      internetgebruik: true
`
	engine := New(nil)
	doc, result, err := engine.BuildDocument(decodeSurvey(t, src), decodeCategories(t, basicCategories), testOptions())
	require.NoError(t, err)

	out := doc.String()
	assert.Contains(t, out, `\begin{colorize}[cbsblauw]`)
	assert.Contains(t, out, `\end{colorize}`)
	assert.Equal(t, 1, result.Counts.Value("internetgebruik"))
}

func TestBuildDocument_LocalColorWinsOverSection(t *testing.T) {
	categories := `
internetgebruik:
  label: Internet
  color: cbsblauw
ictgebruik:
  label: ICT
  color: rood
`
	src := `
gebruik:
  title: Gebruik
  questions:
    start:
      question: Eerste vraag van de sectie
      type: choices
      section:
        title: ICT sectie
        ictgebruik: true
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
      internetgebruik: true
`
	engine := New(nil)
	doc, _, err := engine.BuildDocument(decodeSurvey(t, src), decodeCategories(t, categories), testOptions())
	require.NoError(t, err)

	out := doc.String()
	// the section forces rood onto the first question
	assert.Contains(t, out, `\begin{colorize}[rood]`)
	// the locally tagged question renders in its own color instead
	assert.Contains(t, out, `\begin{colorize}[cbsblauw]`)
}

func TestBuildDocument_ModuleGotoTrigger(t *testing.T) {
	categories := `
internetgebruik:
  label: Internet
  color: cbsblauw
  goto_condition_label: Geen internet
`
	src := `
internetgebruik:
  title: Internetgebruik
  internetgebruik: mod:personeel
  questions:
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
personeel:
  title: Personeel
  questions:
    opleiding:
      question: Biedt uw bedrijf ICT-opleidingen aan?
      type: choices
`
	engine := New(nil)
	doc, _, err := engine.BuildDocument(decodeSurvey(t, src), decodeCategories(t, categories), testOptions())
	require.NoError(t, err)

	out := doc.String()
	// the whole module is wrapped and carries the redirection line
	assert.Contains(t, out, `\begin{colorize}[cbsblauw]`)
	assert.Contains(t, out, `Geen internet $\rightarrow$ Ga naar \textbf{\ref{mod:personeel}}`)
}

func TestBuildDocument_Summary(t *testing.T) {
	opts := testOptions()
	opts.AddSummary = true
	opts.SummaryTitle = "Overzicht aantal vragen"

	engine := New(nil)
	doc, _, err := engine.BuildDocument(decodeSurvey(t, basicSurvey), decodeCategories(t, basicCategories), opts)
	require.NoError(t, err)

	out := doc.String()
	assert.Contains(t, out, `\section{Overzicht aantal vragen}`)
	assert.Contains(t, out, `\label{overzicht_aantal_vragen}`)
	assert.Contains(t, out, `\modulesection{Globaal aantal vragen}{global}`)
	assert.Contains(t, out, `\modulesection{Aantal vragen per module}{permodule}`)
	assert.Contains(t, out, `\begin{tabular}{ll}`)
	assert.Contains(t, out, `\toprule`)
	assert.Contains(t, out, `Modules & 2\\`)
	assert.Contains(t, out, `Alle Vragen & 3\\`)
	assert.Contains(t, out, `\ref{mod:internetgebruik} Internetgebruik & 2 & 0\\`)
}

func TestBuildDocument_NoSummaryByDefault(t *testing.T) {
	engine := New(nil)
	doc, _, err := engine.BuildDocument(decodeSurvey(t, basicSurvey), decodeCategories(t, basicCategories), testOptions())
	require.NoError(t, err)
	assert.NotContains(t, doc.String(), `\toprule`)
}

func TestBuildDocument_ColorExplanations(t *testing.T) {
	engine := New(nil)
	doc, _, err := engine.BuildDocument(decodeSurvey(t, basicSurvey), decodeCategories(t, basicCategories), testOptions())
	require.NoError(t, err)

	out := doc.String()
	assert.Contains(t, out, `\modulesection{Toelichting kleuren}{kleuren}`)
	assert.Contains(t, out, `\colorinternetgebruik{vragen over internetgebruik}`)
	assert.Contains(t, out, `\newcommand\colorinternetgebruik[1]{{\color{cbsblauw}{#1}}}`)
	assert.Contains(t, out, `\newcommand\colorline[1]{{\color{cbsblauw}{#1}}}`)
}

func TestBuildDocument_NoCategoriesNoColorMachinery(t *testing.T) {
	engine := New(nil)
	doc, _, err := engine.BuildDocument(decodeSurvey(t, basicSurvey), nil, testOptions())
	require.NoError(t, err)

	out := doc.String()
	assert.NotContains(t, out, `colorize`)
	assert.NotContains(t, out, `\colorline`)
}

func TestBuildDocument_InvalidDefinition(t *testing.T) {
	src := `
internetgebruik:
  title: Internetgebruik
  questions:
    kapot:
      type: choices
`
	engine := New(nil)
	_, _, err := engine.BuildDocument(decodeSurvey(t, src), nil, testOptions())
	require.Error(t, err)
	var cfgErr *types.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestBuildDocument_UnknownLocale(t *testing.T) {
	opts := testOptions()
	opts.Locale = "german"
	engine := New(nil)
	_, _, err := engine.BuildDocument(decodeSurvey(t, basicSurvey), nil, opts)
	assert.Error(t, err)
}
