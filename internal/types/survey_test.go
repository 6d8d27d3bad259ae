package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const moduleYAML = `
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
    internetgebruik: true
`

func TestModuleSpec_Decode(t *testing.T) {
	var m ModuleSpec
	err := yaml.Unmarshal([]byte(moduleYAML), &m)
	require.NoError(t, err)

	assert.Equal(t, "Internetgebruik", m.Title)
	assert.True(t, m.AddThis)
	require.NotNil(t, m.Info)

	require.Len(t, m.Questions, 2)
	assert.Equal(t, "breedband", m.Questions[0].Key)
	assert.Equal(t, "medewerkers", m.Questions[1].Key)
}

func TestQuestionSpec_DecodeDefaults(t *testing.T) {
	var m ModuleSpec
	require.NoError(t, yaml.Unmarshal([]byte(moduleYAML), &m))

	q := m.Questions[0].Question
	assert.True(t, q.AddThis)
	assert.Equal(t, 1, q.NumberOfColumns)
	assert.Equal(t, TypeChoices, q.Type)
	require.NotNil(t, q.Filter)
	assert.Equal(t, "Nee", q.Filter.Condition)
	assert.Equal(t, "mod:personeel", q.Filter.Goto)
}

func TestQuestionSpec_UnknownKeysBecomeTriggers(t *testing.T) {
	var m ModuleSpec
	require.NoError(t, yaml.Unmarshal([]byte(moduleYAML), &m))

	q := m.Questions[1].Question
	trigger, ok := q.Triggers.Get("internetgebruik")
	require.True(t, ok)
	assert.Equal(t, TriggerFlag, trigger.Kind)

	// Known keys never leak into the trigger set.
	_, ok = q.Triggers.Get("quantity_label")
	assert.False(t, ok)
	assert.Equal(t, []string{"personen"}, q.QuantityLabel.Values)
	assert.False(t, q.QuantityLabel.IsList)
}

func TestQuestionSpec_SectionBreak(t *testing.T) {
	src := `
question: Wat is uw omzet?
type: quantity
section:
  title: Financieel
  info: De volgende vragen gaan over uw omzet.
  internetgebruik: true
`
	var q QuestionSpec
	require.NoError(t, yaml.Unmarshal([]byte(src), &q))

	require.NotNil(t, q.Section)
	assert.Equal(t, "Financieel", q.Section.Title)
	require.NotNil(t, q.Section.Info)
	_, ok := q.Section.Triggers.Get("internetgebruik")
	assert.True(t, ok)
}

func TestQuestionSpec_Validate(t *testing.T) {
	q := QuestionSpec{Type: TypeChoices}
	err := q.Validate("breedband")
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "breedband", cfgErr.Key)

	q = QuestionSpec{Question: "Heeft uw bedrijf een website?"}
	assert.Error(t, q.Validate("website"))

	q = QuestionSpec{
		Question: "Heeft uw bedrijf een website?",
		Type:     TypeChoices,
		Filter:   &FilterSpec{Condition: "Nee"},
	}
	assert.Error(t, q.Validate("website"))
}

func TestSurveyDefinition_DecodeAndLookup(t *testing.T) {
	src := `
algemeen:
  title: Algemene gegevens
  questions:
    naam:
      question: Wat is de naam van uw bedrijf?
      type: textbox
internetgebruik:
  title: Internetgebruik
  questions:
    breedband:
      question: Heeft uw bedrijf breedband?
      type: choices
`
	var d SurveyDefinition
	require.NoError(t, yaml.Unmarshal([]byte(src), &d))

	require.Len(t, d, 2)
	assert.Equal(t, "algemeen", d[0].Key)
	assert.Equal(t, "internetgebruik", d[1].Key)

	m, ok := d.Lookup("internetgebruik")
	require.True(t, ok)
	assert.Equal(t, "Internetgebruik", m.Title)

	_, ok = d.Lookup("bestaatniet")
	assert.False(t, ok)

	assert.NoError(t, d.Validate())
}

func TestLabelList_Decode(t *testing.T) {
	var l LabelList
	require.NoError(t, yaml.Unmarshal([]byte(`personen`), &l))
	assert.Equal(t, []string{"personen"}, l.Values)
	assert.False(t, l.IsList)

	require.NoError(t, yaml.Unmarshal([]byte("- mannen\n- vrouwen\n"), &l))
	assert.Equal(t, []string{"mannen", "vrouwen"}, l.Values)
	assert.True(t, l.IsList)
}

func TestIsKnownQuestionType(t *testing.T) {
	for _, k := range KnownQuestionTypes {
		assert.True(t, IsKnownQuestionType(k))
	}
	assert.False(t, IsKnownQuestionType("matrix"))
	assert.False(t, IsKnownQuestionType(""))
}
