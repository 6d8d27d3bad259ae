package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/survey-maker/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveySchema_ValidJSON(t *testing.T) {
	data, err := os.ReadFile(filepath.Join(".", "survey.schema.json"))
	require.NoError(t, err, "should be able to read schema file")

	var v interface{}
	err = json.Unmarshal(data, &v)
	assert.NoError(t, err, "schema file should be valid JSON")
}

func TestSurveySchema_AcceptsMinimalSurvey(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join(".", "survey.schema.json"))
	require.NoError(t, err)

	survey := `
general:
  preamble:
    title: ICT-enquete
    author: CBS
questionnaire:
  internetgebruik:
    title: Internetgebruik
    questions:
      breedband:
        question: Heeft uw bedrijf breedband?
        type: choices
`
	assert.NoError(t, schemas.ValidateSurveyBytes(schema, []byte(survey)))
}

func TestSurveySchema_RejectsMissingTitle(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join(".", "survey.schema.json"))
	require.NoError(t, err)

	survey := `
general:
  preamble:
    author: CBS
questionnaire:
  internetgebruik:
    title: Internetgebruik
    questions:
      breedband:
        question: Heeft uw bedrijf breedband?
`
	err = schemas.ValidateSurveyBytes(schema, []byte(survey))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestSurveySchema_RejectsModuleWithoutQuestions(t *testing.T) {
	schema, err := os.ReadFile(filepath.Join(".", "survey.schema.json"))
	require.NoError(t, err)

	survey := `
general:
  preamble:
    title: ICT-enquete
    author: CBS
questionnaire:
  internetgebruik:
    title: Internetgebruik
`
	assert.Error(t, schemas.ValidateSurveyBytes(schema, []byte(survey)))
}
