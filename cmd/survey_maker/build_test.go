package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSurvey = `
general:
  preamble:
    title: ICT-enquete
    author: CBS
    version: "1.2"
questionnaire:
  internetgebruik:
    title: Internetgebruik
    questions:
      breedband:
        question: Heeft uw bedrijf breedband?
        type: choices
`

func writeSurvey(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ict_survey.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeBuildConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// resetBuildFlags zeroes the package-level flag state so tests can drive
// runBuild directly.
func resetBuildFlags() {
	buildConfigFile = ""
	buildOutputDir = ""
	buildColor = ""
	buildNoColor = ""
	buildEnglish = false
	buildDraft = false
	buildNoDate = false
	buildNoAuthor = false
	buildUseHouseFont = false
	buildReview = false
	buildDVZ = false
	buildAllVariants = false
	buildVerbose = false
	buildDebug = false
}

func TestRunBuild_SurveyFromConfig(t *testing.T) {
	resetBuildFlags()
	surveyPath := writeSurvey(t, testSurvey)
	outDir := t.TempDir()
	buildConfigFile = writeBuildConfig(t,
		fmt.Sprintf(`{"survey": %q, "output_dir": %q}`, surveyPath, outDir))

	require.NoError(t, runBuild(nil, nil))

	matches, err := filepath.Glob(filepath.Join(outDir, "*.tex"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "ict_survey_v1.2.tex", filepath.Base(matches[0]))
}

func TestRunBuild_ArgWinsOverConfigSurvey(t *testing.T) {
	resetBuildFlags()
	argSurvey := writeSurvey(t, testSurvey)
	cfgSurvey := filepath.Join(t.TempDir(), "bestaat_niet.yml")
	outDir := t.TempDir()
	buildConfigFile = writeBuildConfig(t,
		fmt.Sprintf(`{"survey": %q, "output_dir": %q}`, cfgSurvey, outDir))

	// the config's survey path does not exist, so passing validation proves
	// the argument took precedence
	require.NoError(t, runBuild(nil, []string{argSurvey}))

	matches, err := filepath.Glob(filepath.Join(outDir, "*.tex"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRunBuild_NoSurveyAnywhere(t *testing.T) {
	resetBuildFlags()
	err := runBuild(nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "survey")
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(false)
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = newLogger(true)
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestRootCommand_HasVerbs(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["build"])
	assert.True(t, names["validate"])
}
