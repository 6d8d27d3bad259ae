package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// VersionString is a version field that accepts both quoted and bare
// scalars: an unquoted 1.2 decodes as its literal text instead of as a
// YAML float.
type VersionString string

func (v *VersionString) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("version must be a scalar, got yaml kind %v", value.Kind)
	}
	*v = VersionString(value.Value)
	return nil
}

// Preamble holds the document metadata rendered on the title page and in the page header.
type Preamble struct {
	Title           string        `yaml:"title" validate:"required"`
	Author          string        `yaml:"author" validate:"required"`
	Version         VersionString `yaml:"version"`
	Branch          string        `yaml:"branch"`
	Date            string        `yaml:"date"`
	DocumentOptions []string      `yaml:"document_options"`
}

// SummarySection configures the count summary appendix.
type SummarySection struct {
	AddThis *bool  `yaml:"add_this"`
	Title   string `yaml:"title" validate:"required"`
}

// Enabled reports whether the summary should be rendered. A missing add_this defaults to true.
func (s *SummarySection) Enabled() bool {
	if s == nil {
		return false
	}
	if s.AddThis == nil {
		return true
	}
	return *s.AddThis
}

// GeneralSection is the "general" block of a survey definition file. It carries
// everything that applies to the document as a whole rather than to a single module.
type GeneralSection struct {
	WorkingDirectory  string      `yaml:"working_directory"`
	OutputDirectory   string      `yaml:"output_directory"`
	Preamble          Preamble    `yaml:"preamble"`
	Hyphenation       []string    `yaml:"hyphenation"`
	Info              *InfoBlock  `yaml:"info"`
	ColorizeQuestions CategorySet `yaml:"colorize_questions"`
	Summary           *SummarySection `yaml:"summary"`
}

// SurveyFile is a fully parsed survey definition file.
type SurveyFile struct {
	General       GeneralSection   `yaml:"general"`
	Questionnaire SurveyDefinition `yaml:"questionnaire"`
}

var validate = validator.New()

// Validate checks the structural requirements that the schema cannot express,
// then validates the questionnaire module by module.
func (f *SurveyFile) Validate() error {
	if err := validate.Struct(&f.General.Preamble); err != nil {
		return &ConfigError{
			Key:     "general.preamble",
			Message: "preamble is incomplete",
			Cause:   err,
		}
	}

	if f.General.Summary != nil {
		if err := validate.Struct(f.General.Summary); err != nil {
			return &ConfigError{
				Key:     "general.summary",
				Message: "summary requires a title",
				Cause:   err,
			}
		}
	}

	if len(f.General.ColorizeQuestions) > 0 {
		if err := f.General.ColorizeQuestions.Validate(); err != nil {
			return err
		}
	}

	if len(f.Questionnaire) == 0 {
		return &ConfigError{
			Key:     "questionnaire",
			Message: "questionnaire must contain at least one module",
		}
	}

	return f.Questionnaire.Validate()
}

// VersionSuffix derives the output file suffix parts from the preamble version
// and branch. The branch name is shortened at the first dash, and the version
// loses any branch prefix before being prefixed with "v".
func (p *Preamble) VersionSuffix() []string {
	var parts []string
	version := string(p.Version)
	if p.Branch != "" {
		parts = append(parts, trimAtDash(p.Branch))
		if version != "" {
			version = p.Branch + "-" + version
		}
	}
	if version != "" {
		short := version
		if p.Branch != "" {
			short = trimPrefixDash(short, p.Branch)
		}
		parts = append(parts, "v"+trimAtDash(short))
	}
	return parts
}

func trimAtDash(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] == '-' {
			return s[:i]
		}
	}
	return s
}

func trimPrefixDash(s, prefix string) string {
	if len(s) >= len(prefix) && s[:len(prefix)] == prefix {
		s = s[len(prefix):]
	}
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	return s
}

// EffectiveVersion is the version string rendered in the page header, including
// the branch prefix when one is configured.
func (p *Preamble) EffectiveVersion() string {
	if p.Branch != "" && p.Version != "" {
		return p.Branch + "-" + string(p.Version)
	}
	if p.Version != "" {
		return string(p.Version)
	}
	return ""
}
