// Package types provides type definitions for the survey definition data model
// used throughout the survey-maker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Recognized question types. A type outside this list is a soft skip in the
// assembly engine, not a fatal error; the reverse asymmetry (a renderer
// reached with a type outside the list) is fatal.
const (
	TypeQuantity   = "quantity"
	TypeChoices    = "choices"
	TypeGroup      = "group"
	TypeTextbox    = "textbox"
	TypeRange      = "range"
	TypeRangeGroup = "rangegroup"
)

// KnownQuestionTypes lists the question types the renderers implement, in a
// stable order for error messages.
var KnownQuestionTypes = []string{
	TypeQuantity, TypeChoices, TypeGroup, TypeTextbox, TypeRange, TypeRangeGroup,
}

// IsKnownQuestionType reports whether t is implemented by a renderer.
func IsKnownQuestionType(t string) bool {
	for _, k := range KnownQuestionTypes {
		if k == t {
			return true
		}
	}
	return false
}

// FilterSpec defines a conditional redirection: when the reader picks the
// answer equal to Condition, a "go to" phrase pointing at Goto is rendered.
type FilterSpec struct {
	Condition string `yaml:"condition"`
	Goto      string `yaml:"goto"`
}

// SectionBreak starts a new visual section within a module at the question
// that carries it. A break resets any whole-section colorize state left by
// the previous section.
type SectionBreak struct {
	Title    string
	Info     *InfoBlock
	Triggers TriggerSet
}

// UnmarshalYAML decodes the known section fields and collects every other
// key as a colorize trigger.
func (s *SectionBreak) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("section must be a mapping, got yaml kind %v", value.Kind)
	}
	out := SectionBreak{Triggers: TriggerSet{}}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, valNode := value.Content[i].Value, value.Content[i+1]
		switch key {
		case "title":
			if err := valNode.Decode(&out.Title); err != nil {
				return err
			}
		case "info":
			out.Info = &InfoBlock{}
			if err := out.Info.UnmarshalYAML(valNode); err != nil {
				return err
			}
		default:
			var tv TriggerValue
			if err := tv.UnmarshalYAML(valNode); err != nil {
				return fmt.Errorf("section trigger %q: %w", key, err)
			}
			out.Triggers[key] = tv
		}
	}
	*s = out
	return nil
}

// LabelList is a string-or-list YAML field. A single string renders as one
// label; a list renders as lettered sub-items and contributes its length to
// the question weight.
type LabelList struct {
	Values []string
	IsList bool
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (l *LabelList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = LabelList{Values: []string{s}}
		return nil
	case yaml.SequenceNode:
		var vs []string
		if err := value.Decode(&vs); err != nil {
			return err
		}
		*l = LabelList{Values: vs, IsList: true}
		return nil
	default:
		return fmt.Errorf("label must be a string or a list, got yaml kind %v", value.Kind)
	}
}

// QuestionSpec is one question within a module.
type QuestionSpec struct {
	Question        string
	Type            string
	AddThis         bool
	Info            *InfoBlock
	Section         *SectionBreak
	Filter          *FilterSpec
	DVZ             *InfoBlock
	IncreaseCounter string
	Triggers        TriggerSet

	// Type-specific fields.
	Choices         []string  // choices
	NumberOfColumns int       // choices
	Groups          []string  // group
	ChoiceLines     []string  // group
	GroupWidth      string    // group
	RangeLabels     []string  // range, rangegroup
	QuestionLines   []string  // rangegroup
	TextWidth       string    // textbox
	BoxWidth        string    // quantity
	QuantityLabel   LabelList // quantity
}

// questionKnownKeys are decoded into named fields; everything else on a
// question node is a colorize trigger.
var questionKnownKeys = map[string]bool{
	"question": true, "type": true, "add_this": true, "info": true,
	"section": true, "filter": true, "dvz": true, "increase_counter": true,
	"choices": true, "number_of_columns": true, "groups": true,
	"choicelines": true, "group_width": true, "range_labels": true,
	"question_lines": true, "textbox": true, "box_width": true,
	"quantity_label": true,
}

// UnmarshalYAML decodes the known question fields and collects every other
// key as a colorize trigger.
func (q *QuestionSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("question must be a mapping, got yaml kind %v", value.Kind)
	}
	out := QuestionSpec{AddThis: true, NumberOfColumns: 1, Triggers: TriggerSet{}}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, valNode := value.Content[i].Value, value.Content[i+1]
		var err error
		switch key {
		case "question":
			err = valNode.Decode(&out.Question)
		case "type":
			err = valNode.Decode(&out.Type)
		case "add_this":
			err = valNode.Decode(&out.AddThis)
		case "info":
			out.Info = &InfoBlock{}
			err = out.Info.UnmarshalYAML(valNode)
		case "section":
			out.Section = &SectionBreak{}
			err = out.Section.UnmarshalYAML(valNode)
		case "filter":
			out.Filter = &FilterSpec{}
			err = valNode.Decode(out.Filter)
		case "dvz":
			out.DVZ = &InfoBlock{}
			err = out.DVZ.UnmarshalYAML(valNode)
		case "increase_counter":
			err = valNode.Decode(&out.IncreaseCounter)
		case "choices":
			err = valNode.Decode(&out.Choices)
		case "number_of_columns":
			err = valNode.Decode(&out.NumberOfColumns)
		case "groups":
			err = valNode.Decode(&out.Groups)
		case "choicelines":
			err = valNode.Decode(&out.ChoiceLines)
		case "group_width":
			err = valNode.Decode(&out.GroupWidth)
		case "range_labels":
			err = valNode.Decode(&out.RangeLabels)
		case "question_lines":
			err = valNode.Decode(&out.QuestionLines)
		case "textbox":
			err = valNode.Decode(&out.TextWidth)
		case "box_width":
			err = valNode.Decode(&out.BoxWidth)
		case "quantity_label":
			err = out.QuantityLabel.UnmarshalYAML(valNode)
		default:
			var tv TriggerValue
			if err = tv.UnmarshalYAML(valNode); err == nil {
				out.Triggers[key] = tv
			}
		}
		if err != nil {
			return fmt.Errorf("question field %q: %w", key, err)
		}
	}
	*q = out
	return nil
}

// Validate checks the required question fields.
func (q *QuestionSpec) Validate(key string) error {
	if q.Question == "" {
		return &ConfigError{Key: key, Message: "question text is required"}
	}
	if q.Type == "" {
		return &ConfigError{Key: key, Message: "question type is required"}
	}
	if q.Filter != nil && q.Filter.Goto == "" {
		return &ConfigError{Key: key, Message: "filter requires a goto target"}
	}
	return nil
}

// QuestionEntry is one question with its key, in declaration order.
type QuestionEntry struct {
	Key      string
	Question QuestionSpec
}

// ModuleSpec is one top-level module of the questionnaire.
type ModuleSpec struct {
	Title            string
	Questions        []QuestionEntry
	Info             *InfoBlock
	AddThis          bool
	ExcludeFromCount bool
	Triggers         TriggerSet
}

// UnmarshalYAML decodes the known module fields and collects every other key
// as a colorize trigger. Question declaration order is preserved.
func (m *ModuleSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("module must be a mapping, got yaml kind %v", value.Kind)
	}
	out := ModuleSpec{AddThis: true, Triggers: TriggerSet{}}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, valNode := value.Content[i].Value, value.Content[i+1]
		var err error
		switch key {
		case "title":
			err = valNode.Decode(&out.Title)
		case "questions":
			if valNode.Kind != yaml.MappingNode {
				return fmt.Errorf("questions must be a mapping, got yaml kind %v", valNode.Kind)
			}
			for j := 0; j+1 < len(valNode.Content); j += 2 {
				var q QuestionSpec
				if err := q.UnmarshalYAML(valNode.Content[j+1]); err != nil {
					return fmt.Errorf("question %q: %w", valNode.Content[j].Value, err)
				}
				out.Questions = append(out.Questions, QuestionEntry{Key: valNode.Content[j].Value, Question: q})
			}
		case "info":
			out.Info = &InfoBlock{}
			err = out.Info.UnmarshalYAML(valNode)
		case "add_this":
			err = valNode.Decode(&out.AddThis)
		case "exclude_from_count":
			err = valNode.Decode(&out.ExcludeFromCount)
		default:
			var tv TriggerValue
			if err = tv.UnmarshalYAML(valNode); err == nil {
				out.Triggers[key] = tv
			}
		}
		if err != nil {
			return fmt.Errorf("module field %q: %w", key, err)
		}
	}
	*m = out
	return nil
}

// Validate checks the required module fields and all its questions.
func (m *ModuleSpec) Validate(key string) error {
	if m.Title == "" {
		return &ConfigError{Key: key, Message: "module title is required"}
	}
	if m.Questions == nil {
		return &ConfigError{Key: key, Message: "module questions are required"}
	}
	for _, qe := range m.Questions {
		if err := qe.Question.Validate(qe.Key); err != nil {
			return err
		}
	}
	return nil
}

// ModuleEntry is one module with its key, in declaration order.
type ModuleEntry struct {
	Key    string
	Module ModuleSpec
}

// SurveyDefinition is the ordered set of modules making up one questionnaire.
// Declaration order defines document order.
type SurveyDefinition []ModuleEntry

// UnmarshalYAML decodes the module mapping while preserving key order.
func (d *SurveyDefinition) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("questionnaire must be a mapping, got yaml kind %v", value.Kind)
	}
	out := make(SurveyDefinition, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var m ModuleSpec
		if err := m.UnmarshalYAML(value.Content[i+1]); err != nil {
			return fmt.Errorf("module %q: %w", value.Content[i].Value, err)
		}
		out = append(out, ModuleEntry{Key: value.Content[i].Value, Module: m})
	}
	*d = out
	return nil
}

// Lookup returns the module declared under key.
func (d SurveyDefinition) Lookup(key string) (ModuleSpec, bool) {
	for _, e := range d {
		if e.Key == key {
			return e.Module, true
		}
	}
	return ModuleSpec{}, false
}

// Validate checks every module and question for required fields.
func (d SurveyDefinition) Validate() error {
	for _, e := range d {
		if err := e.Module.Validate(e.Key); err != nil {
			return err
		}
	}
	return nil
}
