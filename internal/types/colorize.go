// Package types provides type definitions for the survey definition data model
// used throughout the survey-maker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// DVZKey is the reserved provenance category. Its triggers are rendered like
// any other category but are deliberately excluded from the numeric counts.
const DVZKey = "dvz"

// ColorizeCategory is one declared colorize category: a named visual and
// provenance tag that can be attached to modules, sections or questions to
// drive both color rendering and separate counting.
type ColorizeCategory struct {
	Color                  string `yaml:"color"`
	Label                  string `yaml:"label"`
	Explanation            string `yaml:"explanation"`
	AddThis                bool   `yaml:"add_this"`
	ApplyColor             bool   `yaml:"apply_color"`
	ReviewOnly             bool   `yaml:"review_only"`
	DVZOnly                bool   `yaml:"dvz_only"`
	SubtractCountFromTotal bool   `yaml:"subtract_count_from_total"`
	GotoConditionLabel     string `yaml:"goto_condition_label"`
}

// UnmarshalYAML decodes a category with add_this and apply_color defaulting
// to true.
func (c *ColorizeCategory) UnmarshalYAML(value *yaml.Node) error {
	type raw ColorizeCategory
	r := raw{AddThis: true, ApplyColor: true}
	if err := value.Decode(&r); err != nil {
		return err
	}
	*c = ColorizeCategory(r)
	return nil
}

// CategoryEntry is one category with its key, in declaration order.
type CategoryEntry struct {
	Key      string
	Category ColorizeCategory
}

// CategorySet is the ordered set of declared colorize categories. Declaration
// order is authoritative: the first eligible match on a node wins, and the
// summary table columns follow this order.
type CategorySet []CategoryEntry

// UnmarshalYAML decodes the category mapping while preserving key order.
func (s *CategorySet) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("colorize categories must be a mapping, got yaml kind %v", value.Kind)
	}
	out := make(CategorySet, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var cat ColorizeCategory
		if err := cat.UnmarshalYAML(value.Content[i+1]); err != nil {
			return fmt.Errorf("category %q: %w", value.Content[i].Value, err)
		}
		out = append(out, CategoryEntry{Key: value.Content[i].Value, Category: cat})
	}
	*s = out
	return nil
}

// Get returns the category declared under key.
func (s CategorySet) Get(key string) (ColorizeCategory, bool) {
	for _, e := range s {
		if e.Key == key {
			return e.Category, true
		}
	}
	return ColorizeCategory{}, false
}

// Validate rejects category keys containing the word-separator character.
// Anchors compose labels by stripping that character, so a key carrying it
// could never be referenced back.
func (s CategorySet) Validate() error {
	for _, e := range s {
		if strings.Contains(e.Key, "_") {
			return &ConfigError{Key: e.Key, Message: "no _ allowed in the color keys"}
		}
		if e.Category.Color == "" {
			return &ConfigError{Key: e.Key, Message: "colorize category requires a color"}
		}
	}
	return nil
}

// Reorder moves mainKey to the front of the set and forces it enabled, the
// way the --color override promotes one category to the primary slot.
// Returns a ConfigError when mainKey was never declared.
func (s CategorySet) Reorder(mainKey string) (CategorySet, error) {
	main, ok := s.Get(mainKey)
	if !ok {
		keys := make([]string, 0, len(s))
		for _, e := range s {
			keys = append(keys, e.Key)
		}
		return nil, &ConfigError{
			Key:     mainKey,
			Message: fmt.Sprintf("color was not defined in the colorize properties, pick one of: %s", strings.Join(keys, ", ")),
		}
	}
	main.AddThis = true
	main.ApplyColor = true
	out := CategorySet{{Key: mainKey, Category: main}}
	for _, e := range s {
		if e.Key != mainKey {
			out = append(out, e)
		}
	}
	return out, nil
}

// Disable turns off the category declared under key, the way the --no_color
// override does. Referencing an undeclared category is fatal.
func (s CategorySet) Disable(key string) (CategorySet, error) {
	out := make(CategorySet, 0, len(s))
	found := false
	for _, e := range s {
		if e.Key == key {
			e.Category.AddThis = false
			found = true
		}
		out = append(out, e)
	}
	if !found {
		return nil, &ConfigError{Key: key, Message: "could not find definition of color to turn off"}
	}
	return out, nil
}
