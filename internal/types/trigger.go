// Package types provides type definitions for the survey definition data model
// used throughout the survey-maker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// TriggerKind distinguishes the three shapes a colorize trigger value can take
// on a module, section or question node.
type TriggerKind int

const (
	// TriggerFlag is a plain boolean trigger (colorize yes/no).
	TriggerFlag TriggerKind = iota
	// TriggerGoto is a string trigger interpreted as a redirection anchor.
	TriggerGoto
	// TriggerRef is a mapping trigger carrying a refers_to reference and an
	// optional count override.
	TriggerRef
)

// TriggerValue is the value of a colorize-trigger field on a node. A node
// carries a mapping from category key to TriggerValue; the colorize engine
// iterates the declared categories in order against that mapping.
type TriggerValue struct {
	Kind     TriggerKind
	Flag     bool
	Goto     string
	RefersTo string
	Count    *int // optional weight override for count accumulation
}

// Active reports whether the trigger fires: a true flag, a non-empty goto
// string, or any mapping value.
func (v TriggerValue) Active() bool {
	switch v.Kind {
	case TriggerFlag:
		return v.Flag
	case TriggerGoto:
		return v.Goto != ""
	case TriggerRef:
		return true
	}
	return false
}

// GotoTarget returns the redirection anchor carried by a string trigger.
func (v TriggerValue) GotoTarget() (string, bool) {
	if v.Kind == TriggerGoto && v.Goto != "" {
		return v.Goto, true
	}
	return "", false
}

// UnmarshalYAML decodes the three accepted YAML shapes: a boolean scalar, a
// string scalar, or a mapping with refers_to and count.
func (v *TriggerValue) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!bool" {
			var b bool
			if err := value.Decode(&b); err != nil {
				return err
			}
			*v = TriggerValue{Kind: TriggerFlag, Flag: b}
			return nil
		}
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*v = TriggerValue{Kind: TriggerGoto, Goto: s}
		return nil
	case yaml.MappingNode:
		var ref struct {
			RefersTo string `yaml:"refers_to"`
			Count    *int   `yaml:"count"`
		}
		if err := value.Decode(&ref); err != nil {
			return err
		}
		*v = TriggerValue{Kind: TriggerRef, RefersTo: ref.RefersTo, Count: ref.Count}
		return nil
	default:
		return fmt.Errorf("trigger value must be a bool, string or mapping, got yaml kind %v", value.Kind)
	}
}

// TriggerSet maps category keys to their trigger values on one node.
type TriggerSet map[string]TriggerValue

// Get returns the trigger for a category key if one is present and active.
func (t TriggerSet) Get(key string) (TriggerValue, bool) {
	v, ok := t[key]
	if !ok || !v.Active() {
		return TriggerValue{}, false
	}
	return v, true
}
