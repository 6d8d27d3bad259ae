// Package types provides type definitions for the survey definition data model
// used throughout the survey-maker system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// InfoKind is the tag of the InfoBlock variant.
type InfoKind int

const (
	// InfoLeaf is a plain text leaf. Empty text is still a valid leaf and
	// still renders.
	InfoLeaf InfoKind = iota
	// InfoList is a sequence of blocks rendered as bullet items.
	InfoList
	// InfoNode is a mapping of named sub-blocks. A "title" entry renders
	// outside the enclosing bullet scope; an "items" entry opens a new
	// itemize scope; any other entry recurses in place.
	InfoNode
)

// Reserved entry keys inside an InfoNode. "fontsize" and "above" are layout
// hints, not content, and are pulled out of the entry list during decode.
const (
	InfoKeyTitle = "title"
	InfoKeyItems = "items"
)

// InfoEntry is one ordered key/value pair inside an InfoNode.
type InfoEntry struct {
	Key   string
	Block *InfoBlock
}

// InfoBlock is a recursively nested information block: a text leaf, a list of
// blocks, or an ordered mapping of named blocks. Exactly one variant applies
// per level.
type InfoBlock struct {
	Kind InfoKind

	Text    string      // InfoLeaf
	Items   []*InfoBlock // InfoList
	Entries []InfoEntry  // InfoNode, in declaration order

	// Layout hints, only meaningful on an InfoNode.
	FontSize string
	Above    bool
}

// UnmarshalYAML decodes the three accepted shapes while preserving the
// declaration order of mapping entries.
func (b *InfoBlock) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*b = InfoBlock{Kind: InfoLeaf, Text: s}
		return nil
	case yaml.SequenceNode:
		items := make([]*InfoBlock, 0, len(value.Content))
		for _, n := range value.Content {
			item := &InfoBlock{}
			if err := item.UnmarshalYAML(n); err != nil {
				return err
			}
			items = append(items, item)
		}
		*b = InfoBlock{Kind: InfoList, Items: items}
		return nil
	case yaml.MappingNode:
		out := InfoBlock{Kind: InfoNode}
		for i := 0; i+1 < len(value.Content); i += 2 {
			keyNode := value.Content[i]
			valNode := value.Content[i+1]
			switch keyNode.Value {
			case "fontsize":
				if err := valNode.Decode(&out.FontSize); err != nil {
					return err
				}
			case "above":
				if err := valNode.Decode(&out.Above); err != nil {
					return err
				}
			default:
				entry := &InfoBlock{}
				if err := entry.UnmarshalYAML(valNode); err != nil {
					return fmt.Errorf("info entry %q: %w", keyNode.Value, err)
				}
				out.Entries = append(out.Entries, InfoEntry{Key: keyNode.Value, Block: entry})
			}
		}
		*b = out
		return nil
	default:
		return fmt.Errorf("info block must be a string, list or mapping, got yaml kind %v", value.Kind)
	}
}
