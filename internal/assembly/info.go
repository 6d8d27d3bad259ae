package assembly

import (
	"github.com/jonathan/survey-maker/internal/texbuild"
	"github.com/jonathan/survey-maker/internal/types"
)

// addInfo renders an info block inside its boxed environment, optionally
// wrapped in a color scope, followed by a paragraph skip.
func (b *build) addInfo(info *types.InfoBlock, fontsize, color string) error {
	render := func() error {
		return b.doc.Scope(texbuild.Info(), func() error {
			return b.writeInfo(info, fontsize, false)
		})
	}

	var err error
	if color == "" {
		err = render()
	} else {
		err = b.doc.Scope(texbuild.Colorize(color), render)
	}
	if err != nil {
		return err
	}
	b.doc.Append(texbuild.VSpace(`\parskip`))
	return nil
}

// writeInfo recursively renders a nested info block. A title entry renders
// outside the enclosing bullet scope; after it, every sibling entry at that
// level becomes a bullet item. An items entry opens a new itemize scope.
// Empty leaf text still renders.
func (b *build) writeInfo(info *types.InfoBlock, fontsize string, isItem bool) error {
	switch info.Kind {
	case types.InfoLeaf:
		b.writeInfoLeaf(info.Text, fontsize, isItem)
		return nil
	case types.InfoList:
		for _, item := range info.Items {
			if err := b.writeInfo(item, fontsize, true); err != nil {
				return err
			}
		}
		return nil
	case types.InfoNode:
		if info.FontSize != "" {
			fontsize = info.FontSize
		}
		for _, entry := range info.Entries {
			switch entry.Key {
			case types.InfoKeyTitle:
				// the first title is not an item; everything after it is
				if err := b.writeInfo(entry.Block, fontsize, isItem); err != nil {
					return err
				}
				isItem = true
			case types.InfoKeyItems:
				err := b.doc.Scope(texbuild.Itemize(), func() error {
					return b.writeInfo(entry.Block, fontsize, true)
				})
				if err != nil {
					return err
				}
			default:
				if err := b.writeInfo(entry.Block, fontsize, isItem); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return &types.ConfigError{Key: "info", Message: "info block must be a string, list or mapping"}
	}
}

// writeInfoLeaf renders one text leaf at the given font size, as a bullet
// item when inside an itemize scope.
func (b *build) writeInfoLeaf(text, fontsize string, isItem bool) {
	leaf := texbuild.Command{Name: fontsize, Arguments: []string{text}}
	if isItem {
		b.doc.Append(texbuild.Command{Name: "item", Arguments: []string{leaf.Tex()}})
		return
	}
	b.doc.Append(leaf)
}
