package assembly

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/survey-maker/internal/refs"
	"github.com/jonathan/survey-maker/internal/texbuild"
	"github.com/jonathan/survey-maker/internal/types"
)

// maxRangeLabels caps the boundary labels on range questions; extra labels
// are dropped with a warning.
const maxRangeLabels = 2

// addQuestion renders one question body through its type's renderer and
// returns the question weight for count accumulation.
func (b *build) addQuestion(key string, q *types.QuestionSpec, refersPhrase string) (int, error) {
	question := q.Question
	if b.opts.ReviewReferences && refersPhrase != "" {
		question = insertReviewReference(question, refersPhrase)
	}

	above := q.Info != nil && q.Info.Above

	var weight int
	var err error
	switch q.Type {
	case types.TypeQuantity:
		if above {
			b.log.Warn("above option not possible for quantity question, putting info box below",
				zap.String("question", key))
			above = false
		}
		weight, err = b.addQuantityQuestion(key, q, question)
	case types.TypeChoices:
		weight, err = b.addChoiceQuestion(key, q, question, above)
	case types.TypeGroup:
		weight, err = b.addChoiceGroupQuestion(key, q, question, above)
	case types.TypeTextbox:
		weight, err = b.addTextboxQuestion(key, q, question, above)
	case types.TypeRange:
		weight, err = b.addRangeQuestion(key, q, question, above)
	case types.TypeRangeGroup:
		weight, err = b.addRangeGroupQuestion(key, q, question, above)
	default:
		// unreachable when the caller checked the allow-list; a renderer
		// reached with an unknown type validates strictly
		return 0, &types.ConfigError{Key: key, Message: "question type " + q.Type + " is not one of " + strings.Join(types.KnownQuestionTypes, ", ")}
	}
	if err != nil {
		return 0, err
	}

	if q.Info != nil && !above {
		if err := b.addInfo(q.Info, defaultFontSize, ""); err != nil {
			return 0, err
		}
	}

	if q.DVZ != nil && b.opts.DVZReferences {
		dvzCat, ok := b.rules.Categories().Get(types.DVZKey)
		if !ok {
			return 0, &types.ConfigError{Key: types.DVZKey, Message: "dvz block used without a declared dvz category"}
		}
		err := b.doc.Scope(texbuild.Colorize(dvzCat.Color), func() error {
			return b.addInfo(q.DVZ, defaultFontSize, "")
		})
		if err != nil {
			return 0, err
		}
	}

	return weight, nil
}

// insertReviewReference appends the refers-to phrase to the question text,
// keeping any trailing \explanation{...} suffix after it.
func insertReviewReference(question, refersPhrase string) string {
	explanation := ""
	if idx := strings.Index(question, "explanation"); idx >= 0 {
		explanation = question[idx:]
		question = question[:idx]
	}
	question += ` \emph{` + refersPhrase + `}`
	if explanation != "" {
		question += `\` + explanation
	}
	return question
}

// letterPrefix returns the a), b), ... prefix for enumerated lines. A line
// already carrying a colorline command colors its letter too.
func letterPrefix(index int, line string) string {
	char := string(rune('a'+index)) + ")"
	if strings.Contains(line, "colorline") {
		char = `\colorline{` + char + `}`
	}
	return `\textbf{` + char + `} ` + line
}

// addQuantityQuestion renders one or more labeled quantity boxes. A label
// list yields lettered sub-items and a weight equal to its length.
func (b *build) addQuantityQuestion(key string, q *types.QuestionSpec, question string) (int, error) {
	labelValues := q.QuantityLabel.Values
	if len(labelValues) == 0 {
		labelValues = []string{""}
	}

	boxWidth := q.BoxWidth
	if boxWidth == "" {
		boxWidth = b.opts.GlobalBoxWidth
	}

	weight := 0
	err := b.doc.Scope(texbuild.QuantityQuestion(question), func() error {
		for i, label := range labelValues {
			var rendered string
			if q.QuantityLabel.IsList {
				char := string(rune('a' + i))
				rendered = `\parbox{0.92\textwidth}{` + `\textbf{` + char + `}) ` + label + `}`
			} else {
				if label != "" {
					label += ":"
				}
				rendered = label
			}
			b.doc.Append(texbuild.ChoiceItemText("1.2em", boxWidth, rendered))
			weight++
		}
		b.doc.Anchor(refs.QuestionLabel(key))

		if q.Filter != nil {
			line := q.Filter.Condition + b.redirect.Phrase(q.Filter)
			info := &types.InfoBlock{Kind: types.InfoLeaf, Text: line}
			return b.addInfo(info, defaultFontSize, "")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if weight == 0 {
		weight = 1
	}
	return weight, nil
}

// addChoiceQuestion renders a multiple-choice question. A choice equal to
// the filter condition carries the redirection phrase inline.
func (b *build) addChoiceQuestion(key string, q *types.QuestionSpec, question string, infoAbove bool) (int, error) {
	choices := q.Choices
	if choices == nil {
		choices = b.labels.DefaultChoices
	}
	columns := strconv.Itoa(q.NumberOfColumns)
	if q.NumberOfColumns < 1 {
		columns = "1"
	}
	err := b.doc.Scope(texbuild.ChoiceQuestion(columns, question), func() error {
		if infoAbove {
			if err := b.addInfo(q.Info, defaultFontSize, ""); err != nil {
				return err
			}
		}
		for _, choice := range choices {
			b.doc.Append(texbuild.ChoiceItem(choice + b.redirect.PhraseForChoice(q.Filter, choice)))
		}
		b.doc.Anchor(refs.QuestionLabel(key))
		return nil
	})
	if err != nil {
		return 0, err
	}
	return 1, nil
}

// addChoiceGroupQuestion renders a matrix question: one column per group
// answer, one lettered choice line per row. The weight is the number of
// rows.
func (b *build) addChoiceGroupQuestion(key string, q *types.QuestionSpec, question string, infoAbove bool) (int, error) {
	groups := q.Groups
	if groups == nil {
		groups = b.labels.DefaultChoices
	}

	weight := 0
	err := b.doc.Scope(texbuild.ChoiceGroupQuestion(question), func() error {
		if infoAbove {
			if err := b.addInfo(q.Info, defaultFontSize, ""); err != nil {
				return err
			}
		}
		for _, group := range groups {
			if q.GroupWidth != "" {
				group = `\parbox{` + q.GroupWidth + `}{\raggedright ` + group + `}`
			}
			b.doc.Append(texbuild.GroupAddChoice(group))
		}

		if q.Filter != nil {
			line := q.Filter.Condition + b.redirect.Phrase(q.Filter)
			info := &types.InfoBlock{Kind: types.InfoLeaf, Text: line}
			if err := b.addInfo(info, defaultFontSize, ""); err != nil {
				return err
			}
		}

		for i, line := range q.ChoiceLines {
			b.doc.Append(texbuild.ChoiceLine(letterPrefix(i, line)))
			weight++
		}
		b.doc.Anchor(refs.QuestionLabel(key))
		return nil
	})
	if err != nil {
		return 0, err
	}
	if weight == 0 {
		weight = 1
	}
	return weight, nil
}

// addTextboxQuestion renders a free-text answer box.
func (b *build) addTextboxQuestion(key string, q *types.QuestionSpec, question string, infoAbove bool) (int, error) {
	if infoAbove {
		if err := b.addInfo(q.Info, defaultFontSize, ""); err != nil {
			return 0, err
		}
	}
	width := q.TextWidth
	if width == "" {
		width = "1cm"
	}
	b.doc.Append(texbuild.TextBox(width, question))
	b.doc.Anchor(refs.QuestionLabel(key))
	return 1, nil
}

// addRangeQuestion renders a single mark-a-position question with its
// boundary labels.
func (b *build) addRangeQuestion(key string, q *types.QuestionSpec, question string, infoAbove bool) (int, error) {
	if infoAbove {
		if err := b.addInfo(q.Info, defaultFontSize, ""); err != nil {
			return 0, err
		}
	}
	args := []string{question}
	args = append(args, b.cappedRangeLabels(key, q.RangeLabels)...)
	b.doc.Append(texbuild.SingleMark(args...))
	b.doc.Anchor(refs.QuestionLabel(key))
	return 1, nil
}

// addRangeGroupQuestion renders one mark line per question line, each with
// the shared boundary labels. The weight is the number of lines.
func (b *build) addRangeGroupQuestion(key string, q *types.QuestionSpec, question string, infoAbove bool) (int, error) {
	items := b.cappedRangeLabels(key, q.RangeLabels)

	weight := 0
	err := b.doc.Scope(texbuild.RangeGroupQuestion(question), func() error {
		if infoAbove {
			if err := b.addInfo(q.Info, defaultFontSize, ""); err != nil {
				return err
			}
		}
		for i, line := range q.QuestionLines {
			args := append([]string{letterPrefix(i, line)}, items...)
			b.doc.Append(texbuild.MarkLine(args...))
			weight++
		}
		b.doc.Anchor(refs.QuestionLabel(key))
		return nil
	})
	if err != nil {
		return 0, err
	}
	if weight == 0 {
		weight = 1
	}
	return weight, nil
}

// cappedRangeLabels drops boundary labels beyond the supported pair.
func (b *build) cappedRangeLabels(key string, rangeLabels []string) []string {
	if len(rangeLabels) > maxRangeLabels {
		b.log.Warn("only two range labels allowed, dropping the rest",
			zap.String("question", key),
			zap.Int("given", len(rangeLabels)))
		rangeLabels = rangeLabels[:maxRangeLabels]
	}
	return rangeLabels
}
