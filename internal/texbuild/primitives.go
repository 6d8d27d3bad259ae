// Package texbuild provides the document builder: named, nestable LaTeX
// environments and commands with an append/scope contract, rendered to a
// .tex source file.
package texbuild

import "strings"

// Primitive is one leaf element of the output buffer: a raw text line, a
// command, or a table row. Question text and info blocks carry their own
// LaTeX markup, so primitives never escape their content; callers escape
// plain text with Escape where needed.
type Primitive interface {
	Tex() string
}

// Text is a raw line of LaTeX source.
type Text string

// Tex renders the text unchanged.
func (t Text) Tex() string { return string(t) }

// Command is a LaTeX command with optional options and arguments:
// \name[o1,o2]{a1}{a2}.
type Command struct {
	Name      string
	Options   []string
	Arguments []string
}

// Tex renders the command.
func (c Command) Tex() string {
	var sb strings.Builder
	sb.WriteString(`\`)
	sb.WriteString(c.Name)
	if len(c.Options) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(c.Options, ","))
		sb.WriteString("]")
	}
	for _, arg := range c.Arguments {
		sb.WriteString("{")
		sb.WriteString(arg)
		sb.WriteString("}")
	}
	return sb.String()
}

// Environment describes a nestable scope: \begin{name}[opts]{args} ... \end{name}.
type Environment struct {
	Name      string
	Options   []string
	Arguments []string
}

func (e Environment) begin() string {
	var sb strings.Builder
	sb.WriteString(`\begin{`)
	sb.WriteString(e.Name)
	sb.WriteString("}")
	if len(e.Options) > 0 {
		sb.WriteString("[")
		sb.WriteString(strings.Join(e.Options, ","))
		sb.WriteString("]")
	}
	for _, arg := range e.Arguments {
		sb.WriteString("{")
		sb.WriteString(arg)
		sb.WriteString("}")
	}
	return sb.String()
}

func (e Environment) end() string {
	return `\end{` + e.Name + "}"
}

// The named environments of the questionnaire document class.

// Questionnaire is the outer environment wrapping all modules.
func Questionnaire(options ...string) Environment {
	return Environment{Name: "questionnaire", Options: options}
}

// Colorize wraps its content in the named color.
func Colorize(color string) Environment {
	return Environment{Name: "colorize", Options: []string{color}}
}

// Info is a boxed informational block.
func Info() Environment {
	return Environment{Name: "info"}
}

// Itemize is a bulleted list scope.
func Itemize() Environment {
	return Environment{Name: "itemize"}
}

// Tabular is a table scope with the given column layout.
func Tabular(colspec string) Environment {
	return Environment{Name: "tabular", Arguments: []string{colspec}}
}

// QuantityQuestion is the markgroup environment holding quantity boxes.
func QuantityQuestion(question string) Environment {
	return Environment{Name: "markgroup", Arguments: []string{question}}
}

// ChoiceQuestion holds the choice items of a multiple-choice question.
func ChoiceQuestion(columns string, question string) Environment {
	return Environment{Name: "choicequestion", Options: []string{columns}, Arguments: []string{question}}
}

// ChoiceGroupQuestion holds the group headers and choice lines of a matrix
// question.
func ChoiceGroupQuestion(question string) Environment {
	return Environment{Name: "choicegroup", Arguments: []string{question}}
}

// RangeGroupQuestion holds the mark lines of a grouped range question.
func RangeGroupQuestion(question string) Environment {
	return Environment{Name: "rangegroup", Arguments: []string{question}}
}

// The named commands of the questionnaire document class.

// ChoiceItem is one selectable choice.
func ChoiceItem(text string) Command {
	return Command{Name: "choiceitem", Arguments: []string{text}}
}

// ChoiceItemText is one labeled quantity box.
func ChoiceItemText(height, boxWidth, label string) Command {
	return Command{Name: "choiceitemtext", Arguments: []string{height, boxWidth, label}}
}

// ChoiceLine is one row of a choicegroup matrix.
func ChoiceLine(text string) Command {
	return Command{Name: "choiceline", Arguments: []string{text}}
}

// GroupAddChoice adds one column header to a choicegroup matrix.
func GroupAddChoice(text string) Command {
	return Command{Name: "groupaddchoice", Arguments: []string{text}}
}

// TextBox is a free-text answer box.
func TextBox(width, question string) Command {
	return Command{Name: "textbox*", Arguments: []string{width, question}}
}

// SingleMark is a single range question with its boundary labels.
func SingleMark(args ...string) Command {
	return Command{Name: "singlemark", Arguments: args}
}

// MarkLine is one row of a rangegroup question.
func MarkLine(args ...string) Command {
	return Command{Name: "markline", Arguments: args}
}

// ModuleSection is a sub-heading within a module, bound to an anchor. The
// title is plain text and gets escaped; the anchor passes through untouched.
func ModuleSection(title, anchor string) Command {
	return Command{Name: "modulesection", Arguments: []string{Escape(title), anchor}}
}

// AddInfo adds a key/value information line to the questionnaire header.
func AddInfo(key, value string) Command {
	return Command{Name: "addinfo", Arguments: []string{key, value}}
}

// VSpace inserts vertical space.
func VSpace(amount string) Command {
	return Command{Name: "vspace", Arguments: []string{amount}}
}

// Section starts a numbered document section bound to an anchor. The title
// is plain text and gets escaped; the anchor passes through untouched.
func Section(title, anchor string) []Primitive {
	return []Primitive{
		Command{Name: "section", Arguments: []string{Escape(title)}},
		Command{Name: "label", Arguments: []string{anchor}},
	}
}
