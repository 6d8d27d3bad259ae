// Package assembly implements the document assembly engine: the recursive
// traversal over modules, sections and questions that emits typesetting
// primitives in declaration order, applies the colorize rules, resolves
// redirections, accumulates the question counts and closes with the count
// summary.
package assembly

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/survey-maker/internal/colorize"
	"github.com/jonathan/survey-maker/internal/counting"
	"github.com/jonathan/survey-maker/internal/labels"
	"github.com/jonathan/survey-maker/internal/redirect"
	"github.com/jonathan/survey-maker/internal/texbuild"
	"github.com/jonathan/survey-maker/internal/types"
)

// Default layout settings, overridable per build and per question.
const (
	DefaultLabelWidth = "2.8cm"
	DefaultBoxWidth   = "4"
	defaultFontSize   = "footnotesize"
)

// Options configures one document build.
type Options struct {
	Title            string
	Author           string
	Version          string // version string shown in the page header; caller-supplied
	Date             string // empty means today's date
	NoDate           bool   // suppress the date line entirely
	DocumentOptions  []string
	Hyphenation      []string
	GeneralInfo      *types.InfoBlock // front-matter info block from the general section
	GlobalLabelWidth string
	GlobalBoxWidth   string
	AddSummary       bool
	SummaryTitle     string
	ReviewReferences bool
	DVZReferences    bool
	UseHouseFont     bool
	Draft            bool
	Locale           string // defaults to dutch
	BuildDate        string // stamped in the questionnaire header; empty means today
}

// Result carries the bookkeeping computed alongside the rendered document.
type Result struct {
	BuildID  uuid.UUID
	Counts   *counting.Accumulator
	Warnings int // soft-skipped questions; callers can assert zero
}

// Engine builds questionnaire documents. One engine can serve many builds;
// each build owns its own builder and count state.
type Engine struct {
	logger *zap.Logger
}

// New returns an engine logging through the given logger.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// build is the state of one document build: the output buffer, the resolved
// collaborators and the count accumulator, owned exclusively for the
// duration of the call.
type build struct {
	doc      *texbuild.Builder
	def      types.SurveyDefinition
	rules    *colorize.Engine
	redirect *redirect.Resolver
	labels   *labels.Set
	counts   *counting.Accumulator
	opts     Options
	log      *zap.Logger
	warnings int
}

// BuildDocument walks the survey definition and returns the filled document
// builder together with the final count state. A fatal configuration error
// aborts the build; no partial output is considered valid.
func (e *Engine) BuildDocument(def types.SurveyDefinition, categories types.CategorySet, opts Options) (*texbuild.Builder, *Result, error) {
	if err := def.Validate(); err != nil {
		return nil, nil, err
	}

	if opts.Locale == "" {
		opts.Locale = labels.LocaleDutch
	}
	if opts.GlobalLabelWidth == "" {
		opts.GlobalLabelWidth = DefaultLabelWidth
	}
	if opts.GlobalBoxWidth == "" {
		opts.GlobalBoxWidth = DefaultBoxWidth
	}

	labelSet, err := labels.ForLocale(opts.Locale)
	if err != nil {
		return nil, nil, err
	}

	rules, err := colorize.NewEngine(categories, opts.ReviewReferences, opts.DVZReferences)
	if err != nil {
		return nil, nil, err
	}

	buildID := uuid.New()
	b := &build{
		doc:      texbuild.NewBuilder(documentClass(opts)),
		def:      def,
		rules:    rules,
		redirect: redirect.NewResolver(labelSet),
		labels:   labelSet,
		counts:   counting.NewAccumulator(categories, rules.EligibleKeys()),
		opts:     opts,
		log:      e.logger.With(zap.String("build_id", buildID.String())),
	}

	b.log.Info("starting document build",
		zap.Int("modules", len(def)),
		zap.String("locale", opts.Locale))

	b.writePreamble(buildID)
	if err := b.writeBody(); err != nil {
		return nil, nil, err
	}

	result := &Result{BuildID: buildID, Counts: b.counts, Warnings: b.warnings}
	b.reportCounts()
	return b.doc, result, nil
}

// documentClass builds the documentclass command, preceded by the package
// juggling the sdaps class needs: extra xcolor names, the scrpage2
// replacement and the ifpdf/ifluatex preloads that suppress its warnings.
func documentClass(opts Options) texbuild.Command {
	docOpts := opts.DocumentOptions
	if docOpts == nil {
		docOpts = []string{localeOption(opts.Locale), "final", "oneside", "a4paper"}
	}
	return texbuild.Command{
		Name: `PassOptionsToPackage{dvipsnames,usenames}{xcolor}` +
			`\RequirePackage{scrlfile}` +
			`\ReplacePackage{scrpage2}{scrlayer-scrpage}` +
			`\RequirePackage{ifpdf}` +
			`\RequirePackage{ifluatex}` +
			`\documentclass`,
		Options:   docOpts,
		Arguments: []string{"sdaps"},
	}
}

func localeOption(locale string) string {
	if locale == labels.LocaleEnglish {
		return "english"
	}
	return "dutch"
}

// namedColors is the palette of named color slots survey definitions can
// refer to.
var namedColors = []string{
	`definecolor{cbsblauw}{RGB}{39, 29, 108}`,
	`definecolor{cbslichtblauw}{RGB}{0, 161, 205}`,
	`definecolor{oranje}{RGB}{243, 146, 0}`,
	`definecolor{oranjevergrijsd}{RGB}{206, 124, 0}`,
	`definecolor{rood}{RGB}{233, 76, 10}`,
	`definecolor{roodvergrijsd}{RGB}{178, 61, 2}`,
	`definecolor{codekleur}{RGB}{88, 88, 88}`,
}

func (b *build) writePreamble(buildID uuid.UUID) {
	doc := b.doc
	doc.Preamble(texbuild.Text(fmt.Sprintf("%% survey-maker build %s", buildID)))

	if b.opts.UseHouseFont {
		doc.Preamble(texbuild.Command{Name: "usepackage", Arguments: []string{"fontspec"}})
		doc.Preamble(texbuild.Command{Name: "setmainfont", Options: []string{`Ligatures={Common,TeX}`, `Numbers={Lining}`}, Arguments: []string{"Calibri"}})
		doc.Preamble(texbuild.Command{Name: "setmonofont", Options: []string{`Ligatures={Common,TeX}`, `Scale=MatchLowercase`}, Arguments: []string{"Consolas"}})
		doc.Preamble(texbuild.Command{Name: "setsansfont", Options: []string{`Ligatures={Common,TeX}`}, Arguments: []string{"Cambria"}})
		doc.Preamble(texbuild.Command{Name: `newfontfamily\serif`, Arguments: []string{"Cambria"}})
	}

	if b.opts.Draft {
		doc.Preamble(texbuild.Command{Name: "usepackage", Arguments: []string{"background"}})
		doc.Preamble(texbuild.Command{Name: "backgroundsetup", Arguments: []string{
			`position=current page.north west,angle=0,nodeanchor=north west,` +
				`vshift=-2 mm,hshift=2 mm,opacity=1,scale=3,contents=Draft`}})
	}

	if len(b.opts.Hyphenation) > 0 {
		words := ""
		for i, w := range b.opts.Hyphenation {
			if i > 0 {
				words += " "
			}
			words += w
		}
		doc.Preamble(texbuild.Command{Name: "hyphenation", Arguments: []string{words}})
	}

	dateAndVersion := ""
	if !b.opts.NoDate {
		date := b.opts.Date
		if date == "" {
			date = `\today`
		}
		dateAndVersion = date + `\\`
	}
	dateAndVersion += b.opts.Version

	doc.Preamble(texbuild.Command{Name: "title", Arguments: []string{texbuild.Escape(b.opts.Title)}})
	doc.Preamble(texbuild.Command{Name: "author", Arguments: []string{texbuild.Escape(b.opts.Author)}})
	doc.Preamble(texbuild.Command{Name: "date", Arguments: []string{dateAndVersion}})
	doc.Preamble(texbuild.Command{Name: "usepackage", Arguments: []string{"booktabs"}})
	doc.Preamble(texbuild.Command{Name: "usepackage", Arguments: []string{"tocloft"}})
	doc.Preamble(texbuild.Command{Name: "makeatletter"})
	if b.opts.Version != "" {
		doc.Preamble(texbuild.Command{Name: "chead[]", Arguments: []string{`\@title\\Version ` + b.opts.Version}})
	} else {
		doc.Preamble(texbuild.Command{Name: "chead[]", Arguments: []string{`\@title`}})
	}
	doc.Preamble(texbuild.Command{
		Name:      `newcommand{\sectionwithlabel}[2]`,
		Arguments: []string{`\phantomsection #1\def\@currentlabel{\unexpanded{#1}}\label{#2}`},
	})
	doc.Preamble(texbuild.Command{Name: "makeatother"})
	doc.Preamble(texbuild.Command{Name: `newcommand\supscript[1]`, Arguments: []string{`{$^{\textrm{#1}}$}`}})
	doc.Preamble(texbuild.Command{Name: `newcommand\subscript[1]`, Arguments: []string{`{$_{\textrm{#1}}$}`}})
	doc.Preamble(texbuild.Command{Name: `newcommand\explanation[1]`, Arguments: []string{`\newline\footnotesize{\emph{#1}}`}})
	// the filbreak avoids a lonely section header at the bottom of a page
	doc.Preamble(texbuild.Command{Name: `newcommand\modulesection[2]`, Arguments: []string{`\filbreak{\sectionwithlabel{\textbf{#1}}{#2}}`}})
	doc.Preamble(texbuild.Command{Name: `setcounter{tocdepth}`, Arguments: []string{"1"}})
	doc.Preamble(texbuild.Command{
		Name: fmt.Sprintf(`addto\captions%s{\renewcommand{\contentsname}{\Large\textbf{%s}}}`,
			localeOption(b.opts.Locale), b.labels.ModulesContents),
	})

	for _, line := range namedColors {
		doc.Preamble(texbuild.Command{Name: line})
	}

	b.writeColorCommands()
}

// writeColorCommands declares one \color<key> command per eligible category.
// The first eligible category is the primary one: it additionally receives
// the line-level \colorline command and the block-level colorize environment.
func (b *build) writeColorCommands() {
	primary, hasPrimary := b.rules.Primary()
	for _, entry := range b.rules.Categories() {
		if !b.rules.Eligible(entry.Category) {
			continue
		}
		b.doc.Preamble(texbuild.Command{
			Name:      `newcommand\color` + entry.Key + `[1]`,
			Arguments: []string{`{\color{` + entry.Category.Color + `}{#1}}`},
		})
	}
	if hasPrimary {
		b.doc.Preamble(texbuild.Command{
			Name:      `newcommand\colorline[1]`,
			Arguments: []string{`{\color{` + primary.Color + `}{#1}}`},
		})
		b.doc.Preamble(texbuild.Command{
			Name: `newenvironment{colorize}[1][` + primary.Color + `]` +
				`{\medskip\bgroup\color{#1}}{\egroup\medskip}`,
		})
	}
}

func (b *build) writeBody() error {
	doc := b.doc
	doc.Append(texbuild.Command{Name: "maketitle"})
	doc.Append(texbuild.Command{Name: "tableofcontents*"})
	doc.Append(texbuild.Command{Name: "newpage"})
	doc.Append(texbuild.Command{Name: "appendix"})

	return doc.Scope(texbuild.Questionnaire("noinfo"), func() error {
		if b.opts.GeneralInfo != nil {
			doc.Append(texbuild.VSpace(`\parskip`))
			doc.Append(texbuild.ModuleSection(b.labels.QuestionNotes, "toelichting"))
			if err := b.addInfo(b.opts.GeneralInfo, "normalsize", ""); err != nil {
				return err
			}
		}

		if err := b.writeColorExplanations(); err != nil {
			return err
		}

		buildDate := b.opts.BuildDate
		if buildDate == "" {
			buildDate = time.Now().Format("02.01.2006")
		}
		doc.Append(texbuild.AddInfo("Date", buildDate))

		if err := b.addAllModules(); err != nil {
			return err
		}

		return b.makeReport()
	})
}

// writeColorExplanations renders the front-matter block explaining each
// eligible category in its own color.
func (b *build) writeColorExplanations() error {
	explanations := b.rules.Explanations()
	if !b.rules.HasAny() || len(explanations) == 0 {
		return nil
	}
	b.doc.Append(texbuild.VSpace(`\parskip`))
	b.doc.Append(texbuild.ModuleSection(b.labels.ColorNotes, "kleuren"))
	return b.doc.Scope(texbuild.Itemize(), func() error {
		for _, expl := range explanations {
			line := `\color` + expl.Key + `{` + expl.Text + `}`
			b.writeInfoLeaf(line, defaultFontSize, true)
		}
		return nil
	})
}

// reportCounts logs the final global counts.
func (b *build) reportCounts() {
	for _, key := range b.counts.Keys() {
		b.log.Info("count",
			zap.String("quantity", b.displayName(key)),
			zap.Int("value", b.counts.Value(key)))
	}
}
