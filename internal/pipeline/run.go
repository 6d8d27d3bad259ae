// Package pipeline provides the high-level orchestration for turning a survey
// definition file into one or more typeset questionnaire documents.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/survey-maker/internal/assembly"
	"github.com/jonathan/survey-maker/internal/labels"
	"github.com/jonathan/survey-maker/internal/observability"
	"github.com/jonathan/survey-maker/internal/schemas"
	"github.com/jonathan/survey-maker/internal/types"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	SurveyPath string // Required: survey definition YAML file
	SchemaPath string // Optional: explicit schema path, resolved automatically when empty
	OutputDir  string // Overrides the output_directory from the survey file

	// Document
	Locale       string // dutch (default) or english
	MainColor    string // promote this category to primary
	NoColor      string // disable this category
	Draft        bool
	NoDate       bool
	NoAuthor     bool
	UseHouseFont bool

	// Variants
	ReviewReferences bool
	DVZReferences    bool
	AllVariants      bool // build plain, review and dvz variants in one run

	Verbose bool
	Logger  *zap.Logger
}

// Artifact describes one finished questionnaire document.
type Artifact struct {
	Path    string
	Variant string // "", "review" or "dvz"
	Result  *assembly.Result
}

// variant is one requested build of the same survey definition.
type variant struct {
	name   string
	review bool
	dvz    bool
}

// Run loads, validates and typesets a survey definition. Multiple variants of
// the same survey are built concurrently.
func Run(ctx context.Context, opts RunOptions) ([]Artifact, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	printer := observability.NewPrinter(os.Stdout)

	file, err := loadSurveyFile(opts.SurveyPath, opts.SchemaPath)
	if err != nil {
		return nil, err
	}

	categories := file.General.ColorizeQuestions
	if opts.MainColor != "" {
		categories, err = categories.Reorder(opts.MainColor)
		if err != nil {
			return nil, err
		}
	}
	if opts.NoColor != "" {
		categories, err = categories.Disable(opts.NoColor)
		if err != nil {
			return nil, err
		}
	}

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = file.General.OutputDirectory
	}
	if outputDir == "" {
		outputDir = "."
	}
	if file.General.WorkingDirectory != "" && !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(file.General.WorkingDirectory, outputDir)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	baseName := outputBaseName(opts.SurveyPath, &file.General.Preamble)
	variants := requestedVariants(opts)

	logger.Info("starting survey build",
		zap.String("survey", opts.SurveyPath),
		zap.String("output_dir", outputDir),
		zap.Int("variants", len(variants)))

	artifacts := make([]Artifact, len(variants))
	var mu sync.Mutex

	g, gCtx := errgroup.WithContext(ctx)
	for i, v := range variants {
		i, v := i, v
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			engine := assembly.New(logger.With(zap.String("variant", variantLabel(v))))
			builder, result, err := engine.BuildDocument(file.Questionnaire, categories, buildOptions(file, opts, v))
			if err != nil {
				return fmt.Errorf("building %s failed: %w", variantLabel(v), err)
			}

			path := filepath.Join(outputDir, outputFileName(baseName, v, opts.MainColor))
			if err := builder.Finalize(path); err != nil {
				return fmt.Errorf("writing %s failed: %w", path, err)
			}

			mu.Lock()
			artifacts[i] = Artifact{Path: path, Variant: v.name, Result: result}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Verbose {
		for i := range artifacts {
			printer.PrintBuildResult(artifacts[i].Path, artifacts[i].Result)
			printer.PrintCountSummary(artifacts[i].Result.Counts, categories)
			printer.PrintModuleCounts(artifacts[i].Result.Counts, file.Questionnaire)
		}
	}

	return artifacts, nil
}

// loadSurveyFile reads the survey definition, checks it against the JSON
// schema and decodes it into the typed model.
func loadSurveyFile(surveyPath, schemaPath string) (*types.SurveyFile, error) {
	if surveyPath == "" {
		return nil, fmt.Errorf("survey path is required")
	}

	if schemaPath == "" {
		schemaPath = schemas.ResolveSchemaPath(schemas.SurveySchemaPath)
	}
	if schemaPath != "" {
		if err := schemas.ValidateSurveyFile(schemaPath, surveyPath); err != nil {
			return nil, fmt.Errorf("survey definition is invalid: %w", err)
		}
	}

	data, err := os.ReadFile(surveyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey file: %w", err)
	}

	var file types.SurveyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse survey file: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	return &file, nil
}

// outputBaseName derives the output file stem from the survey file name plus
// the branch and version suffixes from the preamble.
func outputBaseName(surveyPath string, preamble *types.Preamble) string {
	stem := strings.TrimSuffix(filepath.Base(surveyPath), filepath.Ext(surveyPath))
	parts := append([]string{stem}, preamble.VersionSuffix()...)
	return strings.Join(parts, "_")
}

// outputFileName appends the variant and color suffixes and the .tex extension.
func outputFileName(baseName string, v variant, mainColor string) string {
	name := baseName
	if v.review {
		name += "_review"
	}
	if v.dvz {
		name += "_dvz"
	}
	if mainColor != "" {
		name += "_" + mainColor
	}
	return name + ".tex"
}

func variantLabel(v variant) string {
	if v.name == "" {
		return "questionnaire"
	}
	return v.name
}

// requestedVariants translates the run options into the list of builds.
func requestedVariants(opts RunOptions) []variant {
	if opts.AllVariants {
		return []variant{
			{name: ""},
			{name: "review", review: true},
			{name: "dvz", dvz: true},
		}
	}

	v := variant{review: opts.ReviewReferences, dvz: opts.DVZReferences}
	switch {
	case v.review && v.dvz:
		v.name = "review+dvz"
	case v.review:
		v.name = "review"
	case v.dvz:
		v.name = "dvz"
	}
	return []variant{v}
}

// buildOptions maps the survey file and run options onto assembly options.
func buildOptions(file *types.SurveyFile, opts RunOptions, v variant) assembly.Options {
	preamble := file.General.Preamble

	author := preamble.Author
	if opts.NoAuthor {
		author = ""
	}

	locale := opts.Locale
	if locale == "" {
		locale = labels.LocaleDutch
	}

	return assembly.Options{
		Title:            preamble.Title,
		Author:           author,
		Version:          preamble.EffectiveVersion(),
		Date:             preamble.Date,
		NoDate:           opts.NoDate,
		DocumentOptions:  preamble.DocumentOptions,
		Hyphenation:      file.General.Hyphenation,
		GeneralInfo:      file.General.Info,
		AddSummary:       file.General.Summary.Enabled(),
		SummaryTitle:     summaryTitle(file.General.Summary),
		ReviewReferences: v.review,
		DVZReferences:    v.dvz,
		UseHouseFont:     opts.UseHouseFont,
		Draft:            opts.Draft,
		Locale:           locale,
	}
}

func summaryTitle(s *types.SummarySection) string {
	if s == nil {
		return ""
	}
	return s.Title
}
