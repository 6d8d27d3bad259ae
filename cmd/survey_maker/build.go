package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/survey-maker/internal/config"
	"github.com/jonathan/survey-maker/internal/labels"
	"github.com/jonathan/survey-maker/internal/pipeline"
)

var buildCmd = &cobra.Command{
	Use:   "build [survey file]",
	Short: "Build a questionnaire document from a survey definition",
	Long:  "Validates the survey definition file, applies any category overrides and writes the typeset questionnaire to the output directory. The survey file may also come from the config file's \"survey\" entry.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

var (
	buildConfigFile   string
	buildOutputDir    string
	buildColor        string
	buildNoColor      string
	buildEnglish      bool
	buildDraft        bool
	buildNoDate       bool
	buildNoAuthor     bool
	buildUseHouseFont bool
	buildReview       bool
	buildDVZ          bool
	buildAllVariants  bool
	buildVerbose      bool
	buildDebug        bool
)

func init() {
	buildCmd.Flags().StringVarP(&buildConfigFile, "config", "c", "", "Path to JSON config file with flag defaults")
	buildCmd.Flags().StringVarP(&buildOutputDir, "out-dir", "o", "", "Output directory (overrides the survey file setting)")
	buildCmd.Flags().StringVar(&buildColor, "color", "", "Promote this colorize category to primary")
	buildCmd.Flags().StringVar(&buildNoColor, "no-color", "", "Disable this colorize category")
	buildCmd.Flags().BoolVar(&buildEnglish, "english", false, "Use English labels instead of Dutch")
	buildCmd.Flags().BoolVar(&buildDraft, "draft", false, "Add a draft watermark")
	buildCmd.Flags().BoolVar(&buildNoDate, "no-date", false, "Suppress the date on the title page")
	buildCmd.Flags().BoolVar(&buildNoAuthor, "no-author", false, "Suppress the author on the title page")
	buildCmd.Flags().BoolVar(&buildUseHouseFont, "use-house-font", false, "Typeset with the house font")
	buildCmd.Flags().BoolVar(&buildReview, "review-references", false, "Build the internal review variant")
	buildCmd.Flags().BoolVar(&buildDVZ, "dvz-references", false, "Build the provenance reference variant")
	buildCmd.Flags().BoolVar(&buildAllVariants, "all-variants", false, "Build the plain, review and dvz variants in one run")
	buildCmd.Flags().BoolVarP(&buildVerbose, "verbose", "v", false, "Print count summaries after the build")
	buildCmd.Flags().BoolVar(&buildDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	cfg := config.Config{
		OutputDir:        buildOutputDir,
		Color:            buildColor,
		NoColor:          buildNoColor,
		Draft:            buildDraft,
		NoDate:           buildNoDate,
		UseHouseFont:     buildUseHouseFont,
		ReviewReferences: buildReview,
		DVZReferences:    buildDVZ,
		Verbose:          buildVerbose,
	}
	if len(args) > 0 {
		cfg.Survey = args[0]
	}
	if buildEnglish {
		cfg.Locale = labels.LocaleEnglish
	}

	if buildConfigFile != "" {
		fileCfg, err := config.LoadConfig(buildConfigFile)
		if err != nil {
			return err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.Survey == "" {
		return fmt.Errorf("no survey file: pass one as an argument or set \"survey\" in the config file")
	}
	// validated after merging so an argument can override a stale config entry
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := pipeline.RunOptions{
		SurveyPath:       cfg.Survey,
		OutputDir:        cfg.OutputDir,
		Locale:           cfg.Locale,
		MainColor:        cfg.Color,
		NoColor:          cfg.NoColor,
		Draft:            cfg.Draft,
		NoDate:           cfg.NoDate,
		NoAuthor:         buildNoAuthor,
		UseHouseFont:     cfg.UseHouseFont,
		ReviewReferences: cfg.ReviewReferences,
		DVZReferences:    cfg.DVZReferences,
		AllVariants:      buildAllVariants,
		Verbose:          cfg.Verbose,
	}

	logger, err := newLogger(buildDebug)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	opts.Logger = logger

	artifacts, err := pipeline.Run(context.Background(), opts)
	if err != nil {
		return err
	}

	for _, artifact := range artifacts {
		fmt.Printf("Wrote %s\n", artifact.Path)
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
