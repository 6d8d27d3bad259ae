package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/survey-maker/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate <survey file>",
	Short: "Validate a survey definition file against the schema",
	Long:  "Checks a survey definition YAML file against the survey JSON schema without building the document.",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var validateSchemaFile string

func init() {
	validateCmd.Flags().StringVar(&validateSchemaFile, "schema", "", "Path to the survey schema (resolved automatically when empty)")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	schemaPath := validateSchemaFile
	if schemaPath == "" {
		schemaPath = schemas.ResolveSchemaPath(schemas.SurveySchemaPath)
		if schemaPath == "" {
			return fmt.Errorf("survey schema not found; pass --schema explicitly")
		}
	}

	if err := schemas.ValidateSurveyFile(schemaPath, args[0]); err != nil {
		return err
	}

	fmt.Printf("%s is valid\n", args[0])
	return nil
}
