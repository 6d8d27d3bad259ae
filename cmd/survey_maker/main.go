// Package main provides the entry point for the survey_maker CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "survey_maker",
	Short: "Questionnaire generator",
	Long:  "survey_maker turns a structured survey definition file into a typeset, machine-readable questionnaire document.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
