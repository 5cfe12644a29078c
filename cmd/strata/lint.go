package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"strata-hq/strata/pkg/traitfile"
)

var lintFlags struct {
	file   string
	dir    string
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate trait files",
	Long: `Validate trait files for syntax and semantic errors.

The lint command parses trait files and performs comprehensive validation:
  - YAML syntax validation
  - Trait structure validation (names, duplicate fields)
  - Type descriptor validation
  - Derived expression references

Examples:
  # Lint a single file
  strata lint --file traits.yaml

  # Lint a directory
  strata lint --dir traits/

  # JSON output for CI/CD
  strata lint --file traits.yaml --format json`,
	RunE: lintTraits,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "trait file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of trait files")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

func lintTraits(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string
	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}
	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.yaml"))
		if err != nil {
			return fmt.Errorf("failed to list trait files: %w", err)
		}
		ymlMatches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.yml"))
		if err != nil {
			return fmt.Errorf("failed to list trait files: %w", err)
		}
		files = append(files, matches...)
		files = append(files, ymlMatches...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no trait files found")
	}

	results := make([]LintResult, 0, len(files))
	for _, file := range files {
		results = append(results, lintFile(file))
	}

	if lintFlags.format == "json" {
		return outputJSON(results)
	}
	return outputText(results)
}

// LintResult represents the validation result for a single trait file.
type LintResult struct {
	File   string      `json:"file"`
	Valid  bool        `json:"valid"`
	Traits []string    `json:"traits,omitempty"`
	Errors []LintError `json:"errors,omitempty"`
}

// LintError represents a single validation error.
type LintError struct {
	Path       string `json:"path,omitempty"`
	Message    string `json:"message"`
	Type       string `json:"type,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func lintFile(path string) LintResult {
	result := LintResult{File: path, Valid: true}

	set, err := traitfile.ParseFile(path)
	if err != nil {
		result.Valid = false

		if errList, ok := err.(*traitfile.ErrorList); ok {
			for _, e := range errList.Errors {
				result.Errors = append(result.Errors, LintError{
					Path:       e.Path,
					Message:    e.Message,
					Type:       string(e.Type),
					Suggestion: e.Suggestion,
				})
			}
		} else {
			result.Errors = append(result.Errors, LintError{Message: err.Error()})
		}
		return result
	}

	result.Traits = set.Names()
	return result
}

func outputText(results []LintResult) error {
	totalErrors := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if result.Valid {
			fmt.Printf("✓ %d trait(s) valid\n", len(result.Traits))
			if verbose {
				for _, name := range result.Traits {
					fmt.Printf("  - %s\n", name)
				}
			}
			continue
		}

		for _, e := range result.Errors {
			fmt.Printf("✗ Error: %s", e.Message)
			if e.Path != "" {
				fmt.Printf(" (at %s)", e.Path)
			}
			fmt.Println()
			if e.Suggestion != "" {
				fmt.Printf("  suggestion: %s\n", e.Suggestion)
			}
			totalErrors++
		}
	}

	if totalErrors > 0 {
		return fmt.Errorf("validation failed with %d error(s)", totalErrors)
	}
	return nil
}

func outputJSON(results []LintResult) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}

	for _, result := range results {
		if !result.Valid {
			return fmt.Errorf("validation failed")
		}
	}
	return nil
}
