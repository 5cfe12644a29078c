package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"strata-hq/strata/pkg/engine"
	"strata-hq/strata/pkg/traitfile"
	"strata-hq/strata/pkg/typedesc"
)

var checkFlags struct {
	traits            string
	trait             string
	value             string
	format            string
	noNumericWidening bool
	noOptionalWiden   bool
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a value document against a trait",
	Long: `Check a YAML or JSON value document against a named trait.

The value document is decoded and evaluated against the trait's field
requirements. On failure the full diagnostic report is printed: missing
fields, type conflicts, and human-readable reasons.

Examples:
  # Check a value against a trait
  strata check --traits traits.yaml --trait Person --value person.yaml

  # Disable numeric widening (int no longer satisfies float)
  strata check --traits traits.yaml --trait Metrics --value m.yaml --no-numeric-widening

  # JSON report for CI/CD
  strata check --traits traits.yaml --trait Person --value person.yaml --format json`,
	RunE: checkValue,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&checkFlags.traits, "traits", "t", "", "trait file or directory")
	checkCmd.Flags().StringVar(&checkFlags.trait, "trait", "", "trait name to check against")
	checkCmd.Flags().StringVar(&checkFlags.value, "value", "", "YAML or JSON value document")
	checkCmd.Flags().StringVar(&checkFlags.format, "format", "text", "output format: text, json")
	checkCmd.Flags().BoolVar(&checkFlags.noNumericWidening, "no-numeric-widening", false, "reject int where float is expected")
	checkCmd.Flags().BoolVar(&checkFlags.noOptionalWiden, "no-optional-widening", false, "reject bare values where optional<T> is expected")
}

func checkValue(cmd *cobra.Command, args []string) error {
	if checkFlags.traits == "" || checkFlags.trait == "" || checkFlags.value == "" {
		return fmt.Errorf("--traits, --trait, and --value must all be specified")
	}

	manager, err := traitfile.NewManager(&traitfile.ManagerConfig{Path: checkFlags.traits})
	if err != nil {
		return err
	}
	if err := manager.Load(); err != nil {
		return fmt.Errorf("failed to load traits: %w", err)
	}

	expr, ok := manager.Get(checkFlags.trait)
	if !ok {
		return fmt.Errorf("trait %q not found in %s (available: %v)",
			checkFlags.trait, checkFlags.traits, manager.Registry().Names())
	}

	data, err := os.ReadFile(checkFlags.value)
	if err != nil {
		return fmt.Errorf("failed to read value document: %w", err)
	}
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("failed to decode value document: %w", err)
	}

	policy := typedesc.DefaultPolicy()
	if checkFlags.noNumericWidening {
		policy.AllowNumericWidening = false
	}
	if checkFlags.noOptionalWiden {
		policy.AllowOptionalWidening = false
	}

	verdict := engine.ExplainWith(value, expr, policy)

	if checkFlags.format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(checkReport(verdict)); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		printVerdict(verdict)
	}

	if !verdict.OK {
		return fmt.Errorf("value does not satisfy trait %q", checkFlags.trait)
	}
	return nil
}

// CheckReport is the JSON form of a verdict.
type CheckReport struct {
	OK            bool     `json:"ok"`
	Missing       []string `json:"missing,omitempty"`
	TypeConflicts []string `json:"type_conflicts,omitempty"`
	Reasons       []string `json:"reasons,omitempty"`
}

func checkReport(v engine.Verdict) CheckReport {
	report := CheckReport{
		OK:      v.OK,
		Missing: v.Missing,
		Reasons: v.Reasons,
	}
	for _, c := range v.TypeConflicts {
		report.TypeConflicts = append(report.TypeConflicts, c.String())
	}
	return report
}

func printVerdict(v engine.Verdict) {
	if v.OK {
		fmt.Println("✓ value satisfies the trait")
		return
	}

	fmt.Println("✗ value does not satisfy the trait")
	for _, name := range v.Missing {
		fmt.Printf("  missing: %s\n", name)
	}
	for _, c := range v.TypeConflicts {
		fmt.Printf("  conflict: %s\n", c.String())
	}
	if verbose {
		for _, reason := range v.Reasons {
			fmt.Printf("  reason: %s\n", reason)
		}
	}
}
