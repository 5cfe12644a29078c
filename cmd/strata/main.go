// Strata is a structural type-compatibility engine and trait toolkit.
//
// It checks runtime values against declarative trait definitions: named
// fields with expected types, combined through union, intersect, and
// minus, compared under a configurable policy.
//
// Usage:
//
//	# Validate trait files
//	strata lint --file traits.yaml
//
//	# Check a value document against a trait
//	strata check --traits traits.yaml --trait Person --value person.yaml
//
//	# Show version information
//	strata version
package main

func main() {
	Execute()
}
