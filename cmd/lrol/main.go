// lrol parses, validates and analyzes LROL (Loci Risk Orchestration Language)
// rule documents.
//
// Usage:
//
//	# Print a model summary
//	lrol parse -f rules/kyc.json
//
//	# Validate one file, a directory, or a Git repository
//	lrol validate -f rules/kyc.json
//	lrol validate -d rules/ --record
//	lrol validate --git https://github.com/acme/risk-rules.git --branch main --path rules
//
//	# Complexity and maintainability report
//	lrol analyze -f rules/kyc.json -o json
//
//	# Re-validate a rule directory on every change
//	lrol watch -d rules/
//
//	# Inspect recorded validation runs
//	lrol history list
package main

func main() {
	Execute()
}
