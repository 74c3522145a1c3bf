package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const validRule = `{
  "model_id": "kyc_basic",
  "name": "KYC basic",
  "description": "Flags large transfers",
  "threshold": 0.7,
  "evaluations": [
    {"name": "large_amount", "type": "comparison", "left": "transaction.amount", "operator": ">", "right": 10000, "weight": 3},
    {"name": "new_account", "type": "comparison", "left": "account.age_days", "operator": "<", "right": 30, "weight": 2},
    {"name": "risky", "type": "logical", "operator": "AND", "operands": ["large_amount", "new_account"]}
  ],
  "actions": [{"type": "flag_transaction", "reason": "Large transfer from a new account"}]
}`

const duplicateRule = `{
  "model_id": "dup",
  "name": "Duplicates",
  "threshold": 0.5,
  "evaluations": [
    {"name": "a", "type": "comparison", "left": "x", "operator": ">", "right": 1},
    {"name": "a", "type": "comparison", "left": "y", "operator": "<", "right": 2}
  ],
  "actions": [{"type": "flag_transaction", "reason": "r"}]
}`

const brokenRule = `{
  "model_id": "broken"
  "name": "Broken"
}`

func writeRule(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// resetFlags restores every flag to its default so commands can be executed
// repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// writeConfig writes a config file recording history to a SQLite database in
// dir and returns its path.
func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	content := "history:\n" +
		"  backend: sqlite\n" +
		"  sqlite:\n" +
		"    driver: sqlite\n" +
		"    path: " + filepath.Join(dir, "history.db") + "\n" +
		"telemetry:\n" +
		"  logging:\n" +
		"    level: error\n"
	return writeRule(t, dir, "lrol.yaml", content)
}
