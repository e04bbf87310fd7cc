package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{Use: "seed", SilenceUsage: true, SilenceErrors: true}
	rootCmd.PersistentFlags().StringP("file", "f", "", "")
	rootCmd.PersistentFlags().Bool("json", false, "")
	rootCmd.AddCommand(newLoadCmd(), newValidateCmd())
	return rootCmd
}

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "family.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	return path
}

const family = `
people:
  - {key: a, name: A, gender: male}
  - {key: b, name: B, gender: female}
marriages:
  - [a, b]
`

func TestValidateCmd(t *testing.T) {
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"validate", "-f", writeSeed(t, family)})
	if err := root.Execute(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(out.String(), "ok: 2 people, 1 marriages") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestValidateCmdFailsOnBadFile(t *testing.T) {
	root := newTestRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"validate", "-f", writeSeed(t, "people:\n  - {key: a, name: A, gender: robot}\n")})
	if err := root.Execute(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadCmdMemory(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("LOG_MODE", "production")
	root := newTestRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"load", "--memory", "-f", writeSeed(t, family)})
	if err := root.Execute(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !strings.Contains(out.String(), "loaded 2 people, 1 marriages, 0 parent edges") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
