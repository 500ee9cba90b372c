package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// setupCLITestEnv isolates HOME so default config, cache, and log paths land
// in the test's temp tree. Returns the path commands should pass via --config.
func setupCLITestEnv(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	configPath := filepath.Join(homeDir, ".config", "captionburn", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := "[paths]\nstaging_dir = " + tomlQuote(filepath.Join(base, "staging")) + "\n" +
		"cache_dir = " + tomlQuote(filepath.Join(base, "cache")) + "\n" +
		"log_dir = " + tomlQuote(filepath.Join(base, "logs")) + "\n" +
		"[transcript]\ncache_enabled = false\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func tomlQuote(value string) string {
	return "\"" + strings.ReplaceAll(value, "\\", "\\\\") + "\""
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
