package hooks

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg != nil {
		t.Errorf("LoadConfig() = %+v, want nil when file is missing", cfg)
	}
}

func TestLoadConfig_Valid(t *testing.T) {
	dir := t.TempDir()
	content := `version: 1
hooks:
  post_commit:
    command: echo committed {{session}}
    timeout: 10
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write hooks config: %v", err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg == nil || cfg.Hooks.PostCommit == nil {
		t.Fatal("expected post_commit hook to be loaded")
	}
	if cfg.Hooks.PostCommit.Command != "echo committed {{session}}" {
		t.Errorf("unexpected command: %s", cfg.Hooks.PostCommit.Command)
	}
	if cfg.Hooks.PostCommit.Timeout != 10 {
		t.Errorf("unexpected timeout: %d", cfg.Hooks.PostCommit.Timeout)
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("{not yaml: ["), 0644); err != nil {
		t.Fatalf("failed to write hooks config: %v", err)
	}

	if _, err := LoadConfig(dir); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestExecute_ExpandsVariables(t *testing.T) {
	hook := &HookConfig{Command: "echo {{session}} rev {{revision}}"}

	out, err := Execute(context.Background(), hook, t.TempDir(), Variables{Session: "mysite", Revision: "4"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "mysite rev 4") {
		t.Errorf("output missing expanded variables: %q", out)
	}
}

func TestExecute_NilHook(t *testing.T) {
	out, err := Execute(context.Background(), nil, t.TempDir(), Variables{})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestExecute_CommandFailure(t *testing.T) {
	hook := &HookConfig{Command: "exit 3"}

	out, err := Execute(context.Background(), hook, t.TempDir(), Variables{})
	if err != nil {
		t.Fatalf("Execute() should not return error on command failure, got %v", err)
	}
	if !strings.Contains(out, "Hook command failed") {
		t.Errorf("output should report failure, got %q", out)
	}
}

func TestExecute_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	hook := &HookConfig{Command: "sleep 5", Timeout: 10}
	start := time.Now()
	_, err := Execute(ctx, hook, t.TempDir(), Variables{})
	if err == nil {
		t.Error("expected error for cancelled context")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("cancelled hook should return promptly")
	}
}
