package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCmd_RequiresExactlyOneArg(t *testing.T) {
	for _, args := range [][]string{{}, {"a", "b"}} {
		root := newRootCmd()
		root.SetOut(&bytes.Buffer{})
		root.SetErr(&bytes.Buffer{})
		root.SetArgs(args)
		if err := root.Execute(); err == nil {
			t.Fatalf("expected arg error for %v", args)
		}
	}
}

func TestRootCmd_RequiresAPIKey(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{t.TempDir()})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "OPENROUTER_API_KEY") {
		t.Fatalf("expected missing-key error, got %v", err)
	}
}

func TestRootCmd_MissingConfigFile(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{t.TempDir(), "--config", filepath.Join(t.TempDir(), "nope.yaml")})

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestRootCmd_RejectsNonHTTPSBaseURL(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_BASE_URL", "http://openrouter.ai")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{t.TempDir()})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "config:") {
		t.Fatalf("expected base URL rejection, got %v", err)
	}
}

func TestRootCmd_VideoDirMustExist(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_BASE_URL", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{filepath.Join(t.TempDir(), "missing")})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "video directory") {
		t.Fatalf("expected video-directory error, got %v", err)
	}
}
