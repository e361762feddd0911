package depccg

import (
	"testing"
)

func TestResolveModelDirPrecedence(t *testing.T) {
	t.Run("env var wins", func(t *testing.T) {
		t.Setenv(EnvModelDir, "/from/env")

		dir, err := resolveModelDir("/from/config")
		if err != nil {
			t.Fatalf("resolveModelDir() error = %v", err)
		}
		if dir != "/from/env" {
			t.Errorf("resolveModelDir() = %q, want %q", dir, "/from/env")
		}
	})

	t.Run("configured dir", func(t *testing.T) {
		t.Setenv(EnvModelDir, "")

		dir, err := resolveModelDir("/from/config")
		if err != nil {
			t.Fatalf("resolveModelDir() error = %v", err)
		}
		if dir != "/from/config" {
			t.Errorf("resolveModelDir() = %q, want %q", dir, "/from/config")
		}
	})

	t.Run("platform default", func(t *testing.T) {
		t.Setenv(EnvModelDir, "")

		dir, err := resolveModelDir("")
		if err != nil {
			t.Fatalf("resolveModelDir() error = %v", err)
		}
		if dir == "" {
			t.Error("resolveModelDir() returned empty default")
		}
	})
}
