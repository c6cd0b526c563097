package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CALC_GEMINI_API_KEY", "CALC_GEMINI_BASE_URL", "CALC_GEMINI_MODEL"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
gemini:
  model: gemini-pro
  timeout: 5s
plot:
  x_start: -1
  x_end: 1
  step: 0.5
ui:
  theme: light
  mode: basic
logging:
  file: /tmp/calc.log
  level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := DefaultConfig()
	want.Gemini.Model = "gemini-pro"
	want.Gemini.Timeout = "5s"
	want.Plot.XStart, want.Plot.XEnd, want.Plot.Step = -1, 1, 0.5
	want.UI = UIConfig{Theme: ThemeLight, Mode: ModeBasic}
	want.Logging = LoggingConfig{File: "/tmp/calc.log", Level: "debug"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	d, err := cfg.GeminiTimeout()
	if err != nil || d != 5*time.Second {
		t.Errorf("GeminiTimeout() = %v, %v", d, err)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CALC_GEMINI_API_KEY", "env-key")
	t.Setenv("CALC_GEMINI_BASE_URL", "http://localhost:9999")
	t.Setenv("CALC_GEMINI_MODEL", "env-model")
	path := writeConfig(t, "gemini:\n  api_key: file-key\n  model: file-model\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := GeminiConfig{APIKey: "env-key", Model: "env-model", BaseURL: "http://localhost:9999", Timeout: "60s"}
	if diff := cmp.Diff(want, cfg.Gemini); diff != "" {
		t.Errorf("gemini mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		body string
		want error
	}{
		{"zero step", "plot:\n  step: 0\n", ErrInvalidStep},
		{"negative step", "plot:\n  step: -1\n", ErrInvalidStep},
		{"inverted range", "plot:\n  x_start: 3\n  x_end: 1\n", ErrInvertedPlot},
		{"theme", "ui:\n  theme: solarized\n", ErrUnknownTheme},
		{"mode", "ui:\n  mode: programmer\n", ErrUnknownMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadRejectsBadYAMLAndTimeout(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeConfig(t, "plot: [1, 2")); err == nil {
		t.Error("expected a parse error")
	}
	if _, err := Load(writeConfig(t, "gemini:\n  timeout: soon\n")); err == nil {
		t.Error("expected a timeout error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.UI.Theme = ThemeLight
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != filepath.Join("/xdg", "calc", "config.yaml") {
		t.Errorf("DefaultPath() = %q", got)
	}
}
