package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Station != "Zürich Zentrum Witikon" {
		t.Errorf("Expected default station, got %s", cfg.Station)
	}
	if cfg.Limit != 50 {
		t.Errorf("Expected limit 50, got %d", cfg.Limit)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("Expected poll interval 5s, got %s", cfg.PollInterval)
	}
	if !cfg.FilterTerminals {
		t.Error("Expected terminal filtering by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	base := Default()
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"), base)
	if err != nil {
		t.Fatalf("Missing file should not fail: %v", err)
	}
	if cfg.Station != base.Station {
		t.Errorf("Expected base station, got %s", cfg.Station)
	}
}

func TestLoadFile_EmptyPath(t *testing.T) {
	cfg, err := LoadFile("", Default())
	if err != nil {
		t.Fatalf("Empty path should not fail: %v", err)
	}
	if cfg.Style != DefaultStyle {
		t.Errorf("Expected default style, got %s", cfg.Style)
	}
}

func TestLoadFile_Overlay(t *testing.T) {
	path := writeConfig(t, `
station: Zürich, Klusplatz
limit: 20
terminals: [Witikon]
poll_interval: 10s
style: compact
`)

	cfg, err := LoadFile(path, Default())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Station != "Zürich, Klusplatz" {
		t.Errorf("Expected station override, got %s", cfg.Station)
	}
	if cfg.Limit != 20 {
		t.Errorf("Expected limit 20, got %d", cfg.Limit)
	}
	if len(cfg.Terminals) != 1 || cfg.Terminals[0] != "Witikon" {
		t.Errorf("Expected terminals [Witikon], got %v", cfg.Terminals)
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("Expected poll interval 10s, got %s", cfg.PollInterval)
	}
	if cfg.Style != StyleCompact {
		t.Errorf("Expected compact style, got %s", cfg.Style)
	}
	// Untouched fields keep their base values
	if cfg.FetchTimeout != DefaultFetchTimeout {
		t.Errorf("Expected default fetch timeout, got %s", cfg.FetchTimeout)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "station: [unclosed", "failed to parse"},
		{"unknown style", "style: neon", "unknown style"},
		{"short interval", "poll_interval: 10ms", "poll_interval"},
		{"zero limit", "limit: 0", "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadFile(path, Default())
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestClientConfig(t *testing.T) {
	cfg := Default()
	cfg.Station = "Bern"
	cfg.Limit = 10

	client := cfg.ClientConfig()
	if client.Station != "Bern" || client.Limit != 10 {
		t.Errorf("Expected Bern/10, got %s/%d", client.Station, client.Limit)
	}
	if client.UserAgent == "" {
		t.Error("Expected default user agent to be kept")
	}
}

func TestStyles(t *testing.T) {
	board := StyleOrDefault(StyleBoard)
	if board.FontSize != 30 || board.BadgeWidth != 150 || board.BadgePadding != 20 {
		t.Errorf("Unexpected board style: %+v", board)
	}

	compact, ok := LookupStyle(StyleCompact)
	if !ok {
		t.Fatal("Compact style should exist")
	}
	if compact.FontSize >= board.FontSize {
		t.Errorf("Compact font %v should be smaller than board font %v", compact.FontSize, board.FontSize)
	}

	if fallback := StyleOrDefault("neon"); fallback.Name != StyleBoard {
		t.Errorf("Unknown style should fall back to board, got %s", fallback.Name)
	}

	names := StyleNames()
	if len(names) != 2 || names[0] != StyleBoard || names[1] != StyleCompact {
		t.Errorf("Unexpected style names: %v", names)
	}
}
