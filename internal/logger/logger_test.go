package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// capture points the package logger at a buffer until the test ends
func capture(t *testing.T, level slog.Level, json bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	format := "text"
	if json {
		format = "json"
	}
	logger = slog.New(newHandler(&buf, format, level))
	t.Cleanup(func() { logger = nil })
	return &buf
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "galaxygen.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARNING", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"debug", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.input); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, c Config)
	}{
		{
			name:    "missing file",
			content: "",
			check: func(t *testing.T, c Config) {
				if c != DefaultConfig() {
					t.Errorf("config = %+v, want defaults", c)
				}
			},
		},
		{
			name: "full block",
			content: `generation:
  seed: 42
logging:
  level: DEBUG
  console_format: json
  file_enabled: true
  file_path: runs/gen.log
  file_max_size_mb: 20
`,
			check: func(t *testing.T, c Config) {
				if c.Level != "DEBUG" || c.ConsoleFormat != "json" {
					t.Errorf("Level, ConsoleFormat = %q, %q, want DEBUG, json", c.Level, c.ConsoleFormat)
				}
				if !c.FileEnabled || c.FilePath != "runs/gen.log" || c.FileMaxSizeMB != 20 {
					t.Errorf("file settings = %v %q %d", c.FileEnabled, c.FilePath, c.FileMaxSizeMB)
				}
			},
		},
		{
			name:    "partial block keeps defaults",
			content: "logging:\n  level: WARN\n",
			check: func(t *testing.T, c Config) {
				if c.Level != "WARN" {
					t.Errorf("Level = %q, want WARN", c.Level)
				}
				if !c.ConsoleEnabled || c.FileMaxBackups != 5 {
					t.Errorf("ConsoleEnabled, FileMaxBackups = %v, %d, want true, 5", c.ConsoleEnabled, c.FileMaxBackups)
				}
			},
		},
		{
			name:    "no logging block",
			content: "generation:\n  shape: Disc\n",
			check: func(t *testing.T, c Config) {
				if c != DefaultConfig() {
					t.Errorf("config = %+v, want defaults", c)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "absent.yaml")
			if tt.content != "" {
				path = writeConfig(t, tt.content)
			}
			c, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig returned error: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, "logging: [not, a, map"))
	if err == nil {
		t.Fatal("LoadConfig returned nil error for malformed YAML")
	}
	if c != DefaultConfig() {
		t.Errorf("config = %+v, want defaults on parse error", c)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "ERROR")
	t.Setenv("LOG_CONSOLE_FORMAT", "json")
	t.Setenv("LOG_FILE_ENABLED", "true")
	t.Setenv("LOG_FILE_PATH", "/var/log/galaxygen.log")

	c, err := LoadConfig(writeConfig(t, "logging:\n  level: DEBUG\n"))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if c.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", c.Level)
	}
	if c.ConsoleFormat != "json" {
		t.Errorf("ConsoleFormat = %q, want json", c.ConsoleFormat)
	}
	if !c.FileEnabled || c.FilePath != "/var/log/galaxygen.log" {
		t.Errorf("file settings = %v %q", c.FileEnabled, c.FilePath)
	}
}

func TestLoadConfigIgnoresBadBool(t *testing.T) {
	t.Setenv("LOG_FILE_ENABLED", "sometimes")

	c, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if c.FileEnabled {
		t.Error("FileEnabled = true, want the default for an unparsable value")
	}
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, slog.LevelWarn, false)

	Debug("stage begin", "stage", "Star")
	Info("attempt succeeded", "attempt", 1)
	Warning("attempt failed", "attempt", 2)
	Error("generation aborted")

	out := buf.String()
	for _, hidden := range []string{"stage begin", "attempt succeeded"} {
		if strings.Contains(out, hidden) {
			t.Errorf("output contains %q below WARN: %s", hidden, out)
		}
	}
	for _, shown := range []string{"attempt failed", "attempt=2", "generation aborted"} {
		if !strings.Contains(out, shown) {
			t.Errorf("output missing %q: %s", shown, out)
		}
	}
}

func TestAlwaysBypassesLevel(t *testing.T) {
	buf := capture(t, slog.LevelError, false)

	Warning("hidden")
	Always("batch finished", "valid", 10)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("WARN appeared when level is ERROR")
	}
	if !strings.Contains(out, "batch finished") || !strings.Contains(out, "level=ALWAYS") {
		t.Errorf("ALWAYS line missing or mislabeled: %s", out)
	}
}

func TestFormattedLogging(t *testing.T) {
	buf := capture(t, slog.LevelDebug, false)

	Debugf("placed %d of %d stars", 190, 200)
	Infof("shape %s", "Disc")
	Warningf("connectivity %.1f", 2.75)
	Errorf("stage %s failed", "Spawn")
	Alwaysf("seed %d", 42)

	out := buf.String()
	for _, want := range []string{"placed 190 of 200 stars", "shape Disc", "connectivity 2.8", "stage Spawn failed", "seed 42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestJSONFormat(t *testing.T) {
	buf := capture(t, slog.LevelInfo, true)

	With("warps").Info("pass done", "edges", 12, "wormholes", 3)

	out := buf.String()
	for _, want := range []string{`"msg":"pass done"`, `"component":"warps"`, `"edges":12`, `"wormholes":3`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestMultiHandler(t *testing.T) {
	var debug, warn bytes.Buffer
	logger = slog.New(newMultiHandler(
		newHandler(&debug, "text", slog.LevelDebug),
		newHandler(&warn, "text", slog.LevelWarn),
	))
	t.Cleanup(func() { logger = nil })

	With("stars").Debug("rejected candidate")
	Warning("few stars placed", "placed", 12)

	if !strings.Contains(debug.String(), "rejected candidate") || !strings.Contains(debug.String(), "component=stars") {
		t.Errorf("debug handler output = %s", debug.String())
	}
	if strings.Contains(warn.String(), "rejected candidate") {
		t.Error("warn handler received a debug record")
	}
	for _, out := range []string{debug.String(), warn.String()} {
		if !strings.Contains(out, "placed=12") {
			t.Errorf("handler missing warning: %s", out)
		}
	}
}

func TestUninitializedLogger(t *testing.T) {
	logger = nil
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("logging before Initialize panicked: %v", r)
		}
	}()

	Debug("debug")
	Info("info")
	Warning("warning")
	Error("error")
	Always("always")
	With("spawn").Info("discarded")
}

func TestInitializeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	c := DefaultConfig()
	c.ConsoleEnabled = false
	c.FileEnabled = true
	c.FilePath = path
	c.FileFormat = "json"

	if err := Initialize(c); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	t.Cleanup(func() { logger = nil })
	Info("written to file", "seed", 7)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"seed":7`) {
		t.Errorf("log file content = %s", data)
	}
}

func TestInitializeFileWithoutPath(t *testing.T) {
	c := DefaultConfig()
	c.FileEnabled = true
	c.FilePath = ""

	if err := Initialize(c); err == nil {
		t.Error("Initialize with file logging and no path returned nil error")
	}
}
