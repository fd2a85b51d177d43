package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"extcount/utils"
	"extcount/version"

	"gopkg.in/yaml.v3"
)

// ExtensionGroup is one report row: a label and the extensions counted under it.
type ExtensionGroup struct {
	Label      string   `json:"label" yaml:"label"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}

type Config struct {
	RootDirectory   string           `json:"root_directory" yaml:"root_directory"`
	ExtensionGroups []ExtensionGroup `json:"extension_groups" yaml:"extension_groups"`
	Start           string           `json:"start_date" yaml:"start_date"`
	End             string           `json:"end_date" yaml:"end_date"`
	Format          string           `json:"format" yaml:"format"`
	OutputDir       string           `json:"output_dir" yaml:"output_dir"`
	LogLevel        string           `json:"log_level" yaml:"log_level"`
	LogFile         string           `json:"log_file" yaml:"log_file"`
	MaxIOPerSecond  int              `json:"max_io_per_second" yaml:"max_io_per_second"`
	ShowProgress    bool             `json:"progress" yaml:"progress"`
	ConfigFile      string           `json:"config_file" yaml:"config_file"`

	// StartDate and EndDate are parsed from Start and End; nil means unbounded.
	StartDate *time.Time `json:"-" yaml:"-"`
	EndDate   *time.Time `json:"-" yaml:"-"`
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func defaultConfig() *Config {
	return &Config{
		RootDirectory: ".",
		ExtensionGroups: []ExtensionGroup{
			{Label: ".txt", Extensions: []string{".txt"}},
			{Label: ".jpg", Extensions: []string{".jpg"}},
			{Label: ".png", Extensions: []string{".png"}},
			{Label: ".docx", Extensions: []string{".docx"}},
			{Label: ".pdf", Extensions: []string{".pdf"}},
		},
		Format:       "text",
		OutputDir:    "reports",
		LogLevel:     "info",
		ShowProgress: true,
	}
}

func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	path := flag.String("path", cfg.RootDirectory, fmt.Sprintf("Root directory to scan (default: %s).", cfg.RootDirectory))
	ext := flag.String("ext", FormatExtensionGroups(cfg.ExtensionGroups), "Extension groups: groups separated by ';', extensions by ','; optional 'label=' prefix (e.g. \".txt;images=.jpg,.png\").")
	start := flag.String("start", "", "Count files created on or after this date (RFC3339 or YYYY-MM-DD) (default: unbounded).")
	end := flag.String("end", "", "Count files created on or before this date (RFC3339 or YYYY-MM-DD, a bare date covers the whole day) (default: unbounded).")
	format := flag.String("format", cfg.Format, fmt.Sprintf("Report format: text or html (default: %s).", cfg.Format))
	outputDir := flag.String("output-dir", cfg.OutputDir, fmt.Sprintf("Folder reports are written to (default: %s).", cfg.OutputDir))
	logLevel := flag.String("log-level", cfg.LogLevel, fmt.Sprintf("Log level: debug, info, warn, error, fatal, or panic (default: %s).", cfg.LogLevel))
	logFile := flag.String("log-file", "", "Also write logs to this file, rotated by size (default: none).")
	maxIO := flag.Int("max-io-per-second", cfg.MaxIOPerSecond, "Maximum directory reads per second, 0 for unlimited (default: 0).")
	progress := flag.Bool("progress", cfg.ShowProgress, fmt.Sprintf("Show a progress spinner while scanning (default: %t).", cfg.ShowProgress))
	configFile := flag.String("config", "", "Path to a JSON or YAML configuration file (default: none).")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = displayHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("extcount version %s\n", version.Version)
		os.Exit(0)
	}
	if *configFile != "" {
		cfg.ConfigFile = *configFile
		if err := cfg.loadFromFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}
	var err error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "path":
			cfg.RootDirectory = strings.TrimSpace(*path)
		case "ext":
			var groups []ExtensionGroup
			groups, err = ParseExtensionGroups(*ext)
			cfg.ExtensionGroups = groups
		case "start":
			cfg.Start = strings.TrimSpace(*start)
		case "end":
			cfg.End = strings.TrimSpace(*end)
		case "format":
			cfg.Format = *format
		case "output-dir":
			cfg.OutputDir = strings.TrimSpace(*outputDir)
		case "log-level":
			cfg.LogLevel = *logLevel
		case "log-file":
			cfg.LogFile = strings.TrimSpace(*logFile)
		case "max-io-per-second":
			cfg.MaxIOPerSecond = *maxIO
		case "progress":
			cfg.ShowProgress = *progress
		}
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func displayHelp() {
	fmt.Println("extcount - count files by extension and write a report")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  extcount [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  extcount --path ~/Documents --ext \".txt;.pdf\"")
	fmt.Println("  extcount --path /srv/share --ext \"images=.jpg,.png;docs=.docx,.pdf\" --start 2023-01-01 --format html")
}

func (cfg *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}
	// encoding/json reuses existing slice elements. Default groups apply
	// only when the file omits extension_groups.
	defaults := cfg.ExtensionGroups
	cfg.ExtensionGroups = nil
	defer func() {
		if cfg.ExtensionGroups == nil {
			cfg.ExtensionGroups = defaults
		}
	}()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("invalid config file format: %w", err)
	}
	return nil
}

// finalize normalizes extension groups, parses the date window and validates.
func (cfg *Config) finalize() error {
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.ExtensionGroups = normalizeGroups(cfg.ExtensionGroups)

	var err error
	if cfg.StartDate, err = parseDate(cfg.Start, false); err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}
	if cfg.EndDate, err = parseDate(cfg.End, true); err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}
	return cfg.validate()
}

func (cfg *Config) validate() error {
	if strings.TrimSpace(cfg.RootDirectory) == "" {
		return fmt.Errorf("a root directory must be specified with --path")
	}
	if len(cfg.ExtensionGroups) == 0 {
		return fmt.Errorf("at least one extension group must be specified with --ext")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("output-dir must not be empty")
	}
	if cfg.MaxIOPerSecond < 0 {
		return fmt.Errorf("max-io-per-second must be zero or positive")
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" &&
		cfg.LogLevel != "error" && cfg.LogLevel != "fatal" && cfg.LogLevel != "panic" {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	return nil
}

// ParseExtensionGroups parses ".txt;images=.jpg,*.PNG" into groups. Entries
// are normalized to a lower-case, dot-prefixed form.
func ParseExtensionGroups(input string) ([]ExtensionGroup, error) {
	var groups []ExtensionGroup
	for _, part := range strings.Split(input, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var label string
		if i := strings.Index(part, "="); i >= 0 {
			label = strings.TrimSpace(part[:i])
			if label == "" {
				return nil, fmt.Errorf("extension group %q has an empty label", part)
			}
			part = part[i+1:]
		}
		groups = append(groups, ExtensionGroup{Label: label, Extensions: parseCommaSeparated(part)})
	}
	return normalizeGroups(groups), nil
}

// FormatExtensionGroups is the inverse of ParseExtensionGroups.
func FormatExtensionGroups(groups []ExtensionGroup) string {
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		exts := strings.Join(g.Extensions, ",")
		if g.Label != "" && g.Label != exts {
			parts = append(parts, g.Label+"="+exts)
			continue
		}
		parts = append(parts, exts)
	}
	return strings.Join(parts, ";")
}

func normalizeGroups(groups []ExtensionGroup) []ExtensionGroup {
	out := make([]ExtensionGroup, 0, len(groups))
	for _, g := range groups {
		exts := make([]string, 0, len(g.Extensions))
		for _, raw := range g.Extensions {
			if ext := utils.NormalizeExtension(raw); ext != "" && !containsString(exts, ext) {
				exts = append(exts, ext)
			}
		}
		label := strings.TrimSpace(g.Label)
		if label == "" {
			label = strings.Join(exts, ",")
		}
		if label == "" {
			continue
		}
		out = append(out, ExtensionGroup{Label: label, Extensions: exts})
	}
	return out
}

// parseDate accepts RFC3339 or local date/time layouts. A bare date used as
// an end bound is extended to the last instant of that day.
func parseDate(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, value, time.Local)
		if err != nil {
			continue
		}
		if endOfDay && layout == "2006-01-02" {
			t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		return &t, nil
	}
	return nil, fmt.Errorf("unrecognized date %q (use RFC3339 or YYYY-MM-DD)", value)
}

func parseCommaSeparated(input string) []string {
	if input == "" {
		return []string{}
	}
	items := strings.Split(input, ",")
	for i, item := range items {
		items[i] = strings.TrimSpace(item)
	}
	return items
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
