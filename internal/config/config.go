package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/glabrego/lobsters-cli/internal/mode"
)

const (
	appName   = "lobsters-cli"
	envPrefix = "LOBSTERS"

	defaultBaseURL           = "https://lobste.rs"
	defaultRequestTimeout    = 10 * time.Second
	defaultRequestsPerSecond = 2.0
)

// ErrConfigNotFound is returned when --config names a path that is not a file.
var ErrConfigNotFound = errors.New("config file not found")

// Toggle is one `[ui.<name>]` table.
type Toggle struct {
	Enable bool `mapstructure:"enable"`
}

type UI struct {
	Shortcuts        Toggle `mapstructure:"shortcuts"`
	Downloaded       Toggle `mapstructure:"downloaded"`
	KeybindHints     Toggle `mapstructure:"keybind_hints"`
	ModeInfo         Toggle `mapstructure:"mode_info"`
	ScoreCount       Toggle `mapstructure:"score_count"`
	CommentCount     Toggle `mapstructure:"comment_count"`
	SubmittedUser    Toggle `mapstructure:"submitted_user"`
	SubmittedElapsed Toggle `mapstructure:"submitted_elapsed"`
	Scrollbar        Toggle `mapstructure:"scrollbar"`
	Header           Toggle `mapstructure:"header"`
}

var uiKeys = []string{
	"shortcuts", "downloaded", "keybind_hints", "mode_info", "score_count",
	"comment_count", "submitted_user", "submitted_elapsed", "scrollbar", "header",
}

// Config holds runtime settings for the CLI app.
type Config struct {
	Mode                        mode.Mode
	DatabasePath                string
	ConfigPath                  string
	BaseURL                     string
	RequestTimeout              time.Duration
	RequestsPerSecond           float64
	OpeningCommentsMarksRead    bool
	PreviewingCommentsMarksRead bool
	LogFile                     string
	LogLevel                    log.Level
	UI                          UI

	ShowVersion bool
	ShowStats   bool
}

type fileConfig struct {
	DefaultMode                 string        `mapstructure:"default_mode"`
	Database                    string        `mapstructure:"database"`
	BaseURL                     string        `mapstructure:"base_url"`
	RequestTimeout              time.Duration `mapstructure:"request_timeout"`
	RequestsPerSecond           float64       `mapstructure:"requests_per_second"`
	OpeningCommentsMarksRead    bool          `mapstructure:"opening_comments_marks_posts_read"`
	PreviewingCommentsMarksRead bool          `mapstructure:"previewing_comments_marks_posts_read"`
	LogFile                     string        `mapstructure:"log_file"`
	LogLevel                    string        `mapstructure:"log_level"`
	UI                          UI            `mapstructure:"ui"`
}

// Load resolves settings from, highest first: flags in args, LOBSTERS_*
// environment variables (a .env file in the working directory included),
// the TOML config file and defaults.
func Load(args []string) (Config, error) {
	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, flag := range map[string]string{
		"database":     "database",
		"default_mode": "mode",
		"log_file":     "log-file",
		"log_level":    "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	clean, _ := fs.GetBool("clean")
	configPath := ""
	if !clean {
		path, _ := fs.GetString("config")
		read, err := readConfigFile(v, path, fs.Changed("config"))
		if err != nil {
			return Config{}, err
		}
		if read {
			configPath = path
		}
	}

	var raw fileConfig
	if err := v.Unmarshal(&raw); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg, err := raw.resolve()
	if err != nil {
		return Config{}, err
	}
	cfg.ConfigPath = configPath
	cfg.ShowVersion, _ = fs.GetBool("version")
	cfg.ShowStats, _ = fs.GetBool("stats")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.StringP("config", "c", DefaultConfigPath(), "path to the TOML config file")
	fs.BoolP("clean", "C", false, "ignore the config file")
	fs.StringP("database", "d", DefaultDatabasePath(), "path to the read-state database")
	fs.StringP("mode", "m", "hottest", "listing to open with: hottest, newest or active")
	fs.String("log-file", "", "append debug logs to this file")
	fs.String("log-level", "info", "debug, info, warn or error")
	fs.Bool("stats", false, "print read-state statistics and exit")
	fs.BoolP("version", "v", false, "print the version and exit")
	return fs
}

// Usage is the flag help text.
func Usage() string {
	return newFlagSet().FlagUsages()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_mode", "hottest")
	v.SetDefault("database", DefaultDatabasePath())
	v.SetDefault("base_url", defaultBaseURL)
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.SetDefault("requests_per_second", defaultRequestsPerSecond)
	v.SetDefault("opening_comments_marks_posts_read", true)
	v.SetDefault("previewing_comments_marks_posts_read", true)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	for _, k := range uiKeys {
		v.SetDefault("ui."+k+".enable", true)
	}
}

// readConfigFile loads path into v. A missing file is only an error when the
// path was given explicitly.
func readConfigFile(v *viper.Viper, path string, explicit bool) (bool, error) {
	if path == "" {
		return false, nil
	}
	info, err := os.Stat(path)
	switch {
	case err == nil && info.Mode().IsRegular():
	case explicit:
		return false, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	case err == nil || errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat config %s: %w", path, err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return false, fmt.Errorf("read config %s: %w", path, err)
	}
	return true, nil
}

func (f fileConfig) resolve() (Config, error) {
	m, err := mode.Parse(f.DefaultMode)
	if err != nil {
		return Config{}, fmt.Errorf("default_mode: %w", err)
	}
	level, err := log.ParseLevel(f.LogLevel)
	if err != nil {
		return Config{}, fmt.Errorf("log_level: %w", err)
	}
	return Config{
		Mode:                        m,
		DatabasePath:                f.Database,
		BaseURL:                     f.BaseURL,
		RequestTimeout:              f.RequestTimeout,
		RequestsPerSecond:           f.RequestsPerSecond,
		OpeningCommentsMarksRead:    f.OpeningCommentsMarksRead,
		PreviewingCommentsMarksRead: f.PreviewingCommentsMarksRead,
		LogFile:                     f.LogFile,
		LogLevel:                    level,
		UI:                          f.UI,
	}, nil
}

func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return errors.New("database path is required")
	}
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	parsed, err := url.Parse(c.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("base_url must be an absolute http(s) URL: %s", c.BaseURL)
	}
	if strings.HasSuffix(c.BaseURL, "/") {
		return fmt.Errorf("base_url must not end with '/': %s", c.BaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive: %s", c.RequestTimeout)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must not be negative: %v", c.RequestsPerSecond)
	}
	return nil
}

// DefaultConfigPath is config.toml under the user config directory.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName, "config.toml")
}

// DefaultDatabasePath follows XDG_DATA_HOME, falling back to ~/.local/share.
func DefaultDatabasePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName, "lobsters.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "lobsters.db"
	}
	return filepath.Join(home, ".local", "share", appName, "lobsters.db")
}
