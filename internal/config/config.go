// Package config loads the purr configuration file and resolves
// VCS credentials.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/purr-dev/purr/internal/printers"
	"github.com/spf13/viper"
)

const (
	configDirName  = ".config/purr"
	configFileName = "config.yml"
)

// Config contains the CLI dependencies.
type Config struct {
	Version string
	Viper   *viper.Viper

	Debug          bool
	Provider       string
	Model          string
	MaxBatchTokens int
	PathFilter     string
	DryRun         bool

	Printers printers.IPrinters

	// io writers, useful for testing
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// NewDefaultConfig creates a config with defaults and the config file
// loaded when present.
func NewDefaultConfig() Config {
	conf := Config{
		Printers:       printers.NewPrinters(),
		Provider:       "openai",
		MaxBatchTokens: 80000,
		InReader:       os.Stdin,
		OutWriter:      os.Stdout,
		ErrWriter:      os.Stderr,
	}

	conf.Viper = setupViper()
	applyReviewConfig(conf.Viper, &conf)
	return conf
}

// applyReviewConfig copies the review.* keys of the config file onto
// the config. Flags still override these at the command layer.
func applyReviewConfig(v *viper.Viper, conf *Config) {
	if n := v.GetInt("review.max_batch_tokens"); n > 0 {
		conf.MaxBatchTokens = n
	}
	if f := v.GetString("review.file_filter"); f != "" {
		conf.PathFilter = f
	}
	if v.GetBool("review.dry_run") {
		conf.DryRun = true
	}
}

func setupViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	path, err := FilePath()
	if err != nil {
		return v
	}
	v.SetConfigFile(path)

	// A missing config file is fine, defaults and env vars apply.
	_ = v.ReadInConfig()
	return v
}

// DirPath returns the purr config directory (~/.config/purr).
func DirPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("failed to read home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// FilePath returns the config file path (~/.config/purr/config.yml).
func FilePath() (string, error) {
	dir, err := DirPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// WriteSampleConfig writes content to the config file, creating the
// directory as needed. It refuses to overwrite an existing file.
func WriteSampleConfig(content string) (string, error) {
	dir, err := DirPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists: %s", path)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// VCSConfig is the resolved VCS access configuration.
type VCSConfig struct {
	Name    string // "github" or "gitlab"
	Token   string
	BaseURL string // empty = the provider's public endpoint
}

// ResolveVCS reads the VCS name, token and base URL. Flags set on the
// viper win, then config file, then GITHUB_TOKEN / GITLAB_TOKEN env
// vars.
func ResolveVCS(v *viper.Viper, name string) VCSConfig {
	if name == "" {
		name = v.GetString("vcs.default")
	}
	if name == "" {
		name = "github"
	}
	name = strings.ToLower(strings.TrimSpace(name))

	cfg := VCSConfig{
		Name:    name,
		Token:   v.GetString(fmt.Sprintf("vcs.%s.token", name)),
		BaseURL: v.GetString(fmt.Sprintf("vcs.%s.base_url", name)),
	}

	if cfg.Token == "" {
		switch name {
		case "github":
			cfg.Token = os.Getenv("GITHUB_TOKEN")
		case "gitlab":
			cfg.Token = os.Getenv("GITLAB_TOKEN")
		}
	}

	return cfg
}
