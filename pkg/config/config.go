package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/goliatone/go-config/cfgx"
	"github.com/goliatone/go-localesync/pkg/locales"
)

// Config captures tool-level configuration knobs. Feature packages (sync,
// pull, upstream, verify) pull from these nested structs.
type Config struct {
	Source      SourceConfig      `mapstructure:"source" json:"source"`
	Destination DestinationConfig `mapstructure:"destination" json:"destination"`
	Sync        SyncConfig        `mapstructure:"sync" json:"sync"`
	Locales     LocalesConfig     `mapstructure:"locales" json:"locales"`
	Pull        PullConfig        `mapstructure:"pull" json:"pull"`
	Upstream    UpstreamConfig    `mapstructure:"upstream" json:"upstream"`
}

// SourceConfig describes the upstream web project layout.
type SourceConfig struct {
	// MessagesDir is the per-locale JSON directory, relative to the
	// upstream checkout root.
	MessagesDir string `mapstructure:"messages_dir" json:"messages_dir"`
}

// DestinationConfig describes the platform resource tree being updated.
type DestinationConfig struct {
	// MessagesRoot holds the <code>.lproj bundles plus the copied
	// auxiliary files, relative to the repository root.
	MessagesRoot string `mapstructure:"messages_root" json:"messages_root"`
}

// SyncConfig controls the merge pass failure policy.
type SyncConfig struct {
	// BestEffort keeps processing remaining locales when one catalog
	// fails to load, collecting failures into the run report. The
	// default (false) aborts the run on the first bad file.
	BestEffort bool `mapstructure:"best_effort" json:"best_effort"`
}

// LocalesConfig overrides the built-in locale policy tables. Either field,
// when set, replaces its built-in counterpart wholesale.
type LocalesConfig struct {
	Renames     map[string]string `mapstructure:"renames" json:"renames"`
	Unsupported []string          `mapstructure:"unsupported" json:"unsupported"`
}

// PullConfig drives the compiled-asset fetch.
type PullConfig struct {
	// BaseURL is the raw-file root the asset paths are resolved against.
	BaseURL string      `mapstructure:"base_url" json:"base_url"`
	Stages  []PullStage `mapstructure:"stages" json:"stages"`
	Retry   RetryConfig `mapstructure:"retry" json:"retry"`
}

// PullStage lists upstream-relative files to fetch and the destination
// directories (relative to the repository root) that receive the staging
// tree once the stage's files are in place.
type PullStage struct {
	Files        []string `mapstructure:"files" json:"files"`
	Destinations []string `mapstructure:"destinations" json:"destinations"`
}

// RetryConfig makes the fetch retry policy explicit: attempt budget plus a
// named backoff strategy.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts" json:"max_attempts"`
	Backoff     string        `mapstructure:"backoff" json:"backoff"`
	Wait        time.Duration `mapstructure:"wait" json:"wait"`
	MaxWait     time.Duration `mapstructure:"max_wait" json:"max_wait"`
}

// Backoff strategy names accepted by RetryConfig.
const (
	BackoffConstant    = "constant"
	BackoffExponential = "exponential"
)

// UpstreamConfig identifies the upstream repository cloned by the update
// command.
type UpstreamConfig struct {
	URL    string `mapstructure:"url" json:"url"`
	Branch string `mapstructure:"branch" json:"branch"`
}

// Defaults returns the baseline configuration: the upstream project's layout
// and asset list, fail-fast merging, and the original three-attempt
// no-backoff fetch loop.
func Defaults() Config {
	return Config{
		Source: SourceConfig{
			MessagesDir: "msg/json",
		},
		Destination: DestinationConfig{
			MessagesRoot: "Resources/Localized/Messages",
		},
		Pull: PullConfig{
			BaseURL: "https://raw.githubusercontent.com/google/blockly/master/",
			Stages: []PullStage{
				{
					Files: []string{
						"blockly_compressed.js",
						"javascript_compressed.js",
						"msg/js/en.js",
					},
					Destinations: []string{
						"Samples/BlocklyCodeLab/BlocklyCodeLab/Resources/Non-Localized/blockly_web",
						"Samples/BlocklyCodeLab-Starter/BlocklyCodeLabStarter/Resources/Non-Localized/blockly_web",
						"Samples/BlocklySample/BlocklySample/Resources/Non-Localized/Turtle/blockly_web",
					},
				},
				{
					Files: []string{
						"python_compressed.js",
					},
					Destinations: []string{
						"Tests/Resources/blockly_web",
					},
				},
			},
			Retry: RetryConfig{
				MaxAttempts: 3,
				Backoff:     BackoffConstant,
			},
		},
		Upstream: UpstreamConfig{
			URL:    "https://github.com/google/blockly.git",
			Branch: "master",
		},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Source.MessagesDir == "" {
		return errors.New("source.messages_dir is required")
	}
	if c.Destination.MessagesRoot == "" {
		return errors.New("destination.messages_root is required")
	}
	if c.Pull.BaseURL == "" {
		return errors.New("pull.base_url is required")
	}
	if c.Pull.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("pull.retry.max_attempts must be > 0")
	}
	switch c.Pull.Retry.Backoff {
	case BackoffConstant, BackoffExponential:
	default:
		return fmt.Errorf("pull.retry.backoff must be %q or %q", BackoffConstant, BackoffExponential)
	}
	if c.Pull.Retry.Wait < 0 {
		return fmt.Errorf("pull.retry.wait must be >= 0")
	}
	for i, stage := range c.Pull.Stages {
		if len(stage.Files) == 0 {
			return fmt.Errorf("pull.stages[%d].files must not be empty", i)
		}
		if len(stage.Destinations) == 0 {
			return fmt.Errorf("pull.stages[%d].destinations must not be empty", i)
		}
	}
	if c.Upstream.URL == "" {
		return errors.New("upstream.url is required")
	}
	if c.Upstream.Branch == "" {
		return errors.New("upstream.branch is required")
	}
	for from, to := range c.Locales.Renames {
		if _, chained := c.Locales.Renames[to]; chained {
			return fmt.Errorf("locales.renames: %q maps to %q which is itself renamed", from, to)
		}
	}
	return nil
}

// Table materializes the locale policy, replacing the built-in tables with
// configured overrides when present.
func (c Config) Table() locales.Table {
	table := locales.DefaultTable()
	if c.Locales.Renames != nil {
		table.Renames = c.Locales.Renames
	}
	if c.Locales.Unsupported != nil {
		table.Unsupported = locales.Set(c.Locales.Unsupported...)
	}
	return table
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// While cfgx.Build still returns zero values, we fallback to a lightweight
// decoder to keep smoke tests meaningful. Once cfgx is fully implemented we
// can drop the fallback.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Source.MessagesDir == "" {
		c.Source.MessagesDir = defaults.Source.MessagesDir
	}
	if c.Destination.MessagesRoot == "" {
		c.Destination.MessagesRoot = defaults.Destination.MessagesRoot
	}
	if c.Pull.BaseURL == "" {
		c.Pull.BaseURL = defaults.Pull.BaseURL
	}
	if !strings.HasSuffix(c.Pull.BaseURL, "/") {
		c.Pull.BaseURL += "/"
	}
	if len(c.Pull.Stages) == 0 {
		c.Pull.Stages = defaults.Pull.Stages
	}
	if c.Pull.Retry.MaxAttempts == 0 {
		c.Pull.Retry.MaxAttempts = defaults.Pull.Retry.MaxAttempts
	}
	if c.Pull.Retry.Backoff == "" {
		c.Pull.Retry.Backoff = defaults.Pull.Retry.Backoff
	}
	if c.Upstream.URL == "" {
		c.Upstream.URL = defaults.Upstream.URL
	}
	if c.Upstream.Branch == "" {
		c.Upstream.Branch = defaults.Upstream.Branch
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
