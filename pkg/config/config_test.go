package config

import "testing"

func TestLoadFromMap(t *testing.T) {
	input := map[string]any{
		"source": map[string]any{
			"messages_dir": "messages/json",
		},
		"sync": map[string]any{
			"best_effort": true,
		},
		"pull": map[string]any{
			"retry": map[string]any{
				"max_attempts": 5,
			},
		},
	}

	cfg, err := Load(input)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Source.MessagesDir != "messages/json" {
		t.Fatalf("expected messages/json, got %s", cfg.Source.MessagesDir)
	}
	if !cfg.Sync.BestEffort {
		t.Fatal("expected best_effort to be set")
	}
	if cfg.Pull.Retry.MaxAttempts != 5 {
		t.Fatalf("expected 5 attempts, got %d", cfg.Pull.Retry.MaxAttempts)
	}
	if cfg.Pull.Retry.Backoff != BackoffConstant {
		t.Fatalf("expected default constant backoff, got %s", cfg.Pull.Retry.Backoff)
	}
}

func TestLoadFromStruct(t *testing.T) {
	input := Config{
		Destination: DestinationConfig{MessagesRoot: "Custom/Messages"},
		Upstream:    UpstreamConfig{Branch: "develop"},
	}

	cfg, err := Load(input)
	if err != nil {
		t.Fatalf("load returned error: %v", err)
	}
	if cfg.Destination.MessagesRoot != "Custom/Messages" {
		t.Fatalf("expected Custom/Messages, got %s", cfg.Destination.MessagesRoot)
	}
	if cfg.Upstream.Branch != "develop" {
		t.Fatalf("expected branch develop, got %s", cfg.Upstream.Branch)
	}
	if cfg.Upstream.URL == "" {
		t.Fatal("expected default upstream url")
	}
	if cfg.Source.MessagesDir != "msg/json" {
		t.Fatalf("expected default messages dir, got %s", cfg.Source.MessagesDir)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if len(cfg.Pull.Stages) != 2 {
		t.Fatalf("expected 2 pull stages, got %d", len(cfg.Pull.Stages))
	}
}

func TestValidateRejectsChainedRenames(t *testing.T) {
	cfg := Defaults()
	cfg.Locales.Renames = map[string]string{
		"a": "b",
		"b": "c",
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected chained rename to be rejected")
	}
}

func TestValidateRejectsUnknownBackoff(t *testing.T) {
	cfg := Defaults()
	cfg.Pull.Retry.Backoff = "fibonacci"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected unknown backoff strategy to be rejected")
	}
}

func TestTableAppliesOverrides(t *testing.T) {
	cfg := Defaults()
	table := cfg.Table()
	if table.Remap("be-tarask") != "be" {
		t.Fatal("expected built-in rename table by default")
	}

	cfg.Locales.Renames = map[string]string{"pt-br": "pt"}
	cfg.Locales.Unsupported = []string{"xx"}
	table = cfg.Table()

	if table.Remap("be-tarask") != "be-tarask" {
		t.Fatal("configured renames should replace the built-in table")
	}
	if table.Remap("pt-br") != "pt" {
		t.Fatal("configured rename not applied")
	}
	if table.Supported("xx") {
		t.Fatal("configured unsupported set not applied")
	}
	if !table.Supported("tlh") {
		t.Fatal("configured unsupported set should replace the built-in set")
	}
}
