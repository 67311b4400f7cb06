package upstream

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestCloneBuildsShallowCloneCommand(t *testing.T) {
	var gotName string
	var gotArgs []string
	runner := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return nil, nil
	}

	cloner, err := NewCloner(Dependencies{
		URL:    "https://example.com/blockly.git",
		Branch: "develop",
		Runner: runner,
	})
	if err != nil {
		t.Fatalf("NewCloner: %v", err)
	}

	if err := cloner.Clone(context.Background(), "/tmp/checkout"); err != nil {
		t.Fatalf("Clone: %v", err)
	}

	if gotName != "git" {
		t.Fatalf("expected git, got %q", gotName)
	}
	want := []string{"clone", "--branch", "develop", "--depth", "1", "https://example.com/blockly.git", "/tmp/checkout"}
	if !reflect.DeepEqual(gotArgs, want) {
		t.Fatalf("expected args %v, got %v", want, gotArgs)
	}
}

func TestCloneDefaultsToMaster(t *testing.T) {
	var gotArgs []string
	runner := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		return nil, nil
	}

	cloner, err := NewCloner(Dependencies{URL: "https://example.com/repo.git", Runner: runner})
	if err != nil {
		t.Fatalf("NewCloner: %v", err)
	}
	if err := cloner.Clone(context.Background(), "dest"); err != nil {
		t.Fatalf("Clone: %v", err)
	}
	if gotArgs[2] != "master" {
		t.Fatalf("expected master branch, got %v", gotArgs)
	}
}

func TestCloneWrapsGitOutputOnFailure(t *testing.T) {
	runner := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("fatal: repository not found\n"), errors.New("exit status 128")
	}

	cloner, err := NewCloner(Dependencies{URL: "https://example.com/missing.git", Runner: runner})
	if err != nil {
		t.Fatalf("NewCloner: %v", err)
	}

	err = cloner.Clone(context.Background(), "dest")
	if err == nil {
		t.Fatal("expected clone failure")
	}
	if !strings.Contains(err.Error(), "repository not found") {
		t.Fatalf("expected git output in error, got %v", err)
	}
}

func TestNewClonerRequiresURL(t *testing.T) {
	if _, err := NewCloner(Dependencies{}); err == nil {
		t.Fatal("expected missing URL to be rejected")
	}
}
