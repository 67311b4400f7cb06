// Package upstream obtains a fresh checkout of the upstream web project for
// the update command. Requires git on PATH.
package upstream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/goliatone/go-localesync/pkg/interfaces/logger"
)

// RunFunc executes a command and returns its combined output. Swappable in
// tests.
type RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Dependencies configure the cloner.
type Dependencies struct {
	// URL of the upstream repository.
	URL string
	// Branch to check out; shallow (depth 1).
	Branch string
	Logger logger.Logger
	Runner RunFunc
}

// Cloner produces shallow clones of one repository/branch pair.
type Cloner struct {
	url    string
	branch string
	logger logger.Logger
	run    RunFunc
}

// NewCloner constructs the cloner.
func NewCloner(deps Dependencies) (*Cloner, error) {
	if deps.URL == "" {
		return nil, errors.New("upstream: repository URL is required")
	}
	if deps.Branch == "" {
		deps.Branch = "master"
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	if deps.Runner == nil {
		deps.Runner = execRunner
	}
	return &Cloner{
		url:    deps.URL,
		branch: deps.Branch,
		logger: deps.Logger,
		run:    deps.Runner,
	}, nil
}

// Clone checks the branch out into dest. The git output is folded into the
// returned error on failure.
func (c *Cloner) Clone(ctx context.Context, dest string) error {
	c.logger.Info("cloning upstream repository",
		logger.Field{Key: "url", Value: c.url},
		logger.Field{Key: "branch", Value: c.branch},
	)

	out, err := c.run(ctx, "git", "clone", "--branch", c.branch, "--depth", "1", c.url, dest)
	if err != nil {
		return fmt.Errorf("upstream: git clone %s (branch %s): %w: %s",
			c.url, c.branch, err, bytes.TrimSpace(out))
	}
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}
