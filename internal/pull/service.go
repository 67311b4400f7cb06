// Package pull downloads the upstream project's compressed JavaScript
// assets into a staging directory and mirrors the staging tree into the
// sample-app and test resource folders.
//
// The staging directory accumulates across stages, so destinations listed in
// a later stage also receive every file fetched by earlier stages. That
// mirrors the long-standing update behavior the resource folders rely on.
package pull

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/goliatone/go-localesync/pkg/interfaces/logger"
	"github.com/goliatone/go-localesync/pkg/retry"
)

// Stage lists upstream-relative files to fetch and the destination
// directories that receive the staging tree once those files are in place.
type Stage struct {
	Files        []string
	Destinations []string
}

// Dependencies wires the asset list and retry policy into the service.
type Dependencies struct {
	// BaseURL is the raw-file root; asset paths are appended to it.
	BaseURL string
	Stages  []Stage
	Retry   retry.Policy
	Logger  logger.Logger

	// HTTPClient overrides the underlying transport, mainly for tests.
	HTTPClient *http.Client
}

// Service fetches assets with an explicit retry policy. Reusable across
// runs; each Run works in its own staging directory.
type Service struct {
	baseURL string
	stages  []Stage
	client  *retryablehttp.Client
	logger  logger.Logger
}

// NewService constructs the asset pull service.
func NewService(deps Dependencies) (*Service, error) {
	if deps.BaseURL == "" {
		return nil, errors.New("pull: base URL is required")
	}
	if len(deps.Stages) == 0 {
		return nil, errors.New("pull: at least one stage is required")
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	policy := deps.Retry
	if policy.MaxAttempts == 0 && policy.Backoff == nil {
		policy = retry.DefaultPolicy()
	}

	client := retryablehttp.NewClient()
	client.Logger = nil
	client.RetryMax = policy.Attempts() - 1
	client.Backoff = func(min, max time.Duration, attemptNum int, resp *http.Response) time.Duration {
		return policy.Wait(attemptNum + 1)
	}
	if deps.HTTPClient != nil {
		client.HTTPClient = deps.HTTPClient
	}

	return &Service{
		baseURL: deps.BaseURL,
		stages:  deps.Stages,
		client:  client,
		logger:  deps.Logger,
	}, nil
}

// Request names the root the stage destinations are resolved against.
type Request struct {
	DestRoot string
}

// Report summarizes one pull run.
type Report struct {
	Fetched  []string
	Mirrored []string
}

// Run fetches every stage's files into the staging directory and mirrors
// the accumulated tree into the stage's destinations. Destination folders
// are created as needed; the staging directory is removed afterwards.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	destRoot := req.DestRoot
	if destRoot == "" {
		destRoot = "."
	}

	staging, err := os.MkdirTemp("", "localesync-pull-")
	if err != nil {
		return nil, fmt.Errorf("pull: create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	report := &Report{}
	for _, stage := range s.stages {
		for _, file := range stage.Files {
			if err := s.fetch(ctx, file, staging); err != nil {
				return report, err
			}
			report.Fetched = append(report.Fetched, file)
		}
		for _, dest := range stage.Destinations {
			target := filepath.Join(destRoot, filepath.FromSlash(dest))
			if err := mirror(staging, target); err != nil {
				return report, fmt.Errorf("pull: mirror into %s: %w", dest, err)
			}
			report.Mirrored = append(report.Mirrored, dest)
		}
	}

	s.logger.Info("finished pulling compressed assets",
		logger.Field{Key: "fetched", Value: len(report.Fetched)},
		logger.Field{Key: "destinations", Value: len(report.Mirrored)},
	)
	return report, nil
}

func (s *Service) fetch(ctx context.Context, file, staging string) error {
	url := s.baseURL + file

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("pull: build request for %s: %w", url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("pull: GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("pull: GET %s: unexpected status %s", url, resp.Status)
	}

	local := filepath.Join(staging, filepath.FromSlash(file))
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("pull: stage %s: %w", file, err)
	}
	out, err := os.Create(local)
	if err != nil {
		return fmt.Errorf("pull: stage %s: %w", file, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("pull: stage %s: %w", file, err)
	}

	s.logger.Debug("fetched asset", logger.Field{Key: "file", Value: file})
	return nil
}

// mirror copies every regular file under src into dst, preserving relative
// paths and creating directories as needed.
func mirror(src, dst string) error {
	return filepath.WalkDir(src, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
