// Package sync rebuilds the platform's per-locale message files from an
// upstream checkout: every eligible locale catalog is merged over the
// English baseline and written into its pre-existing localization bundle.
package sync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-localesync/internal/scan"
	"github.com/goliatone/go-localesync/pkg/catalog"
	"github.com/goliatone/go-localesync/pkg/interfaces/logger"
	"github.com/goliatone/go-localesync/pkg/locales"
)

// Destination filenames, fixed by the platform resource convention.
const (
	MessagesFile  = "bky_messages.json"
	ConstantsFile = "bky_constants.json"
	SynonymsFile  = "bky_synonyms.json"
)

// Upstream auxiliary files copied verbatim rather than merged.
const (
	srcConstantsFile = "constants.json"
	srcSynonymsFile  = "synonyms.json"
)

// Dependencies wires the locale policy and failure behavior into the service.
type Dependencies struct {
	// Locales is the policy table; zero value falls back to the built-in
	// tables.
	Locales locales.Table
	Logger  logger.Logger

	// BestEffort collects per-locale failures into the report instead of
	// aborting the run on the first bad catalog.
	BestEffort bool
}

// Service performs one merge pass per Run call. Safe to reuse across runs;
// it holds no per-run state.
type Service struct {
	table      locales.Table
	logger     logger.Logger
	bestEffort bool
}

// NewService constructs the merge service.
func NewService(deps Dependencies) (*Service, error) {
	if deps.Locales.Renames == nil && deps.Locales.Unsupported == nil {
		deps.Locales = locales.DefaultTable()
	}
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	return &Service{
		table:      deps.Locales,
		logger:     deps.Logger,
		bestEffort: deps.BestEffort,
	}, nil
}

// Request names the two directory roots of one merge pass.
type Request struct {
	// SourceDir is the upstream per-locale JSON directory (msg/json).
	SourceDir string
	// DestDir is the platform messages root holding the .lproj bundles.
	DestDir string
}

// Report summarizes one merge pass. Slices are ordered by source filename.
type Report struct {
	Written             []string
	SkippedUnsupported  []string
	SkippedUnconfigured []string
	Failed              []Failure
}

// Failure records a per-locale error collected under the best-effort policy.
type Failure struct {
	Locale string
	File   string
	Err    error
}

// Run executes the merge pass: copy the two auxiliary files, load the
// baseline, then merge and write every eligible locale catalog. Missing
// auxiliary files and an unreadable baseline are fatal; a missing bundle
// directory or an unsupported code skips the locale. Per-locale load and
// write errors abort the run unless best-effort is enabled, in which case
// they are collected and joined into the returned error.
func (s *Service) Run(ctx context.Context, req Request) (*Report, error) {
	if req.SourceDir == "" {
		return nil, errors.New("sync: source directory is required")
	}
	if req.DestDir == "" {
		return nil, errors.New("sync: destination directory is required")
	}

	if err := s.copyAuxiliaries(req); err != nil {
		return nil, err
	}

	baseline, err := catalog.ReadFile(filepath.Join(req.SourceDir, locales.BaselineFile))
	if err != nil {
		return nil, fmt.Errorf("sync: load baseline: %w", err)
	}

	names, err := scan.Files(req.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}

	report := &Report{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("sync: %w", err)
		}
		if !strings.HasSuffix(name, catalog.Ext) || locales.Reserved(name) {
			continue
		}

		code := s.table.Remap(locales.CodeFromFile(name))
		if !s.table.Supported(code) {
			s.logger.Info("skipping locale unsupported on this platform",
				logger.Field{Key: "locale", Value: code},
				logger.Field{Key: "language", Value: locales.DisplayName(code)},
			)
			report.SkippedUnsupported = append(report.SkippedUnsupported, code)
			continue
		}

		bundle := s.table.BundleDir(req.DestDir, code)
		exists, err := dirExists(bundle)
		if err != nil {
			return report, fmt.Errorf("sync: %w", err)
		}
		if !exists {
			s.logger.Warn("skipping locale without a localization bundle",
				logger.Field{Key: "file", Value: name},
				logger.Field{Key: "locale", Value: code},
				logger.Field{Key: "bundle", Value: bundle},
				logger.Field{Key: "fix", Value: fmt.Sprintf("in Xcode, go to Project Settings > Info > Localizations and add localization for %q", code)},
			)
			report.SkippedUnconfigured = append(report.SkippedUnconfigured, code)
			continue
		}

		if err := s.mergeLocale(baseline, req.SourceDir, name, bundle); err != nil {
			if !s.bestEffort {
				return report, fmt.Errorf("sync: %w", err)
			}
			s.logger.Error("locale failed, continuing",
				logger.Field{Key: "file", Value: name},
				logger.Field{Key: "locale", Value: code},
				logger.Field{Key: "error", Value: err},
			)
			report.Failed = append(report.Failed, Failure{Locale: code, File: name, Err: err})
			continue
		}
		report.Written = append(report.Written, code)
	}

	s.logger.Info("finished updating localization files",
		logger.Field{Key: "written", Value: len(report.Written)},
		logger.Field{Key: "skipped_unsupported", Value: len(report.SkippedUnsupported)},
		logger.Field{Key: "skipped_unconfigured", Value: len(report.SkippedUnconfigured)},
		logger.Field{Key: "failed", Value: len(report.Failed)},
	)

	if len(report.Failed) > 0 {
		errs := make([]error, 0, len(report.Failed))
		for _, failure := range report.Failed {
			errs = append(errs, failure.Err)
		}
		return report, fmt.Errorf("sync: %d locales failed: %w", len(report.Failed), errors.Join(errs...))
	}
	return report, nil
}

// copyAuxiliaries copies constants and synonyms verbatim to the destination
// messages root under their platform names.
func (s *Service) copyAuxiliaries(req Request) error {
	pairs := []struct{ src, dst string }{
		{srcConstantsFile, ConstantsFile},
		{srcSynonymsFile, SynonymsFile},
	}
	for _, pair := range pairs {
		src := filepath.Join(req.SourceDir, pair.src)
		dst := filepath.Join(req.DestDir, pair.dst)
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("sync: copy %s: %w", pair.src, err)
		}
	}
	return nil
}

func (s *Service) mergeLocale(baseline catalog.MessageCatalog, sourceDir, name, bundle string) error {
	localized, err := catalog.ReadFile(filepath.Join(sourceDir, name))
	if err != nil {
		return err
	}
	merged := catalog.Merge(baseline, localized)
	return catalog.WriteFile(filepath.Join(bundle, MessagesFile), merged)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}

func dirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
