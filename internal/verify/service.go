// Package verify checks written localization bundles against the merge
// invariant: every baseline key must be present in every locale's catalog.
// Keys that are present are additionally pushed through a real translator,
// so the pass also catches catalogs the runtime localization layer would
// reject.
package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	i18n "github.com/goliatone/go-i18n"

	"github.com/goliatone/go-localesync/internal/sync"
	"github.com/goliatone/go-localesync/pkg/catalog"
	"github.com/goliatone/go-localesync/pkg/interfaces/logger"
	"github.com/goliatone/go-localesync/pkg/locales"
)

const baselineLocale = "en"

// Dependencies configure the verifier.
type Dependencies struct {
	Logger logger.Logger
}

// Service verifies one destination messages root per Run call.
type Service struct {
	logger logger.Logger
}

// NewService constructs the verifier.
func NewService(deps Dependencies) (*Service, error) {
	if deps.Logger == nil {
		deps.Logger = &logger.Nop{}
	}
	return &Service{logger: deps.Logger}, nil
}

// Finding lists the baseline keys a locale failed to translate.
type Finding struct {
	Locale  string
	Missing []string
}

// Report summarizes one verification pass.
type Report struct {
	Locales  []string
	Findings []Finding
}

// Run loads every <code>.lproj/bky_messages.json under destDir and checks
// each locale's catalog for every baseline key, translating the keys it
// holds through a translator built over the assembled catalogs. The
// baseline bundle (en.lproj) must exist. A non-empty findings list is an
// error.
func (s *Service) Run(ctx context.Context, destDir string) (*Report, error) {
	if destDir == "" {
		return nil, errors.New("verify: destination directory is required")
	}

	catalogs, err := loadBundles(destDir)
	if err != nil {
		return nil, err
	}

	baseline, ok := catalogs[baselineLocale]
	if !ok {
		return nil, fmt.Errorf("verify: baseline catalog %s%s/%s not found under %s",
			baselineLocale, locales.BundleSuffix, sync.MessagesFile, destDir)
	}

	translator, err := newTranslator(catalogs)
	if err != nil {
		return nil, fmt.Errorf("verify: build translator: %w", err)
	}

	keys := make([]string, 0, len(baseline))
	for key := range baseline {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	report := &Report{}
	for _, locale := range sortedLocales(catalogs) {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("verify: %w", err)
		}
		report.Locales = append(report.Locales, locale)

		// Membership is checked against the loaded catalog itself: the
		// translator resolves missing keys through the baseline locale,
		// so a translate error alone can never flag an incomplete
		// bundle. The translate pass then confirms every present key is
		// consumable by the runtime localization layer.
		messages := catalogs[locale]
		var missing []string
		for _, key := range keys {
			if _, ok := messages[key]; !ok {
				missing = append(missing, key)
				continue
			}
			if _, err := translator.Translate(locale, key); err != nil {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			s.logger.Error("locale is missing baseline keys",
				logger.Field{Key: "locale", Value: locale},
				logger.Field{Key: "missing", Value: len(missing)},
			)
			report.Findings = append(report.Findings, Finding{Locale: locale, Missing: missing})
		}
	}

	s.logger.Info("verified localization bundles",
		logger.Field{Key: "locales", Value: len(report.Locales)},
		logger.Field{Key: "keys", Value: len(keys)},
		logger.Field{Key: "findings", Value: len(report.Findings)},
	)

	if len(report.Findings) > 0 {
		return report, fmt.Errorf("verify: %d of %d locales are missing baseline keys",
			len(report.Findings), len(report.Locales))
	}
	return report, nil
}

// loadBundles reads every .lproj messages file directly under destDir.
func loadBundles(destDir string) (map[string]catalog.MessageCatalog, error) {
	entries, err := os.ReadDir(destDir)
	if err != nil {
		return nil, fmt.Errorf("verify: %w", err)
	}

	catalogs := make(map[string]catalog.MessageCatalog)
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), locales.BundleSuffix) {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), locales.BundleSuffix)
		messages, err := catalog.ReadFile(filepath.Join(destDir, entry.Name(), sync.MessagesFile))
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
		catalogs[locale] = messages
	}
	if len(catalogs) == 0 {
		return nil, fmt.Errorf("verify: no localization bundles found under %s", destDir)
	}
	return catalogs, nil
}

func newTranslator(catalogs map[string]catalog.MessageCatalog) (i18n.Translator, error) {
	translations := make(i18n.Translations, len(catalogs))
	for locale, messages := range catalogs {
		translations[locale] = newCatalog(locale, messages)
	}
	store := i18n.NewStaticStore(translations)
	return i18n.NewSimpleTranslator(store, i18n.WithTranslatorDefaultLocale(baselineLocale))
}

func newCatalog(locale string, entries catalog.MessageCatalog) *i18n.TranslationCatalog {
	out := &i18n.TranslationCatalog{
		Locale:   i18n.Locale{Code: locale},
		Messages: make(map[string]i18n.Message, len(entries)),
	}
	for key, template := range entries {
		msg := i18n.Message{}
		msg.SetContent(template)
		out.Messages[key] = msg
	}
	return out
}

func sortedLocales(catalogs map[string]catalog.MessageCatalog) []string {
	out := make([]string, 0, len(catalogs))
	for locale := range catalogs {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}
