package verify

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goliatone/go-localesync/internal/sync"
	"github.com/goliatone/go-localesync/pkg/catalog"
)

func writeBundle(t *testing.T, root, locale string, messages catalog.MessageCatalog) {
	t.Helper()
	dir := filepath.Join(root, locale+".lproj")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bundle: %v", err)
	}
	if err := catalog.WriteFile(filepath.Join(dir, sync.MessagesFile), messages); err != nil {
		t.Fatalf("write bundle: %v", err)
	}
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewService(Dependencies{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRunPassesWhenAllKeysResolve(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "en", catalog.MessageCatalog{"a": "1", "b": "2"})
	writeBundle(t, root, "fr", catalog.MessageCatalog{"a": "1", "b": "deux"})

	report, err := newTestService(t).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := []string{"en", "fr"}; !reflect.DeepEqual(report.Locales, want) {
		t.Fatalf("expected locales %v, got %v", want, report.Locales)
	}
	if len(report.Findings) != 0 {
		t.Fatalf("expected no findings, got %v", report.Findings)
	}
}

func TestRunFlagsMissingBaselineKeys(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "en", catalog.MessageCatalog{"a": "1", "b": "2", "c": "3"})
	writeBundle(t, root, "fr", catalog.MessageCatalog{"a": "1"})

	report, err := newTestService(t).Run(context.Background(), root)
	if err == nil {
		t.Fatal("expected an error for missing keys")
	}
	if len(report.Findings) != 1 {
		t.Fatalf("expected one finding, got %v", report.Findings)
	}
	finding := report.Findings[0]
	if finding.Locale != "fr" {
		t.Fatalf("expected finding for fr, got %s", finding.Locale)
	}
	if want := []string{"b", "c"}; !reflect.DeepEqual(finding.Missing, want) {
		t.Fatalf("expected missing %v, got %v", want, finding.Missing)
	}
}

func TestRunFlagsKeysOnlyPresentInBaseline(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "en", catalog.MessageCatalog{"a": "1", "b": "2"})
	// The runtime translator would resolve "b" for fr by falling back to
	// the baseline catalog; the bundle is still incomplete and must be
	// flagged. Extra locale-only keys are not findings.
	writeBundle(t, root, "fr", catalog.MessageCatalog{"a": "un", "z": "zed"})

	report, err := newTestService(t).Run(context.Background(), root)
	if err == nil {
		t.Fatal("verify should fail: fr is missing baseline key b")
	}
	if len(report.Findings) != 1 {
		t.Fatalf("expected one finding, got %v", report.Findings)
	}
	finding := report.Findings[0]
	if finding.Locale != "fr" {
		t.Fatalf("expected finding for fr, got %s", finding.Locale)
	}
	if want := []string{"b"}; !reflect.DeepEqual(finding.Missing, want) {
		t.Fatalf("expected missing %v, got %v", want, finding.Missing)
	}
}

func TestRunRequiresBaselineBundle(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "fr", catalog.MessageCatalog{"a": "1"})

	if _, err := newTestService(t).Run(context.Background(), root); err == nil {
		t.Fatal("expected missing en.lproj to be an error")
	}
}

func TestRunRequiresBundles(t *testing.T) {
	if _, err := newTestService(t).Run(context.Background(), t.TempDir()); err == nil {
		t.Fatal("expected an empty destination to be an error")
	}
}

func TestRunIgnoresNonBundleEntries(t *testing.T) {
	root := t.TempDir()
	writeBundle(t, root, "en", catalog.MessageCatalog{"a": "1"})
	if err := os.WriteFile(filepath.Join(root, sync.ConstantsFile), []byte("{}"), 0o644); err != nil {
		t.Fatalf("write constants: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "unrelated"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	report, err := newTestService(t).Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if want := []string{"en"}; !reflect.DeepEqual(report.Locales, want) {
		t.Fatalf("expected locales %v, got %v", want, report.Locales)
	}
}
