// Package locales owns the locale policy tables: which upstream codes are
// renamed before use, which codes the target platform cannot host, and how a
// locale maps onto its localization bundle directory.
//
// Both tables are data, not logic. The upstream project grows locales over
// time, so updates happen here (or via configuration) without touching the
// merge pass.
package locales

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// BundleSuffix is the directory suffix the platform uses for per-locale
// localization bundles ("fr" lives in "fr.lproj").
const BundleSuffix = ".lproj"

// BaselineFile is the upstream catalog that carries every message key.
const BaselineFile = "en.json"

// reserved names the merge pass must never treat as locale catalogs: the
// translator documentation file and the two auxiliary files that are copied
// verbatim instead of merged.
var reserved = map[string]struct{}{
	"qqq.json":       {},
	"constants.json": {},
	"synonyms.json":  {},
}

// Table holds the locale policy consulted for every candidate file.
type Table struct {
	// Renames maps upstream codes to their platform equivalent. Applied
	// before the unsupported check and before bundle resolution. Rename
	// targets must not themselves be rename keys, which keeps Remap
	// idempotent.
	Renames map[string]string

	// Unsupported lists codes that have no localization bundle equivalent
	// on the platform. Files for these codes are skipped with a notice.
	Unsupported map[string]struct{}
}

// DefaultTable returns the built-in policy: the regional Belarusian variant
// folds into its parent language, and the unsupported set is the union of
// the codes the upstream project publishes that the platform cannot host.
func DefaultTable() Table {
	return Table{
		Renames: map[string]string{
			"be-tarask": "be",
		},
		Unsupported: Set(
			"ab", "ba", "bcc", "diq", "hrx", "ia", "lki", "lrc",
			"oc", "pms", "sc", "sd", "shn", "tcy", "tl", "tlh",
		),
	}
}

// Set builds an Unsupported membership set from a list of codes.
func Set(codes ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		out[code] = struct{}{}
	}
	return out
}

// Remap returns the platform code for an upstream code. Total and
// idempotent: codes without a rename entry pass through unchanged, and a
// remapped code is never itself a rename key.
func (t Table) Remap(code string) string {
	if mapped, ok := t.Renames[code]; ok {
		return mapped
	}
	return code
}

// Supported reports whether the platform can host the (already remapped)
// code.
func (t Table) Supported(code string) bool {
	_, blocked := t.Unsupported[code]
	return !blocked
}

// BundleDir resolves the localization bundle directory for a code under the
// destination messages root.
func (t Table) BundleDir(root, code string) string {
	return filepath.Join(root, code+BundleSuffix)
}

// Reserved reports whether the upstream filename is one of the fixed names
// the merge pass skips.
func Reserved(name string) bool {
	_, ok := reserved[name]
	return ok
}

// CodeFromFile derives the candidate locale code from an upstream catalog
// filename by stripping the ".json" suffix. The caller is expected to have
// filtered non-JSON names already.
func CodeFromFile(name string) string {
	return strings.TrimSuffix(name, ".json")
}

// DisplayName returns the English display name for a locale code, used to
// enrich skip notices. Falls back to the bare code when the code does not
// parse as a language tag.
func DisplayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
