// Package catalog resolves the language a verification run targets and
// serves the matching translation catalog. Catalogs are immutable after
// construction and lookups never fail: unknown identifiers fall back to the
// default language so callers always hold a usable catalog.
package catalog

import (
	"strings"

	"github.com/pitabwire/lens/config"
)

// Language identifies one supported translation language. The set of valid
// identifiers is closed and known at build time.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	German  Language = "de"
)

// DefaultLanguage is the identifier every absent or unrecognized input maps to.
const DefaultLanguage = English

// Supported lists every language the harness ships catalogs for.
func Supported() []Language {
	return []Language{English, French, German}
}

// Known reports whether raw names a supported language identifier.
// Identifiers are lowercase by convention and compared exactly.
func Known(raw string) bool {
	for _, lang := range Supported() {
		if Language(raw) == lang {
			return true
		}
	}
	return false
}

func (l Language) String() string {
	return string(l)
}

// Resolve maps the raw external language input to the identifier the run
// targets. It is total: an empty input yields DefaultLanguage and anything
// else passes through untouched apart from surrounding whitespace. Membership
// validation happens only when a catalog is fetched, not here.
func Resolve(raw string) Language {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLanguage
	}

	return Language(raw)
}

// ResolveFromConfig resolves the active language from already-parsed
// configuration. The result is recomputed on every call so it always reflects
// the configuration value it is handed.
func ResolveFromConfig(cfg config.ConfigurationLanguage) Language {
	if cfg == nil {
		return DefaultLanguage
	}
	return Resolve(cfg.TargetLang())
}
