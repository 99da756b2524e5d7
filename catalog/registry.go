package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed messages.*.toml
var localeFS embed.FS

// Registry holds every known catalog keyed by language identifier. It is
// built exactly once, is immutable afterwards and is safe for concurrent
// readers without locking.
type Registry struct {
	defaultLanguage Language
	catalogs        map[Language]Catalog
	bundle          *i18n.Bundle
}

// NewRegistry builds the registry from the embedded message files, one
// catalog per supported language.
func NewRegistry() (*Registry, error) {
	return NewRegistryFromFS(localeFS, DefaultLanguage, Supported()...)
}

// NewRegistryFromFS builds a registry from messages.<lang>.toml files found
// in fsys. Every language must be registered exactly once and the default
// language must be among them; anything else is a construction error.
func NewRegistryFromFS(fsys fs.FS, defaultLang Language, languages ...Language) (*Registry, error) {
	tag, err := language.Parse(string(defaultLang))
	if err != nil {
		tag = language.English
	}

	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	catalogs := make(map[Language]Catalog, len(languages))
	for _, lang := range languages {
		if _, exists := catalogs[lang]; exists {
			return nil, fmt.Errorf("catalog: language %q registered twice", lang)
		}

		name := fmt.Sprintf("messages.%s.toml", lang)
		data, readErr := fs.ReadFile(fsys, name)
		if readErr != nil {
			return nil, fmt.Errorf("catalog: reading %s: %w", name, readErr)
		}

		messages := map[string]string{}
		if unmarshalErr := toml.Unmarshal(data, &messages); unmarshalErr != nil {
			return nil, fmt.Errorf("catalog: parsing %s: %w", name, unmarshalErr)
		}

		if _, parseErr := bundle.ParseMessageFileBytes(data, name); parseErr != nil {
			return nil, fmt.Errorf("catalog: registering %s: %w", name, parseErr)
		}

		catalogs[lang] = Catalog{
			language:  lang,
			messages:  messages,
			localizer: i18n.NewLocalizer(bundle, string(lang)),
		}
	}

	if _, ok := catalogs[defaultLang]; !ok {
		return nil, fmt.Errorf("catalog: default language %q has no catalog", defaultLang)
	}

	return &Registry{
		defaultLanguage: defaultLang,
		catalogs:        catalogs,
		bundle:          bundle,
	}, nil
}

// DefaultLanguage returns the identifier unresolved lookups fall back to.
func (r *Registry) DefaultLanguage() Language {
	return r.defaultLanguage
}

// Languages lists every registered language identifier, sorted.
func (r *Registry) Languages() []Language {
	languages := make([]Language, 0, len(r.catalogs))
	for lang := range r.catalogs {
		languages = append(languages, lang)
	}
	sort.Slice(languages, func(i, j int) bool { return languages[i] < languages[j] })
	return languages
}

// Has reports whether lang is registered.
func (r *Registry) Has(lang Language) bool {
	_, ok := r.catalogs[lang]
	return ok
}

// Catalog performs a raw lookup without fallback.
func (r *Registry) Catalog(lang Language) (Catalog, bool) {
	c, ok := r.catalogs[lang]
	return c, ok
}

// Locale returns the catalog for lang, falling back to the default language's
// catalog when lang is not registered. The result is never absent; the
// assertion layer always receives a usable catalog.
func (r *Registry) Locale(lang Language) Catalog {
	if c, ok := r.catalogs[lang]; ok {
		return c
	}
	return r.catalogs[r.defaultLanguage]
}

// Bundle exposes the underlying message bundle for callers that localize
// through go-i18n directly.
func (r *Registry) Bundle() *i18n.Bundle {
	return r.bundle
}

// MissingKeys reports every key the default catalog holds that lang's catalog
// does not. A non-empty result is translation drift: lookups for those keys
// silently fall back, which the data-integrity tests flag.
func (r *Registry) MissingKeys(lang Language) []string {
	def := r.catalogs[r.defaultLanguage]
	target, ok := r.catalogs[lang]
	if !ok {
		return def.Keys()
	}

	var missing []string
	for _, key := range def.Keys() {
		if !target.Has(key) {
			missing = append(missing, key)
		}
	}
	return missing
}
