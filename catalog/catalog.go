package catalog

import (
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
)

// Catalog is the immutable set of translation key to localized string pairs
// for one language. Values are shared, never mutated; a Catalog is safe to
// copy and to read from any goroutine.
type Catalog struct {
	language  Language
	messages  map[string]string
	localizer *i18n.Localizer
}

// Language returns the identifier this catalog was registered under.
func (c Catalog) Language() Language {
	return c.language
}

// Value looks up key and reports whether the catalog holds it. Absence is
// never an error at this layer; callers decide whether a missing key matters.
func (c Catalog) Value(key string) (string, bool) {
	v, ok := c.messages[key]
	return v, ok
}

// Get returns the localized value for key, or the empty string when the
// catalog does not hold it.
func (c Catalog) Get(key string) string {
	return c.messages[key]
}

// Has reports whether the catalog holds key.
func (c Catalog) Has(key string) bool {
	_, ok := c.messages[key]
	return ok
}

// Keys returns every translation key in the catalog, sorted.
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c.messages))
	for k := range c.messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of keys the catalog holds.
func (c Catalog) Len() int {
	return len(c.messages)
}

// Render localizes key with the supplied template data. Plain values render
// unchanged; values carrying {{.Field}} placeholders are executed against
// data. A key absent from every registered catalog yields an error.
func (c Catalog) Render(key string, data map[string]any) (string, error) {
	if c.localizer == nil {
		if v, ok := c.messages[key]; ok {
			return v, nil
		}
		return "", &i18n.MessageNotFoundErr{MessageID: key}
	}

	return c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
}

// Equal reports whether two catalogs carry the same language, key set and
// values.
func (c Catalog) Equal(other Catalog) bool {
	if c.language != other.language || len(c.messages) != len(other.messages) {
		return false
	}
	for k, v := range c.messages {
		ov, ok := other.messages[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}
