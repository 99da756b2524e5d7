// Package lenstests provides test infrastructure for harness consumers: a
// fixture settings site rendered from the translation catalogs, a testify
// suite base that serves it, and polling wait helpers for page conditions.
package lenstests

import (
	"html/template"
	"net/http"

	"github.com/pitabwire/util"

	"github.com/pitabwire/lens/catalog"
)

// fixtureTemplate mirrors the settings page of the application under test.
// The "Language" item label and its hint are fixed non-localized labels, so
// structural expectations against them hold for every language; everything
// rendered from the catalog varies per language.
var fixtureTemplate = template.Must(template.New("settings").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head><title>{{.V.title}}</title></head>
<body>
<main data-testid="settings-page">
  <h1 data-testid="settings-heading">{{.V.settings}}</h1>
  <div id="welcome-overlay" data-testid="welcome-overlay" role="dialog" aria-label="welcome">
    <button data-testid="dismiss-welcome" data-dismiss="welcome-overlay" aria-label="dismiss welcome">{{.V.dismiss}}</button>
  </div>
  <ul data-testid="settings-list">
    <li data-testid="language-item">Language
      <p>Change the language</p>
      <button data-testid="language-selector" aria-label="language selector">{{.V.rhdhLanguage}}</button>
    </li>
    <li data-testid="appearance-item">{{.V.appearance}}
      <p data-testid="appearance-hint">{{.V.appearanceHint}}</p>
    </li>
  </ul>
  <button data-testid="open-account" data-opens="account-panel" aria-label="account">account</button>
  <div id="account-panel" data-testid="account-panel" role="dialog" aria-label="account panel" hidden>
    <button data-testid="sign-out" aria-label="sign out">{{.V.signOut}}</button>
  </div>
</main>
</body>
</html>
`))

// FixtureHandler serves the fixture settings site. The language comes from
// the lang query parameter and flows through the registry's fallback, so an
// unknown identifier renders the default language rather than erroring.
func FixtureHandler(registry *catalog.Registry) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := catalog.Resolve(r.URL.Query().Get("lang"))
		cat := registry.Locale(lang)

		values := make(map[string]string, cat.Len())
		for _, key := range cat.Keys() {
			values[key] = cat.Get(key)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		err := fixtureTemplate.Execute(w, map[string]any{
			"Lang": cat.Language().String(),
			"V":    values,
		})
		if err != nil {
			util.Log(r.Context()).WithError(err).Error("could not render fixture page")
		}
	})
}
