package site

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/sitenav/internal/model"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)
	require.NoError(t, s.Validate())

	assert.Equal(t, "/", s.ThemeConfig.Nav[0].Link)
	assert.Empty(t, s.DuplicateLabels())
	for _, g := range s.ThemeConfig.Sidebar {
		assert.NotEmpty(t, g.Items, g.Text)
	}

	// callers cannot change the shared instance
	s.ThemeConfig.Nav[0].Link = "/changed"
	again, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "/", again.ThemeConfig.Nav[0].Link)
}

const validJSON = `{
  "title": "Docs",
  "description": "Notes",
  "themeConfig": {
    "nav": [
      {"text": "Home", "link": "/"},
      {"text": "Idioma", "items": [{"text": "English", "link": "/docs/en/"}]}
    ],
    "sidebar": [
      {"text": "Angular", "items": [{"text": "Intermedio", "link": "/docs/es/angular/intermediate"}]}
    ],
    "socialLinks": [{"icon": "github", "link": "https://github.com/example"}]
  }
}`

const validYAML = `title: Docs
description: Notes
themeConfig:
  nav:
    - text: Home
      link: /
    - text: Idioma
      items:
        - text: English
          link: /docs/en/
  sidebar:
    - text: Angular
      items:
        - text: Intermedio
          link: /docs/es/angular/intermediate
  socialLinks:
    - icon: github
      link: https://github.com/example
`

func TestDecodeFormatsAgree(t *testing.T) {
	fromJSON, err := Decode(strings.NewReader(validJSON), FormatJSON)
	require.NoError(t, err)
	fromYAML, err := Decode(strings.NewReader(validYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, "/docs/es/angular/intermediate", fromJSON.ThemeConfig.Sidebar[0].Items[0].Link)
	assert.True(t, fromJSON.ThemeConfig.Nav[1].IsGroup())
}

func TestDecodeRejectsBadShape(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		reason string
	}{
		{
			name:   "empty sidebar group",
			format: FormatJSON,
			input:  `{"title":"x","themeConfig":{"sidebar":[{"text":"Sql","items":[]}]}}`,
			reason: "must not be empty",
		},
		{
			name:   "missing link",
			format: FormatYAML,
			input:  "themeConfig:\n  nav:\n    - text: Home\n",
			reason: "must not be empty",
		},
		{
			name:   "nested nav group",
			format: FormatJSON,
			input:  `{"themeConfig":{"nav":[{"text":"a","items":[{"text":"b","items":[]}]}]}}`,
			reason: `themeConfig.nav[0].items[0] "b": items: unknown key`,
		},
		{
			name:   "unknown yaml key",
			format: FormatYAML,
			input:  "title: x\nthemeconfig: {}\n",
			reason: "line 2: field themeconfig not found",
		},
		{
			name:   "wrong case json keys",
			format: FormatJSON,
			input:  `{"title":"x","themeConfig":{"NAV":[{"Text":"Home","LINK":"/"}]}}`,
			reason: `themeConfig: NAV: unknown key (did you mean "nav"?)`,
		},
		{
			name:   "unknown json key in sidebar entry",
			format: FormatJSON,
			input:  `{"themeConfig":{"sidebar":[{"text":"Sql","items":[{"text":"Joins","link":"/j","extra":1}]}]}}`,
			reason: `themeConfig.sidebar[0].items[0] "Joins": extra: unknown key`,
		},
		{
			name:   "second yaml document",
			format: FormatYAML,
			input:  "title: x\n---\ntitle: y\n",
			reason: "unexpected document",
		},
		{
			name:   "wrong type",
			format: FormatJSON,
			input:  `{"themeConfig":{"nav":"home"}}`,
			reason: "expected []model.NavItem",
		},
		{
			name:   "empty document",
			format: FormatYAML,
			input:  "",
			reason: "empty document",
		},
		{
			name:   "trailing data",
			format: FormatJSON,
			input:  `{"title":"x"} {"title":"y"}`,
			reason: "unexpected data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			var ce *model.ConfigurationError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}

func TestDecodeWrongCaseJSON(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"TITLE":"x","ThemeConfig":{"NAV":[{"Text":"Home","LINK":"/"}]}}`), FormatJSON)
	var joined interface{ Unwrap() []error }
	require.True(t, errors.As(err, &joined), "got %v", err)

	var got []string
	for _, e := range joined.Unwrap() {
		var ce *model.ConfigurationError
		require.True(t, errors.As(e, &ce))
		got = append(got, ce.Error())
	}
	assert.Equal(t, []string{
		`$: TITLE: unknown key (did you mean "title"?)`,
		`$: ThemeConfig: unknown key (did you mean "themeConfig"?)`,
	}, got)
}

func TestDecodeYAMLErrorPosition(t *testing.T) {
	_, err := Decode(strings.NewReader("title: x\nthemeConfig:\n  nav:\n    - text: Home\n      href: /\n"), FormatYAML)
	var ce *model.ConfigurationError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, "line 5", ce.Path)
	assert.Contains(t, ce.Reason, "field href not found")
}

func TestDecodeFillsMissingSections(t *testing.T) {
	s, err := Decode(strings.NewReader("title: x\nthemeConfig:\n  nav:\n    - text: Home\n      link: /\n"), FormatYAML)
	require.NoError(t, err)
	assert.NotNil(t, s.ThemeConfig.Sidebar)
	assert.NotNil(t, s.ThemeConfig.SocialLinks)

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"sidebar":[]`)
	assert.Contains(t, string(out), `"socialLinks":[]`)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Docs", s.Title)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(filepath.Join(dir, "site"))
	assert.ErrorContains(t, err, "no file extension")

	_, err = Load(filepath.Join(dir, "site.toml"))
	assert.ErrorContains(t, err, "unknown format")
}

func TestFormats(t *testing.T) {
	f, err := ParseFormat(" YML ")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFromPath("config.mts")
	require.NoError(t, err)
	assert.Equal(t, FormatTS, f)

	_, err = Decode(strings.NewReader("{}"), FormatTS)
	assert.ErrorContains(t, err, "cannot be decoded")
}
