package xgettext

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcore/go-xgettext-hbs/catalog"
	"github.com/snapcore/go-xgettext-hbs/extract"
	"github.com/snapcore/go-xgettext-hbs/po"
)

var templates = fstest.MapFS{
	"views/index.hbs": {Data: []byte(`<h1>{{gettext "Welcome"}}</h1>
<p>{{ngettext "One apple" "Many apples" count}}</p>
{{#if menu}}{{pgettext "menu" "Open"}}{{/if}}
`)},
	"views/partials/nav.hbs": {Data: []byte(`<nav>{{link (gettext "Welcome") href="/"}}</nav>`)},
	"extra.hbs":              {Data: []byte(`{{_ "Extra"}}`)},
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	err := Generate(&buf, Config{
		Files:    []string{"extra.hbs"},
		Patterns: []string{"views/**/*.hbs", "extra.hbs"},
		Catalog:  catalog.Options{FS: templates},
		Writer: po.Writer{Header: po.Header{
			PackageName:  "shop",
			CreationDate: "2026-10-18 12:00+0000",
			PluralForms:  "nplurals=2; plural=(n != 1);",
		}},
	})
	require.NoError(t, err)

	text := buf.String()
	assert.True(t, strings.HasPrefix(text, "# SOME DESCRIPTIVE TITLE."))
	assert.Contains(t, text, `"Project-Id-Version: shop\n"`)
	assert.Contains(t, text, `"Plural-Forms: nplurals=2; plural=(n != 1);\n"`)
	assert.True(t, strings.HasSuffix(text, `
#: extra.hbs:1
msgid "Extra"
msgstr ""

#: views/index.hbs:1 views/partials/nav.hbs:1
msgid "Welcome"
msgstr ""

#: views/index.hbs:2
msgid "One apple"
msgid_plural "Many apples"
msgstr[0] ""
msgstr[1] ""

#: views/index.hbs:3
msgctxt "menu"
msgid "Open"
msgstr ""
`), text)

	parsed := gotext.NewPo()
	parsed.Parse(buf.Bytes())
	assert.Equal(t, "Welcome", parsed.Get("Welcome"))
	assert.Equal(t, "Many apples", parsed.GetN("One apple", "Many apples", 3))
	assert.Equal(t, "Open", parsed.GetC("Open", "menu"))
}

func TestGenerateInputs(t *testing.T) {
	cfg := Config{
		Files:    []string{"extra.hbs"},
		Patterns: []string{"**/*.hbs"},
		Catalog:  catalog.Options{FS: templates},
	}
	files, err := cfg.Inputs()
	require.NoError(t, err)
	assert.Equal(t, []string{"extra.hbs", "views/index.hbs", "views/partials/nav.hbs"}, files)
}

func TestGenerateFailsWithoutOutput(t *testing.T) {
	fsys := fstest.MapFS{
		"ok.hbs":  {Data: []byte(`{{gettext "ok"}}`)},
		"bad.hbs": {Data: []byte(`{{ngettext "One item"}}`)},
	}
	var buf bytes.Buffer
	err := Generate(&buf, Config{
		Patterns: []string{"*.hbs"},
		Catalog:  catalog.Options{FS: fsys},
	})
	assert.ErrorIs(t, err, extract.ErrMissingPlural)
	assert.Zero(t, buf.Len())

	err = Generate(&buf, Config{
		Patterns: []string{"{unclosed"},
		Catalog:  catalog.Options{FS: fsys},
	})
	var resErr *catalog.ResolutionError
	assert.ErrorAs(t, err, &resErr)
	assert.Zero(t, buf.Len())
}
