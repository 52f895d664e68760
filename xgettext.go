// Package xgettext extracts translatable strings from Handlebars templates
// into gettext catalog templates.
//
// Basic usage:
//
//	err := xgettext.Generate(os.Stdout, xgettext.Config{
//		Patterns: []string{"views/**/*.hbs"},
//		Writer:   po.Writer{Header: po.Header{PackageName: "app"}},
//	})
package xgettext

import (
	"io"

	"github.com/snapcore/go-xgettext-hbs/catalog"
	"github.com/snapcore/go-xgettext-hbs/po"
)

// Config describes one extraction run.
type Config struct {
	// Files are read as listed, before any pattern matches.
	Files []string
	// Patterns are glob patterns resolved by catalog.Resolve.
	Patterns []string

	Catalog catalog.Options
	Writer  po.Writer
}

// Inputs returns the files a run reads, without duplicates.
func (cfg *Config) Inputs() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(f string) {
		if !seen[f] {
			seen[f] = true
			files = append(files, f)
		}
	}

	for _, f := range cfg.Files {
		add(f)
	}
	for _, p := range cfg.Patterns {
		matches, err := catalog.Resolve(p, cfg.Catalog)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			add(m)
		}
	}
	return files, nil
}

// Generate extracts the configured templates and writes the catalog to out.
// Nothing is written when extraction fails.
func Generate(out io.Writer, cfg Config) error {
	files, err := cfg.Inputs()
	if err != nil {
		return err
	}
	entries, err := catalog.Files(files, cfg.Catalog)
	if err != nil {
		return err
	}
	return cfg.Writer.Write(out, entries)
}
