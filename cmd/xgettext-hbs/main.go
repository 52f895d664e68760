package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	xgettext "github.com/snapcore/go-xgettext-hbs"
	"github.com/snapcore/go-xgettext-hbs/catalog"
	"github.com/snapcore/go-xgettext-hbs/keywords"
	"github.com/snapcore/go-xgettext-hbs/po"
)

var formatTime = func() string {
	return time.Now().Format("2006-01-02 15:04-0700")
}

type options struct {
	FilesFrom string `short:"f" long:"files-from" value-name:"FILE" description:"get list of input files from FILE"`

	Directory string `short:"D" long:"directory" value-name:"DIRECTORY" description:"resolve patterns and input files relative to DIRECTORY"`

	Output string `short:"o" long:"output" value-name:"FILE" description:"output to specified file"`

	Keywords []string `short:"k" long:"keyword" optional:"true" optional-value:"" value-name:"WORD" description:"look for WORD[:ARGS] as a translation helper; a bare -k disables the default helpers"`

	CommentTags []string `short:"c" long:"add-comments" optional:"true" optional-value:"" value-name:"TAG" description:"place comment blocks starting with TAG and preceding keyword lines in output file"`

	KeywordSpec string `long:"keyword-spec" value-name:"FILE" description:"read translation helpers from a YAML or JSON FILE"`

	Ignore []string `long:"ignore" value-name:"PATTERN" description:"skip files matching PATTERN"`

	Jobs int `short:"j" long:"jobs" value-name:"N" description:"read at most N files concurrently"`

	ContextKeys bool `long:"context-keys" description:"merge messages across files by msgid and context instead of msgid alone"`

	NoLocation bool `long:"no-location" description:"do not write '#: filename:line' lines"`

	SortOutput bool `short:"s" long:"sort-output" description:"generate sorted output"`

	PackageName string `long:"package-name" value-name:"PACKAGE" description:"set package name in output"`

	MsgidBugsAddress string `long:"msgid-bugs-address" default:"EMAIL" value-name:"ADDRESS" description:"set report address for msgid bugs"`

	Charset string `long:"charset" default:"UTF-8" value-name:"CHARSET" description:"set the charset declared in the header"`

	PluralForms string `long:"plural-forms" value-name:"RULE" description:"add a Plural-Forms header such as 'nplurals=2; plural=(n != 1);'"`

	Verbose bool `short:"v" long:"verbose" description:"log every resolved and extracted file"`

	LogFormat string `long:"log-format" default:"console" choice:"console" choice:"json" description:"log output format"`
}

func main() {
	var opts options
	args, err := flags.ParseArgs(&opts, os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := newLogger(os.Stderr, opts.LogFormat, opts.Verbose)
	if err := run(&opts, args, os.Stdout, logger); err != nil {
		logger.Error().Err(err).Msg("Extraction failed")
		os.Exit(1)
	}
}

func newLogger(w io.Writer, format string, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	if format != "json" {
		w = consoleWriter(w)
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func consoleWriter(w io.Writer) io.Writer {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.DateTime}
}

// keywordSpec builds the helper specification from the spec file and -k
// options. The defaults apply unless a spec file or a bare -k is given.
func (opts *options) keywordSpec() (keywords.Spec, error) {
	raw := keywords.Raw{}
	addDefaults := opts.KeywordSpec == ""
	if opts.KeywordSpec != "" {
		var err error
		if raw, err = keywords.ReadFile(opts.KeywordSpec); err != nil {
			return keywords.Spec{}, err
		}
	}

	for _, spec := range opts.Keywords {
		if spec == "" {
			addDefaults = false
			continue
		}
		name, kw, err := keywords.ParseKeyword(spec)
		if err != nil {
			return keywords.Spec{}, fmt.Errorf("cannot parse keyword %s: %w", spec, err)
		}
		raw[name] = kw
	}

	if addDefaults {
		for name, v := range keywords.Defaults() {
			if _, ok := raw[name]; !ok {
				raw[name] = v
			}
		}
	}
	return keywords.Normalize(raw)
}

func (opts *options) config(patterns []string) (xgettext.Config, error) {
	spec, err := opts.keywordSpec()
	if err != nil {
		return xgettext.Config{}, err
	}

	var files []string
	if opts.FilesFrom != "" {
		content, err := os.ReadFile(opts.FilesFrom)
		if err != nil {
			return xgettext.Config{}, fmt.Errorf("cannot read file %v: %w", opts.FilesFrom, err)
		}
		for _, line := range strings.Split(string(bytes.TrimSpace(content)), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				files = append(files, line)
			}
		}
	}
	if len(files) == 0 && len(patterns) == 0 {
		return xgettext.Config{}, errors.New("no input files given")
	}

	return xgettext.Config{
		Files:    files,
		Patterns: patterns,
		Catalog: catalog.Options{
			Dir:          opts.Directory,
			Ignore:       opts.Ignore,
			Keywords:     &spec,
			Jobs:         opts.Jobs,
			KeyByContext: opts.ContextKeys,
			CommentTags:  opts.CommentTags,
		},
		Writer: po.Writer{
			SortOutput: opts.SortOutput,
			NoLocation: opts.NoLocation,
			Header: po.Header{
				PackageName:      opts.PackageName,
				MsgidBugsAddress: opts.MsgidBugsAddress,
				CreationDate:     formatTime(),
				Charset:          opts.Charset,
				PluralForms:      opts.PluralForms,
			},
		},
	}, nil
}

func run(opts *options, patterns []string, stdout io.Writer, logger zerolog.Logger) error {
	catalog.Logger = logger

	cfg, err := opts.config(patterns)
	if err != nil {
		return err
	}
	logger.Debug().
		Strs("helpers", cfg.Catalog.Keywords.Names()).
		Msg("Using translation helpers")

	var buf bytes.Buffer
	if err := xgettext.Generate(&buf, cfg); err != nil {
		return err
	}

	if opts.Output == "" {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	if err := os.MkdirAll(filepath.Dir(opts.Output), 0o755); err != nil {
		return fmt.Errorf("cannot create output directory: %w", err)
	}
	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", opts.Output, err)
	}
	logger.Info().
		Str("path", opts.Output).
		Msg("Wrote message catalog")

	return nil
}
