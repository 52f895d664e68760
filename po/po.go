// Package po writes gettext message catalog templates.
package po

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/template"
)

var ErrEmptyMsgid = errors.New("empty msgid is reserved for the catalog header")

// Entry is one translatable message of a catalog.
type Entry struct {
	MsgID      string
	Plural     string
	Context    string
	HasContext bool
	// References are "file:line" locations of the message.
	References []string
	// Comments are written as "#." lines for translators.
	Comments []string
}

// Header holds the catalog metadata.
type Header struct {
	PackageName      string
	MsgidBugsAddress string
	CreationDate     string
	// Charset defaults to UTF-8.
	Charset string
	// PluralForms is written only when set, e.g. "nplurals=2; plural=(n != 1);".
	PluralForms string
}

// Writer renders entries as a POT file.
type Writer struct {
	Header     Header
	SortOutput bool
	NoLocation bool
}

const potTemplateData = `# SOME DESCRIPTIVE TITLE.
# Copyright (C) YEAR THE PACKAGE'S COPYRIGHT HOLDER
# This file is distributed under the same license as the PACKAGE package.
# FIRST AUTHOR <EMAIL@ADDRESS>, YEAR.
#
#, fuzzy
msgid ""
msgstr ""
"Project-Id-Version: {{ or .Header.PackageName "PACKAGE" | escape }}\n"
{{ if .Header.MsgidBugsAddress -}}
"Report-Msgid-Bugs-To: {{ .Header.MsgidBugsAddress | escape }}\n"
{{ end -}}
"POT-Creation-Date: {{ .Header.CreationDate | escape }}\n"
"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language-Team: LANGUAGE <LL@li.org>\n"
"Language: \n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset={{ .Charset | escape }}\n"
"Content-Transfer-Encoding: 8bit\n"
{{ if .Header.PluralForms -}}
"Plural-Forms: {{ .Header.PluralForms | escape }}\n"
{{ end -}}
{{ range .Messages -}}
{{ "\n" -}}
{{ .Comments -}}
{{ .Positions -}}
{{ if .HasContext -}}
msgctxt {{ .MsgContext }}
{{ end -}}
msgid {{ .Msgid }}
{{ if .MsgidPlural -}}
msgid_plural {{ .MsgidPlural }}
{{ range $.PluralIndexes -}}
msgstr[{{ . }}] ""
{{ end -}}
{{ else -}}
msgstr ""
{{ end -}}
{{ end -}}
`

var potTemplate = template.Must(template.New("pot").Funcs(template.FuncMap{
	"escape": escapeHeader,
}).Parse(potTemplateData))

type messageData struct {
	entry       Entry
	Msgid       string
	MsgidPlural string
	MsgContext  string
	HasContext  bool
	Comments    string
	Positions   string
}

func escapeHeader(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", " ")
}

func quoteMsgid(msg string) string {
	if len(msg) == 0 {
		return `""`
	}

	quoted := []string{`""`}
	for _, line := range strings.SplitAfter(msg, "\n") {
		if len(line) == 0 {
			continue
		}
		quoted = append(quoted, strconv.Quote(line))
	}

	if len(quoted) == 2 {
		return quoted[1]
	}
	return strings.Join(quoted, "\n")
}

// splitReference separates "file:line"; references without a numeric line
// sort by file only.
func splitReference(ref string) (file string, line int) {
	idx := strings.LastIndexByte(ref, ':')
	if idx < 0 {
		return ref, 0
	}
	line, err := strconv.Atoi(ref[idx+1:])
	if err != nil {
		return ref, 0
	}
	return ref[:idx], line
}

func (w *Writer) positions(refs []string) string {
	if w.NoLocation || len(refs) == 0 {
		return ""
	}
	if w.SortOutput {
		refs = append([]string(nil), refs...)
		sort.SliceStable(refs, func(i, j int) bool {
			fi, li := splitReference(refs[i])
			fj, lj := splitReference(refs[j])
			return fi < fj || fi == fj && li < lj
		})
	}

	var out, positions, last string
	for _, pos := range refs {
		// The same call may appear twice on one line.
		if pos == last {
			continue
		}
		last = pos
		if len(positions) > 0 && len(positions)+len(pos) > 75 {
			out += "#:" + positions + "\n"
			positions = ""
		}
		positions += " " + pos
	}
	if len(positions) > 0 {
		out += "#:" + positions + "\n"
	}
	return out
}

func (w *Writer) Write(out io.Writer, entries []Entry) error {
	nplurals := 2
	if w.Header.PluralForms != "" {
		forms, err := CompilePluralForms(w.Header.PluralForms)
		if err != nil {
			return err
		}
		nplurals = forms.NPlurals
	}

	msgData := make([]*messageData, 0, len(entries))
	for _, e := range entries {
		if e.MsgID == "" {
			return fmt.Errorf("%w (references: %s)", ErrEmptyMsgid, strings.Join(e.References, " "))
		}
		msgData = append(msgData, &messageData{
			entry:       e,
			Msgid:       quoteMsgid(e.MsgID),
			MsgidPlural: quoteIfSet(e.Plural),
			MsgContext:  quoteMsgid(e.Context),
			HasContext:  e.HasContext,
			Comments:    comments(e.Comments),
			Positions:   w.positions(e.References),
		})
	}

	if w.SortOutput {
		sort.SliceStable(msgData, func(i, j int) bool {
			return less(&msgData[i].entry, &msgData[j].entry)
		})
	}

	indexes := make([]int, nplurals)
	for i := range indexes {
		indexes[i] = i
	}
	charset := w.Header.Charset
	if charset == "" {
		charset = "UTF-8"
	}

	return potTemplate.Execute(out, struct {
		Header        Header
		Charset       string
		Messages      []*messageData
		PluralIndexes []int
	}{
		Header:        w.Header,
		Charset:       charset,
		Messages:      msgData,
		PluralIndexes: indexes,
	})
}

func comments(lines []string) string {
	var out string
	for _, line := range lines {
		out += "#. " + line + "\n"
	}
	return out
}

func quoteIfSet(s string) string {
	if s == "" {
		return ""
	}
	return quoteMsgid(s)
}

func less(a, b *Entry) bool {
	if a.MsgID != b.MsgID {
		return a.MsgID < b.MsgID
	}
	if a.Plural != b.Plural {
		return a.Plural < b.Plural
	}
	if a.HasContext != b.HasContext {
		return !a.HasContext
	}
	return a.Context < b.Context
}

// Marshal renders entries with default writer settings.
func Marshal(h Header, entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := Writer{Header: h}
	if err := w.Write(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
