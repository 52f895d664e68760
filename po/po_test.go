package po

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	. "gopkg.in/check.v1"
)

func Test(t *testing.T) {
	TestingT(t)
}

var _ = Suite(poSuite{})

type poSuite struct{}

func (poSuite) TestQuoteMsgid(c *C) {
	for _, test := range []struct {
		msg, expected string
	}{
		{"", `""`},
		{"Hello", `"Hello"`},
		{`say "hi"`, `"say \"hi\""`},
		{"tab\there", `"tab\there"`},
		{"one\n", `"one\n"`},
		{"one\ntwo", "\"\"\n\"one\\n\"\n\"two\""},
	} {
		c.Check(quoteMsgid(test.msg), Equals, test.expected, Commentf("msg %q", test.msg))
	}
}

func (poSuite) TestWrite(c *C) {
	w := Writer{
		SortOutput: true,
		Header: Header{
			PackageName:      "testing",
			MsgidBugsAddress: "bugs@example.org",
			CreationDate:     "1970-01-01 TT:TT+00:00",
			PluralForms:      "nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
		},
	}
	entries := []Entry{
		{MsgID: "two\nlines", References: []string{"file.hbs:100"}},
		{MsgID: "single", Plural: "plural", References: []string{"file.hbs:10"}},
		{MsgID: "one line", References: []string{"foo.hbs:4", "bar.hbs:42", "bar.hbs:42"}},
		{MsgID: "foo", Context: "context", HasContext: true, References: []string{"file.hbs:50"}},
		{MsgID: "hello\tworld", References: []string{
			"xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx.hbs:10",
			"yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy.hbs:20",
		}},
		{MsgID: "foo", References: []string{"a.hbs:1"}},
	}

	var buffer bytes.Buffer
	c.Assert(w.Write(&buffer, entries), IsNil)

	const expectedPot = `# SOME DESCRIPTIVE TITLE.
# Copyright (C) YEAR THE PACKAGE'S COPYRIGHT HOLDER
# This file is distributed under the same license as the PACKAGE package.
# FIRST AUTHOR <EMAIL@ADDRESS>, YEAR.
#
#, fuzzy
msgid ""
msgstr ""
"Project-Id-Version: testing\n"
"Report-Msgid-Bugs-To: bugs@example.org\n"
"POT-Creation-Date: 1970-01-01 TT:TT+00:00\n"
"PO-Revision-Date: YEAR-MO-DA HO:MI+ZONE\n"
"Last-Translator: FULL NAME <EMAIL@ADDRESS>\n"
"Language-Team: LANGUAGE <LL@li.org>\n"
"Language: \n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"Plural-Forms: nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);\n"

#: a.hbs:1
msgid "foo"
msgstr ""

#: file.hbs:50
msgctxt "context"
msgid "foo"
msgstr ""

#: xxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx.hbs:10
#: yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy.hbs:20
msgid "hello\tworld"
msgstr ""

#: bar.hbs:42 foo.hbs:4
msgid "one line"
msgstr ""

#: file.hbs:10
msgid "single"
msgid_plural "plural"
msgstr[0] ""
msgstr[1] ""
msgstr[2] ""

#: file.hbs:100
msgid ""
"two\n"
"lines"
msgstr ""
`
	c.Check(buffer.String(), Equals, expectedPot)
}

func (poSuite) TestMarshalDefaults(c *C) {
	out, err := Marshal(Header{CreationDate: "now"}, []Entry{
		{MsgID: "b", References: []string{"x.hbs:9", "x.hbs:10"}},
		{MsgID: "a", Plural: "as"},
		{MsgID: "c", Context: "", HasContext: true},
	})
	c.Assert(err, IsNil)
	text := string(out)

	c.Check(strings.Contains(text, `"Project-Id-Version: PACKAGE\n"`), Equals, true)
	c.Check(strings.Contains(text, "Report-Msgid-Bugs-To"), Equals, false)
	c.Check(strings.Contains(text, "Plural-Forms"), Equals, false)
	c.Check(strings.Contains(text, `charset=UTF-8`), Equals, true)

	// Input order and reference order are kept without SortOutput.
	c.Check(strings.HasSuffix(text, `
#: x.hbs:9 x.hbs:10
msgid "b"
msgstr ""

msgid "a"
msgid_plural "as"
msgstr[0] ""
msgstr[1] ""

msgctxt ""
msgid "c"
msgstr ""
`), Equals, true, Commentf("got:\n%s", text))
}

func (poSuite) TestWriteOptions(c *C) {
	w := Writer{
		NoLocation: true,
		Header: Header{
			PackageName: `my "pkg"`,
			Charset:     "ISO-8859-1",
		},
	}
	var buffer bytes.Buffer
	c.Assert(w.Write(&buffer, []Entry{{MsgID: "x", References: []string{"a.hbs:1"}}}), IsNil)
	text := buffer.String()
	c.Check(strings.Contains(text, "#:"), Equals, false)
	c.Check(strings.Contains(text, `"Project-Id-Version: my \"pkg\"\n"`), Equals, true)
	c.Check(strings.Contains(text, `charset=ISO-8859-1\n`), Equals, true)
}

func (poSuite) TestWriteComments(c *C) {
	out, err := Marshal(Header{}, []Entry{{
		MsgID:      "Home",
		References: []string{"a.hbs:2"},
		Comments:   []string{"TRANSLATORS: page title", "second line"},
	}})
	c.Assert(err, IsNil)
	c.Check(strings.HasSuffix(string(out), `
#. TRANSLATORS: page title
#. second line
#: a.hbs:2
msgid "Home"
msgstr ""
`), Equals, true, Commentf("got:\n%s", out))
}

func (poSuite) TestWriteErrors(c *C) {
	_, err := Marshal(Header{}, []Entry{{MsgID: "", References: []string{"a.hbs:3"}}})
	c.Check(errors.Is(err, ErrEmptyMsgid), Equals, true)
	c.Check(err, ErrorMatches, `.*references: a\.hbs:3.*`)

	_, err = Marshal(Header{PluralForms: "nplurals=2; plural=n;"}, nil)
	c.Check(errors.Is(err, ErrBadPluralForms), Equals, true)
}
