package po

import (
	"errors"

	. "gopkg.in/check.v1"
)

var _ = Suite(pluralSuite{})

type pluralSuite struct{}

func (pluralSuite) TestCompilePluralForms(c *C) {
	for _, test := range []struct {
		header   string
		nplurals int
		expected map[uint32]int
	}{
		{"nplurals=2; plural=(n != 1);", 2, map[uint32]int{0: 1, 1: 0, 2: 1}},
		{"nplurals=2; plural=n > 1;", 2, map[uint32]int{0: 0, 1: 0, 2: 1}},
		{"nplurals=1; plural=0;", 1, map[uint32]int{0: 0, 7: 0}},
		{"nplurals=3; plural=n==1 ? 0 : n==2 ? 1 : 2;", 3, map[uint32]int{1: 0, 2: 1, 0: 2, 5: 2}},
		{
			"nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);",
			3, map[uint32]int{1: 0, 11: 2, 21: 0, 3: 1, 13: 2, 25: 2},
		},
		{
			"nplurals=6; plural=(n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5);",
			6, map[uint32]int{0: 0, 1: 1, 2: 2, 3: 3, 11: 4, 100: 5, 102: 5},
		},
	} {
		comment := Commentf("header %q", test.header)
		forms, err := CompilePluralForms(test.header)
		if !c.Check(err, IsNil, comment) {
			continue
		}
		c.Check(forms.NPlurals, Equals, test.nplurals, comment)
		for n, want := range test.expected {
			c.Check(forms.Index(n), Equals, want, Commentf("header %q, n=%d", test.header, n))
		}
	}
}

func (pluralSuite) TestCompilePluralFormsFailures(c *C) {
	for _, header := range []string{
		"nplurals=2; plural=n;",
		"nplurals=2; plural=n/0;",
		"nplurals=2; plural=(n%0==1);",
		"nplurals=2; plural=n==1?0:;",
		"nplurals=2; plural=n==1 ? 0 : n==2 ? 1 : 2;",
		"nplurals=0; plural=0;",
		"nplurals=two; plural=0;",
		"plural=(n != 1);",
		"nplurals=2;",
		"nplurals=2; plural=(n != 1); extra=1;",
		"nplurals=2; plural=n=1;",
		"nplurals 2",
	} {
		_, err := CompilePluralForms(header)
		c.Check(errors.Is(err, ErrBadPluralForms), Equals, true, Commentf("header %q: %v", header, err))
	}
}
