package po

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/leonelquinteros/gotext/plurals"
)

var ErrBadPluralForms = errors.New("bad Plural-Forms header")

// pluralCheckRange is how many values of n a plural expression is checked
// against when compiled.
const pluralCheckRange = 1000

// PluralForms is a parsed Plural-Forms header.
type PluralForms struct {
	NPlurals int
	Plural   plurals.Expression
}

// Index returns the plural form used for n.
func (p *PluralForms) Index(n uint32) int {
	return p.Plural.Eval(n)
}

// CompilePluralForms parses a header value such as
// "nplurals=2; plural=(n != 1);" and checks that the expression selects an
// existing form.
func CompilePluralForms(header string) (*PluralForms, error) {
	var forms PluralForms
	var plural string
	for _, field := range strings.Split(header, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		k, v, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrBadPluralForms, field)
		}
		switch strings.TrimSpace(k) {
		case "nplurals":
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: nplurals=%s", ErrBadPluralForms, v)
			}
			forms.NPlurals = n
		case "plural":
			plural = strings.TrimSpace(v)
		default:
			return nil, fmt.Errorf("%w: unknown field %q", ErrBadPluralForms, k)
		}
	}
	if forms.NPlurals == 0 || plural == "" {
		return nil, fmt.Errorf("%w: %q needs nplurals and plural", ErrBadPluralForms, header)
	}

	expr, err := plurals.Compile(plural)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadPluralForms, plural, err)
	}
	// An incomplete ternary compiles to nothing without an error.
	if expr == nil {
		return nil, fmt.Errorf("%w: cannot compile %s", ErrBadPluralForms, plural)
	}
	for n := uint32(0); n < pluralCheckRange; n++ {
		idx, err := eval(expr, n)
		if err != nil {
			return nil, fmt.Errorf("%w: n=%d: %v", ErrBadPluralForms, n, err)
		}
		if idx < 0 || idx >= forms.NPlurals {
			return nil, fmt.Errorf("%w: n=%d selects form %d of %d", ErrBadPluralForms, n, idx, forms.NPlurals)
		}
	}
	forms.Plural = expr
	return &forms, nil
}

// eval turns the runtime panic of a modulo by zero into an error.
func eval(expr plurals.Expression, n uint32) (idx int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return expr.Eval(n), nil
}
