package extract

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingContext     = errors.New("missing context argument")
	ErrNonLiteralContext  = errors.New("context is not a string literal")
	ErrMissingPlural      = errors.New("missing plural argument")
	ErrNonLiteralPlural   = errors.New("plural form is not a string literal")
	ErrIncompatiblePlural = errors.New("incompatible plural forms")
)

// MarkupError reports a translation call that cannot be extracted.
type MarkupError struct {
	Err    error
	File   string
	Line   int
	Helper string
	MsgID  string
	// Values holds the conflicting plural forms for ErrIncompatiblePlural.
	Values []string
}

func (e *MarkupError) Error() string {
	var b strings.Builder
	if e.File != "" {
		fmt.Fprintf(&b, "%s:", e.File)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, "%d: ", e.Line)
	} else if e.File != "" {
		b.WriteString(" ")
	}
	if e.Helper != "" {
		fmt.Fprintf(&b, "%s ", e.Helper)
	}
	fmt.Fprintf(&b, "%q: %v", e.MsgID, e.Err)
	if len(e.Values) > 0 {
		quoted := make([]string, len(e.Values))
		for i, v := range e.Values {
			quoted[i] = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(quoted, " != "))
	}
	return b.String()
}

func (e *MarkupError) Unwrap() error {
	return e.Err
}
