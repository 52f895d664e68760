// Package keywords describes which template helpers are translation calls
// and which of their arguments carry the message id, plural form and context.
package keywords

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var (
	ErrNoMsgid     = errors.New("no msgid position")
	ErrUnknownRole = errors.New("unknown role")
	ErrBadPosition = errors.New("bad argument position")
	ErrBadKeyword  = errors.New("bad keyword")
)

// ConfigurationError reports a keyword specification entry that cannot be
// used for extraction.
type ConfigurationError struct {
	Helper string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid keyword spec for %q: %v", e.Helper, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Role is the meaning of a helper argument.
type Role int

const (
	MsgID Role = iota
	MsgIDPlural
	MsgCtxt
)

var roleNames = [...]string{
	MsgID:       "msgid",
	MsgIDPlural: "msgid_plural",
	MsgCtxt:     "msgctxt",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "role(" + strconv.Itoa(int(r)) + ")"
	}
	return roleNames[r]
}

// ParseRole maps a role name such as "msgid_plural" to its Role.
func ParseRole(name string) (Role, bool) {
	for r, n := range roleNames {
		if n == name {
			return Role(r), true
		}
	}
	return 0, false
}

// Keyword holds the zero-based argument positions of a translation helper.
// MsgIDPlural and MsgCtxt are -1 when the helper has no such argument.
type Keyword struct {
	MsgID       int
	MsgIDPlural int
	MsgCtxt     int
}

// Position returns the argument position for r, if the keyword has one.
func (k Keyword) Position(r Role) (int, bool) {
	var pos int
	switch r {
	case MsgID:
		pos = k.MsgID
	case MsgIDPlural:
		pos = k.MsgIDPlural
	case MsgCtxt:
		pos = k.MsgCtxt
	default:
		return 0, false
	}
	return pos, pos >= 0
}

func (k Keyword) roles() map[Role]int {
	roles := make(map[Role]int, len(roleNames))
	for r := range roleNames {
		if pos, ok := k.Position(Role(r)); ok {
			roles[Role(r)] = pos
		}
	}
	return roles
}

func (k Keyword) String() string {
	var parts []string
	for r := range roleNames {
		if pos, ok := k.Position(Role(r)); ok {
			parts = append(parts, fmt.Sprintf("%s=%d", Role(r), pos))
		}
	}
	return "{" + strings.Join(parts, " ") + "}"
}

// Spec is a validated, immutable keyword specification.
type Spec struct {
	keywords map[string]Keyword
}

// Lookup returns the keyword registered for a helper name.
func (s Spec) Lookup(helper string) (Keyword, bool) {
	k, ok := s.keywords[helper]
	return k, ok
}

// Names returns the helper names in the spec, sorted.
func (s Spec) Names() []string {
	names := make([]string, 0, len(s.keywords))
	for name := range s.keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s Spec) Len() int {
	return len(s.keywords)
}

// Raw is a keyword specification as written by users: helper name mapped to
// either a role map ({"msgid": 0}), a list of role names in argument order
// (["msgctxt", "msgid"]), a legacy list of positions ([0, 1]) or a Keyword.
type Raw map[string]any

// Defaults returns the raw form of the default specification.
func Defaults() Raw {
	return Raw{
		"_":         []any{"msgid"},
		"gettext":   []any{"msgid"},
		"ngettext":  []any{"msgid", "msgid_plural"},
		"pgettext":  []any{"msgctxt", "msgid"},
		"npgettext": []any{"msgctxt", "msgid", "msgid_plural"},
	}
}

// Default returns the specification used when none is supplied.
func Default() Spec {
	spec, err := Normalize(Defaults())
	if err != nil {
		panic(err)
	}
	return spec
}

// Normalize canonicalizes and validates raw. A nil raw yields the default
// specification. Any invalid entry fails the whole specification.
func Normalize(raw Raw) (Spec, error) {
	if raw == nil {
		return Default(), nil
	}

	// Sorted so the reported error does not depend on map order.
	helpers := make([]string, 0, len(raw))
	for helper := range raw {
		helpers = append(helpers, helper)
	}
	sort.Strings(helpers)

	spec := Spec{keywords: make(map[string]Keyword, len(raw))}
	for _, helper := range helpers {
		roles, err := canonical(raw[helper])
		if err != nil {
			return Spec{}, &ConfigurationError{Helper: helper, Err: err}
		}
		k, err := build(roles)
		if err != nil {
			return Spec{}, &ConfigurationError{Helper: helper, Err: err}
		}
		spec.keywords[helper] = k
	}
	return spec, nil
}

func build(roles map[Role]int) (Keyword, error) {
	msgid, ok := roles[MsgID]
	if !ok {
		return Keyword{}, ErrNoMsgid
	}
	k := Keyword{MsgID: msgid, MsgIDPlural: -1, MsgCtxt: -1}
	if pos, ok := roles[MsgIDPlural]; ok {
		k.MsgIDPlural = pos
	}
	if pos, ok := roles[MsgCtxt]; ok {
		k.MsgCtxt = pos
	}
	return k, nil
}

// ParseKeyword parses an xgettext style keyword of form FUNC[:ARG,...], where
// ARG is a one-based argument number, suffixed with "c" for the context. The
// first plain number is the msgid, the second the plural form.
func ParseKeyword(spec string) (name string, k Keyword, err error) {
	idx := strings.IndexByte(spec, ':')
	var args []string
	if idx >= 0 {
		name = spec[:idx]
		args = strings.Split(spec[idx+1:], ",")
	} else {
		name = spec
	}
	if name == "" {
		return "", Keyword{}, ErrBadKeyword
	}

	k = Keyword{MsgID: 0, MsgIDPlural: -1, MsgCtxt: -1}
	processed := 0
	for _, arg := range args {
		isContext := strings.HasSuffix(arg, "c")
		val, err := strconv.Atoi(strings.TrimSuffix(arg, "c"))
		if err != nil {
			return "", Keyword{}, fmt.Errorf("%w: %q", ErrBadKeyword, spec)
		}
		if val < 1 {
			return "", Keyword{}, fmt.Errorf("%w: %q", ErrBadPosition, spec)
		}
		if isContext {
			k.MsgCtxt = val - 1
			continue
		}
		switch processed {
		case 0:
			k.MsgID = val - 1
		case 1:
			k.MsgIDPlural = val - 1
		default:
			return "", Keyword{}, fmt.Errorf("%w: %q", ErrBadKeyword, spec)
		}
		processed++
	}
	return name, k, nil
}
