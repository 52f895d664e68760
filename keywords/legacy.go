package keywords

import (
	"fmt"
	"math"
)

// canonical turns any accepted shape of a keyword entry into role positions.
// It does not check that msgid is present; build does.
func canonical(v any) (map[Role]int, error) {
	switch v := v.(type) {
	case Keyword:
		return v.roles(), nil
	case *Keyword:
		if v == nil {
			return nil, fmt.Errorf("%w: nil keyword", ErrBadKeyword)
		}
		return v.roles(), nil
	case map[string]int:
		m := make(map[string]any, len(v))
		for role, pos := range v {
			m[role] = pos
		}
		return fromMap(m)
	case map[string]any:
		return fromMap(v)
	case []string:
		l := make([]any, len(v))
		for i, s := range v {
			l[i] = s
		}
		return fromList(l)
	case []int:
		l := make([]any, len(v))
		for i, pos := range v {
			l[i] = pos
		}
		return fromList(l)
	case []any:
		return fromList(v)
	}
	return nil, fmt.Errorf("%w: unsupported value of type %T", ErrBadKeyword, v)
}

func fromMap(m map[string]any) (map[Role]int, error) {
	roles := make(map[Role]int, len(m))
	for name, p := range m {
		r, ok := ParseRole(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRole, name)
		}
		pos, ok := position(p)
		if !ok {
			return nil, fmt.Errorf("%w: %s=%v", ErrBadPosition, name, p)
		}
		roles[r] = pos
	}
	return roles, nil
}

// fromList handles both list shapes. A list naming any role lists roles at
// their argument index; other elements only hold a position. Otherwise the
// list is the legacy form whose values are the msgid and plural positions.
func fromList(l []any) (map[Role]int, error) {
	roles := make(map[Role]int, len(l))
	if namesRoles(l) {
		for i, e := range l {
			name, _ := e.(string)
			if r, ok := ParseRole(name); ok {
				roles[r] = i
			}
		}
		return roles, nil
	}

	if len(l) > 2 {
		return nil, fmt.Errorf("%w: %d positions, at most 2 allowed", ErrBadKeyword, len(l))
	}
	for i, p := range l {
		pos, ok := position(p)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrBadPosition, p)
		}
		if i == 0 {
			roles[MsgID] = pos
		} else {
			roles[MsgIDPlural] = pos
		}
	}
	return roles, nil
}

func namesRoles(l []any) bool {
	for _, e := range l {
		if name, ok := e.(string); ok {
			if _, ok := ParseRole(name); ok {
				return true
			}
		}
	}
	return false
}

// position accepts the integer types produced by decoders and Go callers.
func position(v any) (int, bool) {
	var n int64
	switch v := v.(type) {
	case int:
		n = int64(v)
	case int8:
		n = int64(v)
	case int16:
		n = int64(v)
	case int32:
		n = int64(v)
	case int64:
		n = v
	case uint:
		n = int64(v)
	case uint8:
		n = int64(v)
	case uint16:
		n = int64(v)
	case uint32:
		n = int64(v)
	case uint64:
		if v > math.MaxInt32 {
			return 0, false
		}
		n = int64(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		n = int64(v)
	default:
		return 0, false
	}
	if n < 0 || n > math.MaxInt32 {
		return 0, false
	}
	return int(n), true
}
