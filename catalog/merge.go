package catalog

import (
	"slices"
	"sort"

	"github.com/snapcore/go-xgettext-hbs/extract"
	"github.com/snapcore/go-xgettext-hbs/po"
)

// merge combines per-file entries. The first occurrence of a key sets the
// entry; later ones add their references, which are then sorted. Without
// byContext the key is the bare msgid, so entries differing only in context
// collapse into the first one seen.
func merge(files []string, perFile [][]po.Entry, byContext bool) ([]po.Entry, error) {
	index := make(map[string]int)
	var merged []po.Entry

	for i, entries := range perFile {
		for _, e := range entries {
			key := e.MsgID
			if byContext {
				key = string(extract.MakeKey(e.MsgID, e.Context, e.HasContext))
			}

			at, ok := index[key]
			if !ok {
				index[key] = len(merged)
				e.References = append([]string(nil), e.References...)
				e.Comments = append([]string(nil), e.Comments...)
				merged = append(merged, e)
				continue
			}

			m := &merged[at]
			if e.Plural != "" {
				if m.Plural != "" && m.Plural != e.Plural {
					return nil, &extract.MarkupError{
						Err:    extract.ErrIncompatiblePlural,
						File:   files[i],
						MsgID:  e.MsgID,
						Values: []string{m.Plural, e.Plural},
					}
				}
				m.Plural = e.Plural
			}
			for _, line := range e.Comments {
				if !slices.Contains(m.Comments, line) {
					m.Comments = append(m.Comments, line)
				}
			}
			m.References = append(m.References, e.References...)
			sort.Strings(m.References)
		}
	}
	return merged, nil
}
