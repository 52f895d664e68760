package extract

import (
	"slices"
	"strconv"

	"github.com/leonelquinteros/gotext"

	"github.com/snapcore/go-xgettext-hbs/po"
)

// Key identifies a message within one template. Messages with a context are
// keyed as context + EOT + msgid, the way compiled catalogs store them, so an
// empty context stays distinct from no context.
type Key string

func MakeKey(msgid, context string, hasContext bool) Key {
	if !hasContext {
		return Key(msgid)
	}
	return Key(context + gotext.EotSeparator + msgid)
}

// Record accumulates the occurrences of one message in a template.
type Record struct {
	MsgID      string
	Context    string
	HasContext bool
	// Plural is empty unless some occurrence supplied a plural form.
	Plural string
	// Lines holds one line number per occurrence, in source order.
	Lines []int
	// Comments are translator comment lines, without repeats.
	Comments []string
}

func (r *Record) addComments(lines []string) {
	for _, line := range lines {
		if !slices.Contains(r.Comments, line) {
			r.Comments = append(r.Comments, line)
		}
	}
}

// Messages maps keys to records, remembering the order keys were first seen.
type Messages struct {
	keys    []Key
	records map[Key]*Record
}

func newMessages() *Messages {
	return &Messages{records: make(map[Key]*Record)}
}

func (m *Messages) Len() int {
	return len(m.keys)
}

// Keys returns the message keys in first-occurrence order.
func (m *Messages) Keys() []Key {
	return append([]Key(nil), m.keys...)
}

func (m *Messages) Get(k Key) (*Record, bool) {
	r, ok := m.records[k]
	return r, ok
}

func (m *Messages) record(msgid, context string, hasContext bool) *Record {
	k := MakeKey(msgid, context, hasContext)
	r, ok := m.records[k]
	if !ok {
		r = &Record{MsgID: msgid, Context: context, HasContext: hasContext}
		m.records[k] = r
		m.keys = append(m.keys, k)
	}
	return r
}

// Entries converts the records to catalog entries. References of the form
// path:line are attached only when path is not empty.
func (m *Messages) Entries(path string) []po.Entry {
	entries := make([]po.Entry, 0, len(m.keys))
	for _, k := range m.keys {
		r := m.records[k]
		e := po.Entry{
			MsgID:      r.MsgID,
			Plural:     r.Plural,
			Context:    r.Context,
			HasContext: r.HasContext,
			Comments:   r.Comments,
		}
		if path != "" {
			e.References = make([]string, len(r.Lines))
			for i, line := range r.Lines {
				e.References[i] = path + ":" + strconv.Itoa(line)
			}
		}
		entries = append(entries, e)
	}
	return entries
}
