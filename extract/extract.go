// Package extract finds translation calls in Handlebars templates.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aymerick/raymond/ast"
	"github.com/aymerick/raymond/parser"

	"github.com/snapcore/go-xgettext-hbs/keywords"
	"github.com/snapcore/go-xgettext-hbs/po"
)

// Walk collects the messages of every call to a helper named in spec. The
// first malformed call aborts the walk and no messages are returned.
//
// A comment ending on the line of a call, or on the line before it, is kept
// for translators when its text starts with one of tags. An empty tag keeps
// every such comment.
func Walk(tree *ast.Program, spec keywords.Spec, tags ...string) (*Messages, error) {
	w := &walker{spec: spec, tags: tags}
	msgs, err := w.program(newMessages(), tree)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// Template parses text and walks the resulting tree.
func Template(text string, spec keywords.Spec, tags ...string) (*Messages, error) {
	tree, err := parser.Parse(text)
	if err != nil {
		return nil, err
	}
	return Walk(tree, spec, tags...)
}

// Source extracts the catalog entries of one template. The path, when not
// empty, is used for entry references and error messages.
func Source(text, path string, spec keywords.Spec, tags ...string) ([]po.Entry, error) {
	msgs, err := Template(text, spec, tags...)
	if err != nil {
		var markupErr *MarkupError
		if errors.As(err, &markupErr) {
			markupErr.File = path
			return nil, err
		}
		if path != "" {
			return nil, fmt.Errorf("cannot parse template %s: %w", path, err)
		}
		return nil, fmt.Errorf("cannot parse template: %w", err)
	}
	return msgs.Entries(path), nil
}

// walker threads the accumulator through a depth-first traversal; every step
// returns the accumulator it was given.
type walker struct {
	spec keywords.Spec
	tags []string
	// comments seen so far, in source order
	comments []*ast.CommentStatement
}

func (w *walker) program(acc *Messages, p *ast.Program) (*Messages, error) {
	if p == nil {
		return acc, nil
	}
	var err error
	for _, n := range p.Body {
		if acc, err = w.node(acc, n); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (w *walker) node(acc *Messages, n ast.Node) (*Messages, error) {
	switch n := n.(type) {
	case *ast.Program:
		return w.program(acc, n)
	case *ast.MustacheStatement:
		return w.expression(acc, n.Expression, n.Location().Line)
	case *ast.BlockStatement:
		acc, err := w.expression(acc, n.Expression, n.Location().Line)
		if err != nil {
			return nil, err
		}
		if acc, err = w.program(acc, n.Program); err != nil {
			return nil, err
		}
		return w.program(acc, n.Inverse)
	case *ast.PartialStatement:
		return w.arguments(acc, n.Params, n.Hash)
	case *ast.SubExpression:
		return w.expression(acc, n.Expression, n.Location().Line)
	case *ast.CommentStatement:
		if len(w.tags) > 0 {
			w.comments = append(w.comments, n)
		}
	}
	return acc, nil
}

func (w *walker) expression(acc *Messages, expr *ast.Expression, line int) (*Messages, error) {
	if expr == nil {
		return acc, nil
	}
	acc, err := w.match(acc, expr, line)
	if err != nil {
		return nil, err
	}
	return w.arguments(acc, expr.Params, expr.Hash)
}

// arguments visits nested calls whether or not the enclosing call matched.
func (w *walker) arguments(acc *Messages, params []ast.Node, hash *ast.Hash) (*Messages, error) {
	var err error
	for _, p := range params {
		if acc, err = w.node(acc, p); err != nil {
			return nil, err
		}
	}
	if hash == nil {
		return acc, nil
	}
	for _, pair := range hash.Pairs {
		if acc, err = w.node(acc, pair.Val); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

func (w *walker) match(acc *Messages, expr *ast.Expression, line int) (*Messages, error) {
	path, ok := expr.Path.(*ast.PathExpression)
	if !ok {
		return acc, nil
	}
	helper := path.Original
	kw, ok := w.spec.Lookup(helper)
	if !ok {
		return acc, nil
	}

	// Calls without a literal msgid are not translation markup, e.g. a
	// bare {{gettext}} or {{gettext label}}.
	msgid, ok := literal(expr.Params, kw.MsgID)
	if !ok {
		return acc, nil
	}

	fail := func(err error, values ...string) (*Messages, error) {
		return nil, &MarkupError{Err: err, Line: line, Helper: helper, MsgID: msgid, Values: values}
	}

	var context string
	pos, hasContext := kw.Position(keywords.MsgCtxt)
	if hasContext {
		if pos >= len(expr.Params) {
			return fail(ErrMissingContext)
		}
		if context, ok = literal(expr.Params, pos); !ok {
			return fail(ErrNonLiteralContext)
		}
	}

	var plural string
	pos, hasPlural := kw.Position(keywords.MsgIDPlural)
	if hasPlural {
		if pos >= len(expr.Params) {
			return fail(ErrMissingPlural)
		}
		if plural, ok = literal(expr.Params, pos); !ok {
			return fail(ErrNonLiteralPlural)
		}
	}

	r := acc.record(msgid, context, hasContext)
	// An empty plural neither conflicts with nor replaces a recorded one.
	if plural != "" {
		if r.Plural != "" && r.Plural != plural {
			return fail(ErrIncompatiblePlural, r.Plural, plural)
		}
		r.Plural = plural
	}
	r.Lines = append(r.Lines, line)
	r.addComments(w.translatorComment(line))
	return acc, nil
}

// translatorComment returns the lines of the last comment ending on line or
// the line before, provided it starts with one of the tags.
func (w *walker) translatorComment(line int) []string {
	for i := len(w.comments) - 1; i >= 0; i-- {
		cm := w.comments[i]
		end := cm.Line + strings.Count(cm.Value, "\n")
		if end > line {
			continue
		}
		if end+1 < line {
			return nil
		}
		lines := commentLines(cm.Value)
		if len(lines) == 0 {
			return nil
		}
		for _, tag := range w.tags {
			if strings.HasPrefix(lines[0], tag) {
				return lines
			}
		}
		return nil
	}
	return nil
}

func commentLines(value string) []string {
	var lines []string
	for _, line := range strings.Split(value, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func literal(params []ast.Node, pos int) (string, bool) {
	if pos < 0 || pos >= len(params) {
		return "", false
	}
	s, ok := params[pos].(*ast.StringLiteral)
	if !ok {
		return "", false
	}
	return s.Value, true
}
