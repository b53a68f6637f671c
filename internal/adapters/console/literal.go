package console

import (
	"github.com/pkg/errors"
)

// Entry is one key/value pair of a mapping literal. Keys keep the type they
// were written with so that non-text keys can be rejected later.
type Entry struct {
	Key   any
	Value any
}

// Mapping is a brace literal with its entries in source order. A repeated
// key keeps its first position and takes the last value.
type Mapping struct {
	Entries []Entry
}

func (m *Mapping) set(key, value any) {
	for i := range m.Entries {
		if m.Entries[i].Key == key {
			m.Entries[i].Value = value
			return
		}
	}
	m.Entries = append(m.Entries, Entry{Key: key, Value: value})
}

// parseLiteral parses one data literal: a quoted string, a number, a boolean,
// None, a bracketed list or a braced mapping. Nothing is ever executed.
func parseLiteral(src string) (any, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	v, err := p.value(true)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errors.Errorf("unexpected %s %q at %d", t.kind, t.text, t.pos)
	}
	return v, nil
}

// parseMapping parses src and requires the result to be a mapping.
func parseMapping(src string) (*Mapping, error) {
	v, err := parseLiteral(src)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Mapping)
	if !ok {
		return nil, errors.Errorf("literal is %T, not a mapping", v)
	}
	return m, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isPunct(text string) bool {
	t := p.peek()
	return t.kind == tokPunct && t.text == text
}

func (p *parser) expect(text string) error {
	t := p.next()
	if t.kind != tokPunct || t.text != text {
		return errors.Errorf("expected %q, got %s %q at %d", text, t.kind, t.text, t.pos)
	}
	return nil
}

// value parses one literal. Mappings nested below the top level become
// map[string]any so they can be stored as attribute values.
func (p *parser) value(top bool) (any, error) {
	t := p.next()
	switch t.kind {
	case tokString, tokInt, tokFloat:
		return t.value, nil
	case tokIdent:
		switch t.text {
		case "True", "true":
			return true, nil
		case "False", "false":
			return false, nil
		case "None", "null":
			return nil, nil
		}
		return nil, errors.Errorf("unknown name %q at %d", t.text, t.pos)
	case tokPunct:
		switch t.text {
		case "[":
			return p.list()
		case "{":
			m, err := p.mapping()
			if err != nil {
				return nil, err
			}
			if top {
				return m, nil
			}
			return m.asMap()
		}
	}
	return nil, errors.Errorf("unexpected %s %q at %d", t.kind, t.text, t.pos)
}

func (p *parser) list() ([]any, error) {
	out := []any{}
	for !p.isPunct("]") {
		v, err := p.value(false)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if !p.isPunct(",") {
			break
		}
		p.next()
	}
	if err := p.expect("]"); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *parser) mapping() (*Mapping, error) {
	m := &Mapping{}
	for !p.isPunct("}") {
		key, err := p.value(false)
		if err != nil {
			return nil, err
		}
		switch key.(type) {
		case []any, map[string]any:
			return nil, errors.Errorf("unhashable mapping key %T", key)
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		v, err := p.value(false)
		if err != nil {
			return nil, err
		}
		m.set(key, v)
		if !p.isPunct(",") {
			break
		}
		p.next()
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mapping) asMap() (map[string]any, error) {
	out := make(map[string]any, len(m.Entries))
	for _, e := range m.Entries {
		key, ok := e.Key.(string)
		if !ok {
			return nil, errors.Errorf("nested mapping key %v is not text", e.Key)
		}
		out[key] = e.Value
	}
	return out, nil
}
