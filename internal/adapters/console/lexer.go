package console

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokInt
	tokFloat
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokInt:
		return "integer"
	case tokFloat:
		return "float"
	default:
		return "punctuation"
	}
}

type token struct {
	kind  tokenKind
	text  string
	value any
	pos   int
}

const punctuation = "{}[]:,()."

// tokenize splits src into identifiers, quoted strings, numbers and
// punctuation. Whitespace separates tokens and is dropped.
func tokenize(src string) ([]token, error) {
	runes := []rune(src)
	var out []token
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			out = append(out, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		case r == '"' || r == '\'':
			s, next, err := scanString(runes, i)
			if err != nil {
				return nil, err
			}
			out = append(out, token{kind: tokString, text: string(runes[i:next]), value: s, pos: i})
			i = next
		case isDigit(r) || ((r == '-' || r == '+') && i+1 < len(runes) && (isDigit(runes[i+1]) || runes[i+1] == '.')) ||
			(r == '.' && i+1 < len(runes) && isDigit(runes[i+1])):
			tok, next, err := scanNumber(runes, i)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			i = next
		case strings.ContainsRune(punctuation, r):
			out = append(out, token{kind: tokPunct, text: string(r), pos: i})
			i++
		default:
			return nil, errors.Errorf("unexpected character %q at %d", r, i)
		}
	}
	out = append(out, token{kind: tokEOF, pos: len(runes)})
	return out, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func scanString(runes []rune, start int) (string, int, error) {
	quote := runes[start]
	var b strings.Builder
	for i := start + 1; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == quote:
			return b.String(), i + 1, nil
		case r == '\\' && i+1 < len(runes):
			i++
			switch runes[i] {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case 'r':
				b.WriteRune('\r')
			case '\\', '\'', '"':
				b.WriteRune(runes[i])
			default:
				b.WriteRune('\\')
				b.WriteRune(runes[i])
			}
		default:
			b.WriteRune(r)
		}
	}
	return "", 0, errors.Errorf("unterminated string at %d", start)
}

func scanNumber(runes []rune, start int) (token, int, error) {
	i := start
	if runes[i] == '-' || runes[i] == '+' {
		i++
	}
	isFloat := false
	for i < len(runes) && isDigit(runes[i]) {
		i++
	}
	if i < len(runes) && runes[i] == '.' {
		isFloat = true
		i++
		for i < len(runes) && isDigit(runes[i]) {
			i++
		}
	}
	if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
		j := i + 1
		if j < len(runes) && (runes[j] == '-' || runes[j] == '+') {
			j++
		}
		if j < len(runes) && isDigit(runes[j]) {
			isFloat = true
			i = j
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
		}
	}

	text := string(runes[start:i])
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return token{}, 0, errors.Wrapf(err, "bad number %q", text)
		}
		return token{kind: tokFloat, text: text, value: f, pos: start}, i, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return token{}, 0, errors.Wrapf(err, "bad number %q", text)
	}
	return token{kind: tokInt, text: text, value: n, pos: start}, i, nil
}
