package console

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/soamaka/AirBnB-clone/internal/application"
	"github.com/soamaka/AirBnB-clone/internal/domain"
)

var (
	namePattern  = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)
	paramPattern = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_]*)=(".*"|[-+]?\d+\.\d+|[-+]?\d+)$`)
)

// parseCreateArgs splits `<Class> key=value ...`. Values are a quoted string
// with underscores standing for spaces, a float or an integer. Anything else
// is skipped without complaint.
func parseCreateArgs(args string) (string, []application.Attr) {
	class := namePattern.FindString(args)
	if class == "" {
		return args, nil
	}

	var attrs []application.Attr
	for _, param := range strings.Fields(args[len(class):]) {
		m := paramPattern.FindStringSubmatch(param)
		if m == nil {
			continue
		}
		name, raw := m[1], m[2]
		switch {
		case strings.HasPrefix(raw, `"`):
			s := raw[1 : len(raw)-1]
			s = strings.ReplaceAll(s, `\"`, `"`)
			s = strings.ReplaceAll(s, "_", " ")
			attrs = append(attrs, application.Attr{Name: name, Value: s})
		case strings.Contains(raw, "."):
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			attrs = append(attrs, application.Attr{Name: name, Value: f})
		default:
			n, err := strconv.Atoi(raw)
			if err != nil {
				continue
			}
			attrs = append(attrs, application.Attr{Name: name, Value: n})
		}
	}
	return class, attrs
}

// parseClassID splits `<Class> <id> ...` on single spaces.
func parseClassID(args string) (class, id, rest string) {
	class, tail, _ := strings.Cut(args, " ")
	id, rest, _ = strings.Cut(tail, " ")
	return class, id, rest
}

// parseUpdateArgs reads what follows the id of an update: either a mapping
// literal of attributes or one name/value pair, each optionally quoted.
func parseUpdateArgs(args string) ([]application.Attr, error) {
	if strings.Contains(args, "{") && strings.Contains(args, "}") {
		if m, err := parseMapping(args); err == nil {
			return mappingAttrs(m)
		}
	}
	name, value := parseUpdatePair(args)
	return []application.Attr{{Name: name, Value: value}}, nil
}

func mappingAttrs(m *Mapping) ([]application.Attr, error) {
	attrs := make([]application.Attr, 0, len(m.Entries))
	for _, e := range m.Entries {
		name, ok := e.Key.(string)
		if !ok {
			return nil, errors.Wrapf(domain.ErrTypeKind, "got %T key %v", e.Key, e.Key)
		}
		attrs = append(attrs, application.Attr{Name: name, Value: e.Value})
	}
	return attrs, nil
}

func parseUpdatePair(args string) (string, string) {
	var name, value string

	if strings.HasPrefix(args, `"`) {
		end := strings.Index(args[1:], `"`)
		if end < 0 {
			if len(args) >= 2 {
				name = args[1 : len(args)-1]
			}
		} else {
			name = args[1 : end+1]
			args = args[end+2:]
		}
	}

	head, tail, _ := strings.Cut(args, " ")
	if name == "" {
		name = head
	}

	if strings.HasPrefix(tail, `"`) {
		end := strings.Index(tail[1:], `"`)
		if end < 0 {
			if len(tail) >= 2 {
				value = tail[1 : len(tail)-1]
			}
		} else {
			value = tail[1 : end+1]
		}
	}
	if value == "" && tail != "" {
		value, _, _ = strings.Cut(tail, " ")
	}
	return name, value
}
