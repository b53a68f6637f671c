package console

import (
	"strings"

	"github.com/pkg/errors"
)

var dotCommands = map[string]bool{
	"all":     true,
	"count":   true,
	"show":    true,
	"destroy": true,
	"update":  true,
}

// rewriteDotCall turns `<Class>.<command>(<args>)` into the canonical
// `<command> <Class> <id> <rest>` form. Lines that are not dot calls, or that
// fail to rewrite, come back unchanged.
func rewriteDotCall(line string) string {
	if !strings.Contains(line, ".") || !strings.Contains(line, "(") || !strings.Contains(line, ")") {
		return line
	}
	out, err := parseDotCall(line)
	if err != nil {
		return line
	}
	return out
}

func parseDotCall(line string) (string, error) {
	dot := strings.Index(line, ".")
	open := strings.Index(line, "(")
	closing := strings.LastIndex(line, ")")
	if open < dot || closing < open {
		return "", errors.New("malformed dot call")
	}

	class := line[:dot]
	cmd := line[dot+1 : open]
	if !dotCommands[cmd] {
		return "", errors.Errorf("unknown dot command %q", cmd)
	}

	var id, rest string
	if args := line[open+1 : closing]; args != "" {
		head, tail, _ := strings.Cut(args, ", ")
		id = strings.ReplaceAll(head, `"`, "")

		tail = strings.TrimSpace(tail)
		switch {
		case tail == "":
		case strings.HasPrefix(tail, "{") && strings.HasSuffix(tail, "}"):
			if _, err := parseMapping(tail); err != nil {
				return "", errors.Wrap(err, "dot call mapping")
			}
			rest = tail
		default:
			rest = strings.ReplaceAll(tail, ",", "")
		}
	}
	return strings.Join([]string{cmd, class, id, rest}, " "), nil
}
