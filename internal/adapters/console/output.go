package console

import (
	"fmt"
	"strconv"

	"github.com/soamaka/AirBnB-clone/internal/domain"
)

func (c *Console) println(s string) {
	_, _ = fmt.Fprintln(c.out, s)
}

func (c *Console) printError(msg string) {
	c.println("** " + msg + " **")
}

func (c *Console) printUnknown(line string) {
	c.println("*** Unknown syntax: " + line)
}

func (c *Console) printObject(obj *domain.Object) {
	c.println(obj.String())
}

func (c *Console) printCount(n int) {
	c.println(strconv.Itoa(n))
}

// printObjects writes the text forms as a bracketed list of quoted strings.
func (c *Console) printObjects(objs []*domain.Object) {
	texts := make([]string, 0, len(objs))
	for _, obj := range objs {
		texts = append(texts, obj.String())
	}
	c.println(domain.FormatLiteral(texts))
}
