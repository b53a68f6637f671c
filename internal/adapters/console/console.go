// Package console implements the line-oriented hbnb shell on top of the
// application service.
package console

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/soamaka/AirBnB-clone/internal/application"
)

const Prompt = "(hbnb) "

type Console struct {
	svc         *application.Service
	in          io.Reader
	out         io.Writer
	interactive bool
	log         zerolog.Logger
}

// New returns a shell reading commands from in and writing results to out.
// When interactive is set a prompt is written before every line.
func New(svc *application.Service, in io.Reader, out io.Writer, interactive bool, logger zerolog.Logger) *Console {
	return &Console{
		svc:         svc,
		in:          in,
		out:         out,
		interactive: interactive,
		log:         logger.With().Str("component", "console").Logger(),
	}
}

// Run reads lines until quit, EOF or a hard failure. Lines have no length
// limit. The prompt is written only in interactive mode; piped input gets no
// prompt and no separator lines, so the output holds command results only.
func (c *Console) Run(ctx context.Context) error {
	reader := bufio.NewReader(c.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.interactive {
			_, _ = io.WriteString(c.out, Prompt)
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrap(err, "read command")
		}
		if line == "" && err != nil {
			if c.interactive {
				_, _ = io.WriteString(c.out, "\n")
			}
			return nil
		}
		stop, execErr := c.Execute(ctx, strings.TrimRight(line, "\r\n"))
		if execErr != nil {
			return execErr
		}
		if stop || err != nil {
			return nil
		}
	}
}

// Execute runs one input line. Input errors are printed and reported as nil;
// the returned error is always a hard failure.
func (c *Console) Execute(ctx context.Context, line string) (bool, error) {
	line = strings.TrimSpace(rewriteDotCall(line))
	if line == "" {
		return false, nil
	}

	cmd, args := splitCommand(line)
	c.log.Debug().Str("command", cmd).Str("args", args).Msg("dispatch")

	var err error
	switch cmd {
	case "quit", "EOF":
		return true, nil
	case "create":
		err = c.create(ctx, args)
	case "show":
		err = c.show(ctx, args)
	case "destroy":
		err = c.destroy(ctx, args)
	case "all":
		err = c.all(ctx, args)
	case "count":
		err = c.count(ctx, args)
	case "update":
		err = c.update(ctx, args)
	default:
		c.printUnknown(line)
		return false, nil
	}

	if err != nil {
		if msg, ok := application.InputMessage(err); ok {
			c.printError(msg)
			return false, nil
		}
		return false, err
	}
	return false, nil
}

// splitCommand takes the leading run of identifier characters as the command
// name and the trimmed remainder as its arguments.
func splitCommand(line string) (string, string) {
	i := 0
	for i < len(line) && isIdentChar(line[i]) {
		i++
	}
	return line[:i], strings.TrimSpace(line[i:])
}

func isIdentChar(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z') || ('0' <= b && b <= '9')
}

func (c *Console) create(ctx context.Context, args string) error {
	class, attrs := parseCreateArgs(args)
	obj, err := c.svc.Create(ctx, class, attrs)
	if err != nil {
		return err
	}
	c.println(obj.ID)
	return nil
}

func (c *Console) show(ctx context.Context, args string) error {
	class, id, _ := parseClassID(args)
	obj, err := c.svc.Find(ctx, class, id)
	if err != nil {
		return err
	}
	c.printObject(obj)
	return nil
}

func (c *Console) destroy(ctx context.Context, args string) error {
	class, id, _ := parseClassID(args)
	return c.svc.Destroy(ctx, class, id)
}

func (c *Console) all(ctx context.Context, args string) error {
	class, _, _ := strings.Cut(args, " ")
	objs, err := c.svc.All(ctx, class)
	if err != nil {
		return err
	}
	c.printObjects(objs)
	return nil
}

func (c *Console) count(ctx context.Context, args string) error {
	n, err := c.svc.Count(ctx, args)
	if err != nil {
		return err
	}
	c.printCount(n)
	return nil
}

func (c *Console) update(ctx context.Context, args string) error {
	class, id, rest := parseClassID(args)
	obj, err := c.svc.Find(ctx, class, id)
	if err != nil {
		return err
	}
	attrs, err := parseUpdateArgs(rest)
	if err != nil {
		return err
	}
	return c.svc.Update(ctx, obj, attrs)
}
