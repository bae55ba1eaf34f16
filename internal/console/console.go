// Package console is the line-oriented front end used when stdout is not a
// terminal. Each input line is one command applied to the session.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/roster/internal/editor"
	"github.com/smileynet/roster/internal/session"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("console: quit")

const helpText = `commands:
  first <value>    set first name
  last <value>     set last name
  phone <value>    set phone number
  submit           add or update from the form
  cancel           clear the form, or leave edit mode if already empty
  edit <row>       load a row into the form
  delete <row>     delete a row
  list             show all users
  form             show the form
  help             show this help
  quit             exit`

// Console reads commands from r and writes results to w.
type Console struct {
	r       io.Reader
	w       io.Writer
	session *session.Session
	logger  *zap.Logger
}

// Option configures a Console.
type Option func(*Console)

// WithLogger sets the logger for rejected commands.
func WithLogger(l *zap.Logger) Option {
	return func(c *Console) { c.logger = l }
}

// New creates a Console over the given session.
func New(r io.Reader, w io.Writer, s *session.Session, opts ...Option) *Console {
	c := &Console{r: r, w: w, session: s, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes commands until input ends, quit is read, or ctx is done.
// Command errors are printed and do not stop the loop. Run returns as soon
// as ctx is done even while a read is pending; the reading goroutine then
// exits once r reaches EOF or is closed.
func (c *Console) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("console: reading input: %w", err)
				}
				return nil
			}
			err := c.Exec(line)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				c.logger.Debug("command rejected", zap.String("line", line), zap.Error(err))
				_, _ = fmt.Fprintf(c.w, "error: %s\n", err)
			}
		}
	}
}

// Exec runs a single command line. Blank lines and # comments are ignored.
func (c *Console) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	cmd, arg, _ := strings.Cut(line, " ")
	cmd = strings.ToLower(cmd)
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "submit":
		_, _ = fmt.Fprintln(c.w, Describe(c.session.Submit()))
	case "cancel":
		_, _ = fmt.Fprintln(c.w, Describe(c.session.Cancel()))
	case "edit", "delete":
		row, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("%s: row must be a number, got %q", cmd, arg)
		}
		var out session.Outcome
		if cmd == "edit" {
			out, err = c.session.Edit(row)
		} else {
			out, err = c.session.Delete(row)
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(c.w, Describe(out))
	case "list":
		_, _ = fmt.Fprintln(c.w, RenderTable(c.session.Rows()))
	case "form":
		c.printForm()
	case "help":
		_, _ = fmt.Fprintln(c.w, helpText)
	case "quit", "exit":
		return ErrQuit
	default:
		f, err := editor.ParseField(cmd)
		if err != nil {
			return fmt.Errorf("unknown command %q (try help)", cmd)
		}
		return c.session.Set(f, arg)
	}
	return nil
}

func (c *Console) printForm() {
	ed := c.session.Editor()
	d := ed.Draft()
	_, _ = fmt.Fprintf(c.w, "[%s]\n", ed.SubmitLabel())
	for _, f := range editor.Fields() {
		_, _ = fmt.Fprintf(c.w, "  %-13s %s\n", f.Label()+":", d.Get(f))
	}
	if ed.Failed() {
		_, _ = fmt.Fprintln(c.w, editor.AlertText)
	}
}

// Describe renders a one-line summary of an event outcome.
func Describe(out session.Outcome) string {
	name := strings.TrimSpace(out.User.FirstName + " " + out.User.LastName)
	switch out.Kind {
	case session.KindSubmit:
		switch {
		case !out.Accepted:
			return editor.AlertText
		case out.Added:
			return fmt.Sprintf("added %s (%s)", name, out.User.ID)
		default:
			return fmt.Sprintf("updated %s (%s)", name, out.User.ID)
		}
	case session.KindCancel:
		switch {
		case out.Abandoned:
			return "edit cancelled"
		case out.Cleared:
			return "form cleared"
		default:
			return "nothing to cancel"
		}
	case session.KindEdit:
		return fmt.Sprintf("editing %s (%s)", name, out.User.ID)
	case session.KindDelete:
		return fmt.Sprintf("deleted %s (%s)", name, out.User.ID)
	case session.KindSet:
		return "ok"
	}
	return string(out.Kind)
}
