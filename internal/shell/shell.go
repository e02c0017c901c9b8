// Package shell is an interactive front end for a translation session. Photo
// files stand in for the camera and rendered PNGs stand in for the screen.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/abiosoft/ishell"

	"github.com/ironsheep/menu-lens/internal/capture"
	"github.com/ironsheep/menu-lens/internal/imaging"
	"github.com/ironsheep/menu-lens/internal/session"
	"github.com/ironsheep/menu-lens/internal/translate"
)

// ShellCtxt is the state shared by all shell commands.
type ShellCtxt struct {
	session     *session.Controller
	queue       *capture.Queue
	renderWidth int
	logger      *slog.Logger
}

// NewShellCtxt wires the commands to a session. The queue must be the
// session's capture source.
func NewShellCtxt(s *session.Controller, q *capture.Queue, renderWidth int, logger *slog.Logger) *ShellCtxt {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ShellCtxt{session: s, queue: q, renderWidth: renderWidth, logger: logger}
}

func (ctx *ShellCtxt) prompt() string {
	return fmt.Sprintf("[%s]>", ctx.session.State())
}

// RunShell runs the given command, or an interactive shell when args is empty.
func RunShell(ctx *ShellCtxt, args []string) error {
	shell := ishell.New()
	shell.SetPrompt(ctx.prompt())
	ctx.session.AddListener(func(prev, next session.State) {
		shell.SetPrompt(ctx.prompt())
	})

	shell.AddCmd(captureCmd(ctx))
	shell.AddCmd(retakeCmd(ctx))
	shell.AddCmd(sendCmd(ctx))
	shell.AddCmd(resetCmd(ctx))
	shell.AddCmd(statusCmd(ctx))
	shell.AddCmd(overlaysCmd(ctx))
	shell.AddCmd(renderCmd(ctx))
	shell.AddCmd(healthCmd(ctx))

	if len(args) > 0 {
		return shell.Process(args...)
	}

	shell.Printf("menu-lens session %s\n", ctx.session.ID())
	shell.Println("capture a photo with: capture <file>")
	shell.Run()
	return nil
}

// widthArg parses an optional width argument, falling back to the configured
// render width.
func (ctx *ShellCtxt) widthArg(args []string, i int) (int, error) {
	if len(args) <= i {
		return ctx.renderWidth, nil
	}
	w, err := strconv.Atoi(args[i])
	if err != nil || w <= 0 {
		return 0, fmt.Errorf("invalid width %q", args[i])
	}
	return w, nil
}

// describe turns a session or upload error into text for the user.
func describe(err error) string {
	var te *translate.Error
	switch {
	case errors.As(err, &te):
		return te.UserMessage()
	case errors.Is(err, session.ErrCaptureUnavailable):
		return "no photo available, load one with: capture <file>"
	case errors.Is(err, session.ErrInvalidTransition):
		return err.Error()
	case errors.Is(err, session.ErrSuperseded):
		return "discarded: a newer photo replaced this one"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	default:
		return err.Error()
	}
}

func handleLine(h *imaging.Handle) string {
	if h == nil {
		return "none"
	}
	return h.String()
}
