package shell

import (
	"context"
	"errors"

	"github.com/abiosoft/ishell"
)

func captureCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "capture",
		Help:      "take a photo from an image file",
		Completer: createFileCompleter(),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 1 {
				ctx.queue.Load(c.Args[0])
			}
			if err := ctx.session.Capture(context.Background()); err != nil {
				c.Err(errors.New(describe(err)))
				return
			}
			c.Println("captured", handleLine(ctx.session.Snapshot().Handle))
		},
	}
}

func retakeCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name:      "retake",
		Help:      "discard the photo and take another",
		Completer: createFileCompleter(),
		Func: func(c *ishell.Context) {
			if len(c.Args) == 1 {
				ctx.queue.Load(c.Args[0])
			}
			if err := ctx.session.Retake(context.Background()); err != nil {
				c.Err(errors.New(describe(err)))
				return
			}
			c.Println("captured", handleLine(ctx.session.Snapshot().Handle))
		},
	}
}

func resetCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "reset",
		Help: "drop the result and go back to the camera",
		Func: func(c *ishell.Context) {
			if err := ctx.session.Reset(); err != nil {
				c.Err(errors.New(describe(err)))
				return
			}
			c.Println("OK")
		},
	}
}
