package shell

import (
	"context"
	"errors"

	"github.com/abiosoft/ishell"

	"github.com/ironsheep/menu-lens/internal/translate"
)

func sendCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "send",
		Help: "upload the photo for translation",
		Func: func(c *ishell.Context) {
			pb := c.ProgressBar()
			pb.Indeterminate(true)
			pb.Suffix(" translating")
			pb.Start()
			res, err := ctx.session.Send(context.Background())
			pb.Stop()

			if err != nil {
				c.Err(errors.New(describe(err)))
				return
			}
			printResult(c, res)
		},
	}
}

func printResult(c *ishell.Context, res *translate.Result) {
	if len(res.Regions) == 0 {
		c.Println("no text found")
		return
	}
	c.Printf("%d regions (image %dx%d)\n", len(res.Regions), res.ImageWidth, res.ImageHeight)
	if res.Skipped > 0 {
		c.Printf("%d regions skipped: unusable position\n", res.Skipped)
	}
	for i, r := range res.Regions {
		c.Printf("%3d  %s\t%s\n", i, r.SourceText, r.TranslatedText)
	}
}

func healthCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "health",
		Help: "check the translation service",
		Func: func(c *ishell.Context) {
			msg, ok := ctx.session.Health(context.Background())
			if !ok {
				c.Err(errors.New("translation service unreachable"))
				return
			}
			c.Println(msg)
		},
	}
}
