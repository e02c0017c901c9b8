package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/abiosoft/ishell"

	"github.com/ironsheep/menu-lens/internal/imaging"
	"github.com/ironsheep/menu-lens/internal/overlay"
	"github.com/ironsheep/menu-lens/internal/session"
)

func statusCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "status",
		Help: "show the session state",
		Func: func(c *ishell.Context) {
			c.Print(formatStatus(ctx.session.Snapshot()))
		},
	}
}

func formatStatus(s session.Snapshot) string {
	out := fmt.Sprintf("session: %s\nstate:   %s\nphoto:   %s\n", s.ID, s.State, handleLine(s.Handle))
	if s.Result != nil {
		out += fmt.Sprintf("result:  %d regions (image %dx%d)\n", len(s.Result.Regions), s.Result.ImageWidth, s.Result.ImageHeight)
	}
	if s.Err != nil {
		out += fmt.Sprintf("error:   %s\n", describe(s.Err))
	}
	return out
}

func overlaysCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "overlays",
		Help: "list overlay rectangles for a display width",
		Func: func(c *ishell.Context) {
			width, err := ctx.widthArg(c.Args, 0)
			if err != nil {
				c.Err(err)
				return
			}
			placements, err := ctx.session.Overlays(float64(width))
			if err != nil {
				c.Err(errors.New(describe(err)))
				return
			}
			if len(placements) == 0 {
				c.Println("no overlays")
				return
			}
			for _, p := range placements {
				c.Printf("%3d  left=%.1f top=%.1f width=%.1f height=%.1f  %s\n",
					p.Index, p.Rect.Left, p.Rect.Top, p.Rect.Width, p.Rect.Height, p.Label)
			}
		},
	}
}

func renderCmd(ctx *ShellCtxt) *ishell.Cmd {
	return &ishell.Cmd{
		Name: "render",
		Help: "draw the photo and its translations to a PNG: render <out.png> [width]",
		Func: func(c *ishell.Context) {
			if len(c.Args) == 0 {
				c.Err(errors.New("missing output file"))
				return
			}
			width, err := ctx.widthArg(c.Args, 1)
			if err != nil {
				c.Err(err)
				return
			}
			n, skipped, err := ctx.render(c.Args[0], width)
			if err != nil {
				c.Err(errors.New(describe(err)))
				return
			}
			for _, e := range skipped {
				c.Println("skipped:", e)
			}
			c.Printf("wrote %s with %d overlays\n", c.Args[0], n)
		},
	}
}

// render draws the held photo at width pixels wide into out. In the result
// state the translations are drawn over it; otherwise the photo is drawn
// alone. It returns the number of overlays drawn and the ones skipped.
func (ctx *ShellCtxt) render(out string, width int) (int, []error, error) {
	snap := ctx.session.Snapshot()
	if snap.Handle == nil {
		return 0, nil, fmt.Errorf("render while %s: no photo", snap.State)
	}

	img, err := imaging.Open(*snap.Handle)
	if err != nil {
		return 0, nil, err
	}

	var placements []overlay.Placement
	if snap.State == session.StateResult {
		placements, err = ctx.session.Overlays(float64(width))
		if err != nil {
			return 0, nil, err
		}
	}

	canvas, skipped := imaging.Annotate(img, placements, width)
	data, err := imaging.EncodePNG(canvas)
	if err != nil {
		return 0, nil, err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return 0, nil, fmt.Errorf("failed to write %s: %w", out, err)
	}
	ctx.logger.Debug("rendered", "out", out, "width", width, "overlays", len(placements)-len(skipped))
	return len(placements) - len(skipped), skipped, nil
}
