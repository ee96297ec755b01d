package present

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ichi0g0y/lucky-by-birthday/internal/lottery"
	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

const ansiReset = "\x1b[0m"

var ballStyles = map[lottery.BallColor]string{
	lottery.BallYellow: "\x1b[1;30;43m",
	lottery.BallBlue:   "\x1b[1;37;44m",
	lottery.BallRed:    "\x1b[1;37;41m",
	lottery.BallGray:   "\x1b[1;37;100m",
	lottery.BallGreen:  "\x1b[1;37;42m",
}

// TerminalOutput wraps f for ANSI output and reports whether colors should be used.
func TerminalOutput(f *os.File) (io.Writer, bool) {
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return colorable.NewColorable(f), true
	}
	return colorable.NewNonColorable(f), false
}

type Renderer struct {
	out   io.Writer
	color bool
	width int
}

func NewRenderer(out io.Writer, color bool) *Renderer {
	return &Renderer{out: out, color: color, width: 80}
}

func (r *Renderer) Render(result *Result) error {
	switch {
	case result == nil:
		return nil
	case result.Draw != nil:
		r.RenderDraw(*result.Draw)
		return nil
	default:
		return r.RenderNarrative(result.Narrative)
	}
}

// RenderDraw prints the main balls in order and the bonus separately.
func (r *Renderer) RenderDraw(draw types.LuckyDraw) {
	balls := make([]string, 0, len(draw.Numbers))
	for _, n := range draw.Numbers {
		balls = append(balls, r.ball(n))
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "행운 번호")
	fmt.Fprintf(r.out, "  %s  +  %s\n", strings.Join(balls, " "), r.ball(draw.Bonus))
	fmt.Fprintln(r.out, "  (마지막 번호는 보너스 번호입니다)")
	fmt.Fprintln(r.out)
}

func (r *Renderer) ball(n int) string {
	label := fmt.Sprintf("%2d", n)
	if !r.color {
		return "(" + label + ")"
	}
	return ballStyles[lottery.ColorOf(n)] + " " + label + " " + ansiReset
}

// RenderNarrative renders markdown, falling back to the raw text.
func (r *Renderer) RenderNarrative(markdown string) error {
	style := glamour.WithStandardStyle("notty")
	if r.color {
		style = glamour.WithAutoStyle()
	}

	tr, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(r.width))
	if err == nil {
		var rendered string
		if rendered, err = tr.Render(markdown); err == nil {
			_, err = io.WriteString(r.out, rendered)
			return err
		}
	}

	_, werr := fmt.Fprintln(r.out, markdown)
	return werr
}
