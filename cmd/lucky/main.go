package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ichi0g0y/lucky-by-birthday/internal/lottery"
	"github.com/ichi0g0y/lucky-by-birthday/internal/present"
	"github.com/ichi0g0y/lucky-by-birthday/internal/shared/logger"
	"github.com/ichi0g0y/lucky-by-birthday/internal/types"
	"github.com/ichi0g0y/lucky-by-birthday/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("lucky", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		year        = fs.Int("year", 0, "birth year (enables one-shot mode)")
		month       = fs.Int("month", 0, "birth month")
		day         = fs.Int("day", 0, "birth day")
		hour        = fs.Int("hour", -1, "birth hour 0-23 (optional)")
		minute      = fs.Int("minute", -1, "birth minute 0-59 (optional)")
		remote      = fs.String("remote", "", "fortune server base URL; draws locally when empty")
		timeout     = fs.Int("timeout", 90, "remote request timeout in seconds")
		jsonOutput  = fs.Bool("json", false, "emit the local draw as JSON (one-shot mode only)")
		debug       = fs.Bool("debug", false, "enable debug logging")
		showVersion = fs.Bool("version", false, "print version and exit")
	)

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "lucky %s\n", version.String())
		return 0
	}

	if *debug {
		logger.Init(true)
		defer logger.Sync()
	}

	var provider present.Provider = present.LocalProvider{}
	if *remote != "" {
		provider = present.NewRemoteProvider(*remote, time.Duration(*timeout)*time.Second)
	}

	out, color := stdout, false
	if f, ok := stdout.(*os.File); ok {
		out, color = present.TerminalOutput(f)
	}
	renderer := present.NewRenderer(out, color)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *year == 0 {
		session := present.NewSession(provider, renderer, stdin, out)
		if err := session.Run(ctx); err != nil && ctx.Err() == nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	fields := flagFields(*year, *month, *day, *hour, *minute)

	if *jsonOutput && *remote == "" {
		return printJSON(fields, stdout, stderr)
	}

	result, err := provider.Provide(ctx, fields)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := renderer.Render(result); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// flagFields converts flag values into form fields. Zero date parts and negative
// time parts are treated as not entered.
func flagFields(year, month, day, hour, minute int) types.BirthFields {
	text := func(v int, present bool) types.FlexString {
		if !present {
			return ""
		}
		return types.FlexString(strconv.Itoa(v))
	}
	return types.BirthFields{
		Year:   text(year, year != 0),
		Month:  text(month, month != 0),
		Day:    text(day, day != 0),
		Hour:   text(hour, hour >= 0),
		Minute: text(minute, minute >= 0),
	}
}

type jsonDraw struct {
	Numbers      []int               `json:"numbers"`
	Bonus        int                 `json:"bonus"`
	Seed         int64               `json:"seed"`
	NumberColors []lottery.BallColor `json:"number_colors"`
	BonusColor   lottery.BallColor   `json:"bonus_color"`
}

func printJSON(fields types.BirthFields, stdout, stderr io.Writer) int {
	input, err := lottery.ParseBirthFields(fields)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	draw, err := lottery.Draw(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonDraw{
		Numbers:      draw.Numbers,
		Bonus:        draw.Bonus,
		Seed:         draw.Seed,
		NumberColors: lottery.Colors(draw.Numbers),
		BonusColor:   lottery.ColorOf(draw.Bonus),
	}); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
