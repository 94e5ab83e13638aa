package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gioui.org/app"
	colorize "github.com/c0dexio/Colorize"
	"github.com/c0dexio/Colorize/generator"
	"github.com/c0dexio/Colorize/gui"
	"github.com/c0dexio/Colorize/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┌─┐┬  ┌─┐┬─┐┬┌─┐┌─┐
│  │ ││  │ │├┬┘│┌─┘├┤
└─┘└─┘┴─┘└─┘┴└─┴└─┘└─┘

Coloring pages for kids.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	configPath  = flag.String("config", "", "TOML configuration file")
	themeName   = flag.String("theme", "", "Generate the line art of this theme right away")
	background  = flag.String("bg", "", "Line art to color: file, URL or data URI")
	destination = flag.String("out", "", "Output directory, or - for stdout")
	pdf         = flag.Bool("pdf", false, "Export a printable PDF page")
	replay      = flag.String("replay", "", "Replay the JSON pointer events of this file without opening a window, - for stdin")
	width       = flag.Int("width", 0, "Canvas width")
	height      = flag.Int("height", 0, "Canvas height")
	scale       = flag.Float64("scale", 0, "Device scale factor")
	timeout     = flag.Duration("timeout", 0, "Maximum wait for the line art on export")
	sketchPhoto = flag.Bool("sketch", false, "Turn the fetched pictures into line art")
	verbose     = flag.Bool("v", false, "Verbose logging")
)

var spinner *utils.Spinner

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	colorize.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
	}

	var theme generator.Theme
	if *themeName != "" {
		if theme, err = generator.ParseTheme(*themeName); err != nil {
			log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
		}
	}

	gen, err := generator.New(&cfg.Generator)
	if err != nil {
		log.Fatalf(utils.DecorateText("%v\n", utils.ErrorMessage), err)
	}

	opts := colorize.Options{Config: cfg, Generator: gen}
	if *destination == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatal(utils.DecorateText("`-` should be used with a pipe for stdout", utils.ErrorMessage))
		}
		opts.Sink = colorize.WriterSink{W: os.Stdout}
	}
	sess := colorize.NewSession(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *replay != "" {
		if err := runHeadless(ctx, sess, cfg, theme); err != nil {
			printStatus("", err)
		}
		return
	}

	switch {
	case *background != "":
		sess.SetBackground(*background)
	case theme != "":
		sess.SelectTheme(ctx, theme)
	}

	g := gui.NewGUI(sess, cfg)
	go func() {
		if err := g.Run(ctx); err != nil {
			log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
		}
		os.Exit(0)
	}()
	app.Main()
}

// loadConfig reads the configuration file and applies the command line
// overrides.
func loadConfig() (*colorize.Config, error) {
	cfg, err := colorize.LoadConfig(*configPath)
	if err != nil {
		return nil, err
	}
	if *destination != "" && *destination != pipeName {
		cfg.OutputDir = *destination
	}
	if *width > 0 {
		cfg.Window.Width = *width
	}
	if *height > 0 {
		cfg.Window.Height = *height
	}
	if *scale > 0 {
		cfg.Scale = *scale
	}
	if *timeout > 0 {
		cfg.ExportTimeout = *timeout
	}
	if *sketchPhoto {
		cfg.Sketch.Enabled = true
	}
	return cfg, cfg.Validate()
}

// runHeadless draws the recorded pointer events over the line art and exports
// the picture, without opening a window.
func runHeadless(ctx context.Context, sess *colorize.Session, cfg *colorize.Config, theme generator.Theme) error {
	defer sess.Close()

	events, err := readReplay(*replay)
	if err != nil {
		return err
	}

	now := time.Now()
	switch {
	case *background != "":
		sess.SetBackground(*background)
	case theme != "":
		if err := generate(ctx, sess, theme); err != nil {
			return err
		}
	default:
		return errors.New("a line art is required: use -bg or -theme")
	}

	container := &colorize.StaticContainer{
		Box:   colorize.Rect{W: float64(cfg.Window.Width), H: float64(cfg.Window.Height)},
		Scale: cfg.Scale,
	}
	if err := sess.BindSurface(container, colorize.Immediate); err != nil {
		return err
	}
	for _, ev := range events {
		sess.HandlePointer(ev)
	}

	export := sess.ExportComposite
	if *pdf {
		export = sess.ExportPDF
	}
	name, err := export(ctx)
	if err != nil {
		return err
	}
	printStatus(name, nil)
	fmt.Fprintf(os.Stderr, "\nExecution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	return nil
}

// generate waits for the line art of theme while showing the progress
// indicator.
func generate(ctx context.Context, sess *colorize.Session, theme generator.Theme) error {
	msg := fmt.Sprintf("is drawing the %s line art...", theme.Label())
	spinner = utils.NewSpinner(os.Stderr, utils.Banner(msg, utils.DefaultMessage), 200*time.Millisecond, true)

	// Restore the cursor if the user aborts.
	go func() {
		<-ctx.Done()
		spinner.RestoreCursor()
	}()

	spinner.Start()
	sess.SelectTheme(ctx, theme)

	var err error
	select {
	case r := <-sess.Results():
		err = sess.Apply(r)
	case <-ctx.Done():
		err = ctx.Err()
	}

	if err != nil {
		spinner.StopMsg = utils.Banner(msg+" ✘\n", utils.ErrorMessage)
	} else {
		spinner.StopMsg = utils.Banner(msg+" ✔\n", utils.DefaultMessage)
	}
	spinner.Stop()
	return err
}

// readReplay decodes a JSON array of pointer events from path, or from
// stdin when path is the pipe name.
func readReplay(path string) ([]colorize.PointerEvent, error) {
	var r io.Reader
	if path == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("unable to open the replay file: %w", err)
		}
		defer f.Close()
		r = f
	}
	return decodeReplay(r)
}

func decodeReplay(r io.Reader) ([]colorize.PointerEvent, error) {
	var events []colorize.PointerEvent
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, fmt.Errorf("decoding pointer events: %w", err)
	}
	return events, nil
}

// printStatus displays the outcome of the export.
func printStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError coloring the picture: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
		os.Exit(1)
	}
	if *destination != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe picture has been saved as: %s%s\n",
			utils.DecorateText(fname, utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}
