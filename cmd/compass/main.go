// Compass evaluates geometric constructions from the command line. It
// reads construction scripts and imports KSeg, Dr.Geo and KGeo files,
// printing every object with its computed value.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"

	"github.com/chazu/compass/internal/config"
	"github.com/chazu/compass/pkg/filters"
	"github.com/chazu/compass/pkg/geom"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ImportCmd reconstructs a file written by another geometry program.
type ImportCmd struct {
	File   string `arg:"" type:"existingfile" help:"KSeg (.seg), Dr.Geo (.fgeo) or KGeo (.kgeo) file"`
	Format string `short:"f" help:"Force a format (${formats})"`
}

// Run executes the import command.
func (c *ImportCmd) Run(app *App) error {
	var (
		r   Result
		err error
	)
	if c.Format != "" {
		r, err = app.importAs(c.Format, c.File)
	} else {
		r, err = app.Import(c.File)
	}
	if err != nil {
		return err
	}
	Print(os.Stdout, r)
	if !r.OK() {
		return errFailed
	}
	color.Green("%d objects", len(r.Holders))
	return nil
}

// EvalCmd evaluates a construction script.
type EvalCmd struct {
	Script string `arg:"" type:"existingfile" help:"Script to evaluate"`
	Locus  bool   `help:"Print the sample count of every locus"`
}

// Run executes the eval command.
func (c *EvalCmd) Run(app *App) error {
	app.SampleLoci = c.Locus
	r, err := app.EvaluateFile(c.Script)
	if err != nil {
		return err
	}
	Print(os.Stdout, r)
	if !r.OK() {
		return errFailed
	}
	return nil
}

// WatchCmd re-evaluates a script whenever it changes.
type WatchCmd struct {
	Script string `arg:"" type:"existingfile" help:"Script to watch"`
	Locus  bool   `help:"Print the sample count of every locus"`
}

// Run executes the watch command.
func (c *WatchCmd) Run(app *App) error {
	app.SampleLoci = c.Locus

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", c.Script)
	err := app.Watch(ctx, c.Script, func(r Result) {
		fmt.Println(color.CyanString("--- %s", c.Script))
		Print(os.Stdout, r)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

// HitCmd lists the objects of a script passing through a point.
type HitCmd struct {
	Script string  `arg:"" type:"existingfile" help:"Script to evaluate"`
	X      float64 `arg:"" help:"X coordinate"`
	Y      float64 `arg:"" help:"Y coordinate"`
}

// Run executes the hit command.
func (c *HitCmd) Run(app *App) error {
	r, err := app.Hit(c.Script, geom.Coordinate{X: c.X, Y: c.Y})
	if err != nil {
		return err
	}
	Print(os.Stdout, r)
	if !r.OK() {
		return errFailed
	}
	if len(r.Holders) == 0 {
		color.Yellow("nothing at (%g, %g)", c.X, c.Y)
	}
	return nil
}

// TypesCmd lists the construction types.
type TypesCmd struct{}

// Run executes the types command.
func (c *TypesCmd) Run(app *App) error {
	for _, s := range app.Types() {
		fmt.Println(s)
	}
	return nil
}

// errFailed reports that the command printed its errors already.
var errFailed = errors.New("construction failed")

// CLI is the root Kong command structure.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`
	NoColor bool             `help:"Disable colored output"`

	Import ImportCmd `cmd:"" help:"Reconstruct a KSeg, Dr.Geo or KGeo file"`
	Eval   EvalCmd   `cmd:"" help:"Evaluate a construction script"`
	Watch  WatchCmd  `cmd:"" help:"Re-evaluate a script on every change"`
	Hit    HitCmd    `cmd:"" help:"List the objects passing through a point"`
	Types  TypesCmd  `cmd:"" help:"List the construction types"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	log := cfg.Logger(os.Stderr)

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("compass"),
		kong.Description("Geometric construction engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"version": Version,
			"formats": strings.Join(filters.Formats(), ", "),
		},
	)
	if cli.NoColor {
		color.NoColor = true
	}

	start := time.Now()
	log.Debug("command start", "cmd", kctx.Command())
	err = kctx.Run(NewApp(cfg, log))
	log.Debug("command finished", "cmd", kctx.Command(), "elapsed", time.Since(start), "ok", err == nil)
	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
