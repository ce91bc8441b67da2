// Package main provides the CLI entry point for gpplot.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgalka/gnuplot-go/pkg/gnuplot"
	"github.com/mgalka/gnuplot-go/pkg/gnuplot/sheet"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	exprs        []string
	sheetName    string
	using        string
	style        string
	title        string
	noTitle      bool
	inline       bool
	splot        bool
	hardcopyPath string
	mode         string
	commandsPath string
	persist      bool
	envFile      string
	interactive  bool
	traceLevel   string
)

// tracer traces with key 'gnuplot'
func tracer() tracing.Trace {
	return tracing.Select("gnuplot")
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "gpplot [files...]",
		Short: "Plot data files, spreadsheets and expressions with gnuplot",
		Long: `gpplot sends data files, xlsx sheets and function expressions to gnuplot.
Spreadsheet data is staged through temporary files or sent inline; other
files are handed to gnuplot by name.`,
		Args: cobra.ArbitraryArgs,
		RunE: run,
	}

	flags := rootCmd.Flags()
	flags.StringArrayVarP(&exprs, "expr", "e", nil, "Function expression to plot (repeatable)")
	flags.StringVar(&sheetName, "sheet", "", "Sheet to read from xlsx files (default: first sheet)")
	flags.StringVar(&using, "using", "", "Column specification for data files, e.g. 1:3")
	flags.StringVar(&style, "with", "", "Curve style, e.g. linespoints")
	flags.StringVar(&title, "title", "", "Legend title for every item")
	flags.BoolVar(&noTitle, "notitle", false, "Leave items out of the legend")
	flags.BoolVar(&inline, "inline", false, "Send spreadsheet data inline instead of via temporary files")
	flags.BoolVar(&splot, "splot", false, "Draw a 3-D plot")
	flags.StringVar(&hardcopyPath, "hardcopy", "", "Also write the plot as postscript to this file")
	flags.StringVar(&mode, "mode", "", "Postscript mode: landscape, portrait, eps, default")
	flags.StringVar(&commandsPath, "commands", "", "Write gnuplot commands to this file instead of running gnuplot")
	flags.BoolVar(&persist, "persist", false, "Keep plot windows open after gnuplot exits")
	flags.StringVar(&envFile, "env", "", "Read GNUPLOT_* settings from this .env file")
	flags.BoolVarP(&interactive, "interactive", "i", false, "Forward further commands to gnuplot")
	flags.StringVar(&traceLevel, "trace", "Error", "Trace level [Debug|Info|Error]")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := setupTracing(traceLevel); err != nil {
		return err
	}

	// Load configuration
	var envfiles []string
	if envFile != "" {
		envfiles = append(envfiles, envFile)
	}
	opts, err := gnuplot.LoadOptions(envfiles...)
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}
	if persist {
		opts.Persist = true
	}
	// A command file must not refer to temporary files, they are gone
	// by the time it is loaded.
	if inline || commandsPath != "" {
		yes := true
		opts.PreferInlineData = &yes
	}

	// Open session
	session, err := openSession(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("unable to start gnuplot: %w", err)
	}

	// Build plot items; they outlive the session so gnuplot can still read
	// their temporary files while it shuts down.
	items, err := buildItems(session, args)
	defer func() {
		if err := session.Close(); err != nil {
			tracer().Errorf("closing gnuplot session: %v", err)
		}
		for _, it := range items {
			it.Close()
		}
	}()
	if err != nil {
		return err
	}

	if len(items) > 0 {
		plot := session.Plot
		if splot {
			plot = session.Splot
		}
		plotArgs := make([]any, len(items))
		for i, it := range items {
			plotArgs[i] = it
		}
		if err := plot(plotArgs...); err != nil {
			return fmt.Errorf("plot failed: %w", err)
		}
		pterm.Success.Println(fmt.Sprintf("plotted %d item(s)", len(items)))
	}

	if hardcopyPath != "" {
		if err := session.Hardcopy(hardcopyPath, gnuplot.HardcopyOptions{Mode: mode}); err != nil {
			return fmt.Errorf("hardcopy failed: %w", err)
		}
		pterm.Info.Println(fmt.Sprintf("postscript written to %s", hardcopyPath))
	}

	if interactive {
		return forwardCommands(session)
	}
	return nil
}

func openSession(ctx context.Context, opts gnuplot.Options) (*gnuplot.Session, error) {
	if commandsPath == "" {
		if ctx == nil {
			ctx = context.Background()
		}
		return gnuplot.New(ctx, opts)
	}
	f, err := os.Create(commandsPath)
	if err != nil {
		return nil, err
	}
	return gnuplot.NewWithWriter(f, opts), nil
}

// buildItems turns expressions and files into plot items. Items built
// before a failure are returned so the caller can close them.
func buildItems(session *gnuplot.Session, files []string) ([]gnuplot.Item, error) {
	var common []gnuplot.Opt
	if style != "" {
		common = append(common, gnuplot.With(style))
	}
	if noTitle {
		common = append(common, gnuplot.NoTitle())
	} else if title != "" {
		common = append(common, gnuplot.Title(title))
	}

	var items []gnuplot.Item
	for _, expr := range exprs {
		f, err := gnuplot.NewFunc(expr, common...)
		if err != nil {
			return items, err
		}
		items = append(items, f)
	}

	dataOpts := common
	if using != "" {
		dataOpts = append(append([]gnuplot.Opt(nil), common...), gnuplot.UsingExpr(using))
	}
	for _, path := range files {
		if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
			f, err := gnuplot.NewFile(path, dataOpts...)
			if err != nil {
				return items, err
			}
			items = append(items, f)
			continue
		}
		a, err := sheet.Load(path, sheetName)
		if err != nil {
			return items, fmt.Errorf("reading %s failed: %w", path, err)
		}
		d, err := session.NewData(a, dataOpts...)
		if err != nil {
			return items, err
		}
		tracer().Infof("%s: %v points", path, a.Shape())
		items = append(items, d)
	}
	return items, nil
}

// setupTracing routes traces to the Go logger.
func setupTracing(level string) error {
	lvl := tracing.LevelError
	switch level {
	case "Debug":
		lvl = tracing.LevelDebug
	case "Info":
		lvl = tracing.LevelInfo
	case "Error":
	default:
		return fmt.Errorf("invalid trace level: %s", level)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.gnuplot":       level,
		"trace.gnuplot.sheet": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().SetTraceLevel(lvl)
	return nil
}
