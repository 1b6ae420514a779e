package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/jsvensson/unipalette"
	"github.com/jsvensson/unipalette/internal/config"
	"github.com/jsvensson/unipalette/internal/expand"
	"github.com/jsvensson/unipalette/internal/export"
	"github.com/jsvensson/unipalette/internal/format"
	"github.com/jsvensson/unipalette/internal/preview"
	"github.com/jsvensson/unipalette/internal/render"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	flagPalette   string
	flagConfig    string
	flagVerbose   int
	flagShades    bool
	flagSuffix    string
	flagWorkers   int
	flagSelector  string
	flagColorOut  bool
	flagCheck     bool
	flagExportFmt string
	flagOut       string
	version       = "dev" // Injected at build time via ldflags
)

var log = commonlog.GetLogger("unipalette.cli")

// cfg is loaded once before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:               "unipalette",
	Short:             "Evaluate color expressions against a palette and expand color tags in files",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the palette colors in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runPreview,
}

var expandCmd = &cobra.Command{
	Use:   "expand <path>",
	Short: "Expand color tags in template files",
	Long: "Expand every ~~!...! tag in a template file, or in all template files found under a directory.\n" +
		"Each template is written next to itself without the template suffix.",
	Args: cobra.ExactArgs(1),
	RunE: runExpand,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate a color expression",
	Long:  "Evaluate a color expression against the palette. Arguments are joined with spaces.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEval,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format palette and config files",
	Long: "Format palette files and .hcl config files in-place. Prints the name of each file that was modified.\n" +
		"Without arguments the configured palette file is formatted.",
	RunE: runFmt,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the resolved palette as YAML or CSS",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPalette, "palette", "p", "", "palette file (overrides the config file)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "log more (can be repeated)")

	previewCmd.Flags().BoolVar(&flagShades, "shades", false, "show lighter and darker shades of each color")
	expandCmd.Flags().StringVar(&flagSuffix, "suffix", "", "template file suffix (default from config, "+expand.DefaultSuffix+")")
	expandCmd.Flags().IntVar(&flagWorkers, "workers", 0, "files expanded concurrently (default from config)")
	evalCmd.Flags().StringVarP(&flagSelector, "output", "o", "", "output selector: #, ~, $ or ! followed by an optional a or A alpha flag (default from config)")
	evalCmd.Flags().BoolVarP(&flagColorOut, "color", "c", false, "print the result on a background of its own color")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
	exportCmd.Flags().StringVar(&flagExportFmt, "format", "yaml", "export format: yaml or css")
	exportCmd.Flags().StringVarP(&flagSelector, "selector", "s", "", "output selector used for rendered values (default from config)")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "", "write to file instead of stdout")

	rootCmd.AddCommand(previewCmd, expandCmd, evalCmd, fmtCmd, exportCmd, versionCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadOrDefault(flagConfig)
	if err != nil {
		return err
	}
	commonlog.Configure(max(flagVerbose, cfg.Log.Verbosity), cfg.LogFile())
	if flagPalette != "" {
		cfg.Palette = flagPalette
	}
	log.Debugf("palette %s", cfg.Palette)
	return nil
}

func loadPalette() (*unipalette.Palette, error) {
	return unipalette.Load(cfg.Palette)
}

// selector returns the representation chosen by --format, falling back to
// the configured output format.
func selector() (render.Representation, render.AlphaMode, error) {
	s := flagSelector
	if s == "" {
		s = cfg.Output.Format
	}
	return render.ParseSelector(s)
}

func runPreview(cmd *cobra.Command, args []string) error {
	p, err := loadPalette()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	width := 80
	if f, ok := out.(*os.File); ok {
		width = preview.TerminalWidth(f)
	}
	pv := preview.New(out, width)
	swatches := preview.Swatches(p)

	fmt.Fprintln(out, pv.Header(cfg.Palette))
	fmt.Fprintln(out)
	if flagShades {
		fmt.Fprintln(out, pv.Shades(swatches))
	} else {
		fmt.Fprintln(out, pv.Grid(swatches))
	}
	return nil
}

func runExpand(cmd *cobra.Command, args []string) error {
	p, err := loadPalette()
	if err != nil {
		return err
	}

	e := &expand.Engine{
		Suffix:  cfg.Expand.Suffix,
		Workers: cfg.Expand.Workers,
		Exclude: cfg.Expand.Exclude,
	}
	if flagSuffix != "" {
		e.Suffix = flagSuffix
	}
	if flagWorkers > 0 {
		e.Workers = flagWorkers
	}

	report, err := e.Run(cmd.Context(), p, args[0])
	if err != nil {
		return fmt.Errorf("expanding: %w", err)
	}

	for _, d := range report.Diagnostics {
		fmt.Fprintln(cmd.ErrOrStderr(), d)
	}
	for _, fe := range report.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", fe)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Expanded %d file(s), %d substitution(s)\n", len(report.Files), report.Substitutions)

	if n := len(report.Errors) + len(report.Diagnostics); n > 0 {
		return fmt.Errorf("%d problem(s) while expanding", n)
	}
	return nil
}

func runEval(cmd *cobra.Command, args []string) error {
	p, err := loadPalette()
	if err != nil {
		return err
	}
	rep, alpha, err := selector()
	if err != nil {
		return err
	}

	expr := strings.Join(args, " ")
	text, err := unipalette.Eval(p, expr, rep, alpha)
	if err != nil {
		return err
	}
	if flagColorOut {
		c, _ := p.Eval(expr)
		text = preview.New(cmd.OutOrStdout(), 0).Chip(c, " "+text+" ", 0)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{cfg.Palette}
	}

	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.File(path, content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	p, err := loadPalette()
	if err != nil {
		return err
	}
	rep, alpha, err := selector()
	if err != nil {
		return err
	}

	var data []byte
	switch flagExportFmt {
	case "yaml":
		data, err = export.YAML(p, rep, alpha)
		if err != nil {
			return err
		}
	case "css":
		data = []byte(export.CSS(p, rep, alpha))
	default:
		return fmt.Errorf("unknown export format %q, want yaml or css", flagExportFmt)
	}

	if flagOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(flagOut, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	log.Infof("exported %d color(s) to %s", p.Len(), flagOut)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
