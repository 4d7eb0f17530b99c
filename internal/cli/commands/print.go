package commands

import (
	"fmt"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/stateprinter/stateprinter/internal/cli/ui"
	"github.com/stateprinter/stateprinter/internal/config"
	"github.com/stateprinter/stateprinter/internal/input"
	"github.com/stateprinter/stateprinter/internal/watch"
	"github.com/stateprinter/stateprinter/printer"
	"github.com/stateprinter/stateprinter/render"
)

// formatValue is a --format flag restricted to the registered renderers
type formatValue struct {
	name string
}

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string { return f.name }

func (f *formatValue) Set(s string) error {
	s = strings.ToLower(s)
	if !slices.Contains(render.Names(), s) {
		return fmt.Errorf("must be one of: %s", strings.Join(render.Names(), ", "))
	}
	f.name = s
	return nil
}

func (f *formatValue) Type() string { return "format" }

// addFormatFlag registers --format/-f with shell completion of the renderer names
func addFormatFlag(cmd *cobra.Command, target *formatValue) {
	usage := fmt.Sprintf("Output format (%s)", strings.Join(render.Names(), ", "))
	cmd.Flags().VarP(target, "format", "f", usage)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return render.Names(), cobra.ShellCompDirectiveNoFileComp
	})
}

var (
	printFormat      formatValue
	printIndent      string
	printRoot        string
	printInputFormat string
	printColor       bool
	printWatch       bool
	printConfig      string
)

// NewPrintCommand creates the print command
func NewPrintCommand() *cobra.Command {
	printFormat = formatValue{}

	cmd := &cobra.Command{
		Use:   "print [file]",
		Short: "Print a JSON, JSONC, YAML or CBOR document",
		Long: `Decode a document and print it with the configured output format.

The input format is detected from the file extension (.json, .jsonc, .yaml,
.yml, .cbor), optionally followed by .zst or .lz4 for compressed files.
Without a file, or with "-", the document is read from stdin as JSON unless
--input-format says otherwise.

Settings are read from stateprinter.yml in the working directory (or from
--config) and may be overridden with STATEPRINTER_* environment variables
and the flags below.

Examples:
  stateprinter print graph.json                  # Curly output
  stateprinter print graph.yaml --format xml     # XML output
  stateprinter print dump.cbor.zst -f json       # Compressed CBOR as JSON
  cat graph.json | stateprinter print --root g   # Named root from stdin
  stateprinter print graph.json --watch          # Re-print on every save`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPrint,
	}

	addFormatFlag(cmd, &printFormat)
	cmd.Flags().StringVar(&printIndent, "indent", "", `Indentation unit, e.g. "  " or "\t"`)
	cmd.Flags().StringVar(&printRoot, "root", "", "Name given to the root value")
	cmd.Flags().StringVar(&printInputFormat, "input-format", "",
		fmt.Sprintf("Input format (%s), detected from the extension by default", strings.Join(input.Formats(), ", ")))
	cmd.Flags().BoolVar(&printColor, "color", false, "Syntax-highlight the output")
	cmd.Flags().BoolVarP(&printWatch, "watch", "w", false, "Print again whenever the file changes")
	cmd.Flags().StringVar(&printConfig, "config", "", "Path to settings file (default ./"+config.FileName+")")

	return cmd
}

func runPrint(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(printConfig)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if printFormat.name != "" {
		settings.Output = printFormat.name
	}
	if cmd.Flags().Changed("indent") {
		settings.Indent = config.Unescape(printIndent)
	}
	if cmd.Flags().Changed("root") {
		settings.RootName = printRoot
	}

	inputFormat, err := input.ParseFormat(printInputFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Build(settings, newLogger())
	if err != nil {
		return err
	}
	defer cfg.Logger().Sync()

	path := input.Stdin
	if len(args) == 1 {
		path = args[0]
	}

	p := printer.New(cfg)
	printOnce := func(string) error {
		v, err := input.ReadFile(path, inputFormat)
		if err != nil {
			return err
		}
		out, err := p.PrintNamed(v, settings.RootName)
		if err != nil {
			return err
		}
		if printColor {
			out = ui.Highlight(out, settings.Output)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	}

	if !printWatch {
		return printOnce(path)
	}
	if path == input.Stdin {
		return fmt.Errorf("--watch needs a file argument")
	}

	if err := printOnce(path); err != nil {
		reportError(cmd, err)
	}

	watcher, err := watch.NewFileWatcher(path, watch.DefaultDelay, cfg.Logger(), func(changed string) error {
		if err := printOnce(changed); err != nil {
			reportError(cmd, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	cmd.PrintErr(ui.Info("Watching "+path+" (Ctrl+C to stop)", noColor))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

