package commands

import (
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/stateprinter/stateprinter/internal/cli/ui"
	"github.com/stateprinter/stateprinter/render"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

var (
	verbose bool
	noColor bool
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "stateprinter",
		Short: "Print object graphs as curly, JSON, XML or Go literal text",
		Long: color.CyanString(`stateprinter - object graph printer

Prints documents and in-memory graphs in a readable, deterministic form.
Cycles and shared references are detected and printed as references
instead of being expanded forever.

Output formats:
  • curly    new T() { Field = value } with -> N back-references
  • json     valid JSON with $id / $ref / $values
  • xml      elements with type and ref attributes
  • literal  Go composite literals for acyclic graphs`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log traversal and rendering details to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored status output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(NewPrintCommand())
	rootCmd.AddCommand(NewDemoCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// newLogger returns a development logger under --verbose and a no-op
// logger otherwise.
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the stateprinter version, Git commit, build date, and Go version",
		Run: func(cmd *cobra.Command, args []string) {
			goVer := GoVersion
			if goVer == "unknown" {
				goVer = runtime.Version()
			}

			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)
			if noColor {
				titleColor.DisableColor()
				valueColor.DisableColor()
			}

			out := cmd.OutOrStdout()
			for _, row := range [][2]string{
				{"stateprinter version: ", Version},
				{"Git commit: ", GitCommit},
				{"Build date: ", BuildDate},
				{"Go version: ", goVer},
			} {
				titleColor.Fprint(out, row[0])
				valueColor.Fprintln(out, row[1])
			}
		},
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		reportError(rootCmd, err)
		return err
	}
	return nil
}

// reportError prints err in its structured form for commands that keep
// running after a failure.
func reportError(cmd *cobra.Command, err error) {
	cmd.PrintErr(ui.DescribeError(err, render.Names(), noColor))
}
