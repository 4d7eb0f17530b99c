package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/stateprinter/stateprinter/internal/cli/ui"
	"github.com/stateprinter/stateprinter/internal/config"
	"github.com/stateprinter/stateprinter/render"
)

var (
	configPath  string
	configYes   bool
	configForce bool
)

// NewConfigCommand creates the config command and its subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or inspect the settings file",
	}
	cmd.PersistentFlags().StringVar(&configPath, "path", config.FileName, "Settings file path")

	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigShowCommand())
	return cmd
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file",
		Long: `Write a settings file, prompting for each value.

Examples:
  stateprinter config init            # Interactive
  stateprinter config init --yes      # Write the defaults
  stateprinter config init --force    # Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: runConfigInit,
	}
	cmd.Flags().BoolVarP(&configYes, "yes", "y", false, "Accept the defaults without prompting")
	cmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing settings file")
	return cmd
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	settings := config.Default()
	if !configYes {
		if err := askSettings(settings); err != nil {
			return err
		}
	}

	if err := config.Save(configPath, settings); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	ui.WriteSuccess(cmd.OutOrStdout(), "Wrote "+configPath, noColor)
	return nil
}

// askSettings prompts for each setting, starting from the values in s
func askSettings(s *config.Settings) error {
	if err := survey.AskOne(&survey.Select{
		Message: "Output format:",
		Options: render.Names(),
		Default: s.Output,
	}, &s.Output); err != nil {
		return err
	}

	width := strconv.Itoa(len(s.Indent))
	if err := survey.AskOne(&survey.Input{
		Message: "Indent width (spaces, 0 for tabs):",
		Default: width,
	}, &width, survey.WithValidator(func(ans any) error {
		n, err := strconv.Atoi(fmt.Sprint(ans))
		if err != nil || n < 0 || n > 16 {
			return fmt.Errorf("enter a number between 0 and 16")
		}
		return nil
	})); err != nil {
		return err
	}
	n, _ := strconv.Atoi(width)
	s.Indent = strings.Repeat(" ", n)
	if n == 0 {
		s.Indent = "\t"
	}

	if err := survey.AskOne(&survey.Select{
		Message: "Fields to print:",
		Options: config.Harvesters,
		Default: s.Harvester,
		Description: func(value string, _ int) string {
			return harvesterDescriptions[value]
		},
	}, &s.Harvester); err != nil {
		return err
	}

	return survey.AskOne(&survey.Input{
		Message: "Culture (BCP 47 tag, empty for invariant):",
		Default: s.Culture,
	}, &s.Culture)
}

var harvesterDescriptions = map[string]string{
	config.HarvestAll:        "every field, exported or not",
	config.HarvestPublic:     "exported fields only",
	config.HarvestProperties: "exported fields and getter methods",
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective settings",
		Long:  "Show the settings after defaults, the settings file and STATEPRINTER_* environment overrides are applied.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if _, err := os.Stat(path); err != nil {
				if !os.IsNotExist(err) {
					return err
				}
				path = ""
			}
			settings, err := config.Load(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			source := configPath
			if path == "" {
				source = "defaults"
			}
			ui.Header(out, "Settings ("+source+")", noColor)
			table := ui.NewKeyValueTable(out, noColor)
			table.AddRow("output", settings.Output)
			table.AddRow("indent", strconv.Quote(settings.Indent))
			table.AddRow("newline", strconv.Quote(settings.NewLine))
			table.AddRow("culture", orDash(settings.Culture))
			table.AddRow("harvester", settings.Harvester)
			table.AddRow("root_name", orDash(settings.RootName))
			table.Render()
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
