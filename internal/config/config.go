// Package config loads printer settings from stateprinter.yml and the
// environment, and turns them into a printer configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/stateprinter/stateprinter/harvest"
	"github.com/stateprinter/stateprinter/printer"
	"github.com/stateprinter/stateprinter/render"
)

// FileName is the settings file looked up in the working directory
const FileName = "stateprinter.yml"

// EnvPrefix prefixes environment overrides, e.g. STATEPRINTER_OUTPUT=json
const EnvPrefix = "STATEPRINTER"

// Harvester names accepted in the harvester setting
const (
	HarvestAll        = "all"
	HarvestPublic     = "public"
	HarvestProperties = "properties"
)

// Harvesters lists the accepted harvester names
var Harvesters = []string{HarvestAll, HarvestPublic, HarvestProperties}

// Settings represents the stateprinter configuration file
type Settings struct {
	Output    string `mapstructure:"output" yaml:"output"`
	Indent    string `mapstructure:"indent" yaml:"indent"`
	NewLine   string `mapstructure:"newline" yaml:"newline"`
	Culture   string `mapstructure:"culture" yaml:"culture,omitempty"`
	Harvester string `mapstructure:"harvester" yaml:"harvester"`
	RootName  string `mapstructure:"root_name" yaml:"root_name,omitempty"`
}

// Default returns the settings used when no file is present
func Default() *Settings {
	opts := render.DefaultOptions()
	return &Settings{
		Output:    render.CurlyName,
		Indent:    opts.Indent,
		NewLine:   opts.NewLine,
		Harvester: HarvestAll,
	}
}

// Load reads settings from path, or from stateprinter.yml in the working
// directory when path is empty. A missing default file is not an error.
func Load(path string) (*Settings, error) {
	v := viper.New()

	// Set defaults
	def := Default()
	v.SetDefault("output", def.Output)
	v.SetDefault("indent", def.Indent)
	v.SetDefault("newline", def.NewLine)
	v.SetDefault("culture", def.Culture)
	v.SetDefault("harvester", def.Harvester)
	v.SetDefault("root_name", def.RootName)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".yml"))
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	// Enable environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	settings.NewLine = Unescape(settings.NewLine)

	if err := validate(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save writes settings to path as YAML. The newline is stored escaped,
// since yaml.v3 writes a bare "\n" as a block scalar that reads back empty.
func Save(path string, settings *Settings) error {
	if err := validate(settings); err != nil {
		return err
	}
	stored := *settings
	stored.NewLine = escaper.Replace(settings.NewLine)
	data, err := yaml.Marshal(&stored)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build creates a printer configuration from settings
func Build(settings *Settings, logger *zap.Logger) (*printer.Configuration, error) {
	if err := validate(settings); err != nil {
		return nil, err
	}

	cfg := printer.DefaultConfiguration()
	if err := cfg.SetRendererByName(settings.Output); err != nil {
		return nil, err
	}
	cfg.SetIndent(settings.Indent)
	cfg.SetNewLine(settings.NewLine)

	if settings.Culture != "" {
		// Already validated.
		cfg.SetCulture(language.MustParse(settings.Culture))
	}

	switch settings.Harvester {
	case HarvestPublic:
		_ = cfg.AddHarvester(harvest.PublicFields{})
	case HarvestProperties:
		_ = cfg.AddHarvester(harvest.PublicFieldsAndProperties{})
	}

	if logger != nil {
		if err := cfg.SetLogger(logger); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

var (
	escaper   = strings.NewReplacer("\t", `\t`, "\n", `\n`, "\r", `\r`)
	unescaper = strings.NewReplacer(`\t`, "\t", `\n`, "\n", `\r`, "\r")
)

// Unescape turns the literal \t, \n and \r escapes found in settings files
// and on the command line into the characters they name.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// validate validates the settings
func validate(s *Settings) error {
	if _, err := render.ByName(s.Output); err != nil {
		return fmt.Errorf("invalid output: %w", err)
	}
	if s.NewLine == "" {
		return fmt.Errorf("newline must not be empty")
	}
	if strings.Trim(s.Indent, " \t") != "" {
		return fmt.Errorf("indent must contain only spaces and tabs, got: %q", s.Indent)
	}
	if s.Culture != "" {
		if _, err := language.Parse(s.Culture); err != nil {
			return fmt.Errorf("invalid culture %q: %w", s.Culture, err)
		}
	}
	if !slices.Contains(Harvesters, s.Harvester) {
		return fmt.Errorf("harvester must be one of %s, got: %s", strings.Join(Harvesters, ", "), s.Harvester)
	}
	return nil
}
