package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stateprinter/stateprinter/internal/cli/ui"
	"github.com/stateprinter/stateprinter/printer"
)

// Car is an acyclic sample graph
type Car struct {
	Brand      string
	Amplifiers []string
	Wheel      *SteeringWheel
}

// SteeringWheel is part of the Car sample
type SteeringWheel struct {
	Size int
	Grip *FoamGrip
}

// FoamGrip is part of the Car sample
type FoamGrip struct {
	Material string
}

// Level is an enum printed by name
type Level int

const (
	Beginner Level = iota
	Advanced
)

func (l Level) String() string {
	switch l {
	case Beginner:
		return "Beginner"
	case Advanced:
		return "Advanced"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Course is a cyclic sample graph: every student points back at its course
type Course struct {
	ID       uuid.UUID
	Title    string
	Level    Level
	Students []*Student
}

// Student is part of the Course sample
type Student struct {
	Name   string
	Course *Course
}

// Team is a sample where one value is shared by two fields
type Team struct {
	Lead   *Student
	Backup *Student
	Scores map[string]float64
}

// demos builds a fresh graph per call so runs never share state
var demos = map[string]func() any{
	"car": func() any {
		return &Car{
			Brand: "Toyota",
			Wheel: &SteeringWheel{Size: 3, Grip: &FoamGrip{Material: "Plastic"}},
		}
	},
	"course": func() any {
		c := &Course{
			ID:    uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
			Title: "Graph Theory",
			Level: Advanced,
		}
		c.Students = []*Student{{Name: "Stan", Course: c}, {Name: "Richard", Course: c}}
		return c
	},
	"shared": func() any {
		s := &Student{Name: "Kyle"}
		return &Team{Lead: s, Backup: s, Scores: map[string]float64{"speed": 1.5, "accuracy": 0.75}}
	},
}

// demoNames lists the built-in samples, sorted
func demoNames() []string {
	names := make([]string, 0, len(demos))
	for name := range demos {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var demoFormat formatValue

// NewDemoCommand creates the demo command
func NewDemoCommand() *cobra.Command {
	demoFormat = formatValue{}

	cmd := &cobra.Command{
		Use:   "demo [sample]",
		Short: "Print built-in sample graphs",
		Long: fmt.Sprintf(`Print one of the built-in sample graphs, or all of them.

Samples: %s

Examples:
  stateprinter demo                    # All samples, curly format
  stateprinter demo course -f json     # The cyclic course as JSON`, strings.Join(demoNames(), ", ")),
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: demoNames(),
		RunE:      runDemo,
	}
	addFormatFlag(cmd, &demoFormat)
	return cmd
}

func runDemo(cmd *cobra.Command, args []string) error {
	names := demoNames()
	if len(args) == 1 {
		if _, ok := demos[args[0]]; !ok {
			msg := fmt.Sprintf("unknown sample %q", args[0])
			if s := ui.FindSimilar(args[0], names, nil); len(s) > 0 {
				msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
			}
			return fmt.Errorf("%s", msg)
		}
		names = args[:1]
	}

	cfg := printer.DefaultConfiguration()
	if demoFormat.name != "" {
		if err := cfg.SetRendererByName(demoFormat.name); err != nil {
			return err
		}
	}
	if err := cfg.SetLogger(newLogger()); err != nil {
		return err
	}
	p := printer.New(cfg)

	out := cmd.OutOrStdout()
	for i, name := range names {
		if len(names) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			ui.Header(out, name, noColor)
		}
		text, err := p.PrintNamed(demos[name](), name)
		if err != nil {
			return fmt.Errorf("sample %s: %w", name, err)
		}
		fmt.Fprintln(out, text)
	}
	return nil
}
