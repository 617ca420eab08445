package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/nodejs"
	"github.com/fatih/color"
)

type ConsolePrinter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsolePrinter)

func NewConsolePrinter(opts ...ConsoleOption) *ConsolePrinter {
	p := &ConsolePrinter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.noColor {
		color.NoColor = true
	}
	return p
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(p *ConsolePrinter) {
		p.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(p *ConsolePrinter) {
		p.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(p *ConsolePrinter) {
		p.noColor = nc
	}
}

// PrintSettings writes a summary of one named configuration
func (p *ConsolePrinter) PrintSettings(name string, s karma.RunSettings) {
	bold := color.New(color.Bold).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(p.writer, "%s\n", bold(name))
	row := func(label, value string) {
		fmt.Fprintf(p.writer, "  %-14s %s\n", label+":", value)
	}

	row("Config file", orDefault(s.ConfigPath(), dim("(none)")))
	row("Browsers", orDefault(strings.Join(s.BrowserList(), ", "), dim("(from config file)")))
	if pkg, ok := s.KarmaPackage(); ok {
		value := pkg.SystemIndependentPath()
		if p.verbose {
			if id, err := packageID(pkg); err == nil {
				value += " " + dim("("+id+")")
			}
		}
		row("Karma package", value)
	} else if p.verbose {
		row("Karma package", dim("(auto)"))
	}
	row("Node", s.InterpreterRef().ReferenceName())
	row("Scope", cyan(s.ScopeKind().String()))

	switch kind := s.ScopeKind(); {
	case kind == karma.ScopeTestFile:
		row("Test file", s.TestFilePath())
	case kind.UsesTestNames():
		row("Test names", strings.Join(s.TestNames(), " > "))
	}

	envData := s.EnvData()
	if names := envData.Names(); len(names) > 0 {
		envs := envData.Envs()
		fmt.Fprintf(p.writer, "  Environment:\n")
		for _, n := range names {
			fmt.Fprintf(p.writer, "    %s=%s\n", n, envs[n])
		}
	}
	if !envData.PassParentEnvs() || p.verbose {
		row("Parent env", fmt.Sprintf("%t", envData.PassParentEnvs()))
	}
	fmt.Fprintln(p.writer)
}

// PrintWarning writes a highlighted warning line
func (p *ConsolePrinter) PrintWarning(format string, args ...any) {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Fprintf(p.writer, "%s %s\n", yellow("warning:"), fmt.Sprintf(format, args...))
}

// PrintError writes a highlighted error line
func (p *ConsolePrinter) PrintError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(p.writer, "%s %v\n", red("error:"), err)
}

// PrintOK writes a success line
func (p *ConsolePrinter) PrintOK(format string, args ...any) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintf(p.writer, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// packageID reads name@version from the package manifest
func packageID(pkg nodejs.Package) (string, error) {
	name, err := pkg.Name()
	if err != nil {
		return "", err
	}
	version, err := pkg.Version()
	if err != nil {
		return "", err
	}
	return name + "@" + version, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
