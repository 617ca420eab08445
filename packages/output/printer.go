package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/workspace"
	"github.com/abdul-hamid-achik/karmarun/packages/interchange"
)

// Formats lists the accepted output format names
var Formats = []string{"console", "json", "yaml", "xml"}

// Printer writes named configurations in one format
type Printer interface {
	Print(name string, s karma.RunSettings) error
}

// NewPrinter returns the printer for format. Console options only apply to
// the console format.
func NewPrinter(format string, w io.Writer, opts ...ConsoleOption) (Printer, error) {
	switch strings.ToLower(format) {
	case "", "console":
		return consoleAdapter{NewConsolePrinter(append([]ConsoleOption{WithWriter(w)}, opts...)...)}, nil
	case "json":
		return encodedPrinter{w: w, encode: interchange.ToJSON}, nil
	case "yaml", "yml":
		return encodedPrinter{w: w, encode: interchange.ToYAML, separator: "---\n"}, nil
	case "xml":
		return xmlPrinter{w: w}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

type consoleAdapter struct {
	p *ConsolePrinter
}

func (c consoleAdapter) Print(name string, s karma.RunSettings) error {
	c.p.PrintSettings(name, s)
	return nil
}

type encodedPrinter struct {
	w         io.Writer
	encode    func(karma.RunSettings) ([]byte, error)
	separator string
}

func (e encodedPrinter) Print(_ string, s karma.RunSettings) error {
	data, err := e.encode(s)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(e.w, e.separator); err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

type xmlPrinter struct {
	w io.Writer
}

func (x xmlPrinter) Print(name string, s karma.RunSettings) error {
	_, err := workspace.NewConfigurationElement(name, s).WriteTo(x.w)
	return err
}
