package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/karmarun/packages/core/karma"
	"github.com/abdul-hamid-achik/karmarun/packages/core/xmlnode"
)

const (
	// ConfigurationType is the type attribute of Karma run configurations
	ConfigurationType = "JavaScriptTestRunnerKarma"
	// FactoryName is the factory attribute written for new configurations
	FactoryName = "Karma"

	// RunManagerComponent is the component holding configurations in workspace.xml
	RunManagerComponent = "RunManager"
	// SharedComponent is the component used by .run/*.run.xml files
	SharedComponent = "ProjectRunConfigurationManager"

	// RunFileSuffix is the suffix of shared run configuration files
	RunFileSuffix = ".run.xml"

	componentElement     = "component"
	configurationElement = "configuration"
)

// ErrNoComponent is returned when a document holds no run configuration component
var ErrNoComponent = errors.New("no run configuration component")

// Configuration is a named Karma configuration found in a document
type Configuration struct {
	Name     string
	Settings karma.RunSettings
	// Element is the stored <configuration> element the settings were read from
	Element *xmlnode.Element
}

// Document wraps a parsed run configuration document
type Document struct {
	root      *xmlnode.Element
	component *xmlnode.Element
}

// New creates an empty document with the given component name. Shared
// .run files have the component as their root; other documents wrap it
// in <project version="4">.
func New(componentName string) *Document {
	component := xmlnode.NewElement(componentElement).SetAttr("name", componentName)
	if componentName == SharedComponent {
		return &Document{root: component, component: component}
	}
	root := xmlnode.NewElement("project").SetAttr("version", "4")
	root.AddChild(component)
	return &Document{root: root, component: component}
}

// Parse reads a document. The root may be a <project> holding components or
// a bare <component>, as found in .run files.
func Parse(r io.Reader) (*Document, error) {
	root, err := xmlnode.Parse(r)
	if err != nil {
		return nil, err
	}

	component := findComponent(root)
	if component == nil {
		return nil, ErrNoComponent
	}
	return &Document{root: root, component: component}, nil
}

// Load parses the document at path
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func findComponent(root *xmlnode.Element) *xmlnode.Element {
	if root.Name == componentElement {
		return root
	}
	for _, c := range root.ChildrenNamed(componentElement) {
		name, _ := c.Attr("name")
		if name == RunManagerComponent || name == SharedComponent {
			return c
		}
	}
	return nil
}

// Root returns the underlying document element
func (d *Document) Root() *xmlnode.Element {
	return d.root
}

// Configurations decodes every Karma configuration in document order
func (d *Document) Configurations() []Configuration {
	var result []Configuration
	for _, el := range d.karmaElements() {
		name, _ := el.Attr("name")
		result = append(result, Configuration{Name: name, Settings: karma.ReadXML(el), Element: el})
	}
	return result
}

// Get decodes the configuration with the given name
func (d *Document) Get(name string) (karma.RunSettings, bool) {
	if el := d.find(name); el != nil {
		return karma.ReadXML(el), true
	}
	return karma.RunSettings{}, false
}

// Put stores settings under name. An existing configuration is updated in
// place: attributes and children the codec does not own are kept.
func (d *Document) Put(name string, settings karma.RunSettings) {
	if el := d.find(name); el != nil {
		karma.ClearXML(el)
		karma.WriteXML(el, settings)
		return
	}
	d.component.AddChild(NewConfigurationElement(name, settings))
}

// Remove deletes the configuration with the given name
func (d *Document) Remove(name string) bool {
	for i, c := range d.component.Children {
		if isKarma(c) && attr(c, "name") == name {
			d.component.Children = append(d.component.Children[:i], d.component.Children[i+1:]...)
			return true
		}
	}
	return false
}

// WriteTo writes the document with an XML declaration
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?>`+"\n")
	if err != nil {
		return int64(n), err
	}
	m, err := d.root.WriteTo(w)
	return int64(n) + m, err
}

// Save writes the document to path
func (d *Document) Save(path string) error {
	var sb strings.Builder
	if _, err := d.WriteTo(&sb); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// NewConfigurationElement encodes settings into a fresh <configuration> element
func NewConfigurationElement(name string, settings karma.RunSettings) *xmlnode.Element {
	el := xmlnode.NewElement(configurationElement).
		SetAttr("name", name).
		SetAttr("type", ConfigurationType).
		SetAttr("factoryName", FactoryName)
	karma.WriteXML(el, settings)
	return el
}

// LoadDir reads every *.run.xml file in dir, sorted by file name
func LoadDir(dir string) ([]Configuration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), RunFileSuffix) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	var result []Configuration
	for _, f := range files {
		doc, err := Load(f)
		if err != nil {
			return nil, err
		}
		result = append(result, doc.Configurations()...)
	}
	return result, nil
}

func (d *Document) karmaElements() []*xmlnode.Element {
	var result []*xmlnode.Element
	for _, c := range d.component.Children {
		if isKarma(c) {
			result = append(result, c)
		}
	}
	return result
}

func (d *Document) find(name string) *xmlnode.Element {
	for _, el := range d.karmaElements() {
		if attr(el, "name") == name {
			return el
		}
	}
	return nil
}

func isKarma(el *xmlnode.Element) bool {
	return el.Name == configurationElement && attr(el, "type") == ConfigurationType
}

func attr(el *xmlnode.Element, name string) string {
	v, _ := el.Attr(name)
	return v
}
