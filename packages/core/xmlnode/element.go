package xmlnode

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Attr is a single element attribute
type Attr struct {
	Name  string
	Value string
}

// Element is a node of the tree. Attribute and child order is preserved.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// NewElement creates an empty element with the given name
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Attr returns the value of the named attribute
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing an existing one in place
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Child returns the first child with the given name, or nil
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ChildrenNamed returns all children with the given name in document order
func (e *Element) ChildrenNamed(name string) []*Element {
	var result []*Element
	for _, c := range e.Children {
		if c.Name == name {
			result = append(result, c)
		}
	}
	return result
}

// AddChild appends a child and returns it
func (e *Element) AddChild(child *Element) *Element {
	e.Children = append(e.Children, child)
	return child
}

// RemoveChildren removes every child with the given name and reports how many were removed
func (e *Element) RemoveChildren(name string) int {
	return e.RemoveChildrenFunc(func(c *Element) bool { return c.Name == name })
}

// RemoveChildrenFunc removes every child for which match returns true
func (e *Element) RemoveChildrenFunc(match func(*Element) bool) int {
	kept := e.Children[:0]
	removed := 0
	for _, c := range e.Children {
		if match(c) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	for i := len(kept); i < len(e.Children); i++ {
		e.Children[i] = nil
	}
	e.Children = kept
	return removed
}

// Parse reads a single root element from r. Namespace prefixes are kept
// as written ("x:foo"), not resolved to namespace URLs.
func Parse(r io.Reader) (*Element, error) {
	dec := xml.NewDecoder(r)
	var stack []*Element
	var root *Element

	for {
		tok, err := dec.RawToken()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: qualifiedName(t.Name)}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: qualifiedName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parsing xml: multiple root elements")
				}
				root = el
			} else {
				stack[len(stack)-1].AddChild(el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			name := qualifiedName(t.Name)
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, fmt.Errorf("parsing xml: unexpected </%s>", name)
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("parsing xml: unclosed <%s>", stack[len(stack)-1].Name)
	}
	if root == nil {
		return nil, fmt.Errorf("parsing xml: no root element")
	}
	trimText(root)
	return root, nil
}

// ParseString is a convenience wrapper around Parse
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

// WriteTo writes the element as indented XML
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := e.encode(enc); err != nil {
		return 0, err
	}
	if err := enc.Flush(); err != nil {
		return 0, err
	}
	buf.WriteByte('\n')
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// String returns the indented XML form of the element
func (e *Element) String() string {
	var sb strings.Builder
	if _, err := e.WriteTo(&sb); err != nil {
		return ""
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func (e *Element) encode(enc *xml.Encoder) error {
	start := xml.StartElement{Name: xml.Name{Local: e.Name}}
	for _, a := range e.Attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
	}
	if err := enc.EncodeToken(start); err != nil {
		return fmt.Errorf("encoding <%s>: %w", e.Name, err)
	}
	if e.Text != "" {
		if err := enc.EncodeToken(xml.CharData(e.Text)); err != nil {
			return fmt.Errorf("encoding <%s> text: %w", e.Name, err)
		}
	}
	for _, c := range e.Children {
		if err := c.encode(enc); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// trimText drops whitespace-only text left over from indentation
func trimText(e *Element) {
	if strings.TrimSpace(e.Text) == "" {
		e.Text = ""
	}
	for _, c := range e.Children {
		trimText(c)
	}
}
