package xmlnode

import "slices"

const (
	optionElement = "option"
	nameAttr      = "name"
	valueAttr     = "value"
)

// ReadCustomField returns the value of the first <option name="key"> child.
// A missing option, or an option without a value attribute, reports false.
func ReadCustomField(e *Element, key string) (string, bool) {
	for _, c := range e.Children {
		if c.Name != optionElement {
			continue
		}
		if name, _ := c.Attr(nameAttr); name == key {
			return c.Attr(valueAttr)
		}
	}
	return "", false
}

// WriteCustomField appends <option name="key" value="value"/> to e
func WriteCustomField(e *Element, key, value string) {
	opt := NewElement(optionElement)
	opt.SetAttr(nameAttr, key)
	opt.SetAttr(valueAttr, value)
	e.AddChild(opt)
}

// RemoveCustomFields removes every <option> child whose name is one of keys
func RemoveCustomFields(e *Element, keys ...string) int {
	return e.RemoveChildrenFunc(func(c *Element) bool {
		if c.Name != optionElement {
			return false
		}
		name, _ := c.Attr(nameAttr)
		return slices.Contains(keys, name)
	})
}

// ChildrenValueAttributes collects the "value" attribute of every child named
// childName. Children without the attribute are skipped. The result is never nil.
func ChildrenValueAttributes(e *Element, childName string) []string {
	values := []string{}
	for _, c := range e.ChildrenNamed(childName) {
		if v, ok := c.Attr(valueAttr); ok {
			values = append(values, v)
		}
	}
	return values
}

// AddChildrenWithValueAttribute appends one <childName value=".."/> per value
func AddChildrenWithValueAttribute(e *Element, childName string, values []string) {
	for _, v := range values {
		e.AddChild(NewElement(childName).SetAttr(valueAttr, v))
	}
}
