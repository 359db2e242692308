package dom

import "slices"

// Attribute is a single element attribute.
type Attribute struct {
	Key string
	Val string
}

// StyleProperty is a single inline style declaration.
type StyleProperty struct {
	Name  string
	Value string
}

// Attributes returns a copy of the attribute list in insertion order.
func (n *Node) Attributes() []Attribute {
	return slices.Clone(n.attrs)
}

// GetAttribute returns the attribute value and whether it is present.
func (n *Node) GetAttribute(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is present.
func (n *Node) HasAttribute(key string) bool {
	_, ok := n.GetAttribute(key)
	return ok
}

// SetAttribute sets or replaces an attribute.
func (n *Node) SetAttribute(key, val string) {
	i := slices.IndexFunc(n.attrs, func(a Attribute) bool { return a.Key == key })
	if i >= 0 {
		n.attrs[i].Val = val
	} else {
		n.attrs = append(n.attrs, Attribute{Key: key, Val: val})
	}
	n.doc.write(n, Patch{Op: PatchSetAttr, Key: key, Value: val})
}

// RemoveAttribute removes an attribute. Removing a missing attribute is a
// no-op and reports nothing.
func (n *Node) RemoveAttribute(key string) {
	i := slices.IndexFunc(n.attrs, func(a Attribute) bool { return a.Key == key })
	if i < 0 {
		return
	}
	n.attrs = slices.Delete(n.attrs, i, i+1)
	n.doc.write(n, Patch{Op: PatchRemoveAttr, Key: key})
}

// Property returns a property value, or nil when unset.
func (n *Node) Property(key string) any {
	return n.props[key]
}

// PropertyKeys returns the keys of set properties in first-write order.
func (n *Node) PropertyKeys() []string {
	return slices.Clone(n.propOrder)
}

// SetProperty assigns a property.
func (n *Node) SetProperty(key string, v any) {
	n.setProperty(key, v)
	op := PatchSetProp
	switch key {
	case "value":
		op = PatchSetValue
	case "checked":
		op = PatchSetChecked
	}
	n.doc.write(n, Patch{Op: op, Key: key, Value: v})
}

func (n *Node) setProperty(key string, v any) {
	if n.props == nil {
		n.props = make(map[string]any)
	}
	if _, ok := n.props[key]; !ok {
		n.propOrder = append(n.propOrder, key)
	}
	n.props[key] = v
}

// Classes returns the class tokens in insertion order.
func (n *Node) Classes() []string {
	return slices.Clone(n.classes)
}

// HasClass reports whether token is in the class list.
func (n *Node) HasClass(token string) bool {
	return slices.Contains(n.classes, token)
}

// AddClass adds a class token.
func (n *Node) AddClass(token string) {
	if !slices.Contains(n.classes, token) {
		n.classes = append(n.classes, token)
	}
	n.doc.write(n, Patch{Op: PatchAddClass, Key: token})
}

// RemoveClass removes a class token.
func (n *Node) RemoveClass(token string) {
	if i := slices.Index(n.classes, token); i >= 0 {
		n.classes = slices.Delete(n.classes, i, i+1)
	}
	n.doc.write(n, Patch{Op: PatchRemoveClass, Key: token})
}

// StyleProperties returns the inline style declarations in insertion order.
func (n *Node) StyleProperties() []StyleProperty {
	return slices.Clone(n.style)
}

// Style returns the value of an inline style property, or "".
func (n *Node) Style(name string) string {
	for _, p := range n.style {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// SetStyle sets an inline style property. An empty value removes it.
func (n *Node) SetStyle(name, value string) {
	i := slices.IndexFunc(n.style, func(p StyleProperty) bool { return p.Name == name })
	if value == "" {
		if i >= 0 {
			n.style = slices.Delete(n.style, i, i+1)
		}
		n.doc.write(n, Patch{Op: PatchRemoveStyle, Key: name})
		return
	}
	if i >= 0 {
		n.style[i].Value = value
	} else {
		n.style = append(n.style, StyleProperty{Name: name, Value: value})
	}
	n.doc.write(n, Patch{Op: PatchSetStyle, Key: name, Value: value})
}
