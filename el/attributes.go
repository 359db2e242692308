package el

import (
	"strconv"

	"github.com/vango-dev/weave/pkg/bind"
)

// Prop returns an attribute with an arbitrary key. A getter value binds it.
func Prop(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// AttrIf returns the attribute when cond is true, and an empty one otherwise.
func AttrIf(cond bool, attr Attr) Attr {
	if cond {
		return attr
	}
	return Attr{}
}

// Global attributes

func ID(id string) Attr { return Attr{Key: "id", Value: id} }

// Class sets static class tokens. Specs follow bind.ClassTokens: strings,
// slices, map[string]bool and numbers.
func Class(specs ...any) Attr {
	return Attr{Key: "class", Value: bind.ClassTokens(specs...)}
}

// ClassIf adds class when cond is true.
func ClassIf(cond bool, class string) Attr {
	if !cond {
		return Attr{}
	}
	return Class(class)
}

// Style sets static inline styles from a declaration string or a map.
func Style(v any) Attr { return Attr{Key: "style", Value: v} }

func Data(key, value string) Attr  { return Attr{Key: "data-" + key, Value: value} }
func Role(role string) Attr        { return Attr{Key: "role", Value: role} }
func AriaLabel(label string) Attr  { return Attr{Key: "aria-label", Value: label} }
func AriaLive(mode string) Attr    { return Attr{Key: "aria-live", Value: mode} }
func AriaHidden(hidden bool) Attr  { return Attr{Key: "aria-hidden", Value: strconv.FormatBool(hidden)} }
func TabIndex(index int) Attr      { return Attr{Key: "tabindex", Value: strconv.Itoa(index)} }
func TitleAttr(title string) Attr  { return Attr{Key: "title", Value: title} }
func Hidden() Attr                 { return Attr{Key: "hidden", Value: true} }
func Lang(lang string) Attr        { return Attr{Key: "lang", Value: lang} }
func Href(href string) Attr        { return Attr{Key: "href", Value: href} }
func Target(target string) Attr    { return Attr{Key: "target", Value: target} }
func Rel(rel string) Attr          { return Attr{Key: "rel", Value: rel} }
func Src(src string) Attr          { return Attr{Key: "src", Value: src} }
func Alt(alt string) Attr          { return Attr{Key: "alt", Value: alt} }
func Charset(charset string) Attr  { return Attr{Key: "charset", Value: charset} }
func Content(content string) Attr  { return Attr{Key: "content", Value: content} }
func Name(name string) Attr        { return Attr{Key: "name", Value: name} }
func Type(typ string) Attr         { return Attr{Key: "type", Value: typ} }
func Placeholder(text string) Attr { return Attr{Key: "placeholder", Value: text} }
func For(id string) Attr           { return Attr{Key: "for", Value: id} }
func Autofocus() Attr              { return Attr{Key: "autofocus", Value: true} }
func Disabled(disabled bool) Attr  { return Attr{Key: "disabled", Value: disabled} }
func Required() Attr               { return Attr{Key: "required", Value: true} }

// Dynamic attributes

// Bind binds key on the element to get. The key selects the strategy; see
// bind.Bind.
func Bind(key string, get bind.Getter) Attr {
	return Attr{Key: key, Value: get}
}

// BindFn binds key to a plain function.
func BindFn[T any](key string, fn func() T) Attr {
	return Attr{Key: key, Value: bind.Func(fn)}
}

// ClassFn binds the class list to the union of the given specs.
func ClassFn(gets ...bind.Getter) Attr {
	return Attr{Key: "class", Value: classBinding{gets: gets}}
}

// StyleFn binds one inline style property.
func StyleFn(name string, get bind.Getter) Attr {
	return Attr{Key: "style." + name, Value: get}
}

// Value binds a control's value in both directions.
func Value(get bind.Getter, set bind.Setter) Attr {
	return Attr{Key: "value", Value: twoWay{get: get, set: set}}
}

// Checked binds a control's checked state in both directions.
func Checked(get bind.Getter, set bind.Setter) Attr {
	return Attr{Key: "checked", Value: twoWay{get: get, set: set}}
}
