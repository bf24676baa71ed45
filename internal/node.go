package eml

import (
	"golang.org/x/net/html/atom"
)

// Content is one item of an element's children: literal text, a nested
// element, raw text exempt from whitespace normalization, or a template
// placeholder. The variant is closed.
type Content interface {
	contentNode()
}

// Text is ordinary text content, subject to whitespace normalization.
type Text string

// RawText is literal text from a CDATA block or a script/style body. It is
// never trimmed or collapsed.
type RawText string

// Param is a template placeholder identifier, resolved by the surrounding
// templating library.
type Param string

func (Text) contentNode()     {}
func (RawText) contentNode()  {}
func (Param) contentNode()    {}
func (*Element) contentNode() {}

// An AttrValue is an attribute's value: plain text, a list (class values),
// or an ordered mix of text and placeholder parts. The variant is closed.
type AttrValue interface {
	attrValue()
}

// An AttrPart is one part of a mixed attribute value.
type AttrPart interface {
	attrPart()
}

// AttrText is a plain text attribute value, and also a text part of a
// mixed value. A boolean attribute carries the empty AttrText.
type AttrText string

// AttrList is an ordered list value, produced by class splitting.
type AttrList []string

// AttrParam is a placeholder part of a mixed attribute value.
type AttrParam string

// AttrMixed is an ordered sequence of text and placeholder parts. It only
// arises when a placeholder and literal text share one attribute.
type AttrMixed []AttrPart

func (AttrText) attrValue()  {}
func (AttrList) attrValue()  {}
func (AttrMixed) attrValue() {}
func (AttrText) attrPart()   {}
func (AttrParam) attrPart()  {}

// An Attribute is an ordered field/value pair on an element. Fields are not
// deduplicated; adjacent values for the most recently opened field merge
// per the compiler's value-merge rule.
type Attribute struct {
	Key string
	Val AttrValue
}

// An Element is one node of the compiled tree. Data is the tag name;
// DataAtom is its atom, or zero for unknown tags.
type Element struct {
	Data     string
	DataAtom atom.Atom
	Attr     []Attribute
	Children []Content
}

// NewElement builds an element node from a tag name, its ordered
// attributes, and its ordered children. The compiler calls this once per
// completed element.
func NewElement(data string, attr []Attribute, children []Content) *Element {
	return &Element{
		Data:     data,
		DataAtom: atom.Lookup([]byte(data)),
		Attr:     attr,
		Children: children,
	}
}

// Attribute returns the value of the first attribute with the given key.
func (e *Element) Attribute(key string) (AttrValue, bool) {
	for _, a := range e.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return nil, false
}

// Walk visits e and every descendant element in document order.
func (e *Element) Walk(cb func(*Element)) {
	cb(e)
	for _, c := range e.Children {
		if child, ok := c.(*Element); ok {
			child.Walk(cb)
		}
	}
}
