package eml

import (
	"strings"
)

// An action is the compiler's interpretation of one scanner token kind.
type action uint32

const (
	// actionSkip drops structural tokens with no semantic payload.
	actionSkip action = iota
	actionOpenElement
	actionAttrField
	actionAttrValue
	actionAttrParam
	actionBeginChildren
	actionEndElement
	actionText
	actionRawText
	actionContentParam
)

// precompile maps each scanner token kind to exactly one compiler action.
func precompile(t Token) action {
	switch t.Type {
	case StartTagToken:
		return actionOpenElement
	case AttrFieldToken:
		return actionAttrField
	case AttrValueToken:
		return actionAttrValue
	case AttrParamToken:
		return actionAttrParam
	case StartCloseToken:
		return actionBeginChildren
	case EndCloseToken, CloseToken:
		return actionEndElement
	case ContentToken:
		return actionText
	case RawTextToken:
		return actionRawText
	case ContentParamToken:
		return actionContentParam
	}
	return actionSkip
}

// Compile reconstructs nested structure from a flat token sequence. It
// returns the ordered top-level content and any tokens it could not
// consume; non-empty leftovers indicate a malformed document.
func Compile(tokens []Token) ([]Content, []Token) {
	return compileContent(tokens)
}

// compileContent accumulates sibling content until it meets a token that
// ends the current level. The end token itself is left for the caller to
// consume.
func compileContent(tokens []Token) ([]Content, []Token) {
	content := make([]Content, 0, 4)
	for len(tokens) > 0 {
		t := tokens[0]
		switch precompile(t) {
		case actionOpenElement:
			var el *Element
			el, tokens = compileMarkup(tokens)
			content = append(content, el)
		case actionText:
			content = append(content, Text(t.Data))
			tokens = tokens[1:]
		case actionRawText:
			content = append(content, RawText(t.Data))
			tokens = tokens[1:]
		case actionContentParam:
			content = append(content, Param(t.Data))
			tokens = tokens[1:]
		case actionEndElement:
			return content, tokens
		default:
			tokens = tokens[1:]
		}
	}
	return content, nil
}

// compileMarkup builds one element from the start tag name at the head of
// tokens: its attributes, then either its children or an immediate close.
func compileMarkup(tokens []Token) (*Element, []Token) {
	name := tokens[0].Data
	tokens = tokens[1:]
	var attr []Attribute
	for len(tokens) > 0 {
		t := tokens[0]
		switch precompile(t) {
		case actionAttrField:
			attr = append(attr, Attribute{Key: t.Data, Val: AttrText("")})
			tokens = tokens[1:]
		case actionAttrValue:
			attr = mergeAttrValue(attr, AttrText(t.Data))
			tokens = tokens[1:]
		case actionAttrParam:
			attr = mergeAttrValue(attr, AttrParam(t.Data))
			tokens = tokens[1:]
		case actionBeginChildren:
			children, rest := compileContent(tokens[1:])
			if len(rest) > 0 {
				// the end-close or self-close token of this level
				rest = rest[1:]
			}
			return makeMarkup(name, attr, children), rest
		case actionEndElement:
			return makeMarkup(name, attr, nil), tokens[1:]
		default:
			tokens = tokens[1:]
		}
	}
	return makeMarkup(name, attr, nil), nil
}

// mergeAttrValue merges an incoming value part into the most recently
// opened field. Two plain text values concatenate; any placeholder converts
// the value to its mixed-parts form, preserving order.
func mergeAttrValue(attr []Attribute, part AttrPart) []Attribute {
	if len(attr) == 0 {
		// a value token with no open field has nowhere to go
		return attr
	}
	last := &attr[len(attr)-1]
	switch v := last.Val.(type) {
	case AttrText:
		if t, ok := part.(AttrText); ok {
			last.Val = v + t
			return attr
		}
		if v == "" {
			last.Val = AttrMixed{part}
		} else {
			last.Val = AttrMixed{v, part}
		}
	case AttrMixed:
		last.Val = append(v, part)
	}
	return attr
}

// makeMarkup finalizes one element: class values are split, then children
// are whitespace-normalized unless the tag renders its content verbatim.
func makeMarkup(name string, attr []Attribute, children []Content) *Element {
	for i := range attr {
		if attr[i].Key == "class" {
			attr[i].Val = splitClass(attr[i].Val)
		}
	}
	if len(children) == 0 {
		children = nil
	}
	el := NewElement(name, attr, children)
	if !isVerbatimElement(el.DataAtom) {
		normalizeSpace(el.Children)
	}
	return el
}

// splitClass splits a plain text class value on single spaces. A single
// token stays scalar; multiple tokens become an ordered list. Mixed and
// placeholder values pass through untouched.
func splitClass(v AttrValue) AttrValue {
	text, ok := v.(AttrText)
	if !ok {
		return v
	}
	parts := strings.Split(string(text), " ")
	if len(parts) == 1 {
		return v
	}
	return AttrList(parts)
}

// normalizeSpace collapses interior whitespace runs in every text child to
// a single space, trims the leading edge of the first child and the
// trailing edge of the last. Raw text, placeholders and elements pass
// through untouched.
func normalizeSpace(children []Content) {
	for i, c := range children {
		t, ok := c.(Text)
		if !ok {
			continue
		}
		s := collapseSpace(string(t))
		if i == 0 {
			s = strings.TrimLeft(s, " ")
		}
		if i == len(children)-1 {
			s = strings.TrimRight(s, " ")
		}
		children[i] = Text(s)
	}
}

// collapseSpace replaces every run of whitespace with a single space. Line
// breaks count as whitespace identically to spaces and tabs.
func collapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for i := 0; i < len(s); i++ {
		if isWhitespace(s[i]) {
			inRun = true
			continue
		}
		if inRun {
			b.WriteByte(' ')
		}
		inRun = false
		b.WriteByte(s[i])
	}
	if inRun {
		b.WriteByte(' ')
	}
	return b.String()
}
