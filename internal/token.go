package eml

import (
	"strconv"

	"github.com/sesh22/eml/internal/loc"
	"golang.org/x/net/html/atom"
)

// A TokenType is the type of a Token.
type TokenType uint32

const (
	// ErrorToken means that an error occurred during tokenization.
	ErrorToken TokenType = iota
	// An OpenToken is the "<" opening a tag.
	OpenToken
	// A StartTagToken is the name of a start tag.
	StartTagToken
	// A SlashToken is the "/" of a self-closing or end tag.
	SlashToken
	// An AttrFieldToken is an attribute name.
	AttrFieldToken
	// An AttrSepToken is the "=" between attribute name and value.
	AttrSepToken
	// An AttrSingleOpenToken is the "'" opening a single-quoted value.
	AttrSingleOpenToken
	// An AttrDoubleOpenToken is the `"` opening a double-quoted value.
	AttrDoubleOpenToken
	// An AttrValueToken is a literal run of attribute value text.
	AttrValueToken
	// An AttrCloseToken is the quote closing an attribute value.
	AttrCloseToken
	// A StartCloseToken is the ">" closing a start tag whose children follow.
	StartCloseToken
	// A ContentToken is a run of text content.
	ContentToken
	// An EndTagToken is the name of an end tag.
	EndTagToken
	// An EndCloseToken is the ">" closing an end tag.
	EndCloseToken
	// A CloseToken is the ">" closing a void or self-closed tag.
	CloseToken
	// A RawTextToken is the body of a CDATA block or a script/style element,
	// exempt from whitespace normalization.
	RawTextToken
	// A ContentParamToken is a #param{...} placeholder in content position.
	ContentParamToken
	// An AttrParamToken is a #param{...} placeholder in attribute position.
	AttrParamToken
)

// String returns a string representation of the TokenType.
func (t TokenType) String() string {
	switch t {
	case ErrorToken:
		return "Error"
	case OpenToken:
		return "Open"
	case StartTagToken:
		return "StartTag"
	case SlashToken:
		return "Slash"
	case AttrFieldToken:
		return "AttrField"
	case AttrSepToken:
		return "AttrSep"
	case AttrSingleOpenToken:
		return "AttrSingleOpen"
	case AttrDoubleOpenToken:
		return "AttrDoubleOpen"
	case AttrValueToken:
		return "AttrValue"
	case AttrCloseToken:
		return "AttrClose"
	case StartCloseToken:
		return "StartClose"
	case ContentToken:
		return "Content"
	case EndTagToken:
		return "EndTag"
	case EndCloseToken:
		return "EndClose"
	case CloseToken:
		return "Close"
	case RawTextToken:
		return "RawText"
	case ContentParamToken:
		return "ContentParam"
	case AttrParamToken:
		return "AttrParam"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// A Token consists of a TokenType and the accumulated literal for that token
// (tag name for tag tokens, text for content, the identifier for params).
// Structural tokens carry their fixed literal. For tag tokens, DataAtom is
// the atom for Data, or zero if Data is not a known tag name.
type Token struct {
	Type     TokenType
	DataAtom atom.Atom
	Data     string
	Loc      loc.Loc
}

// String returns a source-shaped representation of the Token.
func (t Token) String() string {
	switch t.Type {
	case ErrorToken:
		return ""
	case RawTextToken:
		return t.Data
	case ContentParamToken, AttrParamToken:
		return "#param{" + t.Data + "}"
	}
	return t.Data
}

// A ScanState determines how the scanner interprets the next input byte.
// Exactly one state is active at any scan position.
type ScanState uint32

const (
	// ScanBlank is the initial state, before and between top-level content.
	ScanBlank ScanState = iota
	// ScanOpen means "<" was just consumed.
	ScanOpen
	// ScanStartTag means a start tag name is being accumulated.
	ScanStartTag
	// ScanInTag means inside a start tag, between attributes.
	ScanInTag
	// ScanAttrField means an attribute name is being accumulated.
	ScanAttrField
	// ScanAttrSep means "=" was consumed and a quote must follow.
	ScanAttrSep
	// ScanAttrSingle means inside a single-quoted attribute value.
	ScanAttrSingle
	// ScanAttrDouble means inside a double-quoted attribute value.
	ScanAttrDouble
	// ScanSelfClose means "/" was consumed inside a start tag.
	ScanSelfClose
	// ScanEndSlash means "</" was consumed and an end tag name must follow.
	ScanEndSlash
	// ScanEndTag means an end tag name is being accumulated.
	ScanEndTag
	// ScanStartClose means a start tag just closed; content follows.
	ScanStartClose
	// ScanEndClose means an end tag just closed.
	ScanEndClose
	// ScanClose means a void or self-closed tag just closed.
	ScanClose
	// ScanContent means text content is being accumulated.
	ScanContent
	// ScanComment means inside "<!--" ... "-->".
	ScanComment
	// ScanDoctype means inside "<!DOCTYPE" ... ">".
	ScanDoctype
	// ScanRawText means inside the body of a script or style element,
	// consumed literally until the exact closing tag.
	ScanRawText
)

// String returns a string representation of the ScanState.
func (s ScanState) String() string {
	switch s {
	case ScanBlank:
		return "Blank"
	case ScanOpen:
		return "Open"
	case ScanStartTag:
		return "StartTag"
	case ScanInTag:
		return "InTag"
	case ScanAttrField:
		return "AttrField"
	case ScanAttrSep:
		return "AttrSep"
	case ScanAttrSingle:
		return "AttrSingle"
	case ScanAttrDouble:
		return "AttrDouble"
	case ScanSelfClose:
		return "SelfClose"
	case ScanEndSlash:
		return "EndSlash"
	case ScanEndTag:
		return "EndTag"
	case ScanStartClose:
		return "StartClose"
	case ScanEndClose:
		return "EndClose"
	case ScanClose:
		return "Close"
	case ScanContent:
		return "Content"
	case ScanComment:
		return "Comment"
	case ScanDoctype:
		return "Doctype"
	case ScanRawText:
		return "RawText"
	}
	return "Invalid(" + strconv.Itoa(int(s)) + ")"
}

// voidElements are tags that never have children and no matching end tag.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Keygen: true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// rawTextElements are tags whose body is scanned literally until the exact
// closing tag, bypassing normal tag detection.
var rawTextElements = map[atom.Atom]bool{
	atom.Script: true,
	atom.Style:  true,
}

// verbatimElements are tags whose children are exempt from whitespace
// normalization.
var verbatimElements = map[atom.Atom]bool{
	atom.Pre:      true,
	atom.Textarea: true,
}

func isVoidElement(name string) bool {
	return voidElements[atom.Lookup([]byte(name))]
}

func isRawTextElement(name string) bool {
	return rawTextElements[atom.Lookup([]byte(name))]
}

func isVerbatimElement(a atom.Atom) bool {
	return verbatimElements[a]
}
