package eml

import (
	"strings"

	"github.com/sesh22/eml/internal/handler"
	"github.com/sesh22/eml/internal/loc"
	"golang.org/x/net/html/atom"
)

// A Scanner converts markup text into a flat sequence of Tokens. It consumes
// one byte (or one fixed literal prefix) per step, driven by the active
// ScanState and at most one pending token.
type Scanner struct {
	input string
	pos   int
	state ScanState

	// pending is the single token currently being accumulated. Its zero
	// Type means no token is pending.
	pending    Token
	pendingSet bool

	// prevState is the state to restore when a comment closes. Comments may
	// appear anywhere and never contribute tokens.
	prevState ScanState

	// rawTag is the "script" in "</script>" that ends raw-text mode. While
	// non-empty, every byte is consumed verbatim until the exact closing
	// tag.
	rawTag string

	// lastStartTag is the most recently completed start tag name, consulted
	// when its ">" arrives to decide void, raw-text, or content handling.
	lastStartTag string

	tokens  []Token
	last    Token
	handler *handler.Handler
}

// NewScanner returns a Scanner for input. The handler is optional; when
// present it receives a ranged warning for every "&" that fails entity
// matching.
func NewScanner(input string, h *handler.Handler) *Scanner {
	return &Scanner{
		input:   input,
		state:   ScanBlank,
		tokens:  make([]Token, 0, 64),
		handler: h,
	}
}

// Scan tokenizes input in a single pass. It returns the emitted token
// sequence, or a *ScanError the moment a byte is invalid for the active
// state.
func Scan(input string) ([]Token, error) {
	return ScanWithHandler(input, nil)
}

// ScanWithHandler is Scan with a diagnostic sink attached.
func ScanWithHandler(input string, h *handler.Handler) ([]Token, error) {
	s := NewScanner(input, h)
	tokens, err := s.scan()
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *Scanner) scan() ([]Token, *ScanError) {
	for s.pos < len(s.input) {
		if err := s.step(); err != nil {
			return nil, err
		}
	}
	switch s.state {
	case ScanComment:
		return nil, s.fail("EOF", loc.ERROR_UNCLOSED_BLOCK)
	case ScanDoctype:
		return nil, s.fail("EOF", loc.ERROR_UNCLOSED_BLOCK)
	case ScanRawText:
		return nil, s.fail("EOF", loc.ERROR_UNCLOSED_BLOCK)
	case ScanAttrSingle, ScanAttrDouble:
		return nil, s.fail("EOF", loc.ERROR_UNTERMINATED_ATTRIBUTE)
	}
	s.flush()
	return s.tokens, nil
}

// step interprets the bytes at the current position. The transition classes
// are checked in a fixed priority order; the ordering is part of the
// scanner's contract since several rules would otherwise overlap.
func (s *Scanner) step() *ScanError {
	rest := s.input[s.pos:]

	// Comments are entered from any state and discarded entirely.
	if s.state == ScanComment {
		if strings.HasPrefix(rest, "-->") {
			s.pos += 3
			s.state = s.prevState
		} else {
			s.pos++
		}
		return nil
	}
	if strings.HasPrefix(rest, "<!--") {
		s.prevState = s.state
		s.state = ScanComment
		s.pos += 4
		return nil
	}

	// Doctype declarations are only valid from blank and discarded.
	if s.state == ScanDoctype {
		if rest[0] == '>' {
			s.state = ScanBlank
		}
		s.pos++
		return nil
	}
	if s.state == ScanBlank && (strings.HasPrefix(rest, "<!DOCTYPE") || strings.HasPrefix(rest, "<!doctype")) {
		s.state = ScanDoctype
		s.pos += len("<!DOCTYPE")
		return nil
	}

	// Template parameters; a hard error outside content or attribute
	// position.
	if strings.HasPrefix(rest, "#param{") {
		return s.scanParam()
	}

	// CDATA blocks become a single raw-text token. The prefix only has this
	// meaning in content position; elsewhere it falls through to the normal
	// byte handling below.
	if strings.HasPrefix(rest, "<![CDATA[") && s.contentPosition() {
		return s.scanCDATA()
	}

	// Element-local raw text: scan literally for the exact closing tag.
	if s.state == ScanRawText {
		s.scanRawByte()
		return nil
	}

	// Character entities, wherever a byte would be consumed into a text or
	// attribute value buffer.
	if rest[0] == '&' && (s.contentPosition() || s.attrPosition()) {
		s.scanEntity()
		return nil
	}

	return s.transition(rest[0])
}

// transition consumes one byte according to the active state.
func (s *Scanner) transition(c byte) *ScanError {
	switch s.state {
	case ScanBlank:
		switch {
		case c == '<':
			s.emit(OpenToken, "<")
			s.state = ScanOpen
		case isWhitespace(c):
			// discarded
		default:
			s.appendText(string(c))
		}

	case ScanOpen:
		switch {
		case c == '/':
			s.emit(SlashToken, "/")
			s.state = ScanEndSlash
		case isWhitespace(c):
			// discarded
		case c == '<' || c == '>':
			return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
		default:
			s.extend(StartTagToken, string(c))
			s.state = ScanStartTag
		}

	case ScanStartTag:
		switch {
		case isWhitespace(c):
			s.flush()
			s.state = ScanInTag
		case c == '/':
			s.flush()
			s.emit(SlashToken, "/")
			s.state = ScanSelfClose
		case c == '>':
			s.flush()
			s.closeStartTag()
		case c == '<':
			return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
		default:
			s.extend(StartTagToken, string(c))
		}

	case ScanInTag:
		switch {
		case isWhitespace(c):
			// discarded
		case c == '/':
			s.emit(SlashToken, "/")
			s.state = ScanSelfClose
		case c == '>':
			s.closeStartTag()
		case c == '<' || c == '=' || c == '\'' || c == '"':
			return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
		default:
			s.extend(AttrFieldToken, string(c))
			s.state = ScanAttrField
		}

	case ScanAttrField:
		switch {
		case c == '=':
			s.flush()
			s.emit(AttrSepToken, "=")
			s.state = ScanAttrSep
		case isWhitespace(c):
			// a field with no "=" is a boolean attribute
			s.flush()
			s.state = ScanInTag
		case c == '>':
			s.flush()
			s.closeStartTag()
		case c == '/':
			s.flush()
			s.emit(SlashToken, "/")
			s.state = ScanSelfClose
		case c == '<' || c == '\'' || c == '"':
			return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
		default:
			s.extend(AttrFieldToken, string(c))
		}

	case ScanAttrSep:
		switch {
		case c == '\'':
			s.emit(AttrSingleOpenToken, "'")
			s.state = ScanAttrSingle
		case c == '"':
			s.emit(AttrDoubleOpenToken, `"`)
			s.state = ScanAttrDouble
		case isWhitespace(c):
			// discarded
		default:
			// unquoted attribute values are not supported
			return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
		}

	case ScanAttrSingle:
		switch {
		case c == '\'':
			s.flush()
			s.emit(AttrCloseToken, "'")
			s.state = ScanInTag
		case c == '<':
			return s.fail(string(c), loc.ERROR_UNTERMINATED_ATTRIBUTE)
		default:
			s.appendText(string(c))
		}

	case ScanAttrDouble:
		switch {
		case c == '"':
			s.flush()
			s.emit(AttrCloseToken, `"`)
			s.state = ScanInTag
		case c == '<':
			return s.fail(string(c), loc.ERROR_UNTERMINATED_ATTRIBUTE)
		default:
			s.appendText(string(c))
		}

	case ScanSelfClose:
		switch {
		case c == '>':
			s.emit(CloseToken, ">")
			s.state = ScanClose
		case isWhitespace(c):
			// discarded
		default:
			return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
		}

	case ScanEndSlash:
		switch {
		case isWhitespace(c):
			// discarded
		case c == '<' || c == '>' || c == '/':
			return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
		default:
			s.extend(EndTagToken, string(c))
			s.state = ScanEndTag
		}

	case ScanEndTag:
		switch {
		case c == '>':
			s.flush()
			s.emit(EndCloseToken, ">")
			s.state = ScanEndClose
		case isWhitespace(c):
			s.flush()
		case c == '<':
			return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
		default:
			s.extend(EndTagToken, string(c))
		}

	case ScanStartClose, ScanEndClose, ScanClose:
		switch {
		case c == '<':
			s.emit(OpenToken, "<")
			s.state = ScanOpen
		case c == '\n' || c == '\r':
			// line breaks immediately after a tag close are dropped;
			// spaces are preserved as content-leading
		default:
			s.appendText(string(c))
		}

	case ScanContent:
		switch {
		case c == '<':
			s.flush()
			s.emit(OpenToken, "<")
			s.state = ScanOpen
		default:
			s.extend(ContentToken, string(c))
		}

	default:
		return s.fail(string(c), loc.ERROR_UNEXPECTED_CHARACTER)
	}

	s.pos++
	return nil
}

// closeStartTag handles the ">" of a start tag. Void elements close
// immediately; raw-text elements switch the scanner into raw-text mode for
// the element body; anything else opens a content region.
func (s *Scanner) closeStartTag() {
	switch {
	case isVoidElement(s.lastStartTag):
		s.emit(CloseToken, ">")
		s.state = ScanClose
	case isRawTextElement(s.lastStartTag):
		s.emit(StartCloseToken, ">")
		s.rawTag = s.lastStartTag
		s.state = ScanRawText
	default:
		s.emit(StartCloseToken, ">")
		s.state = ScanStartClose
	}
}

// scanRawByte consumes one byte of an element-local raw text body. On the
// exact closing tag it synthesizes the four tokens that a normally scanned
// end tag would have produced.
func (s *Scanner) scanRawByte() {
	end := "</" + s.rawTag + ">"
	if strings.HasPrefix(s.input[s.pos:], end) {
		s.flush()
		s.emit(OpenToken, "<")
		s.emit(SlashToken, "/")
		s.emit(EndTagToken, s.rawTag)
		s.emit(EndCloseToken, ">")
		s.pos += len(end)
		s.rawTag = ""
		s.state = ScanEndClose
		return
	}
	s.extend(RawTextToken, s.input[s.pos:s.pos+1])
	s.pos++
}

// scanParam consumes a "#param{identifier}" placeholder. The identifier is
// stored verbatim; nested braces are not supported.
func (s *Scanner) scanParam() *ScanError {
	var kind TokenType
	switch {
	case s.contentPosition():
		kind = ContentParamToken
	case s.attrPosition():
		kind = AttrParamToken
	default:
		return s.fail("#param{", loc.ERROR_MISPLACED_PARAM)
	}
	open := s.pos + len("#param{")
	idx := strings.IndexByte(s.input[open:], '}')
	if idx < 0 {
		return s.fail("#param{", loc.ERROR_UNCLOSED_BLOCK)
	}
	s.emit(kind, s.input[open:open+idx])
	s.pos = open + idx + 1
	if kind == ContentParamToken {
		s.state = ScanContent
	}
	return nil
}

// scanCDATA consumes a "<![CDATA[...]]>" block into one raw-text token.
func (s *Scanner) scanCDATA() *ScanError {
	open := s.pos + len("<![CDATA[")
	idx := strings.Index(s.input[open:], "]]>")
	if idx < 0 {
		return s.fail("<![CDATA[", loc.ERROR_UNCLOSED_BLOCK)
	}
	s.emit(RawTextToken, s.input[open:open+idx])
	s.pos = open + idx + len("]]>")
	s.state = ScanContent
	return nil
}

// scanEntity decodes a character entity at the current "&". A failed match
// degrades gracefully: the "&" passes through literally and scanning
// resumes at the following byte.
func (s *Scanner) scanEntity() {
	if repl, n := matchEntity(s.input, s.pos); n > 0 {
		s.appendText(repl)
		s.pos += n
		return
	}
	if s.handler != nil {
		s.handler.AppendWarning(&loc.ErrorWithRange{
			Code: loc.WARNING_UNKNOWN_ENTITY,
			Text: "unrecognized character entity, \"&\" passed through literally",
			Range: loc.Range{
				Loc: loc.Loc{Start: s.pos},
				Len: 1,
			},
		})
	}
	s.appendText("&")
	s.pos++
}

// appendText routes decoded or literal text into the buffer a plain byte
// would have extended in the active state.
func (s *Scanner) appendText(text string) {
	if s.attrPosition() {
		s.extend(AttrValueToken, text)
		return
	}
	s.extend(ContentToken, text)
	s.state = ScanContent
}

// contentPosition reports whether the scanner sits where text content may
// begin.
func (s *Scanner) contentPosition() bool {
	switch s.state {
	case ScanBlank, ScanContent, ScanStartClose, ScanEndClose, ScanClose:
		return true
	}
	return false
}

// attrPosition reports whether the scanner sits inside a quoted attribute
// value.
func (s *Scanner) attrPosition() bool {
	return s.state == ScanAttrSingle || s.state == ScanAttrDouble
}

// extend appends text to the pending token, starting a new one when the
// pending token has a different type. The machine never holds more than one
// pending token.
func (s *Scanner) extend(tt TokenType, text string) {
	if !s.pendingSet || s.pending.Type != tt {
		s.flush()
		s.pending = Token{Type: tt, Loc: loc.Loc{Start: s.pos}}
		s.pendingSet = true
	}
	s.pending.Data += text
}

// flush completes the pending token. Empty buffers and whitespace-only
// content buffers are dropped; raw-text tokens are never elided.
func (s *Scanner) flush() {
	if !s.pendingSet {
		return
	}
	t := s.pending
	s.pending = Token{}
	s.pendingSet = false
	switch t.Type {
	case RawTextToken, ContentParamToken, AttrParamToken:
		// always emitted
	case ContentToken:
		if strings.TrimSpace(t.Data) == "" {
			return
		}
	default:
		if t.Data == "" {
			return
		}
	}
	s.push(t)
}

// emit flushes the pending token and appends a completed token directly.
func (s *Scanner) emit(tt TokenType, text string) {
	s.flush()
	s.push(Token{Type: tt, Data: text, Loc: loc.Loc{Start: s.pos}})
}

func (s *Scanner) push(t Token) {
	switch t.Type {
	case StartTagToken:
		t.DataAtom = atom.Lookup([]byte(t.Data))
		s.lastStartTag = t.Data
	case EndTagToken:
		t.DataAtom = atom.Lookup([]byte(t.Data))
	}
	s.tokens = append(s.tokens, t)
	s.last = t
}

func (s *Scanner) fail(offending string, code loc.DiagnosticCode) *ScanError {
	next := ""
	if n := s.pos + len(offending); n < len(s.input) {
		next = s.input[n : n+1]
	}
	err := &ScanError{
		State:     s.state,
		Offending: offending,
		Buffer:    s.pending,
		LastToken: s.last,
		Next:      next,
		Loc:       loc.Loc{Start: s.pos},
	}
	if s.handler != nil {
		s.handler.AppendError(&loc.ErrorWithRange{
			Code: code,
			Text: err.Error(),
			Range: loc.Range{
				Loc: err.Loc,
				Len: len(offending),
			},
		})
	}
	return err
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
