package loc

import "fmt"

type DiagnosticSeverity int

const (
	ErrorType       DiagnosticSeverity = 1
	WarningType     DiagnosticSeverity = 2
	InformationType DiagnosticSeverity = 3
	HintType        DiagnosticSeverity = 4
)

type DiagnosticCode int

const (
	ERROR                        DiagnosticCode = 1000
	ERROR_UNEXPECTED_CHARACTER   DiagnosticCode = 1001
	ERROR_UNTERMINATED_ATTRIBUTE DiagnosticCode = 1002
	ERROR_MISPLACED_PARAM        DiagnosticCode = 1003
	ERROR_UNCLOSED_BLOCK         DiagnosticCode = 1004
	ERROR_LEFTOVER_TOKENS        DiagnosticCode = 1005
	WARNING                      DiagnosticCode = 2000
	WARNING_UNKNOWN_ENTITY       DiagnosticCode = 2001
	INFO                         DiagnosticCode = 3000
	HINT                         DiagnosticCode = 4000
)

type DiagnosticLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length"`
}

type DiagnosticMessage struct {
	Code     DiagnosticCode      `json:"code"`
	Severity int                 `json:"severity"`
	Text     string              `json:"text"`
	Location *DiagnosticLocation `json:"location,omitempty"`
}

// ErrorWithRange is an error carrying a byte range in the scanned input.
type ErrorWithRange struct {
	Code  DiagnosticCode
	Text  string
	Range Range
}

func (e *ErrorWithRange) Error() string {
	return fmt.Sprintf("%s (offset %d)", e.Text, e.Range.Loc.Start)
}

func (e *ErrorWithRange) ToMessage(location *DiagnosticLocation) DiagnosticMessage {
	return DiagnosticMessage{
		Code:     e.Code,
		Text:     e.Text,
		Location: location,
	}
}
