package eml

import (
	"fmt"

	"github.com/sesh22/eml/internal/loc"
)

// A ScanError reports an input byte that is invalid for the active scan
// state. It carries the full machine context at the point of failure and
// ends the scan immediately; there is no resynchronization.
type ScanError struct {
	State     ScanState
	Offending string
	Buffer    Token
	LastToken Token
	Next      string
	Loc       loc.Loc
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("eml: unexpected %q in state %s at offset %d", e.Offending, e.State, e.Loc.Start)
}

// A MalformedError reports that scanning succeeded but the compiler could
// not consume the whole token sequence into one coherent result. It carries
// whatever was built plus the unconsumed tail.
type MalformedError struct {
	Compiled []Content
	Rest     []Token
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("eml: malformed document, %d leftover token(s) after %q", len(e.Rest), e.Rest[0])
}
