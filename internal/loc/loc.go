package loc

// Loc is a 0-based byte offset from the start of the input.
type Loc struct {
	Start int
}

// Range is a located run of bytes in the input.
type Range struct {
	Loc Loc
	Len int
}

func (r Range) End() int {
	return r.Loc.Start + r.Len
}

// Span is a range of bytes in a Scanner's buffer. The start is inclusive,
// the end is exclusive.
type Span struct {
	Start, End int
}
