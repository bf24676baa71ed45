package eml

// entities maps recognized character entity names to their replacement
// text. Decoding matches the longest run terminated by ";" within the bound
// of the longest known name; anything else falls through to a literal "&".
var entities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"hellip": "…",
}

const maxEntityName = len("hellip")

// matchEntity attempts to decode a character entity at input[pos], which
// must hold "&". It returns the replacement text and the number of input
// bytes consumed, or ("", 0) when no terminated name matches within the
// bound.
func matchEntity(input string, pos int) (string, int) {
	rest := input[pos+1:]
	bound := maxEntityName + 1
	if len(rest) < bound {
		bound = len(rest)
	}
	for i := 0; i < bound; i++ {
		if rest[i] != ';' {
			continue
		}
		if repl, ok := entities[rest[:i]]; ok {
			return repl, i + 2
		}
		return "", 0
	}
	return "", 0
}
