package switchboard

import "strings"

// DefaultFactoryKey is the reserved mapping key that marks a definition as
// a factory invocation.
const DefaultFactoryKey = ":"

// Kind classifies a raw definition.
type Kind int

const (
	// KindLiteral is an opaque value passed through untouched.
	KindLiteral Kind = iota
	// KindReference is a whole-string bracketed token naming another service.
	KindReference
	// KindMapping is a composite mapping with no factory marker.
	KindMapping
	// KindSequence is an ordered composite.
	KindSequence
	// KindFactory is a mapping carrying the reserved factory key.
	KindFactory
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindReference:
		return "reference"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindFactory:
		return "factory"
	default:
		return "unknown"
	}
}

// classify tags a raw definition. Factory detection is local to each
// mapping, so nested mappings are classified independently at every level.
func classify(raw any, factoryKey string) Kind {
	switch v := raw.(type) {
	case string:
		if _, ok := referenceName(v); ok {
			return KindReference
		}
		return KindLiteral
	case map[string]any:
		if _, ok := v[factoryKey]; ok {
			return KindFactory
		}
		return KindMapping
	case []any:
		return KindSequence
	default:
		return KindLiteral
	}
}

// referenceName returns the referenced service name when the entire string
// is one bracketed token. A partial or embedded bracket is ordinary
// literal content, which keeps substitution away from unrelated strings.
func referenceName(s string) (string, bool) {
	if len(s) < 2 || s[0] != '<' || s[len(s)-1] != '>' {
		return "", false
	}
	if strings.HasPrefix(s, "<<") {
		return "", false
	}
	inner := s[1 : len(s)-1]
	if strings.ContainsAny(inner, "<>") {
		return "", false
	}
	return inner, true
}

// unescape decodes the doubled-bracket escape: a literal that should start
// with "<" is written "<<...", and exactly one leading "<" is stripped.
func unescape(s string) (string, bool) {
	if strings.HasPrefix(s, "<<") {
		return s[1:], true
	}
	return s, false
}
