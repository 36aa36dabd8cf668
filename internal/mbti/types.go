// Package mbti maps the 16 MBTI personality types to investment themes,
// builds theme portfolios from stored ratio records and rotates daily insight cards.
package mbti

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidType is returned for anything that is not one of the 16 types
var ErrInvalidType = errors.New("invalid MBTI type")

// Type is an upper-case four letter MBTI code
type Type string

// allTypes fixes the canonical order (also the insight offset)
var allTypes = []Type{
	"INTJ", "INTP", "ENTJ", "ENTP",
	"INFJ", "INFP", "ENFJ", "ENFP",
	"ISTJ", "ISFJ", "ESTJ", "ESFJ",
	"ISTP", "ISFP", "ESTP", "ESFP",
}

// AllTypes returns the 16 types in canonical order
func AllTypes() []Type {
	out := make([]Type, len(allTypes))
	copy(out, allTypes)
	return out
}

// ParseType accepts any letter case and surrounding spaces
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if t.index() < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

func (t Type) index() int {
	for i, v := range allTypes {
		if v == t {
			return i
		}
	}
	return -1
}

func (t Type) String() string { return string(t) }

// Extraverted reports E over I
func (t Type) Extraverted() bool { return len(t) == 4 && t[0] == 'E' }

// Intuitive reports N over S
func (t Type) Intuitive() bool { return len(t) == 4 && t[1] == 'N' }

// Thinking reports T over F
func (t Type) Thinking() bool { return len(t) == 4 && t[2] == 'T' }

// Judging reports J over P
func (t Type) Judging() bool { return len(t) == 4 && t[3] == 'J' }
