package quiz

import (
	"strconv"
	"strings"
	"unicode"
)

// ValidateID turns a raw command argument into a record id.
//
// A nil raw means the argument was absent. Only the leading integer prefix is parsed,
// so "12abc" yields 12; a value without a digit prefix is ErrInvalidID.
func ValidateID(raw *string) (int64, error) {
	if raw == nil {
		return 0, ErrMissingID
	}
	s := strings.TrimLeftFunc(*raw, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, ErrInvalidID
	}
	id, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
