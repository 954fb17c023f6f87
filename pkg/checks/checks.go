package checks

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Ordered constrains the types that support < and > comparison directly.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~string
}

// IsEmpty reports whether s has zero length.
func IsEmpty(s string) bool {
	return len(s) == 0
}

// IsBlank reports whether s is empty or consists solely of whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// HasSpace reports whether s contains any whitespace character.
func HasSpace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}

// RuneLen returns the length of s in runes.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// InRange reports whether v lies within [min, max]. A nil bound is open.
func InRange[T Ordered](v T, min, max *T) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

// SizeWithin reports whether a length lies within [min, max] where a
// negative bound is open.
func SizeWithin(length, min, max int) bool {
	if min >= 0 && length < min {
		return false
	}
	if max >= 0 && length > max {
		return false
	}
	return true
}

// Within reports whether v equals one of the listed values.
func Within[T comparable](v T, list []T) bool {
	for _, item := range list {
		if v == item {
			return true
		}
	}
	return false
}

// Excluded reports whether v equals none of the listed values.
func Excluded[T comparable](v T, list []T) bool {
	return !Within(v, list)
}

// DecimalInRange reports whether v lies within [min, max]. A nil bound is open.
func DecimalInRange(v decimal.Decimal, min, max *decimal.Decimal) bool {
	if min != nil && v.Cmp(*min) < 0 {
		return false
	}
	if max != nil && v.Cmp(*max) > 0 {
		return false
	}
	return true
}

// TimeInRange reports whether v lies within [min, max] inclusive. A nil
// bound is open.
func TimeInRange(v time.Time, min, max *time.Time) bool {
	if min != nil && v.Before(*min) {
		return false
	}
	if max != nil && v.After(*max) {
		return false
	}
	return true
}
