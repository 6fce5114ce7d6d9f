package schema

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	errEmptySeconds   = errors.New("empty seconds value")
	errInvalidSeconds = errors.New("invalid seconds value")
	errTooPrecise     = errors.New("seconds value more precise than a nanosecond")
	errOutOfRange     = errors.New("seconds value out of range")
)

// FormatSeconds renders a nanosecond quantity as decimal seconds with at least
// one fractional digit: 1000s -> "1000.0", 1.5s -> "1.5".
// This is the notation used in split file names.
func FormatSeconds(ns int64) string {
	b := make([]byte, 0, 24)
	u := uint64(ns)
	if ns < 0 {
		b = append(b, '-')
		u = uint64(-ns)
	}
	b = strconv.AppendUint(b, u/uint64(time.Second), 10)
	b = append(b, '.')
	frac := u % uint64(time.Second)
	if frac == 0 {
		return string(append(b, '0'))
	}
	digits := strconv.FormatUint(frac, 10)
	b = append(b, strings.Repeat("0", 9-len(digits))...)
	b = append(b, strings.TrimRight(digits, "0")...)
	return string(b)
}

// ParseSeconds parses decimal seconds ("60", "60.0", "1000.25", "-1.5") into
// nanoseconds without going through floating point.
func ParseSeconds(s string) (int64, error) {
	if s == "" {
		return 0, errEmptySeconds
	}
	neg := s[0] == '-'
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	if intPart == "" && fracPart == "" {
		return 0, errInvalidSeconds
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, errInvalidSeconds
	}
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > 9 {
		return 0, errTooPrecise
	}

	var sec, frac uint64
	var err error
	if intPart != "" {
		sec, err = strconv.ParseUint(intPart, 10, 63)
		if err != nil {
			return 0, errOutOfRange
		}
	}
	if fracPart != "" {
		frac, _ = strconv.ParseUint(fracPart+strings.Repeat("0", 9-len(fracPart)), 10, 64)
	}
	if sec > (math.MaxInt64-frac)/uint64(time.Second) {
		return 0, errOutOfRange
	}
	ns := int64(sec*uint64(time.Second) + frac)
	if neg {
		ns = -ns
	}
	return ns, nil
}

// ParseTimespan parses decimal seconds into a positive duration.
func ParseTimespan(s string) (time.Duration, error) {
	ns, err := ParseSeconds(s)
	if err != nil {
		return 0, err
	}
	if ns <= 0 {
		return 0, errors.New("timespan must be positive")
	}
	return time.Duration(ns), nil
}

// FormatTimespan is the inverse of ParseTimespan.
func FormatTimespan(d time.Duration) string {
	return FormatSeconds(int64(d))
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
