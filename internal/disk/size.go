package disk

import (
	"math"
	"strconv"
	"strings"
)

var sizeUnits = map[byte]float64{
	'K': 1 << 10,
	'M': 1 << 20,
	'G': 1 << 30,
	'T': 1 << 40,
}

// ParseSize converts an lsblk size such as "931.5G" to bytes.
// Units are binary multiples and case insensitive; a trailing "B" or "iB" is accepted
// and a bare number is taken as bytes. Anything unparseable yields 0.
func ParseSize(s string) int64 {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasSuffix(s, "iB"), strings.HasSuffix(s, "ib"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "B"), strings.HasSuffix(s, "b"):
		s = s[:len(s)-1]
	}
	if s == "" {
		return 0
	}

	multiplier := 1.0
	last := s[len(s)-1]
	if last >= 'a' && last <= 'z' {
		last -= 'a' - 'A'
	}
	if m, ok := sizeUnits[last]; ok {
		multiplier = m
		s = s[:len(s)-1]
	}

	// lsblk prints a decimal comma under some locales.
	value, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	bytes := value * multiplier
	if bytes >= math.MaxInt64 {
		return 0
	}
	return int64(bytes)
}
