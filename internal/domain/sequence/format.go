package sequence

import (
	"fmt"
	"regexp"
	"strconv"
)

// numberWidth is the zero-padded width of the sequence part. Numbers beyond
// six digits keep their natural width; the format stays parseable.
const numberWidth = 6

var numberRegex = regexp.MustCompile(`^([A-Z]+)-(\d{4})-(\d{6,})$`)

// Format renders a record number like "TKT-2024-000001".
func Format(prefix string, year int, n int64) (string, error) {
	if n < 1 {
		return "", ErrInvalidSequence
	}
	return fmt.Sprintf("%s-%04d-%0*d", prefix, year, numberWidth, n), nil
}

// Parse recovers the prefix, year and sequence from a formatted record
// number. It accepts exactly what Format produces.
func Parse(number string) (prefix string, year int, n int64, err error) {
	m := numberRegex.FindStringSubmatch(number)
	if m == nil {
		return "", 0, 0, ErrMalformedNumber
	}

	year, err = strconv.Atoi(m[2])
	if err != nil {
		return "", 0, 0, ErrMalformedNumber
	}
	n, err = strconv.ParseInt(m[3], 10, 64)
	if err != nil || n < 1 {
		return "", 0, 0, ErrMalformedNumber
	}

	return m[1], year, n, nil
}
