package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSelection parses a user's choice of archive days.
//
// The input is a list separated by commas or whitespace. Each item is one of:
//   - a date, "2024-03-14"
//   - a day offset, "8" (eight days before today)
//   - an inclusive offset range, "8-15"
//
// Items expand in the order written. Duplicates are kept.
//
// Example:
//
//	dates, err := ParseSelection("0, 8-10 2024-03-14", today)
func ParseSelection(input string, today Date) ([]Date, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no days selected")
	}

	var dates []Date
	for _, field := range fields {
		if d, err := ParseDate(field); err == nil {
			dates = append(dates, d)
			continue
		}

		if n, err := strconv.Atoi(field); err == nil {
			if n < 0 {
				return nil, fmt.Errorf("offset %d is in the future", n)
			}
			dates = append(dates, today.AddDays(-n))
			continue
		}

		lo, hi, ok := strings.Cut(field, "-")
		if !ok {
			return nil, fmt.Errorf("invalid day %q: want a date, an offset or a range", field)
		}
		from, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", field, err)
		}
		to, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", field, err)
		}
		if from > to {
			return nil, fmt.Errorf("invalid range %q: start is after end", field)
		}
		for n := from; n <= to; n++ {
			dates = append(dates, today.AddDays(-n))
		}
	}
	return dates, nil
}
