package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseDimensions converts a grid size string (e.g., "8x8", "12X4", "5") to
// width and height. A single number describes a square grid.
func ParseDimensions(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, fmt.Errorf("empty dimensions")
	}

	parts := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == 'x' || r == '*' || r == '×'
	})

	switch len(parts) {
	case 1:
		if strings.ContainsAny(strings.ToLower(s), "x*×") {
			return 0, 0, fmt.Errorf("invalid dimensions: %s", s)
		}
		n, err := parsePositive(parts[0])
		if err != nil {
			return 0, 0, err
		}
		return n, n, nil
	case 2:
		w, err := parsePositive(parts[0])
		if err != nil {
			return 0, 0, err
		}
		h, err := parsePositive(parts[1])
		if err != nil {
			return 0, 0, err
		}
		return w, h, nil
	default:
		return 0, 0, fmt.Errorf("invalid dimensions: %s", s)
	}
}

func parsePositive(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("size must be positive, got %d", n)
	}
	return n, nil
}
