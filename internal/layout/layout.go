// Package layout holds paper sizes and CSS length parsing shared by the
// configuration layer and the PDF renderer.
package layout

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Sentinel errors for layout values.
var (
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidLength   = errors.New("invalid length")
)

// Page size names.
const (
	PageSizeA4     = "A4"
	PageSizeLetter = "Letter"
	PageSizeLegal  = "Legal"
	PageSizeA3     = "A3"
	PageSizeA5     = "A5"
)

// Size is a paper size in inches, portrait.
type Size struct {
	Name   string
	Width  float64
	Height float64
}

var sizes = map[string]Size{
	"a4":     {PageSizeA4, 8.27, 11.69},
	"letter": {PageSizeLetter, 8.5, 11},
	"legal":  {PageSizeLegal, 8.5, 14},
	"a3":     {PageSizeA3, 11.69, 16.54},
	"a5":     {PageSizeA5, 5.83, 8.27},
}

// LookupSize finds a page size by name, case-insensitively.
func LookupSize(name string) (Size, error) {
	s, ok := sizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Size{}, fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidPageSize, name, strings.Join(SizeNames(), ", "))
	}
	return s, nil
}

// SizeNames lists the canonical size names, sorted.
func SizeNames() []string {
	names := make([]string, 0, len(sizes))
	for _, s := range sizes {
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Units per inch for the accepted CSS length units.
var unitsPerInch = map[string]float64{
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
	"pt": 72,
	"px": 96,
}

// ParseLength converts a CSS length such as "1in", "2.5cm" or "18pt" to
// inches. A bare "0" is accepted; any other value needs a unit. Negative
// lengths are rejected.
func ParseLength(s string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "0" {
		return 0, nil
	}
	if len(v) < 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}

	unit := v[len(v)-2:]
	perInch, ok := unitsPerInch[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q (unit must be in, cm, mm, pt or px)", ErrInvalidLength, s)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-2]), 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, s)
	}
	return n / perInch, nil
}
