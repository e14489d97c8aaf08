/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package usafencing

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Rating is a USA Fencing classification: a letter A through E and the year
// it was earned, or U for unrated.
type Rating struct {
	Class byte
	Year  int
}

var Unrated = Rating{}

// ParseRating accepts "A24", "B2023", "E" and "U". Two digit years are in the
// 2000s.
func ParseRating(s string) (Rating, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" || s == "U" {
		return Unrated, nil
	}
	class := s[0]
	if class < 'A' || class > 'E' {
		return Unrated, fmt.Errorf("unable to parse rating %q: unknown class %c", s,
			class)
	}
	r := Rating{Class: class}
	if digits := s[1:]; digits != "" {
		year, err := strconv.Atoi(digits)
		if err != nil || (len(digits) != 2 && len(digits) != 4) {
			return Unrated, fmt.Errorf("unable to parse rating %q: bad year", s)
		}
		if len(digits) == 2 {
			year += 2000
		}
		r.Year = year
	}
	return r, nil
}

func (r Rating) IsRated() bool {
	return r.Class != 0
}

func (r Rating) String() string {
	if !r.IsRated() {
		return "U"
	}
	if r.Year == 0 {
		return string(r.Class)
	}
	return fmt.Sprintf("%c%02d", r.Class, r.Year%100)
}

// Compare orders ratings from weakest to strongest: U, then E up to A, with a
// more recent year stronger within a class.
func (r Rating) Compare(o Rating) int {
	if r.IsRated() != o.IsRated() {
		if r.IsRated() {
			return 1
		}
		return -1
	}
	// 'A' < 'E', but A is the stronger class
	return cmp.Or(cmp.Compare(o.Class, r.Class), cmp.Compare(r.Year, o.Year))
}

// MarshalText keeps the full year, unlike String.
func (r Rating) MarshalText() ([]byte, error) {
	if r.IsRated() && r.Year != 0 {
		return []byte(fmt.Sprintf("%c%04d", r.Class, r.Year)), nil
	}
	return []byte(r.String()), nil
}

func (r *Rating) UnmarshalText(text []byte) error {
	parsed, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
