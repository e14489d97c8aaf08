/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package usafencing models fencers and clubs as registered with USA Fencing.
package usafencing

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

type Name struct {
	First         string `json:"first_name"`
	Last          string `json:"last_name"`
	MiddleInitial string `json:"middle_initial,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	Suffix        string `json:"suffix,omitempty"`
}

// String formats the name as "Last, First (Nickname) M Suffix"
func (n Name) String() string {
	var sb strings.Builder
	sb.WriteString(n.Last)
	if n.First != "" {
		if n.Last != "" {
			sb.WriteString(", ")
		}
		sb.WriteString(n.First)
	}
	if n.Nickname != "" {
		sb.WriteString(fmt.Sprintf(" (%v)", n.Nickname))
	}
	if n.MiddleInitial != "" {
		sb.WriteString(" " + n.MiddleInitial)
	}
	if n.Suffix != "" {
		sb.WriteString(" " + n.Suffix)
	}
	return sb.String()
}

func (n Name) compare(o Name) int {
	return cmp.Or(
		strings.Compare(n.Last, o.Last),
		strings.Compare(n.First, o.First),
		strings.Compare(n.MiddleInitial, o.MiddleInitial),
		strings.Compare(n.Nickname, o.Nickname),
		strings.Compare(n.Suffix, o.Suffix),
	)
}

// ParseName splits "Last, First M" or "First M Last" into a Name. A trailing
// Jr./Sr./II/III/IV is taken as the suffix and a quoted or parenthesized word
// as the nickname.
func ParseName(s string) Name {
	var n Name
	s = strings.TrimSpace(s)

	if open := strings.IndexAny(s, "(\""); open >= 0 {
		closeCh := ")"
		if s[open] == '"' {
			closeCh = "\""
		}
		if end := strings.Index(s[open+1:], closeCh); end >= 0 {
			n.Nickname = strings.TrimSpace(s[open+1 : open+1+end])
			s = strings.TrimSpace(s[:open] + s[open+1+end+1:])
		}
	}

	var rest []string
	if last, first, ok := strings.Cut(s, ","); ok {
		n.Last = strings.TrimSpace(last)
		rest = strings.Fields(first)
	} else {
		rest = strings.Fields(s)
		if len(rest) > 1 {
			if isSuffix(rest[len(rest)-1]) && len(rest) > 2 {
				n.Suffix = rest[len(rest)-1]
				rest = rest[:len(rest)-1]
			}
			n.Last = rest[len(rest)-1]
			rest = rest[:len(rest)-1]
		}
	}
	if len(rest) > 1 && isSuffix(rest[len(rest)-1]) {
		n.Suffix = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}
	if len(rest) > 0 {
		n.First = rest[0]
	}
	if len(rest) > 1 {
		n.MiddleInitial = strings.ToUpper(rest[1][:1])
	}
	return n
}

func isSuffix(s string) bool {
	switch strings.ToLower(strings.TrimSuffix(s, ".")) {
	case "jr", "sr", "ii", "iii", "iv":
		return true
	}
	return false
}

type Hand string

const (
	HandLeft  Hand = "Left"
	HandRight Hand = "Right"
)

type GenderIdentity string

const (
	GenderMan           GenderIdentity = "Man"
	GenderWoman         GenderIdentity = "Woman"
	GenderNonConforming GenderIdentity = "NonConforming"
	GenderMaleToFemale  GenderIdentity = "MaleToFemale"
	GenderFemaleToMale  GenderIdentity = "FemaleToMale"
)

// Date is a calendar day; the zero Date is unknown and encodes as "".
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf drops the time of day from t.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) Time() time.Time {
	return d.t
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(time.DateOnly)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	t, err := time.Parse(time.DateOnly, string(text))
	if err != nil {
		return fmt.Errorf("unable to parse date %q: %w", string(text), err)
	}
	*d = Date{t: t}
	return nil
}

// Fencer is a USA Fencing member. Two records denote the same fencer when
// both the name and the birth date match.
type Fencer struct {
	Name           Name           `json:"name"`
	Clubs          []Club         `json:"clubs,omitempty"`
	DateOfBirth    Date           `json:"date_of_birth"`
	GenderIdentity GenderIdentity `json:"gender_identity,omitempty"`
	Handedness     Hand           `json:"handedness,omitempty"`
	Rating         Rating         `json:"rating"`
	MemberID       string         `json:"member_id,omitempty"`
}

// WithName returns a fencer with no details beyond the given name.
func WithName(name string) Fencer {
	return Fencer{Name: ParseName(name)}
}

func (f Fencer) Key() string {
	return strings.Join([]string{f.Name.Last, f.Name.First, f.Name.MiddleInitial,
		f.Name.Nickname, f.Name.Suffix, f.DateOfBirth.String()}, "|")
}

func (f Fencer) Compare(other Fencer) int {
	if c := f.Name.compare(other.Name); c != 0 {
		return c
	}
	return strings.Compare(f.DateOfBirth.String(), other.DateOfBirth.String())
}

func (f Fencer) String() string {
	return f.Name.String()
}

// Seed orders fencers strongest first by rating, keeping the given order
// among equal ratings.
func Seed(fencers []Fencer) {
	slices.SortStableFunc(fencers, func(a, b Fencer) int {
		return b.Rating.Compare(a.Rating)
	})
}
