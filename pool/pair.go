/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import "fmt"

// Side identifies one of the two fencers of a bout, relative to the order in
// which its pair was constructed.
type Side int

const (
	SideNone Side = iota
	SideFirst
	SideSecond
)

func (s Side) String() string {
	switch s {
	case SideFirst:
		return "First"
	case SideSecond:
		return "Second"
	default:
		return "None"
	}
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(text []byte) error {
	switch string(text) {
	case "First":
		*s = SideFirst
	case "Second":
		*s = SideSecond
	case "None", "":
		*s = SideNone
	default:
		return fmt.Errorf("unknown side %q", string(text))
	}
	return nil
}

func (s Side) index() int {
	return int(s) - 1
}

// PairKey is the order independent map key of an UnorderedPair.
type PairKey struct {
	Lo, Hi string
}

// UnorderedPair holds two distinct competitors. Two pairs holding the same
// competitors are equal regardless of the order they were constructed in.
type UnorderedPair[T Competitor[T]] struct {
	first, second *T
}

// NewUnorderedPair returns ErrInvalidPair if a and b denote the same
// competitor.
func NewUnorderedPair[T Competitor[T]](a, b *T) (UnorderedPair[T], error) {
	if a == nil || b == nil {
		return UnorderedPair[T]{}, fmt.Errorf("%w: missing fencer", ErrInvalidPair)
	}
	if sameCompetitor(*a, *b) {
		return UnorderedPair[T]{}, fmt.Errorf("%w: %v", ErrInvalidPair, (*a).Key())
	}
	return UnorderedPair[T]{first: a, second: b}, nil
}

func (p UnorderedPair[T]) First() *T  { return p.first }
func (p UnorderedPair[T]) Second() *T { return p.second }

// Key normalizes the members under the competitors' total order.
func (p UnorderedPair[T]) Key() PairKey {
	a, b := *p.first, *p.second
	if a.Compare(b) > 0 {
		a, b = b, a
	}
	return PairKey{Lo: a.Key(), Hi: b.Key()}
}

func (p UnorderedPair[T]) Equal(other UnorderedPair[T]) bool {
	return p.Key() == other.Key()
}

// Side reports which member of the pair c is.
func (p UnorderedPair[T]) Side(c T) Side {
	switch {
	case sameCompetitor(c, *p.first):
		return SideFirst
	case sameCompetitor(c, *p.second):
		return SideSecond
	}
	return SideNone
}

func (p UnorderedPair[T]) Contains(c T) bool {
	return p.Side(c) != SideNone
}

// Member returns the pair's own instance of c, which may be a different
// instance than the one passed in.
func (p UnorderedPair[T]) Member(c T) (*T, bool) {
	switch p.Side(c) {
	case SideFirst:
		return p.first, true
	case SideSecond:
		return p.second, true
	}
	return nil, false
}

// Opponent returns the member of the pair c is facing.
func (p UnorderedPair[T]) Opponent(c T) (*T, bool) {
	switch p.Side(c) {
	case SideFirst:
		return p.second, true
	case SideSecond:
		return p.first, true
	}
	return nil, false
}

func (p UnorderedPair[T]) member(s Side) *T {
	if s == SideFirst {
		return p.first
	}
	return p.second
}
