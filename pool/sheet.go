/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import (
	"fmt"
)

// Sheet is a pool sheet: the fencers of one pool and one bout for every pair
// of them. Each fencer is held once and shared by every bout it fences in.
//
// A Sheet is not safe for concurrent use.
type Sheet[T Competitor[T]] struct {
	fencers []*T
	bouts   map[PairKey]*Bout[T]
	order   []PairKey
}

// NewSheet builds the pool for competitors using the bout order from
// provider. Competitors are de-duplicated by Key, keeping the first
// occurrence.
func NewSheet[T Competitor[T]](competitors []T,
	provider BoutOrderProvider) (*Sheet[T], error) {

	fencers := dedupe(competitors)

	order, err := provider.Order(len(fencers))
	if err != nil {
		return nil, fmt.Errorf("unable to get bout order for %d fencers: %w",
			len(fencers), err)
	}

	s := &Sheet[T]{
		fencers: fencers,
		bouts:   make(map[PairKey]*Bout[T], len(order)),
		order:   make([]PairKey, 0, len(order)),
	}
	for i, idx := range order {
		a, b := idx[0], idx[1]
		if a < 1 || a > len(fencers) || b < 1 || b > len(fencers) {
			return nil, fmt.Errorf("%w: bout %d (%d,%d) is out of range for %d fencers",
				ErrInvalidBout, i+1, a, b, len(fencers))
		}
		pair, err := NewUnorderedPair(fencers[a-1], fencers[b-1])
		if err != nil {
			return nil, fmt.Errorf("%w: bout %d (%d,%d): %v", ErrInvalidBout,
				i+1, a, b, err)
		}
		if err := s.insert(pair); err != nil {
			return nil, err
		}
	}
	if err := s.checkComplete(); err != nil {
		return nil, err
	}

	return s, nil
}

func dedupe[T Competitor[T]](competitors []T) []*T {
	seen := make(map[string]bool, len(competitors))
	fencers := make([]*T, 0, len(competitors))
	for _, c := range competitors {
		if seen[c.Key()] {
			continue
		}
		seen[c.Key()] = true
		f := c
		fencers = append(fencers, &f)
	}
	return fencers
}

func (s *Sheet[T]) insert(pair UnorderedPair[T]) error {
	key := pair.Key()
	if _, ok := s.bouts[key]; ok {
		return fmt.Errorf("%w: %v vs %v appears more than once", ErrInvalidBout,
			key.Lo, key.Hi)
	}
	s.bouts[key] = NewBout(pair)
	s.order = append(s.order, key)
	return nil
}

func (s *Sheet[T]) checkComplete() error {
	n := len(s.fencers)
	if want := n * (n - 1) / 2; len(s.bouts) != want {
		return fmt.Errorf("%w: %d fencers need %d bouts, have %d", ErrInvalidBout,
			n, want, len(s.bouts))
	}
	return nil
}

// Fencers returns the pool's fencers in their original order.
func (s *Sheet[T]) Fencers() []*T {
	out := make([]*T, len(s.fencers))
	copy(out, s.fencers)
	return out
}

func (s *Sheet[T]) Len() int {
	return len(s.fencers)
}

// Bouts returns every bout in bout order.
func (s *Sheet[T]) Bouts() []*Bout[T] {
	out := make([]*Bout[T], len(s.order))
	for i, key := range s.order {
		out[i] = s.bouts[key]
	}
	return out
}

// Bout returns the bout for pair. The returned bout belongs to the sheet and
// may be modified in place.
func (s *Sheet[T]) Bout(pair UnorderedPair[T]) (*Bout[T], error) {
	b, ok := s.bouts[pair.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: %v vs %v", ErrNoBoutFound, pair.Key().Lo,
			pair.Key().Hi)
	}
	return b, nil
}

// BoutBetween returns the bout between a and b.
func (s *Sheet[T]) BoutBetween(a, b T) (*Bout[T], error) {
	pair, err := NewUnorderedPair(&a, &b)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBout, err)
	}
	return s.Bout(pair)
}

// Position returns the 0-based position of the bout between a and b in bout
// order.
func (s *Sheet[T]) Position(a, b T) (int, error) {
	bout, err := s.BoutBetween(a, b)
	if err != nil {
		return -1, err
	}
	key := bout.pair.Key()
	for i, k := range s.order {
		if k == key {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %v vs %v", ErrNoBoutFound, key.Lo, key.Hi)
}

// UpdateScore records the result of the bout between a.Fencer and b.Fencer.
// The fencers may be equal copies of the ones held by the sheet; the bout
// keeps referring to the sheet's own instances.
func (s *Sheet[T]) UpdateScore(a, b FencerScore[T]) error {
	bout, err := s.BoutBetween(a.Fencer, b.Fencer)
	if err != nil {
		return err
	}
	fa, okA := bout.pair.Member(a.Fencer)
	fb, okB := bout.pair.Member(b.Fencer)
	if !okA || !okB {
		return fmt.Errorf("%w: %v", ErrInvalidBout, bout)
	}
	if err := bout.SetScore(*fa, a.Score, a.Cards); err != nil {
		return err
	}
	return bout.SetScore(*fb, b.Score, b.Cards)
}

// UnsetScore clears the result of the bout between a and b.
func (s *Sheet[T]) UnsetScore(a, b T) error {
	bout, err := s.BoutBetween(a, b)
	if err != nil {
		return err
	}
	bout.UnsetScores()
	return nil
}

// SetPriority gives holder priority in the bout between a and b.
func (s *Sheet[T]) SetPriority(a, b, holder T) error {
	bout, err := s.BoutBetween(a, b)
	if err != nil {
		return err
	}
	return bout.SetPriority(holder)
}

func (s *Sheet[T]) ClearPriority(a, b T) error {
	bout, err := s.BoutBetween(a, b)
	if err != nil {
		return err
	}
	bout.ClearPriority()
	return nil
}

// Unfinished returns the positions, in bout order, of the bouts which do not
// have a winner.
func (s *Sheet[T]) Unfinished() []int {
	var pos []int
	for i, key := range s.order {
		if _, ok := s.bouts[key].Winner(); !ok {
			pos = append(pos, i)
		}
	}
	return pos
}

func (s *Sheet[T]) IsFinished() bool {
	for _, key := range s.order {
		if _, ok := s.bouts[key].Winner(); !ok {
			return false
		}
	}
	return true
}

// Finish computes the pool results. It fails with a *PoolNotCompleteError
// while any bout lacks a winner. A nil tb uses RandomDraw.
func (s *Sheet[T]) Finish(tb TieBreaker) (Results[T], error) {
	return Compute(s, tb)
}
