/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import "fmt"

// FencerScore is one side of a bout result as reported by a caller.
type FencerScore[T Competitor[T]] struct {
	Fencer T
	Score  uint8
	Cards  Cards
}

type score struct {
	value uint8
	set   bool
}

// Bout is the state of a single bout between the two fencers of a pair.
// Scores, cards and priority are indexed by the pair's sides.
type Bout[T Competitor[T]] struct {
	pair     UnorderedPair[T]
	scores   [2]score
	cards    [2]Cards
	priority Side
}

func NewBout[T Competitor[T]](pair UnorderedPair[T]) *Bout[T] {
	return &Bout[T]{pair: pair}
}

func (b *Bout[T]) Pair() UnorderedPair[T] {
	return b.pair
}

func (b *Bout[T]) side(c T) (Side, error) {
	s := b.pair.Side(c)
	if s == SideNone {
		return SideNone, fmt.Errorf("%w: %v is not fencing in bout %v", ErrInvalidBout,
			c.Key(), b)
	}
	return s, nil
}

// SetScore records the touches scored by c along with the cards c received.
func (b *Bout[T]) SetScore(c T, touches uint8, cards Cards) error {
	s, err := b.side(c)
	if err != nil {
		return err
	}
	b.scores[s.index()] = score{value: touches, set: true}
	b.cards[s.index()] = cards
	return nil
}

func (b *Bout[T]) UnsetScore(c T) error {
	s, err := b.side(c)
	if err != nil {
		return err
	}
	b.scores[s.index()] = score{}
	b.cards[s.index()] = Cards{}
	return nil
}

func (b *Bout[T]) UnsetScores() {
	b.scores = [2]score{}
	b.cards = [2]Cards{}
}

// SetPriority gives c the priority used to decide a bout tied on touches.
func (b *Bout[T]) SetPriority(c T) error {
	s, err := b.side(c)
	if err != nil {
		return err
	}
	b.priority = s
	return nil
}

func (b *Bout[T]) ClearPriority() {
	b.priority = SideNone
}

func (b *Bout[T]) Priority() Side {
	return b.priority
}

func (b *Bout[T]) PriorityHolder() (*T, bool) {
	if b.priority == SideNone {
		return nil, false
	}
	return b.pair.member(b.priority), true
}

// Scores returns both scores in pair order; ok is false unless both sides
// have been recorded.
func (b *Bout[T]) Scores() (first, second uint8, ok bool) {
	if !b.scores[0].set || !b.scores[1].set {
		return 0, 0, false
	}
	return b.scores[0].value, b.scores[1].value, true
}

// Score returns the touches recorded for c.
func (b *Bout[T]) Score(c T) (uint8, bool) {
	s := b.pair.Side(c)
	if s == SideNone {
		return 0, false
	}
	sc := b.scores[s.index()]
	return sc.value, sc.set
}

func (b *Bout[T]) Cards(c T) (Cards, bool) {
	s := b.pair.Side(c)
	if s == SideNone {
		return Cards{}, false
	}
	return b.cards[s.index()], true
}

func (b *Bout[T]) AllCards() [2]Cards {
	return b.cards
}

// Winner returns the winner of the bout, or false while either score is
// unset or the scores are level and no priority was given.
func (b *Bout[T]) Winner() (*T, bool) {
	first, second, ok := b.Scores()
	if !ok {
		return nil, false
	}
	switch {
	case first > second:
		return b.pair.first, true
	case second > first:
		return b.pair.second, true
	}
	return b.PriorityHolder()
}

// DecidedOnPriority is true when the bout has a winner only because of the
// priority.
func (b *Bout[T]) DecidedOnPriority() bool {
	first, second, ok := b.Scores()
	return ok && first == second && b.priority != SideNone
}

func (b *Bout[T]) String() string {
	return fmt.Sprintf("%v vs %v", (*b.pair.first).Key(), (*b.pair.second).Key())
}
