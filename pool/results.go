/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import (
	"cmp"
	"fmt"
	"math/rand/v2"
	"slices"
)

// Placement is a final pool rank, either held alone or shared with others of
// equal standing.
type Placement struct {
	Place int
	Tied  bool
}

func Absolute(place int) Placement { return Placement{Place: place} }
func Tied(place int) Placement     { return Placement{Place: place, Tied: true} }

func (p Placement) String() string {
	if p.Tied {
		return fmt.Sprintf("%dT", p.Place)
	}
	return fmt.Sprintf("%d", p.Place)
}

// FencerResult is one fencer's line of the pool results.
type FencerResult[T Competitor[T]] struct {
	Fencer          *T
	Victories       int
	Bouts           int
	TouchesScored   int
	TouchesReceived int
	Indicator       int
	Place           Placement

	draw int
}

// VictoryRatio is victories divided by bouts fenced (V/M).
func (r FencerResult[T]) VictoryRatio() float64 {
	if r.Bouts == 0 {
		return 0
	}
	return float64(r.Victories) / float64(r.Bouts)
}

func (r FencerResult[T]) standing(o FencerResult[T]) int {
	if c := cmp.Compare(r.Victories, o.Victories); c != 0 {
		return c
	}
	return cmp.Compare(r.Indicator, o.Indicator)
}

// Results are ordered from first place to last.
type Results[T Competitor[T]] []FencerResult[T]

// Find returns the result for c.
func (rs Results[T]) Find(c T) (FencerResult[T], bool) {
	for _, r := range rs {
		if sameCompetitor(*r.Fencer, c) {
			return r, true
		}
	}
	return FencerResult[T]{}, false
}

// TieBreaker orders fencers whose victories and indicator are equal. Draw
// returns one key per fencer, in sheet order; lower keys are ranked first.
// The keys only order the results, placements still show the tie.
type TieBreaker interface {
	Draw(n int) []int
}

// RandomDraw breaks ties by drawing lots. A nil Rand uses the global source.
type RandomDraw struct {
	Rand *rand.Rand
}

func (d RandomDraw) Draw(n int) []int {
	if d.Rand != nil {
		return d.Rand.Perm(n)
	}
	return rand.Perm(n)
}

// SeedOrder breaks ties by the fencers' order on the sheet.
type SeedOrder struct{}

func (SeedOrder) Draw(n int) []int {
	keys := make([]int, n)
	for i := range keys {
		keys[i] = i
	}
	return keys
}

// TieBreakerByName resolves "random" (the default for "") or "seed".
func TieBreakerByName(name string) (TieBreaker, error) {
	switch name {
	case "", "random":
		return RandomDraw{}, nil
	case "seed":
		return SeedOrder{}, nil
	}
	return nil, fmt.Errorf("unknown tie breaker %q", name)
}

// Compute ranks the fencers of a finished pool by victories, then indicator.
func Compute[T Competitor[T]](s *Sheet[T], tb TieBreaker) (Results[T], error) {
	if unfinished := s.Unfinished(); len(unfinished) > 0 {
		return nil, &PoolNotCompleteError{Positions: unfinished}
	}
	if tb == nil {
		tb = RandomDraw{}
	}

	draw := tb.Draw(len(s.fencers))
	if len(draw) != len(s.fencers) {
		return nil, fmt.Errorf("tie breaker drew %d keys for %d fencers",
			len(draw), len(s.fencers))
	}

	results := make(Results[T], len(s.fencers))
	byKey := make(map[string]*FencerResult[T], len(s.fencers))
	for i, f := range s.fencers {
		results[i] = FencerResult[T]{Fencer: f, draw: draw[i]}
		byKey[(*f).Key()] = &results[i]
	}

	for _, key := range s.order {
		bout := s.bouts[key]
		first, second, _ := bout.Scores()
		winner, _ := bout.Winner()

		ra := byKey[(*bout.pair.first).Key()]
		rb := byKey[(*bout.pair.second).Key()]
		ra.TouchesScored += int(first)
		ra.TouchesReceived += int(second)
		rb.TouchesScored += int(second)
		rb.TouchesReceived += int(first)
		ra.Bouts++
		rb.Bouts++
		if winner == bout.pair.first {
			ra.Victories++
		} else {
			rb.Victories++
		}
	}

	for i := range results {
		results[i].Indicator = results[i].TouchesScored - results[i].TouchesReceived
	}

	slices.SortFunc(results, func(a, b FencerResult[T]) int {
		if c := a.standing(b); c != 0 {
			return -c
		}
		return cmp.Compare(a.draw, b.draw)
	})

	for i := range results {
		if i == 0 {
			results[i].Place = Absolute(1)
			continue
		}
		prev := &results[i-1]
		if results[i].standing(*prev) == 0 {
			prev.Place.Tied = true
			results[i].Place = Tied(prev.Place.Place)
		} else {
			results[i].Place = Absolute(i + 1)
		}
	}

	return results, nil
}
