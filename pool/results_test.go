/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import (
	"math/rand/v2"
	"testing"
)

type wantResult struct {
	name      string
	v, ts, tr int
	ind       int
	place     Placement
}

func checkResults(t *testing.T, got Results[testFencer], want []wantResult) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(results) = %v; want %v", len(got), len(want))
	}
	for i, w := range want {
		r := got[i]
		if r.Fencer.Name != w.name {
			t.Errorf("results[%v] = %v; want %v", i, r.Fencer.Name, w.name)
			continue
		}
		if r.Victories != w.v || r.TouchesScored != w.ts ||
			r.TouchesReceived != w.tr || r.Indicator != w.ind {
			t.Errorf("%v: V=%v TS=%v TR=%v Ind=%v; want V=%v TS=%v TR=%v Ind=%v",
				w.name, r.Victories, r.TouchesScored, r.TouchesReceived,
				r.Indicator, w.v, w.ts, w.tr, w.ind)
		}
		if r.Place != w.place {
			t.Errorf("%v: place %v; want %v", w.name, r.Place, w.place)
		}
	}
}

func TestComputeNoTies(t *testing.T) {
	s := mustSheet(t, "Carol", "Bob", "Alice")
	mustScore(t, s, "Alice", 5, "Bob", 1)
	mustScore(t, s, "Alice", 5, "Carol", 2)
	mustScore(t, s, "Bob", 5, "Carol", 4)

	results, err := s.Finish(SeedOrder{})
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	checkResults(t, results, []wantResult{
		{name: "Alice", v: 2, ts: 10, tr: 3, ind: 7, place: Absolute(1)},
		{name: "Bob", v: 1, ts: 6, tr: 9, ind: -3, place: Absolute(2)},
		{name: "Carol", v: 0, ts: 6, tr: 10, ind: -4, place: Absolute(3)},
	})
	for _, r := range results {
		if r.Bouts != 2 {
			t.Errorf("%v fenced %v bouts; want 2", r.Fencer.Name, r.Bouts)
		}
	}
}

func TestComputeTies(t *testing.T) {
	s := mustSheet(t, "Alice", "Bob", "Carol", "Dave")
	// Alice, Bob and Carol beat each other in a circle, all beat Dave
	mustScore(t, s, "Alice", 5, "Bob", 4)
	mustScore(t, s, "Bob", 5, "Carol", 4)
	mustScore(t, s, "Carol", 5, "Alice", 4)
	mustScore(t, s, "Alice", 5, "Dave", 0)
	mustScore(t, s, "Bob", 5, "Dave", 0)
	mustScore(t, s, "Carol", 5, "Dave", 0)

	results, err := s.Finish(SeedOrder{})
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	checkResults(t, results, []wantResult{
		{name: "Alice", v: 2, ts: 14, tr: 9, ind: 5, place: Tied(1)},
		{name: "Bob", v: 2, ts: 14, tr: 9, ind: 5, place: Tied(1)},
		{name: "Carol", v: 2, ts: 14, tr: 9, ind: 5, place: Tied(1)},
		{name: "Dave", v: 0, ts: 0, tr: 15, ind: -15, place: Absolute(4)},
	})
}

func TestComputeTieInMiddle(t *testing.T) {
	s := mustSheet(t, "Alice", "Bob", "Carol", "Dave")
	mustScore(t, s, "Alice", 5, "Bob", 0)
	mustScore(t, s, "Alice", 5, "Carol", 0)
	mustScore(t, s, "Alice", 5, "Dave", 0)
	mustScore(t, s, "Bob", 5, "Carol", 3)
	mustScore(t, s, "Carol", 5, "Dave", 3)
	mustScore(t, s, "Dave", 5, "Bob", 3)

	results, err := s.Finish(SeedOrder{})
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	checkResults(t, results, []wantResult{
		{name: "Alice", v: 3, ts: 15, tr: 0, ind: 15, place: Absolute(1)},
		{name: "Bob", v: 1, ts: 8, tr: 13, ind: -5, place: Tied(2)},
		{name: "Carol", v: 1, ts: 8, tr: 13, ind: -5, place: Tied(2)},
		{name: "Dave", v: 1, ts: 8, tr: 13, ind: -5, place: Tied(2)},
	})
}

func TestComputeRandomDrawKeepsPlacements(t *testing.T) {
	for seed := uint64(0); seed < 8; seed++ {
		s := mustSheet(t, "Alice", "Bob", "Carol", "Dave")
		mustScore(t, s, "Alice", 5, "Bob", 4)
		mustScore(t, s, "Bob", 5, "Carol", 4)
		mustScore(t, s, "Carol", 5, "Alice", 4)
		mustScore(t, s, "Alice", 5, "Dave", 0)
		mustScore(t, s, "Bob", 5, "Dave", 0)
		mustScore(t, s, "Carol", 5, "Dave", 0)

		results, err := s.Finish(RandomDraw{Rand: rand.New(rand.NewPCG(seed, seed))})
		if err != nil {
			t.Fatalf("Finish failed: %v", err)
		}
		for i := 0; i < 3; i++ {
			if results[i].Place != Tied(1) {
				t.Errorf("seed %v: results[%v].Place = %v; want 1T", seed, i,
					results[i].Place)
			}
		}
		if results[3].Fencer.Name != "Dave" || results[3].Place != Absolute(4) {
			t.Errorf("seed %v: last = %v %v; want Dave 4", seed,
				results[3].Fencer.Name, results[3].Place)
		}
	}
}

type shortDraw struct{}

func (shortDraw) Draw(n int) []int { return make([]int, n-1) }

func TestComputeBadTieBreaker(t *testing.T) {
	s := mustSheet(t, "Alice", "Bob")
	mustScore(t, s, "Alice", 5, "Bob", 1)
	if _, err := s.Finish(shortDraw{}); err == nil {
		t.Errorf("Finish with a short draw succeeded")
	}
}

func TestResultsFind(t *testing.T) {
	s := mustSheet(t, "Alice", "Bob")
	mustScore(t, s, "Alice", 2, "Bob", 5)
	results, err := s.Finish(nil)
	if err != nil {
		t.Fatalf("Finish failed: %v", err)
	}

	r, ok := results.Find(testFencer{Name: "Bob"})
	if !ok || r.Place != Absolute(1) {
		t.Errorf("Find(Bob) = %v, %v; want place 1", r.Place, ok)
	}
	if got := r.VictoryRatio(); got != 1.0 {
		t.Errorf("VictoryRatio() = %v; want 1", got)
	}
	if _, ok := results.Find(testFencer{Name: "Zed"}); ok {
		t.Errorf("Find(Zed) found a result")
	}
}

func TestPlacementString(t *testing.T) {
	if got := Absolute(3).String(); got != "3" {
		t.Errorf("Absolute(3) = %q", got)
	}
	if got := Tied(3).String(); got != "3T" {
		t.Errorf("Tied(3) = %q", got)
	}
}

func TestTieBreakerByName(t *testing.T) {
	for _, name := range []string{"", "random", "seed"} {
		if _, err := TieBreakerByName(name); err != nil {
			t.Errorf("TieBreakerByName(%q) failed: %v", name, err)
		}
	}
	if _, err := TieBreakerByName("coin"); err == nil {
		t.Errorf("TieBreakerByName(coin) succeeded")
	}
}
