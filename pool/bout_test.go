/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import (
	"errors"
	"testing"
)

func TestBoutWinner(t *testing.T) {
	alice, bob := testFencer{Name: "Alice"}, testFencer{Name: "Bob"}

	cases := []struct {
		name        string
		scores      []uint8 // alice, bob; nil leaves the bout unscored
		priority    *testFencer
		wantWinner  string
		wantDecided bool
	}{
		{name: "unscored"},
		{name: "first wins", scores: []uint8{5, 3}, wantWinner: "Alice"},
		{name: "second wins", scores: []uint8{2, 5}, wantWinner: "Bob"},
		{name: "level without priority", scores: []uint8{4, 4}},
		{name: "level with priority", scores: []uint8{4, 4}, priority: &bob,
			wantWinner: "Bob", wantDecided: true},
		{name: "priority ignored when scores differ", scores: []uint8{5, 4},
			priority: &bob, wantWinner: "Alice"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, b := alice, bob
			pair, err := NewUnorderedPair(&a, &b)
			if err != nil {
				t.Fatalf("NewUnorderedPair failed: %v", err)
			}
			bout := NewBout(pair)
			if c.scores != nil {
				if err := bout.SetScore(alice, c.scores[0], Cards{}); err != nil {
					t.Fatalf("SetScore(alice) failed: %v", err)
				}
				if err := bout.SetScore(bob, c.scores[1], Cards{}); err != nil {
					t.Fatalf("SetScore(bob) failed: %v", err)
				}
			}
			if c.priority != nil {
				if err := bout.SetPriority(*c.priority); err != nil {
					t.Fatalf("SetPriority failed: %v", err)
				}
			}

			w, ok := bout.Winner()
			switch {
			case c.wantWinner == "" && ok:
				t.Errorf("Winner() = %v; want none", w.Name)
			case c.wantWinner != "" && !ok:
				t.Errorf("Winner() = none; want %v", c.wantWinner)
			case ok && w.Name != c.wantWinner:
				t.Errorf("Winner() = %v; want %v", w.Name, c.wantWinner)
			}
			if got := bout.DecidedOnPriority(); got != c.wantDecided &&
				c.wantWinner != "" {
				t.Errorf("DecidedOnPriority() = %v; want %v", got, c.wantDecided)
			}
		})
	}
}

func TestBoutNotFencing(t *testing.T) {
	a, b := testFencer{Name: "Alice"}, testFencer{Name: "Bob"}
	pair, _ := NewUnorderedPair(&a, &b)
	bout := NewBout(pair)
	carol := testFencer{Name: "Carol"}

	if err := bout.SetScore(carol, 5, Cards{}); !errors.Is(err, ErrInvalidBout) {
		t.Errorf("SetScore(carol) err = %v; want %v", err, ErrInvalidBout)
	}
	if err := bout.SetPriority(carol); !errors.Is(err, ErrInvalidBout) {
		t.Errorf("SetPriority(carol) err = %v; want %v", err, ErrInvalidBout)
	}
	if err := bout.UnsetScore(carol); !errors.Is(err, ErrInvalidBout) {
		t.Errorf("UnsetScore(carol) err = %v; want %v", err, ErrInvalidBout)
	}
}

func TestBoutUnsetScore(t *testing.T) {
	a, b := testFencer{Name: "Alice"}, testFencer{Name: "Bob"}
	pair, _ := NewUnorderedPair(&a, &b)
	bout := NewBout(pair)

	yellow := Cards{Yellow: 1}
	_ = bout.SetScore(a, 5, yellow)
	_ = bout.SetScore(b, 1, Cards{})
	if _, ok := bout.Winner(); !ok {
		t.Fatalf("expected a winner")
	}

	if err := bout.UnsetScore(a); err != nil {
		t.Fatalf("UnsetScore failed: %v", err)
	}
	if _, ok := bout.Score(a); ok {
		t.Errorf("score of Alice still set")
	}
	if c, _ := bout.Cards(a); !c.IsZero() {
		t.Errorf("cards of Alice = %+v; want none", c)
	}
	if s, ok := bout.Score(b); !ok || s != 1 {
		t.Errorf("Score(Bob) = %v, %v; want 1, true", s, ok)
	}
	if _, ok := bout.Winner(); ok {
		t.Errorf("half scored bout has a winner")
	}

	bout.UnsetScores()
	if _, ok := bout.Score(b); ok {
		t.Errorf("score of Bob still set")
	}
}

func TestCardsAdd(t *testing.T) {
	got := Cards{Yellow: 1, Red: 2}.Add(Cards{Red: 1, PassivityBlack: 1})
	want := Cards{Yellow: 1, Red: 3, PassivityBlack: 1}
	if got != want {
		t.Errorf("Add() = %+v; want %+v", got, want)
	}
	if got.IsZero() || !(Cards{}).IsZero() {
		t.Errorf("IsZero() mismatch")
	}
}
