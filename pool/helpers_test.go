/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import (
	"strings"
	"testing"
)

type testFencer struct {
	Name string `json:"name"`
	Club string `json:"club,omitempty"`
}

func (f testFencer) Key() string { return f.Name }

func (f testFencer) Compare(o testFencer) int { return strings.Compare(f.Name, o.Name) }

func newFencers(names ...string) []testFencer {
	out := make([]testFencer, len(names))
	for i, n := range names {
		out[i] = testFencer{Name: n}
	}
	return out
}

// roundRobin is the plain (1,2), (1,3), ... (n-1,n) order
var roundRobin = BoutOrderFunc(func(n int) ([]IndexPair, error) {
	var order []IndexPair
	for i := 1; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			order = append(order, IndexPair{i, j})
		}
	}
	return order, nil
})

func mustSheet(t *testing.T, names ...string) *Sheet[testFencer] {
	t.Helper()
	s, err := NewSheet(newFencers(names...), roundRobin)
	if err != nil {
		t.Fatalf("NewSheet(%v) failed: %v", names, err)
	}
	return s
}

func mustScore(t *testing.T, s *Sheet[testFencer], a string, sa uint8, b string,
	sb uint8) {

	t.Helper()
	err := s.UpdateScore(
		FencerScore[testFencer]{Fencer: testFencer{Name: a}, Score: sa},
		FencerScore[testFencer]{Fencer: testFencer{Name: b}, Score: sb})
	if err != nil {
		t.Fatalf("UpdateScore(%v %v, %v %v) failed: %v", a, sa, b, sb, err)
	}
}
