/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package boutorder

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mikeb26/fencingpool-tdbot/pool"
)

func TestTablesValidate(t *testing.T) {
	for _, table := range []Table{USAFencing, Alternate} {
		for _, n := range table.Sizes() {
			t.Run(fmt.Sprintf("%v/%v", table.Name(), n), func(t *testing.T) {
				order, err := table.Order(n)
				if err != nil {
					t.Fatalf("Order(%v) failed: %v", n, err)
				}
				if err := Validate(n, order); err != nil {
					t.Errorf("Validate: %v", err)
				}
			})
		}
	}
}

func TestUSAFencingSizes(t *testing.T) {
	want := []int{4, 5, 6, 7, 8, 9, 10, 11, 12}
	if diff := cmp.Diff(want, USAFencing.Sizes()); diff != "" {
		t.Errorf("Sizes() mismatch (-want +got):\n%s", diff)
	}
	for _, n := range []int{0, 1, 2, 3, 13} {
		if _, err := USAFencing.Order(n); !errors.Is(err,
			pool.ErrUnsupportedParticipantCount) {
			t.Errorf("Order(%v) err = %v; want %v", n, err,
				pool.ErrUnsupportedParticipantCount)
		}
	}
}

func TestTableOrderIsCopy(t *testing.T) {
	order, _ := USAFencing.Order(4)
	order[0] = pool.IndexPair{9, 9}
	again, _ := USAFencing.Order(4)
	if again[0] != (pool.IndexPair{1, 4}) {
		t.Errorf("table modified through a returned order: %v", again[0])
	}
}

func TestCircleValidates(t *testing.T) {
	for n := 2; n <= 32; n++ {
		order, err := Circle{}.Order(n)
		if err != nil {
			t.Fatalf("Circle.Order(%v) failed: %v", n, err)
		}
		if err := Validate(n, order); err != nil {
			t.Errorf("Circle.Order(%v): %v", n, err)
		}
	}
	if _, err := (Circle{}).Order(1); !errors.Is(err,
		pool.ErrUnsupportedParticipantCount) {
		t.Errorf("Circle.Order(1) err = %v", err)
	}
}

func TestFallback(t *testing.T) {
	std, _ := USAFencing.Order(6)
	got, err := Auto.Order(6)
	if err != nil {
		t.Fatalf("Auto.Order(6) failed: %v", err)
	}
	if diff := cmp.Diff(std, got); diff != "" {
		t.Errorf("Auto.Order(6) does not use the table (-want +got):\n%s", diff)
	}

	got, err = Auto.Order(3)
	if err != nil {
		t.Fatalf("Auto.Order(3) failed: %v", err)
	}
	if err := Validate(3, got); err != nil {
		t.Errorf("Auto.Order(3): %v", err)
	}

	broken := errors.New("broken")
	f := Fallback{
		Primary: pool.BoutOrderFunc(func(int) ([]pool.IndexPair, error) {
			return nil, broken
		}),
		Secondary: Circle{},
	}
	if _, err := f.Order(4); !errors.Is(err, broken) {
		t.Errorf("Fallback hid a primary failure: %v", err)
	}
}

func TestByName(t *testing.T) {
	for _, name := range append(Names(), "", "USAFencing") {
		if _, err := ByName(name); err != nil {
			t.Errorf("ByName(%q) failed: %v", name, err)
		}
	}
	if _, err := ByName("swiss"); err == nil {
		t.Errorf("ByName(swiss) succeeded")
	}

	alt, _ := ByName("alternate")
	got, _ := alt.Order(9)
	want, _ := Alternate.Order(9)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("alternate 9 mismatch (-want +got):\n%s", diff)
	}
	if _, err := alt.Order(5); err != nil {
		t.Errorf("alternate 5 failed: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name  string
		n     int
		pairs []pool.IndexPair
		ok    bool
	}{
		{name: "complete", n: 3, pairs: []pool.IndexPair{{1, 2}, {3, 1}, {2, 3}}, ok: true},
		{name: "short", n: 3, pairs: []pool.IndexPair{{1, 2}, {2, 3}}},
		{name: "duplicate", n: 3, pairs: []pool.IndexPair{{1, 2}, {2, 1}, {2, 3}}},
		{name: "self", n: 3, pairs: []pool.IndexPair{{1, 2}, {1, 1}, {2, 3}}},
		{name: "range", n: 3, pairs: []pool.IndexPair{{1, 2}, {1, 4}, {2, 3}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.n, c.pairs)
			if c.ok && err != nil {
				t.Errorf("Validate failed: %v", err)
			}
			if !c.ok && !errors.Is(err, pool.ErrInvalidBout) {
				t.Errorf("err = %v; want %v", err, pool.ErrInvalidBout)
			}
		})
	}
}

func TestSheetFromTable(t *testing.T) {
	fencers := make([]simple, 5)
	for i := range fencers {
		fencers[i] = simple(fmt.Sprintf("f%d", i+1))
	}
	s, err := pool.NewSheet(fencers, USAFencing)
	if err != nil {
		t.Fatalf("NewSheet failed: %v", err)
	}
	first := s.Bouts()[0]
	if *first.Pair().First() != "f1" || *first.Pair().Second() != "f2" {
		t.Errorf("first bout = %v; want f1 vs f2", first)
	}
}

type simple string

func (s simple) Key() string { return string(s) }

func (s simple) Compare(o simple) int {
	switch {
	case s < o:
		return -1
	case s > o:
		return 1
	}
	return 0
}
