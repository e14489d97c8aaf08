/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package boutorder provides the bout orders used to lay out a pool sheet.
package boutorder

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mikeb26/fencingpool-tdbot/pool"
)

// Table is a BoutOrderProvider backed by published bout orders.
type Table struct {
	name   string
	orders map[int][]pool.IndexPair
}

var (
	// USAFencing holds the standard USA Fencing orders for pools of 4 to 12.
	USAFencing = Table{name: "usafencing", orders: usaFencingOrders}

	// Alternate holds the alternate (special) orders.
	Alternate = Table{name: "alternate", orders: alternateOrders}
)

func (t Table) Name() string {
	return t.name
}

// Order returns a copy of the table's order for competitorCount fencers.
func (t Table) Order(competitorCount int) ([]pool.IndexPair, error) {
	order, ok := t.orders[competitorCount]
	if !ok {
		return nil, fmt.Errorf("%w: no %v bout order for %d fencers",
			pool.ErrUnsupportedParticipantCount, t.name, competitorCount)
	}
	return slices.Clone(order), nil
}

// Sizes lists the pool sizes the table has an order for.
func (t Table) Sizes() []int {
	sizes := make([]int, 0, len(t.orders))
	for n := range t.orders {
		sizes = append(sizes, n)
	}
	sort.Ints(sizes)
	return sizes
}

// Circle computes a round robin with the circle method: the first fencer stays
// put while the rest rotate one seat per round. Odd pools add a bye seat.
type Circle struct{}

func (Circle) Order(competitorCount int) ([]pool.IndexPair, error) {
	n := competitorCount
	if n < 2 {
		return nil, fmt.Errorf("%w: circle order needs at least 2 fencers, have %d",
			pool.ErrUnsupportedParticipantCount, n)
	}

	size := n + n%2
	ring := make([]int, size)
	for i := range ring {
		ring[i] = i
	}

	order := make([]pool.IndexPair, 0, n*(n-1)/2)
	for round := 0; round < size-1; round++ {
		for i := 0; i < size/2; i++ {
			a, b := ring[i], ring[size-1-i]
			if a >= n || b >= n {
				continue // bye
			}
			if round%2 == 1 {
				a, b = b, a
			}
			order = append(order, pool.IndexPair{a + 1, b + 1})
		}
		last := ring[size-1]
		copy(ring[2:], ring[1:size-1])
		ring[1] = last
	}

	return order, nil
}

// Fallback uses Secondary for the sizes Primary does not support.
type Fallback struct {
	Primary   pool.BoutOrderProvider
	Secondary pool.BoutOrderProvider
}

func (f Fallback) Order(competitorCount int) ([]pool.IndexPair, error) {
	order, err := f.Primary.Order(competitorCount)
	if err == nil || !errors.Is(err, pool.ErrUnsupportedParticipantCount) {
		return order, err
	}
	return f.Secondary.Order(competitorCount)
}

// Auto is the USA Fencing tables falling back to the circle method.
var Auto = Fallback{Primary: USAFencing, Secondary: Circle{}}

var byName = map[string]pool.BoutOrderProvider{
	"usafencing": USAFencing,
	"alternate":  Fallback{Primary: Alternate, Secondary: USAFencing},
	"circle":     Circle{},
	"auto":       Auto,
}

// ByName resolves a provider name as used on the command line and in config
// files. The empty name is "auto".
func ByName(name string) (pool.BoutOrderProvider, error) {
	if name == "" {
		name = "auto"
	}
	p, ok := byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown bout order %q (valid: %v)", name,
			strings.Join(Names(), ", "))
	}
	return p, nil
}

func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that pairs holds every unordered pair of 1..n exactly once.
func Validate(n int, pairs []pool.IndexPair) error {
	if want := n * (n - 1) / 2; len(pairs) != want {
		return fmt.Errorf("%w: %d fencers need %d bouts, order has %d",
			pool.ErrInvalidBout, n, want, len(pairs))
	}
	seen := make(map[pool.IndexPair]int, len(pairs))
	for i, p := range pairs {
		a, b := p[0], p[1]
		if a < 1 || a > n || b < 1 || b > n {
			return fmt.Errorf("%w: bout %d (%d,%d) is out of range for %d fencers",
				pool.ErrInvalidBout, i+1, a, b, n)
		}
		if a == b {
			return fmt.Errorf("%w: bout %d pairs fencer %d with themselves",
				pool.ErrInvalidBout, i+1, a)
		}
		if a > b {
			a, b = b, a
		}
		key := pool.IndexPair{a, b}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("%w: bouts %d and %d are both (%d,%d)",
				pool.ErrInvalidBout, prev, i+1, a, b)
		}
		seen[key] = i + 1
	}
	return nil
}
