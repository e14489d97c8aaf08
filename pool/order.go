/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

// IndexPair is a pair of 1-based positions into a pool's fencer list.
type IndexPair [2]int

// BoutOrderProvider produces the sequence of bouts for a pool of
// competitorCount fencers. The returned pairs must cover every unordered pair
// of 1..competitorCount exactly once; the order only spreads out each
// fencer's bouts. Sizes the provider has no order for return an error wrapping
// ErrUnsupportedParticipantCount.
type BoutOrderProvider interface {
	Order(competitorCount int) ([]IndexPair, error)
}

// BoutOrderFunc adapts a function to a BoutOrderProvider.
type BoutOrderFunc func(competitorCount int) ([]IndexPair, error)

func (f BoutOrderFunc) Order(competitorCount int) ([]IndexPair, error) {
	return f(competitorCount)
}
