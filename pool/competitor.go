/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package pool implements a round robin fencing pool: the bouts between every
// pair of fencers, their scores and cards, and the final pool ranking.
package pool

// Competitor is the identity a fencer record must provide to take part in a
// pool.
//
// Key returns a value which is equal for two records if and only if they
// denote the same competitor; it is used both for equality and as the hash
// key. Compare is a total order over competitors and must return 0 exactly
// when the keys are equal.
type Competitor[T any] interface {
	Key() string
	Compare(other T) int
}

func sameCompetitor[T Competitor[T]](a, b T) bool {
	return a.Key() == b.Key()
}
