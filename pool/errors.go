/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedParticipantCount is returned by a BoutOrderProvider that has
	// no bout order for the requested number of competitors.
	ErrUnsupportedParticipantCount = errors.New("unsupported participant count")

	// ErrInvalidPair is returned when a pair would hold the same competitor
	// twice.
	ErrInvalidPair = errors.New("a fencer cannot fence themselves")

	// ErrInvalidBout is returned when a bout operation references a competitor
	// that is not part of the bout, or when a bout order or serialized pool
	// describes a malformed set of bouts.
	ErrInvalidBout = errors.New("invalid bout")

	// ErrNoBoutFound is returned when no bout matches the requested pair.
	ErrNoBoutFound = errors.New("no bout found")

	// ErrPoolNotComplete is matched by *PoolNotCompleteError.
	ErrPoolNotComplete = errors.New("pool not complete")

	// ErrInvalidReference is returned when a serialized bout references a
	// fencer key that is absent from the fencer table.
	ErrInvalidReference = errors.New("invalid fencer reference")
)

// PoolNotCompleteError lists the positions (in bout order) of every bout
// which does not have a winner yet.
type PoolNotCompleteError struct {
	Positions []int
}

func (e *PoolNotCompleteError) Error() string {
	pos := make([]string, len(e.Positions))
	for i, p := range e.Positions {
		pos[i] = fmt.Sprintf("%d", p+1)
	}
	return fmt.Sprintf("pool not complete: %d bout(s) without a winner (bouts %s)",
		len(e.Positions), strings.Join(pos, ","))
}

func (e *PoolNotCompleteError) Is(target error) bool {
	return target == ErrPoolNotComplete
}
