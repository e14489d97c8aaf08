/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import (
	"fmt"
	"strings"
)

// displayName uses String() when the competitor provides one
func displayName[T Competitor[T]](c *T) string {
	if s, ok := any(*c).(fmt.Stringer); ok {
		return s.String()
	}
	return (*c).Key()
}

// BuildResultsOutput formats pool results into an aligned table
func BuildResultsOutput[T Competitor[T]](results Results[T], name string) string {
	var sb strings.Builder
	if name != "" {
		sb.WriteString(fmt.Sprintf("Results of %v:\n\n", name))
	}
	if len(results) == 0 {
		sb.WriteString("No fencers\n")
		return sb.String()
	}

	type row struct{ place, fencer, v, m, ts, tr, ind string }
	rows := []row{{"Place", "Name", "V", "M", "TS", "TR", "Ind"}}
	for _, r := range results {
		rows = append(rows, row{
			place:  r.Place.String(),
			fencer: displayName(r.Fencer),
			v:      fmt.Sprintf("%v", r.Victories),
			m:      fmt.Sprintf("%v", r.Bouts),
			ts:     fmt.Sprintf("%v", r.TouchesScored),
			tr:     fmt.Sprintf("%v", r.TouchesReceived),
			ind:    fmt.Sprintf("%+d", r.Indicator),
		})
	}

	// Compute column widths
	var w [7]int
	for _, r := range rows {
		for i, col := range []string{r.place, r.fencer, r.v, r.m, r.ts, r.tr, r.ind} {
			if l := len(col); l > w[i] {
				w[i] = l
			}
		}
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-*s  %-*s  %*s  %*s  %*s  %*s  %*s\n",
			w[0], r.place, w[1], r.fencer, w[2], r.v, w[3], r.m, w[4], r.ts,
			w[5], r.tr, w[6], r.ind))
	}

	return sb.String()
}

// BuildSheetOutput formats the pool sheet grid. Each cell holds the row
// fencer's result against the column fencer: V5 for a victory with 5 touches,
// D3 for a defeat with 3, '.' while unscored and a trailing '*' when the bout
// was decided on priority. Once every bout has a winner the victories,
// indicator and place are appended.
func BuildSheetOutput[T Competitor[T]](s *Sheet[T], name string) string {
	var sb strings.Builder
	if name != "" {
		sb.WriteString(fmt.Sprintf("Pool %v:\n\n", name))
	}
	n := len(s.fencers)
	if n == 0 {
		sb.WriteString("No fencers\n")
		return sb.String()
	}

	var results Results[T]
	if s.IsFinished() {
		// placements do not depend on the draw
		results, _ = Compute(s, SeedOrder{})
	}

	maxN := len("Name")
	for _, f := range s.fencers {
		if l := len(displayName(f)); l > maxN {
			maxN = l
		}
	}
	cellW := 3
	idxW := len(fmt.Sprintf("%v", n))

	sb.WriteString(fmt.Sprintf("%*s  %-*s", idxW, "#", maxN, "Name"))
	for j := range s.fencers {
		sb.WriteString(fmt.Sprintf("  %-*v", cellW, j+1))
	}
	if results != nil {
		sb.WriteString(fmt.Sprintf("  %3s  %4s  %3s", "V", "Ind", "Pl"))
	}
	sb.WriteString("\n")

	for i, fi := range s.fencers {
		sb.WriteString(fmt.Sprintf("%*v  %-*s", idxW, i+1, maxN, displayName(fi)))
		for j, fj := range s.fencers {
			sb.WriteString(fmt.Sprintf("  %-*s", cellW, s.cell(i, j, fi, fj)))
		}
		if results != nil {
			r, _ := results.Find(*fi)
			sb.WriteString(fmt.Sprintf("  %3v  %+4d  %3s", r.Victories, r.Indicator,
				r.Place))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (s *Sheet[T]) cell(i, j int, fi, fj *T) string {
	if i == j {
		return "X"
	}
	pair, err := NewUnorderedPair(fi, fj)
	if err != nil {
		return "?"
	}
	bout, ok := s.bouts[pair.Key()]
	if !ok {
		return "?"
	}
	touches, ok := bout.Score(*fi)
	if !ok {
		return "."
	}
	winner, ok := bout.Winner()
	if !ok {
		return fmt.Sprintf("%v", touches)
	}
	mark := "D"
	if winner == fi {
		mark = "V"
	}
	cell := fmt.Sprintf("%v%v", mark, touches)
	if bout.DecidedOnPriority() {
		cell += "*"
	}
	return cell
}

// BuildBoutsOutput lists the bouts in bout order with their scores.
func BuildBoutsOutput[T Competitor[T]](s *Sheet[T]) string {
	var sb strings.Builder
	bouts := s.Bouts()
	numW := len(fmt.Sprintf("%v", len(bouts)))
	maxA := 0
	for _, b := range bouts {
		if l := len(displayName(b.pair.first)); l > maxA {
			maxA = l
		}
	}

	for i, b := range bouts {
		result := "-"
		if first, second, ok := b.Scores(); ok {
			result = fmt.Sprintf("%v-%v", first, second)
			if b.DecidedOnPriority() {
				holder, _ := b.PriorityHolder()
				result += fmt.Sprintf(" (priority %v)", displayName(holder))
			}
		}
		sb.WriteString(fmt.Sprintf("%*v. %-*s vs %s  %s\n", numW, i+1, maxA,
			displayName(b.pair.first), displayName(b.pair.second), result))
	}

	return sb.String()
}
