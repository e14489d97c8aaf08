/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package usafencing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoSuchFencer    = errors.New("no such fencer")
	ErrAmbiguousFencer = errors.New("fencer name is ambiguous")
)

// Lookup finds the fencer called name. It accepts the formatted name
// ("Doe, John Q"), "First Last", or a last name alone when only one fencer
// carries it. Case is ignored.
func Lookup(fencers []*Fencer, name string) (*Fencer, error) {
	want := strings.TrimSpace(name)
	if want == "" {
		return nil, fmt.Errorf("%w: empty name", ErrNoSuchFencer)
	}
	parsed := ParseName(want)

	matchers := []func(f *Fencer) bool{
		func(f *Fencer) bool { return strings.EqualFold(f.Name.String(), want) },
		func(f *Fencer) bool {
			return strings.EqualFold(f.Name.First, parsed.First) &&
				strings.EqualFold(f.Name.Last, parsed.Last)
		},
		func(f *Fencer) bool { return strings.EqualFold(f.Name.Last, want) },
		func(f *Fencer) bool { return strings.EqualFold(f.Name.First, want) },
	}
	for _, match := range matchers {
		var found []*Fencer
		for _, f := range fencers {
			if match(f) {
				found = append(found, f)
			}
		}
		switch len(found) {
		case 0:
			continue
		case 1:
			return found[0], nil
		}
		names := make([]string, len(found))
		for i, f := range found {
			names[i] = f.Name.String()
		}
		return nil, fmt.Errorf("%w: %q matches %v", ErrAmbiguousFencer, want,
			strings.Join(names, "; "))
	}

	return nil, fmt.Errorf("%w: %q", ErrNoSuchFencer, want)
}
