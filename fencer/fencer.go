/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package fencer provides the simplest fencer record a pool can hold: a
// name, which is also its identity, and the clubs the fencer represents.
package fencer

import (
	"strings"
)

type Club struct {
	FullName  string `json:"full_name"`
	ShortName string `json:"shortname,omitempty"`
}

type Simple struct {
	Name  string `json:"name"`
	Clubs []Club `json:"clubs,omitempty"`
}

func New(name string, clubs ...Club) Simple {
	return Simple{Name: strings.TrimSpace(name), Clubs: clubs}
}

func (f Simple) Key() string {
	return f.Name
}

func (f Simple) Compare(other Simple) int {
	return strings.Compare(f.Name, other.Name)
}

func (f Simple) String() string {
	if len(f.Clubs) == 0 {
		return f.Name
	}
	club := f.Clubs[0].ShortName
	if club == "" {
		club = f.Clubs[0].FullName
	}
	return f.Name + " (" + club + ")"
}

// Lookup finds a fencer by name, ignoring case and surrounding whitespace.
func Lookup(fencers []*Simple, name string) (*Simple, bool) {
	name = strings.TrimSpace(name)
	for _, f := range fencers {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return nil, false
}
