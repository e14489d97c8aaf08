/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// wire format of one bout; the fencers are referenced by the key of the bouts
// object
type wireBout struct {
	Scores   [2]*uint8 `json:"scores"`
	Cards    [2]Cards  `json:"cards"`
	Priority Side      `json:"priority"`
}

// MarshalJSON writes each fencer record once, keyed by its position on the
// sheet, and refers to fencers from the bouts by those keys:
//
//	{"fencers": {"0": {...}, ...},
//	 "bouts": {"[0,3]": {"scores": [5, 2], "cards": [{...}, {...}], "priority": "None"}, ...}}
//
// Both objects are written in sheet order.
func (s *Sheet[T]) MarshalJSON() ([]byte, error) {
	ids := make(map[*T]int, len(s.fencers))

	var buf bytes.Buffer
	buf.WriteString(`{"fencers":{`)
	for i, f := range s.fencers {
		ids[f] = i
		rec, err := json.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("unable to encode fencer %v: %w", (*f).Key(), err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(strconv.Itoa(i)))
		buf.WriteByte(':')
		buf.Write(rec)
	}

	buf.WriteString(`},"bouts":{`)
	for i, key := range s.order {
		b := s.bouts[key]
		idA, okA := ids[b.pair.first]
		idB, okB := ids[b.pair.second]
		if !okA || !okB {
			return nil, fmt.Errorf("%w: bout %v does not reference the sheet's fencers",
				ErrInvalidReference, b)
		}
		wire := wireBout{Cards: b.cards, Priority: b.priority}
		for side, sc := range b.scores {
			if sc.set {
				v := sc.value
				wire.Scores[side] = &v
			}
		}
		rec, err := json.Marshal(wire)
		if err != nil {
			return nil, fmt.Errorf("unable to encode bout %v: %w", b, err)
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(fmt.Sprintf("[%d,%d]", idA, idB)))
		buf.WriteByte(':')
		buf.Write(rec)
	}
	buf.WriteString(`}}`)

	return buf.Bytes(), nil
}

// UnmarshalJSON restores a sheet written by MarshalJSON. Every bout refers to
// the single instance decoded for each fencer key. The sheet is left
// untouched on error.
func (s *Sheet[T]) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("unable to parse pool sheet: malformed json")
	}
	root := gjson.ParseBytes(data)

	fencersObj := root.Get("fencers")
	if !fencersObj.IsObject() {
		return fmt.Errorf("unable to parse pool sheet: missing fencers object")
	}
	byID := make(map[string]*T)
	ns := &Sheet[T]{bouts: make(map[PairKey]*Bout[T])}
	seen := make(map[string]bool)

	var err error
	fencersObj.ForEach(func(k, v gjson.Result) bool {
		id := k.String()
		if _, dup := byID[id]; dup {
			err = fmt.Errorf("unable to parse pool sheet: fencer key %q repeated", id)
			return false
		}
		f := new(T)
		if err = json.Unmarshal([]byte(v.Raw), f); err != nil {
			err = fmt.Errorf("unable to parse fencer %q: %w", id, err)
			return false
		}
		if seen[(*f).Key()] {
			err = fmt.Errorf("unable to parse pool sheet: fencer %v listed twice",
				(*f).Key())
			return false
		}
		seen[(*f).Key()] = true
		byID[id] = f
		ns.fencers = append(ns.fencers, f)
		return true
	})
	if err != nil {
		return err
	}

	boutsObj := root.Get("bouts")
	if !boutsObj.IsObject() {
		return fmt.Errorf("unable to parse pool sheet: missing bouts object")
	}
	boutsObj.ForEach(func(k, v gjson.Result) bool {
		err = ns.decodeBout(byID, k.String(), v.Raw)
		return err == nil
	})
	if err != nil {
		return err
	}
	if err := ns.checkComplete(); err != nil {
		return err
	}

	*s = *ns
	return nil
}

func (s *Sheet[T]) decodeBout(byID map[string]*T, key string, raw string) error {
	ref := gjson.Parse(key)
	if !ref.IsArray() || len(ref.Array()) != 2 {
		return fmt.Errorf("%w: malformed bout key %q", ErrInvalidBout, key)
	}
	refs := ref.Array()
	a, okA := byID[refs[0].String()]
	b, okB := byID[refs[1].String()]
	if !okA || !okB {
		return fmt.Errorf("%w: bout %s", ErrInvalidReference, key)
	}
	pair, err := NewUnorderedPair(a, b)
	if err != nil {
		return fmt.Errorf("%w: bout %s: %v", ErrInvalidBout, key, err)
	}

	var wire wireBout
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return fmt.Errorf("unable to parse bout %s: %w", key, err)
	}
	if err := s.insert(pair); err != nil {
		return err
	}
	bout := s.bouts[pair.Key()]
	for side, sc := range wire.Scores {
		if sc != nil {
			bout.scores[side] = score{value: *sc, set: true}
		}
	}
	bout.cards = wire.Cards
	bout.priority = wire.Priority

	return nil
}

// Decode is a convenience around UnmarshalJSON.
func Decode[T Competitor[T]](data []byte) (*Sheet[T], error) {
	s := &Sheet[T]{}
	if err := s.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return s, nil
}
