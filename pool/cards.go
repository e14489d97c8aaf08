/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package pool

// Cards tallies the penalty cards a fencer received in one bout.
type Cards struct {
	Yellow          uint8 `json:"yellow"`
	Red             uint8 `json:"red"`
	Group3Red       uint8 `json:"group3red"`
	Black           uint8 `json:"black"`
	PassivityYellow uint8 `json:"passivity_yellow"`
	PassivityRed    uint8 `json:"passivity_red"`
	PassivityBlack  uint8 `json:"passivity_black"`
}

func (c Cards) IsZero() bool {
	return c == Cards{}
}

// Add returns the field-wise sum of c and o.
func (c Cards) Add(o Cards) Cards {
	return Cards{
		Yellow:          c.Yellow + o.Yellow,
		Red:             c.Red + o.Red,
		Group3Red:       c.Group3Red + o.Group3Red,
		Black:           c.Black + o.Black,
		PassivityYellow: c.PassivityYellow + o.PassivityYellow,
		PassivityRed:    c.PassivityRed + o.PassivityRed,
		PassivityBlack:  c.PassivityBlack + o.PassivityBlack,
	}
}
