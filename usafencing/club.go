/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package usafencing

// Club is a USA Fencing member club.
type Club struct {
	Name      string `json:"name"`
	ShortName string `json:"shortname,omitempty"`
	ID        int    `json:"id,omitempty"`
	State     string `json:"state,omitempty"`
	Division  string `json:"division,omitempty"`
	// Region is 1 through 6, 0 when unknown
	Region int `json:"region,omitempty"`
}

func (c Club) String() string {
	if c.ShortName != "" {
		return c.ShortName
	}
	return c.Name
}
