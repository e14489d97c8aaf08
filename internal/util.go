/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ParseDateOrZero returns a parsed time or zero if input is empty or one of
// the placeholders entry lists use for an unknown date.
func ParseDateOrZero(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "null", "-", "--", "n/a", "unknown":
		return time.Time{}, nil
	}
	return dateparse.ParseAny(strings.TrimSpace(s))
}
