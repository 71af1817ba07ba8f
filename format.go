// ABOUTME: Minimal precision formatting for cost values
// ABOUTME: Formats improvements with just enough digits to show the change

package main

import (
	"fmt"
	"math"
)

const maxCostPrecision = 6

// FormatWithMonotonicPrecision formats curr with at least minPrecision
// decimals, adding digits until it is distinguishable from prev. It returns
// the formatted value and the (possibly grown) precision so successive
// progress lines never lose digits mid-run.
func FormatWithMonotonicPrecision(prev, curr float64, minPrecision int) (string, int) {
	if math.IsNaN(curr) || math.IsInf(curr, 0) || math.IsNaN(prev) || math.IsInf(prev, 0) {
		return fmt.Sprintf("%.*f", minPrecision, curr), minPrecision
	}

	precision := minPrecision

	for precision < maxCostPrecision {
		prevStr := fmt.Sprintf("%.*f", precision, prev)
		currStr := fmt.Sprintf("%.*f", precision, curr)

		if prevStr != currStr {
			break
		}

		precision++
	}

	return fmt.Sprintf("%.*f", precision, curr), precision
}
