package forecast

import (
	"math"
	"strconv"
	"strings"
)

var compassPoints = [16]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// Direction maps a wind bearing in degrees to one of the 16 compass points.
// Fractional, negative and >=360 inputs are accepted: negatives wrap by
// adding full turns, everything else wraps through the modulo on the table
// index. Rounding is half up, so 22.5 reads NNE. Unparseable input reads as
// zero degrees.
func Direction(degrees string) string {
	deg, err := strconv.ParseFloat(strings.TrimSpace(degrees), 64)
	if err != nil {
		deg = 0
	}
	for deg < 0 {
		deg += 360
	}
	idx := int(math.Floor(deg/22.5+0.5)) % 16
	return compassPoints[idx]
}
