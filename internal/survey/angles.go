package survey

import "math"

// normalizeDeg maps an angle in degrees onto [0, 360).
func normalizeDeg(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// angularDiffDeg returns the magnitude of the smallest rotation between two
// bearings, in [0, 180]. A foresight of 2 and a corrected backsight of 358
// disagree by 4 degrees, not 356.
func angularDiffDeg(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < -180 {
		d += 360
	} else if d > 180 {
		d -= 360
	}
	return math.Abs(d)
}

// circularMeanDeg averages two bearings on the circle via their unit
// vectors, normalized to [0, 360). Unlike the arithmetic mean it gives 0
// for the pair (2, 358) instead of jumping to 180 across the north wrap.
func circularMeanDeg(a, b float64) float64 {
	ar := a * math.Pi / 180
	br := b * math.Pi / 180
	s := math.Sin(ar) + math.Sin(br)
	c := math.Cos(ar) + math.Cos(br)
	return normalizeDeg(math.Atan2(s, c) * 180 / math.Pi)
}

// correctedAzimuthBack converts an azimuth backsight into the equivalent
// foresight bearing: (back + 180) mod 360.
func correctedAzimuthBack(back float64) float64 {
	return normalizeDeg(back + 180)
}

// correctedInclinationBack converts an inclination backsight into the
// equivalent foresight grade. Looking back down a +10 degree shot reads -10,
// so the correction is a sign flip. The same convention is used for both the
// tolerance check and the averaging step.
func correctedInclinationBack(back float64) float64 {
	return -back
}
