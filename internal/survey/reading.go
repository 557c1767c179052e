package survey

import (
	"fmt"
	"strconv"
)

// ReadingKind discriminates the three shapes an instrument field can take
// on a survey sheet: left blank, read once, or read fore and back.
type ReadingKind int

const (
	// ReadingAbsent means the field was left blank.
	ReadingAbsent ReadingKind = iota
	// ReadingSingle means a single (foresight) value was recorded.
	ReadingSingle
	// ReadingPaired means both a foresight and a backsight were recorded.
	ReadingPaired
)

// Reading is one instrument field from a survey sheet. The zero value is an
// absent reading. Azimuth and inclination readings are in degrees; the
// cross-section offsets (left/right/up/down) are in the survey's distance
// units.
type Reading struct {
	Kind ReadingKind
	Fore float64
	Back float64
}

// Single returns a reading holding one recorded value.
func Single(v float64) Reading {
	return Reading{Kind: ReadingSingle, Fore: v}
}

// Paired returns a reading holding a foresight and a backsight.
func Paired(fore, back float64) Reading {
	return Reading{Kind: ReadingPaired, Fore: fore, Back: back}
}

// Value returns the scalar value of the reading. Absent readings report 0
// (a blank azimuth or inclination on a sheet means a level or plumb shot).
// For a paired reading this is the raw foresight; call the resolver to
// reduce pairs to their average first.
func (r Reading) Value() float64 {
	if r.Kind == ReadingAbsent {
		return 0
	}
	return r.Fore
}

// String renders the reading in sheet-cell syntax: empty for absent, one
// decimal for single, "fore/back" for paired.
func (r Reading) String() string {
	switch r.Kind {
	case ReadingAbsent:
		return ""
	case ReadingSingle:
		return strconv.FormatFloat(r.Fore, 'g', -1, 64)
	default:
		return fmt.Sprintf("%s/%s",
			strconv.FormatFloat(r.Fore, 'g', -1, 64),
			strconv.FormatFloat(r.Back, 'g', -1, 64))
	}
}
