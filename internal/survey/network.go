// Package survey converts raw cave survey shots (distance, azimuth,
// inclination between named stations) into a connected set of globally
// positioned 3D stations. It validates shots as they are added, averages
// fore/backsight pairs under a tolerance check, and resolves every station's
// absolute position by propagating shot vectors outward from the origin.
package survey

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/speleodata/cavemap/internal/monitoring"
)

// DefaultAngleTolerance is the allowable fore/backsight disagreement in
// degrees before a shot earns a ToleranceWarning.
const DefaultAngleTolerance = 2.0

// Shot is one directional measurement between two named stations. A shot is
// immutable after AddShot except that the resolver reduces paired azimuth
// and inclination readings to their averaged single value.
type Shot struct {
	From     string  // reference station
	Name     string  // target station
	Distance float64 // shot length, must be positive

	Azimuth     Reading // degrees from north
	Inclination Reading // degrees, positive up

	// Cross-section offsets at the target station. Carried for export and
	// persistence; position resolution does not consume them.
	Left  Reading
	Right Reading
	Up    Reading
	Down  Reading

	Note string
}

// label names a shot for diagnostics.
func (s *Shot) label() string {
	return s.From + "-->" + s.Name
}

// Station is a named point whose global position is derived transitively
// from the origin via chained shots. Position and FlatPosition are set
// exactly once, by the resolver.
type Station struct {
	Name string

	// Position is the station's location in survey coordinates:
	// X east, Y north, Z up.
	Position r3.Vec

	// FlatPosition is cumulative horizontal travel against vertical depth,
	// only meaningful for the flattened profile view.
	FlatPosition r2.Vec
}

// Network stores validated shots and their stations. Build it incrementally
// with AddShot, finalize it once with Process, then read it from projection
// or presentation code. A Network is exclusively owned by its caller; it is
// not safe for concurrent mutation.
type Network struct {
	Title          string
	DistanceUnits  string  // display only; resolution is unit-agnostic
	AngleTolerance float64 // degrees

	shots    []*Shot
	stations map[string]*Station // origin plus every target, keyed by name
	targets  map[string]bool     // target names only, for from-reference checks

	originName string
	order      []*Station // stations in resolution order, origin first
	resolved   bool
	warnings   []ToleranceWarning
}

// NewNetwork returns an empty network. Units are a display label only.
func NewNetwork(title, distanceUnits string, angleTolerance float64) *Network {
	return &Network{
		Title:          title,
		DistanceUnits:  distanceUnits,
		AngleTolerance: angleTolerance,
		stations:       make(map[string]*Station),
		targets:        make(map[string]bool),
	}
}

// AddShot validates and appends one shot. It fails with a *ValidationError
// if the distance is not positive, if the shot's from station is not the
// target of a previously added shot (except for the very first shot, whose
// from station becomes the origin), or if the target name is already taken.
//
// Paired azimuth and inclination readings are checked against the expected
// backsight; disagreement beyond the tolerance is returned as warnings and
// logged, but does not fail the shot.
func (n *Network) AddShot(s Shot) ([]ToleranceWarning, error) {
	if s.Distance <= 0 {
		return nil, &ValidationError{Shot: s.label(), Reason: fmt.Sprintf("distance must be positive, got %g", s.Distance)}
	}
	if len(n.shots) > 0 && !n.targets[s.From] {
		return nil, &ValidationError{Shot: s.label(), Reason: fmt.Sprintf("unknown from station %q", s.From)}
	}
	if _, taken := n.stations[s.Name]; taken {
		return nil, &ValidationError{Shot: s.label(), Reason: fmt.Sprintf("duplicate station name %q", s.Name)}
	}
	if len(n.shots) == 0 && s.From == s.Name {
		return nil, &ValidationError{Shot: s.label(), Reason: "shot from a station to itself"}
	}

	var warnings []ToleranceWarning
	if w, ok := n.checkPair(&s, "azimuth", s.Azimuth, correctedAzimuthBack); ok {
		warnings = append(warnings, w)
	}
	if w, ok := n.checkPair(&s, "inclination", s.Inclination, correctedInclinationBack); ok {
		warnings = append(warnings, w)
	}

	if len(n.shots) == 0 {
		n.originName = s.From
		n.stations[s.From] = &Station{Name: s.From}
	}
	shot := s
	n.shots = append(n.shots, &shot)
	n.stations[s.Name] = &Station{Name: s.Name}
	n.targets[s.Name] = true
	n.warnings = append(n.warnings, warnings...)
	return warnings, nil
}

// checkPair compares a paired reading's backsight, corrected into foresight
// terms, against the foresight.
func (n *Network) checkPair(s *Shot, field string, r Reading, correct func(float64) float64) (ToleranceWarning, bool) {
	if r.Kind != ReadingPaired {
		return ToleranceWarning{}, false
	}
	diff := angularDiffDeg(r.Fore, correct(r.Back))
	if diff <= n.AngleTolerance {
		return ToleranceWarning{}, false
	}
	w := ToleranceWarning{
		Shot:      s.label(),
		Field:     field,
		Fore:      r.Fore,
		Back:      r.Back,
		Diff:      diff,
		Tolerance: n.AngleTolerance,
	}
	monitoring.Logf("WARNING: %s", w)
	return w, true
}

// OriginName returns the name of the origin station: the from station of the
// first shot added, or "" for an empty network.
func (n *Network) OriginName() string {
	return n.originName
}

// Len returns the number of shots added.
func (n *Network) Len() int {
	return len(n.shots)
}

// Shots returns the stored shots in input order. The slice is shared with
// the network; callers must not modify it.
func (n *Network) Shots() []*Shot {
	return n.shots
}

// Warnings returns every tolerance warning emitted so far, in input order.
func (n *Network) Warnings() []ToleranceWarning {
	return n.warnings
}

// Resolved reports whether Process has completed successfully.
func (n *Network) Resolved() bool {
	return n.resolved
}

// Stations returns the resolved stations in resolution order, origin first.
// It returns nil until Process has succeeded.
func (n *Network) Stations() []*Station {
	if !n.resolved {
		return nil
	}
	return n.order
}

// Station looks up a resolved station by name. It returns nil until Process
// has succeeded.
func (n *Network) Station(name string) *Station {
	if !n.resolved {
		return nil
	}
	return n.stations[name]
}
