package survey

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrEmptyNetwork is returned by Process when no shots have been added.
var ErrEmptyNetwork = errors.New("survey: network has no shots")

// Process finalizes the network: it reduces paired angle readings to their
// averaged single values, fixes the origin at (0,0,0), and resolves every
// station's absolute position by walking the shot graph outward from the
// origin. Each position is computed exactly once, directly from its
// predecessor; there is no iterative refinement and no loop closure.
//
// If any shot never links back to the origin, Process returns a
// *ConnectivityError and exposes no geometry at all. Process is
// deterministic: stations resolve in first-ready order, seeded by input
// order.
func (n *Network) Process() error {
	if len(n.shots) == 0 {
		return ErrEmptyNetwork
	}
	n.resolved = false
	n.order = nil

	n.reduceAngles()

	// Index shots by their reference station so each station dequeues its
	// dependents in O(1) instead of rescanning the whole list.
	children := make(map[string][]*Shot, len(n.shots))
	for _, s := range n.shots {
		children[s.From] = append(children[s.From], s)
	}

	origin := n.stations[n.originName]
	origin.Position = r3.Vec{}
	origin.FlatPosition = r2.Vec{}

	order := make([]*Station, 0, len(n.stations))
	order = append(order, origin)
	done := map[string]bool{n.originName: true}

	queue := []string{n.originName}
	for len(queue) > 0 {
		prev := n.stations[queue[0]]
		queue = queue[1:]
		for _, s := range children[prev.Name] {
			target := n.stations[s.Name]
			target.Position = advance(prev.Position, s)
			target.FlatPosition = advanceFlat(prev.FlatPosition, s)
			order = append(order, target)
			done[target.Name] = true
			queue = append(queue, target.Name)
		}
	}

	if len(order) < len(n.stations) {
		var unresolved []string
		for _, s := range n.shots {
			if !done[s.Name] {
				unresolved = append(unresolved, s.Name)
			}
		}
		return &ConnectivityError{Origin: n.originName, Unresolved: unresolved}
	}

	n.order = order
	n.resolved = true
	return nil
}

// reduceAngles replaces every paired reading with its averaged single value:
// the circular mean of the foresight and the corrected backsight for
// azimuth, the plain mean of the foresight and the negated backsight for
// inclination. Absent readings are left absent and evaluate to zero.
func (n *Network) reduceAngles() {
	for _, s := range n.shots {
		if s.Azimuth.Kind == ReadingPaired {
			s.Azimuth = Single(circularMeanDeg(s.Azimuth.Fore, correctedAzimuthBack(s.Azimuth.Back)))
		}
		if s.Inclination.Kind == ReadingPaired {
			s.Inclination = Single((s.Inclination.Fore + correctedInclinationBack(s.Inclination.Back)) / 2)
		}
	}
}

// advance computes a target station's position from its predecessor's.
// Azimuth is measured from north (+Y), so it maps to (sin, cos) rather than
// the mathematical (cos, sin); inclination is positive upward.
func advance(prev r3.Vec, s *Shot) r3.Vec {
	azi := s.Azimuth.Value() * math.Pi / 180
	incl := s.Inclination.Value() * math.Pi / 180
	run := s.Distance * math.Cos(incl)
	return r3.Vec{
		X: prev.X + run*math.Sin(azi),
		Y: prev.Y + run*math.Cos(azi),
		Z: prev.Z + s.Distance*math.Sin(incl),
	}
}

// advanceFlat lays the shot out along a straight horizontal axis against
// vertical depth, discarding azimuth.
func advanceFlat(prev r2.Vec, s *Shot) r2.Vec {
	incl := s.Inclination.Value() * math.Pi / 180
	return r2.Vec{
		X: prev.X + s.Distance*math.Cos(incl),
		Y: prev.Y + s.Distance*math.Sin(incl),
	}
}
