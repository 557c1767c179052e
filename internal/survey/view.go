package survey

import "errors"

// ViewKind selects which axes of the resolved geometry a render consumes.
type ViewKind string

const (
	// View3D keeps all three axes.
	View3D ViewKind = "3d"
	// ViewPlan looks straight down: east against north.
	ViewPlan ViewKind = "plan"
	// ViewProfile looks from the east: north against elevation.
	ViewProfile ViewKind = "profile"
	// ViewFlatProfile unrolls cumulative horizontal travel against
	// elevation, discarding bearing.
	ViewFlatProfile ViewKind = "flat_profile"
)

// ParseViewKind maps a user-supplied view name onto a ViewKind. It accepts
// "flat" as a shorthand for the flattened profile and returns a *ViewError
// for anything it does not recognize.
func ParseViewKind(s string) (ViewKind, error) {
	switch s {
	case "3d":
		return View3D, nil
	case "plan":
		return ViewPlan, nil
	case "profile":
		return ViewProfile, nil
	case "flat", "flat_profile":
		return ViewFlatProfile, nil
	}
	return "", &ViewError{Kind: s}
}

// Is2D reports whether the kind projects onto two axes.
func (k ViewKind) Is2D() bool {
	return k != View3D
}

// PlotPoint is one projected station. Z is zero for 2D kinds.
type PlotPoint struct {
	X, Y, Z float64
}

// PlotSegment is one projected shot, predecessor to target.
type PlotSegment struct {
	From, To PlotPoint
	Name     string // target station name
}

// Projection is the geometry of one view, ready for a renderer: every
// resolved station (origin included) in resolution order, its label, and one
// segment per shot.
type Projection struct {
	Kind     ViewKind
	Title    string
	Units    string
	Points   []PlotPoint
	Labels   []string
	Segments []PlotSegment
}

// ErrNotResolved is returned when projection is requested before Process
// has succeeded.
var ErrNotResolved = errors.New("survey: network is not resolved")

// Project reduces the resolved network to the axes of the requested view.
// The profile view does not apply a rotation angle; it is a fixed projection
// onto the north/elevation plane. Unknown kinds fail with a *ViewError,
// which aborts only this one render.
func (n *Network) Project(kind ViewKind) (*Projection, error) {
	switch kind {
	case View3D, ViewPlan, ViewProfile, ViewFlatProfile:
	default:
		return nil, &ViewError{Kind: string(kind)}
	}
	if !n.resolved {
		return nil, ErrNotResolved
	}

	p := &Projection{
		Kind:     kind,
		Title:    n.Title,
		Units:    n.DistanceUnits,
		Points:   make([]PlotPoint, 0, len(n.order)),
		Labels:   make([]string, 0, len(n.order)),
		Segments: make([]PlotSegment, 0, len(n.shots)),
	}
	for _, st := range n.order {
		p.Points = append(p.Points, projectStation(st, kind))
		p.Labels = append(p.Labels, st.Name)
	}
	for _, s := range n.shots {
		p.Segments = append(p.Segments, PlotSegment{
			From: projectStation(n.stations[s.From], kind),
			To:   projectStation(n.stations[s.Name], kind),
			Name: s.Name,
		})
	}
	return p, nil
}

func projectStation(st *Station, kind ViewKind) PlotPoint {
	switch kind {
	case ViewPlan:
		return PlotPoint{X: st.Position.X, Y: st.Position.Y}
	case ViewProfile:
		return PlotPoint{X: st.Position.Y, Y: st.Position.Z}
	case ViewFlatProfile:
		return PlotPoint{X: st.FlatPosition.X, Y: st.FlatPosition.Y}
	default: // View3D
		return PlotPoint{X: st.Position.X, Y: st.Position.Y, Z: st.Position.Z}
	}
}
