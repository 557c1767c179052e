package survey

import (
	"fmt"
	"strings"
)

// ValidationError reports a shot that cannot be added to a network. It is
// fatal to ingestion of that shot.
type ValidationError struct {
	Shot   string // "from-->name"
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid shot %s: %s", e.Shot, e.Reason)
}

// ConnectivityError reports stations that never link back to the origin.
// Resolution aborts without exposing any partial geometry.
type ConnectivityError struct {
	Origin     string
	Unresolved []string
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("stations do not connect to origin %s: %s",
		e.Origin, strings.Join(e.Unresolved, ", "))
}

// ViewError reports a render request for a view kind the projector does not
// recognize. It is fatal to that one render only.
type ViewError struct {
	Kind string
}

func (e *ViewError) Error() string {
	return fmt.Sprintf("invalid view: %s", e.Kind)
}

// ToleranceWarning records a fore/backsight pair that disagrees beyond the
// network's angle tolerance. It is diagnostic only; ingestion continues and
// resolution uses the averaged value.
type ToleranceWarning struct {
	Shot      string // "from-->name"
	Field     string // "azimuth" or "inclination"
	Fore      float64
	Back      float64
	Diff      float64
	Tolerance float64
}

func (w ToleranceWarning) String() string {
	return fmt.Sprintf("%s %g/%g in shot %s disagrees by %g (tolerance %g)",
		w.Field, w.Fore, w.Back, w.Shot, w.Diff, w.Tolerance)
}
