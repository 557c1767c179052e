// Package api serves a resolved survey over HTTP: rendered views as HTML
// charts and the raw stations and shots as JSON. The network is immutable
// once resolved, so handlers read it without locking.
package api

import (
	"net/http"
	"strings"

	"github.com/speleodata/cavemap/internal/httputil"
	"github.com/speleodata/cavemap/internal/monitoring"
	"github.com/speleodata/cavemap/internal/render"
	"github.com/speleodata/cavemap/internal/survey"
	"github.com/speleodata/cavemap/internal/units"
)

// Server exposes one resolved network.
type Server struct {
	network *survey.Network
	mux     *http.ServeMux
}

// NewServer wires the routes for a resolved network.
func NewServer(n *survey.Network) *Server {
	s := &Server{network: n, mux: http.NewServeMux()}
	s.mux.HandleFunc("/views/", s.handleView)
	s.mux.HandleFunc("/api/stations", s.handleStations)
	s.mux.HandleFunc("/api/shots", s.handleShots)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/", s.handleNotFound)
	return s
}

// handleNotFound answers every unregistered path with a JSON 404 so API
// clients never see the stdlib text page.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	httputil.NotFound(w, "no route for "+r.URL.Path)
}

// Handler returns the root handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks serving the survey on addr.
func (s *Server) ListenAndServe(addr string) error {
	monitoring.Logf("serving survey %q on %s", s.network.Title, addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleView renders /views/{plan|profile|flat|3d} as an ECharts HTML
// document. An unrecognized kind fails this request only.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/views/")
	kind, err := survey.ParseViewKind(name)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	proj, err := s.network.Project(kind)
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := render.HTML(w, proj); err != nil {
		monitoring.Logf("failed to render %s view: %v", kind, err)
	}
}

type stationJSON struct {
	Name  string  `json:"name"`
	Units string  `json:"units"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
	FlatW float64 `json:"flat_w"`
	FlatZ float64 `json:"flat_z"`
}

// handleStations lists the resolved stations. A units query parameter
// converts the coordinates from the survey's units on the way out.
func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	to := s.network.DistanceUnits
	if q := r.URL.Query().Get("units"); q != "" {
		if !units.IsValid(q) {
			httputil.BadRequest(w, "units must be one of "+units.GetValidUnitsString())
			return
		}
		to = q
	}
	from := s.network.DistanceUnits
	stations := s.network.Stations()
	out := make([]stationJSON, 0, len(stations))
	for _, st := range stations {
		out = append(out, stationJSON{
			Name:  st.Name,
			Units: to,
			X:     units.Convert(st.Position.X, from, to),
			Y:     units.Convert(st.Position.Y, from, to),
			Z:     units.Convert(st.Position.Z, from, to),
			FlatW: units.Convert(st.FlatPosition.X, from, to),
			FlatZ: units.Convert(st.FlatPosition.Y, from, to),
		})
	}
	httputil.WriteJSONOK(w, out)
}

type shotJSON struct {
	From        string  `json:"from"`
	Name        string  `json:"name"`
	Distance    float64 `json:"distance"`
	Azimuth     string  `json:"azimuth"`
	Inclination string  `json:"inclination"`
	Note        string  `json:"note,omitempty"`
}

func (s *Server) handleShots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	shots := s.network.Shots()
	out := make([]shotJSON, 0, len(shots))
	for _, sh := range shots {
		out = append(out, shotJSON{
			From:        sh.From,
			Name:        sh.Name,
			Distance:    sh.Distance,
			Azimuth:     sh.Azimuth.String(),
			Inclination: sh.Inclination.String(),
			Note:        sh.Note,
		})
	}
	httputil.WriteJSONOK(w, out)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSONOK(w, map[string]interface{}{
		"status":   "ok",
		"title":    s.network.Title,
		"stations": len(s.network.Stations()),
	})
}
