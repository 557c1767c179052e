package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/speleodata/cavemap/internal/survey"
	"github.com/speleodata/cavemap/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	n := survey.NewNetwork("API Cave", "feet", survey.DefaultAngleTolerance)
	shots := []survey.Shot{
		{From: "A", Name: "B", Distance: 10, Azimuth: survey.Single(0), Inclination: survey.Single(0)},
		{From: "B", Name: "C", Distance: 5, Azimuth: survey.Single(90), Inclination: survey.Single(0)},
	}
	for _, s := range shots {
		if _, err := n.AddShot(s); err != nil {
			t.Fatalf("AddShot: %v", err)
		}
	}
	if err := n.Process(); err != nil {
		t.Fatalf("Process: %v", err)
	}
	return NewServer(n)
}

func TestHandleViewHTML(t *testing.T) {
	s := testServer(t)
	for _, view := range []string{"plan", "profile", "flat", "3d"} {
		t.Run(view, func(t *testing.T) {
			rec := testutil.NewTestRecorder()
			s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/views/"+view))
			testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("content type = %q, want text/html", ct)
			}
			if !strings.Contains(rec.Body.String(), "API Cave") {
				t.Error("response does not carry the survey title")
			}
		})
	}
}

func TestHandleViewUnknownKind(t *testing.T) {
	s := testServer(t)
	rec := testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/views/isometric"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)

	// One bad view request must not affect the next render.
	rec = testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/views/plan"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
}

func TestHandleViewMethodNotAllowed(t *testing.T) {
	s := testServer(t)
	rec := testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodPost, "/views/plan"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
}

func TestHandleStations(t *testing.T) {
	s := testServer(t)
	rec := testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/stations"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var stations []stationJSON
	testutil.AssertNoError(t, json.Unmarshal(rec.Body.Bytes(), &stations))
	if len(stations) != 3 {
		t.Fatalf("stations = %d, want 3", len(stations))
	}
	if stations[0].Name != "A" {
		t.Errorf("first station = %q, want origin A", stations[0].Name)
	}
	testutil.AssertNear(t, stations[1].Y, 10, 1e-9)
	if stations[0].Units != "feet" {
		t.Errorf("units = %q, want the survey's feet", stations[0].Units)
	}
}

func TestHandleStationsUnitConversion(t *testing.T) {
	s := testServer(t)
	rec := testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/stations?units=meters"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var stations []stationJSON
	testutil.AssertNoError(t, json.Unmarshal(rec.Body.Bytes(), &stations))
	if stations[1].Units != "meters" {
		t.Errorf("units = %q, want meters", stations[1].Units)
	}
	// The 10 ft due-north shot converts to 3.048 m.
	testutil.AssertNear(t, stations[1].Y, 3.048, 1e-9)

	rec = testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/stations?units=furlongs"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestHandleUnknownRoute(t *testing.T) {
	s := testServer(t)
	rec := testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/nope"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q, want application/json", ct)
	}
}

func TestHandleShots(t *testing.T) {
	s := testServer(t)
	rec := testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/api/shots"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var shots []shotJSON
	testutil.AssertNoError(t, json.Unmarshal(rec.Body.Bytes(), &shots))
	if len(shots) != 2 {
		t.Fatalf("shots = %d, want 2", len(shots))
	}
	if shots[0].From != "A" || shots[0].Name != "B" {
		t.Errorf("first shot = %+v", shots[0])
	}
}

func TestHandleHealth(t *testing.T) {
	s := testServer(t)
	rec := testutil.NewTestRecorder()
	s.Handler().ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, "/healthz"))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Error("health response missing status")
	}
}
