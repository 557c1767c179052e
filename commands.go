package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/speleodata/cavemap/internal/api"
	"github.com/speleodata/cavemap/internal/config"
	"github.com/speleodata/cavemap/internal/db"
	"github.com/speleodata/cavemap/internal/ingest"
	"github.com/speleodata/cavemap/internal/monitoring"
	"github.com/speleodata/cavemap/internal/render"
	"github.com/speleodata/cavemap/internal/survey"
)

// runConfig carries everything one invocation needs; there is no
// process-wide mutable state below main.
type runConfig struct {
	Path       string // survey CSV
	Title      string
	Units      string
	Tolerance  float64
	OutputDir  string
	ConfigPath string
	DBPath     string
	ServeAddr  string
	StaticPNG  bool
	Views      []string
}

// run ingests the survey file, resolves the network, and dispatches the
// requested outputs. A failed view render is reported and skipped; every
// other failure aborts.
func run(cfg runConfig) error {
	cfg, err := applyConfigFile(cfg)
	if err != nil {
		return err
	}

	network, err := buildNetwork(cfg)
	if err != nil {
		return err
	}

	if err := network.Process(); err != nil {
		return fmt.Errorf("resolve %s: %w", cfg.Path, err)
	}
	monitoring.Logf("resolved %d stations from %d shots (origin %s)",
		len(network.Stations()), network.Len(), network.OriginName())

	if cfg.DBPath != "" {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer database.Close()
		id, err := database.SaveSurvey(network)
		if err != nil {
			return err
		}
		monitoring.Logf("saved survey %s to %s", id, cfg.DBPath)
	}

	if cfg.ServeAddr != "" {
		return api.NewServer(network).ListenAndServe(cfg.ServeAddr)
	}

	return renderViews(network, cfg)
}

// applyConfigFile fills unset fields from the optional JSON config, then
// from the defaults.
func applyConfigFile(cfg runConfig) (runConfig, error) {
	fileCfg := &config.SurveyConfig{}
	if cfg.ConfigPath != "" {
		loaded, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return cfg, err
		}
		fileCfg = loaded
	}
	if cfg.Title == "" {
		cfg.Title = fileCfg.GetTitle()
	}
	if cfg.Units == "" {
		cfg.Units = fileCfg.GetDistanceUnits()
	}
	if cfg.Tolerance == 0 {
		cfg.Tolerance = fileCfg.GetAngleTolerance()
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = fileCfg.GetOutputDir()
	}
	if len(cfg.Views) == 0 {
		cfg.Views = fileCfg.Views
	}
	return cfg, nil
}

func buildNetwork(cfg runConfig) (*survey.Network, error) {
	shots, err := ingest.ReadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	network := survey.NewNetwork(cfg.Title, cfg.Units, cfg.Tolerance)
	for _, shot := range shots {
		if _, err := network.AddShot(shot); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.Path, err)
		}
	}
	return network, nil
}

// renderViews writes one HTML chart per requested view, plus a PNG for 2d
// views when asked. A bad view name spoils only its own render.
func renderViews(network *survey.Network, cfg runConfig) error {
	if len(cfg.Views) == 0 {
		monitoring.Logf("no views requested; nothing to render")
		return nil
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	failures := 0
	for _, name := range cfg.Views {
		if err := renderView(network, cfg, name); err != nil {
			monitoring.Logf("render %s: %v", name, err)
			failures++
		}
	}
	if failures == len(cfg.Views) {
		return fmt.Errorf("all %d requested views failed to render", failures)
	}
	return nil
}

func renderView(network *survey.Network, cfg runConfig, name string) error {
	kind, err := survey.ParseViewKind(name)
	if err != nil {
		return err
	}
	proj, err := network.Project(kind)
	if err != nil {
		return err
	}

	htmlPath := filepath.Join(cfg.OutputDir, string(kind)+".html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", htmlPath, err)
	}
	if err := render.HTML(f, proj); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", htmlPath, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	monitoring.Logf("wrote %s", htmlPath)

	if cfg.StaticPNG && kind.Is2D() {
		pngPath := filepath.Join(cfg.OutputDir, string(kind)+".png")
		if err := render.Image(pngPath, proj); err != nil {
			return err
		}
		monitoring.Logf("wrote %s", pngPath)
	}
	return nil
}
