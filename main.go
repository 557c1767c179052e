// cavemap reduces a cave survey CSV into a positioned line plot and renders
// the requested views.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/speleodata/cavemap/internal/version"
)

var (
	planView    = flag.Bool("plan", false, "Plot a plan view")
	profileView = flag.Bool("profile", false, "Plot a profile view")
	flatView    = flag.Bool("flat", false, "Plot a flat profile view")
	threeDView  = flag.Bool("3d", false, "Plot a 3d view")

	title      = flag.String("title", "", "Cave name (default \"Cave\")")
	distUnits  = flag.String("units", "", "Distance units: feet or meters (default feet)")
	tolerance  = flag.Float64("tolerance", 0, "Allowable fore/backsight disagreement in degrees (default 2.0)")
	outputDir  = flag.String("out", "", "Directory for rendered views (default \"plots\")")
	configPath = flag.String("config", "", "Optional JSON config file")
	dbPath     = flag.String("db", "", "Optional SQLite file to persist the resolved survey")
	staticPNG  = flag.Bool("png", false, "Also render 2d views as PNG images")
	serveAddr  = flag.String("serve", "", "Serve rendered views over HTTP on this address instead of writing files")
	showVer    = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("cavemap %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: cavemap [flags] survey.csv")
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg := runConfig{
		Path:       flag.Arg(0),
		Title:      *title,
		Units:      *distUnits,
		Tolerance:  *tolerance,
		OutputDir:  *outputDir,
		ConfigPath: *configPath,
		DBPath:     *dbPath,
		ServeAddr:  *serveAddr,
		StaticPNG:  *staticPNG,
		Views:      selectedViews(),
	}

	if err := run(cfg); err != nil {
		log.Fatalf("cavemap: %v", err)
	}
}

func selectedViews() []string {
	var views []string
	if *planView {
		views = append(views, "plan")
	}
	if *profileView {
		views = append(views, "profile")
	}
	if *flatView {
		views = append(views, "flat_profile")
	}
	if *threeDView {
		views = append(views, "3d")
	}
	return views
}
