// gen-survey writes a synthetic cave survey CSV: a descending helix of
// shots with paired fore/backsights, useful for demos and manual testing of
// the reduction pipeline.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
)

var (
	shotCount = flag.Int("shots", 24, "Number of shots to generate")
	outPath   = flag.String("out", "survey.csv", "Output CSV path")
	turnDeg   = flag.Float64("turn", 30, "Bearing change per shot in degrees")
)

func main() {
	flag.Parse()

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("gen-survey: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"from", "name", "distance", "azimuth", "inclination", "left", "right", "up", "down", "note"}
	if err := w.Write(header); err != nil {
		log.Fatalf("gen-survey: %v", err)
	}

	for i := 0; i < *shotCount; i++ {
		from := stationName(i)
		name := stationName(i + 1)
		distance := 8 + 3*math.Sin(float64(i))
		azimuth := math.Mod(float64(i)*(*turnDeg), 360)
		backAzimuth := math.Mod(azimuth+180, 360)
		inclination := -4 - 2*math.Cos(float64(i)/3)

		row := []string{
			from,
			name,
			fmt.Sprintf("%.1f", distance),
			fmt.Sprintf("%.1f/%.1f", azimuth, backAzimuth),
			fmt.Sprintf("%.1f/%.1f", inclination, -inclination),
			"2.0", "2.0", "1.5", "0.5",
			"",
		}
		if err := w.Write(row); err != nil {
			log.Fatalf("gen-survey: %v", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		log.Fatalf("gen-survey: %v", err)
	}
	log.Printf("wrote %d shots to %s", *shotCount, *outPath)
}

func stationName(i int) string {
	return fmt.Sprintf("A%d", i)
}
