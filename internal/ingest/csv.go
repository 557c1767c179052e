// Package ingest parses tabular survey files into shot records. The
// expected format is CSV with a header row naming the columns: from, name,
// distance, azimuth, inclination, left, right, up, down, note. Angle and
// offset cells may be empty, a single decimal, or two decimals joined by
// "/" for a fore/backsight pair.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/speleodata/cavemap/internal/survey"
)

// ParseError reports a cell that cannot be coerced into the shape its
// column requires. It aborts ingestion of the offending file.
type ParseError struct {
	Row   int // 1-based, header row is 1
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d, field %q: %v", e.Row, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Columns that must appear in the header row. The reading and note columns
// are optional; a missing column reads as absent/empty for every row.
var requiredColumns = []string{"from", "name", "distance"}

var readingColumns = []string{"azimuth", "inclination", "left", "right", "up", "down"}

// ReadFile parses one survey CSV file into shot records, in file order.
func ReadFile(path string) ([]survey.Shot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open survey file: %w", err)
	}
	defer f.Close()
	shots, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shots, nil
}

// Read parses survey CSV from r. It stops at the first malformed cell and
// returns a *ParseError naming the row and field.
func Read(r io.Reader) ([]survey.Shot, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := make(map[string]int, len(header))
	for i, label := range header {
		columns[strings.TrimSpace(label)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, &ParseError{Row: 1, Field: col, Err: fmt.Errorf("missing required column")}
		}
	}

	var shots []survey.Shot
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		shot, err := parseRecord(record, columns, row)
		if err != nil {
			return nil, err
		}
		shots = append(shots, shot)
	}
	return shots, nil
}

func parseRecord(record []string, columns map[string]int, row int) (survey.Shot, error) {
	cell := func(field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	shot := survey.Shot{
		From: cell("from"),
		Name: cell("name"),
		Note: cell("note"),
	}

	dist := cell("distance")
	if dist == "" {
		return survey.Shot{}, &ParseError{Row: row, Field: "distance", Err: fmt.Errorf("required value is empty")}
	}
	d, err := strconv.ParseFloat(dist, 64)
	if err != nil {
		return survey.Shot{}, &ParseError{Row: row, Field: "distance", Err: err}
	}
	shot.Distance = d

	readings := map[string]*survey.Reading{
		"azimuth":     &shot.Azimuth,
		"inclination": &shot.Inclination,
		"left":        &shot.Left,
		"right":       &shot.Right,
		"up":          &shot.Up,
		"down":        &shot.Down,
	}
	for _, field := range readingColumns {
		reading, err := ParseReading(cell(field))
		if err != nil {
			return survey.Shot{}, &ParseError{Row: row, Field: field, Err: err}
		}
		*readings[field] = reading
	}
	return shot, nil
}

// ParseReading coerces one cell into a reading: empty means absent, a single
// decimal is a lone foresight, and "fore/back" is a fore/backsight pair.
// Only the first two slash-separated tokens are significant.
func ParseReading(cell string) (survey.Reading, error) {
	if cell == "" {
		return survey.Reading{}, nil
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return survey.Single(v), nil
	}
	parts := strings.Split(cell, "/")
	if len(parts) < 2 {
		return survey.Reading{}, fmt.Errorf("cannot parse %q as a decimal or fore/back pair", cell)
	}
	fore, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return survey.Reading{}, fmt.Errorf("cannot parse %q as a decimal or fore/back pair", cell)
	}
	back, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return survey.Reading{}, fmt.Errorf("cannot parse %q as a decimal or fore/back pair", cell)
	}
	return survey.Paired(fore, back), nil
}
