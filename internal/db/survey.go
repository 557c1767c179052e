package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/speleodata/cavemap/internal/ingest"
	"github.com/speleodata/cavemap/internal/survey"
)

// SurveyMeta is one row of the surveys table.
type SurveyMeta struct {
	ID             string
	Title          string
	DistanceUnits  string
	AngleTolerance float64
	OriginName     string
	CreatedAt      time.Time
}

// SaveSurvey persists a resolved network: its metadata, every shot (with
// readings in sheet-cell syntax), and every resolved station in resolution
// order. It returns the new survey's id.
func (db *DB) SaveSurvey(n *survey.Network) (string, error) {
	if !n.Resolved() {
		return "", fmt.Errorf("cannot save an unresolved survey")
	}

	id := uuid.New().String()
	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO surveys (id, title, distance_units, angle_tolerance, origin_name) VALUES (?, ?, ?, ?, ?)`,
		id, n.Title, n.DistanceUnits, n.AngleTolerance, n.OriginName(),
	)
	if err != nil {
		return "", fmt.Errorf("insert survey: %w", err)
	}

	for i, s := range n.Shots() {
		_, err = tx.Exec(
			`INSERT INTO shots (survey_id, seq, from_station, name, distance,
				azimuth, inclination, left_offset, right_offset, up_offset, down_offset, note)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, s.From, s.Name, s.Distance,
			s.Azimuth.String(), s.Inclination.String(),
			s.Left.String(), s.Right.String(), s.Up.String(), s.Down.String(),
			s.Note,
		)
		if err != nil {
			return "", fmt.Errorf("insert shot %s: %w", s.Name, err)
		}
	}

	for i, st := range n.Stations() {
		_, err = tx.Exec(
			`INSERT INTO stations (survey_id, seq, name, x, y, z, flat_w, flat_z)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, st.Name,
			st.Position.X, st.Position.Y, st.Position.Z,
			st.FlatPosition.X, st.FlatPosition.Y,
		)
		if err != nil {
			return "", fmt.Errorf("insert station %s: %w", st.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit survey: %w", err)
	}
	return id, nil
}

// LoadSurvey rebuilds a persisted survey into a resolved network. The shots
// are replayed through the builder and the resolver, so the positions are
// recomputed rather than trusted from disk; resolution is deterministic.
func (db *DB) LoadSurvey(id string) (*survey.Network, error) {
	var meta SurveyMeta
	err := db.QueryRow(
		`SELECT id, title, distance_units, angle_tolerance, origin_name FROM surveys WHERE id = ?`, id,
	).Scan(&meta.ID, &meta.Title, &meta.DistanceUnits, &meta.AngleTolerance, &meta.OriginName)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("survey %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load survey %s: %w", id, err)
	}

	rows, err := db.Query(
		`SELECT from_station, name, distance, azimuth, inclination,
			left_offset, right_offset, up_offset, down_offset, note
		 FROM shots WHERE survey_id = ? ORDER BY seq`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("load shots for %s: %w", id, err)
	}
	defer rows.Close()

	n := survey.NewNetwork(meta.Title, meta.DistanceUnits, meta.AngleTolerance)
	for rows.Next() {
		var s survey.Shot
		var azimuth, inclination, left, right, up, down string
		if err := rows.Scan(&s.From, &s.Name, &s.Distance,
			&azimuth, &inclination, &left, &right, &up, &down, &s.Note); err != nil {
			return nil, fmt.Errorf("scan shot: %w", err)
		}
		if s.Azimuth, err = ingest.ParseReading(azimuth); err != nil {
			return nil, fmt.Errorf("shot %s azimuth: %w", s.Name, err)
		}
		if s.Inclination, err = ingest.ParseReading(inclination); err != nil {
			return nil, fmt.Errorf("shot %s inclination: %w", s.Name, err)
		}
		if s.Left, err = ingest.ParseReading(left); err != nil {
			return nil, fmt.Errorf("shot %s left: %w", s.Name, err)
		}
		if s.Right, err = ingest.ParseReading(right); err != nil {
			return nil, fmt.Errorf("shot %s right: %w", s.Name, err)
		}
		if s.Up, err = ingest.ParseReading(up); err != nil {
			return nil, fmt.Errorf("shot %s up: %w", s.Name, err)
		}
		if s.Down, err = ingest.ParseReading(down); err != nil {
			return nil, fmt.Errorf("shot %s down: %w", s.Name, err)
		}
		if _, err := n.AddShot(s); err != nil {
			return nil, fmt.Errorf("replay shot %s: %w", s.Name, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shots: %w", err)
	}

	if err := n.Process(); err != nil {
		return nil, fmt.Errorf("re-resolve survey %s: %w", id, err)
	}
	return n, nil
}

// ListSurveys returns metadata for every stored survey, newest first.
func (db *DB) ListSurveys() ([]SurveyMeta, error) {
	rows, err := db.Query(
		`SELECT id, title, distance_units, angle_tolerance, origin_name, created_at
		 FROM surveys ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list surveys: %w", err)
	}
	defer rows.Close()

	var metas []SurveyMeta
	for rows.Next() {
		var m SurveyMeta
		if err := rows.Scan(&m.ID, &m.Title, &m.DistanceUnits, &m.AngleTolerance, &m.OriginName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan survey: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}
