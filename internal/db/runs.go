package db

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/lst.report/internal/lst"
)

// ErrRunNotFound is returned when a run ID has no inspect_runs row.
var ErrRunNotFound = errors.New("inspect run not found")

// Run describes one invocation of the inspector.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time // zero until FinishRun
	SourceDir   string
	SampleCount int
	CheckNight  bool
	QCMask      uint8
	Version     string
}

// BandSummary is one persisted band statistic for a granule.
type BandSummary struct {
	RunID    string
	Filename string
	Label    string
	Band     string
	Summary  lst.Summary
}

// RecordRun inserts a run and returns its generated ID.
func (db *DB) RecordRun(run Run) (string, error) {
	id := uuid.New().String()
	_, err := db.Exec(
		`INSERT INTO inspect_runs (run_id, started_at, source_dir, sample_count, check_night, qc_mask, version)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, run.StartedAt.UnixNano(), run.SourceDir, run.SampleCount, run.CheckNight, int(run.QCMask), run.Version,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return id, nil
}

// FinishRun stamps the run's finish time.
func (db *DB) FinishRun(runID string, finishedAt time.Time) error {
	res, err := db.Exec(`UPDATE inspect_runs SET finished_at = ? WHERE run_id = ?`, finishedAt.UnixNano(), runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return nil
}

// GetRun loads a run by ID.
func (db *DB) GetRun(runID string) (*Run, error) {
	var (
		r          Run
		started    int64
		finished   sql.NullInt64
		qcMask     int
		checkNight bool
	)
	err := db.QueryRow(
		`SELECT run_id, started_at, finished_at, source_dir, sample_count, check_night, qc_mask, version
		 FROM inspect_runs WHERE run_id = ?`, runID,
	).Scan(&r.ID, &started, &finished, &r.SourceDir, &r.SampleCount, &checkNight, &qcMask, &r.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	r.StartedAt = time.Unix(0, started).UTC()
	if finished.Valid {
		r.FinishedAt = time.Unix(0, finished.Int64).UTC()
	}
	r.CheckNight = checkNight
	r.QCMask = uint8(qcMask)
	return &r, nil
}

// RecordSummary stores one band summary. NaN statistics are stored as NULL.
func (db *DB) RecordSummary(s BandSummary) error {
	return insertSummary(db, s)
}

// RecordSummaries stores the band summaries of one granule in a single
// transaction, so either all of them are stored or none are.
func (db *DB) RecordSummaries(summaries ...BandSummary) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, s := range summaries {
		if err := insertSummary(tx, s); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit summaries: %w", err)
	}
	return nil
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertSummary(ex execer, s BandSummary) error {
	_, err := ex.Exec(
		`INSERT INTO band_summaries (run_id, filename, label, band, lst_mean, lst_min, lst_max, valid_pct, valid_cells, total_cells)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Filename, s.Label, s.Band,
		nullFloat(s.Summary.Mean), nullFloat(s.Summary.Min), nullFloat(s.Summary.Max),
		s.Summary.ValidPct, s.Summary.Valid, s.Summary.Total,
	)
	if err != nil {
		return fmt.Errorf("failed to record %s summary for %s: %w", s.Band, s.Filename, err)
	}
	return nil
}

// Summaries returns the band summaries of a run in insertion order.
func (db *DB) Summaries(runID string) ([]BandSummary, error) {
	rows, err := db.Query(
		`SELECT run_id, filename, label, band, lst_mean, lst_min, lst_max, valid_pct, valid_cells, total_cells
		 FROM band_summaries WHERE run_id = ? ORDER BY summary_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query summaries: %w", err)
	}
	defer rows.Close()

	var out []BandSummary
	for rows.Next() {
		var (
			s            BandSummary
			mean, lo, hi sql.NullFloat64
		)
		if err := rows.Scan(&s.RunID, &s.Filename, &s.Label, &s.Band, &mean, &lo, &hi,
			&s.Summary.ValidPct, &s.Summary.Valid, &s.Summary.Total); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		s.Summary.Mean = fromNull(mean)
		s.Summary.Min = fromNull(lo)
		s.Summary.Max = fromNull(hi)
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
