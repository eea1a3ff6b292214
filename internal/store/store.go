// Package store provides SQLite-backed persistence for named scenarios and
// simulation run history.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/theirongolddev/fincast/internal/model"
)

// Store wraps the fincast SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScenario stores (or replaces) a named scenario's TOML body.
func (s *Store) SaveScenario(name string, bodyTOML []byte) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO scenarios (name, body_toml, updated_at) VALUES (?, ?, ?)`,
		name, string(bodyTOML), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("saving scenario %q: %w", name, err)
	}
	return nil
}

// GetScenario returns the TOML body of a named scenario.
func (s *Store) GetScenario(name string) ([]byte, error) {
	var body string
	err := s.db.QueryRow(`SELECT body_toml FROM scenarios WHERE name = ?`, name).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scenario %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("loading scenario %q: %w", name, err)
	}
	return []byte(body), nil
}

// ScenarioInfo describes one stored scenario.
type ScenarioInfo struct {
	Name      string
	UpdatedAt time.Time
}

// ListScenarios returns all stored scenarios, most recently updated first.
func (s *Store) ListScenarios() ([]ScenarioInfo, error) {
	rows, err := s.db.Query(`SELECT name, updated_at FROM scenarios ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ScenarioInfo
	for rows.Next() {
		var info ScenarioInfo
		var updated string
		if err := rows.Scan(&info.Name, &updated); err != nil {
			return nil, err
		}
		info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Run is one recorded simulation run's KPI snapshot.
type Run struct {
	ID             int64
	Scenario       string
	RunAt          time.Time
	HorizonMonths  int
	FinalNetWorth  float64
	EFReachedMonth *int
	DebtFreeMonth  *int
	CAGRNominal    *float64
	WarningCount   int
}

// SaveRun records the outcome of one simulation run.
func (s *Store) SaveRun(scenarioName string, series model.ScenarioSeries) error {
	finalNW := 0.0
	if n := len(series.NetWorth); n > 0 {
		finalNW = series.NetWorth[n-1]
	}

	_, err := s.db.Exec(`INSERT INTO runs
		(scenario, run_at, horizon_months, final_net_worth,
		 ef_reached_month, debt_free_month, cagr_nominal, warning_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		scenarioName,
		time.Now().UTC().Format(time.RFC3339),
		len(series.NetWorth),
		finalNW,
		nullableInt(series.KPIs.EFReachedMonth),
		nullableInt(series.KPIs.DebtFreeMonth),
		nullableFloat(series.KPIs.CAGRNominal),
		len(series.Warnings),
	)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// ListRuns returns recorded runs, most recent first, up to limit.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT id, scenario, run_at, horizon_months,
		final_net_worth, ef_reached_month, debt_free_month, cagr_nominal, warning_count
		FROM runs ORDER BY run_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var r Run
		var runAt string
		var efMonth, debtMonth sql.NullInt64
		var cagr sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.Scenario, &runAt, &r.HorizonMonths,
			&r.FinalNetWorth, &efMonth, &debtMonth, &cagr, &r.WarningCount); err != nil {
			return nil, err
		}
		r.RunAt, _ = time.Parse(time.RFC3339, runAt)
		if efMonth.Valid {
			v := int(efMonth.Int64)
			r.EFReachedMonth = &v
		}
		if debtMonth.Valid {
			v := int(debtMonth.Int64)
			r.DebtFreeMonth = &v
		}
		if cagr.Valid {
			v := cagr.Float64
			r.CAGRNominal = &v
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
