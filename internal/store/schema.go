package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS scenarios (
    name                 TEXT PRIMARY KEY,
    body_toml            TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    scenario             TEXT NOT NULL,
    run_at               TEXT NOT NULL,
    horizon_months       INTEGER NOT NULL,
    final_net_worth      REAL NOT NULL,
    ef_reached_month     INTEGER,
    debt_free_month      INTEGER,
    cagr_nominal         REAL,
    warning_count        INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
CREATE INDEX IF NOT EXISTS idx_runs_run_at ON runs(run_at);
`
