package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"medtrack/internal/modules/medicine/domain"
	medout "medtrack/internal/modules/medicine/port/out"
	"medtrack/internal/platform/clock"

	_ "modernc.org/sqlite"
)

// SQLiteCache projects fetched medicines into a local database so listing
// and search keep working without the backend.
type SQLiteCache struct {
	db  *sql.DB
	clk clock.Clock
}

func NewSQLiteCache(dbPath string, clk clock.Clock) (medout.Cache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	cache := &SQLiteCache{db: db, clk: clk}
	if err := cache.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS medicines (
  id INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  generic_name TEXT,
  manufacturer TEXT,
  active INTEGER NOT NULL,
  openfda TEXT
);
CREATE INDEX IF NOT EXISTS medicines_name ON medicines(name);
CREATE TABLE IF NOT EXISTS cache_meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create cache schema: %w", err)
	}
	return nil
}

func (c *SQLiteCache) ReplaceAll(ctx context.Context, medicines []domain.Medicine) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache refresh: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM medicines`); err != nil {
		return fmt.Errorf("clear medicines: %w", err)
	}
	const stmt = `
INSERT INTO medicines (id, name, generic_name, manufacturer, active, openfda)
VALUES (?, ?, ?, ?, ?, ?);
`
	for _, m := range medicines {
		var openfda []byte
		if len(m.OpenFDA) > 0 {
			openfda, err = json.Marshal(m.OpenFDA)
			if err != nil {
				return fmt.Errorf("marshal openfda for %d: %w", m.ID, err)
			}
		}
		active := 0
		if m.Active {
			active = 1
		}
		if _, err := tx.ExecContext(ctx, stmt, m.ID, m.Name, m.GenericName, m.Manufacturer, active, string(openfda)); err != nil {
			return fmt.Errorf("insert medicine %d: %w", m.ID, err)
		}
	}
	const stampStmt = `
INSERT INTO cache_meta (key, value) VALUES ('synced_at', ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;
`
	if _, err := tx.ExecContext(ctx, stampStmt, c.clk.Now().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("stamp sync time: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache refresh: %w", err)
	}
	return nil
}

func (c *SQLiteCache) LastSync(ctx context.Context) (time.Time, error) {
	var value string
	err := c.db.QueryRowContext(ctx, `SELECT value FROM cache_meta WHERE key = 'synced_at'`).Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("read sync time: %w", err)
	}
	at, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse sync time: %w", err)
	}
	return at, nil
}

func (c *SQLiteCache) Search(ctx context.Context, query string, limit int) ([]domain.Medicine, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + query + "%"
	const stmt = `
SELECT id, name, generic_name, manufacturer, active, openfda
FROM medicines
WHERE name LIKE ? COLLATE NOCASE OR generic_name LIKE ? COLLATE NOCASE
ORDER BY name
LIMIT ?;
`
	rows, err := c.db.QueryContext(ctx, stmt, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search medicines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var medicines []domain.Medicine
	for rows.Next() {
		var m domain.Medicine
		var active int
		var openfda sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.GenericName, &m.Manufacturer, &active, &openfda); err != nil {
			return nil, fmt.Errorf("scan medicine: %w", err)
		}
		m.Active = active != 0
		if openfda.Valid && openfda.String != "" {
			if err := json.Unmarshal([]byte(openfda.String), &m.OpenFDA); err != nil {
				return nil, fmt.Errorf("decode openfda for %d: %w", m.ID, err)
			}
		}
		medicines = append(medicines, m)
	}
	return medicines, rows.Err()
}

func (c *SQLiteCache) Count(ctx context.Context) (int, error) {
	var count int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM medicines`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count medicines: %w", err)
	}
	return count, nil
}
