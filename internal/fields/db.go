package fields

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

// Field is one sky-survey target field.
type Field struct {
	ID  int
	RA  float64
	Dec float64
	GL  float64
	GB  float64
	EL  float64
	EB  float64
}

// Database is the Postgres-backed field store.
type Database struct {
	db *sql.DB
}

// Open connects to Postgres and verifies the connection. An empty dsn falls
// back to the PG* environment variables.
func Open(dsn string) (*Database, error) {
	if dsn == "" {
		dsn = dsnFromEnv()
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open field database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping field database: %w", err)
	}
	return &Database{db: db}, nil
}

func dsnFromEnv() string {
	host := getEnv("PGHOST", "127.0.0.1")
	port := getEnv("PGPORT", "5432")
	user := getEnv("PGUSER", "schedconf")
	dbname := getEnv("PGDATABASE", "fields")
	password := os.Getenv("PGPASSWORD")

	if password != "" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
		host, port, user, dbname)
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// EnsureSchema creates the field table if it does not exist.
func (d *Database) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS field (
			fieldId  INTEGER PRIMARY KEY,
			fieldRA  DOUBLE PRECISION NOT NULL,
			fieldDec DOUBLE PRECISION NOT NULL,
			fieldGL  DOUBLE PRECISION NOT NULL,
			fieldGB  DOUBLE PRECISION NOT NULL,
			fieldEL  DOUBLE PRECISION NOT NULL,
			fieldEB  DOUBLE PRECISION NOT NULL
		);
	`
	_, err := d.db.Exec(query)
	return err
}

// Insert adds or replaces one field.
func (d *Database) Insert(f Field) error {
	query := `
		INSERT INTO field (fieldId, fieldRA, fieldDec, fieldGL, fieldGB, fieldEL, fieldEB)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (fieldId) DO UPDATE SET
			fieldRA = EXCLUDED.fieldRA, fieldDec = EXCLUDED.fieldDec,
			fieldGL = EXCLUDED.fieldGL, fieldGB = EXCLUDED.fieldGB,
			fieldEL = EXCLUDED.fieldEL, fieldEB = EXCLUDED.fieldEB
	`
	_, err := d.db.Exec(query, f.ID, f.RA, f.Dec, f.GL, f.GB, f.EL, f.EB)
	return err
}

// GetFieldSet executes a composed field-set query and returns the matching
// field IDs in whatever order the database yields them.
func (d *Database) GetFieldSet(query string) ([]int, error) {
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("field query failed: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close releases the connection pool.
func (d *Database) Close() error {
	return d.db.Close()
}
