package calibstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Zenobia000/gallup-strengths-assessment-sub000/internal/contract"
	"github.com/Zenobia000/gallup-strengths-assessment-sub000/schema"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// Table names for calibration storage.
const (
	artifactsTable = "strengths_artifacts"
	profilesTable  = "strengths_profiles"
)

// Artifact kinds stored in the artifacts table.
const (
	kindCalibration = "calibration"
	kindNorms       = "norms"
	kindDesign      = "design"
)

// StoreImpl implements the CalibrationStore interface.
type StoreImpl struct {
	db         *sql.DB
	backend    schema.StoreBackend
	driverName string
	location   string
}

var _ contract.CalibrationStore = &StoreImpl{} // Compile-time check

// NewStore initializes and returns a new CalibrationStore based on the
// backend type.
func NewStore(backend schema.StoreBackend, connStr string) (contract.CalibrationStore, error) {
	var db *sql.DB
	var err error
	var driverName string
	location := connStr

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetStoreDBFilePath()
		}
		location = dbPath
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL store: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL store: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled persistence
		return &StoreImpl{
			db:      nil,
			backend: backend,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s store: %w. Check that the server is running and connection parameters are valid", backend, err)
	}

	// Create the table schemas
	if err := createStoreTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create store tables: %w", err)
	}

	return &StoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		location:   location,
	}, nil
}

// createStoreTables creates the artifact and profile tables.
func createStoreTables(db *sql.DB, backend schema.StoreBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{artifactsTable, getCreateArtifactsQuery(backend)},
		{profilesTable, getCreateProfilesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateArtifactsQuery returns the CREATE TABLE query for strengths_artifacts.
func getCreateArtifactsQuery(backend schema.StoreBackend) string {
	quotedTableName := quoteTableName(artifactsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				artifact_kind VARCHAR(50) NOT NULL,
				artifact_version VARCHAR(100) NOT NULL,
				payload MEDIUMTEXT NOT NULL,
				created_at BIGINT NOT NULL,
				PRIMARY KEY (artifact_kind, artifact_version)
			);
		`, quotedTableName)

	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				artifact_kind TEXT NOT NULL,
				artifact_version TEXT NOT NULL,
				payload TEXT NOT NULL,
				created_at BIGINT NOT NULL,
				PRIMARY KEY (artifact_kind, artifact_version)
			);
		`, quotedTableName)
	}
}

// getCreateProfilesQuery returns the CREATE TABLE query for strengths_profiles.
func getCreateProfilesQuery(backend schema.StoreBackend) string {
	quotedTableName := quoteTableName(profilesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id VARCHAR(100) NOT NULL,
				created_at BIGINT NOT NULL,
				payload MEDIUMTEXT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite and PostgreSQL
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id TEXT NOT NULL,
				created_at BIGINT NOT NULL,
				payload TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// putArtifact inserts or replaces a versioned artifact payload.
func (st *StoreImpl) putArtifact(kind, version string, artifact any) error {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil
	}
	if version == "" {
		return contract.NewConfigError("%s version cannot be empty", kind)
	}

	payload, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %q: %w", kind, version, err)
	}

	query := st.getUpsertArtifactQuery()
	_, err = st.db.Exec(query, kind, version, string(payload), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store %s %q: %w", kind, version, err)
	}
	return nil
}

// getArtifact loads a versioned artifact payload into target. An unknown
// version is a fatal configuration error, matching the contract that scoring
// never silently substitutes a different artifact.
func (st *StoreImpl) getArtifact(kind, version string, target any) error {
	if st.backend == schema.NoneBackend || st.db == nil {
		return contract.NewConfigError("%s version %q not found: store backend is none", kind, version)
	}

	quotedTableName := quoteTableName(artifactsTable, st.backend)
	query := fmt.Sprintf(`SELECT payload FROM %s WHERE artifact_kind = %s AND artifact_version = %s`,
		quotedTableName, st.placeholder(1), st.placeholder(2))

	var payload string
	if err := st.db.QueryRow(query, kind, version).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contract.NewConfigError("%s version %q not found", kind, version)
		}
		return fmt.Errorf("failed to load %s %q: %w", kind, version, err)
	}

	if err := json.Unmarshal([]byte(payload), target); err != nil {
		return fmt.Errorf("failed to unmarshal %s %q: %w", kind, version, err)
	}
	return nil
}

// getUpsertArtifactQuery returns the UPSERT query for the backend.
func (st *StoreImpl) getUpsertArtifactQuery() string {
	quotedTableName := quoteTableName(artifactsTable, st.backend)
	switch st.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (artifact_kind, artifact_version, payload, created_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE payload = new.payload, created_at = new.created_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (artifact_kind, artifact_version, payload, created_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (artifact_kind, artifact_version) DO UPDATE SET payload = EXCLUDED.payload, created_at = EXCLUDED.created_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (artifact_kind, artifact_version, payload, created_at) VALUES (?, ?, ?, ?)`, quotedTableName)
	}
}

// placeholder returns the parameter placeholder for the backend at position n.
func (st *StoreImpl) placeholder(n int) string {
	switch st.backend {
	case schema.PostgreSQLBackend:
		return fmt.Sprintf("$%d", n)
	default: // SQLite and MySQL
		return "?"
	}
}

// GetCalibration loads the item-parameter set for a version.
func (st *StoreImpl) GetCalibration(version string) (*schema.CalibrationSet, error) {
	var set schema.CalibrationSet
	if err := st.getArtifact(kindCalibration, version, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// PutCalibration stores an item-parameter set under its version.
func (st *StoreImpl) PutCalibration(set *schema.CalibrationSet) error {
	return st.putArtifact(kindCalibration, set.Version, set)
}

// GetNorms loads the normative reference table for a version.
func (st *StoreImpl) GetNorms(version string) (*schema.NormTable, error) {
	var norms schema.NormTable
	if err := st.getArtifact(kindNorms, version, &norms); err != nil {
		return nil, err
	}
	return &norms, nil
}

// PutNorms stores a normative reference table under its version.
func (st *StoreImpl) PutNorms(norms *schema.NormTable) error {
	return st.putArtifact(kindNorms, norms.Version, norms)
}

// GetDesign loads a generated block design for a version.
func (st *StoreImpl) GetDesign(version string) (*schema.BlockDesign, error) {
	var design schema.BlockDesign
	if err := st.getArtifact(kindDesign, version, &design); err != nil {
		return nil, err
	}
	return &design, nil
}

// PutDesign stores a generated block design under its version.
func (st *StoreImpl) PutDesign(design *schema.BlockDesign) error {
	return st.putArtifact(kindDesign, design.Version, design)
}

// RecordProfile appends a scored profile for later export.
func (st *StoreImpl) RecordProfile(profile *schema.TieredProfile) error {
	// Skip for NoneBackend
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile %q: %w", profile.SessionID, err)
	}

	quotedTableName := quoteTableName(profilesTable, st.backend)
	query := fmt.Sprintf(`INSERT INTO %s (session_id, created_at, payload) VALUES (%s, %s, %s)`,
		quotedTableName, st.placeholder(1), st.placeholder(2), st.placeholder(3))
	_, err = st.db.Exec(query, profile.SessionID, profile.CreatedAt.Unix(), string(payload))
	if err != nil {
		return fmt.Errorf("failed to record profile %q: %w", profile.SessionID, err)
	}
	return nil
}

// ListProfiles returns up to limit stored profiles, newest first.
func (st *StoreImpl) ListProfiles(limit int) ([]schema.TieredProfile, error) {
	if st.backend == schema.NoneBackend || st.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultProfileLimit
	}
	if limit > contract.MaxProfileLimit {
		limit = contract.MaxProfileLimit
	}

	quotedTableName := quoteTableName(profilesTable, st.backend)
	query := fmt.Sprintf(`SELECT payload FROM %s ORDER BY created_at DESC LIMIT %d`, quotedTableName, limit)
	rows, err := st.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []schema.TieredProfile
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan profile row: %w", err)
		}
		var profile schema.TieredProfile
		if err := json.Unmarshal([]byte(payload), &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// GetStatus returns status information about the calibration store.
func (st *StoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:  st.backend,
		Location: st.location,
	}

	if st.backend == schema.NoneBackend || st.db == nil {
		return status, nil
	}

	kinds := []struct {
		kind   string
		target *[]string
	}{
		{kindCalibration, &status.CalibrationVersions},
		{kindNorms, &status.NormVersions},
		{kindDesign, &status.DesignVersions},
	}

	quotedArtifacts := quoteTableName(artifactsTable, st.backend)
	for _, k := range kinds {
		query := fmt.Sprintf(`SELECT artifact_version FROM %s WHERE artifact_kind = %s ORDER BY artifact_version`,
			quotedArtifacts, st.placeholder(1))
		rows, err := st.db.Query(query, k.kind)
		if err != nil {
			return status, fmt.Errorf("failed to list %s versions: %w", k.kind, err)
		}
		for rows.Next() {
			var version string
			if err := rows.Scan(&version); err != nil {
				_ = rows.Close()
				return status, fmt.Errorf("failed to scan %s version: %w", k.kind, err)
			}
			*k.target = append(*k.target, version)
		}
		if err := rows.Err(); err != nil {
			_ = rows.Close()
			return status, err
		}
		_ = rows.Close()
	}

	quotedProfiles := quoteTableName(profilesTable, st.backend)
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedProfiles)
	if err := st.db.QueryRow(countQuery).Scan(&status.ProfileCount); err != nil {
		return status, fmt.Errorf("failed to count profiles: %w", err)
	}

	return status, nil
}

// Close closes the underlying DB connection.
func (st *StoreImpl) Close() error {
	if st.db != nil {
		return st.db.Close()
	}
	return nil
}
