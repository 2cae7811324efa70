package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carprice/catalog"
	_ "github.com/mattn/go-sqlite3"
)

// CatalogStore keeps versioned brand tables in SQLite.
type CatalogStore struct {
	db *sql.DB
}

// Open opens (and if needed creates) the catalog database at path.
func Open(path string) (*CatalogStore, error) {
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	query := `
    CREATE TABLE IF NOT EXISTS catalog_versions (
        version TEXT PRIMARY KEY,
        brand_count INTEGER NOT NULL,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );
    CREATE TABLE IF NOT EXISTS brands (
        version TEXT NOT NULL,
        position INTEGER NOT NULL,
        brand TEXT NOT NULL,
        PRIMARY KEY (version, position),
        UNIQUE (version, brand)
    );
    `
	if _, err := database.Exec(query); err != nil {
		database.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &CatalogStore{db: database}, nil
}

func (s *CatalogStore) Close() error {
	return s.db.Close()
}

// SaveCatalog stores cat under its version, replacing any previous rows for it.
func (s *CatalogStore) SaveCatalog(ctx context.Context, cat *catalog.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM brands WHERE version = ?`, cat.Version()); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT OR REPLACE INTO catalog_versions (version, brand_count, created_at)
        VALUES (?, ?, CURRENT_TIMESTAMP)`, cat.Version(), cat.Len()); err != nil {
		tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO brands (version, position, brand) VALUES (?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, brand := range cat.Brands() {
		if _, err := stmt.ExecContext(ctx, cat.Version(), i, brand); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// LoadCatalog loads the brand table for version. An empty version selects
// the most recently saved one.
func (s *CatalogStore) LoadCatalog(ctx context.Context, version string) (*catalog.Catalog, error) {
	if version == "" {
		latest, err := s.LatestVersion(ctx)
		if err != nil {
			return nil, err
		}
		version = latest
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT brand FROM brands
        WHERE version = ?
        ORDER BY position ASC`, version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := make([]string, 0)
	for rows.Next() {
		var brand string
		if err := rows.Scan(&brand); err != nil {
			return nil, err
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(brands) == 0 {
		return nil, fmt.Errorf("catalog version %q not found", version)
	}
	return catalog.New(version, brands)
}

func (s *CatalogStore) LatestVersion(ctx context.Context) (string, error) {
	var version string
	err := s.db.QueryRowContext(ctx, `
        SELECT version FROM catalog_versions
        ORDER BY created_at DESC, rowid DESC
        LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("no catalog stored")
	}
	return version, err
}

// Versions lists stored catalog versions, newest first.
func (s *CatalogStore) Versions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT version FROM catalog_versions
        ORDER BY created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]string, 0)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}
	return versions, rows.Err()
}
