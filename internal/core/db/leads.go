package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

// ReplaceLeads swaps the whole catalog for leads, keeping their order
func (db *DB) ReplaceLeads(leads []models.Lead) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec(`DELETE FROM leads`); err != nil {
		return fmt.Errorf("clear leads: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO leads (id, position, nome, empresa, email, fonte, pontuacao, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range leads {
		if _, err := stmt.Exec(l.ID, i, l.Name, l.Company, l.Email, l.Source, l.Score, string(l.Status)); err != nil {
			return fmt.Errorf("insert lead %d: %w", l.ID, err)
		}
	}

	return tx.Commit()
}

// ListLeads returns the catalog in import order
func (db *DB) ListLeads() ([]models.Lead, error) {
	rows, err := db.Query(`
		SELECT id, nome, empresa, email, fonte, pontuacao, status
		FROM leads
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := []models.Lead{}
	for rows.Next() {
		var l models.Lead
		var status string
		if err := rows.Scan(&l.ID, &l.Name, &l.Company, &l.Email, &l.Source, &l.Score, &status); err != nil {
			return nil, err
		}
		l.Status = models.Status(status)
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// CountLeads returns the number of catalog rows
func (db *DB) CountLeads() (int, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM leads").Scan(&count)
	return count, err
}

// ImportRecord is one row of the import log
type ImportRecord struct {
	FilePath   string
	FileHash   string
	ImportedAt time.Time
	Leads      int
	Status     string
	Error      string
}

// LogImport appends an entry to the import log
func (db *DB) LogImport(rec ImportRecord) error {
	_, err := db.Exec(`
		INSERT INTO import_log (file_path, file_hash, leads_imported, status, error_message)
		VALUES (?, ?, ?, ?, ?)
	`, rec.FilePath, rec.FileHash, rec.Leads, rec.Status, sql.NullString{String: rec.Error, Valid: rec.Error != ""})
	return err
}

// LastImport returns the most recent successful import, or nil if none
func (db *DB) LastImport() (*ImportRecord, error) {
	var rec ImportRecord
	var importedAt string
	err := db.QueryRow(`
		SELECT file_path, file_hash, imported_at, COALESCE(leads_imported, 0), status
		FROM import_log
		WHERE status = 'success'
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&rec.FilePath, &rec.FileHash, &importedAt, &rec.Leads, &rec.Status)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.ImportedAt = parseTimestamp(importedAt)
	return &rec, nil
}

// parseTimestamp handles the formats SQLite and the driver hand back
func parseTimestamp(s string) time.Time {
	formats := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
