package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/neilberkman/leaddesk/internal/core/db"
	"github.com/neilberkman/leaddesk/internal/core/models"
	"github.com/neilberkman/leaddesk/internal/core/source"
)

// Importer seeds the lead catalog from a JSON export
type Importer struct {
	db *db.DB
}

// New creates a new importer
func New(database *db.DB) *Importer {
	return &Importer{db: database}
}

// ImportFile validates the leads in path and replaces the catalog with them.
// Returns the number of leads imported.
func (i *Importer) ImportFile(path string, progress ProgressCallback) (int, error) {
	hash, err := computeFileHash(path)
	if err != nil {
		return 0, fmt.Errorf("failed to hash file: %w", err)
	}

	leads, err := readLeads(path)
	if err == nil {
		err = models.ValidateLeads(leads)
	}
	if err != nil {
		i.logFailure(path, hash, err)
		return 0, err
	}

	if progress != nil {
		for _, l := range leads {
			progress.Update(l.Name, l.Company)
		}
	}

	if err := i.db.ReplaceLeads(leads); err != nil {
		i.logFailure(path, hash, err)
		return 0, fmt.Errorf("failed to write catalog: %w", err)
	}

	if err := i.db.LogImport(db.ImportRecord{
		FilePath: path,
		FileHash: hash,
		Leads:    len(leads),
		Status:   "success",
	}); err != nil {
		return len(leads), fmt.Errorf("failed to record import: %w", err)
	}

	return len(leads), nil
}

func (i *Importer) logFailure(path, hash string, cause error) {
	_ = i.db.LogImport(db.ImportRecord{
		FilePath: path,
		FileHash: hash,
		Status:   "failed",
		Error:    cause.Error(),
	})
}

func readLeads(path string) ([]models.Lead, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return source.DecodeLeads(f)
}

func computeFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
