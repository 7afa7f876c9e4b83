package importer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/neilberkman/leaddesk/internal/core/db"
)

func setupDB(t *testing.T) *db.DB {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := db.New(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leads.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportFile(t *testing.T) {
	database := setupDB(t)
	imp := New(database)

	var out bytes.Buffer
	progress := NewProgressReporter(&out, 3)

	n, err := imp.ImportFile("../source/testdata/leads.json", progress)
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	progress.Finish()

	if n != 3 {
		t.Errorf("Expected 3 leads imported, got %d", n)
	}

	leads, err := database.ListLeads()
	if err != nil {
		t.Fatal(err)
	}
	if len(leads) != 3 || leads[0].Name != "Ana" || leads[2].Name != "Carla Dias" {
		t.Errorf("Unexpected catalog contents: %+v", leads)
	}

	if !strings.Contains(out.String(), "(3/3)") {
		t.Errorf("Expected progress to reach 3/3, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Imported 3 leads") {
		t.Errorf("Expected completion line, got %q", out.String())
	}

	rec, err := database.LastImport()
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.Leads != 3 || rec.FileHash == "" {
		t.Errorf("Unexpected import log: %+v", rec)
	}
}

func TestImportFile_RejectsInvalidLeads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `[{"id": 1,`},
		{"duplicate ids", `[{"id": 1, "status": "Novo"}, {"id": 1, "status": "Novo"}]`},
		{"unknown status", `[{"id": 1, "status": "Perdido"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := setupDB(t)
			if err := database.ReplaceLeads(nil); err != nil {
				t.Fatal(err)
			}

			_, err := New(database).ImportFile(writeFile(t, tt.body), nil)
			if err == nil {
				t.Fatal("Expected import error")
			}

			count, err := database.CountLeads()
			if err != nil {
				t.Fatal(err)
			}
			if count != 0 {
				t.Errorf("Expected empty catalog after failed import, got %d", count)
			}

			rec, err := database.LastImport()
			if err != nil {
				t.Fatal(err)
			}
			if rec != nil {
				t.Errorf("Failed import must not count as last successful import: %+v", rec)
			}
		})
	}
}

func TestImportFile_MissingFile(t *testing.T) {
	database := setupDB(t)
	if _, err := New(database).ImportFile(filepath.Join(t.TempDir(), "nope.json"), nil); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
