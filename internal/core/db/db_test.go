package db

import (
	"os"
	"testing"

	"github.com/neilberkman/leaddesk/internal/core/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestNew(t *testing.T) {
	database := newTestDB(t)

	var count int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('leads', 'import_log')").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 tables, got %d", count)
	}
}

func TestNew_WALMode(t *testing.T) {
	database := newTestDB(t)

	var journalMode string
	if err := database.QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %s", journalMode)
	}
}

func TestReplaceLeads_PreservesOrder(t *testing.T) {
	database := newTestDB(t)

	leads := []models.Lead{
		{ID: 7, Name: "Gabriela", Company: "Umbrella", Email: "gabi@umbrella.com", Source: "Web", Score: 71, Status: models.StatusInContact},
		{ID: 2, Name: "Bruno", Company: "Initech", Email: "bruno@initech.io", Source: "Evento", Score: 65, Status: models.StatusNew},
		{ID: 5, Name: "Elisa", Company: "Stark", Email: "elisa@stark.com", Source: "Indicação", Score: 99, Status: models.StatusQualified},
	}
	if err := database.ReplaceLeads(leads); err != nil {
		t.Fatalf("ReplaceLeads() error = %v", err)
	}

	got, err := database.ListLeads()
	if err != nil {
		t.Fatalf("ListLeads() error = %v", err)
	}
	if len(got) != len(leads) {
		t.Fatalf("Expected %d leads, got %d", len(leads), len(got))
	}
	for i := range leads {
		if got[i] != leads[i] {
			t.Errorf("lead %d: got %+v, want %+v", i, got[i], leads[i])
		}
	}
}

func TestReplaceLeads_ReplacesPreviousCatalog(t *testing.T) {
	database := newTestDB(t)

	first := []models.Lead{{ID: 1, Name: "Ana", Status: models.StatusNew}, {ID: 2, Name: "Bruno", Status: models.StatusNew}}
	second := []models.Lead{{ID: 3, Name: "Carla", Status: models.StatusQualified}}

	if err := database.ReplaceLeads(first); err != nil {
		t.Fatal(err)
	}
	if err := database.ReplaceLeads(second); err != nil {
		t.Fatal(err)
	}

	count, err := database.CountLeads()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 lead after replace, got %d", count)
	}
}

func TestReplaceLeads_RejectsUnknownStatus(t *testing.T) {
	database := newTestDB(t)

	if err := database.ReplaceLeads([]models.Lead{{ID: 1, Status: models.StatusNew}}); err != nil {
		t.Fatal(err)
	}

	err := database.ReplaceLeads([]models.Lead{{ID: 2, Status: "Perdido"}})
	if err == nil {
		t.Fatal("Expected CHECK constraint error")
	}

	// Failed replace must leave the previous catalog intact
	got, err := database.ListLeads()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Expected original catalog, got %+v", got)
	}
}

func TestListLeads_Empty(t *testing.T) {
	database := newTestDB(t)

	got, err := database.ListLeads()
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestLastImport(t *testing.T) {
	database := newTestDB(t)

	rec, err := database.LastImport()
	if err != nil {
		t.Fatal(err)
	}
	if rec != nil {
		t.Fatalf("Expected no import, got %+v", rec)
	}

	if err := database.LogImport(ImportRecord{FilePath: "a.json", FileHash: "h1", Leads: 3, Status: "success"}); err != nil {
		t.Fatal(err)
	}
	if err := database.LogImport(ImportRecord{FilePath: "b.json", FileHash: "h2", Status: "failed", Error: "bad json"}); err != nil {
		t.Fatal(err)
	}

	rec, err = database.LastImport()
	if err != nil {
		t.Fatal(err)
	}
	if rec == nil || rec.FilePath != "a.json" || rec.Leads != 3 {
		t.Errorf("Unexpected last import: %+v", rec)
	}
	if rec != nil && rec.ImportedAt.IsZero() {
		t.Error("Expected import timestamp to be parsed")
	}
}

func TestQueryHelpers_ShareCatalogConnection(t *testing.T) {
	database := newTestDB(t)

	if _, err := database.Exec(`
		INSERT INTO leads (id, position, nome, empresa, email, fonte, pontuacao, status)
		VALUES (0, 0, 'Ana', 'Acme', 'a@a.com', 'Web', 80, 'Novo')
	`); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}

	rows, err := database.Query("SELECT id, nome FROM leads ORDER BY position")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	var names []string
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		names = append(names, name)
	}
	_ = rows.Close()
	if len(names) != 1 || names[0] != "Ana" {
		t.Errorf("Expected [Ana], got %v", names)
	}

	// ListLeads reads through the same helpers
	leads, err := database.ListLeads()
	if err != nil {
		t.Fatalf("ListLeads() error = %v", err)
	}
	if len(leads) != 1 || leads[0].ID != 0 {
		t.Errorf("Expected lead id 0, got %+v", leads)
	}
}

func TestBegin_RollbackLeavesCatalog(t *testing.T) {
	database := newTestDB(t)
	if err := database.ReplaceLeads([]models.Lead{{ID: 1, Name: "Ana", Status: models.StatusNew}}); err != nil {
		t.Fatalf("ReplaceLeads() error = %v", err)
	}

	tx, err := database.Begin()
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if _, err := tx.Exec("DELETE FROM leads"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}

	count, err := database.CountLeads()
	if err != nil {
		t.Fatalf("CountLeads() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 lead after rollback, got %d", count)
	}
}
