package daemon

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neilberkman/leaddesk/internal/core/db"
	"github.com/neilberkman/leaddesk/internal/core/importer"
)

const oneLead = `[{"id": 1, "nome": "Ana", "empresa": "Acme", "email": "a@a.com", "fonte": "Web", "pontuacao": 80, "status": "Novo"}]`

const twoLeads = `[
  {"id": 1, "nome": "Ana", "empresa": "Acme", "email": "a@a.com", "fonte": "Web", "pontuacao": 80, "status": "Novo"},
  {"id": 2, "nome": "Bruno Lima", "empresa": "Initech", "email": "bruno@initech.io", "fonte": "Evento", "pontuacao": 65, "status": "Em Contato"}
]`

func setup(t *testing.T, body string) (*db.DB, string) {
	t.Helper()
	dir := t.TempDir()

	database, err := db.New(filepath.Join(dir, "leads.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	path := filepath.Join(dir, "leads.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return database, path
}

func TestNewCatalogWatcher_MissingFile(t *testing.T) {
	database, _ := setup(t, oneLead)
	_, err := NewCatalogWatcher(importer.New(database), filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestShouldProcessEvent(t *testing.T) {
	database, path := setup(t, oneLead)
	w, err := NewCatalogWatcher(importer.New(database), path)
	require.NoError(t, err)
	defer w.watcher.Close()

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write to file", fsnotify.Event{Name: path, Op: fsnotify.Write}, true},
		{"create file", fsnotify.Event{Name: path, Op: fsnotify.Create}, true},
		{"chmod only", fsnotify.Event{Name: path, Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: filepath.Join(filepath.Dir(path), "other.json"), Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.shouldProcessEvent(tt.event))
		})
	}
}

func TestCatalogWatcher_ReimportsOnChange(t *testing.T) {
	database, path := setup(t, oneLead)
	w, err := NewCatalogWatcher(importer.New(database), path)
	require.NoError(t, err)
	w.settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool {
		return w.Stats().Imports == 1
	}, 5*time.Second, 20*time.Millisecond)

	n, err := database.CountLeads()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, os.WriteFile(path, []byte(twoLeads), 0644))

	require.Eventually(t, func() bool {
		n, err := database.CountLeads()
		return err == nil && n == 2
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestCatalogWatcher_BadFileKeepsCatalog(t *testing.T) {
	database, path := setup(t, oneLead)
	w, err := NewCatalogWatcher(importer.New(database), path)
	require.NoError(t, err)
	defer w.watcher.Close()

	w.reimport()
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))
	w.reimport()

	stats := w.Stats()
	assert.Equal(t, 1, stats.Imports)
	assert.Equal(t, 1, stats.Errors)

	n, err := database.CountLeads()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
