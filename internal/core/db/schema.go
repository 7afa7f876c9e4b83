package db

func (db *DB) initSchema() error {
	schema := `
	-- Lead catalog, in data source order
	CREATE TABLE IF NOT EXISTS leads (
		id INTEGER PRIMARY KEY,
		position INTEGER NOT NULL,
		nome TEXT NOT NULL DEFAULT '',
		empresa TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		fonte TEXT NOT NULL DEFAULT '',
		pontuacao INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL CHECK(status IN ('Novo', 'Em Contato', 'Qualificado')),
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_leads_position ON leads(position);
	CREATE INDEX IF NOT EXISTS idx_leads_status ON leads(status);

	-- Import log table
	CREATE TABLE IF NOT EXISTS import_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_path TEXT NOT NULL,
		file_hash TEXT NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		leads_imported INTEGER,
		status TEXT CHECK(status IN ('success', 'failed')),
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_import_log_file_hash ON import_log(file_hash);
	`

	_, err := db.conn.Exec(schema)
	return err
}
