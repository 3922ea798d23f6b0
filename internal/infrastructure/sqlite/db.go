// Package sqlite persiste el log local de mensajes enviados por campaña.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Migrations devuelve el esquema del log de envíos. Cada string es una sola sentencia.
func Migrations() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS messages_sent (
			id              TEXT PRIMARY KEY,
			campaign        TEXT NOT NULL,
			cpf             TEXT NOT NULL,
			phone           TEXT NOT NULL,
			message         TEXT NOT NULL,
			expiring_points TEXT NOT NULL DEFAULT '0',
			balance         TEXT NOT NULL DEFAULT '0',
			zaap_id         TEXT,
			message_id      TEXT,
			status          TEXT NOT NULL,
			error           TEXT,
			sent_at         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_sent_campaign ON messages_sent(campaign, cpf)`,
	}
}

// Open abre (o crea) la base en path y aplica las migraciones.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: crear directorio: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range Migrations() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite: migración: %w", err)
		}
	}
	return db, nil
}
