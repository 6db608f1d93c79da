package database

import (
	"database/sql"
	"fmt"
)

// initMediaInfoTable initializes the probed media info table.
func initMediaInfoTable(tx *sql.Tx) error {
	query := `
    CREATE TABLE IF NOT EXISTS media_info (
        path TEXT PRIMARY KEY,
        size INTEGER NOT NULL,
        mod_time TIMESTAMP NOT NULL,
        duration_secs REAL DEFAULT 0,
        width INTEGER DEFAULT 0,
        height INTEGER DEFAULT 0,
        video_codec TEXT,
        created_at TIMESTAMP,
        probed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
    );
    CREATE INDEX IF NOT EXISTS idx_media_info_probed_at ON media_info(probed_at);
    `
	if _, err := tx.Exec(query); err != nil {
		return fmt.Errorf("failed to create media_info table: %w", err)
	}
	return nil
}
