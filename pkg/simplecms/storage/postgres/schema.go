package postgres

import (
	"context"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cms_sequences (
		kind  TEXT PRIMARY KEY,
		value BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cms_documents (
		kind       TEXT NOT NULL,
		id         BIGINT NOT NULL,
		data       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (kind, id)
	)`,
	`CREATE TABLE IF NOT EXISTS cms_search_content (
		content_id              BIGINT PRIMARY KEY,
		content_type_id         BIGINT NOT NULL,
		content_type_identifier TEXT NOT NULL,
		name                    TEXT NOT NULL,
		section_id              BIGINT NOT NULL,
		owner_id                BIGINT NOT NULL,
		status                  TEXT NOT NULL,
		remote_id               TEXT NOT NULL,
		modified_at             BIGINT NOT NULL,
		published_at            BIGINT NOT NULL,
		main_language_code      TEXT NOT NULL,
		language_codes          TEXT[] NOT NULL,
		always_available        BOOLEAN NOT NULL,
		is_hidden               BOOLEAN NOT NULL,
		state_ids               BIGINT[] NOT NULL,
		main_location_id        BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cms_search_location (
		location_id BIGINT PRIMARY KEY,
		content_id  BIGINT NOT NULL REFERENCES cms_search_content (content_id) ON DELETE CASCADE,
		parent_id   BIGINT NOT NULL,
		path_string TEXT NOT NULL,
		depth       INT NOT NULL,
		priority    INT NOT NULL,
		hidden      BOOLEAN NOT NULL,
		invisible   BOOLEAN NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS cms_search_location_content ON cms_search_location (content_id)`,
	`CREATE INDEX IF NOT EXISTS cms_search_location_path ON cms_search_location (path_string text_pattern_ops)`,
}

// Migrate creates the tables used by Store and Engine.
func Migrate(ctx context.Context, db DBTX) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return handlePostgresError("migrate", err)
		}
	}
	return nil
}

// Reset empties every table. Intended for tests.
func Reset(ctx context.Context, db DBTX) error {
	_, err := db.Exec(ctx, `TRUNCATE cms_search_location, cms_search_content, cms_documents, cms_sequences`)
	if err != nil {
		return handlePostgresError("reset", err)
	}
	return nil
}
