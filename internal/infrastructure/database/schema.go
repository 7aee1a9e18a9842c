package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	txutil "bookshelf-api/pkg/database"
)

// Constraint names referenced by repositories when classifying write failures.
const (
	BookISBNUniqueConstraint = "books_isbn_key"
	BookAuthorFKConstraint   = "books_author_id_fkey"
)

// schemaStatements create the two tables idempotently. Timestamps default to now(), which is
// the transaction start time, so created_at and updated_at are equal on insert.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS authors (
		id          UUID PRIMARY KEY,
		seq         BIGINT GENERATED ALWAYS AS IDENTITY,
		first_name  VARCHAR(100) NOT NULL,
		last_name   VARCHAR(100) NOT NULL,
		bio         TEXT,
		birth_date  DATE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS books (
		id              UUID PRIMARY KEY,
		seq             BIGINT GENERATED ALWAYS AS IDENTITY,
		title           VARCHAR(200) NOT NULL,
		isbn            VARCHAR(17) NOT NULL,
		published_date  DATE,
		genre           VARCHAR(50),
		author_id       UUID NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT ` + BookISBNUniqueConstraint + ` UNIQUE (isbn),
		CONSTRAINT ` + BookAuthorFKConstraint + ` FOREIGN KEY (author_id)
			REFERENCES authors (id) ON DELETE RESTRICT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_books_author_id ON books (author_id)`,
	`CREATE INDEX IF NOT EXISTS idx_authors_created_at ON authors (created_at DESC, seq)`,
	`CREATE INDEX IF NOT EXISTS idx_books_created_at ON books (created_at DESC, seq)`,
}

// EnsureSchema creates missing tables, constraints and indexes in one transaction.
func EnsureSchema(ctx context.Context, db txutil.TxBeginner) error {
	err := txutil.WithTransaction(ctx, db, func(tx pgx.Tx) error {
		for _, stmt := range schemaStatements {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("failed to apply schema statement: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().Int("statements", len(schemaStatements)).Msg("[DATABASE] Schema ready")
	return nil
}
